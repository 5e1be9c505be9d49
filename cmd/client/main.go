package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	apiclient "github.com/iudanet/notaryroom/internal/client/api"
	"github.com/iudanet/notaryroom/internal/client/cli"
	"github.com/iudanet/notaryroom/internal/client/iocli"
	"github.com/iudanet/notaryroom/internal/client/session"
	"github.com/iudanet/notaryroom/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Relay URL")
	dbPath := flag.String("db", "notaryroom-client.db", "Path to local database")
	exportDir := flag.String("export-dir", "exports", "Directory for local template exports")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	bolt, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open local database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = bolt.Close()
	}()

	client := apiclient.NewClient(*serverURL)
	service := session.NewService(logger, client, bolt, bolt)

	c := cli.New(iocli.NewStdio(), client, service, bolt, *exportDir)
	c.Run(ctx, command, args[1:])
}

func printVersion() {
	fmt.Printf("NotaryRoom Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
