package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/notaryroom/internal/server"
	"github.com/iudanet/notaryroom/internal/server/config"
	"github.com/iudanet/notaryroom/internal/server/handlers"
	"github.com/iudanet/notaryroom/internal/server/jwt"
	"github.com/iudanet/notaryroom/internal/server/presence"
	"github.com/iudanet/notaryroom/internal/server/relay"
	"github.com/iudanet/notaryroom/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		logger.Error("relay stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.SQLitePath)
	if err != nil {
		return fmt.Errorf("open sqlite storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	presenceStore, err := newPresenceStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("init presence store: %w", err)
	}
	defer func() {
		if err := presenceStore.Close(); err != nil {
			logger.Error("failed to close presence store", "error", err)
		}
	}()

	tokens := jwt.NewService(cfg.JWTSecret, cfg.TokenTTL)
	hub := relay.NewHub(store, presenceStore, logger)

	router := server.NewRouter(logger, tokens, server.Handlers{
		Rooms:     handlers.NewRoomsHandler(logger, store, presenceStore, tokens),
		Templates: handlers.NewTemplatesHandler(logger, store),
		WS:        handlers.NewWSHandler(logger, hub, presenceStore),
		Health:    handlers.NewHealthHandler(logger, Version),
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Websocket соединения живут дольше любого request timeout,
		// поэтому Read/Write таймауты здесь не задаются.
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("relay listening", "addr", cfg.Addr, "version", Version)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down relay")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("relay stopped")
	return nil
}

// newPresenceStore выбирает backend presence: redis при заданном URL,
// иначе память процесса
func newPresenceStore(cfg config.Config, logger *slog.Logger) (presence.Store, error) {
	if cfg.RedisURL == "" {
		logger.Info("presence backend: in-memory")
		return presence.NewMemoryStore(), nil
	}

	logger.Info("presence backend: redis")
	return presence.NewRedisStore(cfg.RedisURL)
}

func printVersion() {
	fmt.Printf("NotaryRoom Relay\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
