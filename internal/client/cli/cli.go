package cli

import (
	"fmt"
	"os"
	"strings"

	apiclient "github.com/iudanet/notaryroom/internal/client/api"
	"github.com/iudanet/notaryroom/internal/client/iocli"
	"github.com/iudanet/notaryroom/internal/client/session"
	"github.com/iudanet/notaryroom/internal/client/storage"
	"github.com/iudanet/notaryroom/internal/validation"
)

// Passcodes источники кода доступа, кроме интерактивного ввода
type Passcodes struct {
	FromFile string
	FromArgs string
}

type Cli struct {
	io        iocli.IO
	apiClient *apiclient.Client
	service   *session.Service
	sessions  storage.SessionStorage
	exportDir string
}

func New(io iocli.IO, apiClient *apiclient.Client, service *session.Service, sessions storage.SessionStorage, exportDir string) *Cli {
	return &Cli{
		io:        io,
		apiClient: apiClient,
		service:   service,
		sessions:  sessions,
		exportDir: exportDir,
	}
}

// readPasscode reads room passcode from various sources with priority:
// 1. Environment variable NOTARYROOM_PASSCODE
// 2. File specified in -passcode-file parameter
// 3. Command-line parameter -passcode
// 4. Interactive prompt (fallback)
func (c *Cli) readPasscode(passcodes Passcodes) (string, error) {
	passcode, err := c.getPasscode(passcodes)
	if err != nil {
		return "", err
	}

	if err := validation.ValidatePasscode(passcode); err != nil {
		return "", fmt.Errorf("invalid passcode: %w", err)
	}
	return passcode, nil
}

func (c *Cli) getPasscode(passcodes Passcodes) (string, error) {
	if passcode := os.Getenv("NOTARYROOM_PASSCODE"); passcode != "" {
		return passcode, nil
	}

	if passcodes.FromFile != "" {
		data, err := os.ReadFile(passcodes.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read passcode file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if passcodes.FromArgs != "" {
		return passcodes.FromArgs, nil
	}

	return c.io.ReadPassword("Room passcode: ")
}

// PrintUsage выводит справку по командам
func PrintUsage() {
	fmt.Println(`Usage: notaryroom-client [flags] <command> [arguments]

Commands:
  create   Create a notarization room (notary)
  join     Join an existing room by id
  open     Reconnect the saved room and sync until interrupted
  status   Show saved session and online participants
  export   Build the final template and submit it
  leave    Forget the saved room and its local replica

Flags:
  -server  Relay URL (default http://localhost:8080)
  -db      Path to local database
  -version Show version information

Run 'notaryroom-client <command> -h' for command flags.`)
}
