package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/iudanet/notaryroom/internal/validation"
)

// RunJoin подключает участника к существующей комнате
func (c *Cli) RunJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	roomID := fs.String("room", "", "Room ID (required)")
	name := fs.String("name", "", "Your display name (required)")
	passcodeArg := fs.String("passcode", "", "Room passcode (prefer NOTARYROOM_PASSCODE or -passcode-file)")
	passcodeFile := fs.String("passcode-file", "", "File containing the room passcode")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *roomID == "" {
		return fmt.Errorf("-room is required")
	}
	if err := validation.ValidateDisplayName(*name); err != nil {
		return fmt.Errorf("invalid display name: %w", err)
	}

	passcode, err := c.readPasscode(Passcodes{FromFile: *passcodeFile, FromArgs: *passcodeArg})
	if err != nil {
		return err
	}

	meta, err := c.service.Join(ctx, *roomID, passcode, *name)
	if err != nil {
		return err
	}

	c.io.Printf("Joined room: %s\n", meta.RoomName)
	c.io.Println("Run 'notaryroom-client open' to start the session.")
	return nil
}
