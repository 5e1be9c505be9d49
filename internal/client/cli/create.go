package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/iudanet/notaryroom/internal/validation"
)

// RunCreate создает комнату от имени нотариуса
func (c *Cli) RunCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	name := fs.String("name", "", "Room name (required)")
	notary := fs.String("notary", "", "Notary display name (required)")
	attachment := fs.String("attachment", "", "Attachment UUID of the source document")
	passcodeArg := fs.String("passcode", "", "Room passcode (prefer NOTARYROOM_PASSCODE or -passcode-file)")
	passcodeFile := fs.String("passcode-file", "", "File containing the room passcode")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := validation.ValidateRoomName(*name); err != nil {
		return fmt.Errorf("invalid room name: %w", err)
	}
	if err := validation.ValidateDisplayName(*notary); err != nil {
		return fmt.Errorf("invalid notary name: %w", err)
	}

	passcode, err := c.readPasscode(Passcodes{FromFile: *passcodeFile, FromArgs: *passcodeArg})
	if err != nil {
		return err
	}

	meta, err := c.service.Create(ctx, *name, *notary, passcode, *attachment)
	if err != nil {
		return err
	}

	c.io.Printf("Room created: %s\n", meta.RoomName)
	c.io.Printf("Room ID: %s\n", meta.RoomID)
	c.io.Println("Share the room ID and passcode with participants.")
	c.io.Println("Run 'notaryroom-client open' to start the session.")
	return nil
}
