package cli

import (
	"context"
	"errors"
	"flag"

	"github.com/iudanet/notaryroom/internal/docstate"
)

// RunOpen восстанавливает сохраненную сессию и синхронизируется с relay
// до прерывания. Реплика сбрасывается в зашифрованный кэш при выходе.
func (c *Cli) RunOpen(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	passcodeArg := fs.String("passcode", "", "Room passcode (prefer NOTARYROOM_PASSCODE or -passcode-file)")
	passcodeFile := fs.String("passcode-file", "", "File containing the room passcode")
	if err := fs.Parse(args); err != nil {
		return err
	}

	passcode, err := c.readPasscode(Passcodes{FromFile: *passcodeFile, FromArgs: *passcodeArg})
	if err != nil {
		return err
	}

	meta, err := c.service.Resume(ctx, passcode)
	if err != nil {
		return err
	}

	c.io.Printf("Connected to room %s as %s\n", meta.RoomName, meta.DisplayName)

	unsubscribe := c.service.Store().Subscribe(func(snapshot docstate.Snapshot) {
		c.io.Printf("Document updated: %d fields, %d approvals\n",
			len(snapshot.Fields), len(snapshot.Approvals))
	})
	defer unsubscribe()

	err = c.service.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	c.io.Println("Session closed, replica cached locally.")
	return nil
}
