package cli

import (
	"context"
	"errors"

	"github.com/iudanet/notaryroom/internal/client/storage"
)

// RunLeave забывает сохраненную комнату и удаляет локальную реплику
func (c *Cli) RunLeave(ctx context.Context) error {
	err := c.service.Leave(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			c.io.Println("No saved room.")
			return nil
		}
		return err
	}

	c.io.Println("Room forgotten, local replica removed.")
	return nil
}
