package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/notaryroom/internal/client/storage"
)

// RunStatus показывает сохраненную сессию и участников онлайн
func (c *Cli) RunStatus(ctx context.Context) error {
	meta, err := c.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			c.io.Println("No saved room. Use 'create' or 'join' first.")
			return nil
		}
		return fmt.Errorf("failed to read session: %w", err)
	}

	c.io.Printf("Room: %s (%s)\n", meta.RoomName, meta.RoomID)
	c.io.Printf("You: %s (%s)\n", meta.DisplayName, meta.Role)
	c.io.Printf("Relay: %s\n", meta.ServerURL)

	presence, err := c.apiClient.Presence(ctx, meta.RoomID, meta.Token)
	if err != nil {
		c.io.Printf("Online participants unavailable: %v\n", err)
		return nil
	}

	if len(presence.Participants) == 0 {
		c.io.Println("Online: nobody")
		return nil
	}
	c.io.Println("Online:")
	for _, p := range presence.Participants {
		c.io.Printf("  %s (%s)\n", p.Name, p.Role)
	}
	return nil
}
