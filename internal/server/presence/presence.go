// Package presence отслеживает участников, находящихся в комнате.
// Записи живут с TTL и продлеваются heartbeat-ом websocket-соединения;
// участник, чье соединение умерло, исчезает из списка сам.
package presence

import (
	"context"
	"time"

	"github.com/iudanet/notaryroom/pkg/api"
)

// Время жизни записи присутствия. Продлевается при heartbeat
const entryTTL = 30 * time.Second

// Store defines interface for room presence tracking
type Store interface {
	// Join registers a participant in the room and starts the TTL
	Join(ctx context.Context, roomID string, participant api.Participant) error

	// Heartbeat extends the participant's presence TTL
	Heartbeat(ctx context.Context, roomID, submitterID string) error

	// Leave removes the participant from the room
	Leave(ctx context.Context, roomID, submitterID string) error

	// List returns participants currently present in the room
	List(ctx context.Context, roomID string) ([]api.Participant, error)

	// Close releases backing resources
	Close() error
}
