package storage

import (
	"context"

	"github.com/iudanet/notaryroom/internal/models"
)

// DeltaStorage defines interface for the append-only room delta log.
// Журнал воспроизводится поздно присоединившемуся участнику, чтобы
// его пустая реплика сошлась с активными без отдельного snapshot.
type DeltaStorage interface {
	// AppendDelta appends a delta to the room log and returns its sequence number
	AppendDelta(ctx context.Context, delta *models.RoomDelta) (int64, error)

	// ListDeltasSince returns room deltas with seq greater than afterSeq, in order.
	// Pass 0 to replay the whole log
	ListDeltasSince(ctx context.Context, roomID string, afterSeq int64) ([]*models.RoomDelta, error)

	// DeleteDeltas removes the whole delta log of a room
	DeleteDeltas(ctx context.Context, roomID string) error
}
