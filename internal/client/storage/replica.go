package storage

import (
	"context"
)

// ReplicaStorage defines interface for the local document replica cache.
// This is the lowest storage layer - it works with raw data (already
// encrypted replica blobs) and doesn't perform any encryption itself.
// Шифрование cache-ключом комнаты выполняется уровнем выше.
type ReplicaStorage interface {
	// SaveReplica stores the encrypted replica blob for a room
	SaveReplica(ctx context.Context, roomID string, data []byte) error

	// GetReplica retrieves the encrypted replica blob for a room
	// Returns ErrReplicaNotFound if no replica is cached
	GetReplica(ctx context.Context, roomID string) ([]byte, error)

	// DeleteReplica removes the cached replica for a room
	DeleteReplica(ctx context.Context, roomID string) error
}
