// Package storage описывает интерфейсы персистентности relay.
// Relay хранит комнаты, append-only журнал дельт для поздних
// участников и принятые итоговые шаблоны.
package storage

import (
	"context"

	"github.com/iudanet/notaryroom/internal/models"
)

// RoomStorage defines interface for room persistence
type RoomStorage interface {
	// CreateRoom creates a new room
	// Returns ErrRoomAlreadyExists if room id is taken
	CreateRoom(ctx context.Context, room *models.Room) error

	// GetRoom retrieves room by id
	// Returns ErrRoomNotFound if room doesn't exist
	GetRoom(ctx context.Context, roomID string) (*models.Room, error)

	// DeleteRoom deletes room and its delta log
	// Returns ErrRoomNotFound if room doesn't exist
	DeleteRoom(ctx context.Context, roomID string) error
}
