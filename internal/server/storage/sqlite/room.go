package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/notaryroom/internal/models"
	"github.com/iudanet/notaryroom/internal/server/storage"
)

// CreateRoom creates a new room
func (s *Storage) CreateRoom(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (id, name, notary_id, access_key_hash, passcode_salt, attachment_uuid, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		room.ID,
		room.Name,
		room.NotaryID,
		room.AccessKeyHash,
		room.PasscodeSalt,
		room.AttachmentUUID,
		room.CreatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: rooms.id") {
			return storage.ErrRoomAlreadyExists
		}
		return fmt.Errorf("failed to insert room: %w", err)
	}

	return nil
}

// GetRoom retrieves room by id
func (s *Storage) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	query := `
		SELECT id, name, notary_id, access_key_hash, passcode_salt, attachment_uuid, created_at
		FROM rooms
		WHERE id = ?
	`

	room := &models.Room{}
	err := s.db.QueryRowContext(ctx, query, roomID).Scan(
		&room.ID,
		&room.Name,
		&room.NotaryID,
		&room.AccessKeyHash,
		&room.PasscodeSalt,
		&room.AttachmentUUID,
		&room.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return room, nil
}

// DeleteRoom deletes room and its delta log
func (s *Storage) DeleteRoom(ctx context.Context, roomID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, roomID)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return storage.ErrRoomNotFound
	}

	// Журнал дельт комнаты удаляется вместе с комнатой
	if err := s.DeleteDeltas(ctx, roomID); err != nil {
		return fmt.Errorf("failed to delete room deltas: %w", err)
	}

	return nil
}
