package sqlite

import (
	"context"
	"fmt"

	"github.com/iudanet/notaryroom/internal/models"
)

// AppendDelta appends a delta to the room log and returns its sequence number
func (s *Storage) AppendDelta(ctx context.Context, delta *models.RoomDelta) (int64, error) {
	query := `
		INSERT INTO room_deltas (room_id, node_id, payload, created_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		delta.RoomID,
		delta.NodeID,
		delta.Payload,
		delta.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to append delta: %w", err)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get delta seq: %w", err)
	}

	return seq, nil
}

// ListDeltasSince returns room deltas with seq greater than afterSeq, in order
func (s *Storage) ListDeltasSince(ctx context.Context, roomID string, afterSeq int64) ([]*models.RoomDelta, error) {
	query := `
		SELECT seq, room_id, node_id, payload, created_at
		FROM room_deltas
		WHERE room_id = ? AND seq > ?
		ORDER BY seq ASC
	`

	rows, err := s.db.QueryContext(ctx, query, roomID, afterSeq)
	if err != nil {
		return nil, fmt.Errorf("failed to list deltas: %w", err)
	}
	defer rows.Close()

	var deltas []*models.RoomDelta
	for rows.Next() {
		delta := &models.RoomDelta{}
		if err := rows.Scan(
			&delta.Seq,
			&delta.RoomID,
			&delta.NodeID,
			&delta.Payload,
			&delta.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan delta: %w", err)
		}
		deltas = append(deltas, delta)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deltas: %w", err)
	}

	return deltas, nil
}

// DeleteDeltas removes the whole delta log of a room
func (s *Storage) DeleteDeltas(ctx context.Context, roomID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM room_deltas WHERE room_id = ?`, roomID); err != nil {
		return fmt.Errorf("failed to delete deltas: %w", err)
	}
	return nil
}
