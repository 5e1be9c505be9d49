package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/notaryroom/internal/models"
	"github.com/iudanet/notaryroom/internal/server/storage"
)

// SaveSubmission stores an accepted template submission
func (s *Storage) SaveSubmission(ctx context.Context, submission *models.TemplateSubmission) error {
	query := `
		INSERT INTO template_submissions (id, room_id, name, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		submission.ID,
		submission.RoomID,
		submission.Name,
		submission.Payload,
		submission.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	return nil
}

// GetSubmission retrieves submission by id
func (s *Storage) GetSubmission(ctx context.Context, id string) (*models.TemplateSubmission, error) {
	query := `
		SELECT id, room_id, name, payload, created_at
		FROM template_submissions
		WHERE id = ?
	`

	submission := &models.TemplateSubmission{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&submission.ID,
		&submission.RoomID,
		&submission.Name,
		&submission.Payload,
		&submission.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return submission, nil
}

// ListSubmissions returns submissions of a room, newest first
func (s *Storage) ListSubmissions(ctx context.Context, roomID string) ([]*models.TemplateSubmission, error) {
	query := `
		SELECT id, room_id, name, payload, created_at
		FROM template_submissions
		WHERE room_id = ?
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.TemplateSubmission
	for rows.Next() {
		submission := &models.TemplateSubmission{}
		if err := rows.Scan(
			&submission.ID,
			&submission.RoomID,
			&submission.Name,
			&submission.Payload,
			&submission.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, submission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}

	return submissions, nil
}
