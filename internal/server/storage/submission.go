package storage

import (
	"context"

	"github.com/iudanet/notaryroom/internal/models"
)

// SubmissionStorage defines interface for accepted template submissions
type SubmissionStorage interface {
	// SaveSubmission stores an accepted template submission
	SaveSubmission(ctx context.Context, submission *models.TemplateSubmission) error

	// GetSubmission retrieves submission by id
	// Returns ErrSubmissionNotFound if it doesn't exist
	GetSubmission(ctx context.Context, id string) (*models.TemplateSubmission, error)

	// ListSubmissions returns submissions of a room, newest first
	ListSubmissions(ctx context.Context, roomID string) ([]*models.TemplateSubmission, error)
}
