package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/notaryroom/internal/models"
	"github.com/iudanet/notaryroom/internal/server/middleware"
	"github.com/iudanet/notaryroom/internal/server/storage"
	"github.com/iudanet/notaryroom/pkg/api"
)

// TemplatesHandler принимает итоговые шаблоны комнат
type TemplatesHandler struct {
	logger      *slog.Logger
	submissions storage.SubmissionStorage
}

// NewTemplatesHandler создает handler приема шаблонов
func NewTemplatesHandler(logger *slog.Logger, submissions storage.SubmissionStorage) *TemplatesHandler {
	return &TemplatesHandler{
		logger:      logger,
		submissions: submissions,
	}
}

// Submit обрабатывает POST /api/v1/templates
// Прием итогового шаблона. Success означает "принято": клиент при
// любом другом исходе уходит в локальный файл
func (h *TemplatesHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "missing room token", http.StatusUnauthorized)
		return
	}

	var payload api.TemplatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode template payload", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if payload.Template.Name == "" {
		sendError(h.logger, w, "template name is required", http.StatusBadRequest)
		return
	}
	if len(payload.Template.Fields) == 0 {
		sendError(h.logger, w, "template has no fields", http.StatusBadRequest)
		return
	}

	// Сохраняем payload как принят, без нормализации
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to marshal template payload", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	submission := &models.TemplateSubmission{
		ID:        uuid.New().String(),
		RoomID:    claims.RoomID,
		Name:      payload.Template.Name,
		Payload:   data,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.submissions.SaveSubmission(ctx, submission); err != nil {
		h.logger.ErrorContext(ctx, "failed to save submission", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "template accepted",
		slog.String("room_id", claims.RoomID),
		slog.String("submission_id", submission.ID),
		slog.Int("fields", len(payload.Template.Fields)))

	sendJSON(h.logger, w, api.SubmitTemplateResponse{SubmissionID: submission.ID}, http.StatusCreated)
}
