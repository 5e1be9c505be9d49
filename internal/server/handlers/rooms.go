// Package handlers содержит HTTP-обработчики API relay.
package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/iudanet/notaryroom/internal/crypto"
	"github.com/iudanet/notaryroom/internal/models"
	"github.com/iudanet/notaryroom/internal/server/jwt"
	"github.com/iudanet/notaryroom/internal/server/middleware"
	"github.com/iudanet/notaryroom/internal/server/presence"
	"github.com/iudanet/notaryroom/internal/server/storage"
	"github.com/iudanet/notaryroom/internal/validation"
	"github.com/iudanet/notaryroom/pkg/api"
)

// RoomsHandler обрабатывает создание комнат, вход и список присутствия
type RoomsHandler struct {
	logger   *slog.Logger
	rooms    storage.RoomStorage
	presence presence.Store
	tokens   *jwt.Service
}

// NewRoomsHandler создает handler комнат
func NewRoomsHandler(logger *slog.Logger, rooms storage.RoomStorage, presenceStore presence.Store, tokens *jwt.Service) *RoomsHandler {
	return &RoomsHandler{
		logger:   logger,
		rooms:    rooms,
		presence: presenceStore,
		tokens:   tokens,
	}
}

// CreateRoom обрабатывает POST /api/v1/rooms
// Создание комнаты нотариальной сессии. Создатель получает роль notary
func (h *RoomsHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create room request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateRoomName(req.Name); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateDisplayName(req.NotaryName); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PasscodeSalt == "" {
		h.sendError(w, "passcode_salt is required", http.StatusBadRequest)
		return
	}

	accessKey, err := base64.StdEncoding.DecodeString(req.AccessKey)
	if err != nil || len(accessKey) == 0 {
		h.sendError(w, "access_key must be base64", http.StatusBadRequest)
		return
	}

	accessKeyHash, err := crypto.HashAccessKey(accessKey)
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	roomID := uuid.New().String()
	notaryID := uuid.New().String()

	room := &models.Room{
		ID:             roomID,
		Name:           req.Name,
		NotaryID:       notaryID,
		AccessKeyHash:  accessKeyHash,
		PasscodeSalt:   req.PasscodeSalt,
		AttachmentUUID: req.AttachmentUUID,
		CreatedAt:      time.Now().UTC(),
	}

	if err := h.rooms.CreateRoom(ctx, room); err != nil {
		h.logger.ErrorContext(ctx, "failed to create room", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token, expiresIn, err := h.tokens.GenerateRoomToken(roomID, notaryID, api.RoleNotary, req.NotaryName)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue room token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "room created",
		slog.String("room_id", roomID),
		slog.String("notary_id", notaryID))

	h.sendJSON(w, api.CreateRoomResponse{
		RoomID:      roomID,
		SubmitterID: notaryID,
		Token:       token,
		ExpiresIn:   expiresIn,
	}, http.StatusCreated)
}

// GetSalt обрабатывает GET /api/v1/rooms/{id}/salt
// Соль комнаты для клиентской деривации access_key. Без аутентификации:
// соль не секрет, секрет выводится из нее вместе с кодом доступа
func (h *RoomsHandler) GetSalt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	roomID := mux.Vars(r)["id"]

	room, err := h.rooms.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			h.sendError(w, "room not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get room", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, api.RoomSaltResponse{
		RoomName:     room.Name,
		PasscodeSalt: room.PasscodeSalt,
	}, http.StatusOK)
}

// JoinRoom обрабатывает POST /api/v1/rooms/{id}/join
// Вход участника в комнату по производному access_key
func (h *RoomsHandler) JoinRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	roomID := mux.Vars(r)["id"]

	var req api.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode join request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateDisplayName(req.DisplayName); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	room, err := h.rooms.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			h.sendError(w, "room not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get room", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	accessKey, err := base64.StdEncoding.DecodeString(req.AccessKey)
	if err != nil {
		h.sendError(w, "access_key must be base64", http.StatusBadRequest)
		return
	}

	if err := crypto.VerifyAccessKey(accessKey, room.AccessKeyHash); err != nil {
		h.logger.WarnContext(ctx, "join rejected",
			slog.String("room_id", roomID), slog.Any("error", err))
		h.sendError(w, "invalid passcode", http.StatusForbidden)
		return
	}

	submitterID := uuid.New().String()
	token, expiresIn, err := h.tokens.GenerateRoomToken(roomID, submitterID, api.RoleClient, req.DisplayName)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue room token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "participant joined",
		slog.String("room_id", roomID),
		slog.String("submitter_id", submitterID))

	h.sendJSON(w, api.JoinRoomResponse{
		RoomName:       room.Name,
		SubmitterID:    submitterID,
		Token:          token,
		AttachmentUUID: room.AttachmentUUID,
		ExpiresIn:      expiresIn,
	}, http.StatusOK)
}

// Presence обрабатывает GET /api/v1/rooms/{id}/presence
// Список участников комнаты онлайн. Требует токен этой же комнаты
func (h *RoomsHandler) Presence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	roomID := mux.Vars(r)["id"]

	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok || claims.RoomID != roomID {
		h.sendError(w, "token does not grant access to this room", http.StatusForbidden)
		return
	}

	participants, err := h.presence.List(ctx, roomID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list presence", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, api.PresenceResponse{Participants: participants}, http.StatusOK)
}

// sendJSON отправляет JSON ответ
func (h *RoomsHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	sendJSON(h.logger, w, data, statusCode)
}

// sendError отправляет JSON ответ с ошибкой
func (h *RoomsHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	sendError(h.logger, w, message, statusCode)
}

// sendJSON общий помощник отправки JSON ответа
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError общий помощник отправки ошибки
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	sendJSON(logger, w, api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}, statusCode)
}
