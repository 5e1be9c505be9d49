package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/iudanet/notaryroom/internal/server/middleware"
	"github.com/iudanet/notaryroom/internal/server/presence"
	"github.com/iudanet/notaryroom/internal/server/relay"
	"github.com/iudanet/notaryroom/pkg/api"
)

// WSHandler апгрейдит соединение участника и передает его хабу комнаты
type WSHandler struct {
	logger   *slog.Logger
	hub      *relay.Hub
	presence presence.Store
	upgrader websocket.Upgrader
}

// NewWSHandler создает websocket handler комнат
func NewWSHandler(logger *slog.Logger, hub *relay.Hub, presenceStore presence.Store) *WSHandler {
	return &WSHandler{
		logger:   logger,
		hub:      hub,
		presence: presenceStore,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// Serve обрабатывает GET /ws/rooms/{id}
// Токен проверен middleware; остается сверить комнату из токена с путем
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	roomID := mux.Vars(r)["id"]

	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok || claims.RoomID != roomID {
		sendError(h.logger, w, "token does not grant access to this room", http.StatusForbidden)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.ErrorContext(ctx, "websocket upgrade failed", slog.Any("error", err))
		return
	}

	if err := h.presence.Join(ctx, roomID, api.Participant{
		SubmitterID: claims.SubmitterID,
		Name:        claims.DisplayName,
		Role:        claims.Role,
	}); err != nil {
		h.logger.ErrorContext(ctx, "presence join failed", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "participant connected",
		slog.String("room_id", roomID),
		slog.String("submitter_id", claims.SubmitterID),
		slog.String("role", claims.Role))

	h.hub.ServeConn(ctx, conn, roomID, claims.SubmitterID)
}
