// Package server собирает HTTP-маршруты relay.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/iudanet/notaryroom/internal/server/handlers"
	"github.com/iudanet/notaryroom/internal/server/jwt"
	"github.com/iudanet/notaryroom/internal/server/middleware"
)

// Лимиты запросов
const (
	createRoomRate = 10
	defaultRate    = 600
	rateWindow     = time.Minute
)

// Handlers обработчики, монтируемые в router
type Handlers struct {
	Rooms     *handlers.RoomsHandler
	Templates *handlers.TemplatesHandler
	WS        *handlers.WSHandler
	Health    *handlers.HealthHandler
}

// NewRouter собирает router relay со всеми middleware.
// Создание комнаты, salt и join открыты; presence, прием шаблонов
// и websocket требуют токен комнаты
func NewRouter(logger *slog.Logger, tokens *jwt.Service, h Handlers) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.LoggingWithSkip(logger, []string{"/api/v1/health"}))
	r.Use(middleware.RateLimitMiddleware(
		[]middleware.PathRateLimit{
			{Path: "/api/v1/rooms", Rate: createRoomRate, Window: rateWindow},
		},
		defaultRate, rateWindow, logger))

	auth := middleware.AuthMiddleware(logger, tokens)

	r.HandleFunc("/api/v1/health", h.Health.Health).Methods(http.MethodGet)

	r.HandleFunc("/api/v1/rooms", h.Rooms.CreateRoom).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/rooms/{id}/salt", h.Rooms.GetSalt).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/rooms/{id}/join", h.Rooms.JoinRoom).Methods(http.MethodPost)
	r.Handle("/api/v1/rooms/{id}/presence", auth(http.HandlerFunc(h.Rooms.Presence))).Methods(http.MethodGet)

	r.Handle("/api/v1/templates", auth(http.HandlerFunc(h.Templates.Submit))).Methods(http.MethodPost)

	r.Handle("/ws/rooms/{id}", auth(http.HandlerFunc(h.WS.Serve))).Methods(http.MethodGet)

	return r
}
