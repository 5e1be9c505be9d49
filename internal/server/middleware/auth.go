package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/notaryroom/internal/server/jwt"
)

type contextKey string

// claimsKey ключ контекста с claims токена комнаты
const claimsKey contextKey = "room_claims"

// ClaimsFromContext извлекает claims токена комнаты из контекста запроса
func ClaimsFromContext(ctx context.Context) (*jwt.RoomClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*jwt.RoomClaims)
	return claims, ok
}

// AuthMiddleware создает middleware для проверки токена комнаты.
// Токен принимается из заголовка Authorization (Bearer) или из
// query-параметра token: браузерный websocket не умеет заголовки
func AuthMiddleware(logger *slog.Logger, tokens *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				logger.Warn("Missing room token", "path", r.URL.Path)
				http.Error(w, "Unauthorized: missing token", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ValidateRoomToken(tokenString)
			if err != nil {
				logger.Warn("Invalid room token", "error", err)
				http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)

			logger.Debug("Participant authenticated",
				"room_id", claims.RoomID,
				"submitter_id", claims.SubmitterID,
				"role", claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken достает токен из Authorization заголовка или query
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}

	return r.URL.Query().Get("token")
}
