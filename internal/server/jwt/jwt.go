// Package jwt выпускает и проверяет токены доступа к комнате.
// Токен выдается при входе в комнату и предъявляется при открытии
// websocket-соединения и запросах к API комнаты.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Service выпускает и проверяет токены комнаты
type Service struct {
	secret   []byte
	tokenTTL time.Duration
}

// RoomClaims claims токена комнаты: кто, в какой комнате, с какой ролью
type RoomClaims struct {
	RoomID      string `json:"room_id"`
	SubmitterID string `json:"submitter_id"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
	jwt.RegisteredClaims
}

// NewService создает сервис токенов комнаты.
// secret должен быть криптографически случайной строкой
func NewService(secret string, tokenTTL time.Duration) *Service {
	return &Service{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// GenerateRoomToken выпускает токен участника комнаты.
// Возвращает токен и срок его жизни в секундах
func (s *Service) GenerateRoomToken(roomID, submitterID, role, displayName string) (string, int64, error) {
	now := time.Now()
	claims := RoomClaims{
		RoomID:      roomID,
		SubmitterID: submitterID,
		Role:        role,
		DisplayName: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			Subject:   submitterID,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign room token: %w", err)
	}

	return token, int64(s.tokenTTL.Seconds()), nil
}

// ValidateRoomToken проверяет подпись и срок действия токена комнаты
func (s *Service) ValidateRoomToken(token string) (*RoomClaims, error) {
	var claims RoomClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("invalid room token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid room token")
	}

	return &claims, nil
}
