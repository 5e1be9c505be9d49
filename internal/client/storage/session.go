package storage

import (
	"context"
)

// Session данные подключенной комнаты, переживающие перезапуск клиента.
// Токен и соль хранятся как есть: реплика документа шифруется отдельным
// cache-ключом, который из этих данных без кода доступа не выводится.
type Session struct {
	RoomID         string `json:"room_id"`
	RoomName       string `json:"room_name"`
	SubmitterID    string `json:"submitter_id"`
	DisplayName    string `json:"display_name"`
	Role           string `json:"role"`
	Token          string `json:"token"`
	PasscodeSalt   string `json:"passcode_salt"` // base64
	AttachmentUUID string `json:"attachment_uuid"`
	NodeID         string `json:"node_id"`
	ServerURL      string `json:"server_url"`
	ExpiresAt      int64  `json:"expires_at"`
}

// SessionStorage defines interface for storing room session data on client
type SessionStorage interface {
	// SaveSession stores or replaces the active room session
	SaveSession(ctx context.Context, session *Session) error

	// GetSession retrieves the active room session
	// Returns ErrSessionNotFound if no session exists
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the active room session (leave room)
	DeleteSession(ctx context.Context) error
}
