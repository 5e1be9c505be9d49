package storage

import "errors"

// Common client storage errors
var (
	// ErrSessionNotFound означает, что сохраненной сессии комнаты нет
	ErrSessionNotFound = errors.New("room session not found")

	// ErrReplicaNotFound означает, что локальной реплики комнаты нет
	ErrReplicaNotFound = errors.New("room replica not found")

	// ErrStorageClosed означает обращение к закрытому хранилищу
	ErrStorageClosed = errors.New("storage is closed")
)
