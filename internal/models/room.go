package models

import "time"

// Room комната нотариальной сессии на relay.
// Relay хранит только хеш производного access key: ни passcode,
// ни cache key участников ему не известны.
type Room struct {
	CreatedAt      time.Time
	ID             string
	Name           string
	NotaryID       string
	AccessKeyHash  string
	PasscodeSalt   string // base64
	AttachmentUUID string
}

// RoomDelta одна запись append-only журнала дельт комнаты.
// Payload сериализованная дельта в том же виде, в каком она
// ходит по websocket; relay ее не разбирает.
type RoomDelta struct {
	CreatedAt time.Time
	RoomID    string
	NodeID    string
	Payload   []byte
	Seq       int64
}

// TemplateSubmission принятый relay итоговый шаблон комнаты
type TemplateSubmission struct {
	CreatedAt time.Time
	ID        string
	RoomID    string
	Name      string
	Payload   []byte
}
