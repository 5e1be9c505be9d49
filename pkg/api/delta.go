package api

import "time"

// Record представляет одну дельту реплицируемого состояния документа.
// Передается бинарным websocket-фреймом (JSON) между репликами комнаты.
// Комната определяется соединением, поэтому в дельте не дублируется.
type Record struct {
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Kind      string         `json:"kind"` // "field" или "approval"
	Key       string         `json:"key"`
	NodeID    string         `json:"node_id"`
	Field     *TemplateField `json:"field,omitempty"`
	Approved  bool           `json:"approved"`
	Timestamp int64          `json:"timestamp"`
	Deleted   bool           `json:"deleted"`
}

// FieldArea размещение поля на странице в нормализованных координатах [0,1]
type FieldArea struct {
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	W              float64 `json:"w"`
	H              float64 `json:"h"`
	Page           int     `json:"page"`
	AttachmentUUID string  `json:"attachment_uuid"`
}

// TemplateField поле документа в wire/export представлении.
// Соответствует Field record из модели документа один в один.
type TemplateField struct {
	Preferences  map[string]string `json:"preferences,omitempty"`
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	Title        string            `json:"title"`
	Name         string            `json:"name"`
	SubmitterID  string            `json:"submitter_id"`
	Role         string            `json:"role"`
	DefaultValue string            `json:"default_value,omitempty"`
	Areas        []FieldArea       `json:"areas"`
	Required     bool              `json:"required"`
}
