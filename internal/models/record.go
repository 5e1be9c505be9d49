package models

import "time"

// Record представляет элемент реплицируемого состояния документа.
// Используется для синхронизации между участниками комнаты
// с автоматическим разрешением конфликтов по правилу LWW.
//
// Kind определяет, что лежит в записи:
//   - RecordKindField: Field-запись, Key = field id
//   - RecordKindApproval: флаг одобрения, Key = submitter id
type Record struct {
	CreatedAt time.Time `json:"created_at"` // CreatedAt время создания записи (для информации)
	UpdatedAt time.Time `json:"updated_at"` // UpdatedAt время последнего обновления (для информации)
	Kind      string    `json:"kind"`       // Kind вид записи: "field" или "approval"
	Key       string    `json:"key"`        // Key идентификатор внутри вида (field id / submitter id)
	NodeID    string    `json:"node_id"`    // NodeID идентификатор реплики, создавшей эту версию
	Field     *Field    `json:"field,omitempty"`
	Approved  bool      `json:"approved"`  // Approved значение для approval-записей
	Timestamp int64     `json:"timestamp"` // Timestamp Lamport timestamp для упорядочивания событий
	Deleted   bool      `json:"deleted"`   // Deleted флаг soft delete (true = запись удалена)
}

// Виды реплицируемых записей
const (
	RecordKindField    = "field"
	RecordKindApproval = "approval"
)

// MapKey возвращает ключ записи в реплицируемой map.
// Kind входит в ключ, чтобы field и approval записи
// с совпадающими идентификаторами не конфликтовали.
func (r *Record) MapKey() string {
	return r.Kind + "/" + r.Key
}

// IsNewerThan сравнивает две записи и определяет, какая из них новее.
// Согласно алгоритму LWW (Last-Write-Wins):
// 1. Сначала сравнивается Timestamp (больший выигрывает)
// 2. При равных Timestamp сравнивается NodeID (лексикографически)
// Возвращает true, если текущая запись новее, чем other.
func (r *Record) IsNewerThan(other *Record) bool {
	if r.Timestamp > other.Timestamp {
		return true
	}
	if r.Timestamp < other.Timestamp {
		return false
	}
	// Timestamps равны - сравниваем NodeID для детерминизма
	return r.NodeID > other.NodeID
}

// Clone создает глубокую копию записи
func (r *Record) Clone() *Record {
	clone := *r
	if r.Field != nil {
		clone.Field = r.Field.Clone()
	}
	return &clone
}
