package crdt

import (
	"sync"

	"github.com/iudanet/notaryroom/internal/models"
)

// LWWMap представляет Last-Write-Wins реплицируемую map записей документа,
// ключом служит Record.MapKey() (kind/key). Для каждого ключа хранится
// целая запись: обновление заменяет запись полностью, без поэлементного
// merge вложенных структур. Merge коммутативен и идемпотентен, поэтому
// реплики сходятся при любом порядке и кратности доставки дельт.
type LWWMap struct {
	records map[string]*models.Record
	mu      sync.RWMutex
}

// NewLWWMap создает пустую LWW map
func NewLWWMap() *LWWMap {
	return &LWWMap{
		records: make(map[string]*models.Record),
	}
}

// Apply применяет запись к map по правилу LWW:
// запись сохраняется, только если ее (timestamp, node_id) больше существующей.
// Повторное применение той же записи ничего не меняет.
// Возвращает true, если состояние map изменилось.
func (m *LWWMap) Apply(record *models.Record) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := record.MapKey()
	existing, exists := m.records[key]

	if !exists {
		m.records[key] = record.Clone()
		return true
	}

	if record.IsNewerThan(existing) {
		m.records[key] = record.Clone()
		return true
	}

	return false
}

// Get возвращает запись по kind и key.
// Возвращает nil, если записи нет или она помечена удаленной.
func (m *LWWMap) Get(kind, key string) *models.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, exists := m.records[kind+"/"+key]
	if !exists || record.Deleted {
		return nil
	}

	return record.Clone()
}

// Live возвращает все неудаленные записи
func (m *LWWMap) Live() []*models.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*models.Record, 0, len(m.records))
	for _, record := range m.records {
		if !record.Deleted {
			result = append(result, record.Clone())
		}
	}

	return result
}

// All возвращает все записи, включая tombstones.
// Используется для персистентности и полной синхронизации реплик.
func (m *LWWMap) All() []*models.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*models.Record, 0, len(m.records))
	for _, record := range m.records {
		result = append(result, record.Clone())
	}

	return result
}

// Merge объединяет текущую map с другой map.
// Для каждого ключа применяется правило LWW.
// Операция коммутативна и идемпотентна.
func (m *LWWMap) Merge(other *LWWMap) {
	for _, record := range other.All() {
		m.Apply(record)
	}
}

// Size возвращает количество неудаленных записей
func (m *LWWMap) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, record := range m.records {
		if !record.Deleted {
			count++
		}
	}

	return count
}

// MaxTimestamp возвращает максимальный timestamp среди всех записей.
// Используется для восстановления часов после загрузки реплики из хранилища.
func (m *LWWMap) MaxTimestamp() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var maxTS int64
	for _, record := range m.records {
		if record.Timestamp > maxTS {
			maxTS = record.Timestamp
		}
	}

	return maxTS
}
