package crdt

import (
	"sync"

	"github.com/google/uuid"
)

// LamportClock представляет логические часы Лампорта для упорядочивания
// мутаций документа между репликами без синхронизации физического времени.
type LamportClock struct {
	nodeID  string     // уникальный идентификатор реплики
	counter int64      // монотонно возрастающий счетчик
	mu      sync.Mutex // мьютекс для потокобезопасности
}

// NewLamportClock создает новые логические часы
// с уникальным идентификатором реплики (UUID).
func NewLamportClock() *LamportClock {
	return &LamportClock{
		nodeID: uuid.New().String(),
	}
}

// NewLamportClockWithNodeID создает логические часы с заданным идентификатором
// реплики. Используется в тестах и при восстановлении состояния из хранилища.
func NewLamportClockWithNodeID(nodeID string) *LamportClock {
	return &LamportClock{
		nodeID: nodeID,
	}
}

// Tick увеличивает счетчик и возвращает новое значение timestamp.
// Вызывается при каждой локальной мутации документа.
func (lc *LamportClock) Tick() int64 {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.counter++
	return lc.counter
}

// Observe обновляет счетчик на основе timestamp, полученного от другой реплики.
// Согласно алгоритму Лампорта: counter = max(local_counter, remote_timestamp) + 1.
// Гарантирует, что следующая локальная мутация будет упорядочена после всех
// уже увиденных удаленных мутаций.
func (lc *LamportClock) Observe(remoteTimestamp int64) int64 {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if remoteTimestamp > lc.counter {
		lc.counter = remoteTimestamp
	}
	lc.counter++

	return lc.counter
}

// Timestamp возвращает текущее значение счетчика без его изменения
func (lc *LamportClock) Timestamp() int64 {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	return lc.counter
}

// NodeID возвращает уникальный идентификатор реплики
func (lc *LamportClock) NodeID() string {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	return lc.nodeID
}

// SetTimestamp устанавливает счетчик в заданное значение.
// Используется при восстановлении состояния после перезапуска.
func (lc *LamportClock) SetTimestamp(timestamp int64) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.counter = timestamp
}
