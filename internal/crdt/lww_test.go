package crdt

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/notaryroom/internal/models"
)

func fieldRecord(key, nodeID string, ts int64) *models.Record {
	return &models.Record{
		Kind:      models.RecordKindField,
		Key:       key,
		NodeID:    nodeID,
		Timestamp: ts,
		Field: &models.Field{
			ID:          key,
			Type:        models.FieldTypeText,
			SubmitterID: nodeID,
		},
	}
}

func TestLWWMap_Apply(t *testing.T) {
	m := NewLWWMap()

	// Новая запись всегда применяется
	assert.True(t, m.Apply(fieldRecord("f-1", "nodeA", 1)))

	// Более новая версия заменяет
	assert.True(t, m.Apply(fieldRecord("f-1", "nodeA", 2)))

	// Более старая версия игнорируется
	assert.False(t, m.Apply(fieldRecord("f-1", "nodeA", 1)))

	got := m.Get(models.RecordKindField, "f-1")
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.Timestamp)
}

func TestLWWMap_ApplyIdempotent(t *testing.T) {
	m := NewLWWMap()
	record := fieldRecord("f-1", "nodeA", 5)

	assert.True(t, m.Apply(record))
	// Повторная доставка той же дельты не меняет состояние
	assert.False(t, m.Apply(record))
	assert.False(t, m.Apply(record))

	assert.Equal(t, 1, m.Size())
}

func TestLWWMap_Tombstone(t *testing.T) {
	m := NewLWWMap()
	m.Apply(fieldRecord("f-1", "nodeA", 1))

	tombstone := fieldRecord("f-1", "nodeA", 2)
	tombstone.Deleted = true
	tombstone.Field = nil
	assert.True(t, m.Apply(tombstone))

	assert.Nil(t, m.Get(models.RecordKindField, "f-1"))
	assert.Equal(t, 0, m.Size())
	// Tombstone остается для синхронизации
	assert.Len(t, m.All(), 1)

	// Конкурентный update со старым timestamp не воскрешает запись
	assert.False(t, m.Apply(fieldRecord("f-1", "nodeB", 1)))
	assert.Nil(t, m.Get(models.RecordKindField, "f-1"))
}

func TestLWWMap_TimestampTieBreak(t *testing.T) {
	m := NewLWWMap()

	m.Apply(fieldRecord("f-1", "nodeA", 10))
	// Тот же timestamp, больший NodeID выигрывает детерминированно
	assert.True(t, m.Apply(fieldRecord("f-1", "nodeB", 10)))
	assert.False(t, m.Apply(fieldRecord("f-1", "nodeA", 10)))

	got := m.Get(models.RecordKindField, "f-1")
	require.NotNil(t, got)
	assert.Equal(t, "nodeB", got.NodeID)
}

// TestLWWMap_Convergence проверяет основное свойство CRDT:
// применение одного и того же набора дельт в любом порядке,
// с дублированием доставки, дает одинаковое состояние на обеих репликах.
func TestLWWMap_Convergence(t *testing.T) {
	deltas := []*models.Record{
		fieldRecord("f-1", "nodeA", 1),
		fieldRecord("f-1", "nodeB", 3),
		fieldRecord("f-2", "nodeB", 2),
		fieldRecord("f-2", "nodeA", 2), // tie: проигрывает nodeB
		fieldRecord("f-3", "nodeA", 4),
		{Kind: models.RecordKindApproval, Key: "sub-1", NodeID: "nodeA", Timestamp: 5, Approved: true},
		{Kind: models.RecordKindApproval, Key: "sub-2", NodeID: "nodeB", Timestamp: 6, Approved: false},
	}
	tombstone := fieldRecord("f-3", "nodeB", 7)
	tombstone.Deleted = true
	deltas = append(deltas, tombstone)

	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 20; trial++ {
		replicaA := NewLWWMap()
		replicaB := NewLWWMap()

		// Реплика A получает дельты в исходном порядке
		for _, d := range deltas {
			replicaA.Apply(d)
		}

		// Реплика B - в случайном порядке, каждую дельту дважды
		shuffled := make([]*models.Record, len(deltas))
		copy(shuffled, deltas)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		for _, d := range shuffled {
			replicaB.Apply(d)
			replicaB.Apply(d)
		}

		assertSameState(t, replicaA, replicaB)
	}
}

func TestLWWMap_Merge(t *testing.T) {
	a := NewLWWMap()
	b := NewLWWMap()

	a.Apply(fieldRecord("f-1", "nodeA", 1))
	a.Apply(fieldRecord("f-2", "nodeA", 5))
	b.Apply(fieldRecord("f-1", "nodeB", 3))
	b.Apply(fieldRecord("f-3", "nodeB", 2))

	a.Merge(b)
	b.Merge(a)

	assertSameState(t, a, b)

	got := a.Get(models.RecordKindField, "f-1")
	require.NotNil(t, got)
	assert.Equal(t, "nodeB", got.NodeID)
}

func TestLWWMap_MaxTimestamp(t *testing.T) {
	m := NewLWWMap()
	assert.Equal(t, int64(0), m.MaxTimestamp())

	m.Apply(fieldRecord("f-1", "nodeA", 3))
	m.Apply(fieldRecord("f-2", "nodeA", 7))
	tombstone := fieldRecord("f-2", "nodeA", 9)
	tombstone.Deleted = true
	m.Apply(tombstone)

	assert.Equal(t, int64(9), m.MaxTimestamp())
}

// assertSameState сравнивает полное состояние двух реплик, включая tombstones
func assertSameState(t *testing.T, a, b *LWWMap) {
	t.Helper()

	byKey := func(m *LWWMap) map[string]*models.Record {
		result := make(map[string]*models.Record)
		for _, r := range m.All() {
			result[r.MapKey()] = r
		}
		return result
	}

	stateA := byKey(a)
	stateB := byKey(b)
	require.Equal(t, len(stateA), len(stateB))

	for key, recA := range stateA {
		recB, ok := stateB[key]
		require.True(t, ok, "key %s missing in replica B", key)
		assert.Equal(t, recA.Timestamp, recB.Timestamp, key)
		assert.Equal(t, recA.NodeID, recB.NodeID, key)
		assert.Equal(t, recA.Deleted, recB.Deleted, key)
		assert.Equal(t, recA.Approved, recB.Approved, key)
	}
}
