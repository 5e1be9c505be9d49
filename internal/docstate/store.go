package docstate

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/iudanet/notaryroom/internal/crdt"
	"github.com/iudanet/notaryroom/internal/models"
)

// Snapshot полностью материализованное состояние документа.
// Пересчитывается из реплицируемой map после каждого merge и
// передается подписчикам целиком.
type Snapshot struct {
	// UsedFields индекс эксклюзивности: тип поля -> submitter id владельца.
	// Ключ присутствует тогда и только тогда, когда существует
	// хотя бы одно живое поле этого типа.
	UsedFields map[string]string

	// Approvals флаги одобрения по submitter id.
	// Отсутствующий участник считается не одобрившим.
	Approvals map[string]bool

	// Fields живые поля документа, отсортированные по ID
	Fields []*models.Field
}

// FieldPatch частичное обновление поля. Nil-поля не трогаются.
// Применение patch заменяет запись поля целиком (whole-record LWW),
// вложенные areas не мержатся поэлементно между репликами.
type FieldPatch struct {
	Title        *string
	Name         *string
	DefaultValue *string
	Required     *bool
	Preferences  map[string]string
	Areas        []models.Area
}

// Store авторитетная локальная реплика состояния документа:
// поля, одобрения и used-fields индекс поверх LWW map.
// Все мутации коммутативны и идемпотентны при повторной доставке,
// поэтому реплики сходятся при любом порядке обмена дельтами.
type Store struct {
	set     *crdt.LWWMap
	clock   *crdt.LamportClock
	logger  *slog.Logger
	subs    map[int]func(Snapshot)
	onDelta func(*models.Record)
	nextSub int
	mu      sync.Mutex
}

// New создает новый Store с уникальным идентификатором реплики
func New(logger *slog.Logger) *Store {
	return &Store{
		set:    crdt.NewLWWMap(),
		clock:  crdt.NewLamportClock(),
		logger: logger,
		subs:   make(map[int]func(Snapshot)),
	}
}

// NewWithNodeID создает Store с заданным идентификатором реплики.
// Используется в тестах и при восстановлении реплики из хранилища.
func NewWithNodeID(nodeID string, logger *slog.Logger) *Store {
	return &Store{
		set:    crdt.NewLWWMap(),
		clock:  crdt.NewLamportClockWithNodeID(nodeID),
		logger: logger,
		subs:   make(map[int]func(Snapshot)),
	}
}

// NodeID возвращает идентификатор этой реплики
func (s *Store) NodeID() string {
	return s.clock.NodeID()
}

// OnDelta устанавливает обработчик исходящих дельт.
// Вызывается транспортным адаптером: каждая локальная мутация
// порождает ровно одну дельту для рассылки остальным репликам.
func (s *Store) OnDelta(fn func(*models.Record)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDelta = fn
}

// Subscribe регистрирует подписчика на изменения состояния.
// Callback вызывается синхронно после каждого merge с полным snapshot.
// Возвращает функцию отписки.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Snapshot возвращает текущее материализованное состояние
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.materialize()
}

// AddField добавляет поле в документ.
// Store не перепроверяет эксклюзивность типа: валидация прав и
// used-fields выполняется на editing surface до вызова
// (документированная граница доверия).
func (s *Store) AddField(field *models.Field) {
	record := &models.Record{
		Kind:  models.RecordKindField,
		Key:   field.ID,
		Field: field.Clone(),
	}
	s.applyLocal(record)
}

// UpdateField применяет частичное обновление к существующему полю.
// No-op, если поля нет или оно удалено.
func (s *Store) UpdateField(id string, patch FieldPatch) {
	s.mu.Lock()
	existing := s.set.Get(models.RecordKindField, id)
	s.mu.Unlock()

	if existing == nil || existing.Field == nil {
		s.logger.Debug("update for missing field ignored", "field_id", id)
		return
	}

	field := existing.Field.Clone()
	if patch.Title != nil {
		field.Title = *patch.Title
	}
	if patch.Name != nil {
		field.Name = *patch.Name
	}
	if patch.DefaultValue != nil {
		field.DefaultValue = *patch.DefaultValue
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.Preferences != nil {
		field.Preferences = patch.Preferences
	}
	if patch.Areas != nil {
		field.Areas = patch.Areas
	}

	record := &models.Record{
		Kind:  models.RecordKindField,
		Key:   id,
		Field: field,
	}
	s.applyLocal(record)
}

// DeleteField удаляет поле (tombstone). Запись остается в map
// для сходимости с репликами, которые еще не видели удаление.
// Used-fields индекс пересчитывается из живых полей, поэтому
// тип освобождается автоматически вместе с последним полем.
func (s *Store) DeleteField(id string) {
	s.mu.Lock()
	existing := s.set.Get(models.RecordKindField, id)
	s.mu.Unlock()

	if existing == nil {
		s.logger.Debug("delete for missing field ignored", "field_id", id)
		return
	}

	record := &models.Record{
		Kind:    models.RecordKindField,
		Key:     id,
		Deleted: true,
	}
	s.applyLocal(record)
}

// SetApproval устанавливает флаг одобрения участника.
// Surface гарантирует, что участник меняет только собственный флаг.
func (s *Store) SetApproval(submitterID string, approved bool) {
	record := &models.Record{
		Kind:     models.RecordKindApproval,
		Key:      submitterID,
		Approved: approved,
	}
	s.applyLocal(record)
}

// ApplyRemote применяет дельту, полученную от другой реплики.
// Безопасно при out-of-order и повторной доставке: merge идемпотентен,
// подписчики уведомляются только если состояние действительно изменилось.
func (s *Store) ApplyRemote(record *models.Record) {
	s.clock.Observe(record.Timestamp)

	s.mu.Lock()
	changed := s.set.Apply(record)
	var snapshot Snapshot
	var subs []func(Snapshot)
	if changed {
		snapshot = s.materialize()
		subs = s.subscribers()
	}
	s.mu.Unlock()

	if !changed {
		s.logger.Debug("stale remote delta ignored",
			"kind", record.Kind,
			"key", record.Key,
			"timestamp", record.Timestamp)
		return
	}

	for _, fn := range subs {
		fn(snapshot)
	}
}

// Records возвращает все записи реплики, включая tombstones.
// Используется для сохранения реплики в локальное хранилище.
func (s *Store) Records() []*models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.All()
}

// Bootstrap загружает записи из локального хранилища без рассылки дельт.
// Часы устанавливаются по максимальному увиденному timestamp, чтобы
// новые локальные мутации были упорядочены после восстановленных.
func (s *Store) Bootstrap(records []*models.Record) {
	s.mu.Lock()
	for _, record := range records {
		s.set.Apply(record)
	}
	if maxTS := s.set.MaxTimestamp(); maxTS > s.clock.Timestamp() {
		s.clock.SetTimestamp(maxTS)
	}
	snapshot := s.materialize()
	subs := s.subscribers()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// applyLocal присваивает мутации timestamp, применяет ее к локальной map,
// уведомляет подписчиков и передает дельту транспорту
func (s *Store) applyLocal(record *models.Record) {
	now := time.Now().UTC()
	record.NodeID = s.clock.NodeID()
	record.Timestamp = s.clock.Tick()
	record.CreatedAt = now
	record.UpdatedAt = now

	s.mu.Lock()
	s.set.Apply(record)
	snapshot := s.materialize()
	subs := s.subscribers()
	onDelta := s.onDelta
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}

	if onDelta != nil {
		onDelta(record.Clone())
	}
}

// materialize пересчитывает snapshot из реплицируемой map.
// Вызывается под mu.
func (s *Store) materialize() Snapshot {
	snapshot := Snapshot{
		UsedFields: make(map[string]string),
		Approvals:  make(map[string]bool),
	}

	for _, record := range s.set.Live() {
		switch record.Kind {
		case models.RecordKindField:
			if record.Field != nil {
				snapshot.Fields = append(snapshot.Fields, record.Field)
			}
		case models.RecordKindApproval:
			snapshot.Approvals[record.Key] = record.Approved
		}
	}

	sort.Slice(snapshot.Fields, func(i, j int) bool {
		return snapshot.Fields[i].ID < snapshot.Fields[j].ID
	})

	// Surface не дает создать два поля одного типа, но конкурентные
	// создания на разных репликах могут проскочить локальную проверку.
	// Владелец выбирается от поля с наименьшим ID, одинаково на всех репликах.
	for _, field := range snapshot.Fields {
		if _, taken := snapshot.UsedFields[field.Type]; !taken {
			snapshot.UsedFields[field.Type] = field.SubmitterID
		}
	}

	return snapshot
}

// subscribers возвращает срез подписчиков. Вызывается под mu.
func (s *Store) subscribers() []func(Snapshot) {
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}
