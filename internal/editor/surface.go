package editor

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/notaryroom/internal/docstate"
	"github.com/iudanet/notaryroom/internal/models"
)

// Role роль участника сессии
type Role string

// Роли участников
const (
	RoleNotary Role = "notary"
	RoleClient Role = "client"
)

// Identity личность участника, от имени которого работает surface
type Identity struct {
	SubmitterID string
	Name        string
	Role        Role
}

// Canvas отдает пиксельные размеры текущей поверхности рендеринга.
// Запрашивается в момент каждой операции, а не кэшируется:
// зум меняет размеры canvas между жестами.
type Canvas interface {
	Dimensions() (width, height float64)
}

// Placement поле вместе с его пиксельным прямоугольником
// на текущем canvas. Используется для отрисовки виджетов.
type Placement struct {
	Field *models.Field
	Rect  Rect
}

// Surface транслирует жесты пользователя в мутации Store,
// применяя правила ролей и эксклюзивности типов до любой мутации.
// Не-notary участник видит поля, но не может их менять.
type Surface struct {
	store          *docstate.Store
	canvas         Canvas
	logger         *slog.Logger
	identity       Identity
	attachmentUUID string
	snapshot       docstate.Snapshot
	page           int
	mu             sync.Mutex
}

// NewSurface создает editing surface для одного участника.
// Surface подписывается на Store и держит последний snapshot.
func NewSurface(store *docstate.Store, canvas Canvas, identity Identity, attachmentUUID string, logger *slog.Logger) *Surface {
	s := &Surface{
		store:          store,
		canvas:         canvas,
		logger:         logger,
		identity:       identity,
		attachmentUUID: attachmentUUID,
		snapshot:       store.Snapshot(),
		page:           1,
	}

	store.Subscribe(func(snap docstate.Snapshot) {
		s.mu.Lock()
		s.snapshot = snap
		s.mu.Unlock()
	})

	return s
}

// Identity возвращает личность участника surface
func (s *Surface) Identity() Identity {
	return s.identity
}

// SetPage переключает текущую страницу документа
func (s *Surface) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
}

// Page возвращает текущую страницу
func (s *Surface) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// CreateField создает поле заданного типа по пиксельному прямоугольнику
// на текущей странице. Разрешено только notary и только если тип свободен.
// Пиксели нормализуются по размерам canvas в момент вызова.
func (s *Surface) CreateField(fieldType string, rect Rect) (*models.Field, error) {
	if s.identity.Role != RoleNotary {
		return nil, ErrNotNotary
	}
	if !models.ValidFieldType(fieldType) {
		return nil, ErrInvalidFieldType
	}

	s.mu.Lock()
	owner, taken := s.snapshot.UsedFields[fieldType]
	page := s.page
	s.mu.Unlock()

	if taken {
		s.logger.Debug("field type already claimed",
			"type", fieldType,
			"owner", owner)
		return nil, ErrFieldTypeInUse
	}

	canvasW, canvasH := s.canvas.Dimensions()
	normalized := NormalizeRect(rect, canvasW, canvasH)

	title := models.FieldTitle(fieldType)
	field := &models.Field{
		ID:           uuid.New().String(),
		Type:         fieldType,
		Title:        title,
		Name:         title,
		SubmitterID:  s.identity.SubmitterID,
		Role:         s.identity.Name,
		DefaultValue: models.DefaultFieldValue(fieldType, time.Now()),
		Areas: []models.Area{
			{
				X:              normalized.X,
				Y:              normalized.Y,
				W:              normalized.W,
				H:              normalized.H,
				Page:           page,
				AttachmentUUID: s.attachmentUUID,
			},
		},
	}
	if fieldType == models.FieldTypeDate {
		field.Preferences = map[string]string{"format": "YYYY-MM-DD"}
	}

	s.store.AddField(field)
	return field, nil
}

// MoveResizeField обновляет area поля на текущей странице по новому
// пиксельному прямоугольнику. Вызывается на каждом шаге drag/resize.
// Areas других страниц не трогаются: поле может лежать на нескольких
// страницах с независимыми размещениями.
func (s *Surface) MoveResizeField(fieldID string, rect Rect) error {
	if s.identity.Role != RoleNotary {
		return ErrNotNotary
	}

	s.mu.Lock()
	field := s.findField(fieldID)
	page := s.page
	s.mu.Unlock()

	if field == nil {
		return ErrFieldNotFound
	}

	canvasW, canvasH := s.canvas.Dimensions()
	normalized := NormalizeRect(rect, canvasW, canvasH)
	area := models.Area{
		X:              normalized.X,
		Y:              normalized.Y,
		W:              normalized.W,
		H:              normalized.H,
		Page:           page,
		AttachmentUUID: s.attachmentUUID,
	}

	areas := make([]models.Area, len(field.Areas))
	copy(areas, field.Areas)
	if idx := field.AreaIndexForPage(page); idx >= 0 {
		areas[idx] = area
	} else {
		areas = append(areas, area)
	}

	s.store.UpdateField(fieldID, docstate.FieldPatch{Areas: areas})
	return nil
}

// DeleteField удаляет поле. Только notary.
func (s *Surface) DeleteField(fieldID string) error {
	if s.identity.Role != RoleNotary {
		return ErrNotNotary
	}

	s.mu.Lock()
	field := s.findField(fieldID)
	s.mu.Unlock()

	if field == nil {
		return ErrFieldNotFound
	}

	s.store.DeleteField(fieldID)
	return nil
}

// ToggleApproval переключает флаг одобрения самого участника.
// Чужой флаг через surface изменить невозможно.
func (s *Surface) ToggleApproval() bool {
	s.mu.Lock()
	current := s.snapshot.Approvals[s.identity.SubmitterID]
	s.mu.Unlock()

	s.store.SetApproval(s.identity.SubmitterID, !current)
	return !current
}

// Approved сообщает, одобрил ли участник документ
func (s *Surface) Approved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Approvals[s.identity.SubmitterID]
}

// CanEdit сообщает, доступны ли участнику интерактивные операции.
// Для роли client все handles отрисовываются disabled.
func (s *Surface) CanEdit() bool {
	return s.identity.Role == RoleNotary
}

// Snapshot возвращает последнее известное surface состояние документа
func (s *Surface) Snapshot() docstate.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// PlacementsForPage возвращает поля страницы с пиксельными прямоугольниками,
// денормализованными по текущим размерам canvas этого участника.
func (s *Surface) PlacementsForPage(page int) []Placement {
	s.mu.Lock()
	fields := s.snapshot.Fields
	s.mu.Unlock()

	canvasW, canvasH := s.canvas.Dimensions()

	var placements []Placement
	for _, field := range fields {
		idx := field.AreaIndexForPage(page)
		if idx < 0 {
			continue
		}
		area := field.Areas[idx]
		placements = append(placements, Placement{
			Field: field,
			Rect: DenormalizeRect(Rect{
				X: area.X, Y: area.Y, W: area.W, H: area.H,
			}, canvasW, canvasH),
		})
	}

	return placements
}

// findField ищет живое поле в последнем snapshot. Вызывается под mu.
func (s *Surface) findField(fieldID string) *models.Field {
	for _, field := range s.snapshot.Fields {
		if field.ID == fieldID {
			return field
		}
	}
	return nil
}
