package models

import "time"

// FieldType типы полей документа.
// Закрытый набор: для каждого типа в комнате может существовать
// только одно поле с активным владельцем (см. used-fields index).
const (
	FieldTypeText      = "text"
	FieldTypeSignature = "signature"
	FieldTypeDate      = "date"
	FieldTypeCheckbox  = "checkbox"
	FieldTypeSelect    = "select"
)

// fieldTitles человекочитаемые названия полей по типу
var fieldTitles = map[string]string{
	FieldTypeText:      "Text",
	FieldTypeSignature: "Signature",
	FieldTypeDate:      "Date",
	FieldTypeCheckbox:  "Checkbox",
	FieldTypeSelect:    "Select",
}

// ValidFieldType проверяет, входит ли тип в закрытый набор типов полей
func ValidFieldType(fieldType string) bool {
	_, ok := fieldTitles[fieldType]
	return ok
}

// FieldTitle возвращает display label для типа поля.
// Для неизвестного типа возвращает сам тип.
func FieldTitle(fieldType string) string {
	if title, ok := fieldTitles[fieldType]; ok {
		return title
	}
	return fieldType
}

// DefaultFieldValue возвращает значение по умолчанию для типа поля.
// Date-поля автоматически заполняются текущей датой в ISO формате.
func DefaultFieldValue(fieldType string, now time.Time) string {
	if fieldType == FieldTypeDate {
		return now.Format("2006-01-02")
	}
	return ""
}

// Area представляет размещение поля на одной странице документа.
// Координаты нормализованы в [0,1] относительно canvas страницы,
// поэтому переносимы между репликами с разным размером рендеринга.
type Area struct {
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	W              float64 `json:"w"`
	H              float64 `json:"h"`
	Page           int     `json:"page"` // номер страницы, 1-based
	AttachmentUUID string  `json:"attachment_uuid"`
}

// Field представляет один элемент формы документа
type Field struct {
	Preferences  map[string]string `json:"preferences,omitempty"` // открытая key/value конфигурация (например, формат даты)
	ID           string            `json:"id"`                    // уникальный идентификатор (UUID), неизменяемый после создания
	Type         string            `json:"type"`                  // один из FieldType* констант
	Title        string            `json:"title"`                 // display label, производный от типа
	Name         string            `json:"name"`                  // имя поля в шаблоне
	SubmitterID  string            `json:"submitter_id"`          // владелец: участник, создавший поле
	Role         string            `json:"role"`                  // display name создателя, используется для подписей
	DefaultValue string            `json:"default_value,omitempty"`
	Areas        []Area            `json:"areas"` // по одному размещению на каждую страницу
	Required     bool              `json:"required"`
}

// Clone создает глубокую копию поля
func (f *Field) Clone() *Field {
	clone := *f

	if f.Areas != nil {
		clone.Areas = make([]Area, len(f.Areas))
		copy(clone.Areas, f.Areas)
	}

	if f.Preferences != nil {
		clone.Preferences = make(map[string]string, len(f.Preferences))
		for k, v := range f.Preferences {
			clone.Preferences[k] = v
		}
	}

	return &clone
}

// AreaIndexForPage возвращает индекс area для заданной страницы.
// Возвращает -1, если поле не размещено на этой странице.
func (f *Field) AreaIndexForPage(page int) int {
	for i := range f.Areas {
		if f.Areas[i].Page == page {
			return i
		}
	}
	return -1
}
