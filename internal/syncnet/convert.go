package syncnet

import (
	"github.com/iudanet/notaryroom/internal/models"
	"github.com/iudanet/notaryroom/pkg/api"
)

// toAPIRecord конвертирует внутреннюю запись в wire формат
func toAPIRecord(record *models.Record) api.Record {
	out := api.Record{
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
		Kind:      record.Kind,
		Key:       record.Key,
		NodeID:    record.NodeID,
		Approved:  record.Approved,
		Timestamp: record.Timestamp,
		Deleted:   record.Deleted,
	}
	if record.Field != nil {
		field := FieldToAPI(record.Field)
		out.Field = &field
	}
	return out
}

// fromAPIRecord конвертирует wire запись во внутреннюю модель
func fromAPIRecord(record api.Record) *models.Record {
	out := &models.Record{
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
		Kind:      record.Kind,
		Key:       record.Key,
		NodeID:    record.NodeID,
		Approved:  record.Approved,
		Timestamp: record.Timestamp,
		Deleted:   record.Deleted,
	}
	if record.Field != nil {
		out.Field = FieldFromAPI(*record.Field)
	}
	return out
}

// FieldToAPI конвертирует поле документа в wire/export представление.
// Используется также экспортным pipeline.
func FieldToAPI(field *models.Field) api.TemplateField {
	out := api.TemplateField{
		Preferences:  field.Preferences,
		ID:           field.ID,
		Type:         field.Type,
		Title:        field.Title,
		Name:         field.Name,
		SubmitterID:  field.SubmitterID,
		Role:         field.Role,
		DefaultValue: field.DefaultValue,
		Required:     field.Required,
	}
	out.Areas = make([]api.FieldArea, 0, len(field.Areas))
	for _, area := range field.Areas {
		out.Areas = append(out.Areas, api.FieldArea{
			X:              area.X,
			Y:              area.Y,
			W:              area.W,
			H:              area.H,
			Page:           area.Page,
			AttachmentUUID: area.AttachmentUUID,
		})
	}
	return out
}

// FieldFromAPI конвертирует wire представление поля во внутреннюю модель
func FieldFromAPI(field api.TemplateField) *models.Field {
	out := &models.Field{
		Preferences:  field.Preferences,
		ID:           field.ID,
		Type:         field.Type,
		Title:        field.Title,
		Name:         field.Name,
		SubmitterID:  field.SubmitterID,
		Role:         field.Role,
		DefaultValue: field.DefaultValue,
		Required:     field.Required,
	}
	out.Areas = make([]models.Area, 0, len(field.Areas))
	for _, area := range field.Areas {
		out.Areas = append(out.Areas, models.Area{
			X:              area.X,
			Y:              area.Y,
			W:              area.W,
			H:              area.H,
			Page:           area.Page,
			AttachmentUUID: area.AttachmentUUID,
		})
	}
	return out
}
