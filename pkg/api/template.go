package api

// TemplatePayload тело экспорта шаблона документа.
// Отправляется POST-запросом на submission endpoint; тот же JSON
// сохраняется в локальный файл при недоступности endpoint.
type TemplatePayload struct {
	Template Template `json:"template"`
}

// Template итоговый шаблон: документ, участники и все поля
type Template struct {
	Name       string          `json:"name"`
	Schema     []SchemaItem    `json:"schema"`
	Submitters []Submitter     `json:"submitters"`
	Fields     []TemplateField `json:"fields"`
}

// SchemaItem ссылка на исходный документ шаблона
type SchemaItem struct {
	Name           string `json:"name"`
	AttachmentUUID string `json:"attachment_uuid"`
}

// Submitter участник, фигурирующий в шаблоне
type Submitter struct {
	Name string `json:"name"`
	UUID string `json:"uuid"`
}

// SubmitTemplateResponse ответ relay на принятый шаблон
type SubmitTemplateResponse struct {
	SubmissionID string `json:"submission_id"`
}
