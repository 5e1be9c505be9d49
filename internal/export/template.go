// Package export собирает итоговый шаблон документа из состояния
// реплики и доставляет его: сначала POST на submission endpoint,
// при любой неудаче fallback в локальный JSON-файл.
package export

import (
	"errors"
	"fmt"
	"sort"

	"github.com/iudanet/notaryroom/internal/docstate"
	"github.com/iudanet/notaryroom/internal/syncnet"
	"github.com/iudanet/notaryroom/pkg/api"
)

// ErrApprovalPending экспорт заблокирован: одобрили не все участники.
// Это валидационная ошибка с сообщением пользователю, не сбой системы.
var ErrApprovalPending = errors.New("export blocked: not all participants approved")

// Manifest фиксированная часть шаблона: имя документа и участники
type Manifest struct {
	Name       string
	Schema     []api.SchemaItem
	Submitters []api.Submitter
}

// BuildPayload проверяет гейт одобрений и собирает payload шаблона.
// Экспорт разрешен только когда флаг каждого известного участника true;
// отсутствующий в map участник считается не одобрившим.
func BuildPayload(manifest Manifest, snapshot docstate.Snapshot) (*api.TemplatePayload, error) {
	var pending []string
	for _, submitter := range manifest.Submitters {
		if !snapshot.Approvals[submitter.UUID] {
			pending = append(pending, submitter.Name)
		}
	}
	if len(pending) > 0 {
		sort.Strings(pending)
		return nil, fmt.Errorf("%w: waiting for %v", ErrApprovalPending, pending)
	}

	fields := make([]api.TemplateField, 0, len(snapshot.Fields))
	for _, field := range snapshot.Fields {
		fields = append(fields, syncnet.FieldToAPI(field))
	}

	return &api.TemplatePayload{
		Template: api.Template{
			Name:       manifest.Name,
			Schema:     manifest.Schema,
			Submitters: manifest.Submitters,
			Fields:     fields,
		},
	}, nil
}
