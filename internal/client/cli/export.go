package cli

import (
	"context"
	"flag"
	"sort"

	"github.com/iudanet/notaryroom/internal/client/storage"
	"github.com/iudanet/notaryroom/internal/docstate"
	"github.com/iudanet/notaryroom/internal/export"
	"github.com/iudanet/notaryroom/pkg/api"
)

// RunExport собирает итоговый шаблон и доставляет его.
// Relay идет первым; при любой неудаче шаблон уходит в локальный файл
func (c *Cli) RunExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	passcodeArg := fs.String("passcode", "", "Room passcode (prefer NOTARYROOM_PASSCODE or -passcode-file)")
	passcodeFile := fs.String("passcode-file", "", "File containing the room passcode")
	if err := fs.Parse(args); err != nil {
		return err
	}

	passcode, err := c.readPasscode(Passcodes{FromFile: *passcodeFile, FromArgs: *passcodeArg})
	if err != nil {
		return err
	}

	meta, err := c.service.Resume(ctx, passcode)
	if err != nil {
		return err
	}

	snapshot := c.service.Store().Snapshot()

	// Участники онлайн нужны гейту одобрений: подключившийся, но еще
	// ничего не трогавший клиент не оставляет следов в реплике
	var online []api.Participant
	if presence, err := c.apiClient.Presence(ctx, meta.RoomID, meta.Token); err != nil {
		c.io.Printf("Online participants unavailable: %v\n", err)
	} else {
		online = presence.Participants
	}

	manifest := buildManifest(meta, snapshot, online)

	payload, err := export.BuildPayload(manifest, snapshot)
	if err != nil {
		return err
	}

	submitter := export.NewSubmitter(meta.ServerURL+"/api/v1/templates", c.exportDir, c.service.Logger())
	submitter.SetToken(meta.Token)

	result, err := submitter.Submit(ctx, payload)
	if err != nil {
		return err
	}

	if result.Remote {
		c.io.Printf("Template %q submitted to relay.\n", manifest.Name)
	} else {
		c.io.Printf("Relay unavailable, template saved to %s\n", result.Path)
	}
	return nil
}

// buildManifest собирает участников шаблона из всех известных источников:
// экспортирующий, участники онлайн, владельцы полей и каждый submitter
// из approvals-записей. Поля создает только нотариус, поэтому одних
// владельцев полей мало: клиент без единой записи одобрения или с
// отозванным одобрением обязан попасть в гейт экспорта.
func buildManifest(meta *storage.Session, snapshot docstate.Snapshot, online []api.Participant) export.Manifest {
	names := map[string]string{
		meta.SubmitterID: meta.DisplayName,
	}
	for _, participant := range online {
		if _, ok := names[participant.SubmitterID]; !ok {
			names[participant.SubmitterID] = participant.Name
		}
	}
	for _, field := range snapshot.Fields {
		if _, ok := names[field.SubmitterID]; !ok {
			names[field.SubmitterID] = field.Role
		}
	}
	for submitterID := range snapshot.Approvals {
		if _, ok := names[submitterID]; !ok {
			names[submitterID] = submitterID
		}
	}

	submitters := make([]api.Submitter, 0, len(names))
	for uuid, name := range names {
		submitters = append(submitters, api.Submitter{Name: name, UUID: uuid})
	}
	sort.Slice(submitters, func(i, j int) bool { return submitters[i].UUID < submitters[j].UUID })

	var schema []api.SchemaItem
	if meta.AttachmentUUID != "" {
		schema = []api.SchemaItem{{Name: meta.RoomName, AttachmentUUID: meta.AttachmentUUID}}
	}

	return export.Manifest{
		Name:       meta.RoomName,
		Schema:     schema,
		Submitters: submitters,
	}
}
