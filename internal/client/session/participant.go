package session

import (
	"context"
	"log/slog"

	"github.com/iudanet/notaryroom/internal/annotation"
	"github.com/iudanet/notaryroom/internal/client/storage"
	"github.com/iudanet/notaryroom/internal/docstate"
	"github.com/iudanet/notaryroom/internal/editor"
	"github.com/iudanet/notaryroom/internal/render"
)

// UI стороны, которые предоставляет слой отображения.
// Session их не реализует: canvas и канал аннотаций принадлежат
// видеоколлаборатору, overlay и onPage - рендерингу.
type UI struct {
	Canvas      editor.Canvas
	PenCanvas   annotation.Canvas
	DataChannel annotation.DataChannel
	Overlay     annotation.Overlay
	Renderer    render.Renderer
	OnPageReady func(page int, size render.PageSize)
}

// Participant рабочие поверхности одного участника комнаты:
// редактирование полей, аннотации и постраничный рендер поверх
// общей реплики документа.
type Participant struct {
	Surface *editor.Surface
	Pen     *annotation.Pen
	Channel *annotation.Channel
	Pager   *render.Pager
	Board   *annotation.Board
}

// NewParticipant собирает поверхности участника из активной сессии.
// Все зависимости передаются явно, глобального состояния нет.
func NewParticipant(store *docstate.Store, meta *storage.Session, ui UI, logger *slog.Logger) *Participant {
	identity := editor.Identity{
		SubmitterID: meta.SubmitterID,
		Name:        meta.DisplayName,
		Role:        editor.Role(meta.Role),
	}

	board := annotation.NewBoard()

	return &Participant{
		Surface: editor.NewSurface(store, ui.Canvas, identity, meta.AttachmentUUID, logger),
		Pen:     annotation.NewPen(ui.DataChannel, board, ui.PenCanvas, logger),
		Channel: annotation.NewChannel(board, ui.Overlay, logger),
		Pager:   render.NewPager(ui.Renderer, ui.OnPageReady, logger),
		Board:   board,
	}
}

// IsNotary сообщает, создает ли участник поля или только наблюдает
func (p *Participant) IsNotary() bool {
	return p.Surface.Identity().Role == editor.RoleNotary
}

// ShowPage синхронно переключает страницу поверхностей и запускает
// асинхронный рендер: поля и аннотации страницы доступны сразу,
// изображение приходит через OnPageReady.
func (p *Participant) ShowPage(ctx context.Context, page int, scale float64) {
	p.Surface.SetPage(page)
	p.Pen.SetPage(page)
	p.Pager.Show(ctx, page, scale)
}
