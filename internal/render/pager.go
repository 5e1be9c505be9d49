package render

import (
	"context"
	"log/slog"
	"sync"
)

// Pager последовательно управляет отрисовкой страниц документа.
// Новый запрос страницы вытесняет незавершенный старый: результат
// устаревшей отрисовки отбрасывается, ее контекст отменяется.
// Применяется только результат самого свежего запроса.
type Pager struct {
	renderer Renderer
	logger   *slog.Logger
	onReady  func(page int, size PageSize)

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	page   int
}

// NewPager создает pager. onReady вызывается с размерами страницы,
// когда ее отрисовка завершена и не вытеснена более новым запросом.
func NewPager(renderer Renderer, onReady func(page int, size PageSize), logger *slog.Logger) *Pager {
	return &Pager{
		renderer: renderer,
		logger:   logger,
		onReady:  onReady,
	}
}

// Show запрашивает отрисовку страницы в масштабе scale.
// Незавершенная отрисовка предыдущей страницы отменяется.
func (p *Pager) Show(ctx context.Context, page int, scale float64) {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	renderCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.gen++
	gen := p.gen
	p.page = page
	p.mu.Unlock()

	go p.run(renderCtx, gen, page, scale)
}

// Page возвращает номер последней запрошенной страницы
func (p *Pager) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

func (p *Pager) run(ctx context.Context, gen uint64, page int, scale float64) {
	size, err := p.renderer.RenderPage(ctx, page, scale)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("page render failed", "page", page, "error", err)
		}
		return
	}

	p.mu.Lock()
	stale := gen != p.gen
	p.mu.Unlock()
	if stale {
		return
	}

	p.onReady(page, size)
}
