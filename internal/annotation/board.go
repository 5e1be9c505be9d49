package annotation

import (
	"sync"

	"github.com/iudanet/notaryroom/internal/models"
)

// Board накопительные списки аннотаций по страницам.
// Это локальная реплика аннотаций: события broadcast-канала
// складываются append-only, кросс-репличного merge нет,
// ClearOp сбрасывает страницу в пустое состояние.
type Board struct {
	drawings map[int][]models.DrawOp
	texts    map[int][]models.TextOp
	mu       sync.Mutex
}

// NewBoard создает пустую доску аннотаций
func NewBoard() *Board {
	return &Board{
		drawings: make(map[int][]models.DrawOp),
		texts:    make(map[int][]models.TextOp),
	}
}

// AppendDraw добавляет завершенный штрих на страницу
func (b *Board) AppendDraw(op models.DrawOp) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.drawings[op.Page] = append(b.drawings[op.Page], op)
}

// AppendText добавляет текстовый штамп на страницу
func (b *Board) AppendText(op models.TextOp) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.texts[op.Page] = append(b.texts[op.Page], op)
}

// Clear очищает рисунки и тексты одной страницы.
// Остальные страницы не затрагиваются. Отмены нет.
func (b *Board) Clear(page int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.drawings, page)
	delete(b.texts, page)
}

// Drawings возвращает копию накопленных штрихов страницы
func (b *Board) Drawings(page int) []models.DrawOp {
	b.mu.Lock()
	defer b.mu.Unlock()

	ops := b.drawings[page]
	result := make([]models.DrawOp, len(ops))
	copy(result, ops)
	return result
}

// Texts возвращает копию накопленных текстов страницы
func (b *Board) Texts(page int) []models.TextOp {
	b.mu.Lock()
	defer b.mu.Unlock()

	ops := b.texts[page]
	result := make([]models.TextOp, len(ops))
	copy(result, ops)
	return result
}
