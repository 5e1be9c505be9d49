package annotation

import (
	"sync"
	"time"

	"github.com/iudanet/notaryroom/internal/models"
)

// cursorGate ограничивает частоту применения позиций курсора на приемнике.
// Быстрые обновления коалесцируются: применяется не чаще одного раза
// за interval. Подавленные позиции не теряются насовсем - самая свежая
// запоминается и применяется по истечении интервала, иначе курсор
// замирал бы не в конечной точке, когда указатель останавливается.
type cursorGate struct {
	now      func() time.Time
	after    func(time.Duration, func()) *time.Timer
	apply    func(models.CursorOp)
	last     time.Time
	interval time.Duration
	pending  *models.CursorOp
	timer    *time.Timer
	mu       sync.Mutex
}

// newCursorGate создает gate с заданным интервалом.
// apply вызывается для каждой прошедшей позиции без удержания мьютекса.
// now инжектируется для детерминированных тестов.
func newCursorGate(interval time.Duration, apply func(models.CursorOp), now func() time.Time) *cursorGate {
	return &cursorGate{
		interval: interval,
		apply:    apply,
		now:      now,
		after:    time.AfterFunc,
	}
}

// Offer принимает очередную позицию курсора: применяет немедленно,
// если интервал истек, иначе запоминает как хвостовую.
func (g *cursorGate) Offer(op models.CursorOp) {
	g.mu.Lock()

	current := g.now()
	if g.last.IsZero() || current.Sub(g.last) >= g.interval {
		g.last = current
		g.pending = nil
		g.stopTimerLocked()
		g.mu.Unlock()
		g.apply(op)
		return
	}

	// Интервал не истек: хвостовой таймер применит самую свежую позицию
	g.pending = &op
	if g.timer == nil {
		delay := g.interval - current.Sub(g.last)
		g.timer = g.after(delay, g.flush)
	}
	g.mu.Unlock()
}

// flush применяет отложенную хвостовую позицию
func (g *cursorGate) flush() {
	g.mu.Lock()
	op := g.pending
	g.pending = nil
	g.timer = nil
	if op == nil {
		g.mu.Unlock()
		return
	}
	g.last = g.now()
	g.mu.Unlock()

	g.apply(*op)
}

// Reset сбрасывает gate: отложенная позиция отбрасывается,
// следующее обновление пройдет без задержки.
// Вызывается при скрытии курсора.
func (g *cursorGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = nil
	g.stopTimerLocked()
	g.last = time.Time{}
}

func (g *cursorGate) stopTimerLocked() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}
