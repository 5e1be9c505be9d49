package annotation

import (
	"log/slog"
	"sync"

	"github.com/iudanet/notaryroom/internal/models"
)

// Canvas отдает пиксельные размеры поверхности рисования отправителя.
// Координаты нормализуются по размерам отправителя и денормализуются
// по размерам получателя - так участники с разным зумом видят
// аннотации в одинаковой относительной позиции.
type Canvas interface {
	Dimensions() (width, height float64)
}

// Pen передающая сторона канала аннотаций. Во время рисования буферизует
// растущий путь штриха локально и с каждым pointer-move немедленно
// шлет двухточечный live-сегмент, удерживая задержку отображения
// на удаленной стороне в пределах одного сегмента.
type Pen struct {
	channel DataChannel
	board   *Board
	canvas  Canvas
	logger  *slog.Logger
	color   string
	points  []models.Point
	width   float64
	page    int
	mu      sync.Mutex
}

// NewPen создает передающую сторону канала аннотаций
func NewPen(channel DataChannel, board *Board, canvas Canvas, logger *slog.Logger) *Pen {
	return &Pen{
		channel: channel,
		board:   board,
		canvas:  canvas,
		logger:  logger,
		color:   "#000000",
		width:   2,
		page:    1,
	}
}

// SetPage переключает страницу, на которой рисует pen
func (p *Pen) SetPage(page int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page = page
	p.points = nil
}

// SetStyle задает цвет и толщину следующих штрихов
func (p *Pen) SetStyle(color string, width float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.color = color
	p.width = width
}

// PointerDown начинает новый штрих в пиксельной точке
func (p *Pen) PointerDown(x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.points = []models.Point{p.normalize(x, y)}
}

// PointerMove продолжает штрих. Немедленно шлет live-сегмент
// от последней буферизованной точки к текущей.
func (p *Pen) PointerMove(x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.points) == 0 {
		return
	}

	point := p.normalize(x, y)
	last := p.points[len(p.points)-1]
	p.points = append(p.points, point)

	p.send(envelope{Op: opDraw, Draw: &models.DrawOp{
		Page:       p.page,
		Points:     []models.Point{last, point},
		Color:      p.color,
		Width:      p.width,
		Normalized: true,
	}})
}

// PointerUp завершает штрих: полный накопленный путь уходит одним DrawOp
// и добавляется в локальный накопительный список. Именно эта запись
// используется при полной перерисовке страницы.
func (p *Pen) PointerUp() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.points) < 2 {
		p.points = nil
		return
	}

	stroke := models.DrawOp{
		Page:       p.page,
		Points:     p.points,
		Color:      p.color,
		Width:      p.width,
		Normalized: true,
	}
	p.points = nil

	p.board.AppendDraw(stroke)
	p.send(envelope{Op: opDraw, Draw: &stroke})
}

// PlaceText ставит текстовый штамп и рассылает его
func (p *Pen) PlaceText(x, y float64, value string, fontSize float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	op := models.TextOp{
		Page:     p.page,
		X:        x,
		Y:        y,
		Value:    value,
		FontSize: fontSize,
		Color:    p.color,
	}

	p.board.AppendText(op)
	p.send(envelope{Op: opText, Text: &op})
}

// ClearPage очищает текущую страницу локально и на удаленной стороне
func (p *Pen) ClearPage() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.board.Clear(p.page)
	p.send(envelope{Op: opClear, Clear: &models.ClearOp{Page: p.page}})
}

// MoveCursor рассылает позицию курсора. Отправитель не троттлит:
// коалесцирование выполняет приемник.
func (p *Pen) MoveCursor(x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	point := p.normalize(x, y)
	p.send(envelope{Op: opCursor, Cursor: &models.CursorOp{
		X:          point.X,
		Y:          point.Y,
		Page:       p.page,
		Visible:    true,
		Normalized: true,
	}})
}

// PointerLeave скрывает курсор на удаленной стороне
func (p *Pen) PointerLeave() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.send(envelope{Op: opCursor, Cursor: &models.CursorOp{
		Page:    p.page,
		Visible: false,
	}})
}

// normalize переводит пиксельную точку в [0,1] по размерам canvas отправителя
func (p *Pen) normalize(x, y float64) models.Point {
	w, h := p.canvas.Dimensions()
	if w <= 0 || h <= 0 {
		return models.Point{}
	}
	return models.Point{X: x / w, Y: y / h}
}

// send сериализует и отправляет одно сообщение best-effort
func (p *Pen) send(env envelope) {
	msg, err := encode(env)
	if err != nil {
		p.logger.Error("failed to encode annotation message", "op", env.Op, "error", err)
		return
	}

	if err := p.channel.Send(msg); err != nil {
		p.logger.Warn("failed to send annotation message", "op", env.Op, "error", err)
	}
}
