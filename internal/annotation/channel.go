package annotation

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/notaryroom/internal/models"
)

//go:generate moq -out datachannel_mock.go . DataChannel
//go:generate moq -out overlay_mock.go . Overlay

// DataChannel точка-точка канал к единственному peer.
// Видеоколлаборатор отдает ровно такую возможность: send строки
// и событие message со строкой. Других гарантий канал не дает.
type DataChannel interface {
	Send(msg string) error
}

// Overlay поверхность поверх canvas страницы, на которую рисуются аннотации.
// Remote-merge код мутирует overlay только через эти два пути:
// инкрементальный сегмент или полная перерисовка страницы.
type Overlay interface {
	// DrawSegment рисует live-сегмент без перерисовки страницы
	DrawSegment(op models.DrawOp)

	// Redraw полностью перерисовывает overlay страницы из накопленных аннотаций
	Redraw(page int, drawings []models.DrawOp, texts []models.TextOp)

	// ShowCursor отображает курсор удаленного участника
	ShowCursor(op models.CursorOp)

	// HideCursor скрывает курсор удаленного участника
	HideCursor()
}

// envelope wire-формат сообщения канала аннотаций.
// Op различает четыре формы сообщений.
type envelope struct {
	Draw   *models.DrawOp   `json:"draw,omitempty"`
	Text   *models.TextOp   `json:"text,omitempty"`
	Clear  *models.ClearOp  `json:"clear,omitempty"`
	Cursor *models.CursorOp `json:"cursor,omitempty"`
	Op     string           `json:"op"`
}

// Типы сообщений канала
const (
	opDraw   = "draw"
	opText   = "text"
	opClear  = "clear"
	opCursor = "cursor"
)

// ErrMalformedMessage некорректное сообщение канала аннотаций
var ErrMalformedMessage = errors.New("malformed annotation message")

// defaultCursorInterval потолок частоты применения курсора (~60/с)
const defaultCursorInterval = 16 * time.Millisecond

// Channel принимающая сторона канала аннотаций: разбирает входящие
// сообщения, ведет накопительные списки и управляет overlay.
// Ошибки разбора полностью локализованы: логируются и отбрасываются.
type Channel struct {
	board   *Board
	overlay Overlay
	logger  *slog.Logger
	cursor  *cursorGate
}

// NewChannel создает принимающую сторону канала аннотаций
func NewChannel(board *Board, overlay Overlay, logger *slog.Logger) *Channel {
	return &Channel{
		board:   board,
		overlay: overlay,
		logger:  logger,
		cursor:  newCursorGate(defaultCursorInterval, overlay.ShowCursor, time.Now),
	}
}

// HandleMessage обрабатывает одно входящее сообщение канала.
// Некорректный payload не роняет принимающую сторону и не
// искажает накопительные списки.
func (c *Channel) HandleMessage(raw string) {
	env, err := decode(raw)
	if err != nil {
		c.logger.Warn("annotation message dropped", "error", err, "size", len(raw))
		return
	}

	switch env.Op {
	case opDraw:
		c.handleDraw(*env.Draw)
	case opText:
		c.board.AppendText(*env.Text)
		c.redraw(env.Text.Page)
	case opClear:
		c.board.Clear(env.Clear.Page)
		c.redraw(env.Clear.Page)
	case opCursor:
		c.handleCursor(*env.Cursor)
	}
}

// handleDraw различает live-сегмент и завершенный штрих по длине пути.
// Сегмент рисуется напрямую на overlay, минуя накопительный список,
// чтобы не платить полную перерисовку на каждом pointer-move.
func (c *Channel) handleDraw(op models.DrawOp) {
	if op.IsSegment() {
		c.overlay.DrawSegment(op)
		return
	}

	c.board.AppendDraw(op)
	c.redraw(op.Page)
}

// handleCursor применяет позицию курсора с ограничением частоты.
// Скрытие курсора применяется немедленно и отбрасывает хвостовую позицию.
func (c *Channel) handleCursor(op models.CursorOp) {
	if !op.Visible {
		c.cursor.Reset()
		c.overlay.HideCursor()
		return
	}

	c.cursor.Offer(op)
}

// redraw перерисовывает overlay страницы из накопленного состояния
func (c *Channel) redraw(page int) {
	c.overlay.Redraw(page, c.board.Drawings(page), c.board.Texts(page))
}

// decode разбирает и валидирует сообщение канала
func decode(raw string) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	switch env.Op {
	case opDraw:
		if env.Draw == nil || len(env.Draw.Points) < 2 {
			return nil, fmt.Errorf("%w: draw without points", ErrMalformedMessage)
		}
	case opText:
		if env.Text == nil {
			return nil, fmt.Errorf("%w: text without payload", ErrMalformedMessage)
		}
	case opClear:
		if env.Clear == nil {
			return nil, fmt.Errorf("%w: clear without payload", ErrMalformedMessage)
		}
	case opCursor:
		if env.Cursor == nil {
			return nil, fmt.Errorf("%w: cursor without payload", ErrMalformedMessage)
		}
	default:
		return nil, fmt.Errorf("%w: unknown op %q", ErrMalformedMessage, env.Op)
	}

	return &env, nil
}

// encode сериализует сообщение канала
func encode(env envelope) (string, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encode annotation message: %w", err)
	}
	return string(data), nil
}
