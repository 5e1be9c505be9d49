package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type penCanvas struct {
	width  float64
	height float64
}

func (c penCanvas) Dimensions() (float64, float64) { return c.width, c.height }

// decodeSent разбирает все сообщения, отправленные pen через mock-канал
func decodeSent(t *testing.T, dc *DataChannelMock) []*envelope {
	t.Helper()
	calls := dc.SendCalls()
	envs := make([]*envelope, 0, len(calls))
	for _, call := range calls {
		env, err := decode(call.Msg)
		require.NoError(t, err)
		envs = append(envs, env)
	}
	return envs
}

// TestPen_StrokeLifecycle: каждый pointer-move шлет двухточечный сегмент,
// pointer-up шлет полный путь и добавляет ровно одну запись локально.
func TestPen_StrokeLifecycle(t *testing.T) {
	board := NewBoard()
	dc := &DataChannelMock{SendFunc: func(string) error { return nil }}
	pen := NewPen(dc, board, penCanvas{width: 800, height: 1000}, testLogger())

	pen.PointerDown(100, 100)
	pen.PointerMove(200, 200)
	pen.PointerMove(300, 250)
	pen.PointerUp()

	envs := decodeSent(t, dc)
	require.Len(t, envs, 3)

	// Два live-сегмента от последней точки к текущей
	for _, env := range envs[:2] {
		require.Equal(t, opDraw, env.Op)
		assert.True(t, env.Draw.IsSegment())
		assert.True(t, env.Draw.Normalized)
	}
	assert.InDelta(t, 0.125, envs[0].Draw.Points[0].X, 1e-9)
	assert.InDelta(t, 0.25, envs[0].Draw.Points[1].X, 1e-9)

	// Завершенный штрих несет весь путь
	require.Equal(t, opDraw, envs[2].Op)
	assert.Len(t, envs[2].Draw.Points, 3)

	require.Len(t, board.Drawings(1), 1)
	assert.Len(t, board.Drawings(1)[0].Points, 3)
}

// TestPen_ShortStrokeDiscarded: клик без движения не дает штриха
func TestPen_ShortStrokeDiscarded(t *testing.T) {
	board := NewBoard()
	dc := &DataChannelMock{SendFunc: func(string) error { return nil }}
	pen := NewPen(dc, board, penCanvas{width: 800, height: 1000}, testLogger())

	pen.PointerDown(100, 100)
	pen.PointerUp()

	assert.Empty(t, dc.SendCalls())
	assert.Empty(t, board.Drawings(1))
}

func TestPen_MoveWithoutDown(t *testing.T) {
	board := NewBoard()
	dc := &DataChannelMock{SendFunc: func(string) error { return nil }}
	pen := NewPen(dc, board, penCanvas{width: 800, height: 1000}, testLogger())

	pen.PointerMove(200, 200)

	assert.Empty(t, dc.SendCalls())
}

func TestPen_PlaceTextAndClear(t *testing.T) {
	board := NewBoard()
	dc := &DataChannelMock{SendFunc: func(string) error { return nil }}
	pen := NewPen(dc, board, penCanvas{width: 800, height: 1000}, testLogger())
	pen.SetPage(2)

	pen.PlaceText(120, 300, "witnessed", 14)
	require.Len(t, board.Texts(2), 1)

	pen.ClearPage()
	assert.Empty(t, board.Texts(2))

	envs := decodeSent(t, dc)
	require.Len(t, envs, 2)
	assert.Equal(t, opText, envs[0].Op)
	assert.Equal(t, "witnessed", envs[0].Text.Value)
	assert.Equal(t, opClear, envs[1].Op)
	assert.Equal(t, 2, envs[1].Clear.Page)
}

// TestPen_Cursor: позиция курсора нормализуется по canvas отправителя,
// уход указателя шлет Visible=false.
func TestPen_Cursor(t *testing.T) {
	board := NewBoard()
	dc := &DataChannelMock{SendFunc: func(string) error { return nil }}
	pen := NewPen(dc, board, penCanvas{width: 400, height: 500}, testLogger())

	pen.MoveCursor(100, 250)
	pen.PointerLeave()

	envs := decodeSent(t, dc)
	require.Len(t, envs, 2)

	require.Equal(t, opCursor, envs[0].Op)
	assert.InDelta(t, 0.25, envs[0].Cursor.X, 1e-9)
	assert.InDelta(t, 0.5, envs[0].Cursor.Y, 1e-9)
	assert.True(t, envs[0].Cursor.Visible)

	assert.False(t, envs[1].Cursor.Visible)
}

// TestPen_SendErrorTolerated: отказ канала не ломает локальное состояние
func TestPen_SendErrorTolerated(t *testing.T) {
	board := NewBoard()
	dc := &DataChannelMock{SendFunc: func(string) error { return ErrMalformedMessage }}
	pen := NewPen(dc, board, penCanvas{width: 800, height: 1000}, testLogger())

	pen.PointerDown(100, 100)
	pen.PointerMove(200, 200)
	pen.PointerUp()

	assert.Len(t, board.Drawings(1), 1)
}
