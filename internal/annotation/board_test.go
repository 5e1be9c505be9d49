package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/notaryroom/internal/models"
)

func TestBoard_AppendAndRead(t *testing.T) {
	board := NewBoard()

	board.AppendDraw(models.DrawOp{Page: 1, Points: []models.Point{{X: 0.1, Y: 0.1}, {X: 0.2, Y: 0.2}, {X: 0.3, Y: 0.3}}})
	board.AppendText(models.TextOp{Page: 1, Value: "sign here"})
	board.AppendDraw(models.DrawOp{Page: 2, Points: []models.Point{{X: 0.5, Y: 0.5}, {X: 0.6, Y: 0.6}, {X: 0.7, Y: 0.7}}})

	assert.Len(t, board.Drawings(1), 1)
	assert.Len(t, board.Texts(1), 1)
	assert.Len(t, board.Drawings(2), 1)
	assert.Empty(t, board.Drawings(3))
}

// TestBoard_ClearSemantics: очистка страницы 2 опустошает оба
// накопительных списка этой страницы, не трогая остальные.
func TestBoard_ClearSemantics(t *testing.T) {
	board := NewBoard()
	stroke := []models.Point{{X: 0.1, Y: 0.1}, {X: 0.2, Y: 0.2}, {X: 0.3, Y: 0.3}}

	board.AppendDraw(models.DrawOp{Page: 1, Points: stroke})
	board.AppendText(models.TextOp{Page: 1, Value: "keep"})
	board.AppendDraw(models.DrawOp{Page: 2, Points: stroke})
	board.AppendText(models.TextOp{Page: 2, Value: "wipe"})

	board.Clear(2)

	assert.Empty(t, board.Drawings(2))
	assert.Empty(t, board.Texts(2))
	assert.Len(t, board.Drawings(1), 1)
	assert.Len(t, board.Texts(1), 1)
}

func TestBoard_ReadReturnsCopy(t *testing.T) {
	board := NewBoard()
	board.AppendDraw(models.DrawOp{Page: 1, Points: []models.Point{{X: 0.1, Y: 0.1}, {X: 0.2, Y: 0.2}, {X: 0.3, Y: 0.3}}})

	drawings := board.Drawings(1)
	drawings[0].Page = 99

	assert.Equal(t, 1, board.Drawings(1)[0].Page)
}
