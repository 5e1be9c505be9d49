package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalizeRoundTrip: нормализация на canvas отправителя и
// денормализация на canvas получателя другого размера должны
// сохранить пропорциональную позицию.
func TestNormalizeRoundTrip(t *testing.T) {
	pixel := Rect{X: 100, Y: 100, W: 150, H: 30}

	normalized := NormalizeRect(pixel, 800, 1000)
	assert.Equal(t, 0.125, normalized.X)
	assert.Equal(t, 0.1, normalized.Y)
	assert.Equal(t, 0.1875, normalized.W)
	assert.Equal(t, 0.03, normalized.H)

	remote := DenormalizeRect(normalized, 400, 500)
	assert.Equal(t, 50.0, remote.X)
	assert.Equal(t, 50.0, remote.Y)
	assert.Equal(t, 75.0, remote.W)
	assert.Equal(t, 15.0, remote.H)
}

func TestNormalizeRect_Clamped(t *testing.T) {
	// Прямоугольник за пределами canvas ограничивается [0,1]
	normalized := NormalizeRect(Rect{X: -10, Y: 1200, W: 900, H: 50}, 800, 1000)
	assert.Equal(t, 0.0, normalized.X)
	assert.Equal(t, 1.0, normalized.Y)
	assert.Equal(t, 1.0, normalized.W)
	assert.Equal(t, 0.05, normalized.H)
}

func TestNormalizeRect_DegenerateCanvas(t *testing.T) {
	assert.Equal(t, Rect{}, NormalizeRect(Rect{X: 10, Y: 10, W: 5, H: 5}, 0, 1000))
	assert.Equal(t, Rect{}, NormalizeRect(Rect{X: 10, Y: 10, W: 5, H: 5}, 800, -1))
}
