package editor

// Rect прямоугольник в пиксельных координатах canvas
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// NormalizeRect переводит пиксельный прямоугольник в нормализованные
// координаты [0,1] относительно размеров canvas. Нормализованное
// представление - единственное переносимое между репликами: участники
// рендерят одну и ту же страницу с разным пиксельным размером.
func NormalizeRect(r Rect, canvasW, canvasH float64) Rect {
	if canvasW <= 0 || canvasH <= 0 {
		return Rect{}
	}
	return Rect{
		X: clamp01(r.X / canvasW),
		Y: clamp01(r.Y / canvasH),
		W: clamp01(r.W / canvasW),
		H: clamp01(r.H / canvasH),
	}
}

// DenormalizeRect переводит нормализованный прямоугольник в пиксели
// принимающего canvas, сохраняя пропорциональную позицию.
func DenormalizeRect(r Rect, canvasW, canvasH float64) Rect {
	return Rect{
		X: r.X * canvasW,
		Y: r.Y * canvasH,
		W: r.W * canvasW,
		H: r.H * canvasH,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
