package models

// Point точка штриха в нормализованных координатах [0,1]
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DrawOp представляет штрих свободного рисования на странице.
// Путь из двух точек - это live-сегмент незавершенного штриха:
// он рисуется сразу, но не попадает в накопительный список страницы.
// Путь из трех и более точек - завершенный штрих, который
// добавляется в накопительный список и переживает перерисовку страницы.
type DrawOp struct {
	Color      string  `json:"color"`
	Points     []Point `json:"points"`
	Width      float64 `json:"width"`
	Page       int     `json:"page"`
	Normalized bool    `json:"normalized"` // координаты нормализованы отправителем
}

// IsSegment сообщает, является ли штрих live-сегментом (две точки)
func (op *DrawOp) IsSegment() bool {
	return len(op.Points) == 2
}

// TextOp текстовый штамп на странице
type TextOp struct {
	Value    string  `json:"value"`
	Color    string  `json:"color"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FontSize float64 `json:"font_size"`
	Page     int     `json:"page"`
}

// ClearOp очищает все рисунки и текстовые штампы страницы.
// Операция авторитарна и необратима на обеих сторонах.
type ClearOp struct {
	Page int `json:"page"`
}

// CursorOp позиция курсора отправителя.
// Visible false означает, что указатель покинул canvas.
type CursorOp struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Page       int     `json:"page"`
	Visible    bool    `json:"visible"`
	Normalized bool    `json:"normalized"`
}
