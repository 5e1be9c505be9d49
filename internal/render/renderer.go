// Package render описывает границу с внешним рендерером документа.
// Ядро не растеризует PDF само: оно потребляет возможность отрисовать
// страницу на предоставленной поверхности и узнать ее пиксельные размеры.
package render

import (
	"context"
	"errors"
)

//go:generate moq -out renderer_mock.go . Renderer

// Размеры синтетической страницы, когда документ не загрузился
const (
	fallbackPageWidth  = 800
	fallbackPageHeight = 1000
)

// ErrDocumentUnavailable документ не удалось загрузить
var ErrDocumentUnavailable = errors.New("document unavailable")

// PageSize пиксельные размеры отрисованной страницы
type PageSize struct {
	Width  float64
	Height float64
}

// Renderer возможность внешнего коллаборатора отрисовки.
// RenderPage рисует страницу page в масштабе scale и возвращает
// пиксельные размеры результата. PageCount сообщает число страниц.
type Renderer interface {
	RenderPage(ctx context.Context, page int, scale float64) (PageSize, error)
	PageCount() int
}

// Fallback рендерер единственной синтетической страницы.
// Используется, когда исходный документ недоступен: участники
// продолжают работать с полями и аннотациями на пустом холсте.
type Fallback struct{}

// NewFallback создает рендерер синтетической страницы
func NewFallback() *Fallback {
	return &Fallback{}
}

func (f *Fallback) RenderPage(_ context.Context, page int, scale float64) (PageSize, error) {
	if page != 1 {
		return PageSize{}, ErrDocumentUnavailable
	}
	if scale <= 0 {
		scale = 1
	}
	return PageSize{
		Width:  fallbackPageWidth * scale,
		Height: fallbackPageHeight * scale,
	}, nil
}

func (f *Fallback) PageCount() int { return 1 }
