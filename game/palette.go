package game

import (
	"drawbattle/canvas"
	"drawbattle/domain"
)

// Palette maps player slots to their lobby ink. Slot i belongs to PlayerId
// i+1. Every peer must use the same palette or replicas diverge.
type Palette []canvas.Color

var DefaultPalette = Palette{
	{R: 230, G: 57, B: 70, A: 255},
	{R: 29, G: 120, B: 230, A: 255},
	{R: 46, G: 170, B: 80, A: 255},
	{R: 245, G: 190, B: 30, A: 255},
	{R: 150, G: 80, B: 200, A: 255},
	{R: 240, G: 120, B: 30, A: 255},
	{R: 30, G: 190, B: 190, A: 255},
	{R: 90, G: 90, B: 90, A: 255},
}

func (p Palette) ColorOf(id domain.PlayerId) (canvas.Color, bool) {
	i := int(id) - 1
	if i < 0 || i >= len(p) {
		return canvas.Transparent, false
	}
	return p[i], true
}
