// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"github.com/gdamore/tcell/v2"

	"trellisui.org/f32"
	"trellisui.org/io/input"
)

// Screen is the cell grid widgets draw onto. The shell clips writes
// to the window.
type Screen interface {
	// SetCell writes one rune cell.
	SetCell(x, y int, style tcell.Style, r rune)
	// Size returns the grid size in cells.
	Size() (int, int)
}

// Palette is the resolved theme widgets draw with.
type Palette struct {
	Base     tcell.Style
	Accent   tcell.Style
	Disabled tcell.Style
}

// DrawContext carries the drawing surface, palette and the router
// state a widget's appearance depends on.
type DrawContext struct {
	Screen  Screen
	Palette Palette
	State   *input.Router
}

// StyleFor returns the style for w's current interaction state:
// disabled wins, then depress or navigation focus render accented.
func (d *DrawContext) StyleFor(w Widget) tcell.Style {
	c := w.Core()
	switch {
	case d.State.IsDisabled(c.id):
		return d.Palette.Disabled
	case d.State.IsDepressed(c.id):
		return d.Palette.Accent.Reverse(true)
	case d.State.NavFocused(c.id):
		return d.Palette.Accent
	case c.wantsHover && d.State.Hovered(c.id):
		return d.Palette.Base.Bold(true)
	default:
		return d.Palette.Base
	}
}

type clipScreen struct {
	Screen
	clip f32.Rectangle
}

func (c clipScreen) SetCell(x, y int, style tcell.Style, r rune) {
	if !f32.Pt(float32(x), float32(y)).In(c.clip) {
		return
	}
	c.Screen.SetCell(x, y, style, r)
}

// Clipped returns s restricted to r; writes outside it are dropped.
func Clipped(s Screen, r f32.Rectangle) Screen {
	return clipScreen{Screen: s, clip: r}
}

// Fill writes r to every cell of rect.
func Fill(s Screen, rect f32.Rectangle, style tcell.Style, r rune) {
	for y := int(rect.Min.Y); y < int(rect.Max.Y); y++ {
		for x := int(rect.Min.X); x < int(rect.Max.X); x++ {
			s.SetCell(x, y, style, r)
		}
	}
}

// Print writes text starting at (x, y), clipped to maxX.
func Print(s Screen, x, y, maxX int, style tcell.Style, text string) {
	for _, r := range text {
		if x >= maxX {
			return
		}
		s.SetCell(x, y, style, r)
		x++
	}
}
