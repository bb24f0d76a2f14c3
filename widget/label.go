// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"trellisui.org/f32"
)

// Label is a line of static text.
type Label struct {
	Base
	Text string
}

func NewLabel(text string) *Label {
	return &Label{Text: text}
}

func (l *Label) Measure() f32.Point {
	return f32.Pt(float32(len([]rune(l.Text))), 1)
}

func (l *Label) Draw(d *DrawContext) {
	r := l.core.rect
	Print(d.Screen, int(r.Min.X), int(r.Min.Y), int(r.Max.X), d.Palette.Base, l.Text)
}
