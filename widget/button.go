// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"trellisui.org/f32"
	"trellisui.org/io/event"
	"trellisui.org/io/input"
	"trellisui.org/io/key"
	"trellisui.org/io/pointer"
)

// Button is a clickable widget. Activation, by pointer release over
// the button or an activation command, calls OnClick.
type Button struct {
	Base
	Text    string
	OnClick func(cx *input.Context)
}

func NewButton(text string, onClick func(cx *input.Context)) *Button {
	b := &Button{Text: text, OnClick: onClick}
	b.core.navigable = true
	b.core.wantsHover = true
	b.core.cursor = pointer.CursorPointer
	return b
}

func (b *Button) Measure() f32.Point {
	return f32.Pt(float32(len([]rune(b.Text)))+2, 1)
}

func (b *Button) Handle(cx *input.Context, e event.Event) bool {
	switch e := e.(type) {
	case pointer.Event:
		switch e.Kind {
		case pointer.Press:
			if e.Source == pointer.Mouse && e.Button != pointer.ButtonPrimary {
				return false
			}
			cx.SetNavFocus(b.core.id, key.SourcePointer)
			return cx.Grab(b.core.id, e, input.GrabClick)
		case pointer.Release:
			if b.core.id.IsAncestorOf(e.Over) {
				b.activate(cx)
			}
			return true
		case pointer.Cancel:
			return true
		}
	case key.CommandEvent:
		if e.Command.IsActivate() {
			b.activate(cx)
			return true
		}
	}
	return false
}

func (b *Button) activate(cx *input.Context) {
	if b.OnClick != nil {
		b.OnClick(cx)
	}
	cx.Redraw()
}

func (b *Button) Draw(d *DrawContext) {
	r := b.core.rect
	style := d.StyleFor(b)
	Fill(d.Screen, r, style, ' ')
	Print(d.Screen, int(r.Min.X)+1, int(r.Min.Y), int(r.Max.X), style, b.Text)
}
