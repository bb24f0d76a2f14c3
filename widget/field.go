// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"trellisui.org/f32"
	"trellisui.org/io/event"
	"trellisui.org/io/input"
	"trellisui.org/io/key"
	"trellisui.org/io/pointer"
)

// Field is a single-line text input. It takes selection and
// character focus on press and edits through EditEvents and
// commands.
type Field struct {
	Base
	OnSubmit func(cx *input.Context, text string)

	text  []rune
	caret int
}

func NewField() *Field {
	f := &Field{}
	f.core.navigable = true
	f.core.cursor = pointer.CursorText
	return f
}

// Text returns the field content.
func (f *Field) Text() string {
	return string(f.text)
}

// SetText replaces the field content and moves the caret to its
// end.
func (f *Field) SetText(s string) {
	f.text = []rune(s)
	f.caret = len(f.text)
}

func (f *Field) Measure() f32.Point {
	return f32.Pt(20, 1)
}

func (f *Field) Handle(cx *input.Context, e event.Event) bool {
	switch e := e.(type) {
	case pointer.Event:
		if e.Kind != pointer.Press {
			return false
		}
		cx.SetNavFocus(f.core.id, key.SourcePointer)
		cx.SetSelFocus(f.core.id, true)
		f.caret = f.caretAt(e.Position.X)
		cx.Redraw()
		return cx.Grab(f.core.id, e, input.GrabClick)
	case key.EditEvent:
		f.insert(e.Text)
		cx.Redraw()
		return true
	case key.CommandEvent:
		return f.command(cx, e.Command)
	case key.FocusEvent, key.SelectionEvent:
		cx.Redraw()
		return true
	}
	return false
}

func (f *Field) command(cx *input.Context, cmd key.Command) bool {
	switch cmd {
	case key.CommandLeft:
		f.moveCaret(-1)
	case key.CommandRight:
		f.moveCaret(1)
	case key.CommandHome, key.CommandDocHome:
		f.caret = 0
	case key.CommandEnd, key.CommandDocEnd:
		f.caret = len(f.text)
	case key.CommandDelBack:
		if f.caret > 0 {
			f.text = append(f.text[:f.caret-1], f.text[f.caret:]...)
			f.caret--
		}
	case key.CommandDelete:
		if f.caret < len(f.text) {
			f.text = append(f.text[:f.caret], f.text[f.caret+1:]...)
		}
	case key.CommandCopy:
		cx.WriteClipboard(string(f.text))
	case key.CommandCut:
		cx.WriteClipboard(string(f.text))
		f.text = f.text[:0]
		f.caret = 0
	case key.CommandPaste:
		f.insert(cx.ReadClipboard())
	case key.CommandEnter:
		if f.OnSubmit != nil {
			f.OnSubmit(cx, string(f.text))
		}
	case key.CommandEscape:
		// First Escape gives up the selection; the next one is free
		// to reach outer targets such as an open popup.
		if !cx.SelFocused(f.core.id) {
			return false
		}
		cx.SetSelFocus(event.Id{}, false)
	default:
		return false
	}
	cx.Redraw()
	return true
}

func (f *Field) insert(s string) {
	for _, r := range s {
		if r == '\n' || r == '\r' {
			continue
		}
		f.text = append(f.text[:f.caret], append([]rune{r}, f.text[f.caret:]...)...)
		f.caret++
	}
}

func (f *Field) moveCaret(d int) {
	f.caret += d
	if f.caret < 0 {
		f.caret = 0
	}
	if f.caret > len(f.text) {
		f.caret = len(f.text)
	}
}

func (f *Field) caretAt(x float32) int {
	i := int(x - f.core.rect.Min.X)
	if i < 0 {
		i = 0
	}
	if i > len(f.text) {
		i = len(f.text)
	}
	return i
}

func (f *Field) Draw(d *DrawContext) {
	r := f.core.rect
	style := d.Palette.Base.Underline(true)
	Fill(d.Screen, r, style, ' ')
	Print(d.Screen, int(r.Min.X), int(r.Min.Y), int(r.Max.X), style, string(f.text))
	if d.State.CharFocused(f.core.id) {
		x := int(r.Min.X) + f.caret
		if x < int(r.Max.X) {
			c := ' '
			if f.caret < len(f.text) {
				c = f.text[f.caret]
			}
			d.Screen.SetCell(x, int(r.Min.Y), style.Reverse(true), c)
		}
	}
}
