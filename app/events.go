// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"trellisui.org/f32"
	"trellisui.org/io/key"
	"trellisui.org/io/pointer"
)

// wheelLines is the scroll distance of one wheel notch, in rows.
const wheelLines = 3

func (w *Window) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		w.tree.Layout(f32.Pt(float32(cols), float32(rows)))
		w.dirty = true
	case *tcell.EventMouse:
		w.handleMouse(ev.When(), ev)
	case *tcell.EventKey:
		w.handleKey(ev.When(), ev)
	case *tcell.EventFocus:
		w.router.WindowFocus(ev.When(), ev.Focused)
	case *tcell.EventClipboard:
		w.clip = string(ev.Data())
	case *tcell.EventInterrupt:
		// A Wake call; the flush after dispatch does the work.
	}
}

func (w *Window) handleMouse(t time.Time, ev *tcell.EventMouse) {
	x, y := ev.Position()
	// Aim at the cell center so hit tests land inside it.
	pos := f32.Pt(float32(x)+0.5, float32(y)+0.5)
	mods := translateMods(ev.Modifiers())
	btns := ev.Buttons()

	if pos != w.mouse {
		w.mouse = pos
		w.router.PointerMove(t, pos, mods)
	}
	if s := wheelScroll(btns); s != (f32.Point{}) {
		w.router.PointerScroll(t, pos, s, mods)
	}
	for _, m := range [...]struct {
		mask tcell.ButtonMask
		b    pointer.Buttons
	}{
		{tcell.ButtonPrimary, pointer.ButtonPrimary},
		{tcell.ButtonSecondary, pointer.ButtonSecondary},
		{tcell.ButtonMiddle, pointer.ButtonTertiary},
	} {
		was, is := w.buttons&m.mask != 0, btns&m.mask != 0
		if was != is {
			w.router.PointerButton(t, m.b, is, pos, mods)
		}
	}
	w.buttons = btns & (tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle)
}

func wheelScroll(btns tcell.ButtonMask) f32.Point {
	var s f32.Point
	if btns&tcell.WheelUp != 0 {
		s.Y -= wheelLines
	}
	if btns&tcell.WheelDown != 0 {
		s.Y += wheelLines
	}
	if btns&tcell.WheelLeft != 0 {
		s.X -= wheelLines
	}
	if btns&tcell.WheelRight != 0 {
		s.X += wheelLines
	}
	return s
}

// handleKey forwards one key chord. Terminals do not report key
// releases, so every press is paired with an immediate synthetic
// release.
func (w *Window) handleKey(t time.Time, ev *tcell.EventKey) {
	name, mods, text := translateKey(ev)
	if name == "" {
		return
	}
	w.router.Key(t, name, mods, key.Press)
	if text != "" {
		w.router.Text(t, text)
	}
	w.router.Key(t, name, 0, key.Release)
}

// translateKey maps a terminal key chord to the router vocabulary
// and the text it inserts, if any.
func translateKey(ev *tcell.EventKey) (key.Name, key.Modifiers, string) {
	mods := translateMods(ev.Modifiers())
	k := ev.Key()
	switch k {
	case tcell.KeyRune:
		r := ev.Rune()
		name := key.Name(strings.ToUpper(string(r)))
		if r == ' ' {
			name = key.NameSpace
		}
		var text string
		if mods&(key.ModCtrl|key.ModAlt|key.ModSuper) == 0 {
			text = string(r)
		}
		return name, mods, text
	case tcell.KeyEnter:
		return key.NameReturn, mods, ""
	case tcell.KeyTab:
		return key.NameTab, mods, ""
	case tcell.KeyBacktab:
		return key.NameTab, mods | key.ModShift, ""
	case tcell.KeyEscape:
		return key.NameEscape, mods, ""
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NameDeleteBackward, mods, ""
	case tcell.KeyDelete:
		return key.NameDeleteForward, mods, ""
	case tcell.KeyUp:
		return key.NameUpArrow, mods, ""
	case tcell.KeyDown:
		return key.NameDownArrow, mods, ""
	case tcell.KeyLeft:
		return key.NameLeftArrow, mods, ""
	case tcell.KeyRight:
		return key.NameRightArrow, mods, ""
	case tcell.KeyHome:
		return key.NameHome, mods, ""
	case tcell.KeyEnd:
		return key.NameEnd, mods, ""
	case tcell.KeyPgUp:
		return key.NamePageUp, mods, ""
	case tcell.KeyPgDn:
		return key.NamePageDown, mods, ""
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return key.Name(fmt.Sprintf("F%d", k-tcell.KeyF1+1)), mods, ""
	}
	// Control chords arrive as dedicated key codes.
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.Name(rune('A' + k - tcell.KeyCtrlA)), mods | key.ModCtrl, ""
	}
	return "", 0, ""
}

func translateMods(m tcell.ModMask) key.Modifiers {
	var mods key.Modifiers
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModSuper
	}
	return mods
}
