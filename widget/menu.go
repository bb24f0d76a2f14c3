// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"time"

	"trellisui.org/f32"
	"trellisui.org/io/event"
	"trellisui.org/io/input"
	"trellisui.org/io/key"
	"trellisui.org/io/pointer"
	"trellisui.org/io/system"
)

// MenuBar is a horizontal bar of menu items. It registers an access
// key layer so Alt+key opens its menus from the keyboard.
type MenuBar struct {
	Base
}

func NewMenuBar(items ...*MenuItem) *MenuBar {
	b := &MenuBar{}
	for _, it := range items {
		it.bar = b
		b.core.Append(it)
	}
	return b
}

func (b *MenuBar) Configure(cx *input.Context) {
	cx.NewAccessLayer(b.core.id, false)
}

func (b *MenuBar) Measure() f32.Point {
	var w float32
	for _, ch := range b.core.children {
		w += ch.Measure().X
	}
	return f32.Pt(w, 1)
}

func (b *MenuBar) SetRect(r f32.Rectangle) {
	b.core.rect = r
	x := r.Min.X
	for _, ch := range b.core.children {
		w := ch.Measure().X
		ch.SetRect(f32.Rectangle{
			Min: f32.Pt(x, r.Min.Y),
			Max: f32.Pt(x+w, r.Max.Y),
		}.Intersect(r))
		x += w
	}
}

func (b *MenuBar) Draw(d *DrawContext) {
	Fill(d.Screen, b.core.rect, d.Palette.Base, ' ')
}

// openItem returns the item whose menu popup is open, if any.
func (b *MenuBar) openItem() (*MenuItem, bool) {
	for _, ch := range b.core.children {
		if it, ok := ch.(*MenuItem); ok && it.open {
			return it, true
		}
	}
	return nil, false
}

// MenuItem is one entry of a MenuBar. A press or its access key
// opens the attached Menu as a popup; hovering an item while a
// sibling menu is open switches to it after the configured delay.
type MenuItem struct {
	Base
	Text string
	// Key is the item's access key within the bar, empty for none.
	Key key.Name

	bar  *MenuBar
	win  system.WindowId
	open bool
}

func NewMenuItem(text string, accessKey key.Name, menu *Menu) *MenuItem {
	it := &MenuItem{Text: text, Key: accessKey}
	it.core.navigable = true
	it.core.wantsHover = true
	it.core.cursor = pointer.CursorPointer
	menu.core.overlay = true
	it.core.Append(menu)
	return it
}

func (it *MenuItem) menu() *Menu {
	return it.core.children[0].(*Menu)
}

func (it *MenuItem) Configure(cx *input.Context) {
	if it.Key != "" {
		cx.AddAccessKey(it.core.id, it.Key)
	}
}

func (it *MenuItem) Measure() f32.Point {
	return f32.Pt(float32(len([]rune(it.Text)))+2, 1)
}

func (it *MenuItem) Handle(cx *input.Context, e event.Event) bool {
	switch e := e.(type) {
	case pointer.Event:
		switch e.Kind {
		case pointer.Press:
			if it.open {
				cx.ClosePopup(it.win)
			} else {
				it.openMenu(cx)
			}
			return true
		case pointer.Enter:
			if sib, ok := it.bar.openItem(); ok && sib != it {
				cx.RequestTimer(it.core.id, 0, time.Duration(cx.Config().MenuDelay))
			}
			cx.Redraw()
			return false
		}
	case system.TimerEvent:
		if sib, ok := it.bar.openItem(); ok && sib != it && cx.Hovered(it.core.id) {
			it.openMenu(cx)
		}
		return true
	case key.CommandEvent:
		if e.Command.IsActivate() {
			it.openMenu(cx)
			return true
		}
	case system.PopupClosedEvent:
		if e.Window == it.win {
			it.open = false
			cx.Redraw()
		}
		return true
	}
	return false
}

func (it *MenuItem) openMenu(cx *input.Context) {
	if it.open {
		return
	}
	if sib, ok := it.bar.openItem(); ok {
		cx.ClosePopup(sib.win)
	}
	it.win = cx.AddPopup(system.PopupDescriptor{
		Id:     it.menu().Core().id,
		Parent: it.core.id,
		Anchor: it.core.rect,
	})
	it.open = true
	cx.Redraw()
}

func (it *MenuItem) Draw(d *DrawContext) {
	r := it.core.rect
	style := d.StyleFor(it)
	if it.open {
		style = d.Palette.Accent.Reverse(true)
	}
	Fill(d.Screen, r, style, ' ')
	Print(d.Screen, int(r.Min.X)+1, int(r.Min.Y), int(r.Max.X), style, it.Text)
}

// Menu is a popup column of entries. It is an overlay: hidden from
// the base window until its item opens it. Its access layer bypasses
// the Alt gate, so entry keys work bare while the menu is open.
type Menu struct {
	Base
}

func NewMenu(entries ...*MenuEntry) *Menu {
	m := &Menu{}
	for _, e := range entries {
		m.core.Append(e)
	}
	return m
}

func (m *Menu) Configure(cx *input.Context) {
	cx.NewAccessLayer(m.core.id, true)
}

func (m *Menu) Measure() f32.Point {
	var w float32
	for _, ch := range m.core.children {
		if cw := ch.Measure().X; cw > w {
			w = cw
		}
	}
	return f32.Pt(w, float32(len(m.core.children)))
}

func (m *Menu) SetRect(r f32.Rectangle) {
	m.core.rect = r
	y := r.Min.Y
	for _, ch := range m.core.children {
		ch.SetRect(f32.Rectangle{
			Min: f32.Pt(r.Min.X, y),
			Max: f32.Pt(r.Max.X, y+1),
		}.Intersect(r))
		y++
	}
}

func (m *Menu) Draw(d *DrawContext) {
	Fill(d.Screen, m.core.rect, d.Palette.Base, ' ')
}

// MenuEntry is one selectable row of a Menu. Activating it runs
// OnSelect and closes the menu.
type MenuEntry struct {
	Base
	Text string
	// Key is the entry's access key within the open menu.
	Key      key.Name
	OnSelect func(cx *input.Context)
}

func NewMenuEntry(text string, accessKey key.Name, onSelect func(cx *input.Context)) *MenuEntry {
	e := &MenuEntry{Text: text, Key: accessKey, OnSelect: onSelect}
	e.core.navigable = true
	e.core.wantsHover = true
	e.core.cursor = pointer.CursorPointer
	return e
}

func (e *MenuEntry) Configure(cx *input.Context) {
	if e.Key != "" {
		cx.AddAccessKey(e.core.id, e.Key)
	}
}

func (e *MenuEntry) Measure() f32.Point {
	return f32.Pt(float32(len([]rune(e.Text)))+2, 1)
}

func (e *MenuEntry) Handle(cx *input.Context, ev event.Event) bool {
	switch ev := ev.(type) {
	case pointer.Event:
		if ev.Kind == pointer.Press {
			e.activate(cx)
			return true
		}
	case key.CommandEvent:
		if ev.Command.IsActivate() {
			e.activate(cx)
			return true
		}
	}
	return false
}

func (e *MenuEntry) activate(cx *input.Context) {
	if e.OnSelect != nil {
		e.OnSelect(cx)
	}
	cx.ClosePopupFor(e.core.id)
	cx.Redraw()
}

func (e *MenuEntry) Draw(d *DrawContext) {
	r := e.core.rect
	style := d.StyleFor(e)
	Fill(d.Screen, r, style, ' ')
	Print(d.Screen, int(r.Min.X)+1, int(r.Min.Y), int(r.Max.X), style, e.Text)
}
