// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"testing"

	"trellisui.org/f32"
	"trellisui.org/io/event"
	"trellisui.org/io/key"
	"trellisui.org/io/pointer"
	"trellisui.org/io/system"
)

// popupEnv is a window with a menu button m, an unrelated widget w
// and a popup subtree p with one item.
type popupEnv struct {
	*testEnv
	m, w, p, item event.Id
}

func newPopupEnv(t *testing.T) *popupEnv {
	env := newEnv(t)
	pe := &popupEnv{
		testEnv: env,
		m:       event.RootId().Child(0),
		w:       event.RootId().Child(2),
		p:       event.RootId().Child(1),
	}
	pe.item = pe.p.Child(0)
	env.tree.add(pe.m, f32.Rect(0, 0, 100, 20))
	env.tree.add(pe.w, f32.Rect(500, 500, 600, 600)).handle = consumeAll
	env.tree.add(pe.p, f32.Rect(0, 20, 200, 220))
	env.tree.add(pe.item, f32.Rect(0, 20, 200, 60)).handle = consumeAll
	return pe
}

func (pe *popupEnv) openPopup() system.WindowId {
	return pe.r.AddPopup(pe.now, system.PopupDescriptor{
		Id:     pe.p,
		Parent: pe.m,
		Anchor: f32.Rect(0, 0, 100, 20),
	})
}

func TestOutsidePressClosesPopup(t *testing.T) {
	pe := newPopupEnv(t)
	win := pe.openPopup()
	pe.takeLog()

	pe.r.PointerButton(pe.now, pointer.ButtonPrimary, true, f32.Pt(550, 550), 0)
	// The press is first offered to the popup's parent; unconsumed,
	// it closes the popup and proceeds to its target.
	pe.wantLog(
		"Press(1)->"+pe.m.String(),
		"Press(1)->"+event.RootId().String(),
		"Press(1)->"+pe.w.String(),
	)
	if len(pe.r.popups) != 0 {
		t.Fatal("popup still open")
	}
	if len(pe.shell.closed) != 1 || pe.shell.closed[0] != win {
		t.Fatalf("closed windows = %v, want [%v]", pe.shell.closed, win)
	}
	pe.flush()
	pe.wantLog("PopupClosed:1->" + pe.m.String())
}

func TestInsidePressKeepsPopup(t *testing.T) {
	pe := newPopupEnv(t)
	pe.openPopup()
	pe.takeLog()

	pe.r.PointerButton(pe.now, pointer.ButtonPrimary, true, f32.Pt(50, 40), 0)
	pe.wantLog("Press(1)->" + pe.item.String())
	if len(pe.r.popups) != 1 {
		t.Fatal("popup closed by an inside press")
	}
}

func TestConsumedOutsidePressKeepsPopup(t *testing.T) {
	pe := newPopupEnv(t)
	pe.tree.widgets[pe.m].handle = consumeAll
	pe.openPopup()
	pe.takeLog()

	pe.r.PointerButton(pe.now, pointer.ButtonPrimary, true, f32.Pt(550, 550), 0)
	// The parent consumed the press: the popup survives and the
	// press never reaches the widget under the pointer.
	pe.wantLog("Press(1)->" + pe.m.String())
	if len(pe.r.popups) != 1 {
		t.Fatal("popup closed despite the parent consuming")
	}
}

func TestNestedPopupsCloseTopmostFirst(t *testing.T) {
	pe := newPopupEnv(t)
	p2 := event.RootId().Child(3)
	pe.tree.add(p2, f32.Rect(200, 20, 400, 120))
	pe.tree.widgets[pe.item].handle = nil
	win1 := pe.openPopup()
	win2 := pe.r.AddPopup(pe.now, system.PopupDescriptor{Id: p2, Parent: pe.item})
	pe.takeLog()

	pe.r.PointerButton(pe.now, pointer.ButtonPrimary, true, f32.Pt(550, 550), 0)
	if want := []system.WindowId{win2, win1}; len(pe.shell.closed) != 2 ||
		pe.shell.closed[0] != want[0] || pe.shell.closed[1] != want[1] {
		t.Fatalf("closed windows = %v, want %v", pe.shell.closed, want)
	}
	got := pe.takeLog()
	if len(got) == 0 || got[len(got)-1] != "Press(1)->"+pe.w.String() {
		t.Fatalf("deliveries = %v, want the press to end at %v", got, pe.w)
	}
	pe.flush()
	pe.wantLog(
		"PopupClosed:2->"+pe.item.String(),
		"PopupClosed:1->"+pe.m.String(),
	)
}

func TestMoveRoutedWhilePopupOpen(t *testing.T) {
	pe := newPopupEnv(t)
	pe.openPopup()
	pe.takeLog()

	// Without a popup plain motion only updates hover; with one
	// open the hovered widget receives Move events so menus can
	// track the pointer.
	pe.r.PointerMove(pe.now, f32.Pt(50, 40), 0)
	pe.wantLog("Enter->"+pe.item.String(), "Move->"+pe.item.String())
}

func TestOutsideMoveKeepsPopup(t *testing.T) {
	pe := newPopupEnv(t)
	pe.openPopup()
	pe.takeLog()

	// Motion outside the popup reaches the hovered widget directly;
	// only presses may close the popup.
	pe.r.PointerMove(pe.now, f32.Pt(550, 550), 0)
	pe.wantLog("Enter->"+pe.w.String(), "Move->"+pe.w.String())
	if len(pe.r.popups) != 1 {
		t.Fatal("popup closed by outside motion")
	}
	if len(pe.shell.closed) != 0 {
		t.Fatalf("closed windows = %v, want none", pe.shell.closed)
	}
}

func TestPopupRestoresNavFocus(t *testing.T) {
	pe := newPopupEnv(t)
	cx := pe.open()
	cx.SetNavFocus(pe.m, key.SourceSynthetic)
	pe.flush()
	win := pe.openPopup()
	cx.SetNavFocus(pe.item, key.SourceSynthetic)
	cx.SetSelFocus(pe.item, true)
	pe.flush()
	pe.takeLog()

	pe.r.SendClose(pe.now, win)
	if pe.r.focus.nav != pe.m {
		t.Fatalf("nav = %v, want %v restored", pe.r.focus.nav, pe.m)
	}
	if pe.r.focus.sel.Valid() {
		t.Fatalf("sel = %v, want cleared", pe.r.focus.sel)
	}
}

func TestPopupKeepsExternalNavFocus(t *testing.T) {
	pe := newPopupEnv(t)
	cx := pe.open()
	win := pe.openPopup()
	cx.SetNavFocus(pe.w, key.SourceSynthetic)
	pe.flush()

	// Focus claimed outside the popup since it opened is not
	// overwritten by the saved focus.
	pe.r.SendClose(pe.now, win)
	if pe.r.focus.nav != pe.w {
		t.Fatalf("nav = %v, want %v kept", pe.r.focus.nav, pe.w)
	}
}

func TestEscapeClosesTopmostPopup(t *testing.T) {
	pe := newPopupEnv(t)
	p2 := event.RootId().Child(3)
	pe.tree.add(p2, f32.Rect(200, 20, 400, 120))
	pe.tree.widgets[pe.item].handle = nil
	win1 := pe.openPopup()
	win2 := pe.r.AddPopup(pe.now, system.PopupDescriptor{Id: p2, Parent: pe.item})

	pe.r.Key(pe.now, key.NameEscape, 0, key.Press)
	if len(pe.r.popups) != 1 || pe.r.popups[0].window != win1 {
		t.Fatalf("popups = %v, want only the first", pe.r.popups)
	}
	if n := len(pe.shell.closed); n != 1 || pe.shell.closed[0] != win2 {
		t.Fatalf("closed windows = %v, want [%v]", pe.shell.closed, win2)
	}
}
