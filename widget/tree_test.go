// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"testing"

	"trellisui.org/f32"
	"trellisui.org/io/event"
)

func TestHitTestDeepest(t *testing.T) {
	a := NewLabel("a")
	b := NewButton("b", nil)
	env := newEnv(t, NewColumn(a, b))

	id, ok := env.tree.HitTest(f32.Pt(0.5, 0.5))
	if !ok || id != a.Core().Id() {
		t.Errorf("hit at label = %v, %v; want %v", id, ok, a.Core().Id())
	}
	id, ok = env.tree.HitTest(center(b))
	if !ok || id != b.Core().Id() {
		t.Errorf("hit at button = %v, %v; want %v", id, ok, b.Core().Id())
	}
	if _, ok := env.tree.HitTest(f32.Pt(-1, -1)); ok {
		t.Errorf("hit outside the window reported a widget")
	}
}

func TestHitTestSkipsHiddenOverlay(t *testing.T) {
	env, file, _, _, _ := menuEnv(t)
	menu := file.menu()

	// Give the hidden menu a rectangle; it must still not hit.
	menu.SetRect(f32.Rect(0, 1, 6, 3))
	id, _ := env.tree.HitTest(f32.Pt(2, 2))
	if menu.Core().Id().IsAncestorOf(id) {
		t.Fatalf("hit %v inside a hidden overlay", id)
	}

	env.tree.ShowOverlay(menu.Core().Id(), file.Core().Rect())
	id, ok := env.tree.HitTest(f32.Pt(2, 1.5))
	if !ok || !menu.Core().Id().IsAncestorOf(id) {
		t.Fatalf("hit = %v, %v; want inside the shown overlay", id, ok)
	}
}

func TestContainsHiddenOverlay(t *testing.T) {
	env, file, _, open, _ := menuEnv(t)

	if !env.tree.Contains(file.Core().Id()) {
		t.Errorf("bar item not contained")
	}
	if env.tree.Contains(open.Core().Id()) {
		t.Errorf("entry of a closed menu contained")
	}
	env.tree.ShowOverlay(file.menu().Core().Id(), file.Core().Rect())
	if !env.tree.Contains(open.Core().Id()) {
		t.Errorf("entry of an open menu not contained")
	}
}

func TestShowOverlayPlacement(t *testing.T) {
	env, file, _, _, _ := menuEnv(t)
	menu := file.menu()
	id := menu.Core().Id()
	sz := menu.Measure()

	// Room below: the overlay opens under the anchor.
	anchor := f32.Rect(10, 5, 16, 6)
	env.tree.ShowOverlay(id, anchor)
	want := f32.Rectangle{Min: f32.Pt(10, 6), Max: f32.Pt(10+sz.X, 6+sz.Y)}
	if got := menu.Core().Rect(); got != want {
		t.Errorf("below anchor: rect = %v, want %v", got, want)
	}
	env.tree.HideOverlay(id)

	// No room below: the overlay flips above the anchor.
	anchor = f32.Rect(10, 23, 16, 24)
	env.tree.ShowOverlay(id, anchor)
	want = f32.Rectangle{Min: f32.Pt(10, 23-sz.Y), Max: f32.Pt(10+sz.X, 23)}
	if got := menu.Core().Rect(); got != want {
		t.Errorf("above anchor: rect = %v, want %v", got, want)
	}
	env.tree.HideOverlay(id)

	// Near the right edge it clamps inward.
	anchor = f32.Rect(78, 5, 80, 6)
	env.tree.ShowOverlay(id, anchor)
	if got := menu.Core().Rect(); got.Max.X > 80 || got.Dx() != sz.X {
		t.Errorf("right edge: rect = %v, want width %v within the window", got, sz.X)
	}
}

func TestNavNextOrder(t *testing.T) {
	a := NewButton("a", nil)
	f := NewField()
	l := NewLabel("static")
	b := NewButton("b", nil)
	env := newEnv(t, NewColumn(a, f, l, b))
	root := event.RootId()

	first, ok := env.tree.NavNext(event.Id{}, root, false)
	if !ok || first != a.Core().Id() {
		t.Fatalf("first = %v, want %v", first, a.Core().Id())
	}
	next, _ := env.tree.NavNext(a.Core().Id(), root, false)
	if next != f.Core().Id() {
		t.Errorf("after a = %v, want %v", next, f.Core().Id())
	}
	wrap, _ := env.tree.NavNext(b.Core().Id(), root, false)
	if wrap != a.Core().Id() {
		t.Errorf("wrap = %v, want %v", wrap, a.Core().Id())
	}
	prev, _ := env.tree.NavNext(a.Core().Id(), root, true)
	if prev != b.Core().Id() {
		t.Errorf("reverse wrap = %v, want %v", prev, b.Core().Id())
	}
}

func TestConfigureDropsStaleIds(t *testing.T) {
	a := NewButton("a", nil)
	b := NewButton("b", nil)
	col := NewColumn(a, b)
	env := newEnv(t, col)

	stale := b.Core().Id()
	col.Core().children = col.Core().children[:1]
	env.r.RequestConfigure(event.RootId())
	env.flush()
	if env.tree.Contains(stale) {
		t.Fatalf("removed widget %v still resolves", stale)
	}
	if !env.tree.Contains(a.Core().Id()) {
		t.Fatalf("kept widget no longer resolves")
	}
}

func TestRevealScrollsIntoView(t *testing.T) {
	var labels []Widget
	for i := 0; i < 10; i++ {
		labels = append(labels, NewLabel("item"))
	}
	s := NewScroll(3, NewColumn(labels...))
	env := newEnv(t, NewColumn(s, NewLabel("")))

	target := labels[7].Core().Id()
	env.tree.Reveal(target)
	if want := float32(5); s.offset != want {
		t.Fatalf("offset = %v, want %v", s.offset, want)
	}
	r := labels[7].Core().Rect()
	vp := s.Core().Rect()
	if r.Min.Y < vp.Min.Y || r.Max.Y > vp.Max.Y {
		t.Errorf("revealed rect %v outside viewport %v", r, vp)
	}

	// Revealing upward scrolls back.
	env.tree.Reveal(labels[0].Core().Id())
	if s.offset != 0 {
		t.Fatalf("offset after upward reveal = %v, want 0", s.offset)
	}
}
