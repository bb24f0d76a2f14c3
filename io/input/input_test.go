// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"trellisui.org/config"
	"trellisui.org/f32"
	"trellisui.org/io/event"
	"trellisui.org/io/key"
	"trellisui.org/io/pointer"
	"trellisui.org/io/system"
	"trellisui.org/unit"
)

// testWidget is a scripted widget: a rectangle, a few declared
// properties and an optional handler.
type testWidget struct {
	rect       f32.Rectangle
	cursor     pointer.Cursor
	wantsHover bool
	navigable  bool
	handle     func(cx *Context, e event.Event) bool
}

// testTree is a scripted Tree recording every delivery.
type testTree struct {
	widgets    map[event.Id]*testWidget
	log        []string
	reveals    []event.Id
	configures []event.Id
	updates    []event.Id
	setRects   []event.Id
}

func newTestTree() *testTree {
	return &testTree{widgets: map[event.Id]*testWidget{}}
}

func (t *testTree) add(id event.Id, rect f32.Rectangle) *testWidget {
	w := &testWidget{rect: rect}
	t.widgets[id] = w
	return w
}

func (t *testTree) remove(id event.Id) {
	delete(t.widgets, id)
}

func (t *testTree) HitTest(p f32.Point) (event.Id, bool) {
	var best event.Id
	found := false
	for id, w := range t.widgets {
		if p.In(w.rect) && (!found || id.Depth() > best.Depth()) {
			best, found = id, true
		}
	}
	return best, found
}

func (t *testTree) Deliver(cx *Context, id event.Id, e event.Event) bool {
	w, ok := t.widgets[id]
	if !ok {
		return false
	}
	t.log = append(t.log, fmt.Sprintf("%s->%s", evString(e), id))
	if w.handle != nil {
		return w.handle(cx, e)
	}
	return false
}

func (t *testTree) Contains(id event.Id) bool {
	_, ok := t.widgets[id]
	return ok
}

func (t *testTree) Cursor(id event.Id) pointer.Cursor {
	if w, ok := t.widgets[id]; ok {
		return w.cursor
	}
	return pointer.CursorDefault
}

func (t *testTree) WantsHover(id event.Id) bool {
	if w, ok := t.widgets[id]; ok {
		return w.wantsHover
	}
	return false
}

func (t *testTree) NavNext(from, root event.Id, reverse bool) (event.Id, bool) {
	var order []event.Id
	for id, w := range t.widgets {
		if w.navigable && root.IsAncestorOf(id) {
			order = append(order, id)
		}
	}
	if len(order) == 0 {
		return event.Id{}, false
	}
	sort.Slice(order, func(i, j int) bool {
		return order[i].String() < order[j].String()
	})
	idx := -1
	for i, id := range order {
		if id == from {
			idx = i
			break
		}
	}
	if idx < 0 {
		if reverse {
			return order[len(order)-1], true
		}
		return order[0], true
	}
	if reverse {
		idx--
	} else {
		idx++
	}
	return order[(idx+len(order))%len(order)], true
}

func (t *testTree) Reveal(id event.Id) {
	t.reveals = append(t.reveals, id)
}

func (t *testTree) Configure(cx *Context, id event.Id) {
	t.configures = append(t.configures, id)
}

func (t *testTree) Update(cx *Context, id event.Id) {
	t.updates = append(t.updates, id)
}

func (t *testTree) SetRect(cx *Context, id event.Id) {
	t.setRects = append(t.setRects, id)
}

// testShell records the router's requests toward the shell.
type testShell struct {
	cursors []pointer.Cursor
	opened  []system.PopupDescriptor
	closed  []system.WindowId
	clip    string
	wakes   int
	nextWin system.WindowId
}

func (s *testShell) SetCursor(c pointer.Cursor) {
	s.cursors = append(s.cursors, c)
}

func (s *testShell) OpenPopup(d system.PopupDescriptor) system.WindowId {
	s.nextWin++
	s.opened = append(s.opened, d)
	return s.nextWin
}

func (s *testShell) CloseWindow(id system.WindowId) {
	s.closed = append(s.closed, id)
}

func (s *testShell) ReadClipboard() string   { return s.clip }
func (s *testShell) WriteClipboard(c string) { s.clip = c }
func (s *testShell) Wake()                   { s.wakes++ }

type testEnv struct {
	t     *testing.T
	tree  *testTree
	shell *testShell
	r     *Router
	now   time.Time
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	tree := newTestTree()
	tree.add(event.RootId(), f32.Rect(0, 0, 1000, 1000))
	shell := &testShell{}
	r := NewRouter(tree, shell, unit.Metric{PxPerDp: 1, PxPerSp: 1}, config.Default())
	return &testEnv{
		t:     t,
		tree:  tree,
		shell: shell,
		r:     r,
		now:   time.Unix(1000, 0),
	}
}

func (e *testEnv) tick(d time.Duration) time.Time {
	e.now = e.now.Add(d)
	return e.now
}

func (e *testEnv) open() *Context {
	return e.r.open(e.now)
}

func (e *testEnv) flush() system.Action {
	a, _, _ := e.r.Flush(e.now)
	return a
}

func (e *testEnv) takeLog() []string {
	l := e.tree.log
	e.tree.log = nil
	return l
}

func (e *testEnv) wantLog(want ...string) {
	e.t.Helper()
	got := e.takeLog()
	if len(got) != len(want) {
		e.t.Fatalf("deliveries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			e.t.Fatalf("deliveries = %v, want %v", got, want)
		}
	}
}

// grabber returns a handler claiming presses with mode.
func grabber(owner event.Id, mode GrabMode) func(*Context, event.Event) bool {
	return func(cx *Context, e event.Event) bool {
		if pe, ok := e.(pointer.Event); ok && pe.Kind == pointer.Press {
			return cx.Grab(owner, pe, mode)
		}
		return false
	}
}

func evString(e event.Event) string {
	switch e := e.(type) {
	case pointer.Event:
		if e.Kind == pointer.Press {
			return fmt.Sprintf("Press(%d)", e.Repetitions)
		}
		return e.Kind.String()
	case pointer.PanEvent:
		return fmt.Sprintf("Pan(%.2f,%.2f|%.2f,%.2f)", e.Alpha.X, e.Alpha.Y, e.Delta.X, e.Delta.Y)
	case key.Event:
		return "Key:" + string(e.Name)
	case key.EditEvent:
		return "Edit:" + e.Text
	case key.CommandEvent:
		return "Command:" + e.Command.String()
	case key.FocusEvent:
		if e.Focus {
			return "CharFocus"
		}
		return "LostCharFocus"
	case key.SelectionEvent:
		if e.Focus {
			return "SelFocus"
		}
		return "LostSelFocus"
	case key.NavFocusEvent:
		if e.Focus {
			return "NavFocus"
		}
		return "LostNavFocus"
	case system.TimerEvent:
		return fmt.Sprintf("Timer:%d", e.Handle)
	case system.PopupClosedEvent:
		return fmt.Sprintf("PopupClosed:%d", e.Window)
	case system.StageEvent:
		if e.Focused {
			return "StageFocused"
		}
		return "StageBlurred"
	case MessageEvent:
		return fmt.Sprintf("Msg:%v", e.Value)
	default:
		return fmt.Sprintf("%T", e)
	}
}
