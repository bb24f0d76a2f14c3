// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"testing"
	"time"

	"trellisui.org/f32"
	"trellisui.org/io/event"
	"trellisui.org/io/key"
	"trellisui.org/io/pointer"
	"trellisui.org/io/system"
)

type stubFuture struct{ v any }

func (f stubFuture) Poll() (any, bool) { return f.v, true }

func TestTimerMerge(t *testing.T) {
	env := newEnv(t)
	a := event.RootId().Child(0)
	env.tree.add(a, f32.Rect(0, 0, 100, 100))
	cx := env.open()

	// A non-negative handle keeps the latest requested time.
	cx.RequestTimer(a, 1, 100*time.Millisecond)
	cx.RequestTimer(a, 1, 50*time.Millisecond)
	if wake, ok := env.r.NextWake(); !ok || wake != env.now.Add(100*time.Millisecond) {
		t.Fatalf("wake = %v %v, want %v", wake, ok, env.now.Add(100*time.Millisecond))
	}

	// A negative handle keeps the earliest.
	cx.RequestTimer(a, -1, 20*time.Millisecond)
	cx.RequestTimer(a, -1, 70*time.Millisecond)
	if wake, ok := env.r.NextWake(); !ok || wake != env.now.Add(20*time.Millisecond) {
		t.Fatalf("wake = %v %v, want %v", wake, ok, env.now.Add(20*time.Millisecond))
	}

	// Distinct handles never merge.
	if len(env.r.timers) != 2 {
		t.Fatalf("timers = %d, want 2", len(env.r.timers))
	}
}

func TestTimerFire(t *testing.T) {
	env := newEnv(t)
	a := event.RootId().Child(0)
	env.tree.add(a, f32.Rect(0, 0, 100, 100))
	cx := env.open()
	cx.RequestTimer(a, 2, 50*time.Millisecond)
	cx.RequestTimer(a, 3, 200*time.Millisecond)
	deadline := env.now.Add(200 * time.Millisecond)

	env.tick(60 * time.Millisecond)
	_, wake, ok := env.r.Flush(env.now)
	env.wantLog("Timer:2->" + a.String())
	if !ok || wake != deadline {
		t.Fatalf("wake = %v %v, want %v", wake, ok, deadline)
	}

	env.tick(150 * time.Millisecond)
	_, _, ok = env.r.Flush(env.now)
	env.wantLog("Timer:3->" + a.String())
	if ok {
		t.Fatal("wake reported with no timers left")
	}
}

func TestCancelTimer(t *testing.T) {
	env := newEnv(t)
	a := event.RootId().Child(0)
	env.tree.add(a, f32.Rect(0, 0, 100, 100))
	cx := env.open()
	cx.RequestTimer(a, 1, 50*time.Millisecond)
	cx.CancelTimer(a, 1)
	env.tick(100 * time.Millisecond)
	env.flush()
	env.wantLog()
}

func TestConfigureEnqueuesUpdate(t *testing.T) {
	env := newEnv(t)
	a := event.RootId().Child(0)
	env.tree.add(a, f32.Rect(0, 0, 100, 100))
	cx := env.open()
	cx.RequestConfigure(a)
	env.flush()
	if len(env.tree.configures) != 1 || env.tree.configures[0] != a {
		t.Fatalf("configures = %v, want [%v]", env.tree.configures, a)
	}
	if len(env.tree.updates) != 1 || env.tree.updates[0] != a {
		t.Fatalf("updates = %v, want [%v]", env.tree.updates, a)
	}
}

func TestPendingValve(t *testing.T) {
	env := newEnv(t)
	a := event.RootId().Child(0)
	env.tree.add(a, f32.Rect(0, 0, 100, 100)).handle = func(cx *Context, e event.Event) bool {
		if m, ok := e.(MessageEvent); ok {
			cx.Send(a, m)
			return true
		}
		return false
	}
	cx := env.open()
	cx.Send(a, MessageEvent{From: a, Value: "x"})
	env.flush()
	// A widget perpetually re-queuing itself is cut off, and the
	// queue is empty afterwards.
	if got, budget := len(env.takeLog()), 64*2; got != budget {
		t.Fatalf("deliveries = %d, want the budget of %d", got, budget)
	}
	if len(env.r.pending) != 0 {
		t.Fatal("pending queue not emptied")
	}
	env.flush()
	env.wantLog()
}

func TestFutureSameCycleRepoll(t *testing.T) {
	env := newEnv(t)
	a := event.RootId().Child(0)
	env.tree.add(a, f32.Rect(0, 0, 100, 100)).handle = func(cx *Context, e event.Event) bool {
		m, ok := e.(MessageEvent)
		if !ok {
			return false
		}
		if m.Value == "first" {
			cx.SendAsync(a, stubFuture{"second"})
		}
		return true
	}
	cx := env.open()
	cx.SendAsync(a, stubFuture{"first"})
	env.flush()
	// A future spawned by a replayed completion resolves within
	// the same cycle.
	env.wantLog("Msg:first->"+a.String(), "Msg:second->"+a.String())
	if len(env.r.futures) != 0 {
		t.Fatal("futures left registered")
	}
}

func TestChanFuture(t *testing.T) {
	ch := make(chan any, 1)
	f := chanFuture(ch)
	if _, done := f.Poll(); done {
		t.Fatal("empty channel polled done")
	}
	ch <- "v"
	v, done := f.Poll()
	if !done || v != "v" {
		t.Fatalf("Poll = %v %v, want v true", v, done)
	}
}

func TestMessageBubbles(t *testing.T) {
	env := newEnv(t)
	parent := event.RootId().Child(0)
	child := parent.Child(0)
	env.tree.add(parent, f32.Rect(0, 0, 100, 100)).handle = func(cx *Context, e event.Event) bool {
		_, ok := e.(MessageEvent)
		return ok
	}
	env.tree.add(child, f32.Rect(0, 0, 50, 50)).handle = func(cx *Context, e event.Event) bool {
		if pe, ok := e.(pointer.Event); ok && pe.Kind == pointer.Press {
			cx.Push("clicked")
			return true
		}
		return false
	}

	// A pushed message replays once the outermost delivery
	// returns, offered to the pusher first and then its ancestors.
	env.r.PointerButton(env.now, pointer.ButtonPrimary, true, f32.Pt(25, 25), 0)
	env.wantLog(
		"Press(1)->"+child.String(),
		"Msg:clicked->"+child.String(),
		"Msg:clicked->"+parent.String(),
	)
}

func TestDisabledSuppression(t *testing.T) {
	env := newEnv(t)
	a := event.RootId().Child(0)
	env.tree.add(a, f32.Rect(0, 0, 100, 100)).handle = consumeAll
	cx := env.open()
	cx.SetDisabled(a, true)

	// Presses skip the disabled subtree and bubble past it.
	env.r.PointerButton(env.now, pointer.ButtonPrimary, true, f32.Pt(50, 50), 0)
	env.wantLog("Press(1)->" + event.RootId().String())

	// Conclusive notifications still arrive.
	cx.RequestTimer(a, 1, 10*time.Millisecond)
	env.tick(20 * time.Millisecond)
	env.flush()
	env.wantLog("Timer:1->" + a.String())

	cx.SetDisabled(a, false)
	env.tick(600 * time.Millisecond)
	env.r.PointerButton(env.now, pointer.ButtonPrimary, true, f32.Pt(50, 50), 0)
	env.wantLog("Press(1)->" + a.String())
}

func TestWindowFocus(t *testing.T) {
	env := newEnv(t)
	env.r.Key(env.now, "A", key.ModCtrl, key.Press)
	env.takeLog()

	env.r.WindowFocus(env.now, false)
	env.wantLog("StageBlurred->" + event.RootId().String())
	if env.r.modifiers != 0 {
		t.Fatal("modifiers held across focus loss")
	}
	env.r.WindowFocus(env.now, true)
	env.wantLog("StageFocused->" + event.RootId().String())
}

func TestFlushIdempotent(t *testing.T) {
	env := newEnv(t)
	a := event.RootId().Child(0)
	env.tree.add(a, f32.Rect(0, 0, 100, 100)).handle = grabber(a, GrabDrag)

	env.r.PointerMove(env.now, f32.Pt(50, 50), 0)
	env.r.PointerButton(env.now, pointer.ButtonPrimary, true, f32.Pt(50, 50), 0)
	env.r.PointerMove(env.now, f32.Pt(60, 60), 0)
	env.flush()
	env.takeLog()

	if a := env.flush(); a != 0 {
		t.Fatalf("second flush actions = %v, want none", a)
	}
	env.wantLog()
}

func TestActionsAccumulate(t *testing.T) {
	env := newEnv(t)
	cx := env.open()
	cx.Action(system.ActionResize)
	cx.Redraw()
	a := env.r.Actions()
	if a&system.ActionResize == 0 || a&system.ActionRedraw == 0 {
		t.Fatalf("actions = %v, want resize|redraw", a)
	}
	if env.r.Actions() != 0 {
		t.Fatal("actions not cleared by read")
	}
}

func TestDrainOrder(t *testing.T) {
	env := newEnv(t)
	dragW := event.RootId().Child(0)
	panW := event.RootId().Child(1)
	timerW := event.RootId().Child(2)
	menuW := event.RootId().Child(3)
	popupW := event.RootId().Child(4)
	sendW := event.RootId().Child(5)
	futW := event.RootId().Child(6)
	env.tree.add(dragW, f32.Rect(0, 0, 100, 100)).handle = grabber(dragW, GrabDrag)
	env.tree.add(panW, f32.Rect(100, 0, 200, 100)).handle = grabber(panW, GrabPanTranslate)
	env.tree.add(timerW, f32.Rect(200, 0, 300, 100))
	env.tree.add(menuW, f32.Rect(300, 0, 400, 100))
	env.tree.add(popupW, f32.Rect(0, 100, 400, 200))
	env.tree.add(sendW, f32.Rect(400, 0, 500, 100))
	env.tree.add(futW, f32.Rect(500, 0, 600, 100)).handle = consumeAll

	cx := env.open()
	cx.RequestTimer(timerW, 1, 10*time.Millisecond)
	win := env.r.AddPopup(env.now, system.PopupDescriptor{Id: popupW, Parent: menuW})
	env.r.SendClose(env.now, win)
	env.r.PointerButton(env.now, pointer.ButtonPrimary, true, f32.Pt(50, 50), 0)
	env.r.PointerMove(env.now, f32.Pt(70, 50), 0)
	env.r.TouchStart(env.now, 1, f32.Pt(150, 50), 0)
	env.r.TouchMove(env.now, 1, f32.Pt(170, 50), 0)
	cx.Send(sendW, MessageEvent{From: sendW, Value: "s"})
	cx.SendAsync(futW, stubFuture{"f"})
	env.takeLog()

	env.tick(20 * time.Millisecond)
	env.flush()
	env.wantLog(
		"Timer:1->"+timerW.String(),
		"PopupClosed:1->"+menuW.String(),
		"Drag->"+dragW.String(),
		"Pan(1.00,0.00|20.00,0.00)->"+panW.String(),
		"Msg:s->"+sendW.String(),
		"Msg:f->"+futW.String(),
	)
}
