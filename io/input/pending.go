// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"time"

	"golang.org/x/exp/slices"

	"trellisui.org/io/event"
	"trellisui.org/io/key"
	"trellisui.org/io/system"
)

type pendingKind uint8

const (
	pendingConfigure pendingKind = iota
	pendingUpdate
	pendingSend
	pendingSetRect
	pendingNextNav
)

// pendingItem is deferred work queued during a dispatch and drained
// FIFO after the triggering event returns, so event handling never
// mutates the tree mid-traversal.
type pendingItem struct {
	kind    pendingKind
	id      event.Id
	event   event.Event
	reverse bool
	source  key.FocusSource
}

type timerEntry struct {
	time   time.Time
	id     event.Id
	handle system.TimerHandle
}

type deferredMessage struct {
	id  event.Id
	fut Future
}

func (r *Router) enqueue(it pendingItem) {
	r.pending = append(r.pending, it)
}

// RequestConfigure queues a reconfigure of the subtree at id for the
// next Flush. It is the shell's entry point, for window open and
// programmatic tree changes; widgets use the Context variant.
func (r *Router) RequestConfigure(id event.Id) {
	r.enqueue(pendingItem{kind: pendingConfigure, id: id})
}

// RequestTimer schedules a TimerEvent for id after delay. Requests
// with the same id and handle merge: a negative handle keeps the
// earliest requested time, a non-negative handle the latest.
func (cx *Context) RequestTimer(id event.Id, h system.TimerHandle, delay time.Duration) {
	r := cx.r
	fire := cx.now.Add(delay)
	for i := range r.timers {
		e := &r.timers[i]
		if e.id != id || e.handle != h {
			continue
		}
		if h < 0 {
			if fire.Before(e.time) {
				e.time = fire
			}
		} else if fire.After(e.time) {
			e.time = fire
		}
		r.sortTimers()
		return
	}
	r.timers = append(r.timers, timerEntry{time: fire, id: id, handle: h})
	r.sortTimers()
}

// CancelTimer removes a scheduled timer, if present.
func (cx *Context) CancelTimer(id event.Id, h system.TimerHandle) {
	r := cx.r
	for i := range r.timers {
		if r.timers[i].id == id && r.timers[i].handle == h {
			r.timers = append(r.timers[:i], r.timers[i+1:]...)
			return
		}
	}
}

// sortTimers keeps the queue reverse-sorted so the soonest entry
// pops cheaply from the end.
func (r *Router) sortTimers() {
	slices.SortFunc(r.timers, func(a, b timerEntry) bool {
		return a.time.After(b.time)
	})
}

// Flush drains the work deferred during event handling and returns
// the accumulated action mask together with the next timer wake
// time, if any. Call once per frame, before repaint; the drain
// order is fixed:
//
//  1. due timers fire, then popup-closed notifications deliver;
//  2. coalesced pointer-grab motion flushes, then touch motion;
//  3. pan groups solve and deliver their transforms;
//  4. the pending queue drains FIFO to completion;
//  5. deferred messages poll, replaying completions immediately
//     and re-polling futures spawned by a replay in this cycle;
//  6. the hover cursor icon is pushed if it changed and no
//     pointer grab owns the cursor.
//
// With no input since the previous call, Flush returns an empty
// mask and delivers nothing.
func (r *Router) Flush(now time.Time) (system.Action, time.Time, bool) {
	cx := r.open(now)

	for n := len(r.timers); n > 0; n = len(r.timers) {
		e := r.timers[n-1]
		if e.time.After(now) {
			break
		}
		r.timers = r.timers[:n-1]
		cx.deliverTo(e.id, system.TimerEvent{Handle: e.handle, Time: now})
	}

	for len(r.popupClosed) > 0 {
		pc := r.popupClosed[0]
		r.popupClosed = r.popupClosed[1:]
		cx.deliverTo(pc.parent, system.PopupClosedEvent{Window: pc.window})
	}

	r.flushGrabMotion(cx)
	r.flushPanGroups(cx)
	r.drainPending(cx)
	r.pollFutures(cx)

	if r.focus.hoverIcon != r.sentIcon && r.mouse.grab == nil {
		r.sentIcon = r.focus.hoverIcon
		r.shell.SetCursor(r.sentIcon)
	}

	a := r.actions
	r.actions = 0
	if n := len(r.timers); n > 0 {
		return a, r.timers[n-1].time, true
	}
	return a, time.Time{}, false
}

// drainPending consumes the queue FIFO to completion. Items may
// enqueue further items; a widget perpetually re-enqueuing itself
// would starve the loop, so a generous safety valve drops the
// remainder once the iteration budget is spent.
func (r *Router) drainPending(cx *Context) {
	budget := 64 * (len(r.pending) + 1)
	for processed := 0; len(r.pending) > 0; processed++ {
		if processed >= budget {
			r.pending = r.pending[:0]
			break
		}
		it := r.pending[0]
		r.pending = r.pending[1:]
		switch it.kind {
		case pendingConfigure:
			r.tree.Configure(cx, it.id)
			r.enqueue(pendingItem{kind: pendingUpdate, id: it.id})
		case pendingUpdate:
			r.tree.Update(cx, it.id)
		case pendingSetRect:
			r.tree.SetRect(cx, it.id)
		case pendingSend:
			cx.deliverTo(it.id, it.event)
		case pendingNextNav:
			r.nextNavFocus(cx, it.id, it.reverse, it.source)
		}
	}
}

// pollFutures polls every deferred message once, replaying
// completed ones immediately. Futures appended during a replay are
// reached later in the same loop, so short-lived async work
// resolves without waiting for the next platform event.
func (r *Router) pollFutures(cx *Context) {
	for i := 0; i < len(r.futures); i++ {
		d := r.futures[i]
		m, done := d.fut.Poll()
		if !done {
			continue
		}
		r.futures = append(r.futures[:i], r.futures[i+1:]...)
		i--
		cx.replayMessage(d.id, m)
	}
}

// NextWake returns the fire time of the soonest timer.
func (r *Router) NextWake() (time.Time, bool) {
	if n := len(r.timers); n > 0 {
		return r.timers[n-1].time, true
	}
	return time.Time{}, false
}
