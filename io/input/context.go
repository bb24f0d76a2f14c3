// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"time"

	"trellisui.org/config"
	"trellisui.org/io/event"
	"trellisui.org/io/key"
	"trellisui.org/io/system"
	"trellisui.org/unit"
)

// Context is the transient dispatch context wrapping a Router for
// the duration of one platform event or flush cycle. The tree
// passes it to every widget delivery; widgets must not retain it.
type Context struct {
	r      *Router
	now    time.Time
	target event.Id
	// messages pushed by widgets during the current delivery,
	// replayed bottom-up once the outermost delivery returns.
	messages []message
}

type message struct {
	from  event.Id
	value any
}

// A MessageEvent carries a value pushed by the widget From up
// through its ancestors, and the result of a completed Future back
// to its owner.
type MessageEvent struct {
	From  event.Id
	Value any
}

func (MessageEvent) ImplementsEvent() {}

// A Future is a suspended computation polled once per flush cycle.
// Poll must not block; it returns the resulting message and true
// when the computation has completed.
type Future interface {
	Poll() (any, bool)
}

// Now returns the time of the platform event being dispatched.
func (cx *Context) Now() time.Time {
	return cx.now
}

// Modifiers returns the modifier keys currently held.
func (cx *Context) Modifiers() key.Modifiers {
	return cx.r.modifiers
}

// Metric returns the window's unit metric.
func (cx *Context) Metric() unit.Metric {
	return cx.r.metric
}

// Config returns the window's interaction configuration.
func (cx *Context) Config() *config.Config {
	return cx.r.cfg
}

// Action adds to the action mask returned by the next Flush.
func (cx *Context) Action(a system.Action) {
	cx.r.actions |= a
}

// Redraw requests a repaint.
func (cx *Context) Redraw() {
	cx.Action(system.ActionRedraw)
}

// Hovered reports whether id is the widget under the pointer.
func (cx *Context) Hovered(id event.Id) bool {
	return cx.r.Hovered(id)
}

// NavFocused reports whether id holds navigation focus.
func (cx *Context) NavFocused(id event.Id) bool {
	return cx.r.NavFocused(id)
}

// SelFocused reports whether id holds selection focus.
func (cx *Context) SelFocused(id event.Id) bool {
	return cx.r.SelFocused(id)
}

// CharFocused reports whether id holds character focus.
func (cx *Context) CharFocused(id event.Id) bool {
	return cx.r.CharFocused(id)
}

// IsDepressed reports whether id should be drawn pressed.
func (cx *Context) IsDepressed(id event.Id) bool {
	return cx.r.IsDepressed(id)
}

// IsDisabled reports whether id is inside a disabled subtree.
func (cx *Context) IsDisabled(id event.Id) bool {
	return cx.r.IsDisabled(id)
}

// SetDisabled marks the subtree rooted at id disabled or enabled.
// Deliveries into a disabled subtree are suppressed except for
// event kinds that pass when disabled.
func (cx *Context) SetDisabled(id event.Id, disabled bool) {
	r := cx.r
	for i, root := range r.disabled {
		if root == id {
			if !disabled {
				r.disabled = append(r.disabled[:i], r.disabled[i+1:]...)
				cx.Redraw()
			}
			return
		}
	}
	if disabled {
		r.disabled = append(r.disabled, id)
		cx.Redraw()
	}
}

// Push publishes a message from the widget currently being
// delivered to. Once the outermost delivery returns, the message is
// offered to the widget and then its ancestors as a MessageEvent,
// innermost first, until one consumes it.
func (cx *Context) Push(v any) {
	cx.messages = append(cx.messages, message{from: cx.target, value: v})
}

// Send queues e for delivery to id after the current dispatch
// completes.
func (cx *Context) Send(id event.Id, e event.Event) {
	cx.r.enqueue(pendingItem{kind: pendingSend, id: id, event: e})
}

// RequestConfigure queues a reconfigure of the subtree at id. The
// configure pass is followed by an update of the same subtree.
func (cx *Context) RequestConfigure(id event.Id) {
	cx.r.enqueue(pendingItem{kind: pendingConfigure, id: id})
}

// RequestUpdate queues a data update of the subtree at id.
func (cx *Context) RequestUpdate(id event.Id) {
	cx.r.enqueue(pendingItem{kind: pendingUpdate, id: id})
}

// RequestSetRect queues a layout of id within its current
// rectangle.
func (cx *Context) RequestSetRect(id event.Id) {
	cx.r.enqueue(pendingItem{kind: pendingSetRect, id: id})
}

// NextNavFocus queues a navigation focus advance from the given
// widget, or from the current navigation focus if from is invalid.
func (cx *Context) NextNavFocus(from event.Id, reverse bool, source key.FocusSource) {
	cx.r.enqueue(pendingItem{kind: pendingNextNav, id: from, reverse: reverse, source: source})
}

// SendAsync registers a Future owned by id. Completed futures
// replay their message to the owning widget during Flush; a future
// spawned by such a replay is polled within the same cycle.
func (cx *Context) SendAsync(id event.Id, f Future) {
	cx.r.futures = append(cx.r.futures, deferredMessage{id: id, fut: f})
}

// Go runs f on a new goroutine and replays its result to id as a
// MessageEvent, waking the shell event loop on completion.
func (cx *Context) Go(id event.Id, f func() any) {
	ch := make(chan any, 1)
	shell := cx.r.shell
	go func() {
		ch <- f()
		shell.Wake()
	}()
	cx.SendAsync(id, chanFuture(ch))
}

type chanFuture chan any

func (f chanFuture) Poll() (any, bool) {
	select {
	case v := <-f:
		return v, true
	default:
		return nil, false
	}
}

// ReadClipboard returns the shell clipboard content.
func (cx *Context) ReadClipboard() string {
	return cx.r.shell.ReadClipboard()
}

// WriteClipboard replaces the shell clipboard content.
func (cx *Context) WriteClipboard(s string) {
	cx.r.shell.WriteClipboard(s)
}

// deliverTo hands e to a single widget, enforcing the disabled
// policy and replaying pushed messages when the outermost delivery
// returns.
func (cx *Context) deliverTo(id event.Id, e event.Event) bool {
	if !id.Valid() {
		return false
	}
	r := cx.r
	if r.IsDisabled(id) && !policyOf(e).passWhenDisabled {
		return false
	}
	prev := cx.target
	cx.target = id
	consumed := r.tree.Deliver(cx, id, e)
	cx.target = prev
	if !prev.Valid() {
		cx.replayPushed()
	}
	return consumed
}

// deliver hands e to id and, for reusable event kinds, offers it to
// successive ancestors while unconsumed.
func (cx *Context) deliver(id event.Id, e event.Event) bool {
	if cx.deliverTo(id, e) {
		return true
	}
	if !policyOf(e).reusable {
		return false
	}
	for w, ok := id.Parent(); ok; w, ok = w.Parent() {
		if cx.deliverTo(w, e) {
			return true
		}
	}
	return false
}

func (cx *Context) replayPushed() {
	for len(cx.messages) > 0 {
		m := cx.messages[0]
		cx.messages = cx.messages[1:]
		cx.replayMessage(m.from, m.value)
	}
}

// replayMessage offers a MessageEvent to from and then its
// ancestors until consumed. Unconsumed messages are dropped.
func (cx *Context) replayMessage(from event.Id, v any) {
	e := MessageEvent{From: from, Value: v}
	for w := from; w.Valid(); w, _ = w.Parent() {
		if cx.deliverTo(w, e) {
			return
		}
	}
}
