// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"trellisui.org/io/event"
	"trellisui.org/io/key"
	"trellisui.org/io/pointer"
)

// focusState is the focus table of a window: hover, navigation
// focus, selection focus with its character-focus qualifier, and
// the navigation fallback. Each is an optional id, invalid when
// unset. The table is mutated only through Context methods that
// also queue the matching gain and lose notifications.
type focusState struct {
	hover     event.Id
	hoverIcon pointer.Cursor
	nav       event.Id
	sel       event.Id
	// charFocus qualifies sel: character focus cannot exist
	// without selection focus on the same id.
	charFocus bool
	fallback  event.Id
}

// SetNavFocus moves keyboard navigation focus to id. A change from
// a key or synthetic source also scrolls the widget into view.
func (cx *Context) SetNavFocus(id event.Id, source key.FocusSource) {
	cx.r.setNavFocus(cx, id, source)
}

func (r *Router) setNavFocus(cx *Context, id event.Id, source key.FocusSource) {
	f := &r.focus
	if f.nav == id {
		return
	}
	if f.nav.Valid() {
		cx.Send(f.nav, key.NavFocusEvent{Focus: false, Source: source})
	}
	f.nav = id
	if id.Valid() {
		cx.Send(id, key.NavFocusEvent{Focus: true, Source: source})
		if source != key.SourcePointer {
			r.tree.Reveal(id)
		}
	}
	cx.Redraw()
}

// SetSelFocus moves selection focus to id, optionally with
// character focus. Moving selection focus away from a widget
// queues its LostCharFocus (if held) and then LostSelFocus
// notifications before the new widget's gains; widgets rely on
// that order to commit pending edits. On the current selection
// target, character focus is only ever upgraded, never revoked.
func (cx *Context) SetSelFocus(id event.Id, charFocus bool) {
	cx.r.setSelFocus(cx, id, charFocus)
}

func (r *Router) setSelFocus(cx *Context, id event.Id, charFocus bool) {
	f := &r.focus
	if id.Valid() && id == f.sel {
		if charFocus && !f.charFocus {
			f.charFocus = true
			cx.Send(id, key.FocusEvent{Focus: true})
		}
		return
	}
	if f.sel.Valid() {
		if f.charFocus {
			cx.Send(f.sel, key.FocusEvent{Focus: false})
		}
		cx.Send(f.sel, key.SelectionEvent{Focus: false})
	}
	f.sel = id
	f.charFocus = id.Valid() && charFocus
	if id.Valid() {
		cx.Send(id, key.SelectionEvent{Focus: true})
		if charFocus {
			cx.Send(id, key.FocusEvent{Focus: true})
		}
	}
	cx.Redraw()
}

// SetNavFallback nominates id to receive navigation commands no
// other widget consumed. The first nomination wins until the next
// reconfigure.
func (cx *Context) SetNavFallback(id event.Id) {
	f := &cx.r.focus
	if !f.fallback.Valid() {
		f.fallback = id
	}
}

// updateHover re-derives hover from the current pointer position.
func (r *Router) updateHover(cx *Context) {
	target, _ := r.tree.HitTest(r.mouse.pos)
	r.setHover(cx, target)
}

func (r *Router) setHover(cx *Context, id event.Id) {
	f := &r.focus
	if f.hover == id {
		return
	}
	// Hover moving to another widget breaks the double-click
	// chain.
	r.click.button = 0
	r.click.expiry = cx.now
	if f.hover.Valid() {
		if r.tree.WantsHover(f.hover) {
			cx.Redraw()
		}
		cx.deliverTo(f.hover, pointer.Event{Kind: pointer.Leave, Position: r.mouse.pos})
	}
	f.hover = id
	if id.Valid() {
		if r.tree.WantsHover(id) {
			cx.Redraw()
		}
		cx.deliverTo(id, pointer.Event{Kind: pointer.Enter, Position: r.mouse.pos, Over: id})
	}
	f.hoverIcon = r.resolveCursor(id)
}

// resolveCursor walks from id toward the root and returns the
// first non-default cursor icon, so a child's icon wins over its
// ancestors'.
func (r *Router) resolveCursor(id event.Id) pointer.Cursor {
	for w := id; w.Valid(); w, _ = w.Parent() {
		if c := r.tree.Cursor(w); c != pointer.CursorDefault {
			return c
		}
	}
	return pointer.CursorDefault
}

// nextNavFocus advances navigation focus in tree order. While a
// popup is open the traversal cycles within the topmost popup's
// subtree.
func (r *Router) nextNavFocus(cx *Context, from event.Id, reverse bool, source key.FocusSource) {
	root := event.RootId()
	if n := len(r.popups); n > 0 {
		root = r.popups[n-1].desc.Id
	}
	start := from
	if !start.Valid() {
		start = r.focus.nav
	}
	next, ok := r.tree.NavNext(start, root, reverse)
	if !ok {
		return
	}
	r.setNavFocus(cx, next, source)
}
