// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"trellisui.org/io/event"
	"trellisui.org/io/key"
	"trellisui.org/io/system"
)

// popupEntry is one open overlay window; the stack is ordered with
// the topmost popup last.
type popupEntry struct {
	window system.WindowId
	desc   system.PopupDescriptor
	// savedNav is the navigation focus to restore when the popup
	// closes, unless a lower popup claimed focus since.
	savedNav event.Id
}

// closedPopup is a queued popup-closed notification, delivered in
// the first drain step of the next flush.
type closedPopup struct {
	window system.WindowId
	parent event.Id
}

// AddPopup opens an overlay window through the shell and pushes it
// on the popup stack.
func (cx *Context) AddPopup(desc system.PopupDescriptor) system.WindowId {
	r := cx.r
	w := r.shell.OpenPopup(desc)
	r.popups = append(r.popups, popupEntry{window: w, desc: desc, savedNav: r.focus.nav})
	cx.Redraw()
	return w
}

// ClosePopup closes a popup at any stack position, restores its
// saved navigation focus when still unclaimed and queues the
// popup-closed notification for its parent.
func (cx *Context) ClosePopup(w system.WindowId) {
	r := cx.r
	idx := -1
	for i, e := range r.popups {
		if e.window == w {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	e := r.popups[idx]
	r.popups = append(r.popups[:idx], r.popups[idx+1:]...)
	r.shell.CloseWindow(w)
	if !r.focus.nav.Valid() || e.desc.Id.IsAncestorOf(r.focus.nav) {
		r.setNavFocus(cx, e.savedNav, key.SourceSynthetic)
	}
	if e.desc.Id.IsAncestorOf(r.focus.sel) {
		r.setSelFocus(cx, event.Id{}, false)
	}
	for i := len(r.layers) - 1; i >= 0; i-- {
		if e.desc.Id.IsAncestorOf(r.layers[i].root) {
			r.layers = append(r.layers[:i], r.layers[i+1:]...)
		}
	}
	r.popupClosed = append(r.popupClosed, closedPopup{window: w, parent: e.desc.Parent})
	cx.Redraw()
}

// PopupOpen reports whether any popup is open.
func (cx *Context) PopupOpen() bool {
	return len(cx.r.popups) > 0
}

// ClosePopupFor closes the popup whose subtree contains id, if any.
func (cx *Context) ClosePopupFor(id event.Id) {
	for i := len(cx.r.popups) - 1; i >= 0; i-- {
		if e := cx.r.popups[i]; e.desc.Id.IsAncestorOf(id) {
			cx.ClosePopup(e.window)
			return
		}
	}
}

// sendPopupFirst routes e with outside-press semantics: while the
// stack is non-empty and e originates outside the topmost popup's
// subtree, the popup's parent is offered the event; if it does not
// consume, the popup closes and the next level down is tried. Once
// the stack is exhausted, or a parent consumes, e reaches target.
func (cx *Context) sendPopupFirst(target event.Id, e event.Event) bool {
	r := cx.r
	for len(r.popups) > 0 {
		top := r.popups[len(r.popups)-1]
		if top.desc.Id.IsAncestorOf(target) {
			break
		}
		if cx.deliver(top.desc.Parent, e) {
			return true
		}
		cx.ClosePopup(top.window)
	}
	return cx.deliver(target, e)
}
