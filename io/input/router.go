// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"time"

	"trellisui.org/config"
	"trellisui.org/f32"
	"trellisui.org/io/event"
	"trellisui.org/io/key"
	"trellisui.org/io/pointer"
	"trellisui.org/io/system"
	"trellisui.org/unit"
)

// Tree is the widget tree capability the router requires. The tree
// owns widget identifiers and geometry; the router only stores and
// compares ids.
type Tree interface {
	// HitTest returns the deepest widget containing p.
	HitTest(p f32.Point) (event.Id, bool)
	// Deliver hands e to the widget id and reports whether the
	// widget consumed it. Delivering to an unknown id reports
	// false.
	Deliver(cx *Context, id event.Id, e event.Event) bool
	// Contains reports whether id resolves to a widget.
	Contains(id event.Id) bool
	// Cursor returns the cursor icon declared by id.
	Cursor(id event.Id) pointer.Cursor
	// WantsHover reports whether id changes appearance under the
	// pointer and needs a redraw when hovering starts or ends.
	WantsHover(id event.Id) bool
	// NavNext returns the widget following from in navigation
	// order within the subtree rooted at root, wrapping at the
	// ends; reverse walks backwards. An invalid from starts at
	// the first navigable widget.
	NavNext(from, root event.Id, reverse bool) (event.Id, bool)
	// Reveal asks enclosing scroll regions to bring id into view.
	Reveal(id event.Id)
	// Configure reassigns identifiers below id.
	Configure(cx *Context, id event.Id)
	// Update refreshes widget data below id.
	Update(cx *Context, id event.Id)
	// SetRect lays id out again within its current rectangle.
	SetRect(cx *Context, id event.Id)
}

// Shell is the router's capability over the surrounding platform
// shell.
type Shell interface {
	// SetCursor sets the pointer cursor icon.
	SetCursor(c pointer.Cursor)
	// OpenPopup creates an overlay window and returns its id.
	OpenPopup(desc system.PopupDescriptor) system.WindowId
	// CloseWindow closes a window opened with OpenPopup.
	CloseWindow(id system.WindowId)
	// ReadClipboard returns the clipboard content.
	ReadClipboard() string
	// WriteClipboard replaces the clipboard content.
	WriteClipboard(s string)
	// Wake interrupts the shell event loop, forcing a flush. It
	// is the only Shell method that may be called from other
	// goroutines.
	Wake()
}

// Router is the interaction state of one window. Construct with
// NewRouter at window open and discard at window close; it must
// only be used from the window's event loop goroutine.
type Router struct {
	tree   Tree
	shell  Shell
	cfg    *config.Config
	metric unit.Metric

	modifiers key.Modifiers

	mouse struct {
		grab    *pointerGrab
		pos     f32.Point
		depress event.Id
	}
	click struct {
		button      pointer.Buttons
		expiry      time.Time
		repetitions int
	}
	touch map[pointer.ID]*touchGrab
	pans  []*panGroup

	focus    focusState
	sentIcon pointer.Cursor

	popups      []popupEntry
	popupClosed []closedPopup
	layers      []accessLayer

	keyDepress struct {
		target event.Id
		key    key.Name
	}

	disabled []event.Id

	pending []pendingItem
	timers  []timerEntry
	futures []deferredMessage

	actions system.Action
}

// NewRouter returns the router for a new window. A nil cfg uses
// config.Default.
func NewRouter(tree Tree, shell Shell, metric unit.Metric, cfg *config.Config) *Router {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Router{
		tree:   tree,
		shell:  shell,
		cfg:    cfg,
		metric: metric,
		touch:  make(map[pointer.ID]*touchGrab),
	}
}

// open starts a dispatch for one platform event or flush cycle.
func (r *Router) open(now time.Time) *Context {
	return &Context{r: r, now: now}
}

// Actions returns and clears the accumulated action mask without
// draining queued work. Most callers want Flush instead.
func (r *Router) Actions() system.Action {
	a := r.actions
	r.actions = 0
	return a
}

// WindowFocus reports a change of the window's platform input
// focus. Losing focus releases held modifiers and key depresses so
// that accelerator mode cannot persist across focus changes.
func (r *Router) WindowFocus(t time.Time, focused bool) {
	cx := r.open(t)
	if !focused {
		r.modifiers = 0
		if r.keyDepress.target.Valid() {
			r.keyDepress.target = event.Id{}
			cx.Redraw()
		}
	}
	cx.deliverTo(event.RootId(), system.StageEvent{Focused: focused})
}

// WidgetRemoved discards all state referring to id or its
// descendants. The tree must call it when widgets are removed, so
// that grabs, focus and popups never address stale subtrees.
func (r *Router) WidgetRemoved(id event.Id) {
	cx := r.open(time.Time{})
	if g := r.mouse.grab; g != nil && id.IsAncestorOf(g.owner) {
		r.dropPanContact(g.pan, 0, false)
		r.mouse.grab = nil
	}
	for tid, g := range r.touch {
		if id.IsAncestorOf(g.start) {
			r.dropPanContact(g.pan, tid, true)
			delete(r.touch, tid)
		}
	}
	if id.IsAncestorOf(r.mouse.depress) {
		r.mouse.depress = event.Id{}
	}
	if id.IsAncestorOf(r.keyDepress.target) {
		r.keyDepress.target = event.Id{}
	}
	// Popups owned by the removed subtree close without
	// notification; their parent is gone.
	for i := len(r.popups) - 1; i >= 0; i-- {
		e := r.popups[i]
		if id.IsAncestorOf(e.desc.Parent) || id.IsAncestorOf(e.desc.Id) {
			r.popups = append(r.popups[:i], r.popups[i+1:]...)
			r.shell.CloseWindow(e.window)
		}
	}
	for i := len(r.layers) - 1; i >= 0; i-- {
		if id.IsAncestorOf(r.layers[i].root) {
			r.layers = append(r.layers[:i], r.layers[i+1:]...)
		}
	}
	// Focus moves away without notifying the removed widgets; the
	// ids no longer resolve.
	if id.IsAncestorOf(r.focus.hover) {
		r.focus.hover = event.Id{}
		r.focus.hoverIcon = pointer.CursorDefault
	}
	if id.IsAncestorOf(r.focus.nav) {
		r.focus.nav = event.Id{}
	}
	if id.IsAncestorOf(r.focus.sel) {
		r.focus.sel = event.Id{}
		r.focus.charFocus = false
	}
	if id.IsAncestorOf(r.focus.fallback) {
		r.focus.fallback = event.Id{}
	}
	cx.Redraw()
}

// AddPopup opens an overlay window programmatically, outside any
// delivery.
func (r *Router) AddPopup(t time.Time, desc system.PopupDescriptor) system.WindowId {
	cx := r.open(t)
	return cx.AddPopup(desc)
}

// SendClose closes a popup window programmatically, at any stack
// position.
func (r *Router) SendClose(t time.Time, w system.WindowId) {
	cx := r.open(t)
	cx.ClosePopup(w)
}

// CancelGrabs cancels the active pointer grab and all touch grabs.
// The owners receive Cancel events so they can distinguish
// cancellation from completion.
func (r *Router) CancelGrabs(t time.Time) {
	cx := r.open(t)
	cx.CancelPointerGrab()
	for id := range r.touch {
		cx.CancelTouchGrab(id)
	}
}

// IsDisabled reports whether id is inside a disabled subtree.
func (r *Router) IsDisabled(id event.Id) bool {
	for _, root := range r.disabled {
		if root.IsAncestorOf(id) {
			return true
		}
	}
	return false
}

// Hovered reports whether id is the widget under the pointer.
func (r *Router) Hovered(id event.Id) bool {
	return r.focus.hover == id
}

// NavFocused reports whether id holds navigation focus.
func (r *Router) NavFocused(id event.Id) bool {
	return r.focus.nav == id
}

// SelFocused reports whether id holds selection focus.
func (r *Router) SelFocused(id event.Id) bool {
	return r.focus.sel == id
}

// CharFocused reports whether id holds character focus.
func (r *Router) CharFocused(id event.Id) bool {
	return r.focus.sel == id && r.focus.charFocus
}

// IsDepressed reports whether id should be drawn in its pressed
// state, from a pointer press, touch contact or activation key
// held on it.
func (r *Router) IsDepressed(id event.Id) bool {
	if r.mouse.depress == id || r.keyDepress.target == id {
		return true
	}
	for _, g := range r.touch {
		if g.depress == id {
			return true
		}
	}
	return false
}
