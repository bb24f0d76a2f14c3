// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"trellisui.org/f32"
	"trellisui.org/io/event"
	"trellisui.org/io/input"
	"trellisui.org/io/pointer"
)

// Tree owns a window's widget tree and implements the router's tree
// capability: identifier assignment, hit testing, event delivery and
// navigation traversal. Popup subtrees are overlays, invisible to
// the base window until shown.
type Tree struct {
	root  Widget
	index map[event.Id]Widget
	// overlays are the open popup roots, bottom to top.
	overlays []event.Id
}

// Updater is implemented by widgets that refresh cached data when
// the tree updates.
type Updater interface {
	Update(cx *input.Context)
}

func NewTree(root Widget) *Tree {
	return &Tree{
		root:  root,
		index: make(map[event.Id]Widget),
	}
}

// Root returns the root widget.
func (t *Tree) Root() Widget {
	return t.root
}

// Lookup resolves an identifier, reporting false for stale ids.
func (t *Tree) Lookup(id event.Id) (Widget, bool) {
	w, ok := t.index[id]
	return w, ok
}

// Layout lays the base window out within size. Call after Configure
// and on every resize.
func (t *Tree) Layout(size f32.Point) {
	t.root.SetRect(f32.Rectangle{Max: size})
}

// ShowOverlay makes the popup subtree rooted at id visible, placed
// against anchor and sized to its preference, clamped to the window.
func (t *Tree) ShowOverlay(id event.Id, anchor f32.Rectangle) {
	w, ok := t.index[id]
	if !ok {
		return
	}
	win := t.root.Core().rect
	sz := w.Measure()
	r := f32.Rectangle{
		Min: f32.Pt(anchor.Min.X, anchor.Max.Y),
	}
	r.Max = r.Min.Add(sz)
	if r.Max.X > win.Max.X {
		r = r.Sub(f32.Pt(r.Max.X-win.Max.X, 0))
	}
	if r.Max.Y > win.Max.Y {
		// No room below the anchor; open above it.
		r = r.Sub(f32.Pt(0, r.Dy()+anchor.Dy()))
	}
	w.SetRect(r.Intersect(win))
	t.overlays = append(t.overlays, id)
}

// HideOverlay removes the popup subtree rooted at id from view.
func (t *Tree) HideOverlay(id event.Id) {
	for i, o := range t.overlays {
		if o == id {
			t.overlays = append(t.overlays[:i], t.overlays[i+1:]...)
			return
		}
	}
}

// Draw renders the base window and then the open overlays, bottom
// to top.
func (t *Tree) Draw(d *DrawContext) {
	drawSubtree(d, t.root)
	for _, id := range t.overlays {
		if w, ok := t.index[id]; ok {
			drawSubtree(d, w)
		}
	}
}

func drawSubtree(d *DrawContext, w Widget) {
	w.Draw(d)
	if cd, ok := w.(ChildDrawer); ok {
		cd.DrawChildren(d)
		return
	}
	for _, ch := range w.Core().children {
		if ch.Core().overlay {
			continue
		}
		drawSubtree(d, ch)
	}
}

// HitTest returns the deepest widget containing p, testing open
// overlays topmost first.
func (t *Tree) HitTest(p f32.Point) (event.Id, bool) {
	for i := len(t.overlays) - 1; i >= 0; i-- {
		if w, ok := t.index[t.overlays[i]]; ok {
			if id, ok := deepestAt(w, p); ok {
				return id, true
			}
		}
	}
	return deepestAt(t.root, p)
}

func deepestAt(w Widget, p f32.Point) (event.Id, bool) {
	c := w.Core()
	if !p.In(c.rect) {
		return event.Id{}, false
	}
	// Later children draw above earlier ones.
	for i := len(c.children) - 1; i >= 0; i-- {
		ch := c.children[i]
		if ch.Core().overlay {
			continue
		}
		if id, ok := deepestAt(ch, p); ok {
			return id, true
		}
	}
	return c.id, true
}

// Deliver hands e to the widget id.
func (t *Tree) Deliver(cx *input.Context, id event.Id, e event.Event) bool {
	w, ok := t.index[id]
	if !ok {
		return false
	}
	return w.Handle(cx, e)
}

// Contains reports whether id resolves to a widget visible in the
// window. Widgets inside a hidden overlay do not count: their access
// keys and focus must stay inert until the popup opens.
func (t *Tree) Contains(id event.Id) bool {
	if _, ok := t.index[id]; !ok {
		return false
	}
	for p := id; ; {
		if w, ok := t.index[p]; ok && w.Core().overlay && !t.overlayShown(p) {
			return false
		}
		parent, ok := p.Parent()
		if !ok {
			return true
		}
		p = parent
	}
}

func (t *Tree) overlayShown(id event.Id) bool {
	for _, o := range t.overlays {
		if o == id {
			return true
		}
	}
	return false
}

// Cursor returns the cursor icon declared by id.
func (t *Tree) Cursor(id event.Id) pointer.Cursor {
	if w, ok := t.index[id]; ok {
		return w.Core().cursor
	}
	return pointer.CursorDefault
}

// WantsHover reports whether id redraws on hover changes.
func (t *Tree) WantsHover(id event.Id) bool {
	if w, ok := t.index[id]; ok {
		return w.Core().wantsHover
	}
	return false
}

// NavNext returns the navigable widget following from in pre-order
// within the subtree at root, wrapping at the ends.
func (t *Tree) NavNext(from, root event.Id, reverse bool) (event.Id, bool) {
	start, ok := t.index[root]
	if !ok {
		return event.Id{}, false
	}
	var order []event.Id
	collectNavigable(start, &order)
	if len(order) == 0 {
		return event.Id{}, false
	}
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

func collectNavigable(w Widget, order *[]event.Id) {
	c := w.Core()
	if c.navigable {
		*order = append(*order, c.id)
	}
	for _, ch := range c.children {
		if ch.Core().overlay {
			continue
		}
		collectNavigable(ch, order)
	}
}

// Reveal asks every enclosing Revealer to bring target into view.
func (t *Tree) Reveal(target event.Id) {
	for id, ok := target.Parent(); ok; id, ok = id.Parent() {
		if w, found := t.index[id]; found {
			if rv, is := w.(Revealer); is {
				rv.RevealChild(target)
			}
		}
	}
}

// Configure assigns identifiers below id and runs the widgets'
// configure hooks. The subtree's stale index entries are dropped
// first, so removed widgets stop resolving.
func (t *Tree) Configure(cx *input.Context, id event.Id) {
	w, ok := t.lookupOrRoot(id)
	if !ok {
		return
	}
	for k := range t.index {
		if id.IsAncestorOf(k) {
			delete(t.index, k)
		}
	}
	t.configure(cx, w, id)
}

func (t *Tree) configure(cx *input.Context, w Widget, id event.Id) {
	c := w.Core()
	c.id = id
	t.index[id] = w
	if cf, ok := w.(Configurer); ok {
		cf.Configure(cx)
	}
	for i, ch := range c.children {
		t.configure(cx, ch, id.Child(i))
	}
}

// Update runs the widgets' update hooks below id.
func (t *Tree) Update(cx *input.Context, id event.Id) {
	if w, ok := t.lookupOrRoot(id); ok {
		t.update(cx, w)
	}
}

func (t *Tree) update(cx *input.Context, w Widget) {
	if up, ok := w.(Updater); ok {
		up.Update(cx)
	}
	for _, ch := range w.Core().children {
		t.update(cx, ch)
	}
}

// SetRect lays the subtree at id out again within its current
// rectangle.
func (t *Tree) SetRect(cx *input.Context, id event.Id) {
	if w, ok := t.lookupOrRoot(id); ok {
		w.SetRect(w.Core().rect)
	}
}

func (t *Tree) lookupOrRoot(id event.Id) (Widget, bool) {
	if id == event.RootId() {
		return t.root, true
	}
	w, ok := t.index[id]
	return w, ok
}

var _ input.Tree = (*Tree)(nil)
