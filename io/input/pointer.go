// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"trellisui.org/f32"
	"trellisui.org/gesture"
	"trellisui.org/io/event"
	"trellisui.org/io/key"
	"trellisui.org/io/pointer"
)

// sortedTouchIDs returns the grabbed touch ids in a stable order
// for deterministic flushing.
func sortedTouchIDs(m map[pointer.ID]*touchGrab) []pointer.ID {
	ids := maps.Keys(m)
	slices.Sort(ids)
	return ids
}

// GrabMode is the kind of claim a widget places on a press.
type GrabMode uint8

const (
	// GrabClick tracks the press until release without motion
	// deliveries; the owner is drawn depressed while the pointer
	// stays over it.
	GrabClick GrabMode = iota
	// GrabDrag additionally delivers coalesced Drag events, one
	// per flush cycle.
	GrabDrag
	// GrabPanFull feeds the contact into a pan group solving for
	// rotation, scale and translation.
	GrabPanFull
	// GrabPanScale solves for scale and translation only.
	GrabPanScale
	// GrabPanRotate solves for rotation and translation only.
	GrabPanRotate
	// GrabPanTranslate solves for translation only.
	GrabPanTranslate
)

// IsPan reports whether m feeds a pan group.
func (m GrabMode) IsPan() bool {
	return m >= GrabPanFull
}

func (m GrabMode) transformKind() gesture.TransformKind {
	switch m {
	case GrabPanFull:
		return gesture.TransformFull
	case GrabPanScale:
		return gesture.TransformScale
	case GrabPanRotate:
		return gesture.TransformRotate
	case GrabPanTranslate:
		return gesture.TransformTranslate
	default:
		panic("not a pan mode")
	}
}

func (m GrabMode) String() string {
	switch m {
	case GrabClick:
		return "GrabClick"
	case GrabDrag:
		return "GrabDrag"
	case GrabPanFull:
		return "GrabPanFull"
	case GrabPanScale:
		return "GrabPanScale"
	case GrabPanRotate:
		return "GrabPanRotate"
	case GrabPanTranslate:
		return "GrabPanTranslate"
	default:
		panic("invalid GrabMode")
	}
}

// pointerGrab is the single mouse grab. It exists from a granted
// Grab request until the owning button's release or an explicit
// cancel.
type pointerGrab struct {
	button      pointer.Buttons
	repetitions int
	owner       event.Id
	// target is the widget currently under the pointer; zero when
	// the pointer left all hit-testable area.
	target event.Id
	mode   GrabMode
	// delta accumulates motion between flushes.
	delta f32.Point
	moved bool
	pan   *panGroup
	// cursor set by the owner for the duration of the grab.
	cursor    pointer.Cursor
	hasCursor bool
}

// touchGrab tracks one grabbed touch contact, keyed by platform
// touch id in Router.touch.
type touchGrab struct {
	start   event.Id
	cur     event.Id
	last    f32.Point
	mode    GrabMode
	delta   f32.Point
	moved   bool
	pan     *panGroup
	depress event.Id
}

// panGroup aggregates up to two contacts of a pan gesture for one
// owner. The gesture transform is solved once per flush cycle from
// the previous and current positions of its contacts.
type panGroup struct {
	owner event.Id
	kind  gesture.TransformKind
	touch bool
	n     int
	c     [2]panContact
	// origin of the first contact; motion is swallowed until a
	// contact travels the pan distance threshold from it.
	origin  f32.Point
	started bool
}

type panContact struct {
	prev, cur f32.Point
	id        pointer.ID
}

// Grab claims subsequent motion and release events of the press e
// for owner. It reports false if a conflicting grab is already
// active: a mouse grab by another button or owner, or a grab whose
// pan-ness differs from mode. Re-requesting a compatible grab may
// upgrade a click grab to a drag grab; other mode differences are
// ignored, since a pan group's transform kind is fixed at creation.
func (cx *Context) Grab(owner event.Id, e pointer.Event, mode GrabMode) bool {
	if e.Source == pointer.Touch {
		return cx.grabTouch(owner, e, mode)
	}
	return cx.grabPointer(owner, e, mode)
}

// SetGrabCursor overrides the cursor icon for the duration of the
// active mouse grab. Without a grab it has no effect.
func (cx *Context) SetGrabCursor(c pointer.Cursor) {
	g := cx.r.mouse.grab
	if g == nil {
		return
	}
	g.cursor = c
	g.hasCursor = true
	cx.r.shell.SetCursor(c)
	cx.r.sentIcon = c
}

// CancelPointerGrab cancels the active mouse grab, if any. The
// owner receives a Cancel event so it can tell cancellation from
// completion.
func (cx *Context) CancelPointerGrab() {
	r := cx.r
	g := r.mouse.grab
	if g == nil {
		return
	}
	r.mouse.grab = nil
	r.dropPanContact(g.pan, 0, false)
	if r.mouse.depress.Valid() {
		r.mouse.depress = event.Id{}
		cx.Redraw()
	}
	cx.deliverTo(g.owner, pointer.Event{
		Kind:        pointer.Cancel,
		Button:      g.button,
		Repetitions: g.repetitions,
		Position:    r.mouse.pos,
		Over:        g.target,
		Modifiers:   r.modifiers,
	})
}

// CancelTouchGrab cancels the grab of one touch contact, if any.
func (cx *Context) CancelTouchGrab(id pointer.ID) {
	cx.r.endTouch(cx, id, pointer.Cancel, cx.r.touchPos(id))
}

func (cx *Context) grabPointer(owner event.Id, e pointer.Event, mode GrabMode) bool {
	r := cx.r
	if g := r.mouse.grab; g != nil {
		if g.button != e.Button || g.owner != owner || g.mode.IsPan() != mode.IsPan() {
			return false
		}
		if g.mode == GrabClick && mode == GrabDrag {
			g.mode = GrabDrag
		}
		return true
	}
	g := &pointerGrab{
		button:      e.Button,
		repetitions: e.Repetitions,
		owner:       owner,
		target:      e.Over,
		mode:        mode,
	}
	if mode.IsPan() {
		g.pan = r.joinPanGroup(owner, mode, false, 0, e.Position)
	} else {
		r.mouse.depress = owner
		cx.Redraw()
	}
	r.mouse.grab = g
	return true
}

func (cx *Context) grabTouch(owner event.Id, e pointer.Event, mode GrabMode) bool {
	r := cx.r
	id := e.PointerID
	if g, ok := r.touch[id]; ok {
		if g.start != owner || g.mode.IsPan() != mode.IsPan() {
			return false
		}
		if g.mode == GrabClick && mode == GrabDrag {
			g.mode = GrabDrag
		}
		return true
	}
	g := &touchGrab{
		start: owner,
		cur:   e.Over,
		last:  e.Position,
		mode:  mode,
	}
	if mode.IsPan() {
		g.pan = r.joinPanGroup(owner, mode, true, id, e.Position)
	} else {
		g.depress = owner
		cx.Redraw()
	}
	r.touch[id] = g
	return true
}

// PointerMove reports mouse motion. With a grab active the motion
// accrues to the grab or its pan group; without one it updates
// hover, and while a popup is open the hover target additionally
// receives a Move event so open menus can track the pointer.
func (r *Router) PointerMove(t time.Time, pos f32.Point, mods key.Modifiers) {
	cx := r.open(t)
	r.modifiers = mods
	prev := r.mouse.pos
	r.mouse.pos = pos
	g := r.mouse.grab
	switch {
	case g != nil && g.mode.IsPan():
		if c := g.pan.contact(0, false); c != nil {
			c.cur = pos
		}
	case g != nil:
		target, _ := r.tree.HitTest(pos)
		g.target = target
		g.delta = g.delta.Add(pos.Sub(prev))
		g.moved = true
		depress := event.Id{}
		if g.owner.IsAncestorOf(target) {
			depress = g.owner
		}
		if r.mouse.depress != depress {
			r.mouse.depress = depress
			cx.Redraw()
		}
	default:
		r.updateHover(cx)
		if len(r.popups) > 0 {
			// Unlike presses, motion never closes popups.
			target := r.focus.hover
			cx.deliver(target, pointer.Event{
				Kind:      pointer.Move,
				Position:  pos,
				Over:      target,
				Modifiers: mods,
			})
		}
	}
}

// PointerButton reports a mouse button press or release at pos.
func (r *Router) PointerButton(t time.Time, button pointer.Buttons, pressed bool, pos f32.Point, mods key.Modifiers) {
	cx := r.open(t)
	r.modifiers = mods
	r.mouse.pos = pos
	if pressed {
		r.pointerPress(cx, t, button)
	} else {
		r.pointerRelease(cx, button)
	}
}

func (r *Router) pointerPress(cx *Context, t time.Time, button pointer.Buttons) {
	// Double-click detection runs synchronously at press time.
	if button == r.click.button && t.Before(r.click.expiry) {
		r.click.repetitions++
	} else {
		r.click.repetitions = 1
	}
	r.click.button = button
	r.click.expiry = t.Add(time.Duration(r.cfg.DoubleClickTimeout))

	ev := pointer.Event{
		Kind:        pointer.Press,
		Button:      button,
		Repetitions: r.click.repetitions,
		Position:    r.mouse.pos,
		Modifiers:   r.modifiers,
	}
	if g := r.mouse.grab; g != nil {
		// An active grab owns the pointer; presses of other
		// buttons go to the owner and never start a second
		// grab.
		ev.Over = g.target
		cx.deliverTo(g.owner, ev)
		return
	}
	target, _ := r.tree.HitTest(r.mouse.pos)
	ev.Over = target
	cx.sendPopupFirst(target, ev)
}

func (r *Router) pointerRelease(cx *Context, button pointer.Buttons) {
	g := r.mouse.grab
	if g == nil || g.button != button {
		return
	}
	r.mouse.grab = nil
	r.dropPanContact(g.pan, 0, false)
	if r.mouse.depress.Valid() {
		r.mouse.depress = event.Id{}
		cx.Redraw()
	}
	// Delivery to a stale owner misses silently; the grab is
	// cleaned up regardless.
	cx.deliverTo(g.owner, pointer.Event{
		Kind:        pointer.Release,
		Button:      button,
		Repetitions: g.repetitions,
		Position:    r.mouse.pos,
		Over:        g.target,
		Modifiers:   r.modifiers,
	})
	r.updateHover(cx)
}

// PointerScroll reports wheel input at pos. Scroll events route
// popup-first and break any double-click chain.
func (r *Router) PointerScroll(t time.Time, pos, scroll f32.Point, mods key.Modifiers) {
	cx := r.open(t)
	r.modifiers = mods
	r.mouse.pos = pos
	r.click.button = 0
	r.click.expiry = time.Time{}
	if r.mouse.grab == nil {
		r.updateHover(cx)
	}
	target, _ := r.tree.HitTest(pos)
	cx.sendPopupFirst(target, pointer.Event{
		Kind:      pointer.Scroll,
		Position:  pos,
		Scroll:    scroll,
		Over:      target,
		Modifiers: mods,
	})
}

// PointerLeave reports that the pointer left the window.
func (r *Router) PointerLeave(t time.Time) {
	cx := r.open(t)
	r.click.button = 0
	r.click.expiry = time.Time{}
	r.setHover(cx, event.Id{})
}

// TouchStart reports a new touch contact. The hit widget receives
// a Press event and may claim the contact with Grab.
func (r *Router) TouchStart(t time.Time, id pointer.ID, pos f32.Point, mods key.Modifiers) {
	cx := r.open(t)
	r.modifiers = mods
	target, _ := r.tree.HitTest(pos)
	cx.sendPopupFirst(target, pointer.Event{
		Kind:        pointer.Press,
		Source:      pointer.Touch,
		PointerID:   id,
		Repetitions: 1,
		Position:    pos,
		Over:        target,
		Modifiers:   mods,
	})
}

// TouchMove reports motion of a touch contact. Ungrabbed contacts
// are ignored.
func (r *Router) TouchMove(t time.Time, id pointer.ID, pos f32.Point, mods key.Modifiers) {
	cx := r.open(t)
	r.modifiers = mods
	g, ok := r.touch[id]
	if !ok {
		return
	}
	if g.mode.IsPan() {
		if c := g.pan.contact(id, true); c != nil {
			c.cur = pos
		}
		g.last = pos
		return
	}
	target, _ := r.tree.HitTest(pos)
	if target != g.cur {
		// The depressed state toggles only when the target
		// change crosses the grab's start id, minimizing
		// redraws.
		was := g.start.IsAncestorOf(g.cur)
		is := g.start.IsAncestorOf(target)
		if was != is {
			if is {
				g.depress = g.start
			} else {
				g.depress = event.Id{}
			}
			cx.Redraw()
		}
		g.cur = target
	}
	g.delta = g.delta.Add(pos.Sub(g.last))
	g.last = pos
	g.moved = true
}

// TouchEnd reports the end of a touch contact, concluding its grab
// successfully.
func (r *Router) TouchEnd(t time.Time, id pointer.ID, pos f32.Point) {
	cx := r.open(t)
	r.endTouch(cx, id, pointer.Release, pos)
}

// TouchCancel reports platform cancellation of a touch contact.
func (r *Router) TouchCancel(t time.Time, id pointer.ID, pos f32.Point) {
	cx := r.open(t)
	r.endTouch(cx, id, pointer.Cancel, pos)
}

func (r *Router) endTouch(cx *Context, id pointer.ID, kind pointer.Kind, pos f32.Point) {
	g, ok := r.touch[id]
	if !ok {
		return
	}
	delete(r.touch, id)
	r.dropPanContact(g.pan, id, true)
	if g.depress.Valid() {
		cx.Redraw()
	}
	cx.deliverTo(g.start, pointer.Event{
		Kind:      kind,
		Source:    pointer.Touch,
		PointerID: id,
		Position:  pos,
		Over:      g.cur,
		Modifiers: r.modifiers,
	})
}

func (r *Router) touchPos(id pointer.ID) f32.Point {
	if g, ok := r.touch[id]; ok {
		return g.last
	}
	return f32.Point{}
}

// joinPanGroup adds a contact to owner's pan group, creating the
// group if needed. A third contact overwrites the second slot; a
// contact whose touch-vs-mouse origin differs from the group's
// restarts the group instead of joining it.
func (r *Router) joinPanGroup(owner event.Id, mode GrabMode, touch bool, id pointer.ID, pos f32.Point) *panGroup {
	kind := mode.transformKind()
	for _, g := range r.pans {
		if g.owner != owner {
			continue
		}
		if g.touch != touch {
			*g = panGroup{owner: owner, kind: kind, touch: touch, origin: pos}
		}
		idx := g.n
		if idx > 1 {
			idx = 1
		} else {
			g.n++
		}
		g.c[idx] = panContact{prev: pos, cur: pos, id: id}
		return g
	}
	g := &panGroup{owner: owner, kind: kind, touch: touch, n: 1, origin: pos}
	g.c[0] = panContact{prev: pos, cur: pos, id: id}
	r.pans = append(r.pans, g)
	return g
}

// dropPanContact removes a contact from its group and the group
// from the router when its last contact ends. A nil group is a
// no-op.
func (r *Router) dropPanContact(g *panGroup, id pointer.ID, touch bool) {
	if g == nil {
		return
	}
	idx := -1
	for i := 0; i < g.n; i++ {
		if g.touch == touch && (!touch || g.c[i].id == id) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	g.n--
	if idx == 0 && g.n > 0 {
		g.c[0] = g.c[1]
	}
	if g.n > 0 {
		return
	}
	for i, pg := range r.pans {
		if pg == g {
			r.pans = append(r.pans[:i], r.pans[i+1:]...)
			return
		}
	}
}

// contact returns the group's contact for a touch id, or the first
// contact for the mouse.
func (g *panGroup) contact(id pointer.ID, touch bool) *panContact {
	if g == nil || g.n == 0 {
		return nil
	}
	if !touch {
		return &g.c[0]
	}
	for i := 0; i < g.n; i++ {
		if g.c[i].id == id {
			return &g.c[i]
		}
	}
	return nil
}

// flushGrabMotion delivers the coalesced Drag events of the mouse
// and touch grabs.
func (r *Router) flushGrabMotion(cx *Context) {
	if g := r.mouse.grab; g != nil && g.moved {
		delta := g.delta
		g.moved = false
		g.delta = f32.Point{}
		if g.mode == GrabDrag {
			cx.deliverTo(g.owner, pointer.Event{
				Kind:        pointer.Drag,
				Button:      g.button,
				Repetitions: g.repetitions,
				Position:    r.mouse.pos,
				Delta:       delta,
				Over:        g.target,
				Modifiers:   r.modifiers,
			})
		}
	}
	for _, id := range sortedTouchIDs(r.touch) {
		g := r.touch[id]
		if !g.moved {
			continue
		}
		delta := g.delta
		g.moved = false
		g.delta = f32.Point{}
		if g.mode != GrabDrag {
			continue
		}
		cx.deliverTo(g.start, pointer.Event{
			Kind:      pointer.Drag,
			Source:    pointer.Touch,
			PointerID: id,
			Position:  g.last,
			Delta:     delta,
			Over:      g.cur,
			Modifiers: r.modifiers,
		})
	}
}

// flushPanGroups solves and delivers the pan transforms, once per
// flush cycle. Identity transforms are elided, and a group emits
// nothing until a contact travels the pan distance threshold.
func (r *Router) flushPanGroups(cx *Context) {
	threshold := float32(r.metric.Dp(r.cfg.PanDistThreshold))
	for _, g := range r.pans {
		if g.n == 0 {
			continue
		}
		var p, q [2]f32.Point
		moved := false
		for i := 0; i < g.n; i++ {
			p[i] = g.c[i].prev
			q[i] = g.c[i].cur
			if p[i] != q[i] {
				moved = true
			}
		}
		if !moved {
			continue
		}
		if !g.started {
			for i := 0; i < g.n; i++ {
				d := g.c[i].cur.Sub(g.origin)
				if d.X*d.X+d.Y*d.Y >= threshold*threshold {
					g.started = true
					break
				}
			}
		}
		for i := 0; i < g.n; i++ {
			g.c[i].prev = g.c[i].cur
		}
		if !g.started {
			continue
		}
		alpha, delta := gesture.Transform(g.kind, p, q, g.n)
		if alpha == f32.Pt(1, 0) && delta == (f32.Point{}) {
			continue
		}
		cx.deliverTo(g.owner, pointer.PanEvent{Alpha: alpha, Delta: delta})
	}
}
