// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"time"
	"unicode"

	"trellisui.org/io/event"
	"trellisui.org/io/key"
	"trellisui.org/io/system"
)

// accessLayer is one accelerator table: a map from physical key to
// target widget, owned by the root window or one popup level.
type accessLayer struct {
	root event.Id
	// altBypass activates the layer without Alt held, as in a
	// menu opened by click.
	altBypass bool
	keys      map[key.Name]event.Id
}

// NewAccessLayer declares id as the root of an accelerator layer.
// Call during configure; re-declaring a layer clears its bindings.
func (cx *Context) NewAccessLayer(id event.Id, altBypass bool) {
	r := cx.r
	for i := range r.layers {
		if r.layers[i].root == id {
			r.layers[i].altBypass = altBypass
			r.layers[i].keys = make(map[key.Name]event.Id)
			return
		}
	}
	r.layers = append(r.layers, accessLayer{
		root:      id,
		altBypass: altBypass,
		keys:      make(map[key.Name]event.Id),
	})
}

// AddAccessKey binds k to target in the nearest ancestor layer.
// The first binding of a key within a layer wins.
func (cx *Context) AddAccessKey(target event.Id, k key.Name) {
	r := cx.r
	var layer *accessLayer
	for i := range r.layers {
		l := &r.layers[i]
		if !l.root.IsAncestorOf(target) {
			continue
		}
		if layer == nil || layer.root.Depth() < l.root.Depth() {
			layer = l
		}
	}
	if layer == nil {
		return
	}
	if _, ok := layer.keys[k]; !ok {
		layer.keys[k] = target
	}
}

// Key reports a raw key press or release.
//
// A press is first offered to the character focus target as a raw
// key.Event. Unconsumed presses resolve through the shortcut table
// to a Command tried against the focus targets in priority order;
// commands no target consumes fall back to router defaults (Tab
// navigation, Escape closing the topmost popup, window close and
// exit) and finally to accelerator-layer resolution.
func (r *Router) Key(t time.Time, name key.Name, mods key.Modifiers, state key.State) {
	cx := r.open(t)
	r.modifiers = mods
	if state == key.Release {
		if r.keyDepress.target.Valid() && r.keyDepress.key == name {
			r.keyDepress.target = event.Id{}
			cx.Redraw()
		}
		return
	}
	charTarget := event.Id{}
	if r.focus.sel.Valid() && r.focus.charFocus {
		charTarget = r.focus.sel
		if cx.deliverTo(charTarget, key.Event{Name: name, Modifiers: mods, State: key.Press}) {
			return
		}
	}
	if cmd, ok := r.cfg.Shortcuts.Lookup(mods, name); ok {
		if r.dispatchCommand(cx, cmd, name, charTarget) {
			return
		}
	}
	r.dispatchAccessKey(cx, name)
}

// Text reports text input, delivered to the character focus target
// as an EditEvent with control characters filtered out.
func (r *Router) Text(t time.Time, s string) {
	cx := r.open(t)
	if !r.focus.sel.Valid() || !r.focus.charFocus {
		return
	}
	runes := make([]rune, 0, len(s))
	for _, c := range s {
		if !unicode.IsControl(c) {
			runes = append(runes, c)
		}
	}
	if len(runes) == 0 {
		return
	}
	cx.deliverTo(r.focus.sel, key.EditEvent{Text: string(runes)})
}

// dispatchCommand tries the focus targets in fixed priority order
// and falls back to router defaults. It reports whether the
// command was handled.
func (r *Router) dispatchCommand(cx *Context, cmd key.Command, name key.Name, charTarget event.Id) bool {
	f := &r.focus
	ev := key.CommandEvent{Command: cmd}
	var tried [4]event.Id
	try := func(id event.Id) bool {
		if !id.Valid() {
			return false
		}
		for i := range tried {
			if tried[i] == id {
				return false
			}
			if !tried[i].Valid() {
				tried[i] = id
				break
			}
		}
		if !cx.deliverTo(id, ev) {
			return false
		}
		if cmd.IsActivate() {
			r.keyDepress.target = id
			r.keyDepress.key = name
			cx.Redraw()
		}
		return true
	}
	if try(charTarget) {
		return true
	}
	// Accelerator mode prioritizes layer resolution over the
	// navigation target.
	if !r.modifiers.Contain(key.ModAlt) && try(f.nav) {
		return true
	}
	if n := len(r.popups); n > 0 && try(r.popups[n-1].desc.Parent) {
		return true
	}
	if cmd.SelectionSafe() && f.sel != f.nav && try(f.sel) {
		return true
	}
	if try(f.fallback) {
		return true
	}
	switch cmd {
	case key.CommandTab:
		cx.NextNavFocus(event.Id{}, r.modifiers.Contain(key.ModShift), key.SourceKey)
		return true
	case key.CommandEscape:
		if n := len(r.popups); n > 0 {
			cx.ClosePopup(r.popups[n-1].window)
			return true
		}
	case key.CommandClose:
		cx.Action(system.ActionClose)
		return true
	case key.CommandExit:
		cx.Action(system.ActionExit)
		return true
	}
	return false
}

// dispatchAccessKey resolves name through the accelerator layers,
// innermost popup level first. A match closes every popup above
// the matched level, depresses the target until key release and
// delivers an activation command.
func (r *Router) dispatchAccessKey(cx *Context, name key.Name) bool {
	alt := r.modifiers.Contain(key.ModAlt)
	target, level, ok := r.accessMatch(name, alt)
	if !ok {
		return false
	}
	for len(r.popups) > level {
		cx.ClosePopup(r.popups[len(r.popups)-1].window)
	}
	r.keyDepress.target = target
	r.keyDepress.key = name
	cx.Redraw()
	cx.deliverTo(target, key.CommandEvent{Command: key.CommandActivate})
	return true
}

// accessMatch returns the bound target and the popup level of the
// matching layer: the number of popup levels below it, so closing
// down to that count dismisses everything opened above the match.
func (r *Router) accessMatch(name key.Name, alt bool) (event.Id, int, bool) {
	// Popup levels from innermost to the base window.
	for lvl := len(r.popups) - 1; lvl >= -1; lvl-- {
		for i := range r.layers {
			l := &r.layers[i]
			if r.layerLevel(l.root) != lvl {
				continue
			}
			if !alt && !l.altBypass {
				continue
			}
			if target, ok := l.keys[name]; ok {
				// Bindings of hidden widgets, such as entries of a
				// closed menu, stay inert.
				if !r.tree.Contains(target) {
					continue
				}
				return target, lvl + 1, true
			}
		}
	}
	return event.Id{}, 0, false
}

// layerLevel returns the index of the popup containing root, or -1
// for the base window.
func (r *Router) layerLevel(root event.Id) int {
	for i := len(r.popups) - 1; i >= 0; i-- {
		if r.popups[i].desc.Id.IsAncestorOf(root) {
			return i
		}
	}
	return -1
}
