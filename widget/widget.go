// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"trellisui.org/f32"
	"trellisui.org/io/event"
	"trellisui.org/io/input"
	"trellisui.org/io/pointer"
)

// Widget is a node of a retained widget tree.
//
// A widget embeds a Core holding its identifier, rectangle and
// children; the Tree walks cores, so widgets only implement the
// behavior methods. All methods are called from the window's event
// loop goroutine.
type Widget interface {
	// Core returns the embedded core state.
	Core() *Core
	// Measure returns the preferred size in cells.
	Measure() f32.Point
	// SetRect assigns the widget's rectangle and lays out its
	// children.
	SetRect(r f32.Rectangle)
	// Draw renders the widget, children excluded, onto d.
	Draw(d *DrawContext)
	// Handle processes an event addressed to the widget and
	// reports whether it was consumed.
	Handle(cx *input.Context, e event.Event) bool
}

// Configurer is implemented by widgets that register router state,
// such as access keys or a navigation fallback, when the tree is
// configured.
type Configurer interface {
	Configure(cx *input.Context)
}

// Revealer is implemented by containers that can bring a descendant
// into view, such as scroll regions.
type Revealer interface {
	RevealChild(target event.Id)
}

// ChildDrawer is implemented by containers that draw their own
// children, for clipping or reordering. The tree then skips the
// default child walk below them.
type ChildDrawer interface {
	DrawChildren(d *DrawContext)
}

// Core is the state common to all widgets. Containers append their
// children to it; the Tree assigns Id and reads the declared flags.
type Core struct {
	id       event.Id
	rect     f32.Rectangle
	children []Widget

	// cursor is the pointer icon declared over the widget.
	cursor pointer.Cursor
	// wantsHover marks widgets whose appearance depends on hover.
	wantsHover bool
	// navigable widgets participate in Tab traversal.
	navigable bool
	// overlay roots are popup content: hidden from the base window's
	// hit tests, traversal and drawing until their popup opens.
	overlay bool
}

// Id returns the widget's identifier, valid after configuration.
func (c *Core) Id() event.Id {
	return c.id
}

// Rect returns the widget's rectangle, valid after layout.
func (c *Core) Rect() f32.Rectangle {
	return c.rect
}

// Append adds children. Call RequestConfigure on the container
// afterwards if the tree is already configured.
func (c *Core) Append(children ...Widget) {
	c.children = append(c.children, children...)
}

// Base is a default widget implementation for containers and simple
// leaves to embed: zero preferred size, rectangle assignment only,
// no drawing, no event handling.
type Base struct {
	core Core
}

func (b *Base) Core() *Core { return &b.core }

func (b *Base) Measure() f32.Point { return f32.Point{} }

func (b *Base) SetRect(r f32.Rectangle) { b.core.rect = r }

func (b *Base) Draw(d *DrawContext) {}

func (b *Base) Handle(cx *input.Context, e event.Event) bool { return false }
