// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"trellisui.org/f32"
	"trellisui.org/gesture"
)

// Box lays its children out along one axis, giving each its
// preferred extent and the full cross extent; the last child absorbs
// the remainder.
type Box struct {
	Base
	axis gesture.Axis
}

func NewRow(children ...Widget) *Box {
	b := &Box{axis: gesture.Horizontal}
	b.core.Append(children...)
	return b
}

func NewColumn(children ...Widget) *Box {
	b := &Box{axis: gesture.Vertical}
	b.core.Append(children...)
	return b
}

func (b *Box) Measure() f32.Point {
	var main, cross float32
	for _, ch := range b.core.children {
		sz := ch.Measure()
		m, c := split(b.axis, sz)
		main += m
		if c > cross {
			cross = c
		}
	}
	return join(b.axis, main, cross)
}

func (b *Box) SetRect(r f32.Rectangle) {
	b.core.rect = r
	pos := r.Min
	for i, ch := range b.core.children {
		m, _ := split(b.axis, ch.Measure())
		var cr f32.Rectangle
		if b.axis == gesture.Horizontal {
			cr = f32.Rectangle{Min: pos, Max: f32.Pt(pos.X+m, r.Max.Y)}
			if i == len(b.core.children)-1 && cr.Max.X < r.Max.X {
				cr.Max.X = r.Max.X
			}
			pos.X = cr.Max.X
		} else {
			cr = f32.Rectangle{Min: pos, Max: f32.Pt(r.Max.X, pos.Y+m)}
			if i == len(b.core.children)-1 && cr.Max.Y < r.Max.Y {
				cr.Max.Y = r.Max.Y
			}
			pos.Y = cr.Max.Y
		}
		ch.SetRect(cr.Intersect(r))
	}
}

func split(a gesture.Axis, p f32.Point) (main, cross float32) {
	if a == gesture.Horizontal {
		return p.X, p.Y
	}
	return p.Y, p.X
}

func join(a gesture.Axis, main, cross float32) f32.Point {
	if a == gesture.Horizontal {
		return f32.Pt(main, cross)
	}
	return f32.Pt(cross, main)
}
