// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"time"

	"trellisui.org/f32"
	"trellisui.org/gesture"
	"trellisui.org/io/event"
	"trellisui.org/io/input"
	"trellisui.org/io/pointer"
	"trellisui.org/io/system"
	"trellisui.org/unit"
)

// Scroll is a vertical viewport over its content widget. Wheel
// input scrolls directly; touch drags scroll with momentum driven
// by router timers.
type Scroll struct {
	Base
	// Rows is the preferred viewport height.
	Rows int

	offset float32
	glide  gesture.Glide
}

const glideTick = 16 * time.Millisecond

func NewScroll(rows int, content Widget) *Scroll {
	s := &Scroll{Rows: rows}
	// Prime the gesture axis so the first wheel event counts.
	s.glide.Update(unit.Metric{}, pointer.Event{}, time.Time{}, gesture.Vertical)
	s.core.Append(content)
	return s
}

func (s *Scroll) content() Widget {
	return s.core.children[0]
}

func (s *Scroll) Measure() f32.Point {
	sz := s.content().Measure()
	return f32.Pt(sz.X+1, float32(s.Rows))
}

func (s *Scroll) SetRect(r f32.Rectangle) {
	s.core.rect = r
	s.clampOffset()
	c := s.content()
	sz := c.Measure()
	c.SetRect(f32.Rectangle{
		Min: f32.Pt(r.Min.X, r.Min.Y-s.offset),
		Max: f32.Pt(r.Max.X-1, r.Min.Y-s.offset+sz.Y),
	})
}

func (s *Scroll) maxOffset() float32 {
	m := s.content().Measure().Y - s.core.rect.Dy()
	if m < 0 {
		m = 0
	}
	return m
}

func (s *Scroll) clampOffset() {
	if s.offset < 0 {
		s.offset = 0
	}
	if m := s.maxOffset(); s.offset > m {
		s.offset = m
	}
}

func (s *Scroll) Handle(cx *input.Context, e event.Event) bool {
	switch e := e.(type) {
	case pointer.Event:
		if e.Kind == pointer.Press {
			// Mouse clicks belong to the content.
			if e.Source != pointer.Touch || !cx.Grab(s.core.id, e, input.GrabDrag) {
				return false
			}
		}
		s.glide.Slop = cx.Config().ScrollFlingSlop
		d := s.glide.Update(cx.Metric(), e, cx.Now(), gesture.Vertical)
		if d != 0 {
			s.scrollBy(cx, float32(d))
		}
		if s.glide.Active() {
			cx.RequestTimer(s.core.id, 0, glideTick)
		}
		return e.Kind == pointer.Scroll || e.Kind == pointer.Press
	case system.TimerEvent:
		if d := s.glide.Tick(e.Time); d != 0 {
			s.scrollBy(cx, float32(d))
		}
		if s.glide.Active() {
			cx.RequestTimer(s.core.id, 0, glideTick)
		}
		return true
	}
	return false
}

func (s *Scroll) scrollBy(cx *input.Context, d float32) {
	s.offset += d
	s.SetRect(s.core.rect)
	cx.Redraw()
}

// RevealChild scrolls target's rectangle into the viewport.
func (s *Scroll) RevealChild(target event.Id) {
	c, ok := findCore(s.content(), target)
	if !ok {
		return
	}
	r := s.core.rect
	if d := c.rect.Max.Y - r.Max.Y; d > 0 {
		s.offset += d
	}
	if d := r.Min.Y - c.rect.Min.Y; d > 0 {
		s.offset -= d
	}
	s.SetRect(r)
}

func findCore(w Widget, id event.Id) (*Core, bool) {
	c := w.Core()
	if c.id == id {
		return c, true
	}
	if !c.id.IsAncestorOf(id) {
		return nil, false
	}
	for _, ch := range c.children {
		if fc, ok := findCore(ch, id); ok {
			return fc, true
		}
	}
	return nil, false
}

func (s *Scroll) Draw(d *DrawContext) {
	Fill(d.Screen, s.core.rect, d.Palette.Base, ' ')
}

// DrawChildren clips the content to the viewport and draws the
// scrollbar column.
func (s *Scroll) DrawChildren(d *DrawContext) {
	r := s.core.rect
	clipped := *d
	clipped.Screen = Clipped(d.Screen, f32.Rectangle{
		Min: r.Min,
		Max: f32.Pt(r.Max.X-1, r.Max.Y),
	})
	drawSubtree(&clipped, s.content())

	contentH := s.content().Measure().Y
	if contentH <= r.Dy() {
		return
	}
	x := int(r.Max.X) - 1
	h := int(r.Dy())
	thumb := int(r.Dy() * r.Dy() / contentH)
	if thumb < 1 {
		thumb = 1
	}
	top := int(s.offset / contentH * r.Dy())
	for y := 0; y < h; y++ {
		c := '│'
		if y >= top && y < top+thumb {
			c = '█'
		}
		d.Screen.SetCell(x, int(r.Min.Y)+y, d.Palette.Base, c)
	}
}
