// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture implements pointer gesture math shared by the input
router and widgets.

Transform solves the rigid transform implied by the motion of one or
two contacts of a pan gesture. Glide reduces wheel, drag and fling
motion along an axis to scroll distances.
*/
package gesture

import (
	"math"
	"time"

	"trellisui.org/f32"
	"trellisui.org/internal/fling"
	"trellisui.org/io/pointer"
	"trellisui.org/unit"
)

// TransformKind selects the components of the rigid transform a pan
// gesture solves for.
type TransformKind uint8

// Axis of a Glide.
type Axis uint8

const (
	// TransformFull solves for rotation, scale and translation.
	TransformFull TransformKind = iota
	// TransformScale solves for scale and translation.
	TransformScale
	// TransformRotate solves for rotation and translation.
	TransformRotate
	// TransformTranslate solves for translation only.
	TransformTranslate
)

const (
	Horizontal Axis = iota
	Vertical
)

// Transform computes the transform mapping the previous positions p
// of the first contacts contacts onto their current positions q.
// Treating points as complex numbers, a previous position v maps to
// alpha*v + delta; alpha captures rotation and scale, delta the
// translation.
//
// With a single contact, or in TransformTranslate mode, alpha is the
// identity and delta the displacement of the first contact. With two
// contacts alpha is derived from the displacement vectors between
// the contacts and delta is the mean translation remaining after the
// alpha component is removed.
func Transform(kind TransformKind, p, q [2]f32.Point, contacts int) (alpha, delta f32.Point) {
	alpha = f32.Pt(1, 0)
	if contacts == 0 {
		return alpha, f32.Point{}
	}
	if contacts == 1 || kind == TransformTranslate {
		return alpha, q[0].Sub(p[0])
	}
	pd := p[1].Sub(p[0])
	qd := q[1].Sub(q[0])
	if pd == (f32.Point{}) {
		// Coincident previous positions carry no angle or
		// scale information.
		return alpha, q[0].Sub(p[0])
	}
	switch kind {
	case TransformFull:
		alpha = cdiv(qd, pd)
	case TransformScale:
		alpha = f32.Pt(cabs(qd)/cabs(pd), 0)
	case TransformRotate:
		a := cdiv(qd, pd)
		n := cabs(a)
		if n == 0 {
			return f32.Pt(1, 0), q[0].Sub(p[0])
		}
		alpha = a.Div(n)
	default:
		panic("invalid TransformKind")
	}
	d1 := q[0].Sub(cmul(alpha, p[0]))
	d2 := q[1].Sub(cmul(alpha, p[1]))
	delta = d1.Add(d2).Div(2)
	return alpha, delta
}

// cmul returns the complex product of a and b.
func cmul(a, b f32.Point) f32.Point {
	return f32.Pt(a.X*b.X-a.Y*b.Y, a.X*b.Y+a.Y*b.X)
}

// cdiv returns the complex quotient a/b.
func cdiv(a, b f32.Point) f32.Point {
	d := b.X*b.X + b.Y*b.Y
	return f32.Pt((a.X*b.X+a.Y*b.Y)/d, (a.Y*b.X-a.X*b.Y)/d)
}

// cabs returns the magnitude of a.
func cabs(a f32.Point) float32 {
	return float32(math.Hypot(float64(a.X), float64(a.Y)))
}

// Glide detects scroll gestures and reduces them to scroll
// distances. Glide recognizes mouse wheel movements as well as drag
// and fling touch gestures.
type Glide struct {
	// Slop is the minimum estimated fling distance that starts a
	// fling on release. Zero means the built-in default.
	Slop unit.Dp

	dragging  bool
	axis      Axis
	estimator fling.Extrapolation
	flinger   fling.Animation
	pid       pointer.ID
	last      int
	// Leftover scroll.
	scroll float32
}

const defaultSlop = unit.Dp(3)

// Stop any remaining fling movement.
func (g *Glide) Stop() {
	g.flinger = fling.Animation{}
}

// Active reports whether a fling is in progress. An active Glide
// needs Tick calls to produce the remaining distance.
func (g *Glide) Active() bool {
	return g.flinger.Active()
}

// Update feeds a pointer event to the gesture and returns the scroll
// distance it implies.
func (g *Glide) Update(m unit.Metric, e pointer.Event, t time.Time, axis Axis) int {
	if g.axis != axis {
		g.axis = axis
		return 0
	}
	total := 0
	switch e.Kind {
	case pointer.Press:
		if g.dragging || e.Source != pointer.Touch {
			break
		}
		g.Stop()
		g.estimator = fling.Extrapolation{}
		v := g.val(e.Position)
		g.last = int(math.Round(float64(v)))
		g.estimator.Sample(t, v)
		g.dragging = true
		g.pid = e.PointerID
	case pointer.Release:
		if !g.dragging || g.pid != e.PointerID {
			break
		}
		slop := g.Slop
		if slop == 0 {
			slop = defaultSlop
		}
		est := g.estimator.Estimate()
		if lim, d := float32(m.Dp(slop)), est.Distance; d < -lim || d > lim {
			g.flinger.Start(t, est.Velocity)
		}
		fallthrough
	case pointer.Cancel:
		g.dragging = false
	case pointer.Scroll:
		switch g.axis {
		case Horizontal:
			g.scroll += e.Scroll.X
		case Vertical:
			g.scroll += e.Scroll.Y
		}
		iscroll := int(g.scroll)
		g.scroll -= float32(iscroll)
		total += iscroll
	case pointer.Drag:
		if !g.dragging || g.pid != e.PointerID {
			break
		}
		val := g.val(e.Position)
		g.estimator.Sample(t, val)
		v := int(math.Round(float64(val)))
		total += g.last - v
		g.last = v
	}
	return total
}

// Tick returns the fling distance covered since the last call.
func (g *Glide) Tick(t time.Time) int {
	return g.flinger.Tick(t)
}

func (g *Glide) val(p f32.Point) float32 {
	if g.axis == Horizontal {
		return p.X
	}
	return p.Y
}

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		panic("invalid Axis")
	}
}

func (k TransformKind) String() string {
	switch k {
	case TransformFull:
		return "TransformFull"
	case TransformScale:
		return "TransformScale"
	case TransformRotate:
		return "TransformRotate"
	case TransformTranslate:
		return "TransformTranslate"
	default:
		panic("invalid TransformKind")
	}
}
