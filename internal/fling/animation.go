// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"math"
	"time"
)

// Animation computes the distance covered by a decelerating fling.
// The velocity decays exponentially, modelling a point mass with a
// drag force proportional to its velocity.
type Animation struct {
	// Current offset in pixels.
	x float32
	// Initial time.
	t0 time.Time
	// Initial velocity in pixels per second.
	v0 float32
}

const (
	// decay is the fraction of velocity lost per second.
	decay = 4.0
	// stopVelocity is the velocity in pixels per second below
	// which the animation completes.
	stopVelocity = 1.0
)

// Start the animation at the given velocity, replacing any fling in
// progress.
func (f *Animation) Start(now time.Time, velocity float32) {
	if math.Abs(float64(velocity)) < stopVelocity {
		return
	}
	f.t0 = now
	f.v0 = velocity
	f.x = 0
}

// Active reports whether the animation is in progress.
func (f *Animation) Active() bool {
	return f.v0 != 0
}

// Tick returns the distance covered since the previous call. When
// the velocity drops below a threshold the animation stops and the
// remaining distance is included in the result.
func (f *Animation) Tick(now time.Time) int {
	if !f.Active() {
		return 0
	}
	dt := now.Sub(f.t0).Seconds()
	if dt < 0 {
		dt = 0
	}
	// x(t) = v0/k * (1 - e^(-k*t)) for the drag equation
	// x''(t) = -k*x'(t).
	e := math.Exp(-decay * dt)
	x := float32(float64(f.v0) / decay * (1 - e))
	v := f.v0 * float32(e)
	if math.Abs(float64(v)) < stopVelocity {
		x = f.v0 / decay
		f.v0 = 0
	}
	dist := int(math.Round(float64(x - f.x)))
	f.x += float32(dist)
	return dist
}
