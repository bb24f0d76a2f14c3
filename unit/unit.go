// SPDX-License-Identifier: Unlicense OR MIT

/*
Package unit implements device independent units.

Device independent pixel, or dp, is the unit for sizes independent of
the underlying display device.

Scaled pixels, or sp, is the unit for text sizes. An sp is like dp with
text scaling applied.

Device pixels, or px, have a size that vary between platforms and
displays. To maintain a constant visual size across platforms and
displays, always use dps or sps to define user interfaces.
*/
package unit

import "math"

// Metric converts device independent units to device pixels.
type Metric struct {
	// PxPerDp is the device-dependent size of one dp.
	PxPerDp float32
	// PxPerSp is the device-dependent size of one sp.
	PxPerSp float32
}

// Dp is a value in device independent pixels.
type Dp float32

// Sp is a value in scaled pixels.
type Sp float32

// Dp rounds v to the closest number of device pixels.
func (c Metric) Dp(v Dp) int {
	return int(math.Round(float64(c.PxPerDp) * float64(v)))
}

// Sp rounds v to the closest number of device pixels.
func (c Metric) Sp(v Sp) int {
	return int(math.Round(float64(c.PxPerSp) * float64(v)))
}

// DpToSp converts v to the corresponding Sp value.
func (c Metric) DpToSp(v Dp) Sp {
	return Sp(float32(v) * c.PxPerDp / c.PxPerSp)
}

// SpToDp converts v to the corresponding Dp value.
func (c Metric) SpToDp(v Sp) Dp {
	return Dp(float32(v) * c.PxPerSp / c.PxPerDp)
}
