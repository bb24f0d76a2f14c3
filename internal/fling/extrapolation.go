// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Extrapolation computes a 1-dimensional velocity estimate
// for a set of timestamped points using the least squares
// fit of a 2nd order polynomial.
type Extrapolation struct {
	// Index into points.
	idx int
	// Circular buffer of samples.
	samples []sample
	lastVal float32
	// Pre-allocated cache for samples.
	cache [historySize]sample
}

type sample struct {
	t time.Time
	v float32
}

type matrix struct {
	rows, cols int
	data       []float32
}

type coefficients [degree + 1]float32

// Estimate is the result of an extrapolation: the velocity implied
// by the samples and the distance a fling at that velocity would
// travel.
type Estimate struct {
	Velocity float32
	Distance float32
}

const (
	degree       = 2
	historySize  = 20
	maxAge       = 100 * time.Millisecond
	maxSampleGap = 40 * time.Millisecond
)

// SampleDelta adds a relative sample to the estimation.
func (e *Extrapolation) SampleDelta(t time.Time, delta float32) {
	val := delta + e.lastVal
	e.Sample(t, val)
}

// Sample adds an absolute sample to the estimation.
func (e *Extrapolation) Sample(t time.Time, val float32) {
	e.lastVal = val
	if e.samples == nil {
		e.samples = e.cache[:0]
	}
	s := sample{t: t, v: val}
	if e.idx == len(e.samples) && e.idx < cap(e.samples) {
		e.samples = append(e.samples, s)
	} else {
		e.samples[e.idx] = s
	}
	e.idx++
	if e.idx == cap(e.samples) {
		e.idx = 0
	}
}

// Estimate the velocity and distance implied by the samples, or the
// zero Estimate if the fit failed.
func (e *Extrapolation) Estimate() Estimate {
	if len(e.samples) < degree+1 {
		return Estimate{}
	}
	values := make([]float32, 0, len(e.samples))
	times := make([]float32, 0, len(e.samples))
	first := e.get(0)
	t := first.t
	// Walk backwards collecting samples.
	for i := 0; i < len(e.samples); i++ {
		p := e.get(-i)
		age := first.t.Sub(p.t)
		if age >= maxAge || t.Sub(p.t) >= maxSampleGap {
			// If the samples are too old or
			// too much time passed between samples
			// assume they're not part of the fling.
			break
		}
		t = p.t
		values = append(values, first.v-p.v)
		times = append(times, float32((-age).Seconds()))
	}
	coef, ok := polyFit(times, values)
	if !ok {
		return Estimate{}
	}
	dist := values[len(values)-1] - values[0]
	return Estimate{
		Velocity: coef[1],
		Distance: dist,
	}
}

func (e *Extrapolation) get(i int) sample {
	idx := (e.idx + i - 1 + len(e.samples)) % len(e.samples)
	return e.samples[idx]
}

// fit computes the least squares polynomial fit for the set of points in X,
// Y. If the fitting fails because of contradicting or insufficient data,
// fit returns false.
func polyFit(X, Y []float32) (coefficients, bool) {
	if len(X) != len(Y) {
		panic("X and Y lengths differ")
	}
	if len(X) <= degree {
		// Not enough points to fit a curve.
		return coefficients{}, false
	}

	// Use a method similar to Android's VelocityTracker.cpp:
	// the LSQ2 method which uses a QR decomposition
	// for numerical stability.

	// Design matrix
	m := newMatrix(degree+1, len(X))
	for i, x := range X {
		m.set(0, i, 1)
		for j := 1; j < m.rows; j++ {
			m.set(j, i, m.get(j-1, i)*x)
		}
	}

	// Design matrix decomposition
	q, rT, ok := decomposeQR(m)
	if !ok {
		return coefficients{}, false
	}

	// Solve R*B = Qt*Y for B, which is the
	// coefficients of the polynomial fit.

	// Qt*Y
	c := make([]float32, q.rows)
	for i := 0; i < q.rows; i++ {
		c[i] = 0
		for j := 0; j < q.cols; j++ {
			c[i] += q.get(i, j) * Y[j]
		}
	}

	// Backsubstitution solving R*B = C.
	var B coefficients
	for i := rT.rows - 1; i >= 0; i-- {
		B[i] = c[i]
		for j := rT.rows - 1; j > i; j-- {
			B[i] -= B[j] * rT.get(i, j)
		}
		B[i] /= rT.get(i, i)
	}
	return B, true
}

// decomposeQR computes and returns Q, Rt where Q*transpose(Rt) = A, if
// possible. R is guaranteed to be upper triangular and only the square
// part of Rt is returned.
func decomposeQR(A *matrix) (*matrix, *matrix, bool) {
	// Gram-Schmidt QR decompose where Q*R = A,
	// Q is orthonormal, R is upper triangular.
	Q := newMatrix(A.rows, A.cols)  // Column-major.
	Rt := newMatrix(A.rows, A.rows) // R transposed, row-major.
	for i := 0; i < Q.rows; i++ {
		// copy A column.
		for j := 0; j < Q.cols; j++ {
			Q.set(i, j, A.get(i, j))
		}
		// Subtract projections. Note that int the projection
		//
		// proju a = <u, a>/<u, u> u
		//
		// the normalized column e replaces u, where <e, e> = 1:
		//
		// proje a = <e, a> e
		for j := 0; j < i; j++ {
			d := Q.dot(i, j)
			for k := 0; k < Q.cols; k++ {
				Q.set(i, k, Q.get(i, k)-d*Q.get(j, k))
			}
		}
		// Normalize Q columns.
		n := Q.norm(i)
		if n < 0.000001 {
			// Degenerate data, no solution.
			return nil, nil, false
		}
		invNorm := 1 / n
		for j := 0; j < Q.cols; j++ {
			Q.set(i, j, Q.get(i, j)*invNorm)
		}
		// Update Rt.
		for j := i; j < Rt.cols; j++ {
			Rt.set(i, j, Q.dot(i, j, A))
		}
	}
	return Q, Rt, true
}

func norm(X []float32) float32 {
	var n float32
	for _, x := range X {
		n += x * x
	}
	return float32(math.Sqrt(float64(n)))
}

func newMatrix(rows, cols int) *matrix {
	return &matrix{
		rows: rows,
		cols: cols,
		data: make([]float32, rows*cols),
	}
}

func (m *matrix) set(row, col int, v float32) {
	if row < 0 || row >= m.rows {
		panic("row out of range")
	}
	if col < 0 || col >= m.cols {
		panic("col out of range")
	}
	m.data[row*m.cols+col] = v
}

func (m *matrix) get(row, col int) float32 {
	if row < 0 || row >= m.rows {
		panic("row out of range")
	}
	if col < 0 || col >= m.cols {
		panic("col out of range")
	}
	return m.data[row*m.cols+col]
}

// dot returns the dot product of the i'th and j'th rows. If m2 is
// supplied, dot uses the j'th row of m2.
func (m *matrix) dot(i, j int, m2 ...*matrix) float32 {
	other := m
	if len(m2) > 0 {
		other = m2[0]
	}
	var d float32
	for k := 0; k < m.cols; k++ {
		d += m.get(i, k) * other.get(j, k)
	}
	return d
}

// norm returns the euclidian norm of the i'th row.
func (m *matrix) norm(i int) float32 {
	return norm(m.data[i*m.cols : (i+1)*m.cols])
}

func (m *matrix) transpose() *matrix {
	t := newMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.set(j, i, m.get(i, j))
		}
	}
	return t
}

func (m *matrix) mul(m2 *matrix) *matrix {
	if m.rows != m2.cols {
		panic("mismatched matrices")
	}
	mm := newMatrix(m.rows, m2.cols)
	for i := 0; i < mm.rows; i++ {
		for j := 0; j < mm.cols; j++ {
			var v float32
			for k := 0; k < m.rows; k++ {
				v += m.get(k, j) * m2.get(i, k)
			}
			mm.set(i, j, v)
		}
	}
	return mm
}

func (m *matrix) approxEqual(m2 *matrix) bool {
	if m.rows != m2.rows || m.cols != m2.cols {
		return false
	}
	const epsilon = 0.00001
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			d := m2.get(row, col) - m.get(row, col)
			if d < -epsilon || d > epsilon {
				return false
			}
		}
	}
	return true
}

func (c coefficients) approxEqual(c2 coefficients) bool {
	const epsilon = 0.00001
	for i, v := range c {
		d := c2[i] - v
		if d < -epsilon || d > epsilon {
			return false
		}
	}
	return true
}

func (m *matrix) String() string {
	var b strings.Builder
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			v := m.get(i, j)
			b.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
			b.WriteString(", ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (c coefficients) String() string {
	var b strings.Builder
	for _, v := range c {
		b.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
		b.WriteString(", ")
	}
	return b.String()
}

func (e Estimate) String() string {
	return "Estimate{Velocity: " + strconv.FormatFloat(float64(e.Velocity), 'g', -1, 32) +
		", Distance: " + strconv.FormatFloat(float64(e.Distance), 'g', -1, 32) + "}"
}
