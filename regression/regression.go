// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package regression fits regression models to data rows.
//
// Each model is a builder: construct it with a New* function,
// configure it with the With* methods, and call Fit. Every predictive
// model returns a *Result; LOESS returns a *Curve, which has no
// closed-form predictor.
package regression

import (
	"errors"
	"math"
)

var ErrUnknownType = errors.New("unknown regression type")

// Point is a sample of a fitted curve.
type Point struct {
	X, Y float64
}

// An Accessor extracts one coordinate from the i'th data row.
// Returning NaN or ±Inf excludes the row from the fit.
type Accessor func(d interface{}, i int) float64

// DefaultX returns the first coordinate of a Point, *Point,
// [2]float64 or []float64 row, and NaN for anything else.
func DefaultX(d interface{}, i int) float64 {
	switch d := d.(type) {
	case Point:
		return d.X
	case *Point:
		return d.X
	case [2]float64:
		return d[0]
	case []float64:
		if len(d) > 0 {
			return d[0]
		}
	}
	return math.NaN()
}

// DefaultY is the second-coordinate counterpart to DefaultX.
func DefaultY(d interface{}, i int) float64 {
	switch d := d.(type) {
	case Point:
		return d.Y
	case *Point:
		return d.Y
	case [2]float64:
		return d[1]
	case []float64:
		if len(d) > 1 {
			return d[1]
		}
	}
	return math.NaN()
}

// Fitted is the result of fitting any model.
type Fitted interface {
	// Samples returns points along the fitted curve in increasing
	// x order.
	Samples() []Point
}

// Predictor is implemented by fitted models with a closed form.
type Predictor interface {
	Predict(x float64) float64
}

// Model is a configured regression of any type.
type Model interface {
	Regress(data []interface{}) Fitted
	X() Accessor
	Y() Accessor
}

// Result is a fitted predictive model.
type Result struct {
	// Points samples the fitted curve over Domain. For linear
	// models it is just the two endpoints; other models are
	// sampled adaptively until the curve is smooth.
	Points []Point

	// Domain is the x extent of the fit, either as configured or
	// as observed in the data.
	Domain [2]float64

	// A and B are the model parameters: intercept and slope for
	// linear, polynomial and logarithmic models; y = A·e^(B·x) for
	// exponential and y = A·x^B for power models.
	A, B float64

	// Coefficients are the polynomial coefficients in increasing
	// order of power. For other models it is {A, B}.
	Coefficients []float64

	// RSquared is the coefficient of determination.
	RSquared float64

	predict func(x float64) float64
}

// Predict evaluates the fitted model at x.
func (r *Result) Predict(x float64) float64 {
	return r.predict(x)
}

func (r *Result) Samples() []Point {
	return r.Points
}

// config holds the settings common to all models.
type config struct {
	x, y   Accessor
	domain *[2]float64
}

func newConfig() config {
	return config{x: DefaultX, y: DefaultY}
}

// X returns the x accessor.
func (c *config) X() Accessor { return c.x }

// Y returns the y accessor.
func (c *config) Y() Accessor { return c.y }

// Domain returns the configured domain, if any.
func (c *config) Domain() (lo, hi float64, ok bool) {
	if c.domain == nil {
		return 0, 0, false
	}
	return c.domain[0], c.domain[1], true
}

func (c *config) setX(x Accessor) {
	if x == nil {
		x = DefaultX
	}
	c.x = x
}

func (c *config) setY(y Accessor) {
	if y == nil {
		y = DefaultY
	}
	c.y = y
}

func (c *config) setDomain(lo, hi float64) {
	c.domain = &[2]float64{lo, hi}
}

// extent tracks the x range observed while visiting points.
type extent struct {
	lo, hi float64
}

func newExtent() extent {
	return extent{math.Inf(1), math.Inf(-1)}
}

func (e *extent) add(x float64) {
	if x < e.lo {
		e.lo = x
	}
	if x > e.hi {
		e.hi = x
	}
}

// domainOr returns the configured domain, or e if none is set.
func (c *config) domainOr(e extent) [2]float64 {
	if c.domain != nil {
		return *c.domain
	}
	return [2]float64{e.lo, e.hi}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// visitPoints calls fn for each row whose x and y are both finite.
func visitPoints(data []interface{}, x, y Accessor, fn func(dx, dy float64)) {
	for i, d := range data {
		dx, dy := x(d, i), y(d, i)
		if isFinite(dx) && isFinite(dy) {
			fn(dx, dy)
		}
	}
}

// OLS returns the ordinary least squares line through data with the
// given means of x, y, x·y and x². The slope is 0 when x has no
// variance.
func OLS(meanX, meanY, meanXY, meanX2 float64) (intercept, slope float64) {
	delta := meanX2 - meanX*meanX
	if math.Abs(delta) >= 1e-24 {
		slope = (meanXY - meanX*meanY) / delta
	}
	intercept = meanY - slope*meanX
	return
}

// Determination returns the coefficient of determination, 1 -
// SSE/SST, of predict over the finite points of data, where meanY is
// the mean of y.
func Determination(data []interface{}, x, y Accessor, meanY float64, predict func(float64) float64) float64 {
	return determination(data, x, y, nil, meanY, predict)
}

// determination is Determination restricted to the points accepted by
// keep, which must be the points the fit itself used. A nil keep
// accepts every finite point.
func determination(data []interface{}, x, y Accessor, keep func(dx, dy float64) bool, meanY float64, predict func(float64) float64) float64 {
	var sse, sst float64
	visitPoints(data, x, y, func(dx, dy float64) {
		if keep != nil && !keep(dx, dy) {
			return
		}
		r := dy - predict(dx)
		sse += r * r
		d := dy - meanY
		sst += d * d
	})
	return 1 - sse/sst
}

func positiveX(dx, dy float64) bool  { return dx > 0 }
func positiveY(dx, dy float64) bool  { return dy > 0 }
func positiveXY(dx, dy float64) bool { return dx > 0 && dy > 0 }

// interpose samples predict over [lo, hi], repeatedly bisecting any
// segment whose midpoint deviates in angle from the chord by more
// than a precision scaled to the width of the domain.
func interpose(lo, hi float64, predict func(float64) float64) []Point {
	px := func(x float64) Point { return Point{x, predict(x)} }
	if !(hi > lo) {
		if lo == hi {
			return []Point{px(lo), px(hi)}
		}
		return nil
	}

	const (
		maxIter   = 1e4
		maxPoints = 1 << 16
	)
	l := math.Trunc(math.Log10(hi-lo) + 1)
	precision := math.Pow(10, -l/2-1)
	angle := func(p0, p1 Point) float64 {
		return math.Atan2(p1.Y-p0.Y, p1.X-p0.X) * 180 / math.Pi
	}

	points := []Point{px(lo), px(hi)}
	for iter := 0; iter < maxIter && len(points) < maxPoints; iter++ {
		found := false
		next := make([]Point, 0, 2*len(points))
		for i := 0; i < len(points)-1; i++ {
			p0, p1 := points[i], points[i+1]
			next = append(next, p0)
			m := Point{(p0.X + p1.X) / 2, (p0.Y + p1.Y) / 2}
			mp := px(m.X)
			if math.Abs(angle(p0, m)-angle(p0, mp)) > precision {
				next = append(next, mp)
				found = true
			}
		}
		next = append(next, points[len(points)-1])
		points = next
		if !found {
			break
		}
	}
	return points
}
