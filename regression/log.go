// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regression

import "math"

// Logarithmic fits y = A + B·log_base(x). Points with x <= 0 are
// ignored.
type Logarithmic struct {
	config
	base float64
}

// NewLogarithmic returns a logarithmic model with base e.
func NewLogarithmic() *Logarithmic {
	return &Logarithmic{newConfig(), math.E}
}

func (r *Logarithmic) WithX(x Accessor) *Logarithmic { r.setX(x); return r }
func (r *Logarithmic) WithY(y Accessor) *Logarithmic { r.setY(y); return r }
func (r *Logarithmic) WithDomain(lo, hi float64) *Logarithmic {
	r.setDomain(lo, hi)
	return r
}

// WithBase sets the base of the logarithm. It panics if base is not
// positive or is 1.
func (r *Logarithmic) WithBase(base float64) *Logarithmic {
	if !(base > 0) || base == 1 {
		panic("regression: logarithm base must be positive and not 1")
	}
	r.base = base
	return r
}

// Base returns the base of the logarithm.
func (r *Logarithmic) Base() float64 { return r.base }

func (r *Logarithmic) Regress(data []interface{}) Fitted { return r.Fit(data) }

func (r *Logarithmic) Fit(data []interface{}) *Result {
	lb := math.Log(r.base)
	var n, X, Y, XY, X2 float64
	ext := newExtent()
	visitPoints(data, r.x, r.y, func(dx, dy float64) {
		if !positiveX(dx, dy) {
			return
		}
		lx := math.Log(dx) / lb
		n++
		X += (lx - X) / n
		Y += (dy - Y) / n
		XY += (lx*dy - XY) / n
		X2 += (lx*lx - X2) / n
		ext.add(dx)
	})

	intercept, slope := OLS(X, Y, XY, X2)
	predict := func(x float64) float64 { return slope*math.Log(x)/lb + intercept }
	res := &Result{
		Domain:       r.domainOr(ext),
		A:            intercept,
		B:            slope,
		Coefficients: []float64{intercept, slope},
		RSquared:     determination(data, r.x, r.y, positiveX, Y, predict),
		predict:      predict,
	}
	if n > 0 || r.domain != nil {
		res.Points = interpose(res.Domain[0], res.Domain[1], predict)
	}
	return res
}
