// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regression

import "math"

// Exponential fits y = A·e^(B·x). Points with y <= 0 are ignored.
//
// The fit minimizes the y-weighted squared error of log(y), which
// avoids the bias of fitting log(y) unweighted.
type Exponential struct {
	config
}

func NewExponential() *Exponential {
	return &Exponential{newConfig()}
}

func (r *Exponential) WithX(x Accessor) *Exponential { r.setX(x); return r }
func (r *Exponential) WithY(y Accessor) *Exponential { r.setY(y); return r }
func (r *Exponential) WithDomain(lo, hi float64) *Exponential {
	r.setDomain(lo, hi)
	return r
}

func (r *Exponential) Regress(data []interface{}) Fitted { return r.Fit(data) }

func (r *Exponential) Fit(data []interface{}) *Result {
	var n, Y, XY, X2Y, YL, XYL float64
	ext := newExtent()
	visitPoints(data, r.x, r.y, func(dx, dy float64) {
		if !positiveY(dx, dy) {
			return
		}
		ly := math.Log(dy)
		xy := dx * dy
		n++
		Y += (dy - Y) / n
		XY += (xy - XY) / n
		X2Y += (dx*xy - X2Y) / n
		YL += (dy*ly - YL) / n
		XYL += (xy*ly - XYL) / n
		ext.add(dx)
	})

	a, b := OLS(XY/Y, YL/Y, XYL/Y, X2Y/Y)
	a = math.Exp(a)
	predict := func(x float64) float64 { return a * math.Exp(b*x) }
	res := &Result{
		Domain:       r.domainOr(ext),
		A:            a,
		B:            b,
		Coefficients: []float64{a, b},
		RSquared:     determination(data, r.x, r.y, positiveY, Y, predict),
		predict:      predict,
	}
	if n > 0 || r.domain != nil {
		res.Points = interpose(res.Domain[0], res.Domain[1], predict)
	}
	return res
}
