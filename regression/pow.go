// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regression

import "math"

// Power fits y = A·x^B by least squares on log(x) and log(y). Points
// with x <= 0 or y <= 0 are ignored.
type Power struct {
	config
}

func NewPower() *Power {
	return &Power{newConfig()}
}

func (r *Power) WithX(x Accessor) *Power { r.setX(x); return r }
func (r *Power) WithY(y Accessor) *Power { r.setY(y); return r }
func (r *Power) WithDomain(lo, hi float64) *Power { r.setDomain(lo, hi); return r }

func (r *Power) Regress(data []interface{}) Fitted { return r.Fit(data) }

func (r *Power) Fit(data []interface{}) *Result {
	var n, X, Y, XY, X2, YS float64
	ext := newExtent()
	visitPoints(data, r.x, r.y, func(dx, dy float64) {
		if !positiveXY(dx, dy) {
			return
		}
		lx, ly := math.Log(dx), math.Log(dy)
		n++
		X += (lx - X) / n
		Y += (ly - Y) / n
		XY += (lx*ly - XY) / n
		X2 += (lx*lx - X2) / n
		YS += (dy - YS) / n
		ext.add(dx)
	})

	a, b := OLS(X, Y, XY, X2)
	a = math.Exp(a)
	predict := func(x float64) float64 { return a * math.Pow(x, b) }
	res := &Result{
		Domain:       r.domainOr(ext),
		A:            a,
		B:            b,
		Coefficients: []float64{a, b},
		RSquared:     determination(data, r.x, r.y, positiveXY, YS, predict),
		predict:      predict,
	}
	if n > 0 || r.domain != nil {
		res.Points = interpose(res.Domain[0], res.Domain[1], predict)
	}
	return res
}
