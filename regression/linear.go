// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regression

// Linear fits y = A + B·x by ordinary least squares.
type Linear struct {
	config
}

func NewLinear() *Linear {
	return &Linear{newConfig()}
}

func (r *Linear) WithX(x Accessor) *Linear { r.setX(x); return r }
func (r *Linear) WithY(y Accessor) *Linear { r.setY(y); return r }

// WithDomain fixes the x extent of the result instead of deriving it
// from the data.
func (r *Linear) WithDomain(lo, hi float64) *Linear { r.setDomain(lo, hi); return r }

func (r *Linear) Regress(data []interface{}) Fitted { return r.Fit(data) }

// Fit fits the model to data. The result's Points are the fitted line
// at the two ends of the domain.
func (r *Linear) Fit(data []interface{}) *Result {
	var n, X, Y, XY, X2 float64
	ext := newExtent()
	visitPoints(data, r.x, r.y, func(dx, dy float64) {
		n++
		X += (dx - X) / n
		Y += (dy - Y) / n
		XY += (dx*dy - XY) / n
		X2 += (dx*dx - X2) / n
		ext.add(dx)
	})

	intercept, slope := OLS(X, Y, XY, X2)
	predict := func(x float64) float64 { return slope*x + intercept }
	res := &Result{
		Domain:       r.domainOr(ext),
		A:            intercept,
		B:            slope,
		Coefficients: []float64{intercept, slope},
		RSquared:     Determination(data, r.x, r.y, Y, predict),
		predict:      predict,
	}
	if n > 0 || r.domain != nil {
		res.Points = []Point{
			{res.Domain[0], predict(res.Domain[0])},
			{res.Domain[1], predict(res.Domain[1])},
		}
	}
	return res
}
