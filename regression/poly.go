// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regression

import (
	"math"

	"github.com/aclements/go-moremath/fit"
)

// Polynomial fits y = c₀ + c₁x + ... + cₖxᵏ by least squares.
type Polynomial struct {
	config
	order int
}

// NewPolynomial returns a cubic model.
func NewPolynomial() *Polynomial {
	return &Polynomial{newConfig(), 3}
}

// NewQuadratic returns a polynomial model of order 2.
func NewQuadratic() *Polynomial {
	return NewPolynomial().WithOrder(2)
}

func (r *Polynomial) WithX(x Accessor) *Polynomial { r.setX(x); return r }
func (r *Polynomial) WithY(y Accessor) *Polynomial { r.setY(y); return r }
func (r *Polynomial) WithDomain(lo, hi float64) *Polynomial {
	r.setDomain(lo, hi)
	return r
}

// WithOrder sets the degree of the polynomial.
func (r *Polynomial) WithOrder(k int) *Polynomial {
	if k < 0 {
		panic("regression: polynomial order must be non-negative")
	}
	r.order = k
	return r
}

// Order returns the degree of the polynomial.
func (r *Polynomial) Order() int { return r.order }

func (r *Polynomial) Regress(data []interface{}) Fitted { return r.Fit(data) }

// Fit fits the model to data. If there are too few points to
// determine a polynomial of the configured order, it fits the highest
// order the points determine.
func (r *Polynomial) Fit(data []interface{}) *Result {
	var xs, ys []float64
	var ux, uy float64
	ext := newExtent()
	visitPoints(data, r.x, r.y, func(dx, dy float64) {
		xs = append(xs, dx)
		ys = append(ys, dy)
		n := float64(len(xs))
		ux += (dx - ux) / n
		uy += (dy - uy) / n
		ext.add(dx)
	})

	res := &Result{Domain: r.domainOr(ext)}
	if len(xs) == 0 {
		nan := math.NaN()
		res.A, res.B, res.RSquared = nan, nan, nan
		res.predict = func(float64) float64 { return nan }
		if r.domain != nil {
			res.Points = interpose(res.Domain[0], res.Domain[1], res.predict)
		}
		return res
	}

	// The normal equations are singular unless there are more
	// distinct x values than the order.
	distinct := make(map[float64]bool)
	for _, x := range xs {
		distinct[x] = true
	}
	order := r.order
	if order > len(distinct)-1 {
		order = len(distinct) - 1
	}

	// Fit in x - mean(x) to keep the normal equations well
	// conditioned, then expand back to powers of x.
	cx := make([]float64, len(xs))
	for i, x := range xs {
		cx[i] = x - ux
	}
	terms := make([]func(xs, termOut []float64), order+1)
	for k := range terms {
		pow := float64(k)
		terms[k] = func(xs, termOut []float64) {
			for i, x := range xs {
				termOut[i] = math.Pow(x, pow)
			}
		}
	}
	coef := uncenter(fit.LinearLeastSquares(cx, ys, nil, terms...), ux)
	predict := func(x float64) float64 {
		// Horner's rule.
		y := 0.0
		for i := len(coef) - 1; i >= 0; i-- {
			y = y*x + coef[i]
		}
		return y
	}

	res.Coefficients = coef
	res.A = coef[0]
	if len(coef) > 1 {
		res.B = coef[1]
	}
	res.RSquared = Determination(data, r.x, r.y, uy, predict)
	res.predict = predict
	res.Points = interpose(res.Domain[0], res.Domain[1], predict)
	return res
}

// uncenter converts the coefficients of a polynomial in (x - u) to
// coefficients of a polynomial in x.
func uncenter(c []float64, u float64) []float64 {
	out := make([]float64, len(c))
	for j, cj := range c {
		// (x - u)^j = Σ_m C(j, m) x^m (-u)^(j-m)
		binom := 1.0
		for m := 0; m <= j; m++ {
			out[m] += cj * binom * math.Pow(-u, float64(j-m))
			binom = binom * float64(j-m) / float64(m+1)
		}
	}
	return out
}
