// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package confidence

import "math"

// InverseT returns t such that P(|T| > t) = p for Student's t
// distribution with df degrees of freedom, using Hill's algorithm 396
// (CACM 13(10), 1970). It returns NaN if df < 1 or p is outside
// (0, 1].
func InverseT(p, df float64) float64 {
	n := df
	if !(n >= 1) || !(0 < p && p <= 1) {
		return math.NaN()
	}
	switch n {
	case 1:
		p *= math.Pi / 2
		return math.Cos(p) / math.Sin(p)
	case 2:
		return math.Sqrt(2/(p*(2-p)) - 2)
	}

	a := 1 / (n - 0.5)
	b := 48 / (a * a)
	c := ((20700*a/b-98)*a-16)*a + 96.36
	d := ((94.5/(b+c)-3)/b + 1) * math.Sqrt(a*math.Pi/2) * n
	x := d * p
	y := math.Pow(x, 2/n)
	if y > 0.05+a {
		// Asymptotic inverse expansion about the normal.
		var ok bool
		x, ok = Normdev(0.5 * p)
		if !ok {
			panic("confidence: normal deviate of invalid probability")
		}
		y = x * x
		if n < 5 {
			c += 0.3 * (n - 4.5) * (x + 0.6)
		}
		c = (((0.05*d*x-5)*x-7)*x-2)*x + b + c
		y = (((((0.4*y+6.3)*y+36)*y+94.5)/c-y-3)/b + 1) * x
		y = a * y * y
		if y > 0.002 {
			y = math.Exp(y) - 1
		} else {
			y = 0.5*y*y + y
		}
	} else {
		y = ((1/(((n+6)/(n*y)-0.089*d-0.822)*(n+2)*3)+0.5/(n+4))*y-1)*(n+1)/(n+2) + 1/y
	}
	return math.Sqrt(n * y)
}
