// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package confidence

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// Bound is the confidence band around a fitted curve at X.
type Bound struct {
	X, Left, Right float64
}

// Band returns the confidence band at the given two-tailed
// confidence level (for example 0.95) for predict fitted to the
// samples (xs[i], ys[i]).
//
// The half-width at x is t·sy·sqrt(1/n + (x-mean(xs))²/Sxx), where sy
// is the residual standard error and t is the Student's t critical
// value with n-2 degrees of freedom. Fewer than three samples give a
// NaN band.
func Band(xs, ys []float64, predict func(x float64) float64, level float64) func(x float64) Bound {
	if len(xs) != len(ys) {
		panic("confidence: xs and ys differ in length")
	}
	n := float64(len(xs))
	var xstats stats.StreamStats
	for _, x := range xs {
		xstats.Add(x)
	}
	mx := xstats.Mean()
	var a, b float64
	for i, x := range xs {
		a += (x - mx) * (x - mx)
		r := ys[i] - predict(x)
		b += r * r
	}
	sy := math.Sqrt(b / (n - 2))
	t := InverseT(1-level, n-2)

	return func(x float64) Bound {
		y := predict(x)
		se := sy * math.Sqrt(1/n+(x-mx)*(x-mx)/a)
		return Bound{X: x, Left: y - t*se, Right: y + t*se}
	}
}

// BandOf is like Band but extracts samples from data with the x and y
// accessors, skipping samples where either is not finite.
func BandOf(data []interface{}, x, y func(d interface{}, i int) float64, predict func(float64) float64, level float64) func(x float64) Bound {
	var xs, ys []float64
	for i, d := range data {
		xv, yv := x(d, i), y(d, i)
		if isFinite(xv) && isFinite(yv) {
			xs = append(xs, xv)
			ys = append(ys, yv)
		}
	}
	return Band(xs, ys, predict, level)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
