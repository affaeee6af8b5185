// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package quantile computes linearly interpolated sample quantiles.
package quantile

import (
	"math"

	"github.com/wangjohn/quickselect"
)

// Of returns the p-quantile (0 <= p <= 1) of the non-NaN values in
// xs, interpolating between adjacent order statistics. It returns NaN
// if there are no such values. xs is not modified.
func Of(xs []float64, p float64) float64 {
	if p < 0 || p > 1 {
		return math.NaN()
	}
	data := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			data = append(data, x)
		}
	}
	switch len(data) {
	case 0:
		return math.NaN()
	case 1:
		return data[0]
	}

	k := float64(len(data)-1) * p
	length := int(math.Ceil(k)) + 1
	quickselect.Float64QuickSelect(data, length)
	top, secondTop := math.Inf(-1), math.Inf(-1)
	for _, val := range data[:length] {
		if val > top {
			secondTop = top
			top = val
		} else if val > secondTop {
			secondTop = val
		}
	}
	rem := k - math.Floor(k)
	if rem == 0 {
		return top
	}
	return secondTop + (top-secondTop)*rem
}

// Median returns the median of the non-NaN values in xs.
func Median(xs []float64) float64 {
	return Of(xs, 0.5)
}
