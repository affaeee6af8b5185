// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quantile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOf(t *testing.T) {
	nan := math.NaN()
	for _, test := range []struct {
		xs   []float64
		p    float64
		want float64
	}{
		{[]float64{3, 1, 2}, 0.5, 2},
		{[]float64{4, 1, 3, 2}, 0.5, 2.5},
		{[]float64{4, 1, 3, 2}, 0, 1},
		{[]float64{4, 1, 3, 2}, 1, 4},
		{[]float64{4, 1, 3, 2}, 0.25, 1.75},
		{[]float64{2, 2}, 0.5, 2},
		{[]float64{5}, 0.9, 5},
		{[]float64{nan, 7, nan, 1}, 0.5, 4},
	} {
		xs := append([]float64(nil), test.xs...)
		assert.InDelta(t, test.want, Of(xs, test.p), 1e-12, "Of(%v, %v)", test.xs, test.p)
		for i := range xs {
			if !math.IsNaN(xs[i]) {
				assert.Equal(t, test.xs[i], xs[i], "input modified")
			}
		}
	}

	assert.True(t, math.IsNaN(Median(nil)))
	assert.True(t, math.IsNaN(Median([]float64{nan})))
	assert.True(t, math.IsNaN(Of([]float64{1}, 2)))
}
