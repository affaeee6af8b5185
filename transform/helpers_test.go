// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aclements/go-plotstat/channel"
)

type row map[string]interface{}

func rows(rs ...row) []interface{} {
	out := make([]interface{}, len(rs))
	for i, r := range rs {
		out[i] = map[string]interface{}(r)
	}
	return out
}

func scalars(xs ...interface{}) []interface{} {
	return xs
}

// assertFloats checks got against want, treating NaNs as equal.
func assertFloats(t *testing.T, want, got []float64, msgAndArgs ...interface{}) {
	t.Helper()
	if !assert.Len(t, got, len(want), msgAndArgs...) {
		return
	}
	for i := range want {
		if math.IsNaN(want[i]) {
			assert.True(t, math.IsNaN(got[i]), "index %d: want NaN, got %v", i, got[i])
			continue
		}
		assert.InDelta(t, want[i], got[i], 1e-9, "index %d", i)
	}
}

// printed formats each value of a channel with fmt.Sprint.
func printed(ds *channel.Dataset, name string) []string {
	var out []string
	for _, v := range ds.Values(name) {
		out = append(out, fmt.Sprint(v))
	}
	return out
}
