// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"fmt"
	"math"
	"strings"

	"github.com/JaderDias/movingmedian"
	"github.com/aclements/go-moremath/stats"

	"github.com/aclements/go-plotstat/channel"
	"github.com/aclements/go-plotstat/internal/quantile"
)

// WindowOptions configures a moving window.
type WindowOptions struct {
	// K is the window size. It must be at least 1.
	K int

	// Anchor is "start", "middle" (the default) or "end": which
	// element of the window the result is stored at.
	Anchor string

	// Reduce names the window reducer: "mean" (the default),
	// "median", "min", "max", "sum", "deviation", "variance",
	// "difference", "ratio", "first" or "last".
	Reduce string

	// Strict makes windows that extend past either end of the
	// group, or that contain undefined values, reduce to NaN.
	// Otherwise such windows are truncated and undefined values
	// skipped.
	Strict bool
}

type reducer func(xs []float64) float64

func streamStats(xs []float64) *stats.StreamStats {
	var s stats.StreamStats
	for _, x := range xs {
		s.Add(x)
	}
	return &s
}

var reducers = map[string]reducer{
	"mean":      func(xs []float64) float64 { return streamStats(xs).Mean() },
	"sum":       func(xs []float64) float64 { return streamStats(xs).Total },
	"min":       func(xs []float64) float64 { return streamStats(xs).Min },
	"max":       func(xs []float64) float64 { return streamStats(xs).Max },
	"deviation": func(xs []float64) float64 { return streamStats(xs).StdDev() },
	"variance":  func(xs []float64) float64 { return streamStats(xs).Variance() },
	"median":    quantile.Median,
	"first":     func(xs []float64) float64 { return xs[0] },
	"last":      func(xs []float64) float64 { return xs[len(xs)-1] },
	"difference": func(xs []float64) float64 {
		return xs[len(xs)-1] - xs[0]
	},
	"ratio": func(xs []float64) float64 {
		return xs[len(xs)-1] / xs[0]
	},
}

type window struct {
	k, shift int
	name     string
	reduce   reducer
	strict   bool
}

// Window returns a Mapper that reduces a moving window over each
// group.
func Window(opts WindowOptions) (Mapper, error) {
	if opts.K < 1 {
		return nil, fmt.Errorf("invalid window size %d", opts.K)
	}
	w := &window{k: opts.K, strict: opts.Strict}
	switch strings.ToLower(opts.Anchor) {
	case "start":
		w.shift = 0
	case "", "middle":
		w.shift = (opts.K - 1) / 2
	case "end":
		w.shift = opts.K - 1
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownAnchor, opts.Anchor)
	}
	w.name = strings.ToLower(opts.Reduce)
	if w.name == "" {
		w.name = "mean"
	}
	var ok bool
	if w.reduce, ok = reducers[w.name]; !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownReducer, opts.Reduce)
	}
	return w, nil
}

func (w *window) MapIndex(I []int, S []interface{}, T []float64) error {
	n := len(I)
	vals := make([]float64, n)
	for j, i := range I {
		vals[j] = channel.Float(S[i])
		T[i] = math.NaN()
	}
	if w.strict && w.name == "median" {
		w.movingMedian(I, vals, T)
		return nil
	}

	buf := make([]float64, 0, w.k)
	for j, i := range I {
		lo, hi := j-w.shift, j-w.shift+w.k
		if w.strict && (lo < 0 || hi > n) {
			continue
		}
		if lo < 0 {
			lo = 0
		}
		if hi > n {
			hi = n
		}
		buf = buf[:0]
		for _, v := range vals[lo:hi] {
			if math.IsNaN(v) {
				if w.strict {
					buf = buf[:0]
					break
				}
				continue
			}
			buf = append(buf, v)
		}
		if len(buf) > 0 && (!w.strict || len(buf) == w.k) {
			T[i] = w.reduce(buf)
		}
	}
	return nil
}

// movingMedian computes strict window medians in a single streaming
// pass over the group.
func (w *window) movingMedian(I []int, vals, T []float64) {
	if w.k > len(vals) {
		return
	}
	mm := movingmedian.NewMovingMedian(w.k)
	nans := 0
	for j, v := range vals {
		if math.IsNaN(v) {
			nans++
			// The placeholder only affects windows that also
			// contain the NaN, which reduce to NaN anyway.
			v = 0
		}
		if old := j - w.k; old >= 0 && math.IsNaN(vals[old]) {
			nans--
		}
		mm.Push(v)
		if start := j - w.k + 1; start >= 0 && nans == 0 {
			T[I[start+w.shift]] = mm.Median()
		}
	}
}

// WindowX applies a moving window to the x channels (see MapX).
func WindowX(ds *channel.Dataset, opts WindowOptions) (*channel.Dataset, error) {
	m, err := Window(opts)
	if err != nil {
		return nil, err
	}
	return MapX(ds, m)
}

// WindowY applies a moving window to the y channels (see MapY).
func WindowY(ds *channel.Dataset, opts WindowOptions) (*channel.Dataset, error) {
	m, err := Window(opts)
	if err != nil {
		return nil, err
	}
	return MapY(ds, m)
}
