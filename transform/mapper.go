// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aclements/go-plotstat/channel"
)

// A Mapper derives a value for each row of a group.
type Mapper interface {
	// MapIndex computes T[i] for each i in I from the source
	// values S. S and T are indexed by row; I lists the rows of one
	// group in order.
	MapIndex(I []int, S []interface{}, T []float64) error
}

// MapIndexFunc adapts a function to a Mapper.
type MapIndexFunc func(I []int, S []interface{}, T []float64) error

func (f MapIndexFunc) MapIndex(I []int, S []interface{}, T []float64) error {
	return f(I, S, T)
}

// MapFunc maps the source values of a whole group at once. It must
// return one value per source value.
type MapFunc func(S []interface{}) []float64

func (f MapFunc) MapIndex(I []int, S []interface{}, T []float64) error {
	sub := make([]interface{}, len(I))
	for j, i := range I {
		sub[j] = S[i]
	}
	out := f(sub)
	if len(out) != len(I) {
		return fmt.Errorf("%w: got %d, want %d", ErrMismatchedLength, len(out), len(I))
	}
	for j, i := range I {
		T[i] = out[j]
	}
	return nil
}

var (
	// Cumsum is the running sum of the group in order. A nil
	// value adds nothing; any other non-number makes the rest of
	// the sum NaN.
	Cumsum Mapper = MapIndexFunc(cumsum)

	// Rank is the 0-based standard competition rank of each
	// value within its group. Tied values share the lowest rank.
	// Undefined values rank NaN.
	Rank Mapper = MapIndexFunc(rank)

	// Quantile is the rank scaled to [0, 1] by the number of
	// defined values. A group with a single defined value yields
	// NaN.
	Quantile Mapper = MapIndexFunc(quantileRank)
)

func cumsum(I []int, S []interface{}, T []float64) error {
	total := 0.0
	for _, i := range I {
		if S[i] != nil {
			total += channel.Float(S[i])
		}
		T[i] = total
	}
	return nil
}

func rank(I []int, S []interface{}, T []float64) error {
	var defined []int
	for _, i := range I {
		if channel.Defined(S[i]) {
			defined = append(defined, i)
		} else {
			T[i] = math.NaN()
		}
	}
	sort.SliceStable(defined, func(a, b int) bool {
		return channel.Compare(S[defined[a]], S[defined[b]]) < 0
	})
	for j, i := range defined {
		if j > 0 && channel.Compare(S[defined[j-1]], S[i]) == 0 {
			T[i] = T[defined[j-1]]
		} else {
			T[i] = float64(j)
		}
	}
	return nil
}

func quantileRank(I []int, S []interface{}, T []float64) error {
	n := 0
	for _, i := range I {
		if channel.Defined(S[i]) {
			n++
		}
	}
	rank(I, S, T)
	for _, i := range I {
		T[i] /= float64(n - 1)
	}
	return nil
}

// MaybeMapper resolves a mapper specification: "cumsum", "rank" or
// "quantile" (case-insensitive), a Mapper, or a function of the form
// accepted by MapFunc or MapIndexFunc.
func MaybeMapper(spec interface{}) (Mapper, error) {
	switch spec := spec.(type) {
	case string:
		switch strings.ToLower(spec) {
		case "cumsum":
			return Cumsum, nil
		case "rank":
			return Rank, nil
		case "quantile":
			return Quantile, nil
		}
	case Mapper:
		return spec, nil
	case func(S []interface{}) []float64:
		return MapFunc(spec), nil
	case func(I []int, S []interface{}, T []float64) error:
		return MapIndexFunc(spec), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownMapper, spec)
}
