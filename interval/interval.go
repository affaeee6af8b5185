// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interval implements the bucketing intervals used to derive
// range channels: fixed-width numeric intervals and calendar
// intervals over time.Time.
package interval

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrMissingFloor    = errors.New("invalid interval; missing floor method")
	ErrMissingOffset   = errors.New("invalid interval; missing offset method")
	ErrInvalidNumber   = errors.New("invalid interval; width must be positive")
	ErrUnknownInterval = errors.New("unknown interval")
)

// Floorer rounds a value down to the start of its bucket.
type Floorer interface {
	Floor(v float64) float64
}

// Offsetter returns the start of the bucket following the bucket
// starting at v.
type Offsetter interface {
	Offset(v float64) float64
}

// Ranger enumerates the bucket boundaries in [lo, hi).
type Ranger interface {
	Range(lo, hi float64) []float64
}

// Rounder rounds a value to the nearest bucket boundary.
type Rounder interface {
	Round(v float64) float64
}

// Interval is a numeric bucketing interval.
type Interval interface {
	Floorer
	Offsetter
	Ranger
}

// TimeInterval is a calendar bucketing interval.
type TimeInterval interface {
	// Floor returns the start of the bucket containing t.
	Floor(t time.Time) time.Time

	// Offset moves t by step buckets. step may be negative.
	Offset(t time.Time, step int) time.Time

	// Range returns the bucket boundaries b with lo <= b < hi.
	Range(lo, hi time.Time) []time.Time
}

type number struct {
	n float64
	// inv is 1/n when n is a fraction with an integral
	// reciprocal. Computing with inv avoids accumulating
	// floating-point error across buckets (0.1*3 != 0.3).
	inv float64
}

// Number returns a fixed-width interval of width n. n must be
// positive.
func Number(n float64) (Interval, error) {
	if !(n > 0) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNumber, n)
	}
	iv := number{n: n}
	if n < 1 {
		if r := 1 / n; r == math.Trunc(r) {
			iv.inv = r
		} else if r := math.Round(1 / n); math.Abs(r*n-1) < 1e-12 {
			iv.inv = r
		}
	}
	return iv, nil
}

func (iv number) Floor(v float64) float64 {
	if iv.inv > 0 {
		return math.Floor(v*iv.inv) / iv.inv
	}
	return math.Floor(v/iv.n) * iv.n
}

func (iv number) Offset(v float64) float64 {
	if iv.inv > 0 {
		return (math.Floor(v*iv.inv) + 1) / iv.inv
	}
	return iv.Floor(v) + iv.n
}

func (iv number) Range(lo, hi float64) []float64 {
	var out []float64
	if iv.inv > 0 {
		for i := math.Ceil(lo * iv.inv); i < hi*iv.inv; i++ {
			out = append(out, i/iv.inv)
		}
		return out
	}
	for i := math.Ceil(lo / iv.n); i < hi/iv.n; i++ {
		out = append(out, i*iv.n)
	}
	return out
}

func (iv number) Round(v float64) float64 {
	lo := iv.Floor(v)
	hi := iv.Offset(v)
	if hi-v <= v-lo {
		return hi
	}
	return lo
}

// custom adapts a user-supplied value that has Floor and Offset but
// possibly no Range.
type custom struct {
	Floorer
	Offsetter
}

func (c custom) Range(lo, hi float64) []float64 {
	var out []float64
	b := c.Floor(lo)
	if b < lo {
		b = c.Offset(b)
	}
	for ; b < hi; b = c.Offset(b) {
		out = append(out, b)
	}
	return out
}

// Spec is a resolved interval. Exactly one of Num and Time is set.
type Spec struct {
	Num  Interval
	Time TimeInterval
}

// Maybe resolves an interval specification. spec may be:
//
// - nil, in which case Maybe returns nil, nil.
//
// - a number, giving a fixed-width Number interval.
//
// - a string, parsed as a calendar interval with Parse.
//
// - a TimeInterval or *Spec, returned as is.
//
// - any value with Floor and Offset methods on float64 (and
// optionally Range). A value lacking either method is an error.
func Maybe(spec interface{}) (*Spec, error) {
	switch spec := spec.(type) {
	case nil:
		return nil, nil
	case *Spec:
		return spec, nil
	case string:
		ti, err := Parse(spec)
		if err != nil {
			return nil, err
		}
		return &Spec{Time: ti}, nil
	case TimeInterval:
		return &Spec{Time: spec}, nil
	case Interval:
		return &Spec{Num: spec}, nil
	case float64:
		return numberSpec(spec)
	case int:
		return numberSpec(float64(spec))
	case float32:
		return numberSpec(float64(spec))
	case int64:
		return numberSpec(float64(spec))
	}

	f, ok := spec.(Floorer)
	if !ok {
		return nil, fmt.Errorf("%w (%T)", ErrMissingFloor, spec)
	}
	o, ok := spec.(Offsetter)
	if !ok {
		return nil, fmt.Errorf("%w (%T)", ErrMissingOffset, spec)
	}
	return &Spec{Num: custom{f, o}}, nil
}

func numberSpec(n float64) (*Spec, error) {
	iv, err := Number(n)
	if err != nil {
		return nil, err
	}
	return &Spec{Num: iv}, nil
}

// Floor applies the interval to a number or time.Time. Numeric
// intervals treat times as milliseconds since the epoch and calendar
// intervals treat numbers the same way. Any other value is returned
// unchanged with ok false.
func (s *Spec) Floor(v interface{}) (r interface{}, ok bool) {
	return s.apply(v, false)
}

// Bucket returns the bounds of the bucket containing v.
func (s *Spec) Bucket(v interface{}) (lo, hi interface{}, ok bool) {
	lo, ok = s.apply(v, false)
	if !ok {
		return v, v, false
	}
	hi, _ = s.apply(lo, true)
	return lo, hi, true
}

func (s *Spec) apply(v interface{}, offset bool) (interface{}, bool) {
	switch v := v.(type) {
	case time.Time:
		if s.Time != nil {
			if offset {
				return s.Time.Offset(v, 1), true
			}
			return s.Time.Floor(v), true
		}
		ms := float64(v.UnixNano()) / 1e6
		if offset {
			return fromMillis(s.Num.Offset(ms), v.Location()), true
		}
		return fromMillis(s.Num.Floor(ms), v.Location()), true
	case nil:
		return nil, false
	}

	x, ok := toFloat(v)
	if !ok || math.IsNaN(x) {
		return v, false
	}
	if s.Num != nil {
		if offset {
			return s.Num.Offset(x), true
		}
		return s.Num.Floor(x), true
	}
	t := fromMillis(x, time.UTC)
	if offset {
		t = s.Time.Offset(t, 1)
	} else {
		t = s.Time.Floor(t)
	}
	return float64(t.UnixNano()) / 1e6, true
}

func fromMillis(ms float64, loc *time.Location) time.Time {
	sec := math.Floor(ms / 1000)
	nsec := (ms - sec*1000) * 1e6
	return time.Unix(int64(sec), int64(math.Round(nsec))).In(loc)
}

func toFloat(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	}
	return 0, false
}
