// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transform implements data transforms over channel
// Datasets: sorting, mapping and normalization, interval bucketing,
// shifting, jittering and regression.
//
// Transforms never modify their input. Each returns a new Dataset,
// recording derived values in synthetic slots and pointing the
// affected channels at them.
package transform

import (
	"errors"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownMapper    = errors.New("unknown mapper")
	ErrMismatchedLength = errors.New("mapper returned the wrong number of values")
	ErrMissingChannel   = errors.New("missing channel")
	ErrUnknownBasis     = errors.New("unknown basis")
	ErrUnknownReducer   = errors.New("unknown reducer")
	ErrUnknownAnchor    = errors.New("unknown window anchor")
	ErrInvalidShift     = errors.New("invalid shift")
	ErrInvalidJitter    = errors.New("invalid jitter")
)

// Warning is the logger used to report non-fatal problems with the
// data, such as values a transform had to pass through unchanged.
var Warning = logrus.New()

// millis converts ms milliseconds to the nearest Duration.
func millis(ms float64) time.Duration {
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}

// fromMillis returns the UTC time ms milliseconds after the epoch,
// keeping fractional milliseconds.
func fromMillis(ms float64) time.Time {
	sec := math.Floor(ms / 1000)
	return time.Unix(int64(sec), 0).Add(millis(ms - sec*1000)).UTC()
}

// toMillis is the inverse of fromMillis.
func toMillis(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e6
}
