// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package random provides the seedable random sources used by the
// shuffle and jitter transforms.
package random

import (
	"math"
	"math/rand"
)

// Source produces uniformly distributed values in [0, 1).
// *rand.Rand satisfies Source.
type Source interface {
	Float64() float64
}

// Default is a Source backed by the math/rand top-level functions.
var Default Source = defaultSource{}

type defaultSource struct{}

func (defaultSource) Float64() float64 { return rand.Float64() }

const (
	lcgMul = 0x19660D
	lcgInc = 0x3C6EF35F
	lcgEps = 1.0 / 0x100000000
)

// LCG is a linear congruential generator compatible with d3's
// randomLcg: the same seed yields the same sequence.
type LCG struct {
	state uint32
}

// NewLCG returns an LCG seeded with seed. A seed in [0, 1) is scaled
// to the full 32-bit state; any other seed uses the integer part of
// its absolute value.
func NewLCG(seed float64) *LCG {
	var s float64
	if 0 <= seed && seed < 1 {
		s = seed / lcgEps
	} else {
		s = math.Abs(seed)
	}
	// Truncate and wrap to 32 bits.
	s = math.Mod(math.Trunc(s), 0x100000000)
	if math.IsNaN(s) {
		s = 0
	}
	return &LCG{state: uint32(int64(s))}
}

// Float64 returns the next value in [0, 1).
func (g *LCG) Float64() float64 {
	g.state = lcgMul*g.state + lcgInc
	return lcgEps * float64(g.state)
}

// Uniform returns a generator of values uniformly distributed in
// [lo, hi).
func Uniform(src Source, lo, hi float64) func() float64 {
	return func() float64 {
		return lo + (hi-lo)*src.Float64()
	}
}

// Normal returns a generator of normally distributed values with mean
// mu and standard deviation sigma, using the Marsaglia polar method.
func Normal(src Source, mu, sigma float64) func() float64 {
	var spare float64
	haveSpare := false
	return func() float64 {
		var y float64
		if haveSpare {
			y, haveSpare = spare, false
			return mu + sigma*y
		}
		var x, r float64
		for {
			x = src.Float64()*2 - 1
			y = src.Float64()*2 - 1
			r = x*x + y*y
			if r != 0 && r <= 1 {
				break
			}
		}
		f := math.Sqrt(-2 * math.Log(r) / r)
		spare, haveSpare = x*f, true
		return mu + sigma*y*f
	}
}

// Shuffle permutes index in place with the Fisher–Yates algorithm
// driven by src.
func Shuffle(src Source, index []int) {
	for m := len(index); m > 0; {
		i := int(src.Float64() * float64(m))
		m--
		index[m], index[i] = index[i], index[m]
	}
}
