// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/aclements/go-plotstat/channel"
	"github.com/aclements/go-plotstat/internal/quantile"
)

// A BasisFunc computes the divisor for a group: each value v in the
// group is normalized to v / basis.
type BasisFunc func(I []int, S []interface{}) float64

func (f BasisFunc) MapIndex(I []int, S []interface{}, T []float64) error {
	b := f(I, S)
	for _, i := range I {
		if S[i] == nil {
			T[i] = math.NaN()
		} else {
			T[i] = channel.Float(S[i]) / b
		}
	}
	return nil
}

// definedFloats returns the numeric values of S at I, omitting nil
// and NaN.
func definedFloats(I []int, S []interface{}) []float64 {
	xs := make([]float64, 0, len(I))
	for _, i := range I {
		if x := channel.Float(S[i]); !math.IsNaN(x) {
			xs = append(xs, x)
		}
	}
	return xs
}

// aggregate returns a BasisFunc that applies f to the defined values
// of a group, or yields NaN for a group with none.
func aggregate(f func(xs []float64) float64) BasisFunc {
	return func(I []int, S []interface{}) float64 {
		xs := definedFloats(I, S)
		if len(xs) == 0 {
			return math.NaN()
		}
		return f(xs)
	}
}

var bases = map[string]Mapper{
	"first": BasisFunc(func(I []int, S []interface{}) float64 {
		for _, i := range I {
			if channel.Defined(S[i]) {
				return channel.Float(S[i])
			}
		}
		return math.NaN()
	}),
	"last": BasisFunc(func(I []int, S []interface{}) float64 {
		for j := len(I) - 1; j >= 0; j-- {
			if i := I[j]; channel.Defined(S[i]) {
				return channel.Float(S[i])
			}
		}
		return math.NaN()
	}),
	"min":    aggregate(floats.Min),
	"max":    aggregate(floats.Max),
	"sum":    aggregate(floats.Sum),
	"mean":   aggregate(func(xs []float64) float64 { return stat.Mean(xs, nil) }),
	"median": aggregate(quantile.Median),

	"deviation": MapIndexFunc(func(I []int, S []interface{}, T []float64) error {
		mean, sd := math.NaN(), math.NaN()
		if xs := definedFloats(I, S); len(xs) > 0 {
			mean, sd = stat.MeanStdDev(xs, nil)
		}
		for _, i := range I {
			switch {
			case S[i] == nil:
				T[i] = math.NaN()
			case sd == 0 || math.IsNaN(sd):
				T[i] = 0
			default:
				T[i] = (channel.Float(S[i]) - mean) / sd
			}
		}
		return nil
	}),

	"extent": MapIndexFunc(func(I []int, S []interface{}, T []float64) error {
		lo, hi := math.NaN(), math.NaN()
		if xs := definedFloats(I, S); len(xs) > 0 {
			lo, hi = floats.Min(xs), floats.Max(xs)
		}
		for _, i := range I {
			if S[i] == nil {
				T[i] = math.NaN()
			} else {
				T[i] = (channel.Float(S[i]) - lo) / (hi - lo)
			}
		}
		return nil
	}),
}

// MaybeBasis resolves a basis specification: nil (meaning "first"),
// one of the names first, last, min, max, mean, median, sum,
// deviation or extent, a BasisFunc, a function of the BasisFunc form,
// or any Mapper.
func MaybeBasis(spec interface{}) (Mapper, error) {
	switch spec := spec.(type) {
	case nil:
		return bases["first"], nil
	case string:
		if m, ok := bases[strings.ToLower(spec)]; ok {
			return m, nil
		}
	case func(I []int, S []interface{}) float64:
		return BasisFunc(spec), nil
	case Mapper:
		return spec, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownBasis, spec)
}

// NormalizeX divides the x channels (see MapX) of each group by the
// group's basis. basis is resolved by MaybeBasis.
func NormalizeX(ds *channel.Dataset, basis interface{}) (*channel.Dataset, error) {
	m, err := MaybeBasis(basis)
	if err != nil {
		return nil, err
	}
	return MapX(ds, m)
}

// NormalizeY is the y counterpart of NormalizeX.
func NormalizeY(ds *channel.Dataset, basis interface{}) (*channel.Dataset, error) {
	m, err := MaybeBasis(basis)
	if err != nil {
		return nil, err
	}
	return MapY(ds, m)
}

// NormalizeParallelX normalizes x separately for each value of y, as
// for the axes of a parallel coordinates plot. The result keeps the
// z channel of ds and is stably ordered by z so each series is
// contiguous.
func NormalizeParallelX(ds *channel.Dataset, basis interface{}) (*channel.Dataset, error) {
	return normalizeParallel(ds, basis, "y", NormalizeX)
}

// NormalizeParallelY normalizes y separately for each value of x.
func NormalizeParallelY(ds *channel.Dataset, basis interface{}) (*channel.Dataset, error) {
	return normalizeParallel(ds, basis, "x", NormalizeY)
}

func normalizeParallel(ds *channel.Dataset, basis interface{}, axis string, normalize func(*channel.Dataset, interface{}) (*channel.Dataset, error)) (*channel.Dataset, error) {
	z := zAccessor(ds)
	byAxis := ds.Clone()
	byAxis.Channels["z"] = ds.Channels[axis]
	nds, err := normalize(byAxis, basis)
	if err != nil {
		return nil, err
	}

	if ds.Channels["z"] != nil {
		nds.Channels["z"] = ds.Channels["z"]
	} else {
		delete(nds.Channels, "z")
	}
	if z == nil {
		return nds, nil
	}
	zs := nds.ResolveAll(z)
	index := nds.Index()
	sortIndex(index, zs)
	return nds.Select(index), nil
}
