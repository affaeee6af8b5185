// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"math"

	"github.com/aclements/go-moremath/vec"

	"github.com/aclements/go-plotstat/channel"
	"github.com/aclements/go-plotstat/confidence"
	"github.com/aclements/go-plotstat/regression"
)

// RegressionOptions configures RegressionX and RegressionY.
type RegressionOptions struct {
	// Type is a regression kind accepted by regression.New. The
	// default is "linear".
	Type string

	// Order is the degree of a "poly" regression.
	Order int

	// Base is the logarithm base of a "log" regression.
	Base float64

	// Span is the bandwidth of a "loess" regression.
	Span float64

	// Confidence, if positive, is the two-tailed confidence level
	// of the band around predictive fits, such as 0.95.
	Confidence float64

	// Samples, if positive, evaluates predictive fits at this many
	// evenly spaced points. Otherwise the fit's own adaptive
	// samples are used.
	Samples int
}

// RegressionY fits y as a function of x separately for each facet
// and series, and returns a dataset of points along the fitted
// curves. Each output row is a map with keys "x", "y", "left" and
// "right" (the confidence band, NaN if there is none), plus "z",
// "fx" and "fy" identifying its group when ds has those channels.
// The output channels are x, y, y1 (left), y2 (right), z, fx and fy.
func RegressionY(ds *channel.Dataset, opts RegressionOptions) (*channel.Dataset, error) {
	return regress(ds, opts, "x", "y")
}

// RegressionX fits x as a function of y. Its output rows are as for
// RegressionY with the roles of x and y exchanged; the band is in x1
// and x2.
func RegressionX(ds *channel.Dataset, opts RegressionOptions) (*channel.Dataset, error) {
	return regress(ds, opts, "y", "x")
}

func regress(ds *channel.Dataset, opts RegressionOptions, indep, dep string) (*channel.Dataset, error) {
	kind := opts.Type
	if kind == "" {
		kind = "linear"
	}
	model, err := regression.New(kind, regression.Options{
		Order:     opts.Order,
		Base:      opts.Base,
		Bandwidth: opts.Span,
	})
	if err != nil {
		return nil, err
	}
	if !ds.Channels.Has(indep) || !ds.Channels.Has(dep) {
		return nil, ErrMissingChannel
	}

	xs, ys := ds.Floats(indep), ds.Floats(dep)
	z := zAccessor(ds)
	groupChannels := map[string]channel.Accessor{"z": z, "fx": ds.Channels["fx"], "fy": ds.Channels["fy"]}

	var rows []interface{}
	ForEachFacetZGroup(ds, ds.Index(), func(I []int) {
		pts := make([]interface{}, len(I))
		for j, i := range I {
			pts[j] = regression.Point{X: xs[i], Y: ys[i]}
		}
		fitted := model.Regress(pts)

		samples := fitted.Samples()
		p, isPredictor := fitted.(regression.Predictor)
		if res, ok := fitted.(*regression.Result); ok && opts.Samples > 0 {
			samples = samples[:0:0]
			for _, x := range vec.Linspace(res.Domain[0], res.Domain[1], opts.Samples) {
				samples = append(samples, regression.Point{X: x, Y: res.Predict(x)})
			}
		}
		var band func(float64) confidence.Bound
		if isPredictor && opts.Confidence > 0 {
			band = confidence.BandOf(pts, regression.DefaultX, regression.DefaultY, p.Predict, opts.Confidence)
		}

		for _, s := range samples {
			row := map[string]interface{}{
				indep:   s.X,
				dep:     s.Y,
				"left":  math.NaN(),
				"right": math.NaN(),
			}
			if band != nil {
				b := band(s.X)
				row["left"], row["right"] = b.Left, b.Right
			}
			for name, a := range groupChannels {
				if a != nil {
					row[name] = ds.Resolve(a, I[0])
				}
			}
			rows = append(rows, row)
		}
	})

	channels := channel.Channels{
		indep:     channel.Field(indep),
		dep:       channel.Field(dep),
		dep + "1": channel.Field("left"),
		dep + "2": channel.Field("right"),
	}
	for name, a := range groupChannels {
		if a != nil {
			channels[name] = channel.Field(name)
		}
	}
	nds := channel.New(rows, channels)
	nds.Sorted = true
	return nds, nil
}
