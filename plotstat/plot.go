// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image/color"
	"io"

	"github.com/aclements/go-gg/gg"

	"github.com/aclements/go-plotstat/channel"
)

// chooseMark resolves the "auto" mark for ds. Ordered data with a y
// band (such as regression output) draws as a band, other ordered
// data as lines, and everything else as points.
func chooseMark(ds *channel.Dataset, mark string) string {
	if mark != "auto" {
		return mark
	}
	switch {
	case ds.Sorted && ds.Channels.Has("y1") && ds.Channels.Has("y2"):
		return "band"
	case ds.Sorted:
		return "lines"
	}
	return "points"
}

// seriesChannel returns the channel that distinguishes series, or "".
func seriesChannel(ds *channel.Dataset) string {
	for _, name := range []string{"z", "fill", "stroke"} {
		if _, ok := ds.Channels[name].(channel.Const); ok {
			continue
		}
		if ds.Channels.Has(name) {
			return name
		}
	}
	return ""
}

// plot builds a plot of ds. It returns the plot and the number of
// facet rows and columns.
func plot(ds *channel.Dataset, out OutputConfig) (*gg.Plot, int, int, error) {
	for _, name := range []string{"x", "y"} {
		if !ds.Channels.Has(name) {
			return nil, 0, 0, fmt.Errorf("cannot plot without a %s channel", name)
		}
	}
	tab := datasetTable(ds)
	p := gg.NewPlot(tab)
	series := seriesChannel(ds)

	mark := chooseMark(ds, out.Mark)
	switch mark {
	case "points":
		p.Add(gg.LayerPoints{X: "x", Y: "y", Color: series})
	case "lines":
		p.Add(gg.LayerLines{X: "x", Y: "y", Color: series})
	case "area", "band":
		if !ds.Channels.Has("y1") || !ds.Channels.Has("y2") {
			return nil, 0, 0, fmt.Errorf("%s mark needs y1 and y2 channels", mark)
		}
		p.Add(gg.LayerArea{X: "x", Upper: "y2", Lower: "y1", Fill: p.Const(color.Gray{Y: 192})})
		if mark == "band" {
			p.Add(gg.LayerLines{X: "x", Y: "y", Color: series})
		}
	}

	nrows, ncols := 1, 1
	if ds.Channels.Has("fy") {
		p.Add(gg.FacetY{Col: "fy"})
		nrows = distinct(ds.Values("fy"))
	}
	if ds.Channels.Has("fx") {
		p.Add(gg.FacetX{Col: "fx"})
		ncols = distinct(ds.Values("fx"))
	}
	if out.Title != "" {
		p.Add(gg.Title(out.Title))
	}
	return p, nrows, ncols, nil
}

func distinct(vals []interface{}) int {
	seen := make(map[string]bool)
	for _, v := range vals {
		seen[fmt.Sprint(v)] = true
	}
	if len(seen) == 0 {
		return 1
	}
	return len(seen)
}

// writeSVG renders ds to w as an SVG plot.
func writeSVG(w io.Writer, ds *channel.Dataset, out OutputConfig) error {
	p, nrows, ncols, err := plot(ds, out)
	if err != nil {
		return err
	}
	return p.WriteSVG(w, out.Width*ncols, out.Height*nrows)
}
