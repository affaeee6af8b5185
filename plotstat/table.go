// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math"
	"time"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-plotstat/channel"
	"github.com/aclements/go-plotstat/records"
)

// outputChannels returns the names of the channels of ds that have
// per-row values, in sorted order.
func outputChannels(ds *channel.Dataset) []string {
	var names []string
	for _, name := range ds.Channels.Names() {
		switch ds.Channels[name].(type) {
		case channel.Comparator, channel.SortBy:
			continue
		}
		names = append(names, name)
	}
	return names
}

// datasetRecords converts ds to a records table with one column per
// output channel.
func datasetRecords(ds *channel.Dataset) *records.Table {
	names := outputChannels(ds)
	cols := make([][]interface{}, len(names))
	for i, name := range names {
		cols[i] = ds.Values(name)
	}
	t := records.New(names...)
	row := make([]interface{}, len(names))
	for i := 0; i < ds.Len(); i++ {
		for j := range names {
			row[j] = cols[j][i]
		}
		t.Append(row...)
	}
	return t
}

// datasetTable converts ds to a go-gg table with one column per
// output channel. Columns that hold only numbers become []float64,
// columns that hold only times become []time.Time, and anything else
// becomes []string.
func datasetTable(ds *channel.Dataset) *table.Table {
	b := new(table.Builder)
	for _, name := range outputChannels(ds) {
		b.Add(name, ggColumn(ds.Values(name)))
	}
	return b.Done()
}

func ggColumn(vals []interface{}) interface{} {
	numbers, times := true, true
	for _, v := range vals {
		switch v.(type) {
		case nil:
		case time.Time:
			numbers = false
		default:
			times = false
			if _, ok := channel.Number(v); !ok {
				numbers = false
			}
		}
	}

	switch {
	case times && !numbers:
		col := make([]time.Time, len(vals))
		for i, v := range vals {
			if t, ok := v.(time.Time); ok {
				col[i] = t
			}
		}
		return col
	case numbers:
		col := make([]float64, len(vals))
		for i, v := range vals {
			col[i] = math.NaN()
			if x, ok := channel.Number(v); ok {
				col[i] = x
			}
		}
		return col
	}
	col := make([]string, len(vals))
	for i, v := range vals {
		col[i] = records.Format(v)
	}
	return col
}
