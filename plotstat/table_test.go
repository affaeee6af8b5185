// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-plotstat/channel"
)

func TestGGColumn(t *testing.T) {
	at := time.Date(2021, 5, 19, 0, 0, 0, 0, time.UTC)

	col := ggColumn([]interface{}{1, 2.5, nil})
	require.IsType(t, []float64{}, col)
	fs := col.([]float64)
	assert.Equal(t, []float64{1, 2.5}, fs[:2])
	assert.True(t, math.IsNaN(fs[2]))

	col = ggColumn([]interface{}{at, nil})
	assert.Equal(t, []time.Time{at, {}}, col)

	col = ggColumn([]interface{}{"a", 1, nil, at})
	assert.Equal(t, []string{"a", "1", "", "2021-05-19T00:00:00Z"}, col)

	col = ggColumn([]interface{}{nil})
	require.IsType(t, []float64{}, col)
}

func TestDatasetTable(t *testing.T) {
	ds := sample()
	ds.Channels["z"] = channel.Field("g")
	ds.Channels["sort"] = channel.SortBy{Channel: "y"}
	ds.Channels["fill"] = channel.Const{Value: "red"}

	assert.Equal(t, []string{"fill", "x", "y", "z"}, outputChannels(ds))

	tab := datasetTable(ds)
	assert.Equal(t, []string{"fill", "x", "y", "z"}, tab.Columns())
	assert.Equal(t, []float64{10, 30, 20, 40}, tab.Column("y"))
	assert.Equal(t, []string{"a", "b", "a", "b"}, tab.Column("z"))

	rec := datasetRecords(ds)
	assert.Equal(t, []string{"fill", "x", "y", "z"}, rec.Columns)
	require.Len(t, rec.Records, 4)
	assert.Equal(t, "30", rec.Records[1].Cells["y"].RawValue)
	assert.Equal(t, "red", rec.Records[3].Cells["fill"].RawValue)
}

func TestChooseMark(t *testing.T) {
	ds := sample()
	assert.Equal(t, "points", chooseMark(ds, "auto"))
	assert.Equal(t, "lines", chooseMark(ds, "lines"))
	ds.Sorted = true
	assert.Equal(t, "lines", chooseMark(ds, "auto"))
	ds.Channels["y1"] = channel.Field("v")
	ds.Channels["y2"] = channel.Field("v")
	assert.Equal(t, "band", chooseMark(ds, "auto"))
}

func TestSeriesChannel(t *testing.T) {
	ds := sample()
	assert.Equal(t, "", seriesChannel(ds))
	ds.Channels["fill"] = channel.Const{Value: "red"}
	assert.Equal(t, "", seriesChannel(ds))
	ds.Channels["stroke"] = channel.Field("g")
	assert.Equal(t, "stroke", seriesChannel(ds))
	ds.Channels["z"] = channel.Field("g")
	assert.Equal(t, "z", seriesChannel(ds))
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	out := OutputConfig{Mark: "auto", Width: 400, Height: 300}
	require.NoError(t, writeSVG(&buf, sample(), out))
	assert.True(t, strings.Contains(buf.String(), "<svg"), "output is not SVG")

	ds := channel.New(nil, channel.Channels{"x": channel.Identity})
	assert.Error(t, writeSVG(&buf, ds, out))

	out.Mark = "area"
	assert.Error(t, writeSVG(&buf, sample(), out))
}
