// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-plotstat/channel"
	"github.com/aclements/go-plotstat/regression"
)

func sample() *channel.Dataset {
	data := []interface{}{
		map[string]interface{}{"t": 1, "v": 10, "g": "a", "keep": true},
		map[string]interface{}{"t": 2, "v": 30, "g": "b", "keep": false},
		map[string]interface{}{"t": 3, "v": 20, "g": "a", "keep": true},
		map[string]interface{}{"t": 4, "v": 40, "g": "b", "keep": true},
	}
	return channel.New(data, channel.Channels{"x": channel.Field("t"), "y": channel.Field("v")})
}

func runSteps(t *testing.T, ds *channel.Dataset, texts ...string) *channel.Dataset {
	t.Helper()
	steps, err := parsePipeline(texts)
	require.NoError(t, err)
	ds, err = runPipeline(ds, steps)
	require.NoError(t, err)
	return ds
}

func floats(ds *channel.Dataset, name string) []float64 {
	return ds.Floats(name)
}

func TestPipelineSteps(t *testing.T) {
	nan := math.NaN()
	for _, test := range []struct {
		steps []string
		ch    string
		want  []float64
	}{
		{[]string{"filter keep"}, "y", []float64{10, 20, 40}},
		{[]string{"sort -y"}, "y", []float64{40, 30, 20, 10}},
		{[]string{"sort y reverse"}, "y", []float64{40, 30, 20, 10}},
		{[]string{"sort v"}, "x", []float64{1, 3, 2, 4}},
		{[]string{"sort v reverse=true"}, "x", []float64{4, 2, 3, 1}},
		{[]string{"reverse"}, "x", []float64{4, 3, 2, 1}},
		{[]string{"map y=cumsum"}, "y", []float64{10, 40, 60, 100}},
		{[]string{"map y=rank x=quantile"}, "x", []float64{0, 1.0 / 3, 2.0 / 3, 1}},
		{[]string{"normalize y first"}, "y", []float64{1, 3, 2, 4}},
		{[]string{"normalize y"}, "y", []float64{1, 3, 2, 4}},
		{[]string{"normalize x extent"}, "x", []float64{0, 1.0 / 3, 2.0 / 3, 1}},
		{[]string{"window y k=2 anchor=start strict"}, "y", []float64{20, 25, 30, nan}},
		{[]string{"window y k=2 anchor=start reduce=sum strict=false"}, "y", []float64{40, 50, 60, 40}},
		{[]string{"interval y 25"}, "y1", []float64{0, 25, 0, 25}},
		{[]string{"interval y 25"}, "y2", []float64{25, 50, 25, 50}},
		{[]string{"shift x 0.5"}, "x", []float64{1.5, 2.5, 3.5, 4.5}},
		{[]string{"shift y2=5"}, "y2", []float64{15, 35, 25, 45}},
		{[]string{"jitter y width=0 seed=1"}, "y", []float64{10, 30, 20, 40}},
		{[]string{"filter keep", "map y=cumsum", "reverse"}, "y", []float64{70, 30, 10}},
	} {
		got := runSteps(t, sample(), test.steps...)
		assertFloats(t, test.want, floats(got, test.ch), "%q", test.steps)
	}
}

func TestPipelineGroups(t *testing.T) {
	ds := sample()
	ds.Channels["z"] = channel.Field("g")
	got := runSteps(t, ds, "map y=cumsum")
	assertFloats(t, []float64{10, 30, 30, 70}, floats(got, "y"))

	got = runSteps(t, ds, "normalize-parallel y max")
	assert.Equal(t, 4, got.Len())
}

func TestPipelineShuffle(t *testing.T) {
	a := runSteps(t, sample(), "shuffle seed=3")
	b := runSteps(t, sample(), "shuffle seed=3")
	assert.Equal(t, floats(a, "x"), floats(b, "x"))
	assert.ElementsMatch(t, []float64{1, 2, 3, 4}, floats(a, "x"))
}

func TestPipelineShiftTime(t *testing.T) {
	at := time.Date(2021, 1, 31, 0, 0, 0, 0, time.UTC)
	ds := channel.New([]interface{}{map[string]interface{}{"d": at}}, channel.Channels{"x": channel.Field("d")})
	got := runSteps(t, ds, `shift x "+1 day"`)
	assert.Equal(t, []interface{}{at.AddDate(0, 0, 1)}, got.Values("x"))
	got = runSteps(t, ds, `shift x="-2 weeks"`)
	assert.Equal(t, []interface{}{at.AddDate(0, 0, -14)}, got.Values("x"))
}

func TestPipelineRegression(t *testing.T) {
	got := runSteps(t, sample(), "regression y samples=4 confidence=0.9")
	assert.True(t, got.Sorted)
	assert.Equal(t, 4, got.Len())
	assertFloats(t, []float64{1, 2, 3, 4}, floats(got, "x"))
	ys, lo, hi := floats(got, "y"), floats(got, "y1"), floats(got, "y2")
	for i := range ys {
		assert.Less(t, lo[i], ys[i])
		assert.Greater(t, hi[i], ys[i])
	}

	got = runSteps(t, sample(), "regression x type=loess span=1")
	assert.True(t, got.Channels.Has("x1"))
}

func TestParseStepErrors(t *testing.T) {
	for _, test := range []struct {
		text string
		is   error
	}{
		{"frobnicate x", errUnknownStep},
		{"regression y type=spline", regression.ErrUnknownType},
		{"", nil},
		{"sort", nil},
		{"sort y sideways", nil},
		{"normalize z", nil},
		{"normalize y mode", nil},
		{"window y", nil},
		{"window y k=3 reduce=mode", nil},
		{"window y k=3 loose", nil},
		{"window y k=three", nil},
		{"interval x", nil},
		{"shift x", nil},
		{"shift x x2=1", nil},
		{"map y", nil},
		{"map y=median", nil},
		{"jitter y bogus=1", nil},
		{"jitter y seed=abc", nil},
		{"regression y span=2", nil},
		{"regression y base=1", nil},
		{"regression y confidence=1.5", nil},
		{"reverse now", nil},
		{`sort "y`, nil},
	} {
		_, err := parseStep(test.text)
		if assert.Error(t, err, "%q", test.text) && test.is != nil {
			assert.True(t, errors.Is(err, test.is), "%q: %v", test.text, err)
		}
	}
}

func TestRunPipelineError(t *testing.T) {
	steps, err := parsePipeline([]string{"regression y"})
	require.NoError(t, err)
	ds := channel.New(nil, channel.Channels{"x": channel.Identity})
	_, err = runPipeline(ds, steps)
	assert.ErrorContains(t, err, `step "regression y"`)
}

func assertFloats(t *testing.T, want, got []float64, msgAndArgs ...interface{}) {
	t.Helper()
	if !assert.Len(t, got, len(want), msgAndArgs...) {
		return
	}
	for i := range want {
		if math.IsNaN(want[i]) {
			assert.True(t, math.IsNaN(got[i]), msgAndArgs...)
			continue
		}
		assert.InDelta(t, want[i], got[i], 1e-9, msgAndArgs...)
	}
}
