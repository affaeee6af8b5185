// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-plotstat/channel"
	"github.com/aclements/go-plotstat/internal/random"
	"github.com/aclements/go-plotstat/interval"
)

func TestIntervalX(t *testing.T) {
	data := rows(row{"v": 12}, row{"v": 27}, row{"v": nil})
	ds := channel.New(data, channel.Channels{
		"x":        channel.Field("v"),
		"interval": channel.Const{Value: 10},
	})
	got, err := IntervalX(ds)
	require.NoError(t, err)
	assertFloats(t, []float64{10, 20, nan}, got.Floats("x1"))
	assertFloats(t, []float64{20, 30, nan}, got.Floats("x2"))
	assert.Equal(t, channel.Const{Value: 1}, got.Channels["insetRight"])
	assert.False(t, ds.Channels.Has("x1"))

	// An existing inset is kept.
	ds.Channels["insetRight"] = channel.Const{Value: 0}
	got, err = IntervalX(ds)
	require.NoError(t, err)
	assert.Equal(t, channel.Const{Value: 0}, got.Channels["insetRight"])
}

func TestIntervalY(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2021, 3, d, 0, 0, 0, 0, time.UTC) }
	data := rows(row{"t": day(3).Add(5 * time.Hour)}, row{"t": day(17)})
	ds := channel.New(data, channel.Channels{
		"y":        channel.Field("t"),
		"interval": channel.Const{Value: "month"},
	})
	got, err := IntervalY(ds)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{day(1), day(1)}, got.Values("y1"))
	want := time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []interface{}{want, want}, got.Values("y2"))
	assert.True(t, got.Channels.Has("insetBottom"))
	assert.False(t, got.Channels.Has("insetRight"))
}

func TestIntervalNoop(t *testing.T) {
	for _, channels := range []channel.Channels{
		{"x": channel.Identity},
		{"interval": channel.Const{Value: 10}},
		{"x": channel.Identity, "x1": channel.Identity, "interval": channel.Const{Value: 10}},
		{"x": channel.Identity, "x2": channel.Identity, "interval": channel.Const{Value: 10}},
		{"x": channel.Identity, "interval": channel.Const{Value: nil}},
	} {
		ds := channel.New(scalars(1, 2), channels)
		got, err := IntervalX(ds)
		require.NoError(t, err)
		assert.Same(t, ds, got)
	}
}

func TestIntervalErrors(t *testing.T) {
	ds := channel.New(scalars(1, 2), channel.Channels{
		"x":        channel.Identity,
		"interval": channel.Field("i"),
	})
	_, err := IntervalX(ds)
	assert.Error(t, err)

	ds.Channels["interval"] = channel.Const{Value: "fortnight"}
	_, err = IntervalX(ds)
	assert.True(t, errors.Is(err, interval.ErrUnknownInterval))

	ds.Channels["interval"] = channel.Const{Value: struct{}{}}
	_, err = IntervalX(ds)
	assert.True(t, errors.Is(err, interval.ErrMissingFloor))
}

func TestShift(t *testing.T) {
	got, err := ShiftX(channel.New(scalars(1, 2, 3), nil), 10)
	require.NoError(t, err)
	assertFloats(t, []float64{11, 12, 13}, got.Floats("x"))

	jan15 := time.Date(2020, 1, 15, 12, 0, 0, 0, time.UTC)
	data := rows(row{"t": jan15, "v": 1})
	ds := channel.New(data, channel.Channels{"x": channel.Field("t"), "y": channel.Field("v")})
	for _, test := range []struct {
		shift interface{}
		want  time.Time
	}{
		{"+1 month", time.Date(2020, 2, 15, 12, 0, 0, 0, time.UTC)},
		{"month", time.Date(2020, 2, 15, 12, 0, 0, 0, time.UTC)},
		{"-2 days", time.Date(2020, 1, 13, 12, 0, 0, 0, time.UTC)},
		{"+1 year", time.Date(2021, 1, 15, 12, 0, 0, 0, time.UTC)},
		{"3 hours", time.Date(2020, 1, 15, 15, 0, 0, 0, time.UTC)},
		{1000, jan15.Add(time.Second)},
	} {
		got, err := ShiftX(ds, test.shift)
		require.NoError(t, err, "%v", test.shift)
		assert.Equal(t, []interface{}{test.want}, got.Values("x"), "%v", test.shift)
		assert.Equal(t, []interface{}{1}, got.Values("y"))
	}

	// Numeric values are treated as epoch milliseconds.
	ms := float64(jan15.UnixMilli())
	got, err = ShiftY(channel.New(scalars(ms), nil), "+1 day")
	require.NoError(t, err)
	assertFloats(t, []float64{ms + 24*60*60*1000}, got.Floats("y"))

	// Fractional milliseconds survive a calendar shift.
	got, err = ShiftY(channel.New(scalars(86400000.5, 0.25), nil), "+1 day")
	require.NoError(t, err)
	assert.Equal(t, []float64{172800000.5, 86400000.25}, got.Floats("y"))

	got, err = ShiftX(ds, 0.0005)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{jan15.Add(500 * time.Nanosecond)}, got.Values("x"))
}

func TestShiftChannels(t *testing.T) {
	ds := channel.New(rows(row{"a": 1, "b": 5}), channel.Channels{
		"x1": channel.Field("a"),
		"x2": channel.Field("b"),
	})
	got, err := ShiftX(ds, 1)
	require.NoError(t, err)
	assertFloats(t, []float64{2}, got.Floats("x1"))
	assertFloats(t, []float64{6}, got.Floats("x2"))
	assert.False(t, got.Channels.Has("x"))

	ds = channel.New(rows(row{"v": 1}), channel.Channels{"x": channel.Field("v")})
	got, err = ShiftX(ds, map[string]interface{}{"x2": 5})
	require.NoError(t, err)
	assertFloats(t, []float64{1}, got.Floats("x"))
	assertFloats(t, []float64{6}, got.Floats("x2"))

	for _, bad := range []interface{}{"+1 fortnight", "1 2 day", "++day", struct{}{}} {
		_, err := ShiftX(ds, bad)
		assert.True(t, errors.Is(err, ErrInvalidShift), "%v", bad)
	}
	_, err = ShiftX(ds, map[string]string{"y": "day"})
	assert.True(t, errors.Is(err, ErrMissingChannel))
}

type fixedSource float64

func (s fixedSource) Float64() float64 { return float64(s) }

func TestJitter(t *testing.T) {
	at := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	data := scalars(1.0, "a", nil, at)
	ds := channel.New(data, channel.Channels{"x": channel.Identity})
	src := fixedSource(0.75)

	got, err := JitterX(ds, JitterOptions{Source: src})
	require.NoError(t, err)
	vals := got.Values("x")
	assert.InDelta(t, 1.175, vals[0], 1e-12)
	assert.Equal(t, "a", vals[1])
	assert.Nil(t, vals[2])
	assert.Equal(t, at.Add(175*time.Microsecond), vals[3])

	got, err = JitterX(ds, JitterOptions{Source: src, Width: "1 day"})
	require.NoError(t, err)
	assert.Equal(t, at.Add(12*time.Hour), got.Values("x")[3])

	got, err = JitterX(ds, JitterOptions{Source: src, Width: 2})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got.Values("x")[0], 1e-12)

	// Jittering twice composes.
	twice, err := JitterX(got, JitterOptions{Source: src, Width: 2})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, twice.Values("x")[0], 1e-12)
	assert.InDelta(t, 2.0, got.Values("x")[0], 1e-12)

	_, err = JitterX(ds, JitterOptions{Width: "1 fortnight"})
	assert.True(t, errors.Is(err, ErrInvalidJitter))
	_, err = JitterX(ds, JitterOptions{Width: struct{}{}})
	assert.True(t, errors.Is(err, ErrInvalidJitter))
	_, err = JitterX(ds, JitterOptions{Type: "cauchy"})
	assert.True(t, errors.Is(err, ErrInvalidJitter))

	// Without a y channel, JitterY is a no-op.
	got, err = JitterY(ds, JitterOptions{})
	require.NoError(t, err)
	assert.Same(t, ds, got)
}

func TestJitterNormal(t *testing.T) {
	data := make([]interface{}, 1000)
	for i := range data {
		data[i] = 0.0
	}
	ds := channel.New(data, channel.Channels{"y": channel.Identity})
	jitter := func(seed float64) []float64 {
		got, err := JitterY(ds, JitterOptions{Type: "normal", Std: 2, Source: random.NewLCG(seed)})
		require.NoError(t, err)
		return got.Floats("y")
	}
	a := jitter(1)
	assert.Equal(t, a, jitter(1))
	var sum, sumSq float64
	for _, x := range a {
		sum += x
		sumSq += x * x
	}
	mean := sum / float64(len(a))
	assert.InDelta(t, 0, mean, 0.3)
	assert.InDelta(t, 2, math.Sqrt(sumSq/float64(len(a))-mean*mean), 0.3)
}
