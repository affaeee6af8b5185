// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-plotstat/channel"
)

func TestSortUndefinedLast(t *testing.T) {
	data := scalars(3.0, math.NaN(), 1.0, nil, 2.0, math.Inf(1))
	ds := channel.New(data, channel.Channels{"x": channel.Identity, "sort": channel.Identity})

	asc := Sort(ds, SortOptions{})
	assert.Equal(t, []string{"1", "2", "3", "NaN", "<nil>", "+Inf"}, printed(asc, "x"))
	assert.True(t, asc.Sorted)
	assert.False(t, asc.Channels.Has("sort"))

	desc := Sort(ds, SortOptions{Reverse: true})
	assert.Equal(t, []string{"3", "2", "1", "NaN", "<nil>", "+Inf"}, printed(desc, "x"))

	// The input is unchanged.
	assert.Equal(t, "3", printed(ds, "x")[0])
	assert.True(t, ds.Channels.Has("sort"))
}

func TestSortChannels(t *testing.T) {
	data := rows(
		row{"name": "b", "v": 2},
		row{"name": "a", "v": 3},
		row{"name": "c", "v": 1},
	)
	for _, test := range []struct {
		name string
		sort channel.Accessor
		want []string
	}{
		{"field", channel.Field("v"), []string{"c", "b", "a"}},
		{"field descending", channel.Field("-v"), []string{"a", "b", "c"}},
		{"field strings", channel.Field("name"), []string{"a", "b", "c"}},
		{"sort by", channel.SortBy{Channel: "y"}, []string{"c", "b", "a"}},
		{"sort by descending", channel.SortBy{Channel: "y", Order: channel.Descending}, []string{"a", "b", "c"}},
		{"sort by minus", channel.SortBy{Channel: "-y"}, []string{"a", "b", "c"}},
		{"sort by missing", channel.SortBy{Channel: "fill"}, []string{"b", "a", "c"}},
		{"func", channel.Func(func(d interface{}, i int) interface{} { return -i }), []string{"c", "a", "b"}},
		{"comparator", channel.Comparator(func(a, b interface{}) int {
			return strings.Compare(channel.Lookup(b, "name").(string), channel.Lookup(a, "name").(string))
		}), []string{"c", "b", "a"}},
	} {
		ds := channel.New(data, channel.Channels{
			"x":    channel.Field("name"),
			"y":    channel.Field("v"),
			"sort": test.sort,
		})
		got := Sort(ds, SortOptions{})
		assert.Equal(t, test.want, printed(got, "x"), test.name)
	}

	ds := channel.New(data, channel.Channels{"x": channel.Field("name")})
	assert.Same(t, ds, Sort(ds, SortOptions{}))
}

func TestSortStable(t *testing.T) {
	data := rows(
		row{"k": 1, "id": "a"},
		row{"k": 0, "id": "b"},
		row{"k": 1, "id": "c"},
		row{"k": 0, "id": "d"},
	)
	ds := channel.New(data, channel.Channels{"x": channel.Field("id"), "sort": channel.Field("k")})
	assert.Equal(t, []string{"b", "d", "a", "c"}, printed(Sort(ds, SortOptions{}), "x"))
	assert.Equal(t, []string{"a", "c", "b", "d"}, printed(Sort(ds, SortOptions{Reverse: true}), "x"))
}

func TestSortCarriesSlots(t *testing.T) {
	ds := channel.New(scalars(3, 1, 2), channel.Channels{"sort": channel.Identity})
	ds.Channels["y"] = ds.AddFloats([]float64{30, 10, 20})
	got := Sort(ds, SortOptions{})
	assertFloats(t, []float64{10, 20, 30}, got.Floats("y"))
}

func TestReverse(t *testing.T) {
	ds := channel.New(scalars(1, 2, 3, 4), channel.Channels{"x": channel.Identity})
	r := Reverse(ds)
	assert.Equal(t, []interface{}{4, 3, 2, 1}, r.Data)
	assert.True(t, r.Sorted)
	assert.Equal(t, ds.Data, Reverse(r).Data)
}

func TestShuffle(t *testing.T) {
	data := scalars(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	ds := channel.New(data, channel.Channels{"x": channel.Identity, "sort": channel.Identity})
	seed := 42.0
	a := Shuffle(ds, ShuffleOptions{Seed: &seed})
	b := Shuffle(ds, ShuffleOptions{Seed: &seed})
	assert.Equal(t, a.Data, b.Data, "same seed must give the same order")
	assert.ElementsMatch(t, data, a.Data)
	assert.NotEqual(t, data, a.Data)
	assert.False(t, a.Channels.Has("sort"))
	assert.True(t, a.Sorted)

	other := 7.0
	c := Shuffle(ds, ShuffleOptions{Seed: &other})
	assert.NotEqual(t, a.Data, c.Data)
}

func TestFilter(t *testing.T) {
	data := rows(
		row{"v": 1, "keep": true},
		row{"v": 2, "keep": false},
		row{"v": 3, "keep": 1},
		row{"v": 4, "keep": ""},
		row{"v": 5, "keep": nil},
		row{"v": 6, "keep": "yes"},
	)
	ds := channel.New(data, channel.Channels{"x": channel.Field("v"), "filter": channel.Field("keep")})
	got := Filter(ds)
	require.Equal(t, 3, got.Len())
	assertFloats(t, []float64{1, 3, 6}, got.Floats("x"))
	assert.False(t, got.Channels.Has("filter"))

	ds = channel.New(data, nil)
	assert.Same(t, ds, Filter(ds))
}
