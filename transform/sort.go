// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/aclements/go-plotstat/channel"
	"github.com/aclements/go-plotstat/internal/random"
)

// SortOptions configures Sort.
type SortOptions struct {
	// Reverse reverses the sort direction. Undefined keys still
	// sort last.
	Reverse bool
}

// Sort orders the rows of ds by its "sort" channel and clears that
// channel. If ds has no sort channel, Sort returns ds.
//
// The sort channel may be:
//
// - a Field, whose value is the key; a leading "-" sorts descending.
//
// - a SortBy, which sorts by the values of another channel.
//
// - a Func, which computes the key of each row.
//
// - a Comparator, which compares two rows directly.
//
// Keys that are nil, NaN or infinite sort after all other keys
// regardless of direction. The sort is stable.
func Sort(ds *channel.Dataset, opts SortOptions) *channel.Dataset {
	spec := ds.Channels["sort"]
	if spec == nil {
		return ds
	}
	index := ds.Index()
	dir := 1
	if opts.Reverse {
		dir = -1
	}

	if cmp, ok := spec.(channel.Comparator); ok {
		sort.SliceStable(index, func(a, b int) bool {
			return dir*cmp(ds.Data[index[a]], ds.Data[index[b]]) < 0
		})
		return sorted(ds, index, "sort")
	}

	var keys []interface{}
	switch spec := spec.(type) {
	case channel.Field:
		name := string(spec)
		if strings.HasPrefix(name, "-") {
			name, dir = name[1:], -dir
		}
		keys = ds.ResolveAll(channel.Field(name))
	case channel.SortBy:
		name := spec.Channel
		if strings.HasPrefix(name, "-") {
			name, dir = name[1:], -dir
		}
		if spec.Order == channel.Descending {
			dir = -dir
		}
		keys = ds.Values(name)
		if keys == nil {
			keys = make([]interface{}, ds.Len())
		}
	default:
		keys = ds.ResolveAll(spec)
	}

	sort.SliceStable(index, func(a, b int) bool {
		ka, kb := keys[index[a]], keys[index[b]]
		la, lb := sortsLast(ka), sortsLast(kb)
		if la || lb {
			return !la && lb
		}
		return dir*channel.Compare(ka, kb) < 0
	})
	return sorted(ds, index, "sort")
}

// sortsLast reports whether k is an undefined sort key.
func sortsLast(k interface{}) bool {
	if k == nil {
		return true
	}
	if x, ok := channel.Number(k); ok {
		return math.IsNaN(x) || math.IsInf(x, 0)
	}
	return false
}

// sorted returns ds reordered by index with the given channel
// cleared, marked as sorted.
func sorted(ds *channel.Dataset, index []int, clear string) *channel.Dataset {
	nds := ds.Select(index)
	delete(nds.Channels, clear)
	nds.Sorted = true
	return nds
}

// ShuffleOptions configures Shuffle.
type ShuffleOptions struct {
	// Seed, if non-nil, seeds a deterministic generator that
	// matches d3's randomLcg.
	Seed *float64

	// Source, if non-nil and Seed is nil, supplies the random
	// values.
	Source random.Source
}

// Shuffle randomly permutes the rows of ds.
func Shuffle(ds *channel.Dataset, opts ShuffleOptions) *channel.Dataset {
	var src random.Source
	switch {
	case opts.Seed != nil:
		src = random.NewLCG(*opts.Seed)
	case opts.Source != nil:
		src = opts.Source
	default:
		src = random.NewLCG(rand.Float64())
	}
	index := ds.Index()
	random.Shuffle(src, index)
	return sorted(ds, index, "sort")
}

// Reverse reverses the order of the rows of ds.
func Reverse(ds *channel.Dataset) *channel.Dataset {
	index := ds.Index()
	for i, j := 0, len(index)-1; i < j; i, j = i+1, j-1 {
		index[i], index[j] = index[j], index[i]
	}
	return sorted(ds, index, "sort")
}

// Filter keeps the rows of ds whose "filter" channel is truthy and
// clears that channel. If ds has no filter channel, Filter returns ds.
func Filter(ds *channel.Dataset) *channel.Dataset {
	f := ds.Channels["filter"]
	if f == nil {
		return ds
	}
	var index []int
	for i := range ds.Data {
		if channel.Truthy(ds.Resolve(f, i)) {
			index = append(index, i)
		}
	}
	nds := ds.Select(index)
	delete(nds.Channels, "filter")
	return nds
}

// sortIndex stably sorts index by keys[index[i]].
func sortIndex(index []int, keys []interface{}) {
	sort.SliceStable(index, func(a, b int) bool {
		return channel.Compare(keys[index[a]], keys[index[b]]) < 0
	})
}
