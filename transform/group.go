// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"fmt"
	"math"
	"time"

	"github.com/aclements/go-plotstat/channel"
)

// zAccessor returns the accessor that partitions series: the z
// channel, or failing that a non-constant fill or stroke channel.
func zAccessor(ds *channel.Dataset) channel.Accessor {
	if z := ds.Channels["z"]; z != nil {
		return z
	}
	for _, name := range []string{"fill", "stroke"} {
		a := ds.Channels[name]
		if _, isConst := a.(channel.Const); a != nil && !isConst {
			return a
		}
	}
	return nil
}

// ForEachFacetZGroup partitions index by the fx, fy and z channels
// and calls fn on each partition. Partitions are visited in the order
// their first member appears in index, and each preserves the order of
// index.
func ForEachFacetZGroup(ds *channel.Dataset, index []int, fn func(group []int)) {
	forEachGroup(ds, index, zAccessor(ds), fn)
}

func forEachGroup(ds *channel.Dataset, index []int, z channel.Accessor, fn func(group []int)) {
	fx, fy := ds.Channels["fx"], ds.Channels["fy"]
	if fx == nil && fy == nil && z == nil {
		if len(index) > 0 {
			fn(index)
		}
		return
	}

	type key struct{ fx, fy, z interface{} }
	slot := make(map[key]int)
	var groups [][]int
	for _, i := range index {
		var k key
		if fx != nil {
			k.fx = groupKey(ds.Resolve(fx, i))
		}
		if fy != nil {
			k.fy = groupKey(ds.Resolve(fy, i))
		}
		if z != nil {
			k.z = groupKey(ds.Resolve(z, i))
		}
		g, ok := slot[k]
		if !ok {
			g = len(groups)
			slot[k] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	for _, g := range groups {
		fn(g)
	}
}

type nanKey struct{}

// groupKey normalizes v to a comparable map key. Numbers of any type
// with equal values share a key, as do all NaNs.
func groupKey(v interface{}) interface{} {
	switch v := v.(type) {
	case nil, string, bool:
		return v
	case time.Time:
		return v.UnixNano()
	}
	if x, ok := channel.Number(v); ok {
		if math.IsNaN(x) {
			return nanKey{}
		}
		return x
	}
	return fmt.Sprint(v)
}
