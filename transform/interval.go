// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"fmt"

	"github.com/aclements/go-plotstat/channel"
	"github.com/aclements/go-plotstat/interval"
)

// IntervalX derives x1 and x2 from x and the interval channel: x1 is
// the start of the bucket containing x and x2 the start of the next
// bucket. It also sets insetRight to 1 if it is not already set, so
// adjacent buckets do not touch.
//
// The interval channel must be a Const holding a specification
// accepted by interval.Maybe. IntervalX returns ds unchanged if x or
// interval is absent, or if x1 or x2 is already set.
func IntervalX(ds *channel.Dataset) (*channel.Dataset, error) {
	return intervalAxis(ds, "x", "x1", "x2", "insetRight")
}

// IntervalY is the y counterpart of IntervalX. It sets insetBottom.
func IntervalY(ds *channel.Dataset) (*channel.Dataset, error) {
	return intervalAxis(ds, "y", "y1", "y2", "insetBottom")
}

func intervalAxis(ds *channel.Dataset, base, lo, hi, inset string) (*channel.Dataset, error) {
	ch := ds.Channels
	if !ch.Has(base) || !ch.Has("interval") || ch.Has(lo) || ch.Has(hi) {
		return ds, nil
	}
	c, ok := ch["interval"].(channel.Const)
	if !ok {
		return nil, fmt.Errorf("interval must be a constant, not %T", ch["interval"])
	}
	spec, err := interval.Maybe(c.Value)
	if err != nil {
		return nil, err
	}
	if spec == nil {
		return ds, nil
	}

	vals := ds.Values(base)
	los := make([]interface{}, len(vals))
	his := make([]interface{}, len(vals))
	for i, v := range vals {
		if l, h, ok := spec.Bucket(v); ok {
			los[i], his[i] = l, h
		}
	}
	nds := ds.Clone()
	nds.Channels[lo] = nds.AddSlot(los)
	nds.Channels[hi] = nds.AddSlot(his)
	if !nds.Channels.Has(inset) {
		nds.Channels[inset] = channel.Const{Value: 1}
	}
	return nds, nil
}
