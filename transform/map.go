// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"fmt"
	"sort"
	"time"

	"github.com/aclements/go-plotstat/channel"
)

// inputChannel returns the accessor a mapped output channel reads
// from. The range channels x1 and x2 fall back to x, and y1 and y2 to
// y. If the rows are bare values rather than records, an unset x or y
// channel reads the row itself.
func inputChannel(ds *channel.Dataset, name string) (channel.Accessor, error) {
	if a := ds.Channels[name]; a != nil {
		return a, nil
	}
	var fallback string
	switch name {
	case "x", "y":
		fallback = name
	case "x1", "x2":
		fallback = "x"
	case "y1", "y2":
		fallback = "y"
	}
	if fallback == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingChannel, name)
	}
	if a := ds.Channels[fallback]; a != nil {
		return a, nil
	}
	if scalarRows(ds) {
		return channel.Identity, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingChannel, name)
}

// scalarRows reports whether every row of ds is a bare number,
// string, boolean, time or nil.
func scalarRows(ds *channel.Dataset) bool {
	for _, d := range ds.Data {
		switch d.(type) {
		case nil, string, bool, time.Time:
			continue
		}
		if _, ok := channel.Number(d); !ok {
			return false
		}
	}
	return true
}

// Map derives new values for each output channel. outputs maps a
// channel name to a mapper specification (see MaybeMapper). Each
// mapper runs separately on each facet and series group (see
// ForEachFacetZGroup), reading the channel's current values.
func Map(ds *channel.Dataset, outputs map[string]interface{}) (*channel.Dataset, error) {
	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)

	nds := ds.Clone()
	index := ds.Index()
	for _, name := range names {
		m, err := MaybeMapper(outputs[name])
		if err != nil {
			return nil, fmt.Errorf("channel %s: %w", name, err)
		}
		in, err := inputChannel(ds, name)
		if err != nil {
			return nil, err
		}
		S := ds.ResolveAll(in)
		T := make([]float64, ds.Len())
		ForEachFacetZGroup(ds, index, func(I []int) {
			if err == nil {
				err = m.MapIndex(I, S, T)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("channel %s: %w", name, err)
		}
		nds.Channels[name] = nds.AddFloats(T)
	}
	return nds, nil
}

// MapX applies mapper to whichever of the x, x1 and x2 channels are
// set. If none is set, it maps the rows themselves as x.
func MapX(ds *channel.Dataset, mapper interface{}) (*channel.Dataset, error) {
	return mapAxis(ds, mapper, "x", "x1", "x2")
}

// MapY is the y counterpart of MapX.
func MapY(ds *channel.Dataset, mapper interface{}) (*channel.Dataset, error) {
	return mapAxis(ds, mapper, "y", "y1", "y2")
}

func mapAxis(ds *channel.Dataset, mapper interface{}, names ...string) (*channel.Dataset, error) {
	outputs := make(map[string]interface{})
	for _, name := range names {
		if ds.Channels.Has(name) {
			outputs[name] = mapper
		}
	}
	if len(outputs) == 0 {
		ds = ds.Clone()
		ds.Channels[names[0]] = channel.Identity
		outputs[names[0]] = mapper
	}
	return Map(ds, outputs)
}
