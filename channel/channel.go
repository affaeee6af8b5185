// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package channel implements the data model shared by the plotstat
// transforms: a dataset of opaque rows plus a map from channel names
// (x, y, fill, sort, ...) to accessors that extract values from those
// rows.
//
// Transforms never modify rows. Values they compute are stored in
// synthetic columns owned by the Dataset and referenced through Slot
// accessors, so derived values can never collide with fields of the
// user's rows.
package channel

import "sort"

// Accessor extracts a value from a row. It is one of Field, Const,
// Func, Slot, Comparator or SortBy.
type Accessor interface {
	isAccessor()
}

// Field names a field of each row. For map rows this is a key; for
// struct rows it is an exported field name.
type Field string

// Const is a constant value shared by every row.
type Const struct {
	Value interface{}
}

// Func computes a value from row d at index i.
type Func func(d interface{}, i int) interface{}

// Slot refers to a synthetic column of the Dataset that holds the
// accessor. Slots are created by Dataset.AddSlot.
type Slot int

// Comparator orders two rows directly. It is only meaningful as the
// "sort" channel.
type Comparator func(a, b interface{}) int

// Order is a sort direction.
type Order int

const (
	Ascending Order = iota
	Descending
)

// SortBy sorts by the value of another channel. It is only meaningful
// as the "sort" channel. Channel may carry a leading "-" to sort in
// descending order.
type SortBy struct {
	Channel string
	Order   Order
}

func (Field) isAccessor()      {}
func (Const) isAccessor()      {}
func (Func) isAccessor()       {}
func (Slot) isAccessor()       {}
func (Comparator) isAccessor() {}
func (SortBy) isAccessor()     {}

// Identity returns each row itself. It is the default accessor for
// datasets of raw values.
var Identity = Func(func(d interface{}, i int) interface{} { return d })

// Channels maps channel names to accessors. A missing or nil entry
// means the channel is absent.
type Channels map[string]Accessor

// Has reports whether channel name is present.
func (c Channels) Has(name string) bool {
	return c[name] != nil
}

// Clone returns a copy of c without absent channels.
func (c Channels) Clone() Channels {
	nc := make(Channels, len(c))
	for k, v := range c {
		if v != nil {
			nc[k] = v
		}
	}
	return nc
}

// Names returns the names of the present channels in sorted order.
func (c Channels) Names() []string {
	names := make([]string, 0, len(c))
	for k, v := range c {
		if v != nil {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}
