// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package channel

import "fmt"

// Dataset is a sequence of rows together with the channels that
// describe how to read them.
//
// The caller must not modify rows after handing them to a Dataset.
type Dataset struct {
	// Data is the rows of this dataset.
	Data []interface{}

	// Channels maps channel names to accessors on Data.
	Channels Channels

	// Sorted indicates that the order of Data is meaningful and
	// consumers should not impose their own ordinal order.
	Sorted bool

	// slots holds synthetic columns. slots[s][i] is the value of
	// Slot(s) for row i.
	slots [][]interface{}
}

// New returns a Dataset over data with the given channels. channels
// may be nil.
func New(data []interface{}, channels Channels) *Dataset {
	if channels == nil {
		channels = Channels{}
	}
	return &Dataset{Data: data, Channels: channels}
}

// Len returns the number of rows in ds.
func (ds *Dataset) Len() int {
	return len(ds.Data)
}

// Clone returns a shallow copy of ds. The copy has its own Data
// slice, channel map and slot list, so it can be extended without
// affecting ds. Rows and slot contents are shared.
func (ds *Dataset) Clone() *Dataset {
	nds := &Dataset{
		Data:     append([]interface{}(nil), ds.Data...),
		Channels: ds.Channels.Clone(),
		Sorted:   ds.Sorted,
		slots:    append([][]interface{}(nil), ds.slots...),
	}
	return nds
}

// AddSlot adds a synthetic column to ds and returns the accessor for
// it. len(values) must equal ds.Len().
func (ds *Dataset) AddSlot(values []interface{}) Slot {
	if len(values) != len(ds.Data) {
		panic(fmt.Sprintf("slot with %d values added to dataset with %d rows", len(values), len(ds.Data)))
	}
	ds.slots = append(ds.slots, values)
	return Slot(len(ds.slots) - 1)
}

// AddFloats is like AddSlot for a column of float64s.
func (ds *Dataset) AddFloats(values []float64) Slot {
	col := make([]interface{}, len(values))
	for i, v := range values {
		col[i] = v
	}
	return ds.AddSlot(col)
}

// Select returns a new Dataset whose rows are ds's rows at the given
// indexes, in that order. Synthetic columns are reordered with the
// rows.
func (ds *Dataset) Select(index []int) *Dataset {
	nds := &Dataset{
		Data:     make([]interface{}, len(index)),
		Channels: ds.Channels.Clone(),
		Sorted:   ds.Sorted,
		slots:    make([][]interface{}, len(ds.slots)),
	}
	for j, i := range index {
		nds.Data[j] = ds.Data[i]
	}
	for s, col := range ds.slots {
		ncol := make([]interface{}, len(index))
		for j, i := range index {
			ncol[j] = col[i]
		}
		nds.slots[s] = ncol
	}
	return nds
}

// Index returns the identity index [0, ds.Len()).
func (ds *Dataset) Index() []int {
	index := make([]int, len(ds.Data))
	for i := range index {
		index[i] = i
	}
	return index
}

// Value resolves channel name for row i. It returns nil if the
// channel is absent or the row has no such field.
func (ds *Dataset) Value(name string, i int) interface{} {
	return ds.Resolve(ds.Channels[name], i)
}

// Resolve evaluates accessor a on row i.
func (ds *Dataset) Resolve(a Accessor, i int) interface{} {
	switch a := a.(type) {
	case Field:
		return Lookup(ds.Data[i], string(a))
	case Const:
		return a.Value
	case Func:
		return a(ds.Data[i], i)
	case Slot:
		return ds.slots[a][i]
	case SortBy:
		return ds.Value(a.Channel, i)
	}
	return nil
}

// Values resolves channel name for every row. It returns nil if the
// channel is absent.
func (ds *Dataset) Values(name string) []interface{} {
	a := ds.Channels[name]
	if a == nil {
		return nil
	}
	return ds.ResolveAll(a)
}

// ResolveAll evaluates accessor a on every row.
func (ds *Dataset) ResolveAll(a Accessor) []interface{} {
	out := make([]interface{}, len(ds.Data))
	for i := range ds.Data {
		out[i] = ds.Resolve(a, i)
	}
	return out
}

// Floats resolves channel name for every row and converts the values
// with Number. Values that are not numbers become NaN.
func (ds *Dataset) Floats(name string) []float64 {
	vals := ds.Values(name)
	if vals == nil {
		return nil
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = Float(v)
	}
	return out
}
