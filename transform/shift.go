// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aclements/go-plotstat/channel"
	"github.com/aclements/go-plotstat/interval"
)

var shiftRE = regexp.MustCompile(`^([+-])?(\d+)? ?([a-z]+)$`)

// shifter moves one value.
type shifter func(v interface{}) interface{}

// parseShift parses a shift: a number, or a calendar offset such as
// "+2 months", "-1 week" or "day".
func parseShift(spec interface{}) (shifter, error) {
	if s, ok := spec.(string); ok {
		return parseCalendarShift(s)
	}
	n, ok := channel.Number(spec)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShift, spec)
	}
	return func(v interface{}) interface{} {
		if t, ok := v.(time.Time); ok {
			return t.Add(millis(n))
		}
		if x, ok := channel.Number(v); ok {
			return x + n
		}
		return v
	}, nil
}

func parseCalendarShift(s string) (shifter, error) {
	m := shiftRE.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return nil, fmt.Errorf("%w %q", ErrInvalidShift, s)
	}
	step := 1
	if m[2] != "" {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("%w %q", ErrInvalidShift, s)
		}
		step = n
	}
	if m[1] == "-" {
		step = -step
	}
	cal, err := interval.Parse(m[3])
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidShift, s, err)
	}
	return func(v interface{}) interface{} {
		switch v := v.(type) {
		case nil:
			return nil
		case time.Time:
			return cal.Offset(v, step)
		}
		if x, ok := channel.Number(v); ok {
			return toMillis(cal.Offset(fromMillis(x), step))
		}
		return v
	}, nil
}

// ShiftX shifts the x channels (see MapX) of ds. shift is a number
// added to each value (as milliseconds for times), a calendar offset
// string such as "+1 month", or a map from channel names to such
// shifts to shift only those channels.
func ShiftX(ds *channel.Dataset, shift interface{}) (*channel.Dataset, error) {
	return shiftAxis(ds, shift, "x", "x1", "x2")
}

// ShiftY is the y counterpart of ShiftX.
func ShiftY(ds *channel.Dataset, shift interface{}) (*channel.Dataset, error) {
	return shiftAxis(ds, shift, "y", "y1", "y2")
}

func shiftAxis(ds *channel.Dataset, shift interface{}, names ...string) (*channel.Dataset, error) {
	shifts := make(map[string]interface{})
	switch spec := shift.(type) {
	case map[string]interface{}:
		shifts = spec
	case map[string]string:
		for k, v := range spec {
			shifts[k] = v
		}
	default:
		for _, name := range names {
			if ds.Channels.Has(name) {
				shifts[name] = shift
			}
		}
		if len(shifts) == 0 {
			ds = ds.Clone()
			ds.Channels[names[0]] = channel.Identity
			shifts[names[0]] = shift
		}
	}

	keys := make([]string, 0, len(shifts))
	for k := range shifts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	nds := ds.Clone()
	for _, name := range keys {
		f, err := parseShift(shifts[name])
		if err != nil {
			return nil, fmt.Errorf("channel %s: %w", name, err)
		}
		in, err := inputChannel(ds, name)
		if err != nil {
			return nil, err
		}
		vals := ds.ResolveAll(in)
		for i, v := range vals {
			vals[i] = f(v)
		}
		nds.Channels[name] = nds.AddSlot(vals)
	}
	return nds, nil
}
