// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aclements/go-plotstat/channel"
	"github.com/aclements/go-plotstat/internal/random"
	"github.com/aclements/go-plotstat/interval"
)

// JitterOptions configures JitterX and JitterY.
type JitterOptions struct {
	// Type is "uniform" (the default) or "normal".
	Type string

	// Width is the half-width of uniform noise. It is a number or
	// a duration such as "1 day", which is converted to
	// milliseconds. The default is 0.35.
	Width interface{}

	// Std is the standard deviation of normal noise, in the same
	// form as Width. The default is 0.15.
	Std interface{}

	// Source supplies random values. The default is
	// random.Default.
	Source random.Source
}

// parseAmount converts a number or duration string to a float,
// measuring durations in milliseconds.
func parseAmount(v interface{}, def float64) (float64, error) {
	switch v := v.(type) {
	case nil:
		return def, nil
	case string:
		d, err := interval.Duration(v)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidJitter, err)
		}
		return float64(d) / float64(time.Millisecond), nil
	case time.Duration:
		return float64(v) / float64(time.Millisecond), nil
	}
	if x, ok := channel.Number(v); ok {
		return x, nil
	}
	return 0, fmt.Errorf("%w: amount %v", ErrInvalidJitter, v)
}

// JitterX adds random noise to the x channel of ds. Numbers get the
// noise added directly and times get it added as milliseconds; other
// values are left unchanged. The jittered values go to a new slot, so
// jittering twice composes.
func JitterX(ds *channel.Dataset, opts JitterOptions) (*channel.Dataset, error) {
	return jitter(ds, "x", opts)
}

// JitterY is the y counterpart of JitterX.
func JitterY(ds *channel.Dataset, opts JitterOptions) (*channel.Dataset, error) {
	return jitter(ds, "y", opts)
}

func jitter(ds *channel.Dataset, name string, opts JitterOptions) (*channel.Dataset, error) {
	src := opts.Source
	if src == nil {
		src = random.Default
	}
	var noise func() float64
	switch strings.ToLower(opts.Type) {
	case "", "uniform":
		w, err := parseAmount(opts.Width, 0.35)
		if err != nil {
			return nil, err
		}
		noise = random.Uniform(src, -w, w)
	case "normal":
		std, err := parseAmount(opts.Std, 0.15)
		if err != nil {
			return nil, err
		}
		noise = random.Normal(src, 0, std)
	default:
		return nil, fmt.Errorf("%w: type %q", ErrInvalidJitter, opts.Type)
	}

	in := ds.Channels[name]
	if in == nil {
		return ds, nil
	}
	vals := ds.ResolveAll(in)
	skipped := 0
	for i, v := range vals {
		switch x := v.(type) {
		case nil:
		case time.Time:
			vals[i] = x.Add(millis(noise()))
		default:
			if f, ok := channel.Number(v); ok {
				vals[i] = f + noise()
			} else {
				skipped++
			}
		}
	}
	if skipped > 0 {
		Warning.WithFields(logrus.Fields{
			"channel": name,
			"count":   skipped,
		}).Warn("jitter left non-numeric values unchanged")
	}
	nds := ds.Clone()
	nds.Channels[name] = nds.AddSlot(vals)
	return nds, nil
}
