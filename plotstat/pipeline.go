// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	log "github.com/sirupsen/logrus"

	"github.com/aclements/go-plotstat/channel"
	"github.com/aclements/go-plotstat/internal/random"
	"github.com/aclements/go-plotstat/regression"
	"github.com/aclements/go-plotstat/transform"
)

var errUnknownStep = errors.New("unknown step")

// A step is one stage of a transform pipeline.
type step struct {
	text string
	run  func(ds *channel.Dataset) (*channel.Dataset, error)
}

// stepArgs are the words of a step after the operation. Words of the
// form key=value are options; the rest are positional.
type stepArgs struct {
	pos  []string
	opts map[string]string
}

var optionRE = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9]*)=(.*)$`)

func splitArgs(words []string) stepArgs {
	a := stepArgs{opts: map[string]string{}}
	for _, w := range words {
		if m := optionRE.FindStringSubmatch(w); m != nil {
			a.opts[m[1]] = m[2]
		} else {
			a.pos = append(a.pos, w)
		}
	}
	return a
}

// check returns an error if a has more than maxPos positional
// arguments or any option not in allowed.
func (a stepArgs) check(maxPos int, allowed ...string) error {
	if len(a.pos) > maxPos {
		return fmt.Errorf("unexpected argument %q", a.pos[maxPos])
	}
	for k := range a.opts {
		if !contains(allowed, k) {
			return fmt.Errorf("unknown option %q", k)
		}
	}
	return nil
}

// axis returns the first positional argument, which must be x or y.
func (a stepArgs) axis() (string, error) {
	if len(a.pos) == 0 {
		return "", errors.New("missing axis")
	}
	switch ax := strings.ToLower(a.pos[0]); ax {
	case "x", "y":
		return ax, nil
	}
	return "", fmt.Errorf("bad axis %q", a.pos[0])
}

func (a stepArgs) intOpt(key string, def int) (int, error) {
	s, ok := a.opts[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("option %s: %w", key, err)
	}
	return n, nil
}

func (a stepArgs) floatOpt(key string, def float64) (float64, error) {
	s, ok := a.opts[key]
	if !ok {
		return def, nil
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("option %s: %w", key, err)
	}
	return x, nil
}

func (a stepArgs) flag(key string) (bool, error) {
	s, ok := a.opts[key]
	if !ok {
		return contains(a.pos, key), nil
	}
	return strconv.ParseBool(s)
}

// source returns the random source selected by the seed option.
func (a stepArgs) source() (random.Source, error) {
	if _, ok := a.opts["seed"]; !ok {
		return nil, nil
	}
	seed, err := a.floatOpt("seed", 0)
	if err != nil {
		return nil, err
	}
	return random.NewLCG(seed), nil
}

// amount returns option key as a number if it parses as one, or
// otherwise as a duration string such as "1 day".
func (a stepArgs) amount(key string) interface{} {
	s, ok := a.opts[key]
	if !ok {
		return nil
	}
	return parseScalar(s)
}

// parseStep parses one pipeline step. A step is a shell-quoted
// command line: an operation followed by its arguments.
//
//	filter COLUMN
//	sort [-]KEY [reverse]
//	shuffle [seed=N]
//	reverse
//	map CHANNEL=MAPPER...
//	normalize AXIS [BASIS]
//	normalize-parallel AXIS [BASIS]
//	window AXIS k=N [anchor=A] [reduce=R] [strict]
//	interval AXIS INTERVAL
//	shift AXIS SHIFT | shift CHANNEL=SHIFT...
//	jitter AXIS [type=T] [width=W] [std=S] [seed=N]
//	regression AXIS [type=T] [order=N] [base=B] [span=S] [confidence=C] [samples=N]
//
// A sort KEY naming a channel sorts by that channel's values;
// otherwise it names a column.
func parseStep(text string) (*step, error) {
	words, err := shellquote.Split(text)
	if err != nil {
		return nil, fmt.Errorf("step %q: %w", text, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("empty step")
	}
	op, a := strings.ToLower(words[0]), splitArgs(words[1:])
	run, err := stepFuncs(op, a)
	if err != nil {
		return nil, fmt.Errorf("step %q: %w", text, err)
	}
	return &step{text: text, run: run}, nil
}

type stepFunc = func(ds *channel.Dataset) (*channel.Dataset, error)

func stepFuncs(op string, a stepArgs) (stepFunc, error) {
	switch op {
	case "filter":
		if err := a.check(1); err != nil {
			return nil, err
		}
		return func(ds *channel.Dataset) (*channel.Dataset, error) {
			if len(a.pos) > 0 {
				ds = ds.Clone()
				ds.Channels["filter"] = channel.Field(a.pos[0])
			}
			return transform.Filter(ds), nil
		}, nil

	case "sort":
		if err := a.check(2, "reverse"); err != nil {
			return nil, err
		}
		if len(a.pos) == 0 {
			return nil, errors.New("missing sort key")
		}
		if len(a.pos) == 2 && a.pos[1] != "reverse" {
			return nil, fmt.Errorf("unexpected argument %q", a.pos[1])
		}
		reverse, err := a.flag("reverse")
		if err != nil {
			return nil, err
		}
		key := a.pos[0]
		return func(ds *channel.Dataset) (*channel.Dataset, error) {
			ds = ds.Clone()
			if ds.Channels.Has(strings.TrimPrefix(key, "-")) {
				ds.Channels["sort"] = channel.SortBy{Channel: key}
			} else {
				ds.Channels["sort"] = channel.Field(key)
			}
			return transform.Sort(ds, transform.SortOptions{Reverse: reverse}), nil
		}, nil

	case "shuffle":
		if err := a.check(0, "seed"); err != nil {
			return nil, err
		}
		src, err := a.source()
		if err != nil {
			return nil, err
		}
		return func(ds *channel.Dataset) (*channel.Dataset, error) {
			return transform.Shuffle(ds, transform.ShuffleOptions{Source: src}), nil
		}, nil

	case "reverse":
		if err := a.check(0); err != nil {
			return nil, err
		}
		return func(ds *channel.Dataset) (*channel.Dataset, error) {
			return transform.Reverse(ds), nil
		}, nil

	case "map":
		if len(a.pos) > 0 || len(a.opts) == 0 {
			return nil, errors.New("want CHANNEL=MAPPER arguments")
		}
		outputs := make(map[string]interface{})
		for ch, m := range a.opts {
			if _, err := transform.MaybeMapper(m); err != nil {
				return nil, err
			}
			outputs[ch] = m
		}
		return func(ds *channel.Dataset) (*channel.Dataset, error) {
			return transform.Map(ds, outputs)
		}, nil

	case "normalize", "normalize-parallel":
		if err := a.check(2); err != nil {
			return nil, err
		}
		ax, err := a.axis()
		if err != nil {
			return nil, err
		}
		var basis interface{}
		if len(a.pos) > 1 {
			basis = a.pos[1]
		}
		if _, err := transform.MaybeBasis(basis); err != nil {
			return nil, err
		}
		f := map[string]func(*channel.Dataset, interface{}) (*channel.Dataset, error){
			"normalize x":          transform.NormalizeX,
			"normalize y":          transform.NormalizeY,
			"normalize-parallel x": transform.NormalizeParallelX,
			"normalize-parallel y": transform.NormalizeParallelY,
		}[op+" "+ax]
		return func(ds *channel.Dataset) (*channel.Dataset, error) {
			return f(ds, basis)
		}, nil

	case "window":
		if err := a.check(2, "k", "anchor", "reduce", "strict"); err != nil {
			return nil, err
		}
		if len(a.pos) == 2 && a.pos[1] != "strict" {
			return nil, fmt.Errorf("unexpected argument %q", a.pos[1])
		}
		ax, err := a.axis()
		if err != nil {
			return nil, err
		}
		k, err := a.intOpt("k", 0)
		if err != nil {
			return nil, err
		}
		strict, err := a.flag("strict")
		if err != nil {
			return nil, err
		}
		opts := transform.WindowOptions{K: k, Anchor: a.opts["anchor"], Reduce: a.opts["reduce"], Strict: strict}
		if _, err := transform.Window(opts); err != nil {
			return nil, err
		}
		f := transform.WindowX
		if ax == "y" {
			f = transform.WindowY
		}
		return func(ds *channel.Dataset) (*channel.Dataset, error) {
			return f(ds, opts)
		}, nil

	case "interval":
		if err := a.check(2); err != nil {
			return nil, err
		}
		ax, err := a.axis()
		if err != nil {
			return nil, err
		}
		if len(a.pos) < 2 {
			return nil, errors.New("missing interval")
		}
		iv := parseScalar(a.pos[1])
		f := transform.IntervalX
		if ax == "y" {
			f = transform.IntervalY
		}
		return func(ds *channel.Dataset) (*channel.Dataset, error) {
			ds = ds.Clone()
			ds.Channels["interval"] = channel.Const{Value: iv}
			return f(ds)
		}, nil

	case "shift":
		var shift interface{}
		f := transform.ShiftX
		if len(a.opts) > 0 {
			if len(a.pos) > 0 {
				return nil, errors.New("mixed axis and CHANNEL=SHIFT arguments")
			}
			shifts := make(map[string]interface{})
			for ch, s := range a.opts {
				shifts[ch] = parseScalar(s)
			}
			shift = shifts
		} else {
			if err := a.check(2); err != nil {
				return nil, err
			}
			ax, err := a.axis()
			if err != nil {
				return nil, err
			}
			if len(a.pos) < 2 {
				return nil, errors.New("missing shift")
			}
			shift = parseScalar(a.pos[1])
			if ax == "y" {
				f = transform.ShiftY
			}
		}
		return func(ds *channel.Dataset) (*channel.Dataset, error) {
			return f(ds, shift)
		}, nil

	case "jitter":
		if err := a.check(1, "type", "width", "std", "seed"); err != nil {
			return nil, err
		}
		ax, err := a.axis()
		if err != nil {
			return nil, err
		}
		src, err := a.source()
		if err != nil {
			return nil, err
		}
		opts := transform.JitterOptions{
			Type:   a.opts["type"],
			Width:  a.amount("width"),
			Std:    a.amount("std"),
			Source: src,
		}
		f := transform.JitterX
		if ax == "y" {
			f = transform.JitterY
		}
		return func(ds *channel.Dataset) (*channel.Dataset, error) {
			return f(ds, opts)
		}, nil

	case "regression":
		if err := a.check(1, "type", "order", "base", "span", "confidence", "samples"); err != nil {
			return nil, err
		}
		ax, err := a.axis()
		if err != nil {
			return nil, err
		}
		var opts transform.RegressionOptions
		opts.Type = a.opts["type"]
		if opts.Order, err = a.intOpt("order", 0); err != nil {
			return nil, err
		}
		if opts.Base, err = a.floatOpt("base", 0); err != nil {
			return nil, err
		}
		if opts.Span, err = a.floatOpt("span", 0); err != nil {
			return nil, err
		}
		if opts.Confidence, err = a.floatOpt("confidence", 0); err != nil {
			return nil, err
		}
		if opts.Samples, err = a.intOpt("samples", 0); err != nil {
			return nil, err
		}
		if opts.Type != "" && !contains(regression.Kinds(), opts.Type) {
			return nil, fmt.Errorf("%w %q", regression.ErrUnknownType, opts.Type)
		}
		if opts.Span < 0 || opts.Span > 1 {
			return nil, fmt.Errorf("span %v not in (0, 1]", opts.Span)
		}
		if opts.Base < 0 || opts.Base == 1 {
			return nil, fmt.Errorf("bad logarithm base %v", opts.Base)
		}
		if opts.Confidence < 0 || opts.Confidence >= 1 {
			return nil, fmt.Errorf("confidence %v not in [0, 1)", opts.Confidence)
		}
		f := transform.RegressionX
		if ax == "y" {
			f = transform.RegressionY
		}
		return func(ds *channel.Dataset) (*channel.Dataset, error) {
			return f(ds, opts)
		}, nil
	}
	return nil, fmt.Errorf("%w %q", errUnknownStep, op)
}

// parsePipeline parses each of texts with parseStep.
func parsePipeline(texts []string) ([]*step, error) {
	steps := make([]*step, 0, len(texts))
	for _, text := range texts {
		s, err := parseStep(text)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, nil
}

// runPipeline applies steps to ds in order.
func runPipeline(ds *channel.Dataset, steps []*step) (*channel.Dataset, error) {
	for _, s := range steps {
		var err error
		ds, err = s.run(ds)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", s.text, err)
		}
		log.WithFields(log.Fields{
			"step": s.text,
			"rows": ds.Len(),
		}).Debug("applied step")
	}
	return ds, nil
}
