// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regression

import (
	"fmt"
	"sort"
)

// Options configures a model constructed by New. Zero fields take the
// model's defaults.
type Options struct {
	X, Y Accessor

	// Domain, if non-nil, fixes the x extent of the fit.
	Domain *[2]float64

	// Order is the degree of a "poly" model.
	Order int

	// Base is the logarithm base of a "log" model.
	Base float64

	// Bandwidth is the window fraction of a "loess" model.
	Bandwidth float64
}

var kinds = map[string]func(o Options) Model{
	"linear": func(o Options) Model {
		r := NewLinear().WithX(o.X).WithY(o.Y)
		if o.Domain != nil {
			r.WithDomain(o.Domain[0], o.Domain[1])
		}
		return r
	},
	"quad": func(o Options) Model {
		r := NewQuadratic().WithX(o.X).WithY(o.Y)
		if o.Domain != nil {
			r.WithDomain(o.Domain[0], o.Domain[1])
		}
		return r
	},
	"poly": func(o Options) Model {
		r := NewPolynomial().WithX(o.X).WithY(o.Y)
		if o.Order > 0 {
			r.WithOrder(o.Order)
		}
		if o.Domain != nil {
			r.WithDomain(o.Domain[0], o.Domain[1])
		}
		return r
	},
	"exp": func(o Options) Model {
		r := NewExponential().WithX(o.X).WithY(o.Y)
		if o.Domain != nil {
			r.WithDomain(o.Domain[0], o.Domain[1])
		}
		return r
	},
	"log": func(o Options) Model {
		r := NewLogarithmic().WithX(o.X).WithY(o.Y)
		if o.Base != 0 {
			r.WithBase(o.Base)
		}
		if o.Domain != nil {
			r.WithDomain(o.Domain[0], o.Domain[1])
		}
		return r
	},
	"pow": func(o Options) Model {
		r := NewPower().WithX(o.X).WithY(o.Y)
		if o.Domain != nil {
			r.WithDomain(o.Domain[0], o.Domain[1])
		}
		return r
	},
	"loess": func(o Options) Model {
		r := NewLOESS().WithX(o.X).WithY(o.Y)
		if o.Bandwidth != 0 {
			r.WithBandwidth(o.Bandwidth)
		}
		return r
	},
}

// Kinds returns the names accepted by New.
func Kinds() []string {
	var names []string
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// New returns the model named kind: "linear", "quad", "poly", "exp",
// "log", "pow" or "loess".
func New(kind string, o Options) (Model, error) {
	mk, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, kind)
	}
	return mk(o), nil
}
