// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package channel

import (
	"fmt"
	"math"
	"reflect"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Lookup returns field name of row. row may be a map[string]interface{},
// any other map with string keys, a struct, or a pointer to one of
// these. Lookup returns nil if row has no such field.
func Lookup(row interface{}, name string) interface{} {
	switch row := row.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		return row[name]
	case map[string]float64:
		if v, ok := row[name]; ok {
			return v
		}
		return nil
	case map[string]string:
		if v, ok := row[name]; ok {
			return v
		}
		return nil
	}

	rv := reflect.ValueOf(row)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil
		}
		return v.Interface()
	case reflect.Struct:
		f, ok := rv.Type().FieldByName(name)
		if !ok || f.PkgPath != "" {
			return nil
		}
		return rv.FieldByIndex(f.Index).Interface()
	}
	return nil
}

// Number converts v to a float64. It accepts all integer and
// floating-point kinds (including named types) and time.Time, which
// converts to milliseconds since the Unix epoch. ok is false for nil
// and any other type.
func Number(v interface{}) (x float64, ok bool) {
	switch v := v.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case time.Time:
		return float64(v.UnixNano()) / 1e6, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// Float is like Number, but returns NaN if v is not a number.
func Float(v interface{}) float64 {
	x, ok := Number(v)
	if !ok {
		return math.NaN()
	}
	return x
}

// Defined reports whether v is a value at all: not nil and not NaN.
func Defined(v interface{}) bool {
	if v == nil {
		return false
	}
	if x, ok := v.(float64); ok && math.IsNaN(x) {
		return false
	}
	return true
}

// Finite reports whether v is a number that is neither NaN nor
// infinite.
func Finite(v interface{}) bool {
	x, ok := Number(v)
	return ok && !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Truthy reports whether v counts as true for filtering: true,
// non-zero numbers, non-empty strings and any other non-nil value.
func Truthy(v interface{}) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	}
	if x, ok := Number(v); ok {
		return x != 0 && !math.IsNaN(x)
	}
	return true
}

var collator struct {
	sync.Mutex
	c *collate.Collator
}

func compareStrings(a, b string) int {
	collator.Lock()
	defer collator.Unlock()
	if collator.c == nil {
		collator.c = collate.New(language.Und)
	}
	return collator.c.CompareString(a, b)
}

// Compare orders a and b. Numbers and times compare numerically and
// strings compare with locale-aware collation. Undefined values (nil
// or NaN) order after all defined values. Values of different kinds
// compare by their printed form.
func Compare(a, b interface{}) int {
	da, db := Defined(a), Defined(b)
	switch {
	case !da && !db:
		return 0
	case !da:
		return 1
	case !db:
		return -1
	}

	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return compareStrings(sa, sb)
		}
	}
	xa, oka := Number(a)
	xb, okb := Number(b)
	if oka && okb {
		switch {
		case math.IsNaN(xa) && math.IsNaN(xb):
			return 0
		case math.IsNaN(xa):
			return 1
		case math.IsNaN(xb):
			return -1
		case xa < xb:
			return -1
		case xa > xb:
			return 1
		}
		return 0
	}
	return compareStrings(fmt.Sprint(a), fmt.Sprint(b))
}
