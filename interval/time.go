// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interval

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// A Unit is a calendar unit.
type Unit int

const (
	Millisecond Unit = iota
	Second
	Minute
	Hour
	Day
	Week
	Month
	Year
)

var unitNames = [...]string{"millisecond", "second", "minute", "hour", "day", "week", "month", "year"}

func (u Unit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Calendar is a TimeInterval aligned to a calendar unit in a given
// location. The zero value is not useful; use NewCalendar or Parse.
type Calendar struct {
	unit    Unit
	weekday time.Weekday // first day of the week, for Week
	every   int          // bucket width in units; always >= 1
	loc     *time.Location
}

// NewCalendar returns the interval of one unit in loc. Weeks start on
// Sunday.
func NewCalendar(unit Unit, loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{unit: unit, weekday: time.Sunday, every: 1, loc: loc}
}

// Weekly returns the week interval starting on day in loc.
func Weekly(day time.Weekday, loc *time.Location) *Calendar {
	c := NewCalendar(Week, loc)
	c.weekday = day
	return c
}

// Every returns an interval whose buckets span k units of c, aligned
// to the unit's field (for example, every 15 minutes starts on :00,
// :15, :30 and :45). Day buckets restart each month and week buckets
// are counted from the epoch. k must be positive.
func (c *Calendar) Every(k int) *Calendar {
	if k < 1 {
		panic("interval: Every count must be positive")
	}
	c2 := *c
	c2.every = c.every * k
	return &c2
}

// Unit returns the calendar unit of c.
func (c *Calendar) Unit() Unit { return c.unit }

// floor1 rounds t down to one unit.
func (c *Calendar) floor1(t time.Time) time.Time {
	t = t.In(c.loc)
	y, mo, d := t.Date()
	switch c.unit {
	case Millisecond:
		return time.Date(y, mo, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1e6*1e6, c.loc)
	case Second:
		return time.Date(y, mo, d, t.Hour(), t.Minute(), t.Second(), 0, c.loc)
	case Minute:
		return time.Date(y, mo, d, t.Hour(), t.Minute(), 0, 0, c.loc)
	case Hour:
		return time.Date(y, mo, d, t.Hour(), 0, 0, 0, c.loc)
	case Day:
		return time.Date(y, mo, d, 0, 0, 0, 0, c.loc)
	case Week:
		back := (int(t.Weekday()) - int(c.weekday) + 7) % 7
		return time.Date(y, mo, d-back, 0, 0, 0, 0, c.loc)
	case Month:
		return time.Date(y, mo, 1, 0, 0, 0, 0, c.loc)
	case Year:
		return time.Date(y, 1, 1, 0, 0, 0, 0, c.loc)
	}
	panic("interval: bad unit " + c.unit.String())
}

// offset1 moves t by step units.
func (c *Calendar) offset1(t time.Time, step int) time.Time {
	t = t.In(c.loc)
	switch c.unit {
	case Millisecond:
		return t.Add(time.Duration(step) * time.Millisecond)
	case Second:
		return t.Add(time.Duration(step) * time.Second)
	case Minute:
		return t.Add(time.Duration(step) * time.Minute)
	case Hour:
		return t.Add(time.Duration(step) * time.Hour)
	case Day:
		return t.AddDate(0, 0, step)
	case Week:
		return t.AddDate(0, 0, 7*step)
	case Month:
		return t.AddDate(0, step, 0)
	case Year:
		return t.AddDate(step, 0, 0)
	}
	panic("interval: bad unit " + c.unit.String())
}

// field returns the value tested for divisibility by every. t must
// already be floored to one unit.
func (c *Calendar) field(t time.Time) int {
	switch c.unit {
	case Millisecond:
		return int(t.UnixNano() / 1e6)
	case Second:
		return t.Second()
	case Minute:
		return t.Minute()
	case Hour:
		return t.Hour()
	case Day:
		return t.Day() - 1
	case Week:
		epoch := c.floor1(time.Date(1970, 1, 1, 0, 0, 0, 0, c.loc))
		return int(math.Round(t.Sub(epoch).Hours() / (7 * 24)))
	case Month:
		return int(t.Month()) - 1
	case Year:
		return t.Year()
	}
	return 0
}

func (c *Calendar) ok(t time.Time) bool {
	f := c.field(t) % c.every
	return f == 0
}

func (c *Calendar) Floor(t time.Time) time.Time {
	t = c.floor1(t)
	if c.every == 1 {
		return t
	}
	if c.unit == Millisecond {
		ms := t.UnixNano() / 1e6
		ms -= mod(ms, int64(c.every))
		return time.Unix(0, ms*1e6).In(c.loc)
	}
	if c.unit == Year {
		y := t.Year()
		y -= int(mod(int64(y), int64(c.every)))
		return time.Date(y, 1, 1, 0, 0, 0, 0, c.loc)
	}
	for !c.ok(t) {
		t = c.floor1(c.offset1(t, -1))
	}
	return t
}

func (c *Calendar) Offset(t time.Time, step int) time.Time {
	if c.every == 1 {
		return c.offset1(t, step)
	}
	switch c.unit {
	case Millisecond, Year:
		return c.offset1(t, step*c.every)
	}
	for ; step > 0; step-- {
		t = c.offset1(t, 1)
		for !c.ok(c.floor1(t)) {
			t = c.offset1(t, 1)
		}
	}
	for ; step < 0; step++ {
		t = c.offset1(t, -1)
		for !c.ok(c.floor1(t)) {
			t = c.offset1(t, -1)
		}
	}
	return t
}

// Ceil returns the smallest bucket boundary >= t.
func (c *Calendar) Ceil(t time.Time) time.Time {
	f := c.Floor(t)
	if f.Equal(t) {
		return f
	}
	return c.Offset(f, 1)
}

func (c *Calendar) Range(lo, hi time.Time) []time.Time {
	var out []time.Time
	for t := c.Ceil(lo); t.Before(hi); t = c.Offset(t, 1) {
		out = append(out, t)
	}
	return out
}

func mod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

var intervalRE = regexp.MustCompile(`^(?:(\d+)\s*)?([a-z]+)$`)

// Parse parses a calendar interval name such as "day", "3 months",
// "week" or "monday". Names are case-insensitive and may be plural.
// "quarter" and "half" are 3 and 6 months. Buckets are in UTC.
func Parse(s string) (*Calendar, error) {
	return ParseIn(s, time.UTC)
}

// ParseIn is like Parse but aligns buckets to loc.
func ParseIn(s string, loc *time.Location) (*Calendar, error) {
	m := intervalRE.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInterval, s)
	}
	k := 1
	if m[1] != "" {
		var err error
		k, err = strconv.Atoi(m[1])
		if err != nil || k < 1 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownInterval, s)
		}
	}
	name := m[2]
	c, ok := calendarNamed(name, loc)
	if !ok && strings.HasSuffix(name, "s") {
		c, ok = calendarNamed(strings.TrimSuffix(name, "s"), loc)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInterval, s)
	}
	if k > 1 {
		c = c.Every(k)
	}
	return c, nil
}

func calendarNamed(name string, loc *time.Location) (*Calendar, bool) {
	switch name {
	case "millisecond", "ms":
		return NewCalendar(Millisecond, loc), true
	case "second":
		return NewCalendar(Second, loc), true
	case "minute":
		return NewCalendar(Minute, loc), true
	case "hour":
		return NewCalendar(Hour, loc), true
	case "day":
		return NewCalendar(Day, loc), true
	case "week":
		return NewCalendar(Week, loc), true
	case "month":
		return NewCalendar(Month, loc), true
	case "quarter":
		return NewCalendar(Month, loc).Every(3), true
	case "half":
		return NewCalendar(Month, loc).Every(6), true
	case "year":
		return NewCalendar(Year, loc), true
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if name == strings.ToLower(d.String()) {
			return Weekly(d, loc), true
		}
	}
	return nil, false
}

// unitDurations approximates each unit as a fixed duration. Months
// and years use their mean Gregorian length.
var unitDurations = map[Unit]time.Duration{
	Millisecond: time.Millisecond,
	Second:      time.Second,
	Minute:      time.Minute,
	Hour:        time.Hour,
	Day:         24 * time.Hour,
	Week:        7 * 24 * time.Hour,
	Month:       time.Duration(30.436875 * 24 * float64(time.Hour)),
	Year:        time.Duration(365.2425 * 24 * float64(time.Hour)),
}

// Duration returns the approximate length of one bucket of the named
// interval, for use as a fixed width (for example "2 days" or
// "week").
func Duration(s string) (time.Duration, error) {
	c, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return time.Duration(c.every) * unitDurations[c.unit], nil
}
