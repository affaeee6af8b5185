// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package records reads and writes delimited text tables.
//
// A table file has a header line naming its columns followed by one
// record per line. Fields are separated by commas, or by tabs if the
// header contains a tab and no comma. Lines starting with "#" are
// comments.
package records

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNoHeader        = errors.New("missing header line")
	ErrDuplicateColumn = errors.New("duplicate column")
)

// Table is a sequence of records with a fixed set of columns.
type Table struct {
	// Columns lists the column names in input order.
	Columns []string

	// Records is the records of this table, in input order.
	Records []*Record
}

// Record is a single line of a table file.
type Record struct {
	// Line is the line number of this record in its input, or 0
	// if it was not parsed from a file.
	Line int

	// Cells maps column names to values. A record has a cell for
	// every column of its table.
	Cells map[string]*Cell
}

// Cell is a single value of a record.
type Cell struct {
	// Value is the parsed value of this cell. An empty cell
	// always has a nil Value.
	Value interface{}

	// RawValue is the value of this cell exactly as written in
	// the file.
	RawValue string
}

// Parse parses a table file from r.
//
// In the returned Table, RawValue is set, but Value is always nil.
// Use ParseValues to convert raw values to structured types.
func Parse(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	comma := ','
	if head := peekLine(br); strings.Contains(head, "\t") && !strings.Contains(head, ",") {
		comma = '\t'
	}

	cr := csv.NewReader(br)
	cr.Comma = comma
	cr.Comment = '#'
	cr.TrimLeadingSpace = comma == ','

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	} else if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for i, col := range header {
		col = strings.TrimSpace(col)
		if col == "" {
			col = fmt.Sprintf("column %d", i+1)
		}
		if seen[col] {
			return nil, fmt.Errorf("%w %q", ErrDuplicateColumn, col)
		}
		seen[col] = true
		header[i] = col
	}

	t := &Table{Columns: header, Records: []*Record{}}
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		rec := &Record{Line: line, Cells: make(map[string]*Cell, len(header))}
		for i, col := range header {
			rec.Cells[col] = &Cell{RawValue: strings.TrimSpace(fields[i])}
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

// peekLine returns the first non-comment line of br without
// consuming it.
func peekLine(br *bufio.Reader) string {
	buf, _ := br.Peek(br.Size())
	for _, line := range strings.Split(string(buf), "\n") {
		if !strings.HasPrefix(line, "#") {
			return line
		}
	}
	return ""
}

// ValueParser is a function that parses a string value into a
// structured type or returns an error if the string cannot be parsed.
type ValueParser func(string) (interface{}, error)

// timeLayouts are the layouts tried by ParseTime, in order.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01",
}

// ParseTime parses s as a timestamp or date in one of several common
// layouts. Times without a zone are in UTC.
func ParseTime(s string) (interface{}, error) {
	var err error
	for _, layout := range timeLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, err
}

// DefaultValueParsers is the default sequence of value parsers used
// by ParseValues if no parsers are specified.
var DefaultValueParsers = []ValueParser{
	func(s string) (interface{}, error) { return strconv.Atoi(s) },
	func(s string) (interface{}, error) { return strconv.ParseFloat(s, 64) },
	ParseTime,
	func(s string) (interface{}, error) { return strconv.ParseBool(s) },
}

// ParseValues parses the raw values of t into structured types using
// best-effort pattern-based parsing.
//
// If all of the non-empty raw values of a column can be parsed by one
// of the valueParsers, ParseValues sets the parsed values to the
// results of that ValueParser. If multiple ValueParsers can parse all
// of the values, it uses the earliest such parser in the valueParsers
// list. Columns no parser accepts keep their raw strings.
//
// If valueParsers is nil, it uses DefaultValueParsers.
func ParseValues(t *Table, valueParsers []ValueParser) {
	if valueParsers == nil {
		valueParsers = DefaultValueParsers
	}

	for _, col := range t.Columns {
		good := false
	tryParsers:
		for _, vp := range valueParsers {
			good = true
		tryValues:
			for _, r := range t.Records {
				c := r.Cells[col]
				c.Value = nil
				if c.RawValue == "" {
					continue
				}
				res, err := vp(c.RawValue)
				if err != nil {
					// Parse error. Fail this parser.
					good = false
					break tryValues
				}
				c.Value = res
			}

			if good {
				break tryParsers
			}
		}
		if !good {
			// All of the value parsers failed. Fall back
			// to strings.
			for _, r := range t.Records {
				c := r.Cells[col]
				c.Value = nil
				if c.RawValue != "" {
					c.Value = c.RawValue
				}
			}
		}
	}
}

// Rows returns the records of t as maps from column names to parsed
// values, suitable as the rows of a channel.Dataset.
func (t *Table) Rows() []interface{} {
	rows := make([]interface{}, len(t.Records))
	for i, r := range t.Records {
		row := make(map[string]interface{}, len(r.Cells))
		for col, c := range r.Cells {
			row[col] = c.Value
		}
		rows[i] = row
	}
	return rows
}

// New returns an empty table with the given columns.
func New(columns ...string) *Table {
	return &Table{Columns: columns, Records: []*Record{}}
}

// Append adds a record to t holding values, one per column. Each
// cell's RawValue is its value formatted with Format.
func (t *Table) Append(values ...interface{}) {
	if len(values) != len(t.Columns) {
		panic(fmt.Sprintf("records: %d values appended to table with %d columns", len(values), len(t.Columns)))
	}
	r := &Record{Cells: make(map[string]*Cell, len(values))}
	for i, col := range t.Columns {
		r.Cells[col] = &Cell{Value: values[i], RawValue: Format(values[i])}
	}
	t.Records = append(t.Records, r)
}

// Format formats v the way ParseValues will parse it back: nil is
// empty, floats use the shortest exact representation, and times use
// RFC 3339.
func Format(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	}
	return fmt.Sprint(v)
}

// Concat returns a table holding the records of ts in order. Its
// columns are the union of their columns, in order of first
// appearance. Records get an empty cell for columns their table
// lacks.
func Concat(ts ...*Table) *Table {
	out := &Table{Records: []*Record{}}
	seen := make(map[string]bool)
	for _, t := range ts {
		for _, col := range t.Columns {
			if !seen[col] {
				seen[col] = true
				out.Columns = append(out.Columns, col)
			}
		}
	}
	for _, t := range ts {
		for _, r := range t.Records {
			nr := &Record{Line: r.Line, Cells: make(map[string]*Cell, len(out.Columns))}
			for _, col := range out.Columns {
				if c, ok := r.Cells[col]; ok {
					nr.Cells[col] = c
				} else {
					nr.Cells[col] = &Cell{}
				}
			}
			out.Records = append(out.Records, nr)
		}
	}
	return out
}
