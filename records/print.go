// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package records

import (
	"encoding/csv"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/aclements/go-plotstat/channel"
)

// Fprint writes t to w as an aligned text table. Columns whose values
// are all numbers are right aligned.
func Fprint(w io.Writer, t *Table) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateColumns = false

	header := make(table.Row, len(t.Columns))
	var configs []table.ColumnConfig
	for i, col := range t.Columns {
		header[i] = col
		if numericColumn(t, col) {
			configs = append(configs, table.ColumnConfig{Number: i + 1, Align: text.AlignRight})
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, r := range t.Records {
		row := make(table.Row, len(t.Columns))
		for i, col := range t.Columns {
			row[i] = r.Cells[col].RawValue
		}
		tw.AppendRow(row)
	}

	_, err := io.WriteString(w, tw.Render()+"\n")
	return err
}

func numericColumn(t *Table, col string) bool {
	seen := false
	for _, r := range t.Records {
		v := r.Cells[col].Value
		if v == nil {
			continue
		}
		if _, ok := channel.Number(v); !ok {
			return false
		}
		seen = true
	}
	return seen
}

// WriteCSV writes t to w in the format read by Parse.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	fields := make([]string, len(t.Columns))
	for _, r := range t.Records {
		for i, col := range t.Columns {
			fields[i] = r.Cells[col].RawValue
		}
		if err := cw.Write(fields); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
