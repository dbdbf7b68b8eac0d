// Copyright 2023 The bidalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table holds flat, column-named tables read from and written to
// delimited text. Column names are case-sensitive.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
)

// Table is an ordered collection of rows under a fixed set of columns.
// Row order is preserved exactly as read.
type Table struct {
	cols []string
	idx  map[string]int
	rows [][]string
}

// New returns an empty table with the given columns.
func New(cols ...string) *Table {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[c] = i
	}
	return &Table{cols: cols, idx: idx}
}

// ReadCSV reads a table from CSV data. The first record is the header.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input, header row required")
	}
	if err != nil {
		return nil, err
	}

	t := New(header...)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

// Append adds one row. The row length must match the column count.
func (t *Table) Append(row ...string) error {
	if len(row) != len(t.cols) {
		return fmt.Errorf("row has %d fields, table has %d columns", len(row), len(t.cols))
	}
	t.rows = append(t.rows, row)
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the column names in order.
func (t *Table) Columns() []string { return t.cols }

// Has reports whether the table has the named column.
func (t *Table) Has(col string) bool {
	_, ok := t.idx[col]
	return ok
}

// Missing returns the subset of cols absent from the table, in the
// given order.
func (t *Table) Missing(cols ...string) []string {
	var missing []string
	for _, c := range cols {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// String returns the cell at (row, col), or "" when the column is absent.
func (t *Table) String(row int, col string) string {
	i, ok := t.idx[col]
	if !ok {
		return ""
	}
	return t.rows[row][i]
}

// Decimal parses the cell at (row, col) as a decimal number. An absent
// column or empty cell yields zero.
func (t *Table) Decimal(row int, col string) (decimal.Decimal, error) {
	s := t.String(row, col)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("row %d, column %q: %w", row, col, err)
	}
	return d, nil
}

// Int parses the cell at (row, col) as an integer. An absent column or
// empty cell yields zero.
func (t *Table) Int(row int, col string) (int64, error) {
	s := t.String(row, col)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d, column %q: %w", row, col, err)
	}
	return n, nil
}

// WriteCSV writes the table as CSV, header first.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.cols); err != nil {
		return err
	}
	for _, row := range t.rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
