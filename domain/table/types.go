package table

import (
	"math"
	"time"
)

// Kind is the inferred type of a column
type Kind string

const (
	KindNumeric  Kind = "numeric"
	KindText     Kind = "text"
	KindDatetime Kind = "datetime"
)

// Column holds one named column. Values are float64, string, time.Time or
// nil for a missing cell.
type Column struct {
	Name   string `json:"name"`
	Kind   Kind   `json:"kind"`
	Values []any  `json:"-"`
}

// Table is a column-oriented rows × named columns structure with a row index.
type Table struct {
	Columns []Column
	Index   []int
}

// New builds a table from columns and assigns a 0..n-1 row index.
func New(columns []Column) *Table {
	rows := 0
	if len(columns) > 0 {
		rows = len(columns[0].Values)
	}
	index := make([]int, rows)
	for i := range index {
		index[i] = i
	}
	return &Table{Columns: columns, Index: index}
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Index)
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// ColumnNames returns column names in table order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// NumericColumns returns the names of numeric columns in table order
func (t *Table) NumericColumns() []string {
	var names []string
	for _, col := range t.Columns {
		if col.Kind == KindNumeric {
			names = append(names, col.Name)
		}
	}
	return names
}

// Column looks up a column by name
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// Floats returns the numeric values of the column with missing cells as NaN.
func (c *Column) Floats() []float64 {
	out := make([]float64, len(c.Values))
	for i, v := range c.Values {
		f, ok := v.(float64)
		if !ok {
			f = math.NaN()
		}
		out[i] = f
	}
	return out
}

// Present returns the non-missing numeric values of the column.
func (c *Column) Present() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if f, ok := v.(float64); ok && !math.IsNaN(f) {
			out = append(out, f)
		}
	}
	return out
}

// InferKind classifies values the way a dataframe reader does: an empty
// column is text, a column whose non-missing values are all float64 (or that
// has rows but no values at all) is numeric, and all time.Time is datetime.
func InferKind(values []any) Kind {
	if len(values) == 0 {
		return KindText
	}
	numeric, datetime, present := 0, 0, 0
	for _, v := range values {
		switch v.(type) {
		case nil:
			continue
		case float64:
			numeric++
		case time.Time:
			datetime++
		}
		present++
	}
	switch {
	case present == 0 || numeric == present:
		return KindNumeric
	case datetime == present:
		return KindDatetime
	default:
		return KindText
	}
}
