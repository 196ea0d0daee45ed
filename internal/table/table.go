// ABOUTME: In-memory tabular data: ordered named columns of typed cells
// ABOUTME: Cells are numeric, temporal, text, or missing; columns share one length
package table

import (
	"time"

	"github.com/edalab/eda-agent/internal/models"
)

// CellKind identifies the value held by a cell.
type CellKind int

const (
	CellMissing CellKind = iota
	CellNumber
	CellTime
	CellText
)

// Cell is a single typed value. Text always carries the original encoded
// form for non-missing cells, regardless of Kind.
type Cell struct {
	Kind CellKind
	Num  float64
	Time time.Time
	Text string
}

// Column is an ordered sequence of cells under a unique name. Kind is the
// column-level classification derived at load time.
type Column struct {
	Name  string
	Kind  models.ColumnType
	Cells []Cell
}

// Table is an ordered sequence of equal-length columns.
type Table struct {
	Columns []Column
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// NumCols returns the column count.
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column, or false if absent.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// NumericColumns returns the names of numeric columns in table order.
func (t *Table) NumericColumns() []string {
	var names []string
	for _, c := range t.Columns {
		if c.Kind == models.TypeNumeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// PairedFloats returns the values of columns a and b restricted to rows
// where both are non-missing (pairwise-complete).
func (t *Table) PairedFloats(a, b string) ([]float64, []float64) {
	ca, okA := t.Column(a)
	cb, okB := t.Column(b)
	if !okA || !okB {
		return nil, nil
	}
	var xs, ys []float64
	for i := range ca.Cells {
		if ca.Cells[i].Kind == CellNumber && cb.Cells[i].Kind == CellNumber {
			xs = append(xs, ca.Cells[i].Num)
			ys = append(ys, cb.Cells[i].Num)
		}
	}
	return xs, ys
}

// Floats returns the column's non-missing numeric values in row order.
func (c *Column) Floats() []float64 {
	var vals []float64
	for _, cell := range c.Cells {
		if cell.Kind == CellNumber {
			vals = append(vals, cell.Num)
		}
	}
	return vals
}

// Texts returns the column's non-missing values as text, in row order.
func (c *Column) Texts() []string {
	var vals []string
	for _, cell := range c.Cells {
		if cell.Kind != CellMissing {
			vals = append(vals, cell.Text)
		}
	}
	return vals
}

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.Kind == CellMissing {
			n++
		}
	}
	return n
}

// UniqueCount returns the number of distinct non-missing values, compared
// by their text encoding.
func (c *Column) UniqueCount() int {
	seen := make(map[string]struct{})
	for _, cell := range c.Cells {
		if cell.Kind != CellMissing {
			seen[cell.Text] = struct{}{}
		}
	}
	return len(seen)
}

// Times returns the column's non-missing temporal values in row order.
func (c *Column) Times() []time.Time {
	var vals []time.Time
	for _, cell := range c.Cells {
		if cell.Kind == CellTime {
			vals = append(vals, cell.Time)
		}
	}
	return vals
}
