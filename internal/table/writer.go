// ABOUTME: CSV serialization for tables
// ABOUTME: Writes the original cell encodings with empty strings for missing
package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// WriteCSV serializes the table as comma-separated values with a header
// row. Missing cells are written as empty fields.
func WriteCSV(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.ColumnNames()); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	rows := t.NumRows()
	record := make([]string, t.NumCols())
	for r := 0; r < rows; r++ {
		for c := range t.Columns {
			cell := t.Columns[c].Cells[r]
			if cell.Kind == CellMissing {
				record[c] = ""
			} else {
				record[c] = cell.Text
			}
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", r, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
