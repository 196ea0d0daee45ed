// ABOUTME: CSV loading with delimiter sniffing and column type inference
// ABOUTME: Tolerates ragged rows and falls back to a best-effort comma parse
package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/edalab/eda-agent/internal/models"
)

// missingTokens are cell encodings treated as absent values, compared
// case-insensitively after trimming.
var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"nan":  {},
	"null": {},
}

// timeFormat is the canonical text representation for temporal values.
const timeFormat = "2006-01-02 15:04:05"

// Load parses CSV bytes into a Table. The field delimiter is sniffed from
// the first 10 lines (semicolon, then tab, else comma); if parsing with
// the sniffed delimiter fails, a best-effort comma parse is attempted
// before giving up.
func Load(content []byte) (*Table, error) {
	delim := sniffDelimiter(content)

	records, err := readAll(content, delim)
	if err != nil && delim != ',' {
		records, err = readAll(content, ',')
	}
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parsing csv: no rows")
	}

	header := uniqueNames(records[0])
	raw := make([][]string, len(header))
	for _, rec := range records[1:] {
		for i := range header {
			if i < len(rec) {
				raw[i] = append(raw[i], rec[i])
			} else {
				raw[i] = append(raw[i], "")
			}
		}
	}

	return fromRaw(header, raw), nil
}

// Concat combines tables by column-name union in first-seen order, the
// way the upload endpoint concatenates multiple files. Cells absent from
// a source table are missing in the result.
func Concat(tables ...*Table) *Table {
	var names []string
	seen := make(map[string]bool)
	for _, t := range tables {
		for _, c := range t.Columns {
			if !seen[c.Name] {
				seen[c.Name] = true
				names = append(names, c.Name)
			}
		}
	}

	raw := make([][]string, len(names))
	for _, t := range tables {
		rows := t.NumRows()
		for i, name := range names {
			col, ok := t.Column(name)
			for r := 0; r < rows; r++ {
				if ok && col.Cells[r].Kind != CellMissing {
					raw[i] = append(raw[i], col.Cells[r].Text)
				} else {
					raw[i] = append(raw[i], "")
				}
			}
		}
	}

	return fromRaw(names, raw)
}

func readAll(content []byte, delim rune) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

// sniffDelimiter inspects the first 10 lines for a semicolon, then a tab,
// defaulting to comma.
func sniffDelimiter(content []byte) rune {
	lines := strings.Split(string(content), "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	for _, line := range lines {
		if strings.Contains(line, ";") {
			return ';'
		}
	}
	for _, line := range lines {
		if strings.Contains(line, "\t") {
			return '\t'
		}
	}
	return ','
}

// uniqueNames disambiguates duplicate header names by appending .1, .2, …
func uniqueNames(header []string) []string {
	counts := make(map[string]int)
	names := make([]string, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i)
		}
		if n := counts[name]; n > 0 {
			names[i] = fmt.Sprintf("%s.%d", name, n)
		} else {
			names[i] = name
		}
		counts[name]++
	}
	return names
}

// fromRaw classifies each column and builds typed cells from raw strings.
func fromRaw(names []string, raw [][]string) *Table {
	t := &Table{Columns: make([]Column, len(names))}
	for i, name := range names {
		t.Columns[i] = buildColumn(name, raw[i])
	}
	return t
}

func buildColumn(name string, raw []string) Column {
	allNumeric := true
	allTemporal := true
	nonMissing := 0

	type parsed struct {
		missing bool
		num     float64
		isNum   bool
		t       time.Time
		isTime  bool
		text    string
	}
	cells := make([]parsed, len(raw))

	for i, v := range raw {
		text := strings.TrimSpace(v)
		if _, ok := missingTokens[strings.ToLower(text)]; ok {
			cells[i] = parsed{missing: true}
			continue
		}
		nonMissing++
		p := parsed{text: text}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			p.num = f
			p.isNum = true
			allTemporal = false
		} else {
			allNumeric = false
			if ts, err := parseTime(text); err == nil {
				p.t = ts
				p.isTime = true
			} else {
				allTemporal = false
			}
		}
		cells[i] = parsed{missing: false, num: p.num, isNum: p.isNum, t: p.t, isTime: p.isTime, text: text}
	}

	// A fully missing column is treated as numeric with undefined stats.
	kind := models.TypeCategorical
	switch {
	case nonMissing == 0 || allNumeric:
		kind = models.TypeNumeric
	case allTemporal:
		kind = models.TypeTemporal
	}

	col := Column{Name: name, Kind: kind, Cells: make([]Cell, len(raw))}
	for i, p := range cells {
		switch {
		case p.missing:
			col.Cells[i] = Cell{Kind: CellMissing}
		case kind == models.TypeNumeric && p.isNum:
			col.Cells[i] = Cell{Kind: CellNumber, Num: p.num, Text: p.text}
		case kind == models.TypeTemporal && p.isTime:
			col.Cells[i] = Cell{Kind: CellTime, Time: p.t, Text: p.text}
		default:
			col.Cells[i] = Cell{Kind: CellText, Text: p.text}
		}
	}
	return col
}

// parseTime wraps dateparse and recovers from panics on pathological
// inputs, reporting them as parse failures.
func parseTime(text string) (t time.Time, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parsing time %q: %v", text, r)
		}
	}()
	return dateparse.ParseAny(text)
}

// FormatTime renders a temporal value in the canonical text form used for
// schema bounds.
func FormatTime(t time.Time) string {
	return t.Format(timeFormat)
}
