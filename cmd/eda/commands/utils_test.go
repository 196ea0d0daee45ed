// ABOUTME: Tests for CLI output helpers
// ABOUTME: Schema tables, plot listings, and truncation

package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/edalab/eda-agent/internal/models"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"this is too long", 10, "this is..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.maxLen); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.maxLen, got, tc.want)
		}
	}
}

func TestFmtOptional(t *testing.T) {
	if got := fmtOptional(nil); got != "n/d" {
		t.Errorf("fmtOptional(nil) = %q, want n/d", got)
	}
	v := 3.14159
	if got := fmtOptional(&v); got != "3.14" {
		t.Errorf("fmtOptional(3.14159) = %q, want 3.14", got)
	}
}

func TestPlotNamesSorted(t *testing.T) {
	plots := map[string][]byte{
		"hist_x":       {1},
		"box_x":        {2},
		"corr_heatmap": {3},
	}
	got := plotNames(plots)
	if got != "box_x, corr_heatmap, hist_x" {
		t.Errorf("plotNames() = %q, want sorted listing", got)
	}
}

func TestPrintSchema(t *testing.T) {
	mean := 20.0
	schema := models.SchemaDescriptor{Columns: []models.ColumnDescriptor{
		{Name: "idade", Type: models.TypeNumeric, Missing: 0, Unique: 3, Mean: &mean, Sample: []string{"10", "20"}},
		{Name: "nome", Type: models.TypeCategorical, Unique: 3},
	}}

	var out bytes.Buffer
	printSchema(&out, schema)

	s := out.String()
	for _, want := range []string{"COLUNA", "idade", "numeric", "nome", "categorical", "20.00", "n/d"} {
		if !strings.Contains(s, want) {
			t.Errorf("printSchema output missing %q:\n%s", want, s)
		}
	}
}
