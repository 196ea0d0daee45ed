// ABOUTME: Shared helpers for CLI output formatting
// ABOUTME: Schema tables, plot listings, and string truncation
package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/edalab/eda-agent/internal/models"
)

// printSchema renders the inferred schema as an aligned table.
func printSchema(out io.Writer, schema models.SchemaDescriptor) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COLUNA\tTIPO\tMISSING\tUNIQUE\tMÉDIA\tDESVIO\tAMOSTRA")
	for _, c := range schema.Columns {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			c.Name, c.Type, c.Missing, c.Unique,
			fmtOptional(c.Mean), fmtOptional(c.Std),
			truncate(strings.Join(c.Sample, ", "), 30))
	}
	_ = w.Flush()
}

// plotNames lists the generated plot keys in stable order.
func plotNames(plots map[string][]byte) string {
	names := make([]string, 0, len(plots))
	for name := range plots {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func fmtOptional(v *float64) string {
	if v == nil {
		return "n/d"
	}
	return fmt.Sprintf("%.2f", *v)
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
