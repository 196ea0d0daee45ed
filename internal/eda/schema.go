// ABOUTME: Schema inference: per-column type class, missingness, cardinality,
// ABOUTME: sample values, and summary statistics for numeric/temporal columns
package eda

import (
	"math"
	"math/rand/v2"

	"github.com/montanaflynn/stats"

	"github.com/edalab/eda-agent/internal/models"
	"github.com/edalab/eda-agent/internal/table"
)

// sampleSize is the number of representative values kept per column.
const sampleSize = 3

// InferSchema derives a descriptor for every column of the table,
// preserving column order. It is pure and deterministic except for the
// random sample selection.
func InferSchema(t *table.Table) models.SchemaDescriptor {
	desc := models.SchemaDescriptor{Columns: make([]models.ColumnDescriptor, 0, t.NumCols())}
	for i := range t.Columns {
		desc.Columns = append(desc.Columns, describeColumn(&t.Columns[i]))
	}
	return desc
}

func describeColumn(c *table.Column) models.ColumnDescriptor {
	d := models.ColumnDescriptor{
		Name:    c.Name,
		Type:    c.Kind,
		Missing: c.MissingCount(),
		Unique:  c.UniqueCount(),
		Sample:  sampleValues(c.Texts(), sampleSize),
	}

	switch c.Kind {
	case models.TypeNumeric:
		vals := c.Floats()
		// All statistics stay undefined for a fully missing column.
		d.Min = statOf(stats.Min, vals)
		d.Max = statOf(stats.Max, vals)
		d.Mean = statOf(stats.Mean, vals)
		d.Median = statOf(stats.Median, vals)
		d.Std = statOf(stats.StandardDeviationSample, vals)
	case models.TypeTemporal:
		times := c.Times()
		if len(times) > 0 {
			minT, maxT := times[0], times[0]
			for _, ts := range times[1:] {
				if ts.Before(minT) {
					minT = ts
				}
				if ts.After(maxT) {
					maxT = ts
				}
			}
			minStr := table.FormatTime(minT)
			maxStr := table.FormatTime(maxT)
			d.MinTime = &minStr
			d.MaxTime = &maxStr
		}
	}
	return d
}

// statOf applies a statistic to the values, returning nil when it is
// undefined (empty input, or a single value for the sample std).
func statOf(fn func(stats.Float64Data) (float64, error), vals []float64) *float64 {
	if len(vals) == 0 {
		return nil
	}
	v, err := fn(vals)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// sampleValues draws up to n values at random without replacement. With n
// or fewer values it returns them all in storage order.
func sampleValues(vals []string, n int) []string {
	if len(vals) <= n {
		out := make([]string, len(vals))
		copy(out, vals)
		return out
	}
	out := make([]string, 0, n)
	for _, idx := range rand.Perm(len(vals))[:n] {
		out = append(out, vals[idx])
	}
	return out
}
