// ABOUTME: Pairwise-complete Pearson correlation matrix and best-pair scan
// ABOUTME: Only strictly positive maximum magnitudes yield a notable pair
package eda

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/edalab/eda-agent/internal/models"
	"github.com/edalab/eda-agent/internal/table"
)

// Correlate computes the Pearson correlation matrix over the given numeric
// columns, pairwise-complete (each cell uses only rows where both columns
// are non-missing). The best pair is the off-diagonal cell with the
// largest absolute value, first occurrence in row-major order over the
// upper triangle winning ties; it is nil when the maximum magnitude is
// not strictly positive.
func Correlate(t *table.Table, cols []string) (models.CorrelationMatrix, *models.BestPair, error) {
	if len(cols) < 2 {
		return models.CorrelationMatrix{}, nil, fmt.Errorf("%w: correlation requires at least 2 numeric columns, got %d", ErrInsufficientData, len(cols))
	}
	for _, name := range cols {
		c, ok := t.Column(name)
		if !ok {
			return models.CorrelationMatrix{}, nil, fmt.Errorf("%w: column %q not found", ErrMalformedInput, name)
		}
		if c.Kind != models.TypeNumeric {
			return models.CorrelationMatrix{}, nil, fmt.Errorf("%w: column %q is not numeric", ErrMalformedInput, name)
		}
	}

	n := len(cols)
	m := models.CorrelationMatrix{Columns: cols, Values: make([][]float64, n)}
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		ci, _ := t.Column(cols[i])
		if isConstant(ci.Floats()) {
			m.Values[i][i] = math.NaN()
		} else {
			m.Values[i][i] = 1
		}
		for j := i + 1; j < n; j++ {
			r := pairwisePearson(t, cols[i], cols[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}

	var best *models.BestPair
	maxAbs := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := m.Values[i][j]
			if math.IsNaN(v) {
				continue
			}
			if abs := math.Abs(v); abs > maxAbs {
				maxAbs = abs
				best = &models.BestPair{ColA: cols[i], ColB: cols[j], R: v, Abs: abs}
			}
		}
	}
	return m, best, nil
}

// pairwisePearson correlates two columns over their pairwise-complete
// rows, returning NaN when the coefficient is undefined (fewer than two
// shared rows or a constant side).
func pairwisePearson(t *table.Table, a, b string) float64 {
	xs, ys := t.PairedFloats(a, b)
	if len(xs) < 2 || isConstant(xs) || isConstant(ys) {
		return math.NaN()
	}
	r, err := stats.Pearson(xs, ys)
	if err != nil {
		return math.NaN()
	}
	return r
}

func isConstant(vals []float64) bool {
	if len(vals) < 2 {
		return true
	}
	for _, v := range vals[1:] {
		if v != vals[0] {
			return false
		}
	}
	return true
}
