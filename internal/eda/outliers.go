// ABOUTME: IQR-based outlier detection over a numeric column
// ABOUTME: Quartiles use linear interpolation between closest ranks
package eda

import (
	"fmt"
	"math"
	"sort"

	"github.com/edalab/eda-agent/internal/models"
)

// maxOutlierExamples caps the example values carried in a report.
const maxOutlierExamples = 5

// DetectOutliers computes IQR fences over the non-missing values and
// reports every value strictly outside them. Values must be non-empty.
func DetectOutliers(values []float64) (models.OutlierReport, error) {
	if len(values) == 0 {
		return models.OutlierReport{}, fmt.Errorf("%w: no values for outlier detection", ErrInsufficientData)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	report := models.OutlierReport{Lower: lower, Upper: upper}
	for _, v := range values {
		if v < lower || v > upper {
			report.Count++
			if len(report.Examples) < maxOutlierExamples {
				report.Examples = append(report.Examples, v)
			}
		}
	}
	return report, nil
}

// quantile interpolates linearly between the closest ranks of a sorted
// slice (the inclusive method: position q*(n-1)).
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
