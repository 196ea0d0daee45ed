// ABOUTME: Derived analysis results: outlier reports, correlation matrices,
// ABOUTME: cluster assignments, and resolved answers
package models

// OutlierReport describes IQR-fenced outliers for a numeric column.
// Count is defined over non-missing values; Examples holds up to 5
// offending values in encounter order.
type OutlierReport struct {
	Count    int       `json:"count"`
	Lower    float64   `json:"lower"`
	Upper    float64   `json:"upper"`
	Examples []float64 `json:"examples,omitempty"`
}

// CorrelationMatrix is a symmetric Pearson correlation matrix over a set
// of numeric columns. Values[i][j] is the coefficient between Columns[i]
// and Columns[j]; the diagonal is 1, or NaN for a constant column.
type CorrelationMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// At returns the coefficient between the i-th and j-th columns.
func (m CorrelationMatrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// BestPair is the off-diagonal pair with the largest absolute correlation.
type BestPair struct {
	ColA string  `json:"col_a"`
	ColB string  `json:"col_b"`
	R    float64 `json:"r"`
	Abs  float64 `json:"abs"`
}

// ClusterResult holds a 2-D k-means partition: one label per clustered
// row and the k cluster centers as (x, y) pairs.
type ClusterResult struct {
	K       int          `json:"k"`
	Labels  []int        `json:"labels"`
	Centers [][2]float64 `json:"centers"`
}

// Answer is the result of resolving a natural-language question.
// PlotPNG is optional and may be nil.
type Answer struct {
	Text    string `json:"answer"`
	Source  string `json:"source"`
	PlotPNG []byte `json:"-"`
}
