// ABOUTME: 2-D k-means clustering over a pair of numeric columns
// ABOUTME: Uses pairwise-complete rows; fails when rows < requested clusters
package eda

import (
	"fmt"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/edalab/eda-agent/internal/models"
	"github.com/edalab/eda-agent/internal/table"
)

// Cluster partitions the (xCol, yCol) points into k clusters. Rows where
// either column is missing are excluded before clustering.
func Cluster(t *table.Table, xCol, yCol string, k int) (*models.ClusterResult, error) {
	if k < 2 {
		return nil, fmt.Errorf("%w: cluster count must be at least 2, got %d", ErrMalformedInput, k)
	}
	for _, name := range []string{xCol, yCol} {
		c, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: column %q not found", ErrMalformedInput, name)
		}
		if c.Kind != models.TypeNumeric {
			return nil, fmt.Errorf("%w: column %q is not numeric", ErrMalformedInput, name)
		}
	}

	xs, ys := t.PairedFloats(xCol, yCol)
	if len(xs) < k {
		return nil, fmt.Errorf("%w: %d rows for %d clusters", ErrInsufficientData, len(xs), k)
	}

	obs := make(clusters.Observations, len(xs))
	for i := range xs {
		obs[i] = clusters.Coordinates{xs[i], ys[i]}
	}

	km := kmeans.New()
	partition, err := km.Partition(obs, k)
	if err != nil {
		return nil, fmt.Errorf("%w: k-means partition: %v", ErrInsufficientData, err)
	}

	result := &models.ClusterResult{
		K:       k,
		Labels:  make([]int, len(obs)),
		Centers: make([][2]float64, len(partition)),
	}
	for i, c := range partition {
		result.Centers[i] = [2]float64{c.Center[0], c.Center[1]}
	}
	for i, o := range obs {
		result.Labels[i] = partition.Nearest(o)
	}
	return result, nil
}
