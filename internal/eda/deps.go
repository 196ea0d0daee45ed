// ABOUTME: Collaborator contracts consumed by the analysis core
// ABOUTME: Narrative generation, plot rendering, and the dataset store
package eda

import (
	"context"

	"github.com/edalab/eda-agent/internal/models"
)

// NarrativeGenerator is the external free-text oracle: prompt in, text
// out, or failure. Implementations must honor context cancellation.
type NarrativeGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Renderer produces PNG images for analysis results. Every method may
// fail; callers treat failures as recoverable and omit the plot.
type Renderer interface {
	Histogram(values []float64, title string) ([]byte, error)
	Boxplot(values []float64, title string) ([]byte, error)
	Scatter(xs, ys []float64, labels []int, title string) ([]byte, error)
	Heatmap(m models.CorrelationMatrix) ([]byte, error)
}

// DatasetStore is the durable registry of dataset metadata, query history,
// and insights. The core performs only single independent appends or keyed
// updates through it.
type DatasetStore interface {
	UpsertDataset(d *models.Dataset) error
	GetDataset(datasetID string) (*models.Dataset, error)
	ListDatasets() ([]models.Dataset, error)
	AppendQuery(q *models.QueryRecord) error
	AppendInsight(ins *models.Insight) error
	ListInsights(datasetID string, newestFirst bool) ([]models.Insight, error)
	SetInsightImportant(insightID string, important bool) error
	RecentPairs(datasetID string, limit int) ([]models.MemoryEntry, error)
}
