// ABOUTME: Shared test helpers for the analysis core
// ABOUTME: CSV fixtures and an in-memory fake dataset store
package eda

import (
	"testing"

	"github.com/edalab/eda-agent/internal/models"
	"github.com/edalab/eda-agent/internal/table"
)

// mustTable parses CSV content or fails the test.
func mustTable(t *testing.T, csv string) *table.Table {
	t.Helper()
	tbl, err := table.Load([]byte(csv))
	if err != nil {
		t.Fatalf("table.Load() error = %v", err)
	}
	return tbl
}

// fakeStore is an in-memory DatasetStore that can simulate failures.
type fakeStore struct {
	datasets map[string]*models.Dataset
	queries  []models.QueryRecord
	insights []models.Insight

	failAppendQuery   error
	failAppendInsight error
}

func newFakeStore() *fakeStore {
	return &fakeStore{datasets: make(map[string]*models.Dataset)}
}

func (f *fakeStore) UpsertDataset(d *models.Dataset) error {
	f.datasets[d.DatasetID] = d
	return nil
}

func (f *fakeStore) GetDataset(datasetID string) (*models.Dataset, error) {
	return f.datasets[datasetID], nil
}

func (f *fakeStore) ListDatasets() ([]models.Dataset, error) {
	var out []models.Dataset
	for _, d := range f.datasets {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeStore) AppendQuery(q *models.QueryRecord) error {
	if f.failAppendQuery != nil {
		return f.failAppendQuery
	}
	f.queries = append(f.queries, *q)
	return nil
}

func (f *fakeStore) AppendInsight(ins *models.Insight) error {
	if f.failAppendInsight != nil {
		return f.failAppendInsight
	}
	f.insights = append(f.insights, *ins)
	return nil
}

func (f *fakeStore) ListInsights(datasetID string, newestFirst bool) ([]models.Insight, error) {
	var out []models.Insight
	for _, ins := range f.insights {
		if ins.DatasetID == datasetID {
			out = append(out, ins)
		}
	}
	if newestFirst {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (f *fakeStore) SetInsightImportant(insightID string, important bool) error {
	for i := range f.insights {
		if f.insights[i].InsightID == insightID {
			f.insights[i].Important = important
		}
	}
	return nil
}

func (f *fakeStore) RecentPairs(datasetID string, limit int) ([]models.MemoryEntry, error) {
	// Newest first, like the SQLite store.
	var out []models.MemoryEntry
	for i := len(f.queries) - 1; i >= 0 && len(out) < limit; i-- {
		if f.queries[i].DatasetID == datasetID {
			out = append(out, models.MemoryEntry{
				Question: f.queries[i].Question,
				Answer:   f.queries[i].ResponseSummary,
			})
		}
	}
	return out, nil
}
