// ABOUTME: Service wires the analysis core to table loading, rendering,
// ABOUTME: narrative generation, and the dataset store
package eda

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/edalab/eda-agent/internal/models"
	"github.com/edalab/eda-agent/internal/table"
)

// UploadResult is the initial summary returned after registering a dataset.
type UploadResult struct {
	DatasetID string
	NRows     int
	NCols     int
	Schema    models.SchemaDescriptor
	Plots     map[string][]byte
}

// CorrelationResult pairs the matrix with its heatmap image.
type CorrelationResult struct {
	Matrix   models.CorrelationMatrix
	BestPair *models.BestPair
	PlotPNG  []byte
}

// OutlierResult pairs the report with the column's boxplot image.
type OutlierResult struct {
	Report  models.OutlierReport
	PlotPNG []byte
}

// ClusterOutput pairs the partition with its scatter plot image.
type ClusterOutput struct {
	Result  *models.ClusterResult
	PlotPNG []byte
}

// Service exposes the end-to-end EDA operations: upload, insight
// generation, question answering, outliers, correlation, and clustering.
// All state lives in the store and the CSV files under DataDir.
type Service struct {
	store    DatasetStore
	gen      NarrativeGenerator
	renderer Renderer
	log      *logrus.Logger

	dataDir  string
	insights *InsightGenerator
	resolver *QueryResolver
	memory   *ConversationMemory
}

// NewService creates a Service. The renderer may be nil to skip plots.
func NewService(store DatasetStore, gen NarrativeGenerator, renderer Renderer, dataDir string, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{
		store:    store,
		gen:      gen,
		renderer: renderer,
		log:      log,
		dataDir:  dataDir,
		insights: NewInsightGenerator(gen, store, renderer, log),
		resolver: NewQueryResolver(gen, store, log),
		memory:   NewConversationMemory(store),
	}
}

// Resolver returns the underlying query resolver for tuning.
func (s *Service) Resolver() *QueryResolver { return s.resolver }

// Memory returns the conversation memory view.
func (s *Service) Memory() *ConversationMemory { return s.memory }

// Upload parses one or more CSV payloads, concatenates them, persists the
// combined table and its metadata, and returns the initial summary with
// automatically rendered plots.
func (s *Service) Upload(name string, files ...[]byte) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files provided", ErrMalformedInput)
	}

	tables := make([]*table.Table, 0, len(files))
	for i, content := range files {
		t, err := table.Load(content)
		if err != nil {
			return nil, fmt.Errorf("%w: file %d: %v", ErrMalformedInput, i, err)
		}
		tables = append(tables, t)
	}
	combined := tables[0]
	if len(tables) > 1 {
		combined = table.Concat(tables...)
	}

	datasetID := uuid.NewString()
	path := filepath.Join(s.dataDir, datasetID+".csv")
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data dir: %v", ErrPersistence, err)
	}
	csvBytes, err := table.WriteCSV(combined)
	if err != nil {
		return nil, fmt.Errorf("%w: serializing table: %v", ErrPersistence, err)
	}
	if err := os.WriteFile(path, csvBytes, 0644); err != nil {
		return nil, fmt.Errorf("%w: writing table: %v", ErrPersistence, err)
	}

	schema := InferSchema(combined)
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		schemaJSON = []byte("{}")
	}
	ds := &models.Dataset{
		DatasetID:  datasetID,
		Name:       name,
		UploadedAt: time.Now(),
		NRows:      combined.NumRows(),
		NCols:      combined.NumCols(),
		Filepath:   path,
		SchemaJSON: string(schemaJSON),
	}
	if err := s.store.UpsertDataset(ds); err != nil {
		return nil, fmt.Errorf("%w: registering dataset: %v", ErrPersistence, err)
	}

	return &UploadResult{
		DatasetID: datasetID,
		NRows:     combined.NumRows(),
		NCols:     combined.NumCols(),
		Schema:    schema,
		Plots:     s.summaryPlots(combined),
	}, nil
}

// summaryPlots renders the upload-time charts: histogram and boxplot for
// the first numeric columns, plus a correlation heatmap when possible.
// Render failures drop the affected slot only.
func (s *Service) summaryPlots(t *table.Table) map[string][]byte {
	plots := make(map[string][]byte)
	if s.renderer == nil {
		return plots
	}

	numericCols := t.NumericColumns()
	statCols := numericCols
	if len(statCols) > maxStatColumns {
		statCols = statCols[:maxStatColumns]
	}
	for _, col := range statCols {
		c, _ := t.Column(col)
		vals := c.Floats()
		if png, err := s.renderer.Histogram(vals, "Histograma: "+col); err == nil {
			plots["hist_"+col] = png
		} else {
			s.log.WithError(err).WithField("column", col).Warn("histogram render failed")
		}
		if png, err := s.renderer.Boxplot(vals, "Boxplot: "+col); err == nil {
			plots["box_"+col] = png
		} else {
			s.log.WithError(err).WithField("column", col).Warn("boxplot render failed")
		}
	}

	if len(numericCols) >= 2 {
		corrCols := numericCols
		if len(corrCols) > maxCorrColumns {
			corrCols = corrCols[:maxCorrColumns]
		}
		if m, _, err := Correlate(t, corrCols); err == nil {
			if png, err := s.renderer.Heatmap(m); err == nil {
				plots["corr_heatmap"] = png
			} else {
				s.log.WithError(err).Warn("heatmap render failed")
			}
		}
	}
	return plots
}

// LoadTable reads a registered dataset's table from disk.
func (s *Service) LoadTable(datasetID string) (*table.Table, *models.Dataset, error) {
	ds, err := s.store.GetDataset(datasetID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: loading dataset: %v", ErrPersistence, err)
	}
	if ds == nil {
		return nil, nil, fmt.Errorf("%w: dataset %q not found", ErrMalformedInput, datasetID)
	}
	content, err := os.ReadFile(ds.Filepath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading table %s: %v", ErrMalformedInput, ds.Filepath, err)
	}
	t, err := table.Load(content)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return t, ds, nil
}

// GenerateInsights runs the insight pipeline for a dataset.
func (s *Service) GenerateInsights(ctx context.Context, datasetID string) (*InsightBatch, error) {
	t, _, err := s.LoadTable(datasetID)
	if err != nil {
		return nil, err
	}
	return s.insights.Generate(ctx, datasetID, t)
}

// Ask resolves a natural-language question against a dataset.
func (s *Service) Ask(ctx context.Context, datasetID, question string) (*models.Answer, error) {
	t, _, err := s.LoadTable(datasetID)
	if err != nil {
		return nil, err
	}
	return s.resolver.Resolve(ctx, datasetID, t, question)
}

// Outliers reports IQR outliers for one numeric column, with its boxplot.
func (s *Service) Outliers(datasetID, column string) (*OutlierResult, error) {
	t, _, err := s.LoadTable(datasetID)
	if err != nil {
		return nil, err
	}
	c, ok := t.Column(column)
	if !ok {
		return nil, fmt.Errorf("%w: column %q not found", ErrMalformedInput, column)
	}
	if c.Kind != models.TypeNumeric {
		return nil, fmt.Errorf("%w: column %q is not numeric", ErrMalformedInput, column)
	}
	report, err := DetectOutliers(c.Floats())
	if err != nil {
		return nil, err
	}

	result := &OutlierResult{Report: report}
	if s.renderer != nil {
		if png, err := s.renderer.Boxplot(c.Floats(), "Boxplot: "+column); err == nil {
			result.PlotPNG = png
		} else {
			s.log.WithError(err).WithField("column", column).Warn("boxplot render failed")
		}
	}
	return result, nil
}

// Correlation computes the correlation matrix over all numeric columns,
// with its heatmap.
func (s *Service) Correlation(datasetID string) (*CorrelationResult, error) {
	t, _, err := s.LoadTable(datasetID)
	if err != nil {
		return nil, err
	}
	m, best, err := Correlate(t, t.NumericColumns())
	if err != nil {
		return nil, err
	}

	result := &CorrelationResult{Matrix: m, BestPair: best}
	if s.renderer != nil {
		if png, err := s.renderer.Heatmap(m); err == nil {
			result.PlotPNG = png
		} else {
			s.log.WithError(err).Warn("heatmap render failed")
		}
	}
	return result, nil
}

// Clusters runs 2-D k-means over two numeric columns, with a scatter plot
// colored by cluster.
func (s *Service) Clusters(datasetID, xCol, yCol string, k int) (*ClusterOutput, error) {
	t, _, err := s.LoadTable(datasetID)
	if err != nil {
		return nil, err
	}
	result, err := Cluster(t, xCol, yCol, k)
	if err != nil {
		return nil, err
	}

	out := &ClusterOutput{Result: result}
	if s.renderer != nil {
		xs, ys := t.PairedFloats(xCol, yCol)
		title := fmt.Sprintf("%s vs %s", yCol, xCol)
		if png, err := s.renderer.Scatter(xs, ys, result.Labels, title); err == nil {
			out.PlotPNG = png
		} else {
			s.log.WithError(err).Warn("scatter render failed")
		}
	}
	return out, nil
}

// ListInsights returns a dataset's insights, newest first.
func (s *Service) ListInsights(datasetID string) ([]models.Insight, error) {
	insights, err := s.store.ListInsights(datasetID, true)
	if err != nil {
		return nil, fmt.Errorf("%w: listing insights: %v", ErrPersistence, err)
	}
	return insights, nil
}

// MarkImportant flags an insight as important. Marking twice is a no-op.
func (s *Service) MarkImportant(insightID string) error {
	if err := s.store.SetInsightImportant(insightID, true); err != nil {
		return fmt.Errorf("%w: marking insight: %v", ErrPersistence, err)
	}
	return nil
}

// ListDatasets returns all registered datasets.
func (s *Service) ListDatasets() ([]models.Dataset, error) {
	datasets, err := s.store.ListDatasets()
	if err != nil {
		return nil, fmt.Errorf("%w: listing datasets: %v", ErrPersistence, err)
	}
	return datasets, nil
}
