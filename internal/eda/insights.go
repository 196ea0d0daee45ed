// ABOUTME: Heuristic insight generation: stats, outliers, correlation highlight,
// ABOUTME: led by an LLM narrative; all findings persisted best-effort
package eda

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/edalab/eda-agent/internal/models"
	"github.com/edalab/eda-agent/internal/table"
)

const (
	// maxStatColumns bounds the per-column heuristics (stats, outliers).
	maxStatColumns = 3
	// maxCorrColumns bounds the correlation scan.
	maxCorrColumns = 6
	// maxHeuristicsInPrompt bounds the heuristic insights embedded in the
	// narrative request.
	maxHeuristicsInPrompt = 6
	// maxErrChars bounds the error text carried in the fallback marker.
	maxErrChars = 200
)

// InsightBatch is the ordered result of one generation run.
type InsightBatch struct {
	Insights []string
	Plots    map[string][]byte
	Schema   models.SchemaDescriptor
}

// InsightGenerator orchestrates schema inference, outlier detection, and
// correlation analysis into an ordered list of findings, prefixed by an
// LLM narrative.
type InsightGenerator struct {
	gen      NarrativeGenerator
	store    DatasetStore
	renderer Renderer
	log      *logrus.Logger
}

// NewInsightGenerator creates an InsightGenerator. The renderer may be
// nil, in which case no plots are produced.
func NewInsightGenerator(gen NarrativeGenerator, store DatasetStore, renderer Renderer, log *logrus.Logger) *InsightGenerator {
	if log == nil {
		log = logrus.New()
	}
	return &InsightGenerator{gen: gen, store: store, renderer: renderer, log: log}
}

// Generate produces the insight batch for a dataset. The narrative always
// leads; heuristic findings follow in fixed order. Plot and persistence
// failures never abort the run.
func (g *InsightGenerator) Generate(ctx context.Context, datasetID string, t *table.Table) (*InsightBatch, error) {
	schema := InferSchema(t)
	numericCols := t.NumericColumns()

	var insights []string
	plots := make(map[string][]byte)

	// 1. Descriptive statistics for the first numeric columns.
	statCols := numericCols
	if len(statCols) > maxStatColumns {
		statCols = statCols[:maxStatColumns]
	}
	for _, col := range statCols {
		desc, _ := schema.Column(col)
		insights = append(insights, fmt.Sprintf(
			"Coluna '%s': média=%s, mediana=%s, desvio padrão=%s, missing=%d.",
			col, fmtStat(desc.Mean), fmtStat(desc.Median), fmtStat(desc.Std), desc.Missing))

		if g.renderer != nil {
			c, _ := t.Column(col)
			if png, err := g.renderer.Histogram(c.Floats(), "Histograma: "+col); err == nil {
				plots["hist_"+col] = png
			} else {
				g.log.WithError(err).WithField("column", col).Warn("histogram render failed, plot omitted")
			}
		}
	}

	// 2. Outlier summaries for the same columns.
	for _, col := range statCols {
		c, _ := t.Column(col)
		report, err := DetectOutliers(c.Floats())
		if err != nil {
			continue
		}
		if report.Count > 0 {
			insights = append(insights, fmt.Sprintf(
				"A coluna '%s' possui %d outliers (limites %.2f / %.2f).",
				col, report.Count, report.Lower, report.Upper))
		}
	}

	// 3. Correlation highlight over the first numeric columns.
	if len(numericCols) >= 2 {
		corrCols := numericCols
		if len(corrCols) > maxCorrColumns {
			corrCols = corrCols[:maxCorrColumns]
		}
		if _, best, err := Correlate(t, corrCols); err == nil && best != nil {
			insights = append(insights, fmt.Sprintf(
				"As colunas '%s' e '%s' têm correlação absoluta alta (r=%.2f).",
				best.ColA, best.ColB, best.Abs))
		}
	}

	// 4. Narrative request; the result (or a fallback marker) leads.
	narrative := g.narrate(ctx, schema, insights)
	insights = append([]string{narrative}, insights...)

	// 5. Persist everything; failure must not swallow the result.
	now := time.Now()
	for _, text := range insights {
		ins := &models.Insight{
			InsightID: uuid.NewString(),
			DatasetID: datasetID,
			CreatedAt: now,
			Text:      text,
			Important: false,
		}
		if err := g.store.AppendInsight(ins); err != nil {
			g.log.WithError(err).WithField("dataset_id", datasetID).Warn("insight persistence failed")
		}
	}

	return &InsightBatch{Insights: insights, Plots: plots, Schema: schema}, nil
}

// narrate asks the external generator for an executive summary of the
// schema and heuristic findings, substituting a fallback marker on failure.
func (g *InsightGenerator) narrate(ctx context.Context, schema models.SchemaDescriptor, heuristics []string) string {
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		schemaJSON = []byte("{}")
	}
	top := heuristics
	if len(top) > maxHeuristicsInPrompt {
		top = top[:maxHeuristicsInPrompt]
	}
	topJSON, err := json.Marshal(top)
	if err != nil {
		topJSON = []byte("[]")
	}

	prompt := fmt.Sprintf(
		"Você é um analista de dados. Resuma em até 5 pontos acionáveis os resultados a seguir e indique 2 riscos/limitações.\nResumo estatístico: %s\nInsights detectados por heurística: %s\n",
		schemaJSON, topJSON)

	text, err := g.gen.Generate(ctx, prompt)
	if err != nil {
		g.log.WithError(err).Warn("narrative generation failed, using fallback marker")
		return fmt.Sprintf("[LLM-fallback] não foi possível gerar narrativa: %s",
			truncateChars(err.Error(), maxErrChars))
	}
	return "Narrativa LLM: " + text
}

// fmtStat renders an optional statistic deterministically; undefined
// values read "n/d" and are never shown as zero.
func fmtStat(v *float64) string {
	if v == nil {
		return "n/d"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
