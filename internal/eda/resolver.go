// ABOUTME: Natural-language query resolution: closed-form aggregation intents
// ABOUTME: with LLM delegation as the fallback path
package eda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"

	"github.com/edalab/eda-agent/internal/models"
	"github.com/edalab/eda-agent/internal/table"
)

const (
	// DefaultSampleRows is the number of leading rows serialized into a
	// delegated prompt's context bundle.
	DefaultSampleRows = 5
	// DefaultMaxContextChars bounds the serialized context embedded in a
	// delegated prompt.
	DefaultMaxContextChars = 4000
)

// intentPattern binds an aggregation operator to its question pattern.
// The column name is the last capture group.
type intentPattern struct {
	op    string
	label string
	re    *regexp.Regexp
}

// intents is evaluated in declared order; the first structural match wins
// even if a later pattern would also match. The order is a contract.
var intents = []intentPattern{
	{"mean", "média", regexp.MustCompile(`(?i)(m[eé]dia|m[eé]dio) da coluna (\w+)`)},
	{"max", "máximo", regexp.MustCompile(`(?i)(maior|m[aá]ximo) da coluna (\w+)`)},
	{"min", "mínimo", regexp.MustCompile(`(?i)(menor|m[ií]nimo) da coluna (\w+)`)},
	{"sum", "soma", regexp.MustCompile(`(?i)(soma|total) da coluna (\w+)`)},
	{"count", "contagem", regexp.MustCompile(`(?i)(quantidade|contagem|n[úu]mero de) (\w+)`)},
}

// QueryResolver answers free-text questions about a table, deterministically
// when an aggregation intent matches a numeric column and via the external
// generator otherwise.
type QueryResolver struct {
	gen    NarrativeGenerator
	store  DatasetStore
	memory *ConversationMemory
	log    *logrus.Logger

	// MemoryLimit, SampleRows, and MaxContextChars tune the delegated
	// prompt; zero values fall back to the defaults.
	MemoryLimit     int
	SampleRows      int
	MaxContextChars int
}

// NewQueryResolver creates a QueryResolver over the given collaborators.
func NewQueryResolver(gen NarrativeGenerator, store DatasetStore, log *logrus.Logger) *QueryResolver {
	if log == nil {
		log = logrus.New()
	}
	return &QueryResolver{
		gen:    gen,
		store:  store,
		memory: NewConversationMemory(store),
		log:    log,
	}
}

// Resolve answers the question. Closed-form answers are recomputed per
// request and never delegated; anything else goes to the external
// generator, whose failure is propagated. Every resolution is recorded.
func (r *QueryResolver) Resolve(ctx context.Context, datasetID string, t *table.Table, question string) (*models.Answer, error) {
	if answer := r.tryClosedForm(datasetID, t, question); answer != nil {
		return answer, nil
	}
	return r.delegate(ctx, datasetID, t, question)
}

// tryClosedForm walks the intent table in declared order and computes the
// matched aggregation when the bound column exists and is numeric. A
// structural match over a non-numeric or absent column falls through to
// delegation.
func (r *QueryResolver) tryClosedForm(datasetID string, t *table.Table, question string) *models.Answer {
	for _, intent := range intents {
		m := intent.re.FindStringSubmatch(question)
		if m == nil {
			continue
		}
		colName := m[len(m)-1]
		col, ok := t.Column(colName)
		if !ok || col.Kind != models.TypeNumeric {
			return nil
		}

		val, err := aggregate(intent.op, col.Floats())
		if err != nil {
			return nil
		}

		text := fmt.Sprintf("A %s da coluna %s é %.2f.", intent.label, colName, val)
		r.record(datasetID, question, text, text, models.SourceClosedForm)
		return &models.Answer{Text: text, Source: models.SourceClosedForm}
	}
	return nil
}

// delegate builds a context bundle (schema, sample rows, recent memory)
// and defers to the external generator. Generator failure is surfaced to
// the caller; the exchange is recorded on success.
func (r *QueryResolver) delegate(ctx context.Context, datasetID string, t *table.Table, question string) (*models.Answer, error) {
	limit := r.MemoryLimit
	if limit <= 0 {
		limit = DefaultMemoryLimit
	}
	history, err := r.memory.Recent(datasetID, limit)
	if err != nil {
		r.log.WithError(err).Warn("conversation memory unavailable, delegating without history")
		history = nil
	}

	prompt := r.buildPrompt(t, question, history)

	text, err := r.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerator, err)
	}

	r.record(datasetID, question, text, text, models.SourceGenerator)
	return &models.Answer{Text: text, Source: models.SourceGenerator}, nil
}

// buildPrompt embeds the question, recent history (oldest first), and a
// size-bounded context serialization of schema plus sample rows.
func (r *QueryResolver) buildPrompt(t *table.Table, question string, history []models.MemoryEntry) string {
	var b strings.Builder
	if len(history) > 0 {
		b.WriteString("Histórico recente:\n")
		for _, entry := range history {
			b.WriteString("P: ")
			b.WriteString(entry.Question)
			b.WriteString("\nR: ")
			b.WriteString(entry.Answer)
			b.WriteString("\n")
		}
	}

	maxChars := r.MaxContextChars
	if maxChars <= 0 {
		maxChars = DefaultMaxContextChars
	}
	sampleRows := r.SampleRows
	if sampleRows <= 0 {
		sampleRows = DefaultSampleRows
	}

	b.WriteString("Pergunta: ")
	b.WriteString(question)
	b.WriteString("\nContexto: ")
	b.WriteString(truncateChars(buildContext(t, sampleRows), maxChars))
	return b.String()
}

// buildContext serializes the schema and the first n rows as a JSON
// object, preserving column order.
func buildContext(t *table.Table, n int) string {
	schemaJSON, err := json.Marshal(InferSchema(t))
	if err != nil {
		schemaJSON = []byte("{}")
	}

	var sample bytes.Buffer
	sample.WriteByte('{')
	for i := range t.Columns {
		if i > 0 {
			sample.WriteByte(',')
		}
		c := &t.Columns[i]
		vals := make([]interface{}, 0, n)
		for j := 0; j < len(c.Cells) && j < n; j++ {
			if c.Cells[j].Kind == table.CellMissing {
				vals = append(vals, nil)
			} else {
				vals = append(vals, c.Cells[j].Text)
			}
		}
		kb, _ := json.Marshal(c.Name)
		vb, err := json.Marshal(vals)
		if err != nil {
			vb = []byte("[]")
		}
		sample.Write(kb)
		sample.WriteByte(':')
		sample.Write(vb)
	}
	sample.WriteByte('}')

	return fmt.Sprintf(`{"schema":%s,"sample":%s}`, schemaJSON, sample.Bytes())
}

// record persists the exchange; persistence failure never blocks the
// answer.
func (r *QueryResolver) record(datasetID, question, summary, raw, source string) {
	rec := &models.QueryRecord{
		QueryID:         uuid.NewString(),
		DatasetID:       datasetID,
		Question:        question,
		ResponseSummary: truncateChars(summary, models.MaxResponseChars),
		RawResponse:     truncateChars(raw, models.MaxResponseChars),
		CreatedAt:       time.Now(),
		Source:          source,
	}
	if err := r.store.AppendQuery(rec); err != nil {
		r.log.WithError(err).WithFields(logrus.Fields{
			"dataset_id": datasetID,
			"source":     source,
		}).Warn("query record persistence failed")
	}
}

// aggregate computes the closed-form operators over non-missing values.
func aggregate(op string, vals []float64) (float64, error) {
	if op == "count" {
		return float64(len(vals)), nil
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("%w: no values in column", ErrInsufficientData)
	}
	switch op {
	case "mean":
		return stats.Mean(vals)
	case "max":
		return stats.Max(vals)
	case "min":
		return stats.Min(vals)
	case "sum":
		return stats.Sum(vals)
	}
	return 0, fmt.Errorf("%w: unknown operator %q", ErrMalformedInput, op)
}
