// ABOUTME: Insight persistence: append, list, and the important flag
// ABOUTME: Insights are never deleted by the core
package sqlite

import (
	"database/sql"
	"time"

	"github.com/edalab/eda-agent/internal/models"
)

// AppendInsight inserts an insight record.
func (s *Store) AppendInsight(ins *models.Insight) error {
	createdAt := ins.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO insights (insight_id, dataset_id, created_at, text, important)
		VALUES (?, ?, ?, ?, ?)
	`, ins.InsightID, ins.DatasetID, createdAt, ins.Text, boolToInt(ins.Important))

	return err
}

// GetInsight retrieves an insight by id, returning nil when absent.
func (s *Store) GetInsight(insightID string) (*models.Insight, error) {
	var (
		ins       models.Insight
		important int
	)

	err := s.db.QueryRow(`
		SELECT insight_id, dataset_id, created_at, text, important
		FROM insights
		WHERE insight_id = ?
	`, insightID).Scan(&ins.InsightID, &ins.DatasetID, &ins.CreatedAt, &ins.Text, &important)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ins.Important = important != 0
	return &ins, nil
}

// ListInsights returns a dataset's insights, oldest first by default or
// newest first when requested.
func (s *Store) ListInsights(datasetID string, newestFirst bool) ([]models.Insight, error) {
	order := "ASC"
	if newestFirst {
		order = "DESC"
	}

	rows, err := s.db.Query(`
		SELECT insight_id, dataset_id, created_at, text, important
		FROM insights
		WHERE dataset_id = ?
		ORDER BY created_at `+order+`
	`, datasetID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var insights []models.Insight
	for rows.Next() {
		var (
			ins       models.Insight
			important int
		)
		err := rows.Scan(&ins.InsightID, &ins.DatasetID, &ins.CreatedAt, &ins.Text, &important)
		if err != nil {
			return nil, err
		}
		ins.Important = important != 0
		insights = append(insights, ins)
	}
	return insights, rows.Err()
}

// SetInsightImportant updates an insight's important flag. The update is
// idempotent: setting the same value twice leaves the row unchanged.
func (s *Store) SetInsightImportant(insightID string, important bool) error {
	_, err := s.db.Exec(`
		UPDATE insights SET important = ? WHERE insight_id = ?
	`, boolToInt(important), insightID)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
