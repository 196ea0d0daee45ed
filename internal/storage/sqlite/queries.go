// ABOUTME: Query record persistence and the recent-pairs memory view
// ABOUTME: Records are append-only and immutable after creation
package sqlite

import (
	"time"

	"github.com/edalab/eda-agent/internal/models"
)

// AppendQuery inserts a query record.
func (s *Store) AppendQuery(q *models.QueryRecord) error {
	createdAt := q.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO queries (query_id, dataset_id, question, response_summary, raw_response, created_at, source)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, q.QueryID, q.DatasetID, q.Question, q.ResponseSummary, q.RawResponse,
		createdAt, q.Source)

	return err
}

// ListQueries returns a dataset's query records, newest first.
func (s *Store) ListQueries(datasetID string, limit int) ([]models.QueryRecord, error) {
	rows, err := s.db.Query(`
		SELECT query_id, dataset_id, question, response_summary, raw_response, created_at, source
		FROM queries
		WHERE dataset_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, datasetID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []models.QueryRecord
	for rows.Next() {
		var q models.QueryRecord
		err := rows.Scan(&q.QueryID, &q.DatasetID, &q.Question, &q.ResponseSummary,
			&q.RawResponse, &q.CreatedAt, &q.Source)
		if err != nil {
			return nil, err
		}
		records = append(records, q)
	}
	return records, rows.Err()
}

// RecentPairs returns the dataset's most recent (question, answer) pairs,
// newest first. Callers wanting chronological order reverse the slice.
func (s *Store) RecentPairs(datasetID string, limit int) ([]models.MemoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT question, response_summary
		FROM queries
		WHERE dataset_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, datasetID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []models.MemoryEntry
	for rows.Next() {
		var e models.MemoryEntry
		if err := rows.Scan(&e.Question, &e.Answer); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
