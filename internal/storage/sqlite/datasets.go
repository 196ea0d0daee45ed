// ABOUTME: Dataset metadata persistence
// ABOUTME: Upsert by dataset id, lookup, and listing newest-first
package sqlite

import (
	"database/sql"
	"time"

	"github.com/edalab/eda-agent/internal/models"
)

// UpsertDataset inserts or replaces a dataset's metadata by id.
func (s *Store) UpsertDataset(d *models.Dataset) error {
	uploadedAt := d.UploadedAt
	if uploadedAt.IsZero() {
		uploadedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO datasets (dataset_id, name, uploaded_at, n_rows, n_cols, filepath, schema_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(dataset_id) DO UPDATE SET
			name = excluded.name,
			uploaded_at = excluded.uploaded_at,
			n_rows = excluded.n_rows,
			n_cols = excluded.n_cols,
			filepath = excluded.filepath,
			schema_json = excluded.schema_json
	`, d.DatasetID, d.Name, uploadedAt, d.NRows, d.NCols, d.Filepath, d.SchemaJSON)

	return err
}

// GetDataset retrieves a dataset by id, returning nil when absent.
func (s *Store) GetDataset(datasetID string) (*models.Dataset, error) {
	var d models.Dataset

	err := s.db.QueryRow(`
		SELECT dataset_id, name, uploaded_at, n_rows, n_cols, filepath, schema_json
		FROM datasets
		WHERE dataset_id = ?
	`, datasetID).Scan(&d.DatasetID, &d.Name, &d.UploadedAt, &d.NRows, &d.NCols,
		&d.Filepath, &d.SchemaJSON)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDatasets returns all datasets, most recently uploaded first.
func (s *Store) ListDatasets() ([]models.Dataset, error) {
	rows, err := s.db.Query(`
		SELECT dataset_id, name, uploaded_at, n_rows, n_cols, filepath, schema_json
		FROM datasets
		ORDER BY uploaded_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var datasets []models.Dataset
	for rows.Next() {
		var d models.Dataset
		err := rows.Scan(&d.DatasetID, &d.Name, &d.UploadedAt, &d.NRows, &d.NCols,
			&d.Filepath, &d.SchemaJSON)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, d)
	}
	return datasets, rows.Err()
}
