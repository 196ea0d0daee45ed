// ABOUTME: Dataset represents uploaded tabular data registered in the store
// ABOUTME: The CSV on disk is the source of truth; the store keeps metadata only
package models

import "time"

// Dataset holds metadata for an uploaded table. The table itself lives at
// Filepath; SchemaJSON is a snapshot of the inferred schema at upload time.
type Dataset struct {
	DatasetID  string    `json:"dataset_id"`
	Name       string    `json:"name"`
	UploadedAt time.Time `json:"uploaded_at"`
	NRows      int       `json:"n_rows"`
	NCols      int       `json:"n_cols"`
	Filepath   string    `json:"filepath"`
	SchemaJSON string    `json:"schema_json"`
}
