// ABOUTME: Insight represents a single human-readable finding about a dataset
// ABOUTME: Created by the insight generator, markable as important by the user
package models

import "time"

// Insight is one statistical or narrative finding tied to a dataset.
// Important defaults to false and is the only field mutated after creation.
type Insight struct {
	InsightID string    `json:"insight_id"`
	DatasetID string    `json:"dataset_id"`
	CreatedAt time.Time `json:"created_at"`
	Text      string    `json:"text"`
	Important bool      `json:"important"`
}
