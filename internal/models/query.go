// ABOUTME: QueryRecord represents one resolved question/answer exchange
// ABOUTME: Immutable after creation; doubles as the conversation memory log
package models

import "time"

// Resolution sources recorded on a QueryRecord.
const (
	SourceClosedForm = "closed-form"
	SourceGenerator  = "external-generator"
	SourceMemory     = "memory"
)

// MaxResponseChars bounds the persisted response columns, matching the
// 2000-character truncation applied on write.
const MaxResponseChars = 2000

// QueryRecord is one question/answer exchange for a dataset.
type QueryRecord struct {
	QueryID         string    `json:"query_id"`
	DatasetID       string    `json:"dataset_id"`
	Question        string    `json:"question"`
	ResponseSummary string    `json:"response_summary"`
	RawResponse     string    `json:"raw_response"`
	CreatedAt       time.Time `json:"created_at"`
	Source          string    `json:"source"`
}

// MemoryEntry is one (question, answer) pair from the conversation log.
type MemoryEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
