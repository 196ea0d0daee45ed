// ABOUTME: Conversation memory: per-dataset rolling log of question/answer pairs
// ABOUTME: A view over the queries relation, read back oldest-first for prompts
package eda

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/edalab/eda-agent/internal/models"
)

// DefaultMemoryLimit is the number of prior exchanges carried into a
// delegated prompt.
const DefaultMemoryLimit = 5

// ConversationMemory exposes the per-dataset question/answer history.
// Entries live in the queries relation; every recorded resolution is part
// of the memory regardless of its source tag.
type ConversationMemory struct {
	store DatasetStore
}

// NewConversationMemory creates a memory view over the store.
func NewConversationMemory(store DatasetStore) *ConversationMemory {
	return &ConversationMemory{store: store}
}

// Append records a (question, answer) pair with source "memory", for
// callers seeding memory outside a resolution. Both sides are truncated
// to the persisted bound.
func (m *ConversationMemory) Append(datasetID, question, answer string) (string, error) {
	rec := &models.QueryRecord{
		QueryID:         uuid.NewString(),
		DatasetID:       datasetID,
		Question:        question,
		ResponseSummary: truncateChars(answer, models.MaxResponseChars),
		RawResponse:     truncateChars(answer, models.MaxResponseChars),
		CreatedAt:       time.Now(),
		Source:          models.SourceMemory,
	}
	if err := m.store.AppendQuery(rec); err != nil {
		return "", fmt.Errorf("%w: appending memory entry: %v", ErrPersistence, err)
	}
	return rec.QueryID, nil
}

// Recent returns the most recent limit pairs in chronological
// (oldest-first) order.
func (m *ConversationMemory) Recent(datasetID string, limit int) ([]models.MemoryEntry, error) {
	entries, err := m.store.RecentPairs(datasetID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: loading memory: %v", ErrPersistence, err)
	}
	// The store returns newest-first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// truncateChars bounds a string to n runes.
func truncateChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
