// ABOUTME: Store is the dataset/query/insight registry over SQLite
// ABOUTME: Implements the core's DatasetStore contract
package sqlite

// Store handles persistence for datasets, queries, and insights. Methods
// are grouped by relation in datasets.go, queries.go, and insights.go.
type Store struct {
	db *DB
}

// NewStore creates a Store over an open database.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying database handle.
func (s *Store) DB() *DB {
	return s.db
}
