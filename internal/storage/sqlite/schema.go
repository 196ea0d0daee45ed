// ABOUTME: SQLite schema for the EDA assistant's durable relations
// ABOUTME: Datasets metadata, query history, and generated insights
package sqlite

// Schema contains all SQL statements for database initialization.
const Schema = `
-- Dataset registry: metadata and schema snapshot only; the CSV on disk
-- is the source of truth for the table itself.
CREATE TABLE IF NOT EXISTS datasets (
    dataset_id TEXT PRIMARY KEY,
    name TEXT,
    uploaded_at DATETIME,
    n_rows INTEGER,
    n_cols INTEGER,
    filepath TEXT,
    schema_json TEXT
);

-- Query history; also serves as the per-dataset conversation memory.
CREATE TABLE IF NOT EXISTS queries (
    query_id TEXT PRIMARY KEY,
    dataset_id TEXT,
    question TEXT,
    response_summary TEXT,
    raw_response TEXT,
    created_at DATETIME,
    source TEXT
);

-- Generated insights, markable as important.
CREATE TABLE IF NOT EXISTS insights (
    insight_id TEXT PRIMARY KEY,
    dataset_id TEXT,
    created_at DATETIME,
    text TEXT,
    important INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_queries_dataset ON queries(dataset_id, created_at);
CREATE INDEX IF NOT EXISTS idx_insights_dataset ON insights(dataset_id, created_at);
`

// SchemaVersion is the current schema version for migrations.
const SchemaVersion = 1
