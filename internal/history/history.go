// Package history provides SQLite-backed persistence of remediation runs.
package history

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	docs_dir         TEXT NOT NULL DEFAULT '',
	dry_run          INTEGER NOT NULL DEFAULT 0,
	initial_issues   INTEGER NOT NULL DEFAULT 0,
	total_fixes      INTEGER NOT NULL DEFAULT 0,
	remaining_issues INTEGER NOT NULL DEFAULT 0,
	summary          TEXT NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// RunStore is the interface for run-history operations. Consumers should
// depend on this interface rather than the concrete *DB type to facilitate
// testing with mocks.
type RunStore interface {
	RecordRun(r Run) (int64, error)
	ListRuns(limit int) ([]Run, error)
	LastRun() (*Run, error)
	Close() error
}

// Verify *DB satisfies RunStore at compile time.
var _ RunStore = (*DB)(nil)

// DB wraps a sql.DB with history-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
