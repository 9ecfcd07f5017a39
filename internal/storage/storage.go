// Package storage keeps a local audit log of reconciliation runs in SQLite.
// It records outcomes only (run id, range, counts, timing), never remote
// issue or board state, so reconciliation stays idempotent-by-reread.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const schema = `
CREATE TABLE IF NOT EXISTS sync_runs (
    id TEXT PRIMARY KEY,
    project_number INTEGER NOT NULL,
    start_issue INTEGER NOT NULL,
    end_issue INTEGER NOT NULL,
    updated INTEGER NOT NULL DEFAULT 0,
    skipped INTEGER NOT NULL DEFAULT 0,
    errors INTEGER NOT NULL DEFAULT 0,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sync_runs_started_at ON sync_runs(started_at);
`

// SyncRun is one recorded reconciliation run.
type SyncRun struct {
	ID            string
	ProjectNumber int
	StartIssue    int
	EndIssue      int
	Updated       int
	Skipped       int
	Errors        int
	StartedAt     time.Time
	FinishedAt    time.Time
}

// RunStore persists sync-run summaries.
type RunStore struct {
	db *sql.DB
}

// Open creates or opens the history database at path, initializing the
// schema as needed.
func Open(path string) (*RunStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}

	return &RunStore{db: db}, nil
}

// RecordRun appends one run summary.
func (s *RunStore) RecordRun(ctx context.Context, run *SyncRun) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_runs (id, project_number, start_issue, end_issue,
			updated, skipped, errors, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.ProjectNumber, run.StartIssue, run.EndIssue,
		run.Updated, run.Skipped, run.Errors,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("recording sync run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *RunStore) RecentRuns(ctx context.Context, limit int) ([]*SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_number, start_issue, end_issue,
			updated, skipped, errors, started_at, finished_at
		FROM sync_runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sync runs: %w", err)
	}
	defer rows.Close()

	var runs []*SyncRun
	for rows.Next() {
		var run SyncRun
		var started, finished string
		if err := rows.Scan(&run.ID, &run.ProjectNumber, &run.StartIssue, &run.EndIssue,
			&run.Updated, &run.Skipped, &run.Errors, &started, &finished); err != nil {
			return nil, fmt.Errorf("scanning sync run: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parsing run start time: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parsing run finish time: %w", err)
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// Close releases the underlying database handle.
func (s *RunStore) Close() error {
	return s.db.Close()
}
