package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/docmend/docmend/internal/apperr"
	"github.com/docmend/docmend/internal/models"
)

// Run represents one recorded remediation run.
type Run struct {
	ID              int64             `json:"id"`
	StartedAt       time.Time         `json:"started_at"`
	DocsDir         string            `json:"docs_dir"`
	DryRun          bool              `json:"dry_run"`
	InitialIssues   int               `json:"initial_issues"`
	TotalFixes      int               `json:"total_fixes"`
	RemainingIssues int               `json:"remaining_issues"`
	Summary         models.FixSummary `json:"summary"`
}

// NewRun builds a Run record from a fix summary.
func NewRun(docsDir string, summary *models.FixSummary) Run {
	return Run{
		StartedAt:       time.Now().UTC(),
		DocsDir:         docsDir,
		DryRun:          summary.DryRun,
		InitialIssues:   summary.InitialIssues,
		TotalFixes:      summary.TotalFixes,
		RemainingIssues: summary.Validation.RemainingIssues,
		Summary:         *summary,
	}
}

// RecordRun inserts a run and returns its assigned id.
func (db *DB) RecordRun(r Run) (int64, error) {
	summaryJSON, err := json.Marshal(r.Summary)
	if err != nil {
		return 0, fmt.Errorf("history: marshal summary: %w", err)
	}
	res, err := db.conn.Exec(`
		INSERT INTO runs (started_at, docs_dir, dry_run, initial_issues, total_fixes, remaining_issues, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.StartedAt, r.DocsDir, r.DryRun, r.InitialIssues, r.TotalFixes, r.RemainingIssues, string(summaryJSON))
	if err != nil {
		return 0, fmt.Errorf("history: insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: last insert id: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 defaults
// to 20.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT id, started_at, docs_dir, dry_run, initial_issues, total_fixes, remaining_issues, summary
		FROM runs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate runs: %w", err)
	}
	return out, nil
}

// LastRun returns the most recent run, or apperr.ErrNotFound when the
// history is empty.
func (db *DB) LastRun() (*Run, error) {
	row := db.conn.QueryRow(`
		SELECT id, started_at, docs_dir, dry_run, initial_issues, total_fixes, remaining_issues, summary
		FROM runs ORDER BY id DESC LIMIT 1
	`)
	r, err := scanRun(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func scanRun(scan func(dest ...any) error) (Run, error) {
	var r Run
	var summaryJSON string
	if err := scan(&r.ID, &r.StartedAt, &r.DocsDir, &r.DryRun,
		&r.InitialIssues, &r.TotalFixes, &r.RemainingIssues, &summaryJSON); err != nil {
		if err == sql.ErrNoRows {
			return r, err
		}
		return r, fmt.Errorf("history: scan run: %w", err)
	}
	if err := json.Unmarshal([]byte(summaryJSON), &r.Summary); err != nil {
		return r, fmt.Errorf("history: unmarshal summary: %w", err)
	}
	return r, nil
}
