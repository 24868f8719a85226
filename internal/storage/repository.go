// Package storage keeps the run journal: one row per pipeline invocation.
// The journal is operational bookkeeping only; snapshot data itself is
// never persisted, each run rebuilds it from the inbox.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// Run is one journal entry.
type Run struct {
	ID           string
	Year         int
	Month        time.Month
	WindowStart  time.Time
	WindowEnd    time.Time
	Outcome      string
	Scanned      int
	Skipped      int
	Transactions int
	Total        string
	CreatedAt    time.Time
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// RecordRun inserts a journal entry, assigning ID and CreatedAt when unset,
// and returns the stored entry.
func (r *SQLiteRepository) RecordRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO runs (id, year, month, window_start, window_end, outcome,
		                  scanned, skipped, transactions, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Year, int(run.Month),
		run.WindowStart.UTC().Format(time.RFC3339),
		run.WindowEnd.UTC().Format(time.RFC3339),
		run.Outcome, run.Scanned, run.Skipped, run.Transactions, run.Total,
		run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// LastCompletedRun returns the newest completed entry for the given period,
// or nil when the month has not been reported yet.
func (r *SQLiteRepository) LastCompletedRun(ctx context.Context, year int, month time.Month) (*Run, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, year, month, window_start, window_end, outcome,
		       scanned, skipped, transactions, total, created_at
		FROM runs
		WHERE year = ? AND month = ? AND outcome = 'completed'
		ORDER BY created_at DESC
		LIMIT 1`,
		year, int(month),
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last completed run: %w", err)
	}
	return &run, nil
}

// ListRuns returns the newest entries first, up to limit.
func (r *SQLiteRepository) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, year, month, window_start, window_end, outcome,
		       scanned, skipped, transactions, total, created_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run                           Run
		month                         int
		windowStart, windowEnd, ctime string
	)
	err := row.Scan(&run.ID, &run.Year, &month, &windowStart, &windowEnd,
		&run.Outcome, &run.Scanned, &run.Skipped, &run.Transactions,
		&run.Total, &ctime)
	if err != nil {
		return Run{}, err
	}
	run.Month = time.Month(month)
	if run.WindowStart, err = time.Parse(time.RFC3339, windowStart); err != nil {
		return Run{}, fmt.Errorf("parse window start: %w", err)
	}
	if run.WindowEnd, err = time.Parse(time.RFC3339, windowEnd); err != nil {
		return Run{}, fmt.Errorf("parse window end: %w", err)
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339, ctime); err != nil {
		return Run{}, fmt.Errorf("parse created_at: %w", err)
	}
	return run, nil
}
