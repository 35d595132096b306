package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultLimit is the number of runs Recent returns for a non-positive limit.
const DefaultLimit = 20

// timeLayout keeps a fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store persists runs in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}
	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts run. A missing ID or start time is filled in.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if strings.TrimSpace(run.ID) == "" {
		run.ID = NewRunID()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.Status == "" {
		run.Status = StatusSucceeded
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (
            id, command, timing_path, text_path, output_path, profile, backend,
            records, placed_blocks, unplaced_blocks, dropped_lines, translated_lines,
            delta_seconds, status, error_message, started_at, duration_ms
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Command,
		nullableString(run.TimingPath),
		nullableString(run.TextPath),
		nullableString(run.OutputPath),
		nullableString(run.Profile),
		nullableString(run.Backend),
		run.Records,
		run.Placed,
		run.Unplaced,
		run.Dropped,
		run.Translated,
		run.Delta,
		string(run.Status),
		nullableString(run.Error),
		run.StartedAt.UTC().Format(timeLayout),
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return run, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, command, timing_path, text_path, output_path, profile, backend,
            records, placed_blocks, unplaced_blocks, dropped_lines, translated_lines,
            delta_seconds, status, error_message, started_at, duration_ms
        FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		run                                    Run
		timing, text, output, profile, backend sql.NullString
		errMsg                                 sql.NullString
		status, started                        string
		durationMS                             int64
	)
	if err := rows.Scan(
		&run.ID, &run.Command, &timing, &text, &output, &profile, &backend,
		&run.Records, &run.Placed, &run.Unplaced, &run.Dropped, &run.Translated,
		&run.Delta, &status, &errMsg, &started, &durationMS,
	); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	startedAt, err := time.Parse(timeLayout, started)
	if err != nil {
		return Run{}, fmt.Errorf("parse started_at for %s: %w", run.ID, err)
	}
	run.TimingPath = timing.String
	run.TextPath = text.String
	run.OutputPath = output.String
	run.Profile = profile.String
	run.Backend = backend.String
	run.Error = errMsg.String
	run.Status = Status(status)
	run.StartedAt = startedAt
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return run, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
