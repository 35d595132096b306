package history_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"durazubs/internal/history"
	"durazubs/internal/testsupport"
)

func TestRecordAndRecent(t *testing.T) {
	store := testsupport.MustOpenHistory(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := store.Record(ctx, history.Run{
		Command:    "sync",
		TimingPath: "/tmp/timing.ass",
		TextPath:   "/tmp/text.ass",
		OutputPath: "/tmp/out.ass",
		Profile:    "main",
		Records:    120,
		Placed:     2,
		Unplaced:   1,
		Dropped:    7,
		Delta:      -1.25,
		StartedAt:  base,
		Duration:   1500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if first.ID == "" || first.Status != history.StatusSucceeded {
		t.Fatalf("expected defaults to be filled, got %+v", first)
	}
	if _, err := store.Record(ctx, history.Run{
		Command:   "sync",
		Status:    history.StatusFailed,
		Error:     "timing track: line 4: missing fields",
		StartedAt: base.Add(time.Minute),
	}); err != nil {
		t.Fatalf("Record failed run: %v", err)
	}

	runs, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Status != history.StatusFailed || runs[0].Error == "" {
		t.Fatalf("newest run should be the failure, got %+v", runs[0])
	}
	got := runs[1]
	if got.ID != first.ID || got.Records != 120 || got.Placed != 2 || got.Unplaced != 1 || got.Dropped != 7 {
		t.Fatalf("unexpected round trip: %+v", got)
	}
	if got.Delta != -1.25 || got.Duration != 1500*time.Millisecond || !got.StartedAt.Equal(base) {
		t.Fatalf("unexpected timing fields: %+v", got)
	}
	if got.Backend != "" || got.Profile != "main" {
		t.Fatalf("unexpected optional fields: %+v", got)
	}

	limited, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent(1): %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(limited))
	}
}

func TestRecentOrdersSubSecondTimestamps(t *testing.T) {
	store := testsupport.MustOpenHistory(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 5, 0, time.UTC)
	for i, offset := range []time.Duration{0, 100 * time.Millisecond, 5 * time.Millisecond} {
		if _, err := store.Record(ctx, history.Run{Command: "sync", ID: string(rune('a' + i)), StartedAt: base.Add(offset)}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	runs, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	var ids []string
	for _, run := range runs {
		ids = append(ids, run.ID)
	}
	if len(ids) != 3 || ids[0] != "b" || ids[1] != "c" || ids[2] != "a" {
		t.Fatalf("unexpected order %v", ids)
	}
}

func TestOpenRejectsOtherSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := history.Open(context.Background(), path); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	ctx := context.Background()
	store, err := history.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Record(ctx, history.Run{Command: "style"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	_ = store.Close()

	store, err = history.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	runs, err := store.Recent(ctx, 5)
	if err != nil || len(runs) != 1 || runs[0].Command != "style" {
		t.Fatalf("Recent after reopen = %+v, %v", runs, err)
	}
}

func TestShortID(t *testing.T) {
	if got := history.ShortID("0123456789abcdef"); got != "01234567" {
		t.Fatalf("ShortID = %q", got)
	}
	if got := history.ShortID("abc"); got != "abc" {
		t.Fatalf("ShortID = %q", got)
	}
}
