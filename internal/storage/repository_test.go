package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func sampleRun(outcome string, created time.Time) Run {
	start := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	return Run{
		Year:         2025,
		Month:        time.September,
		WindowStart:  start,
		WindowEnd:    start.AddDate(0, 1, 0),
		Outcome:      outcome,
		Scanned:      12,
		Skipped:      3,
		Transactions: 9,
		Total:        "170500.50",
		CreatedAt:    created,
	}
}

func TestRecordAndLastCompletedRun(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	stored, err := repo.RecordRun(ctx, sampleRun("completed", time.Now().UTC()))
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if stored.ID == "" {
		t.Fatal("expected generated run ID")
	}

	last, err := repo.LastCompletedRun(ctx, 2025, time.September)
	if err != nil {
		t.Fatalf("last completed: %v", err)
	}
	if last == nil {
		t.Fatal("expected a completed run")
	}
	if last.ID != stored.ID || last.Total != "170500.50" || last.Transactions != 9 {
		t.Fatalf("unexpected run: %+v", last)
	}
	if !last.WindowStart.Equal(stored.WindowStart) {
		t.Fatalf("window start mismatch: %v vs %v", last.WindowStart, stored.WindowStart)
	}
}

func TestLastCompletedRunIgnoresOtherOutcomes(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	if _, err := repo.RecordRun(ctx, sampleRun("no_data", time.Now().UTC())); err != nil {
		t.Fatalf("record: %v", err)
	}

	last, err := repo.LastCompletedRun(ctx, 2025, time.September)
	if err != nil {
		t.Fatalf("last completed: %v", err)
	}
	if last != nil {
		t.Fatalf("no_data runs must not count, got %+v", last)
	}
}

func TestLastCompletedRunEmptyJournal(t *testing.T) {
	repo := newRepo(t)
	last, err := repo.LastCompletedRun(context.Background(), 2030, time.January)
	if err != nil {
		t.Fatalf("last completed: %v", err)
	}
	if last != nil {
		t.Fatalf("expected nil, got %+v", last)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	base := time.Date(2025, time.October, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if _, err := repo.RecordRun(ctx, sampleRun("completed", base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	runs, err := repo.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if !runs[0].CreatedAt.After(runs[1].CreatedAt) {
		t.Fatalf("expected newest first: %v, %v", runs[0].CreatedAt, runs[1].CreatedAt)
	}
}
