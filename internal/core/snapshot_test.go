package core

import (
	"testing"
	"time"
)

func TestBuildSnapshot(t *testing.T) {
	agg := Aggregate([]Transaction{
		tx(t, 5, "SUPERMARKET", "50000.00"),
		tx(t, 20, "CAFE", "120500.50"),
	})
	snap, ok := BuildSnapshot(agg, 2025, time.September)
	if !ok {
		t.Fatal("expected snapshot for non-empty aggregation")
	}
	if snap.Summary.PeriodLabel != "SEPTEMBER" {
		t.Fatalf("period label: %q", snap.Summary.PeriodLabel)
	}
	if snap.Summary.Year != 2025 {
		t.Fatalf("year: %d", snap.Summary.Year)
	}
	if got := snap.Summary.Total.String(); got != "170500.5" {
		t.Fatalf("total: %s", got)
	}
	if snap.Summary.DistinctMerchants() != 2 {
		t.Fatalf("distinct merchants: %d", snap.Summary.DistinctMerchants())
	}
}

func TestBuildSnapshotEmptyShortCircuits(t *testing.T) {
	snap, ok := BuildSnapshot(Aggregate(nil), 2025, time.September)
	if ok || snap != nil {
		t.Fatalf("expected no snapshot for empty month, got %+v", snap)
	}
}

func TestPeriodLabel(t *testing.T) {
	if got := PeriodLabel(time.January); got != "JANUARY" {
		t.Fatalf("got %q", got)
	}
}
