package storage

import (
	"fmt"
	"path/filepath"
	"testing"

	"stepcov/internal/domain"
)

func openTestHistory(t *testing.T) *HistoryStore {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), ".stepcov", "history.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func historyReport(ts string, coverage float64) *domain.CoverageReport {
	report := &domain.CoverageReport{Coverage: coverage, Implementation: 100}
	report.Meta.Timestamp = ts
	report.Meta.TotalUsages = 10
	report.Meta.CoveredUsages = int(coverage) / 10
	report.Meta.TotalDefs = 5
	return report
}

func TestHistoryStore_AppendAndRuns(t *testing.T) {
	h := openTestHistory(t)

	timestamps := []string{
		"2026-08-27T10:00:00Z",
		"2026-08-28T10:00:00Z",
		"2026-08-29T10:00:00Z",
	}
	for i, ts := range timestamps {
		if err := h.Append(historyReport(ts, float64(50+10*i))); err != nil {
			t.Fatalf("unexpected append error: %v", err)
		}
	}

	runs, err := h.Runs(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	// most recent first
	if runs[0].Timestamp != timestamps[2] || runs[2].Timestamp != timestamps[0] {
		t.Errorf("runs out of order: %+v", runs)
	}
	if runs[0].Coverage != 70 {
		t.Errorf("expected latest coverage 70, got %v", runs[0].Coverage)
	}
	if runs[0].ID == "" || runs[0].ID == runs[1].ID {
		t.Errorf("expected unique run ids, got %q and %q", runs[0].ID, runs[1].ID)
	}
	if runs[0].TotalUsages != 10 || runs[0].Definitions != 5 {
		t.Errorf("run lost counters: %+v", runs[0])
	}
}

func TestHistoryStore_RunsLimit(t *testing.T) {
	h := openTestHistory(t)
	for i := 0; i < 5; i++ {
		ts := fmt.Sprintf("2026-08-2%dT10:00:00Z", i)
		if err := h.Append(historyReport(ts, 50)); err != nil {
			t.Fatalf("unexpected append error: %v", err)
		}
	}

	runs, err := h.Runs(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected limit to cap results, got %d", len(runs))
	}
}

func TestHistoryStore_EmptyRuns(t *testing.T) {
	h := openTestHistory(t)
	runs, err := h.Runs(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %+v", runs)
	}
}

func TestHistoryStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	h, err := OpenHistory(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.Append(historyReport("2026-08-29T10:00:00Z", 80)); err != nil {
		t.Fatalf("unexpected append error: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}

	h, err = OpenHistory(path)
	if err != nil {
		t.Fatalf("unexpected reopen error: %v", err)
	}
	defer h.Close()
	runs, err := h.Runs(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 1 || runs[0].Coverage != 80 {
		t.Errorf("expected the persisted run after reopen, got %+v", runs)
	}
}
