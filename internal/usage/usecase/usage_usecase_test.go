package usecase

import (
	"errors"
	"testing"
	"time"

	"missioncontrol-backend/internal/usage/domain"
)

type stubSnapshotRepo struct {
	snapshots []*domain.UsageSnapshot
	err       error
	created   []*domain.UsageSnapshot
}

func (r *stubSnapshotRepo) FindRecent(limit int) ([]*domain.UsageSnapshot, error) {
	if r.err != nil {
		return nil, r.err
	}
	if len(r.snapshots) > limit {
		return r.snapshots[:limit], nil
	}
	return r.snapshots, nil
}

func (r *stubSnapshotRepo) Create(snapshot *domain.UsageSnapshot) error {
	snapshot.ID = "snap-1"
	snapshot.CreatedAt = time.Now()
	r.created = append(r.created, snapshot)
	return nil
}

func TestGetUsageReportEmpty(t *testing.T) {
	u := NewUsageUsecase(&stubSnapshotRepo{})

	report, err := u.GetUsageReport()
	if err != nil {
		t.Fatalf("GetUsageReport failed: %v", err)
	}

	if len(report.Alerts) != 1 {
		t.Errorf("Expected an info alert when no data, got %v", report.Alerts)
	}
	if len(report.Trends["last7Days"]) != 0 {
		t.Errorf("Expected empty trend, got %v", report.Trends["last7Days"])
	}
}

func TestGetUsageReportTrendOldestFirst(t *testing.T) {
	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	// Repository returns newest first, ten days of history
	var snapshots []*domain.UsageSnapshot
	for i := 0; i < 10; i++ {
		snapshots = append(snapshots, &domain.UsageSnapshot{
			ID:            "s",
			TotalTokens:   int64(1000 * (10 - i)),
			EstimatedCost: float64(10 - i),
			TotalSessions: 9,
			Model:         "claude-sonnet",
			CreatedAt:     base.AddDate(0, 0, -i),
		})
	}
	u := NewUsageUsecase(&stubSnapshotRepo{snapshots: snapshots})

	report, err := u.GetUsageReport()
	if err != nil {
		t.Fatalf("GetUsageReport failed: %v", err)
	}

	trend := report.Trends["last7Days"]
	if len(trend) != 7 {
		t.Fatalf("Expected 7 trend points, got %d", len(trend))
	}
	for i := 1; i < len(trend); i++ {
		if trend[i].Date <= trend[i-1].Date {
			t.Errorf("Trend not ascending at %d: %s then %s", i, trend[i-1].Date, trend[i].Date)
		}
	}
	// Latest snapshot drives the headline numbers
	if report.TotalTokens != 10000 {
		t.Errorf("Expected latest tokens 10000, got %d", report.TotalTokens)
	}
	if trend[len(trend)-1].Tokens != 10000 {
		t.Errorf("Expected newest trend point last, got %d", trend[len(trend)-1].Tokens)
	}
}

func TestGetUsageReportPropagatesStoreError(t *testing.T) {
	u := NewUsageUsecase(&stubSnapshotRepo{err: errors.New("store unreachable")})

	if _, err := u.GetUsageReport(); err == nil {
		t.Error("Expected error from store to propagate")
	}
}

func TestRecordSnapshotDefaultsSessions(t *testing.T) {
	repo := &stubSnapshotRepo{}
	u := NewUsageUsecase(repo)

	snapshot, err := u.RecordSnapshot(SnapshotRequest{TotalTokens: 42, Model: "claude-sonnet"})
	if err != nil {
		t.Fatalf("RecordSnapshot failed: %v", err)
	}
	if snapshot.Sessions == nil {
		t.Error("Expected sessions defaulted to empty list")
	}
	if len(repo.created) != 1 {
		t.Errorf("Expected one persisted snapshot, got %d", len(repo.created))
	}
}
