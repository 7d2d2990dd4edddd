package usecase

import (
	"time"

	"missioncontrol-backend/internal/usage/domain"
	"missioncontrol-backend/internal/usage/repository"
)

// trendWindow is the number of points in the reported trend series
const trendWindow = 7

// UsageUsecase defines the interface for usage reporting
type UsageUsecase interface {
	// GetUsageReport returns the latest snapshot plus the trend series
	GetUsageReport() (*UsageReport, error)

	// RecordSnapshot appends a snapshot written by an external periodic job
	RecordSnapshot(req SnapshotRequest) (*domain.UsageSnapshot, error)
}

// TrendPoint is one day in the usage trend series
type TrendPoint struct {
	Date   string  `json:"date"`
	Tokens int64   `json:"tokens"`
	Cost   float64 `json:"cost"`
}

// Alert surfaces a note alongside the usage report
type Alert struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Severity  string `json:"severity"`
}

// UsageReport is the client-facing usage shape
type UsageReport struct {
	Timestamp     string                  `json:"timestamp"`
	TotalSessions int                     `json:"totalSessions"`
	TotalTokens   int64                   `json:"totalTokens"`
	Model         string                  `json:"model"`
	Sessions      domain.SessionList      `json:"sessions"`
	DailyStats    map[string]interface{}  `json:"dailyStats"`
	Alerts        []Alert                 `json:"alerts"`
	Trends        map[string][]TrendPoint `json:"trends"`
}

// SnapshotRequest carries the writable fields of a usage snapshot
type SnapshotRequest struct {
	TotalTokens      int64              `json:"total_tokens"`
	TotalSessions    int                `json:"total_sessions"`
	EstimatedCost    float64            `json:"estimated_cost"`
	CompactionEvents int                `json:"compaction_events"`
	Model            string             `json:"model"`
	Sessions         domain.SessionList `json:"sessions"`
	Summary          string             `json:"summary"`
}

// usageUsecase implements UsageUsecase
type usageUsecase struct {
	snapshotRepo repository.UsageSnapshotRepository
	now          func() time.Time
}

// NewUsageUsecase creates a new instance of usageUsecase
func NewUsageUsecase(snapshotRepo repository.UsageSnapshotRepository) UsageUsecase {
	return &usageUsecase{
		snapshotRepo: snapshotRepo,
		now:          time.Now,
	}
}

func (u *usageUsecase) GetUsageReport() (*UsageReport, error) {
	// The newest row drives the headline numbers and is also the last
	// trend point
	snapshots, err := u.snapshotRepo.FindRecent(trendWindow)
	if err != nil {
		return nil, err
	}

	now := u.now()

	report := &UsageReport{
		Timestamp: now.Format(time.RFC3339),
		Sessions:  domain.SessionList{},
		Alerts:    []Alert{},
		Trends:    map[string][]TrendPoint{"last7Days": {}},
	}

	if len(snapshots) == 0 {
		report.Alerts = append(report.Alerts, Alert{
			Type:      "info",
			Message:   "No usage data yet. Run the weekly usage report job to populate snapshots.",
			Timestamp: now.Format(time.RFC3339),
			Severity:  "low",
		})
		report.DailyStats = dailyStats(nil, now)
		return report, nil
	}

	latest := snapshots[0]
	report.Timestamp = latest.CreatedAt.Format(time.RFC3339)
	report.TotalSessions = latest.TotalSessions
	report.TotalTokens = latest.TotalTokens
	report.Model = latest.Model
	if latest.Sessions != nil {
		report.Sessions = latest.Sessions
	}
	report.DailyStats = dailyStats(latest, now)

	// Trend runs oldest to newest
	trend := snapshots
	for i := len(trend) - 1; i >= 0; i-- {
		s := trend[i]
		report.Trends["last7Days"] = append(report.Trends["last7Days"], TrendPoint{
			Date:   s.CreatedAt.Format("2006-01-02"),
			Tokens: s.TotalTokens,
			Cost:   s.EstimatedCost,
		})
	}

	return report, nil
}

func (u *usageUsecase) RecordSnapshot(req SnapshotRequest) (*domain.UsageSnapshot, error) {
	snapshot := &domain.UsageSnapshot{
		TotalTokens:      req.TotalTokens,
		TotalSessions:    req.TotalSessions,
		EstimatedCost:    req.EstimatedCost,
		CompactionEvents: req.CompactionEvents,
		Model:            req.Model,
		Sessions:         req.Sessions,
		Summary:          req.Summary,
	}
	if snapshot.Sessions == nil {
		snapshot.Sessions = domain.SessionList{}
	}

	if err := u.snapshotRepo.Create(snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func dailyStats(latest *domain.UsageSnapshot, now time.Time) map[string]interface{} {
	stats := map[string]interface{}{
		"date":             now.Format("2006-01-02"),
		"totalTokensUsed":  int64(0),
		"estimatedCost":    float64(0),
		"compactionEvents": 0,
	}
	if latest != nil {
		stats["totalTokensUsed"] = latest.TotalTokens
		stats["estimatedCost"] = latest.EstimatedCost
		stats["compactionEvents"] = latest.CompactionEvents
	}
	return stats
}
