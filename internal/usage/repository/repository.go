package repository

import "missioncontrol-backend/internal/usage/domain"

// UsageSnapshotRepository defines the interface for snapshot access
type UsageSnapshotRepository interface {
	// FindRecent returns up to limit snapshots, newest first
	FindRecent(limit int) ([]*domain.UsageSnapshot, error)

	// Create assigns an id and timestamp, then persists
	Create(snapshot *domain.UsageSnapshot) error
}
