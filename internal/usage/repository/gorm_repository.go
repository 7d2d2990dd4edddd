package repository

import (
	"time"

	"missioncontrol-backend/internal/usage/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormUsageSnapshotRepository implements UsageSnapshotRepository using GORM
type gormUsageSnapshotRepository struct {
	db *gorm.DB
}

// NewGormUsageSnapshotRepository creates a new GORM-based UsageSnapshotRepository
func NewGormUsageSnapshotRepository(db *gorm.DB) UsageSnapshotRepository {
	return &gormUsageSnapshotRepository{db: db}
}

func (r *gormUsageSnapshotRepository) FindRecent(limit int) ([]*domain.UsageSnapshot, error) {
	var snapshots []*domain.UsageSnapshot
	err := r.db.Order("created_at DESC").Limit(limit).Find(&snapshots).Error
	return snapshots, err
}

func (r *gormUsageSnapshotRepository) Create(snapshot *domain.UsageSnapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	snapshot.CreatedAt = time.Now()
	return r.db.Create(snapshot).Error
}
