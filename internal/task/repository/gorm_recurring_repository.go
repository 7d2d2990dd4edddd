package repository

import (
	"time"

	"missioncontrol-backend/internal/task/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormRecurringTaskRepository implements RecurringTaskRepository using GORM
type gormRecurringTaskRepository struct {
	db *gorm.DB
}

// NewGormRecurringTaskRepository creates a new GORM-based RecurringTaskRepository
func NewGormRecurringTaskRepository(db *gorm.DB) RecurringTaskRepository {
	return &gormRecurringTaskRepository{db: db}
}

func (r *gormRecurringTaskRepository) FindAll() ([]*domain.RecurringTask, error) {
	var tasks []*domain.RecurringTask
	err := r.db.Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *gormRecurringTaskRepository) FindByID(id string) (*domain.RecurringTask, error) {
	var task domain.RecurringTask
	err := r.db.Where("id = ?", id).First(&task).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *gormRecurringTaskRepository) FindDue(now time.Time) ([]*domain.RecurringTask, error) {
	var tasks []*domain.RecurringTask
	err := r.db.Where("is_active = ? AND next_run IS NOT NULL AND next_run <= ?", true, now).
		Find(&tasks).Error
	return tasks, err
}

func (r *gormRecurringTaskRepository) Create(task *domain.RecurringTask) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	return r.db.Create(task).Error
}

func (r *gormRecurringTaskRepository) Update(task *domain.RecurringTask) error {
	task.UpdatedAt = time.Now()
	return r.db.Save(task).Error
}

func (r *gormRecurringTaskRepository) Delete(id string) error {
	return r.db.Delete(&domain.RecurringTask{}, "id = ?", id).Error
}
