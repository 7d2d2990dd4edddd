package repository

import (
	"time"

	"missioncontrol-backend/internal/task/domain"
)

// TaskRepository defines the interface for task data access. It owns
// persistence exclusively; every other component holds tasks only as
// transient values during one request. Store errors propagate unwrapped
// and nothing here retries.
type TaskRepository interface {
	// FindAll returns every task, newest created first
	FindAll() ([]*domain.Task, error)

	// FindRecent returns up to limit tasks, most recently updated first.
	// The activity feed derives its event stream from this slice.
	FindRecent(limit int) ([]*domain.Task, error)

	// FindByID returns the task or (nil, nil) when the id is unknown
	FindByID(id string) (*domain.Task, error)

	// Create assigns an id and timestamps, then persists
	Create(task *domain.Task) error

	// Update saves the full row and refreshes updated_at (last-write-wins)
	Update(task *domain.Task) error

	// Delete removes the task; deleting an unknown id is a no-op success
	Delete(id string) error
}

// RecurringTaskRepository defines the interface for schedule template access
type RecurringTaskRepository interface {
	FindAll() ([]*domain.RecurringTask, error)
	FindByID(id string) (*domain.RecurringTask, error)

	// FindDue returns active templates whose next_run is at or before now
	FindDue(now time.Time) ([]*domain.RecurringTask, error)

	Create(task *domain.RecurringTask) error
	Update(task *domain.RecurringTask) error
	Delete(id string) error
}
