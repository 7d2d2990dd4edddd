package usecase

import (
	"missioncontrol-backend/internal/task/domain"
)

// TaskUsecase defines the interface for task business logic
type TaskUsecase interface {
	// GetTasks returns every task, newest created first
	GetTasks() ([]*domain.Task, error)

	// CreateTask creates a task from a manual entry, applying defaults
	CreateTask(req CreateTaskRequest) (*domain.Task, error)

	// UpdateTask merges partial fields into an existing task. A status
	// change routes through the workflow side-effect table.
	UpdateTask(id string, updates TaskUpdateRequest) (*domain.Task, error)

	// TransitionStatus moves a task to a new workflow state, applying the
	// mandated side effects in the same write
	TransitionStatus(id string, target domain.Status) (*domain.Task, error)

	// DeleteTask removes a task; unknown ids succeed (idempotent delete)
	DeleteTask(id string) error

	// IngestCall runs extraction over a call transcript and persists the
	// resulting drafts, isolating per-draft failures
	IngestCall(payload CallPayload) (*IngestResult, error)
}

// RecurringTaskUsecase defines the interface for schedule template management
type RecurringTaskUsecase interface {
	GetRecurringTasks() ([]*domain.RecurringTask, error)
	CreateRecurringTask(req RecurringTaskRequest) (*domain.RecurringTask, error)
	UpdateRecurringTask(id string, req RecurringTaskRequest) (*domain.RecurringTask, error)
	DeleteRecurringTask(id string) error
}

// CreateTaskRequest carries the fields accepted on manual task creation
type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Assignee    *string  `json:"assignee"`
	DueDate     *string  `json:"due_date"`
	Tags        []string `json:"tags"`
	Source      string   `json:"source"`
}

// TaskUpdateRequest represents the fields that can be updated. Nil means
// "leave unchanged"; for due_date an explicit empty string clears it.
type TaskUpdateRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Priority    *string  `json:"priority,omitempty"`
	Assignee    *string  `json:"assignee,omitempty"`
	DueDate     *string  `json:"due_date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// CallPayload is the webhook-shaped input to ingestion. Zapier sends the
// call title under either title or name and the date under either date or
// created_at, so both aliases are accepted.
type CallPayload struct {
	Transcript   string        `json:"transcript" binding:"required"`
	Title        string        `json:"title"`
	Name         string        `json:"name"`
	CreatedAt    string        `json:"created_at"`
	Date         string        `json:"date"`
	Participants []interface{} `json:"participants"`
	Duration     float64       `json:"duration"`
	RecordingURL string        `json:"recording_url"`
}

// IngestResult reports what a single webhook delivery produced
type IngestResult struct {
	CallTitle    string
	CallDate     string
	Participants []string
	Extracted    int
	Saved        []*domain.Task
	Errors       []string
}

// RecurringTaskRequest carries the writable fields of a schedule template
type RecurringTaskRequest struct {
	Title        string           `json:"title" binding:"required"`
	Description  string           `json:"description"`
	Instructions string           `json:"instructions"`
	Frequency    string           `json:"frequency"`
	Schedule     *domain.Schedule `json:"schedule"`
	Assignee     string           `json:"assignee"`
	IsActive     *bool            `json:"is_active"`
}
