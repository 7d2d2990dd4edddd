package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrRecurringNotFound = errors.New("recurring task not found")
	ErrInvalidStatus     = errors.New("invalid task status")
)

// Priority represents task priority level
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Status is the workflow state of a task. The kanban board renders the
// first six; "done" and "todo" are legacy values that remain storable:
// "done" counts as completion, "todo" is a plain backlog state.
type Status string

const (
	StatusFromCalls    Status = "from-calls"
	StatusCharlieQueue Status = "charlie-queue"
	StatusDylanQueue   Status = "dylan-queue"
	StatusNeedsScoping Status = "needs-scoping"
	StatusInProgress   Status = "in-progress"
	StatusCompleted    Status = "completed"
	StatusDone         Status = "done"
	StatusTodo         Status = "todo"
)

// ValidStatus reports whether s is a known workflow state.
func ValidStatus(s Status) bool {
	switch s {
	case StatusFromCalls, StatusCharlieQueue, StatusDylanQueue, StatusNeedsScoping,
		StatusInProgress, StatusCompleted, StatusDone, StatusTodo:
		return true
	}
	return false
}

// IsCompletion reports whether s denotes a finished task. Tasks in these
// states carry a non-nil CompletedAt.
func (s Status) IsCompletion() bool {
	return s == StatusCompleted || s == StatusDone
}

// Source records where a task originated. Immutable after creation.
type Source string

const (
	SourceFathomCall Source = "fathom_call"
	SourceManual     Source = "manual"
	SourceRecurring  Source = "recurring"
)

const (
	AssigneeCharlie = "charlie"
	AssigneeDylan   = "dylan"
)

// StringArray is a custom type to handle JSON arrays in GORM
type StringArray []string

// Value implements driver.Valuer
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = []string{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	if len(bytes) == 0 {
		*a = []string{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// SourceData is the structured provenance payload stored alongside a task.
// The store treats it as opaque JSON; only the activity feed reads it back
// for display enrichment.
type SourceData struct {
	CallTitle         string   `json:"call_title,omitempty"`
	CallDate          string   `json:"call_date,omitempty"`
	CallURL           string   `json:"call_url,omitempty"`
	TranscriptExcerpt string   `json:"transcript_excerpt,omitempty"`
	Participants      []string `json:"participants,omitempty"`
	RequestedBy       string   `json:"requested_by,omitempty"`
	SlackURL          string   `json:"slack_url,omitempty"`
	DocURL            string   `json:"doc_url,omitempty"`
	RecurringTaskID   string   `json:"recurring_task_id,omitempty"`
}

// Value implements driver.Valuer
func (d SourceData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner
func (d *SourceData) Scan(value interface{}) error {
	if value == nil {
		*d = SourceData{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	if len(bytes) == 0 {
		*d = SourceData{}
		return nil
	}
	return json.Unmarshal(bytes, d)
}

// Task represents a unit of work extracted from a call, created manually,
// or materialized from a recurring template
type Task struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	Title       string      `json:"title" gorm:"not null"`
	Description string      `json:"description,omitempty"`
	Status      Status      `json:"status" gorm:"index;default:todo"`
	Priority    Priority    `json:"priority" gorm:"default:MEDIUM"`
	Assignee    *string     `json:"assignee"`
	DueDate     *time.Time  `json:"due_date,omitempty"`
	Tags        StringArray `json:"tags" gorm:"type:text"`
	Source      Source      `json:"source" gorm:"default:manual"`
	SourceData  *SourceData `json:"source_data,omitempty" gorm:"type:text"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

// Schedule holds the offset fields of a recurring template. Which field is
// meaningful depends on the template frequency.
type Schedule struct {
	Time       string `json:"time,omitempty"`         // "09:00"
	DayOfWeek  *int   `json:"day_of_week,omitempty"`  // 0-6, Sunday first
	DayOfMonth *int   `json:"day_of_month,omitempty"` // 1-31
}

// Value implements driver.Valuer
func (s Schedule) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner
func (s *Schedule) Scan(value interface{}) error {
	if value == nil {
		*s = Schedule{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	if len(bytes) == 0 {
		*s = Schedule{}
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// Frequency of a recurring template
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// RecurringTask is a schedule template that periodically materializes a Task
type RecurringTask struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	Title        string     `json:"title" gorm:"not null"`
	Description  string     `json:"description,omitempty"`
	Instructions string     `json:"instructions,omitempty"`
	Frequency    Frequency  `json:"frequency" gorm:"default:weekly"`
	Schedule     Schedule   `json:"schedule" gorm:"type:text"`
	Assignee     string     `json:"assignee"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	LastRun      *time.Time `json:"last_run,omitempty"`
	NextRun      *time.Time `json:"next_run,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
