package domain

import "time"

// Event categories rendered by the dashboard
const (
	TypeCompleted = "Completed"
	TypeFromCall  = "From Call"
	TypeTask      = "Task"
	TypeRecurring = "Recurring"
	TypeReport    = "Report"
)

// Event is one entry in the derived activity feed. Events are reconstructed
// from task records on every read and never persisted, so the struct is a
// pure view shape: client-facing camelCase, color classes included.
type Event struct {
	ID          string `json:"id"`
	TaskID      string `json:"taskId,omitempty"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Color       string `json:"color"`
	Time        string `json:"time"`
	TimeRel     string `json:"timeRel"`

	// Enrichment copied from the task's provenance payload
	Assignee     string   `json:"assignee,omitempty"`
	Requester    string   `json:"requester,omitempty"`
	CallTitle    string   `json:"callTitle,omitempty"`
	CallURL      string   `json:"callUrl,omitempty"`
	SlackURL     string   `json:"slackUrl,omitempty"`
	DocURL       string   `json:"docUrl,omitempty"`
	Participants []string `json:"participants,omitempty"`

	// At is the sort key; Time above is its serialized form
	At time.Time `json:"-"`
}
