package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// SessionList stores the per-agent session breakdown as opaque JSON; the
// dashboard renders it without the backend interpreting individual fields
type SessionList []map[string]interface{}

// Value implements driver.Valuer
func (l SessionList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *SessionList) Scan(value interface{}) error {
	if value == nil {
		*l = SessionList{}
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
		*l = SessionList{}
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// UsageSnapshot is one periodic usage report written by an external cron job
type UsageSnapshot struct {
	ID               string      `json:"id" gorm:"primaryKey"`
	TotalTokens      int64       `json:"total_tokens"`
	TotalSessions    int         `json:"total_sessions"`
	EstimatedCost    float64     `json:"estimated_cost"`
	CompactionEvents int         `json:"compaction_events"`
	Model            string      `json:"model"`
	Sessions         SessionList `json:"sessions" gorm:"type:text"`
	Summary          string      `json:"summary,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

// TableName specifies the table name for GORM
func (UsageSnapshot) TableName() string {
	return "usage_snapshots"
}
