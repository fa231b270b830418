package models

import "time"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank maps a priority to its sort position. Lower rank = more urgent.
// Unknown values rank as medium, matching how malformed input is treated
// elsewhere.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s), true
	}
	return "", false
}

type Task struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Subject        string   `json:"subject"`
	Deadline       string   `json:"deadline"` // YYYY-MM-DD format
	EstimatedHours float64  `json:"estimated_hours"`
	RemainingHours float64  `json:"remaining_hours"`
	Priority       Priority `json:"priority"`
	Completed      bool     `json:"completed"`
	CreatedAt      string   `json:"created_at"`           // RFC3339 timestamp
	DeletedAt      *string  `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// DeadlineDate parses the task deadline. The zero time is returned for a
// malformed deadline; validation rejects those before planning starts.
func (t Task) DeadlineDate() time.Time {
	d, err := time.Parse("2006-01-02", t.Deadline)
	if err != nil {
		return time.Time{}
	}
	return d
}
