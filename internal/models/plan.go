package models

// Session is one allocated slice of work: a task studied for some hours on
// a specific day.
type Session struct {
	Date   string  `json:"date"` // YYYY-MM-DD format
	TaskID string  `json:"task_id"`
	Hours  float64 `json:"hours"`
}

// WeekPlan is the allocator's output: sessions in day order plus the hours
// that could not be placed, keyed by task id. A task appearing in
// Unscheduled is not an error condition; it means capacity or deadlines
// were too tight and the user should adjust and replan.
//
// Start is the first day planning covers; WeekStart anchors the week the
// plan belongs to. They match on a fresh plan and diverge when a
// reschedule resumes mid-week, so later reschedules still know where the
// week ends.
type WeekPlan struct {
	Start       string             `json:"start"`                   // YYYY-MM-DD format
	WeekStart   string             `json:"week_start,omitempty"`    // YYYY-MM-DD format
	GeneratedAt string             `json:"generated_at,omitempty"`  // RFC3339 timestamp
	Sessions    []Session          `json:"sessions"`
	Unscheduled map[string]float64 `json:"unscheduled,omitempty"`
	DeletedAt   *string            `json:"deleted_at,omitempty"`    // RFC3339 timestamp
}

// Week returns the plan's anchoring week start, falling back to Start for
// plans saved before WeekStart existed.
func (p WeekPlan) Week() string {
	if p.WeekStart != "" {
		return p.WeekStart
	}
	return p.Start
}

// Report is derived from a plan for display. It is recomputed on demand and
// never persisted.
type Report struct {
	SubjectHours map[string]float64 `json:"subject_hours"`
	TotalHours   float64            `json:"total_hours"`
	Overdue      []string           `json:"overdue"`  // task ids
	DueSoon      []string           `json:"due_soon"` // task ids
	Unscheduled  map[string]float64 `json:"unscheduled"`
}
