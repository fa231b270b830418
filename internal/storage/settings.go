package storage

import (
	"strings"

	"github.com/calebmoran/studyweek/internal/models"
)

// Settings holds the user's planning configuration. The budget is keyed by
// lowercase weekday name so the persisted form stays readable.
type Settings struct {
	Budget      map[string]float64 `json:"budget"`
	DueSoonDays int                `json:"due_soon_days"`
}

// DefaultSettings mirrors the suggested starting week: two hours on
// weekdays, four on weekend days, a three-day due-soon warning.
func DefaultSettings() Settings {
	return Settings{
		Budget: map[string]float64{
			"monday":    2,
			"tuesday":   2,
			"wednesday": 2,
			"thursday":  2,
			"friday":    2,
			"saturday":  4,
			"sunday":    4,
		},
		DueSoonDays: 3,
	}
}

// WeekBudget converts the persisted name-keyed budget to the planner's
// weekday-keyed form. Unknown day names are dropped; validation flags the
// resulting gap before planning.
func (s Settings) WeekBudget() models.WeekBudget {
	budget := make(models.WeekBudget, len(s.Budget))
	for name, hours := range s.Budget {
		if wd, ok := models.ParseWeekday(name); ok {
			budget[wd] = hours
		}
	}
	return budget
}

// SetDayHours updates a single day's budget in place.
func (s *Settings) SetDayHours(name string, hours float64) bool {
	wd, ok := models.ParseWeekday(name)
	if !ok {
		return false
	}
	if s.Budget == nil {
		s.Budget = make(map[string]float64, 7)
	}
	s.Budget[strings.ToLower(wd.String())] = hours
	return true
}
