package models

import (
	"strings"
	"time"
)

// WeekBudget maps each weekday to the study hours available on it. Zero
// hours marks a rest day. All seven weekdays must be present; validation
// enforces that before a budget reaches the planner.
type WeekBudget map[time.Weekday]float64

// Weekdays lists the seven days in budget display order, Monday first.
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

func (b WeekBudget) Total() float64 {
	var sum float64
	for _, h := range b {
		sum += h
	}
	return sum
}

// ParseWeekday accepts full weekday names and three-letter abbreviations,
// case-insensitively.
func ParseWeekday(s string) (time.Weekday, bool) {
	for _, wd := range Weekdays {
		name := wd.String()
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:3]) {
			return wd, true
		}
	}
	return time.Sunday, false
}
