package planner

import (
	"sort"
	"time"

	"github.com/calebmoran/studyweek/internal/models"
)

// DefaultDueSoonDays is the lookahead for the due-soon warning when the
// user has not configured one.
const DefaultDueSoonDays = 3

// Aggregate derives the display report from a plan: planned hours per
// subject, overdue and due-soon task ids, and the unscheduled shortfall.
// Overdue and due-soon are judged against the task list and today's date,
// not against the plan, so a task that received no sessions still shows
// up. Pure; calling it twice on the same inputs yields the same report.
func Aggregate(plan models.WeekPlan, tasks []models.Task, today time.Time, dueSoonDays int) models.Report {
	report := models.Report{
		SubjectHours: make(map[string]float64),
		Overdue:      []string{},
		DueSoon:      []string{},
		Unscheduled:  make(map[string]float64),
	}

	byID := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	for _, s := range plan.Sessions {
		subject := byID[s.TaskID].Subject
		report.SubjectHours[subject] = roundHours(report.SubjectHours[subject] + s.Hours)
		report.TotalHours = roundHours(report.TotalHours + s.Hours)
	}

	for _, t := range tasks {
		if t.Completed || t.DeletedAt != nil || t.RemainingHours <= hoursEpsilon {
			continue
		}
		switch left := daysBetween(today, t.DeadlineDate()); {
		case left < 0:
			report.Overdue = append(report.Overdue, t.ID)
		case left <= dueSoonDays:
			report.DueSoon = append(report.DueSoon, t.ID)
		}
	}
	sort.Strings(report.Overdue)
	sort.Strings(report.DueSoon)

	for id, hours := range plan.Unscheduled {
		report.Unscheduled[id] = hours
	}

	return report
}
