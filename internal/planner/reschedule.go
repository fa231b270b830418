package planner

import (
	"time"

	"github.com/calebmoran/studyweek/internal/models"
)

// Reschedule re-runs allocation after a missed day. Planning resumes the
// day after the missed one (or today, whichever is later) and covers only
// the remainder of the week that began at weekStart. Missed hours are not
// credited: the caller passes the same task snapshot it would pass to a
// fresh run, with RemainingHours reflecting only confirmed work, so the
// leftover simply competes for the days that are left.
//
// A missed day at the very end of the week leaves no days to plan; the
// result is then an empty plan with every active task fully unscheduled.
func (p *Planner) Reschedule(tasks []models.Task, budget models.WeekBudget, weekStart, missed, today time.Time) models.WeekPlan {
	weekStart = dateOnly(weekStart)
	start := dateOnly(missed).AddDate(0, 0, 1)
	if t := dateOnly(today); t.After(start) {
		start = t
	}

	weekEnd := weekStart.AddDate(0, 0, daysPerWeek-1)
	days := daysBetween(start, weekEnd) + 1
	if days < 0 {
		days = 0
	}

	plan := p.allocate(tasks, budget, start, today, days)
	// The plan still belongs to the week it resumes, not to its resume
	// day, so a later reschedule can recover where the week ends.
	plan.WeekStart = weekStart.Format("2006-01-02")
	return plan
}
