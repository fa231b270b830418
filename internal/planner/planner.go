package planner

import (
	"math"
	"sort"
	"time"

	"github.com/calebmoran/studyweek/internal/models"
)

const (
	// daysPerWeek is the planning window for a fresh plan.
	daysPerWeek = 7

	// hoursEpsilon is the smallest slice of work worth tracking. Amounts
	// below it are treated as zero so float drift never produces phantom
	// sessions or phantom shortfalls.
	hoursEpsilon = 0.01
)

type Planner struct{}

func New() *Planner {
	return &Planner{}
}

// Allocate builds a week plan from start. Tasks are taken in urgency order
// and each one greedily fills the earliest days that still have capacity,
// never scheduling past the task's deadline. Day budgets are a hard
// cap; deadline fit is best effort, and whatever cannot be placed lands in
// WeekPlan.Unscheduled.
//
// Inputs are assumed validated (see internal/validation); Allocate never
// fails. It does not mutate tasks or budget.
func (p *Planner) Allocate(tasks []models.Task, budget models.WeekBudget, start, today time.Time) models.WeekPlan {
	return p.allocate(tasks, budget, start, today, daysPerWeek)
}

func (p *Planner) allocate(tasks []models.Task, budget models.WeekBudget, start, today time.Time, days int) models.WeekPlan {
	start = dateOnly(start)

	plan := models.WeekPlan{
		Start:     start.Format("2006-01-02"),
		WeekStart: start.Format("2006-01-02"),
		Sessions:  []models.Session{},
	}

	ordered := sortTasks(tasks, today)

	capacity := make([]float64, days)
	for i := range capacity {
		capacity[i] = budget[start.AddDate(0, 0, i).Weekday()]
	}

	unscheduled := make(map[string]float64)
	for _, task := range ordered {
		remaining := task.RemainingHours

		// Sessions may run up to and including the deadline day, never
		// past it. A task whose deadline already lies before the window
		// has no such day left, so it may use the whole window instead:
		// it sorts first and should be finished as soon as possible, not
		// dropped.
		lastDay := days - 1
		if until := daysBetween(start, task.DeadlineDate()); until >= 0 && until < lastDay {
			lastDay = until
		}

		for i := 0; i <= lastDay && remaining > hoursEpsilon; i++ {
			if capacity[i] <= hoursEpsilon {
				continue
			}
			alloc := math.Min(remaining, capacity[i])
			plan.Sessions = append(plan.Sessions, models.Session{
				Date:   start.AddDate(0, 0, i).Format("2006-01-02"),
				TaskID: task.ID,
				Hours:  alloc,
			})
			remaining -= alloc
			capacity[i] -= alloc
		}

		if remaining > hoursEpsilon {
			unscheduled[task.ID] = roundHours(remaining)
		}
	}

	if len(unscheduled) > 0 {
		plan.Unscheduled = unscheduled
	}

	// Sessions were appended task-major; present them day-major. The
	// stable sort keeps urgency order within each day.
	sort.SliceStable(plan.Sessions, func(i, j int) bool {
		return plan.Sessions[i].Date < plan.Sessions[j].Date
	})

	return plan
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
