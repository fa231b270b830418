package planner

import (
	"sort"
	"time"

	"github.com/calebmoran/studyweek/internal/models"
)

// urgencyKey orders tasks for allocation. Fields are compared
// most-significant first: overdue work beats everything, then the nearest
// deadline, then priority, then the larger remaining effort so big tasks
// are not starved of early slots.
type urgencyKey struct {
	overdue   bool
	daysLeft  int
	priority  int
	remaining float64
}

func scoreTask(t models.Task, today time.Time) urgencyKey {
	daysLeft := daysBetween(today, t.DeadlineDate())
	return urgencyKey{
		overdue:   daysLeft < 0,
		daysLeft:  daysLeft,
		priority:  t.Priority.Rank(),
		remaining: t.RemainingHours,
	}
}

func (k urgencyKey) less(other urgencyKey) bool {
	if k.overdue != other.overdue {
		return k.overdue
	}
	if k.daysLeft != other.daysLeft {
		return k.daysLeft < other.daysLeft
	}
	if k.priority != other.priority {
		return k.priority < other.priority
	}
	return k.remaining > other.remaining
}

// sortTasks returns active tasks in allocation order. Completed tasks and
// tasks with no remaining work are dropped; overdue tasks stay in so their
// shortfall is surfaced rather than silently ignored. The input slice is
// never mutated. Task ID is the final tie-break so identical inputs always
// produce identical orderings regardless of input order.
func sortTasks(tasks []models.Task, today time.Time) []models.Task {
	active := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed || t.DeletedAt != nil {
			continue
		}
		if t.RemainingHours <= hoursEpsilon {
			continue
		}
		active = append(active, t)
	}

	sort.SliceStable(active, func(i, j int) bool {
		ki := scoreTask(active[i], today)
		kj := scoreTask(active[j], today)
		if ki != kj {
			return ki.less(kj)
		}
		return active[i].ID < active[j].ID
	})

	return active
}

// daysBetween returns the whole calendar days from a to b, negative when b
// is earlier. Both times are truncated to their dates first.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
