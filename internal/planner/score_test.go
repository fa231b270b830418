package planner

import (
	"testing"
	"time"

	"github.com/calebmoran/studyweek/internal/models"
)

func TestSortTasks_Ordering(t *testing.T) {
	today := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	tasks := []models.Task{
		{ID: "later-deadline", Deadline: "2026-01-10", RemainingHours: 2, Priority: models.PriorityHigh},
		{ID: "overdue", Deadline: "2026-01-03", RemainingHours: 1, Priority: models.PriorityLow},
		{ID: "soon-low", Deadline: "2026-01-07", RemainingHours: 2, Priority: models.PriorityLow},
		{ID: "soon-high", Deadline: "2026-01-07", RemainingHours: 2, Priority: models.PriorityHigh},
		{ID: "soon-high-big", Deadline: "2026-01-07", RemainingHours: 5, Priority: models.PriorityHigh},
	}

	sorted := sortTasks(tasks, today)

	want := []string{"overdue", "soon-high-big", "soon-high", "soon-low", "later-deadline"}
	if len(sorted) != len(want) {
		t.Fatalf("Got %d tasks, want %d", len(sorted), len(want))
	}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Errorf("Position %d: got %s, want %s", i, sorted[i].ID, id)
		}
	}
}

func TestSortTasks_ExcludesFinishedWork(t *testing.T) {
	today := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	deleted := "2026-01-01T00:00:00Z"

	tasks := []models.Task{
		{ID: "completed", Deadline: "2026-01-09", RemainingHours: 3, Completed: true},
		{ID: "zero-left", Deadline: "2026-01-09", RemainingHours: 0},
		{ID: "deleted", Deadline: "2026-01-09", RemainingHours: 3, DeletedAt: &deleted},
		{ID: "keep", Deadline: "2026-01-09", RemainingHours: 3},
	}

	sorted := sortTasks(tasks, today)

	if len(sorted) != 1 || sorted[0].ID != "keep" {
		t.Errorf("Expected only the active task, got %+v", sorted)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 1, 5, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 1, 8, 0, 1, 0, 0, time.UTC)

	if got := daysBetween(a, b); got != 3 {
		t.Errorf("daysBetween = %d, want 3 (clock time must not matter)", got)
	}
	if got := daysBetween(b, a); got != -3 {
		t.Errorf("daysBetween reversed = %d, want -3", got)
	}
}
