package planner

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/calebmoran/studyweek/internal/models"
)

// 2026-01-05 is a Monday.
var monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func weekdayBudget(mon, tue, wed, thu, fri, sat, sun float64) models.WeekBudget {
	return models.WeekBudget{
		time.Monday:    mon,
		time.Tuesday:   tue,
		time.Wednesday: wed,
		time.Thursday:  thu,
		time.Friday:    fri,
		time.Saturday:  sat,
		time.Sunday:    sun,
	}
}

func taskHours(plan models.WeekPlan, taskID string) float64 {
	var sum float64
	for _, s := range plan.Sessions {
		if s.TaskID == taskID {
			sum += s.Hours
		}
	}
	return sum
}

func dayHours(plan models.WeekPlan, date string) float64 {
	var sum float64
	for _, s := range plan.Sessions {
		if s.Date == date {
			sum += s.Hours
		}
	}
	return sum
}

func TestAllocate_SingleTaskFillsEarliestDays(t *testing.T) {
	p := New()

	tasks := []models.Task{
		{
			ID:             "essay",
			Title:          "History essay",
			Subject:        "History",
			Deadline:       "2026-01-09", // Friday
			EstimatedHours: 6,
			RemainingHours: 6,
			Priority:       models.PriorityMedium,
		},
	}
	budget := weekdayBudget(2, 2, 2, 2, 2, 0, 0)

	plan := p.Allocate(tasks, budget, monday, monday)

	want := []models.Session{
		{Date: "2026-01-05", TaskID: "essay", Hours: 2},
		{Date: "2026-01-06", TaskID: "essay", Hours: 2},
		{Date: "2026-01-07", TaskID: "essay", Hours: 2},
	}
	if !reflect.DeepEqual(plan.Sessions, want) {
		t.Errorf("Sessions = %+v, want %+v", plan.Sessions, want)
	}
	if len(plan.Unscheduled) != 0 {
		t.Errorf("Expected no unscheduled hours, got %v", plan.Unscheduled)
	}
}

func TestAllocate_HighPriorityWinsScarceCapacity(t *testing.T) {
	p := New()

	// Both tasks due Wednesday, 6h of capacity through Wednesday. The high
	// priority task must be fully placed; the low one gets the leftover.
	tasks := []models.Task{
		{ID: "low", Deadline: "2026-01-07", EstimatedHours: 4, RemainingHours: 4, Priority: models.PriorityLow},
		{ID: "high", Deadline: "2026-01-07", EstimatedHours: 4, RemainingHours: 4, Priority: models.PriorityHigh},
	}
	budget := weekdayBudget(2, 2, 2, 0, 0, 0, 0)

	plan := p.Allocate(tasks, budget, monday, monday)

	if got := taskHours(plan, "high"); got != 4 {
		t.Errorf("High priority task scheduled %.1fh, want 4h", got)
	}
	if got := taskHours(plan, "low"); got != 2 {
		t.Errorf("Low priority task scheduled %.1fh, want 2h", got)
	}
	if got := plan.Unscheduled["low"]; got != 2 {
		t.Errorf("Unscheduled[low] = %.1f, want 2", got)
	}
	if _, ok := plan.Unscheduled["high"]; ok {
		t.Errorf("High priority task should not be unscheduled: %v", plan.Unscheduled)
	}
}

func TestAllocate_ZeroBudgetReportsEverything(t *testing.T) {
	p := New()

	tasks := []models.Task{
		{ID: "a", Deadline: "2026-01-09", EstimatedHours: 3, RemainingHours: 3, Priority: models.PriorityHigh},
		{ID: "b", Deadline: "2026-01-10", EstimatedHours: 1.5, RemainingHours: 1.5, Priority: models.PriorityLow},
	}
	budget := weekdayBudget(0, 0, 0, 0, 0, 0, 0)

	plan := p.Allocate(tasks, budget, monday, monday)

	if len(plan.Sessions) != 0 {
		t.Errorf("Expected zero sessions, got %+v", plan.Sessions)
	}
	if plan.Unscheduled["a"] != 3 || plan.Unscheduled["b"] != 1.5 {
		t.Errorf("Unscheduled = %v, want a:3 b:1.5", plan.Unscheduled)
	}
}

func TestAllocate_EmptyTaskListIsNotAnError(t *testing.T) {
	p := New()

	plan := p.Allocate(nil, weekdayBudget(2, 2, 2, 2, 2, 4, 4), monday, monday)

	if len(plan.Sessions) != 0 || len(plan.Unscheduled) != 0 {
		t.Errorf("Expected empty plan, got %+v", plan)
	}
	if plan.Start != "2026-01-05" {
		t.Errorf("Start = %s, want 2026-01-05", plan.Start)
	}
}

func TestAllocate_NeverSchedulesPastDeadline(t *testing.T) {
	p := New()

	tasks := []models.Task{
		{ID: "quiz", Deadline: "2026-01-06", EstimatedHours: 5, RemainingHours: 5, Priority: models.PriorityHigh},
	}
	budget := weekdayBudget(2, 2, 2, 2, 2, 2, 2)

	plan := p.Allocate(tasks, budget, monday, monday)

	for _, s := range plan.Sessions {
		if s.Date > "2026-01-06" {
			t.Errorf("Session on %s is past the deadline", s.Date)
		}
	}
	if got := taskHours(plan, "quiz"); got != 4 {
		t.Errorf("Scheduled %.1fh, want 4h (Mon+Tue)", got)
	}
	if got := plan.Unscheduled["quiz"]; got != 1 {
		t.Errorf("Unscheduled[quiz] = %.1f, want 1", got)
	}
}

func TestAllocate_OverdueTaskUsesWholeWindow(t *testing.T) {
	p := New()

	// Deadline already passed; the task sorts first and may be placed
	// anywhere in the window rather than being dropped.
	tasks := []models.Task{
		{ID: "late", Deadline: "2026-01-02", EstimatedHours: 3, RemainingHours: 3, Priority: models.PriorityLow},
		{ID: "fresh", Deadline: "2026-01-09", EstimatedHours: 2, RemainingHours: 2, Priority: models.PriorityHigh},
	}
	budget := weekdayBudget(2, 2, 0, 0, 0, 0, 0)

	plan := p.Allocate(tasks, budget, monday, monday)

	if got := taskHours(plan, "late"); got != 3 {
		t.Errorf("Overdue task scheduled %.1fh, want 3h", got)
	}
	if got := taskHours(plan, "fresh"); got != 1 {
		t.Errorf("Fresh task scheduled %.1fh, want the leftover 1h", got)
	}
}

func TestAllocate_SkipsCompletedAndFinishedTasks(t *testing.T) {
	p := New()

	deleted := "2026-01-04T10:00:00Z"
	tasks := []models.Task{
		{ID: "done", Deadline: "2026-01-09", EstimatedHours: 2, RemainingHours: 2, Completed: true},
		{ID: "empty", Deadline: "2026-01-09", EstimatedHours: 2, RemainingHours: 0},
		{ID: "gone", Deadline: "2026-01-09", EstimatedHours: 2, RemainingHours: 2, DeletedAt: &deleted},
	}

	plan := p.Allocate(tasks, weekdayBudget(2, 2, 2, 2, 2, 0, 0), monday, monday)

	if len(plan.Sessions) != 0 || len(plan.Unscheduled) != 0 {
		t.Errorf("Expected nothing planned or reported, got %+v", plan)
	}
}

func TestAllocate_RespectsDayBudgetAndRemainingHours(t *testing.T) {
	p := New()

	tasks := []models.Task{
		{ID: "a", Deadline: "2026-01-11", EstimatedHours: 5, RemainingHours: 3.5, Priority: models.PriorityHigh},
		{ID: "b", Deadline: "2026-01-11", EstimatedHours: 4, RemainingHours: 4, Priority: models.PriorityMedium},
		{ID: "c", Deadline: "2026-01-08", EstimatedHours: 2, RemainingHours: 1, Priority: models.PriorityLow},
	}
	budget := weekdayBudget(1.5, 2, 0, 2.5, 1, 0.5, 0)

	plan := p.Allocate(tasks, budget, monday, monday)

	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i).Format("2006-01-02")
		cap := budget[monday.AddDate(0, 0, i).Weekday()]
		if got := dayHours(plan, date); got > cap+1e-9 {
			t.Errorf("Day %s planned %.2fh, exceeds budget %.2fh", date, got, cap)
		}
	}

	for _, task := range tasks {
		if got := taskHours(plan, task.ID); got > task.RemainingHours+1e-9 {
			t.Errorf("Task %s planned %.2fh, exceeds remaining %.2fh", task.ID, got, task.RemainingHours)
		}
	}

	for _, s := range plan.Sessions {
		if s.Hours <= 0 {
			t.Errorf("Session with non-positive hours: %+v", s)
		}
	}
}

func TestAllocate_DeterministicAcrossRunsAndInputOrder(t *testing.T) {
	p := New()

	tasks := []models.Task{
		{ID: "b", Subject: "Math", Deadline: "2026-01-08", EstimatedHours: 3, RemainingHours: 3, Priority: models.PriorityMedium},
		{ID: "a", Subject: "AI", Deadline: "2026-01-08", EstimatedHours: 3, RemainingHours: 3, Priority: models.PriorityMedium},
		{ID: "c", Subject: "Java", Deadline: "2026-01-07", EstimatedHours: 2, RemainingHours: 2, Priority: models.PriorityLow},
	}
	reversed := []models.Task{tasks[2], tasks[1], tasks[0]}
	budget := weekdayBudget(2, 2, 2, 2, 0, 0, 0)

	first := p.Allocate(tasks, budget, monday, monday)
	second := p.Allocate(tasks, budget, monday, monday)
	third := p.Allocate(reversed, budget, monday, monday)

	if !reflect.DeepEqual(first.Sessions, second.Sessions) {
		t.Errorf("Same input produced different sessions:\n%+v\n%+v", first.Sessions, second.Sessions)
	}
	if !reflect.DeepEqual(first.Sessions, third.Sessions) {
		t.Errorf("Input order changed the plan:\n%+v\n%+v", first.Sessions, third.Sessions)
	}
}

func TestAllocate_DoesNotMutateInputs(t *testing.T) {
	p := New()

	tasks := []models.Task{
		{ID: "a", Deadline: "2026-01-09", EstimatedHours: 6, RemainingHours: 6, Priority: models.PriorityHigh},
	}
	budget := weekdayBudget(2, 2, 2, 2, 2, 0, 0)

	p.Allocate(tasks, budget, monday, monday)

	if tasks[0].RemainingHours != 6 {
		t.Errorf("Allocate mutated task remaining hours: %.1f", tasks[0].RemainingHours)
	}
	if budget[time.Monday] != 2 {
		t.Errorf("Allocate mutated budget: %v", budget)
	}
}

func TestAllocate_FractionalHoursAddUp(t *testing.T) {
	p := New()

	tasks := []models.Task{
		{ID: "a", Deadline: "2026-01-11", EstimatedHours: 2.75, RemainingHours: 2.75, Priority: models.PriorityHigh},
	}
	budget := weekdayBudget(1.25, 1.25, 1.25, 0, 0, 0, 0)

	plan := p.Allocate(tasks, budget, monday, monday)

	if got := taskHours(plan, "a"); math.Abs(got-2.75) > 1e-9 {
		t.Errorf("Scheduled %.4fh, want 2.75h", got)
	}
	if len(plan.Unscheduled) != 0 {
		t.Errorf("Expected no shortfall, got %v", plan.Unscheduled)
	}
}
