package planner

import (
	"reflect"
	"testing"
	"time"

	"github.com/calebmoran/studyweek/internal/models"
)

func TestAggregate_SubjectTotalsAndFlags(t *testing.T) {
	today := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	tasks := []models.Task{
		{ID: "ai-1", Subject: "AI", Deadline: "2026-01-06", RemainingHours: 4, Priority: models.PriorityHigh},
		{ID: "java-1", Subject: "Java", Deadline: "2026-01-12", RemainingHours: 2, Priority: models.PriorityMedium},
		{ID: "math-1", Subject: "Math", Deadline: "2026-01-02", RemainingHours: 3, Priority: models.PriorityLow},
	}
	plan := models.WeekPlan{
		Start: "2026-01-05",
		Sessions: []models.Session{
			{Date: "2026-01-05", TaskID: "ai-1", Hours: 2},
			{Date: "2026-01-06", TaskID: "ai-1", Hours: 2},
			{Date: "2026-01-07", TaskID: "java-1", Hours: 1.5},
		},
		Unscheduled: map[string]float64{"math-1": 3},
	}

	report := Aggregate(plan, tasks, today, DefaultDueSoonDays)

	if report.SubjectHours["AI"] != 4 || report.SubjectHours["Java"] != 1.5 {
		t.Errorf("SubjectHours = %v", report.SubjectHours)
	}
	if report.TotalHours != 5.5 {
		t.Errorf("TotalHours = %.2f, want 5.5", report.TotalHours)
	}
	if !reflect.DeepEqual(report.Overdue, []string{"math-1"}) {
		t.Errorf("Overdue = %v, want [math-1]", report.Overdue)
	}
	if !reflect.DeepEqual(report.DueSoon, []string{"ai-1"}) {
		t.Errorf("DueSoon = %v, want [ai-1]", report.DueSoon)
	}
	if report.Unscheduled["math-1"] != 3 {
		t.Errorf("Unscheduled = %v, want math-1:3", report.Unscheduled)
	}
}

func TestAggregate_OverdueIndependentOfSessions(t *testing.T) {
	today := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	// The overdue task received sessions anyway; it must still be flagged.
	tasks := []models.Task{
		{ID: "late", Subject: "AI", Deadline: "2026-01-04", RemainingHours: 3},
	}
	plan := models.WeekPlan{
		Start:    "2026-01-05",
		Sessions: []models.Session{{Date: "2026-01-05", TaskID: "late", Hours: 2}},
	}

	report := Aggregate(plan, tasks, today, DefaultDueSoonDays)

	if !reflect.DeepEqual(report.Overdue, []string{"late"}) {
		t.Errorf("Overdue = %v, want [late]", report.Overdue)
	}
}

func TestAggregate_DueSoonWindowBoundaries(t *testing.T) {
	today := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	tasks := []models.Task{
		{ID: "today", Deadline: "2026-01-05", RemainingHours: 1},
		{ID: "edge", Deadline: "2026-01-07", RemainingHours: 1},
		{ID: "past-window", Deadline: "2026-01-08", RemainingHours: 1},
	}

	report := Aggregate(models.WeekPlan{}, tasks, today, 2)

	if !reflect.DeepEqual(report.DueSoon, []string{"edge", "today"}) {
		t.Errorf("DueSoon = %v, want [edge today]", report.DueSoon)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	today := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	tasks := []models.Task{
		{ID: "a", Subject: "AI", Deadline: "2026-01-06", RemainingHours: 2},
		{ID: "b", Subject: "Java", Deadline: "2026-01-03", RemainingHours: 1},
	}
	plan := models.WeekPlan{
		Sessions:    []models.Session{{Date: "2026-01-05", TaskID: "a", Hours: 2}},
		Unscheduled: map[string]float64{"b": 1},
	}

	first := Aggregate(plan, tasks, today, DefaultDueSoonDays)
	second := Aggregate(plan, tasks, today, DefaultDueSoonDays)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Reports differ:\n%+v\n%+v", first, second)
	}
}
