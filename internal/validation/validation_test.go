package validation

import (
	"testing"
	"time"

	"github.com/calebmoran/studyweek/internal/models"
)

func validTask() models.Task {
	return models.Task{
		ID:             "t1",
		Title:          "Essay",
		Subject:        "History",
		Deadline:       "2026-01-09",
		EstimatedHours: 4,
		RemainingHours: 4,
		Priority:       models.PriorityMedium,
	}
}

func fullBudget(hours float64) models.WeekBudget {
	budget := make(models.WeekBudget, 7)
	for _, wd := range models.Weekdays {
		budget[wd] = hours
	}
	return budget
}

func TestValidateTasks_AcceptsValidTask(t *testing.T) {
	v := New()

	result := v.ValidateTasks([]models.Task{validTask()})

	if result.HasConflicts() {
		t.Errorf("Unexpected conflicts: %s", result.FormatReport())
	}
	if err := result.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestValidateTasks_Conflicts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Task)
		want   ConflictType
	}{
		{"malformed deadline", func(task *models.Task) { task.Deadline = "09-01-2026" }, ConflictInvalidDeadline},
		{"empty deadline", func(task *models.Task) { task.Deadline = "" }, ConflictInvalidDeadline},
		{"zero estimate", func(task *models.Task) { task.EstimatedHours = 0; task.RemainingHours = 0 }, ConflictNegativeHours},
		{"negative remaining", func(task *models.Task) { task.RemainingHours = -1 }, ConflictNegativeHours},
		{"remaining above estimate", func(task *models.Task) { task.RemainingHours = 10 }, ConflictRemainingTooHigh},
		{"missing title", func(task *models.Task) { task.Title = "" }, ConflictMissingTitle},
		{"unknown priority", func(task *models.Task) { task.Priority = "urgent" }, ConflictInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			task := validTask()
			tt.mutate(&task)

			result := v.ValidateTasks([]models.Task{task})

			if !result.HasConflicts() {
				t.Fatalf("Expected a conflict, got none")
			}
			found := false
			for _, c := range result.Conflicts {
				if c.Type == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected conflict type %s, got %+v", tt.want, result.Conflicts)
			}
		})
	}
}

func TestValidateTasks_SkipsDeletedTasks(t *testing.T) {
	v := New()
	deleted := "2026-01-01T00:00:00Z"
	task := validTask()
	task.Deadline = "not-a-date"
	task.DeletedAt = &deleted

	result := v.ValidateTasks([]models.Task{task})

	if result.HasConflicts() {
		t.Errorf("Deleted task should be skipped, got: %s", result.FormatReport())
	}
}

func TestValidateBudget(t *testing.T) {
	v := New()

	t.Run("complete budget passes", func(t *testing.T) {
		if result := v.ValidateBudget(fullBudget(2)); result.HasConflicts() {
			t.Errorf("Unexpected conflicts: %s", result.FormatReport())
		}
	})

	t.Run("zero hours are allowed", func(t *testing.T) {
		if result := v.ValidateBudget(fullBudget(0)); result.HasConflicts() {
			t.Errorf("Rest days must be valid: %s", result.FormatReport())
		}
	})

	t.Run("missing weekday", func(t *testing.T) {
		budget := fullBudget(2)
		delete(budget, time.Wednesday)

		result := v.ValidateBudget(budget)

		if len(result.Conflicts) != 1 || result.Conflicts[0].Type != ConflictMissingBudgetDay {
			t.Errorf("Conflicts = %+v, want one missing_budget_day", result.Conflicts)
		}
	})

	t.Run("negative hours", func(t *testing.T) {
		budget := fullBudget(2)
		budget[time.Friday] = -1

		result := v.ValidateBudget(budget)

		if len(result.Conflicts) != 1 || result.Conflicts[0].Type != ConflictNegativeBudget {
			t.Errorf("Conflicts = %+v, want one negative_budget", result.Conflicts)
		}
	})
}

func TestValidateInputs_CombinesResults(t *testing.T) {
	v := New()
	task := validTask()
	task.EstimatedHours = -2
	budget := fullBudget(2)
	delete(budget, time.Sunday)

	result := v.ValidateInputs([]models.Task{task}, budget)

	if len(result.Conflicts) < 2 {
		t.Errorf("Expected task and budget conflicts together, got %+v", result.Conflicts)
	}
	if result.Err() == nil {
		t.Errorf("Err() = nil, want an error")
	}
}
