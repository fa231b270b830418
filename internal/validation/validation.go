package validation

import (
	"fmt"
	"time"

	"github.com/calebmoran/studyweek/internal/models"
)

// ConflictType classifies an input problem found before planning.
type ConflictType string

const (
	ConflictInvalidDeadline  ConflictType = "invalid_deadline"
	ConflictNegativeHours    ConflictType = "negative_hours"
	ConflictRemainingTooHigh ConflictType = "remaining_exceeds_estimate"
	ConflictMissingTitle     ConflictType = "missing_title"
	ConflictInvalidPriority  ConflictType = "invalid_priority"
	ConflictMissingBudgetDay ConflictType = "missing_budget_day"
	ConflictNegativeBudget   ConflictType = "negative_budget"
)

// Conflict is one rejected field with enough context to fix it.
type Conflict struct {
	Type        ConflictType
	Description string
	TaskID      string // empty for budget conflicts
}

type ValidationResult struct {
	Conflicts []Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts.
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "All inputs valid."
	}

	report := "Invalid input:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Err converts the result into an error for callers that want to refuse
// planning outright. Returns nil when everything validated.
func (vr *ValidationResult) Err() error {
	if !vr.HasConflicts() {
		return nil
	}
	return fmt.Errorf("%s", vr.FormatReport())
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateTasks checks task records for problems that must stop planning.
// Deleted tasks are skipped; completed tasks are still checked so a bad
// record surfaces before it is ever reactivated.
func (v *Validator) ValidateTasks(tasks []models.Task) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for _, task := range tasks {
		if task.DeletedAt != nil {
			continue
		}

		if task.Title == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingTitle,
				Description: fmt.Sprintf("Task %s has no title", task.ID),
				TaskID:      task.ID,
			})
		}

		if _, err := time.Parse("2006-01-02", task.Deadline); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDeadline,
				Description: fmt.Sprintf("Task %q has malformed deadline %q, want YYYY-MM-DD", task.Title, task.Deadline),
				TaskID:      task.ID,
			})
		}

		if task.EstimatedHours <= 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNegativeHours,
				Description: fmt.Sprintf("Task %q has non-positive estimated hours: %g", task.Title, task.EstimatedHours),
				TaskID:      task.ID,
			})
		}

		if task.RemainingHours < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNegativeHours,
				Description: fmt.Sprintf("Task %q has negative remaining hours: %g", task.Title, task.RemainingHours),
				TaskID:      task.ID,
			})
		}

		if task.RemainingHours > task.EstimatedHours {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictRemainingTooHigh,
				Description: fmt.Sprintf("Task %q has %g remaining hours, more than the %g estimated", task.Title, task.RemainingHours, task.EstimatedHours),
				TaskID:      task.ID,
			})
		}

		if _, ok := models.ParsePriority(string(task.Priority)); !ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidPriority,
				Description: fmt.Sprintf("Task %q has unknown priority %q", task.Title, task.Priority),
				TaskID:      task.ID,
			})
		}
	}

	return result
}

// ValidateBudget checks that all seven weekdays carry a non-negative hour
// budget.
func (v *Validator) ValidateBudget(budget models.WeekBudget) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for _, wd := range models.Weekdays {
		hours, ok := budget[wd]
		if !ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingBudgetDay,
				Description: fmt.Sprintf("Budget has no entry for %s", wd),
			})
			continue
		}
		if hours < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNegativeBudget,
				Description: fmt.Sprintf("Budget for %s is negative: %g", wd, hours),
			})
		}
	}

	return result
}

// ValidateInputs combines task and budget validation for the plan
// commands.
func (v *Validator) ValidateInputs(tasks []models.Task, budget models.WeekBudget) ValidationResult {
	taskResult := v.ValidateTasks(tasks)
	budgetResult := v.ValidateBudget(budget)
	return ValidationResult{Conflicts: append(taskResult.Conflicts, budgetResult.Conflicts...)}
}
