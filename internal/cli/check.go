package cli

import (
	"fmt"

	"github.com/calebmoran/studyweek/internal/validation"
)

type CheckCmd struct{}

func (c *CheckCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}

	validator := validation.New()
	result := validator.ValidateInputs(tasks, settings.WeekBudget())
	fmt.Print(result.FormatReport())
	if result.HasConflicts() {
		return fmt.Errorf("found %d conflict(s)", len(result.Conflicts))
	}
	return nil
}
