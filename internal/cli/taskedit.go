package cli

import (
	"fmt"
	"time"

	"github.com/calebmoran/studyweek/internal/models"
)

type TaskEditCmd struct {
	ID       string   `arg:"" help:"ID of the task to edit."`
	Title    string   `help:"New title."`
	Subject  string   `short:"s" help:"New subject."`
	Deadline string   `short:"d" help:"New deadline (YYYY-MM-DD)."`
	Hours    *float64 `short:"H" help:"New estimated hours."`
	Priority string   `short:"p" help:"New priority (high|medium|low)."`
}

func (c *TaskEditCmd) Validate() error {
	if c.Deadline != "" {
		if _, err := time.Parse("2006-01-02", c.Deadline); err != nil {
			return fmt.Errorf("invalid deadline, use YYYY-MM-DD: %w", err)
		}
	}
	if c.Hours != nil && *c.Hours <= 0 {
		return fmt.Errorf("hours must be positive")
	}
	if c.Priority != "" {
		if _, ok := models.ParsePriority(c.Priority); !ok {
			return fmt.Errorf("invalid priority: %s", c.Priority)
		}
	}
	return nil
}

func (c *TaskEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return err
	}

	if c.Title != "" {
		task.Title = c.Title
	}
	if c.Subject != "" {
		task.Subject = c.Subject
	}
	if c.Deadline != "" {
		task.Deadline = c.Deadline
	}
	if c.Hours != nil {
		// Re-estimating scales the work left; untouched work stays untouched
		done := task.EstimatedHours - task.RemainingHours
		task.EstimatedHours = *c.Hours
		task.RemainingHours = *c.Hours - done
		if task.RemainingHours < 0 {
			task.RemainingHours = 0
		}
	}
	if c.Priority != "" {
		task.Priority, _ = models.ParsePriority(c.Priority)
	}

	if err := ctx.Store.UpdateTask(task); err != nil {
		return err
	}

	fmt.Printf("Updated task: %s\n", task.Title)
	return nil
}
