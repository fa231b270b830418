package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/calebmoran/studyweek/internal/models"
)

type TaskAddCmd struct {
	Title    string  `arg:"" help:"Task title."`
	Subject  string  `short:"s" help:"Subject or course (e.g. 'Java', 'AI')." required:""`
	Deadline string  `short:"d" help:"Deadline (YYYY-MM-DD)." required:""`
	Hours    float64 `short:"H" help:"Estimated hours of work." required:""`
	Priority string  `short:"p" help:"Priority (high|medium|low)." default:"medium"`
}

func (c *TaskAddCmd) Validate() error {
	if c.Hours <= 0 {
		return fmt.Errorf("hours must be positive")
	}
	if _, err := time.Parse("2006-01-02", c.Deadline); err != nil {
		return fmt.Errorf("invalid deadline, use YYYY-MM-DD: %w", err)
	}
	if _, ok := models.ParsePriority(c.Priority); !ok {
		return fmt.Errorf("invalid priority: %s", c.Priority)
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	priority, _ := models.ParsePriority(c.Priority)

	task := models.Task{
		ID:             uuid.New().String(),
		Title:          c.Title,
		Subject:        c.Subject,
		Deadline:       c.Deadline,
		EstimatedHours: c.Hours,
		RemainingHours: c.Hours,
		Priority:       priority,
		Completed:      false,
		CreatedAt:      time.Now().Format(time.RFC3339),
	}

	if err := ctx.Store.AddTask(task); err != nil {
		return err
	}

	fmt.Printf("Added task: %s (ID: %s)\n", c.Title, task.ID)
	return nil
}
