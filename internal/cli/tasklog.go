package cli

import "fmt"

// TaskLogCmd records confirmed study time against a task. Remaining hours
// only ever shrink through this command or 'task done'; generating or
// rescheduling a plan never touches them.
type TaskLogCmd struct {
	ID    string  `arg:"" help:"ID of the task worked on."`
	Hours float64 `arg:"" help:"Hours of work completed."`
}

func (c *TaskLogCmd) Validate() error {
	if c.Hours <= 0 {
		return fmt.Errorf("hours must be positive")
	}
	return nil
}

func (c *TaskLogCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return err
	}
	if task.Completed {
		return fmt.Errorf("task already completed: %s", task.Title)
	}

	task.RemainingHours -= c.Hours
	if task.RemainingHours <= 0 {
		task.RemainingHours = 0
		task.Completed = true
	}

	if err := ctx.Store.UpdateTask(task); err != nil {
		return err
	}

	if task.Completed {
		fmt.Printf("Logged %s on %q - task complete!\n", formatHours(c.Hours), task.Title)
	} else {
		fmt.Printf("Logged %s on %q, %s remaining\n", formatHours(c.Hours), task.Title, formatHours(task.RemainingHours))
	}
	return nil
}
