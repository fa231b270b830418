package cli

import "fmt"

type TaskDoneCmd struct {
	ID string `arg:"" help:"ID of the task to mark as completed."`
}

func (c *TaskDoneCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return err
	}
	if task.Completed {
		fmt.Printf("Task already completed: %s\n", task.Title)
		return nil
	}

	task.Completed = true
	task.RemainingHours = 0

	if err := ctx.Store.UpdateTask(task); err != nil {
		return err
	}

	fmt.Printf("Marked as completed: %s\n", task.Title)
	return nil
}
