package cli

import (
	"fmt"
	"sort"
)

type TaskListCmd struct {
	Subject string `short:"s" help:"Show only tasks for this subject."`
	All     bool   `help:"Include completed tasks."`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Deadline != tasks[j].Deadline {
			return tasks[i].Deadline < tasks[j].Deadline
		}
		return tasks[i].ID < tasks[j].ID
	})

	total := 0
	completed := 0
	fmt.Println("Tasks:")
	for _, task := range tasks {
		if c.Subject != "" && task.Subject != c.Subject {
			continue
		}
		total++
		if task.Completed {
			completed++
			if !c.All {
				continue
			}
		}

		status := "pending"
		if task.Completed {
			status = "done"
		}

		fmt.Printf("  [%s] %s [%s] due %s, %s of %s left, %s priority\n",
			status, task.Title, task.Subject, task.Deadline,
			formatHours(task.RemainingHours), formatHours(task.EstimatedHours),
			formatPriority(task.Priority))
		fmt.Printf("      ID: %s\n", task.ID)
	}

	if total > 0 {
		pct := completed * 100 / total
		fmt.Printf("\n%d tasks, %d completed (%d%%)\n", total, completed, pct)
	}

	return nil
}
