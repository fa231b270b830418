package cli

import (
	"fmt"
	"sort"

	"github.com/calebmoran/studyweek/internal/planner"
)

type ReportCmd struct{}

func (c *ReportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	plan, err := ctx.Store.GetLatestPlan()
	if err != nil {
		return fmt.Errorf("no plan to report on: %w", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}

	today, _ := parseDate("today")
	report := planner.Aggregate(plan, tasks, today, settings.DueSoonDays)

	fmt.Printf("Report for the week of %s:\n\n", plan.Week())

	if len(report.SubjectHours) == 0 {
		fmt.Println("No sessions in the plan.")
	} else {
		fmt.Println("Planned hours per subject:")
		subjects := make([]string, 0, len(report.SubjectHours))
		for subject := range report.SubjectHours {
			subjects = append(subjects, subject)
		}
		sort.Strings(subjects)
		for _, subject := range subjects {
			fmt.Printf("  %-20s %s\n", subject, formatHours(report.SubjectHours[subject]))
		}
		fmt.Printf("  %-20s %s\n", "total", formatHours(report.TotalHours))
	}

	printWarnings(ctx, report)
	return nil
}
