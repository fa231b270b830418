package cli

import (
	"fmt"
	"time"

	"github.com/calebmoran/studyweek/internal/planner"
	"github.com/calebmoran/studyweek/internal/validation"
)

// RescheduleCmd replans the rest of the week after a missed day. The hours
// planned for the missed day were never logged, so the task snapshot still
// carries them as remaining work; replanning simply spreads that work over
// the days that remain.
type RescheduleCmd struct {
	Missed string `arg:"" help:"Day whose plan went unexecuted (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *RescheduleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	missed, err := parseDate(c.Missed)
	if err != nil {
		return err
	}
	today, _ := parseDate("today")

	previous, err := ctx.Store.GetLatestPlan()
	if err != nil {
		return fmt.Errorf("nothing to reschedule: %w", err)
	}

	// Anchor on the week the stored plan belongs to. A rescheduled plan's
	// Start is its mid-week resume day, so using Start here would let each
	// reschedule push the window past the week's actual end.
	week := previous.Week()
	weekStart, err := time.Parse("2006-01-02", week)
	if err != nil {
		return fmt.Errorf("stored plan has malformed week start %q: %w", week, err)
	}

	missedStr := missed.Format("2006-01-02")
	if missedStr < week || missedStr > weekStart.AddDate(0, 0, 6).Format("2006-01-02") {
		return fmt.Errorf("day %s is outside the planned week starting %s", missedStr, week)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	budget := settings.WeekBudget()

	if result := validation.New().ValidateInputs(tasks, budget); result.HasConflicts() {
		return result.Err()
	}

	plan := ctx.Planner.Reschedule(tasks, budget, weekStart, missed, today)
	plan.GeneratedAt = time.Now().Format(time.RFC3339)

	start, _ := time.Parse("2006-01-02", plan.Start)
	printPlan(plan, tasks, start, weekStart.AddDate(0, 0, 6))
	printWarnings(ctx, planner.Aggregate(plan, tasks, today, settings.DueSoonDays))

	if err := ctx.Store.SavePlan(plan); err != nil {
		return err
	}
	fmt.Printf("\nRescheduled the rest of the week (missed %s not credited).\n", missedStr)
	return nil
}
