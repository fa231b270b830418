package cli

import (
	"fmt"
	"strings"

	"github.com/calebmoran/studyweek/internal/models"
)

type BudgetShowCmd struct{}

func (c *BudgetShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	budget := settings.WeekBudget()
	fmt.Println("Available study hours:")
	for _, wd := range models.Weekdays {
		fmt.Printf("  %-9s %s\n", wd.String(), formatHours(budget[wd]))
	}
	fmt.Printf("\nWeekly capacity: %s\n", formatHours(budget.Total()))
	fmt.Printf("Due-soon warning window: %d days\n", settings.DueSoonDays)

	return nil
}

type BudgetSetCmd struct {
	Day   string   `arg:"" optional:"" help:"Weekday to change (e.g. monday, sat)."`
	Hours *float64 `arg:"" optional:"" help:"Hours available on that day."`

	DueSoonDays *int `help:"Days ahead to warn about approaching deadlines."`
}

func (c *BudgetSetCmd) Validate() error {
	if (c.Day == "") != (c.Hours == nil) {
		return fmt.Errorf("day and hours must be given together")
	}
	if c.Day == "" && c.DueSoonDays == nil {
		return fmt.Errorf("nothing to set")
	}
	if c.Day != "" {
		if _, ok := models.ParseWeekday(c.Day); !ok {
			return fmt.Errorf("invalid weekday: %s", c.Day)
		}
		if *c.Hours < 0 {
			return fmt.Errorf("hours must not be negative")
		}
	}
	if c.DueSoonDays != nil && *c.DueSoonDays < 0 {
		return fmt.Errorf("due-soon window must not be negative")
	}
	return nil
}

func (c *BudgetSetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	if c.Day != "" {
		settings.SetDayHours(c.Day, *c.Hours)
		wd, _ := models.ParseWeekday(c.Day)
		fmt.Printf("Set %s to %s\n", strings.ToLower(wd.String()), formatHours(*c.Hours))
	}
	if c.DueSoonDays != nil {
		settings.DueSoonDays = *c.DueSoonDays
		fmt.Printf("Set due-soon window to %d days\n", *c.DueSoonDays)
	}

	return ctx.Store.SaveSettings(settings)
}
