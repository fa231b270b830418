package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/calebmoran/studyweek/internal/models"
	"github.com/calebmoran/studyweek/internal/planner"
	"github.com/calebmoran/studyweek/internal/validation"
)

var (
	dayHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dangerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type PlanCmd struct {
	Start  string `arg:"" help:"First day of the plan (YYYY-MM-DD or 'today')." default:"today"`
	Adjust string `help:"Path to a JSON file of priority/day-weight deltas applied before planning." type:"path"`
	Yes    bool   `short:"y" help:"Save the plan without asking."`
}

func (c *PlanCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	start, err := parseDate(c.Start)
	if err != nil {
		return err
	}
	today, _ := parseDate("today")

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	budget := settings.WeekBudget()

	// Reject bad input before any planning happens
	if result := validation.New().ValidateInputs(tasks, budget); result.HasConflicts() {
		return result.Err()
	}

	if c.Adjust != "" {
		adjuster := planner.FileAdjuster{Path: c.Adjust}
		deltas, err := adjuster.Adjust(tasks, budget)
		if err != nil {
			return err
		}
		tasks, budget = planner.ApplyDeltas(tasks, budget, deltas)
		fmt.Println(mutedStyle.Render("Applied adjustments from " + c.Adjust))
	}

	plan := ctx.Planner.Allocate(tasks, budget, start, today)
	plan.GeneratedAt = time.Now().Format(time.RFC3339)

	report := planner.Aggregate(plan, tasks, today, settings.DueSoonDays)
	printPlan(plan, tasks, start, start.AddDate(0, 0, 6))
	printWarnings(ctx, report)

	if !c.Yes {
		fmt.Print("\nSave this plan? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Plan discarded. Adjust tasks or budgets and regenerate.")
			return nil
		}
	}

	if err := ctx.Store.SavePlan(plan); err != nil {
		return err
	}
	fmt.Println("Plan saved!")
	return nil
}

func printPlan(plan models.WeekPlan, tasks []models.Task, start, end time.Time) {
	byID := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	sessionsByDate := make(map[string][]models.Session)
	for _, s := range plan.Sessions {
		sessionsByDate[s.Date] = append(sessionsByDate[s.Date], s)
	}

	fmt.Printf("Study plan for the week of %s:\n\n", plan.Week())

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		fmt.Println(dayHeaderStyle.Render(fmt.Sprintf("%s (%s)", d.Weekday(), date)))

		sessions := sessionsByDate[date]
		if len(sessions) == 0 {
			fmt.Println(mutedStyle.Render("  no planned study sessions"))
			continue
		}
		for _, s := range sessions {
			task := byID[s.TaskID]
			fmt.Printf("  %-6s %s [%s] due %s, %s priority\n",
				formatHours(s.Hours), task.Title, task.Subject,
				task.Deadline, formatPriority(task.Priority))
		}
	}
}

func printWarnings(ctx *Context, report models.Report) {
	if len(report.Overdue) > 0 {
		fmt.Println()
		fmt.Println(dangerStyle.Render("Overdue tasks:"))
		for _, id := range report.Overdue {
			fmt.Printf("  - %s\n", taskLabel(ctx, id))
		}
	}

	if len(report.DueSoon) > 0 {
		fmt.Println()
		fmt.Println(warnStyle.Render("Due soon:"))
		for _, id := range report.DueSoon {
			fmt.Printf("  - %s\n", taskLabel(ctx, id))
		}
	}

	if len(report.Unscheduled) > 0 {
		fmt.Println()
		fmt.Println(warnStyle.Render("Not enough hours to fully cover:"))
		for _, id := range sortedKeys(report.Unscheduled) {
			fmt.Printf("  - %s still needs %s\n", taskLabel(ctx, id), formatHours(report.Unscheduled[id]))
		}
	}
}
