package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/calebmoran/studyweek/internal/cli"
	"github.com/calebmoran/studyweek/internal/planner"
	"github.com/calebmoran/studyweek/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path." type:"path" default:"~/.config/studyweek/studyweek.db"`

	Init       cli.InitCmd       `cmd:"" help:"Initialize studyweek storage."`
	Tui        cli.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Plan       cli.PlanCmd       `cmd:"" help:"Generate a weekly study plan."`
	Reschedule cli.RescheduleCmd `cmd:"" help:"Replan the rest of the week after a missed day."`
	Report     cli.ReportCmd     `cmd:"" help:"Summarize the latest plan."`
	Check      cli.CheckCmd      `cmd:"" help:"Validate tasks and budget."`
	Doctor     cli.DoctorCmd     `cmd:"" help:"Run health checks."`
	Budget     struct {
		Show cli.BudgetShowCmd `cmd:"" help:"Show the weekly hour budget."`
		Set  cli.BudgetSetCmd  `cmd:"" help:"Set daily hour budgets."`
	} `cmd:"" help:"Manage the weekly hour budget."`
	Task struct {
		Add     cli.TaskAddCmd     `cmd:"" help:"Add a new task."`
		Edit    cli.TaskEditCmd    `cmd:"" help:"Edit an existing task."`
		Delete  cli.TaskDeleteCmd  `cmd:"" help:"Delete a task."`
		Restore cli.TaskRestoreCmd `cmd:"" help:"Restore a deleted task."`
		Done    cli.TaskDoneCmd    `cmd:"" help:"Mark a task complete."`
		Log     cli.TaskLogCmd     `cmd:"" help:"Log study hours against a task."`
		List    cli.TaskListCmd    `cmd:"" help:"List all tasks."`
	} `cmd:"" help:"Manage tasks."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the store."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the store from a backup."`
	} `cmd:"" help:"Manage store backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("studyweek"),
		kong.Description("Weekly study planner for a single student"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:   store,
		Planner: planner.New(),
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
