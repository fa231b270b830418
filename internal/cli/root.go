package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/calebmoran/studyweek/internal/backup"
	"github.com/calebmoran/studyweek/internal/models"
	"github.com/calebmoran/studyweek/internal/planner"
	"github.com/calebmoran/studyweek/internal/storage"
)

type Context struct {
	Store   storage.Provider
	Planner *planner.Planner
}

// PerformAutomaticBackup creates an automatic backup and downgrades any
// failure to a warning so it never interrupts the user's workflow.
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: automatic backup failed: %v\n", err)
	}
}

// parseDate accepts YYYY-MM-DD or the literal "today".
func parseDate(s string) (time.Time, error) {
	if s == "today" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return d, nil
}

// formatHours renders hours compactly: 2h, 1.5h, 0.25h.
func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'g', -1, 64) + "h"
}

func formatPriority(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return "High"
	case models.PriorityLow:
		return "Low"
	default:
		return "Medium"
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// taskLabel prefers the task's title and falls back to its id when the
// task is gone from the store.
func taskLabel(ctx *Context, id string) string {
	task, err := ctx.Store.GetTask(id)
	if err != nil {
		return id
	}
	return fmt.Sprintf("%s (%s)", task.Title, task.Subject)
}
