package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/calebmoran/studyweek/internal/models"
	"github.com/calebmoran/studyweek/internal/planner"
	"github.com/calebmoran/studyweek/internal/storage"
)

func setupTestContext(t *testing.T) *Context {
	t.Helper()
	storePath := filepath.Join(t.TempDir(), "test.json")

	store := storage.NewJSONStore(storePath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &Context{
		Store:   store,
		Planner: planner.New(),
	}
}

func TestParseDate(t *testing.T) {
	t.Run("accepts YYYY-MM-DD", func(t *testing.T) {
		d, err := parseDate("2026-03-02")
		if err != nil {
			t.Fatalf("parseDate failed: %v", err)
		}
		if d.Format("2006-01-02") != "2026-03-02" {
			t.Errorf("got %s", d.Format("2006-01-02"))
		}
	})

	t.Run("accepts today", func(t *testing.T) {
		d, err := parseDate("today")
		if err != nil {
			t.Fatalf("parseDate failed: %v", err)
		}
		now := time.Now()
		if d.Year() != now.Year() || d.Month() != now.Month() || d.Day() != now.Day() {
			t.Errorf("today parsed as %v", d)
		}
		if d.Hour() != 0 || d.Minute() != 0 {
			t.Errorf("expected midnight, got %v", d)
		}
	})

	t.Run("rejects other formats", func(t *testing.T) {
		if _, err := parseDate("03/02/2026"); err == nil {
			t.Error("expected error for slash-formatted date")
		}
		if _, err := parseDate("tomorrow"); err == nil {
			t.Error("expected error for unsupported keyword")
		}
	})
}

func TestFormatHours(t *testing.T) {
	cases := map[float64]string{
		2:    "2h",
		1.5:  "1.5h",
		0.25: "0.25h",
	}
	for in, want := range cases {
		if got := formatHours(in); got != want {
			t.Errorf("formatHours(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestTaskLabel(t *testing.T) {
	ctx := setupTestContext(t)

	task := models.Task{
		ID:             "t1",
		Title:          "Read chapter 4",
		Subject:        "AI",
		Deadline:       "2026-09-01",
		EstimatedHours: 2,
		RemainingHours: 2,
		Priority:       models.PriorityMedium,
	}
	if err := ctx.Store.AddTask(task); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	if got := taskLabel(ctx, "t1"); got != "Read chapter 4 (AI)" {
		t.Errorf("taskLabel = %q", got)
	}
	if got := taskLabel(ctx, "missing"); got != "missing" {
		t.Errorf("taskLabel for unknown id = %q, want the id back", got)
	}
}
