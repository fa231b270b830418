package storage

import (
	"path/filepath"
	"testing"

	"github.com/calebmoran/studyweek/internal/models"
)

// newStores builds one of each Provider backed by a temp directory so every
// behavior is checked against both backends.
func newStores(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()
	return map[string]Provider{
		"json":   NewJSONStore(filepath.Join(dir, "studyweek.json")),
		"sqlite": NewSQLiteStore(filepath.Join(dir, "studyweek.db")),
	}
}

func sampleTask(id string) models.Task {
	return models.Task{
		ID:             id,
		Title:          "Essay draft",
		Subject:        "History",
		Deadline:       "2026-01-09",
		EstimatedHours: 4,
		RemainingHours: 4,
		Priority:       models.PriorityMedium,
		CreatedAt:      "2026-01-05T08:00:00Z",
	}
}

func TestInit_SeedsDefaultSettings(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			defer store.Close()

			settings, err := store.GetSettings()
			if err != nil {
				t.Fatalf("GetSettings failed: %v", err)
			}

			if len(settings.Budget) != 7 {
				t.Errorf("Budget has %d entries, want 7: %v", len(settings.Budget), settings.Budget)
			}
			if settings.Budget["saturday"] != 4 || settings.Budget["monday"] != 2 {
				t.Errorf("Unexpected default budget: %v", settings.Budget)
			}
			if settings.DueSoonDays != 3 {
				t.Errorf("DueSoonDays = %d, want 3", settings.DueSoonDays)
			}
		})
	}
}

func TestTaskLifecycle(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			defer store.Close()

			task := sampleTask("task-1")
			if err := store.AddTask(task); err != nil {
				t.Fatalf("AddTask failed: %v", err)
			}

			got, err := store.GetTask("task-1")
			if err != nil {
				t.Fatalf("GetTask failed: %v", err)
			}
			if got.Title != task.Title || got.RemainingHours != 4 {
				t.Errorf("GetTask = %+v, want %+v", got, task)
			}

			// Log two hours of confirmed work
			got.RemainingHours = 2
			if err := store.UpdateTask(got); err != nil {
				t.Fatalf("UpdateTask failed: %v", err)
			}
			updated, err := store.GetTask("task-1")
			if err != nil {
				t.Fatalf("GetTask after update failed: %v", err)
			}
			if updated.RemainingHours != 2 {
				t.Errorf("RemainingHours = %g, want 2", updated.RemainingHours)
			}

			if err := store.UpdateTask(sampleTask("missing")); err == nil {
				t.Errorf("UpdateTask of unknown id should fail")
			}
		})
	}
}

func TestTaskSoftDeleteAndRestore(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			defer store.Close()

			if err := store.AddTask(sampleTask("task-1")); err != nil {
				t.Fatalf("AddTask failed: %v", err)
			}
			if err := store.AddTask(sampleTask("task-2")); err != nil {
				t.Fatalf("AddTask failed: %v", err)
			}

			if err := store.DeleteTask("task-1"); err != nil {
				t.Fatalf("DeleteTask failed: %v", err)
			}

			if _, err := store.GetTask("task-1"); err == nil {
				t.Errorf("Deleted task should not be retrievable")
			}
			tasks, err := store.GetAllTasks()
			if err != nil {
				t.Fatalf("GetAllTasks failed: %v", err)
			}
			if len(tasks) != 1 || tasks[0].ID != "task-2" {
				t.Errorf("GetAllTasks = %+v, want only task-2", tasks)
			}

			if err := store.DeleteTask("task-1"); err == nil {
				t.Errorf("Double delete should fail")
			}

			if err := store.RestoreTask("task-1"); err != nil {
				t.Fatalf("RestoreTask failed: %v", err)
			}
			if _, err := store.GetTask("task-1"); err != nil {
				t.Errorf("Restored task should be retrievable: %v", err)
			}

			if err := store.RestoreTask("task-2"); err == nil {
				t.Errorf("Restoring a live task should fail")
			}
		})
	}
}

func TestPlanPersistence(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			defer store.Close()

			plan := models.WeekPlan{
				Start:       "2026-01-07",
				WeekStart:   "2026-01-05",
				GeneratedAt: "2026-01-07T08:00:00Z",
				Sessions: []models.Session{
					{Date: "2026-01-07", TaskID: "task-1", Hours: 2},
					{Date: "2026-01-08", TaskID: "task-1", Hours: 1.5},
				},
				Unscheduled: map[string]float64{"task-2": 3},
			}
			if err := store.SavePlan(plan); err != nil {
				t.Fatalf("SavePlan failed: %v", err)
			}

			got, err := store.GetPlan("2026-01-07")
			if err != nil {
				t.Fatalf("GetPlan failed: %v", err)
			}
			if len(got.Sessions) != 2 || got.Sessions[0].TaskID != "task-1" {
				t.Errorf("Sessions = %+v", got.Sessions)
			}
			// A mid-week plan keeps its anchoring week
			if got.WeekStart != "2026-01-05" {
				t.Errorf("WeekStart = %q, want 2026-01-05", got.WeekStart)
			}
			if got.Sessions[1].Hours != 1.5 {
				t.Errorf("Session order/hours not preserved: %+v", got.Sessions)
			}
			if got.Unscheduled["task-2"] != 3 {
				t.Errorf("Unscheduled = %v, want task-2:3", got.Unscheduled)
			}

			// A newer week becomes the latest
			later := models.WeekPlan{Start: "2026-01-12", GeneratedAt: "2026-01-12T08:00:00Z", Sessions: []models.Session{}}
			if err := store.SavePlan(later); err != nil {
				t.Fatalf("SavePlan failed: %v", err)
			}
			latest, err := store.GetLatestPlan()
			if err != nil {
				t.Fatalf("GetLatestPlan failed: %v", err)
			}
			if latest.Start != "2026-01-12" {
				t.Errorf("GetLatestPlan start = %s, want 2026-01-12", latest.Start)
			}

			if err := store.DeletePlan("2026-01-12"); err != nil {
				t.Fatalf("DeletePlan failed: %v", err)
			}
			latest, err = store.GetLatestPlan()
			if err != nil {
				t.Fatalf("GetLatestPlan after delete failed: %v", err)
			}
			if latest.Start != "2026-01-07" {
				t.Errorf("Deleted plan still latest: %s", latest.Start)
			}
		})
	}
}

func TestSavePlan_RefusesDeletedAt(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			defer store.Close()

			deleted := "2026-01-05T08:00:00Z"
			plan := models.WeekPlan{Start: "2026-01-05", DeletedAt: &deleted}

			if err := store.SavePlan(plan); err == nil {
				t.Errorf("SavePlan should refuse a plan with deleted_at set")
			}
		})
	}
}

func TestLoad_RequiresInit(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Load(); err == nil {
				t.Errorf("Load before Init should fail")
			}
		})
	}
}
