package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/calebmoran/studyweek/internal/models"
)

type Store struct {
	Version  int                        `json:"version"`
	Settings Settings                   `json:"settings"`
	Tasks    map[string]models.Task     `json:"tasks"`
	Plans    map[string]models.WeekPlan `json:"plans"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:  1,
		Settings: DefaultSettings(),
		Tasks:    make(map[string]models.Task),
		Plans:    make(map[string]models.WeekPlan),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'studyweek init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Tasks == nil {
		s.store.Tasks = make(map[string]models.Task)
	}
	if s.store.Plans == nil {
		s.store.Plans = make(map[string]models.WeekPlan)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (Settings, error) {
	if s.store == nil {
		return Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddTask(task models.Task) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Tasks[task.ID] = task
	return s.save()
}

func (s *JSONStore) GetTask(id string) (models.Task, error) {
	if s.store == nil {
		return models.Task{}, fmt.Errorf("storage not loaded")
	}

	task, ok := s.store.Tasks[id]
	if !ok || task.DeletedAt != nil {
		return models.Task{}, fmt.Errorf("task not found: %s", id)
	}

	return task, nil
}

func (s *JSONStore) GetAllTasks() ([]models.Task, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	tasks := make([]models.Task, 0, len(s.store.Tasks))
	for _, task := range s.store.Tasks {
		if task.DeletedAt != nil {
			continue
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (s *JSONStore) UpdateTask(task models.Task) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Tasks[task.ID]; !ok {
		return fmt.Errorf("task not found: %s", task.ID)
	}

	s.store.Tasks[task.ID] = task
	return s.save()
}

func (s *JSONStore) DeleteTask(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	task, ok := s.store.Tasks[id]
	if !ok {
		return fmt.Errorf("task not found: %s", id)
	}
	if task.DeletedAt != nil {
		return fmt.Errorf("task already deleted: %s", id)
	}

	now := time.Now().Format(time.RFC3339)
	task.DeletedAt = &now
	s.store.Tasks[id] = task
	return s.save()
}

func (s *JSONStore) RestoreTask(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	task, ok := s.store.Tasks[id]
	if !ok {
		return fmt.Errorf("task not found: %s", id)
	}
	if task.DeletedAt == nil {
		return fmt.Errorf("task is not deleted: %s", id)
	}

	task.DeletedAt = nil
	s.store.Tasks[id] = task
	return s.save()
}

func (s *JSONStore) SavePlan(plan models.WeekPlan) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if plan.DeletedAt != nil {
		return fmt.Errorf("cannot save a plan with deleted_at set; use DeletePlan instead")
	}

	s.store.Plans[plan.Start] = plan
	return s.save()
}

func (s *JSONStore) GetPlan(start string) (models.WeekPlan, error) {
	if s.store == nil {
		return models.WeekPlan{}, fmt.Errorf("storage not loaded")
	}

	plan, ok := s.store.Plans[start]
	if !ok || plan.DeletedAt != nil {
		return models.WeekPlan{}, fmt.Errorf("no plan found starting %s", start)
	}

	return plan, nil
}

// GetLatestPlan returns the plan with the most recent start date. Start
// dates are ISO formatted, so string comparison is date comparison.
func (s *JSONStore) GetLatestPlan() (models.WeekPlan, error) {
	if s.store == nil {
		return models.WeekPlan{}, fmt.Errorf("storage not loaded")
	}

	var latest models.WeekPlan
	found := false
	for _, plan := range s.store.Plans {
		if plan.DeletedAt != nil {
			continue
		}
		if !found || plan.Start > latest.Start {
			latest = plan
			found = true
		}
	}

	if !found {
		return models.WeekPlan{}, fmt.Errorf("no plans saved yet")
	}
	return latest, nil
}

func (s *JSONStore) DeletePlan(start string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	plan, ok := s.store.Plans[start]
	if !ok {
		return fmt.Errorf("no plan found starting %s", start)
	}
	if plan.DeletedAt != nil {
		return fmt.Errorf("plan already deleted: %s", start)
	}

	now := time.Now().Format(time.RFC3339)
	plan.DeletedAt = &now
	s.store.Plans[start] = plan
	return s.save()
}

// GetConfigPath returns the path to the underlying storage file.
//
// Concurrency note: the store is not safe for concurrent use by multiple
// goroutines or processes sharing the same path; there is exactly one
// logical writer.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
