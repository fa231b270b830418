package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/calebmoran/studyweek/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	subject         TEXT NOT NULL,
	deadline        TEXT NOT NULL,
	estimated_hours REAL NOT NULL,
	remaining_hours REAL NOT NULL,
	priority        TEXT NOT NULL,
	completed       INTEGER NOT NULL DEFAULT 0,
	created_at      TEXT NOT NULL,
	deleted_at      TEXT
);

CREATE TABLE IF NOT EXISTS plans (
	start        TEXT PRIMARY KEY,
	week_start   TEXT NOT NULL DEFAULT '',
	generated_at TEXT NOT NULL,
	deleted_at   TEXT
);

CREATE TABLE IF NOT EXISTS sessions (
	plan_start TEXT NOT NULL,
	date       TEXT NOT NULL,
	task_id    TEXT NOT NULL,
	hours      REAL NOT NULL,
	position   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS unscheduled (
	plan_start TEXT NOT NULL,
	task_id    TEXT NOT NULL,
	hours      REAL NOT NULL
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed default settings unless the database already has some
	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'studyweek init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

// GetDB exposes the underlying connection for health checks.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return Settings{}, err
	}
	defer rows.Close()

	settings := Settings{Budget: make(map[string]float64)}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Settings{}, err
		}
		switch {
		case key == "due_soon_days":
			days, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing due_soon_days: %w", err)
			}
			settings.DueSoonDays = days
		case strings.HasPrefix(key, "budget_"):
			hours, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.Budget[strings.TrimPrefix(key, "budget_")] = hours
		}
		count++
	}

	if count == 0 {
		return Settings{}, fmt.Errorf("settings not found")
	}

	return settings, rows.Err()
}

func (s *SQLiteStore) SaveSettings(settings Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("due_soon_days", strconv.Itoa(settings.DueSoonDays)); err != nil {
		return err
	}
	for day, hours := range settings.Budget {
		key := "budget_" + strings.ToLower(day)
		if _, err := stmt.Exec(key, strconv.FormatFloat(hours, 'g', -1, 64)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) AddTask(task models.Task) error {
	return s.upsertTask(task)
}

func (s *SQLiteStore) UpdateTask(task models.Task) error {
	var exists int
	err := s.db.QueryRow("SELECT COUNT(*) FROM tasks WHERE id = ?", task.ID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("task not found: %s", task.ID)
	}
	return s.upsertTask(task)
}

func (s *SQLiteStore) upsertTask(task models.Task) error {
	var deletedAt sql.NullString
	if task.DeletedAt != nil {
		deletedAt = sql.NullString{String: *task.DeletedAt, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO tasks (
			id, title, subject, deadline, estimated_hours, remaining_hours,
			priority, completed, created_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Subject, task.Deadline, task.EstimatedHours,
		task.RemainingHours, string(task.Priority), task.Completed, task.CreatedAt, deletedAt,
	)
	return err
}

func scanTask(row interface{ Scan(...any) error }) (models.Task, error) {
	var t models.Task
	var priority string
	var deletedAt sql.NullString

	err := row.Scan(
		&t.ID, &t.Title, &t.Subject, &t.Deadline, &t.EstimatedHours,
		&t.RemainingHours, &priority, &t.Completed, &t.CreatedAt, &deletedAt,
	)
	if err != nil {
		return models.Task{}, err
	}

	t.Priority = models.Priority(priority)
	if deletedAt.Valid {
		t.DeletedAt = &deletedAt.String
	}

	return t, nil
}

const taskColumns = `id, title, subject, deadline, estimated_hours, remaining_hours,
	priority, completed, created_at, deleted_at`

func (s *SQLiteStore) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(
		"SELECT "+taskColumns+" FROM tasks WHERE id = ? AND deleted_at IS NULL", id)

	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return models.Task{}, fmt.Errorf("task not found: %s", id)
	}
	return task, err
}

func (s *SQLiteStore) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query(
		"SELECT " + taskColumns + " FROM tasks WHERE deleted_at IS NULL ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (s *SQLiteStore) DeleteTask(id string) error {
	now := time.Now().Format(time.RFC3339)
	res, err := s.db.Exec(
		"UPDATE tasks SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", now, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) RestoreTask(id string) error {
	res, err := s.db.Exec(
		"UPDATE tasks SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("no deleted task to restore: %s", id)
	}
	return nil
}

func (s *SQLiteStore) SavePlan(plan models.WeekPlan) error {
	if plan.DeletedAt != nil {
		return fmt.Errorf("cannot save a plan with deleted_at set; use DeletePlan instead")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO plans (start, week_start, generated_at, deleted_at) VALUES (?, ?, ?, NULL)",
		plan.Start, plan.WeekStart, plan.GeneratedAt,
	); err != nil {
		return err
	}

	// Replace the plan's sessions and shortfall wholesale
	if _, err := tx.Exec("DELETE FROM sessions WHERE plan_start = ?", plan.Start); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM unscheduled WHERE plan_start = ?", plan.Start); err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		"INSERT INTO sessions (plan_start, date, task_id, hours, position) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, session := range plan.Sessions {
		if _, err := stmt.Exec(plan.Start, session.Date, session.TaskID, session.Hours, i); err != nil {
			return err
		}
	}

	for taskID, hours := range plan.Unscheduled {
		if _, err := tx.Exec(
			"INSERT INTO unscheduled (plan_start, task_id, hours) VALUES (?, ?, ?)",
			plan.Start, taskID, hours,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetPlan(start string) (models.WeekPlan, error) {
	plan := models.WeekPlan{Start: start, Sessions: []models.Session{}}

	var deletedAt sql.NullString
	err := s.db.QueryRow(
		"SELECT week_start, generated_at, deleted_at FROM plans WHERE start = ?", start,
	).Scan(&plan.WeekStart, &plan.GeneratedAt, &deletedAt)
	if err == sql.ErrNoRows || (err == nil && deletedAt.Valid) {
		return models.WeekPlan{}, fmt.Errorf("no plan found starting %s", start)
	}
	if err != nil {
		return models.WeekPlan{}, err
	}

	return s.loadPlanBody(plan)
}

func (s *SQLiteStore) GetLatestPlan() (models.WeekPlan, error) {
	plan := models.WeekPlan{Sessions: []models.Session{}}

	err := s.db.QueryRow(
		"SELECT start, week_start, generated_at FROM plans WHERE deleted_at IS NULL ORDER BY start DESC LIMIT 1",
	).Scan(&plan.Start, &plan.WeekStart, &plan.GeneratedAt)
	if err == sql.ErrNoRows {
		return models.WeekPlan{}, fmt.Errorf("no plans saved yet")
	}
	if err != nil {
		return models.WeekPlan{}, err
	}

	return s.loadPlanBody(plan)
}

func (s *SQLiteStore) loadPlanBody(plan models.WeekPlan) (models.WeekPlan, error) {
	rows, err := s.db.Query(
		"SELECT date, task_id, hours FROM sessions WHERE plan_start = ? ORDER BY position", plan.Start)
	if err != nil {
		return models.WeekPlan{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var session models.Session
		if err := rows.Scan(&session.Date, &session.TaskID, &session.Hours); err != nil {
			return models.WeekPlan{}, err
		}
		plan.Sessions = append(plan.Sessions, session)
	}
	if err := rows.Err(); err != nil {
		return models.WeekPlan{}, err
	}

	shortfall, err := s.db.Query(
		"SELECT task_id, hours FROM unscheduled WHERE plan_start = ?", plan.Start)
	if err != nil {
		return models.WeekPlan{}, err
	}
	defer shortfall.Close()

	for shortfall.Next() {
		var taskID string
		var hours float64
		if err := shortfall.Scan(&taskID, &hours); err != nil {
			return models.WeekPlan{}, err
		}
		if plan.Unscheduled == nil {
			plan.Unscheduled = make(map[string]float64)
		}
		plan.Unscheduled[taskID] = hours
	}

	return plan, shortfall.Err()
}

func (s *SQLiteStore) DeletePlan(start string) error {
	now := time.Now().Format(time.RFC3339)
	res, err := s.db.Exec(
		"UPDATE plans SET deleted_at = ? WHERE start = ? AND deleted_at IS NULL", now, start)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("no plan found starting %s", start)
	}
	return nil
}

// GetConfigPath returns the path to the underlying database file.
func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
