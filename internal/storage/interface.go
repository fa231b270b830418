package storage

import "github.com/calebmoran/studyweek/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error
	RestoreTask(id string) error

	// Plans, keyed by their start date
	SavePlan(models.WeekPlan) error
	GetPlan(start string) (models.WeekPlan, error)
	GetLatestPlan() (models.WeekPlan, error)
	DeletePlan(start string) error

	// Utils
	GetConfigPath() string
}
