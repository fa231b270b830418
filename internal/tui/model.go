package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/calebmoran/studyweek/internal/models"
	"github.com/calebmoran/studyweek/internal/planner"
	"github.com/calebmoran/studyweek/internal/storage"
	"github.com/calebmoran/studyweek/internal/tui/components/plan"
	"github.com/calebmoran/studyweek/internal/tui/components/tasklist"
	"github.com/calebmoran/studyweek/internal/validation"
)

type SessionState int

const (
	StatePlan SessionState = iota
	StateTasks
	StateEditing
	StateConfirmDelete
	StateConfirmOverwrite
)

// tabCount covers only the tab states; modal states come after.
const tabCount = 2

type TaskFormModel struct {
	Title    string
	Subject  string
	Deadline string
	Hours    string
	Priority models.Priority
}

type Model struct {
	store               storage.Provider
	planner             *planner.Planner
	state               SessionState
	keys                KeyMap
	help                help.Model
	taskList            tasklist.Model
	planModel           plan.Model
	form                *huh.Form
	taskForm            *TaskFormModel
	editingTask         *models.Task
	quitting            bool
	width               int
	height              int
	taskToDeleteID      string
	pendingPlan         *models.WeekPlan
	validationWarning   string
	validationConflicts []validation.Conflict
}

func NewModel(store storage.Provider, p *planner.Planner) Model {
	pm := plan.New(0, 0)
	tasks, taskErr := store.GetAllTasks()
	if taskErr != nil {
		tasks = []models.Task{}
	}
	if planData, err := store.GetLatestPlan(); err == nil {
		pm.SetPlan(planData, tasks)
	}

	m := Model{
		store:     store,
		planner:   p,
		state:     StatePlan,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		taskList:  tasklist.New(tasks, 0, 0),
		planModel: pm,
	}

	m.updateValidationStatus()

	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateTasks:
		keys = append(keys, m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Done)
	case StatePlan:
		keys = append(keys, m.keys.Generate)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateTasks:
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Done}
	case StatePlan:
		actions = []key.Binding{m.keys.Generate}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// updateValidationStatus runs validation and updates the warning message.
func (m *Model) updateValidationStatus() {
	tasks, err := m.store.GetAllTasks()
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		m.validationConflicts = nil
		return
	}

	settings, err := m.store.GetSettings()
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		m.validationConflicts = nil
		return
	}

	result := validation.New().ValidateInputs(tasks, settings.WeekBudget())
	m.validationConflicts = result.Conflicts

	if len(result.Conflicts) > 0 {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}

func newTaskForm(fm *TaskFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Subject").
				Value(&fm.Subject),
			huh.NewInput().
				Title("Deadline (YYYY-MM-DD)").
				Value(&fm.Deadline).
				Validate(func(s string) error {
					if _, err := time.Parse("2006-01-02", s); err != nil {
						return fmt.Errorf("deadline must be YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().
				Title("Estimated hours").
				Value(&fm.Hours).
				Validate(func(s string) error {
					h, err := strconv.ParseFloat(s, 64)
					if err != nil {
						return err
					}
					if h <= 0 {
						return fmt.Errorf("hours must be a positive number")
					}
					return nil
				}),
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("High", models.PriorityHigh),
					huh.NewOption("Medium", models.PriorityMedium),
					huh.NewOption("Low", models.PriorityLow),
				).
				Value(&fm.Priority),
		),
	)
}
