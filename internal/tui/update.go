package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/calebmoran/studyweek/internal/models"
	"github.com/calebmoran/studyweek/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.state == StateEditing {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = StateTasks
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			m.editingTask.Title = m.taskForm.Title
			m.editingTask.Subject = m.taskForm.Subject
			m.editingTask.Deadline = m.taskForm.Deadline
			m.editingTask.Priority = m.taskForm.Priority
			if hours, err := strconv.ParseFloat(m.taskForm.Hours, 64); err == nil {
				done := m.editingTask.EstimatedHours - m.editingTask.RemainingHours
				m.editingTask.EstimatedHours = hours
				remaining := hours - done
				if remaining < 0 {
					remaining = 0
				}
				m.editingTask.RemainingHours = remaining
			}

			// New task when the id isn't in the store yet.
			_, err := m.store.GetTask(m.editingTask.ID)
			var saveErr error
			if err != nil {
				saveErr = m.store.AddTask(*m.editingTask)
			} else {
				saveErr = m.store.UpdateTask(*m.editingTask)
			}

			if saveErr == nil {
				m.refreshTasks()
				m.updateValidationStatus()
				m.state = StateTasks
			} else {
				// Stay in the form so the user can retry or ESC out.
				m.form.State = huh.StateNormal
			}
		case huh.StateAborted:
			m.state = StateTasks
		}
		return m, tea.Batch(cmds...)
	}

	if m.state == StateConfirmDelete {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				if err := m.store.DeleteTask(m.taskToDeleteID); err == nil {
					m.refreshTasks()
					m.updateValidationStatus()
				}
				m.taskToDeleteID = ""
				m.state = StateTasks
			case "n", "N", "esc", "q":
				m.taskToDeleteID = ""
				m.state = StateTasks
			}
		}
		return m, nil
	}

	if m.state == StateConfirmOverwrite {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				if m.pendingPlan != nil {
					if err := m.store.SavePlan(*m.pendingPlan); err == nil {
						m.setPlan(*m.pendingPlan)
					}
				}
				m.pendingPlan = nil
				m.state = StatePlan
			case "n", "N", "esc", "q":
				m.pendingPlan = nil
				m.state = StatePlan
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		contentHeight := msg.Height - 4
		if contentHeight < 1 {
			contentHeight = 1
		}
		m.planModel.SetSize(msg.Width-4, contentHeight)
		m.taskList.SetSize(msg.Width-4, contentHeight)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Generate):
			if m.state == StatePlan {
				return m.generatePlan()
			}
		}

	case tasklist.AddTaskMsg:
		task := models.Task{
			ID:        uuid.New().String(),
			Priority:  models.PriorityMedium,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		m.editingTask = &task
		m.taskForm = &TaskFormModel{
			Deadline: time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
			Hours:    "1",
			Priority: task.Priority,
		}
		m.form = newTaskForm(m.taskForm)
		m.state = StateEditing
		return m, m.form.Init()

	case tasklist.EditTaskMsg:
		task := msg.Task
		m.editingTask = &task
		m.taskForm = &TaskFormModel{
			Title:    task.Title,
			Subject:  task.Subject,
			Deadline: task.Deadline,
			Hours:    strconv.FormatFloat(task.EstimatedHours, 'g', -1, 64),
			Priority: task.Priority,
		}
		m.form = newTaskForm(m.taskForm)
		m.state = StateEditing
		return m, m.form.Init()

	case tasklist.DeleteTaskMsg:
		m.taskToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil

	case tasklist.ToggleDoneMsg:
		if task, err := m.store.GetTask(msg.ID); err == nil {
			task.Completed = !task.Completed
			if task.Completed {
				task.RemainingHours = 0
			} else if task.RemainingHours == 0 {
				task.RemainingHours = task.EstimatedHours
			}
			if err := m.store.UpdateTask(task); err == nil {
				m.refreshTasks()
			}
		}
		return m, nil
	}

	switch m.state {
	case StatePlan:
		var cmd tea.Cmd
		m.planModel, cmd = m.planModel.Update(msg)
		cmds = append(cmds, cmd)
	case StateTasks:
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// generatePlan allocates a fresh week starting today. When a plan with the
// same start date already exists the user has to confirm the overwrite.
func (m Model) generatePlan() (tea.Model, tea.Cmd) {
	settings, err := m.store.GetSettings()
	if err != nil {
		return m, nil
	}
	tasks, err := m.store.GetAllTasks()
	if err != nil {
		return m, nil
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	newPlan := m.planner.Allocate(tasks, settings.WeekBudget(), today, today)

	if _, err := m.store.GetPlan(newPlan.Start); err == nil {
		m.pendingPlan = &newPlan
		m.state = StateConfirmOverwrite
		return m, nil
	}

	if err := m.store.SavePlan(newPlan); err == nil {
		m.setPlan(newPlan)
	}
	return m, nil
}

func (m *Model) refreshTasks() {
	tasks, err := m.store.GetAllTasks()
	if err != nil {
		return
	}
	m.taskList.SetTasks(tasks)
	if m.planModel.Plan != nil {
		m.planModel.SetPlan(*m.planModel.Plan, tasks)
	}
}

func (m *Model) setPlan(p models.WeekPlan) {
	tasks, err := m.store.GetAllTasks()
	if err != nil {
		tasks = []models.Task{}
	}
	m.planModel.SetPlan(p, tasks)
}
