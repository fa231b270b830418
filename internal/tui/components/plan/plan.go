package plan

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/calebmoran/studyweek/internal/models"
)

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	taskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	hoursStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(8)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

type Model struct {
	viewport viewport.Model
	Plan     *models.WeekPlan
	Tasks    map[string]models.Task
	width    int
	height   int
}

func New(width, height int) Model {
	vp := viewport.New(width, height)
	return Model{
		viewport: vp,
		Tasks:    make(map[string]models.Task),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Plan == nil {
		return "No plan yet. Press 'g' to generate one for this week."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetPlan(plan models.WeekPlan, tasks []models.Task) {
	m.Plan = &plan
	for _, t := range tasks {
		m.Tasks[t.ID] = t
	}
	m.Render()
}

func (m *Model) Render() {
	if m.Plan == nil {
		m.viewport.SetContent("No plan loaded.")
		return
	}

	var b strings.Builder
	currentDay := ""
	for _, session := range m.Plan.Sessions {
		if session.Date != currentDay {
			currentDay = session.Date
			label := session.Date
			if d, err := time.Parse("2006-01-02", session.Date); err == nil {
				label = d.Format("Mon Jan 2")
			}
			b.WriteString(dayStyle.Render(label) + "\n")
		}

		taskName := "Unknown task"
		if t, ok := m.Tasks[session.TaskID]; ok {
			taskName = fmt.Sprintf("%s (%s)", t.Title, t.Subject)
		}

		hours := strconv.FormatFloat(session.Hours, 'g', -1, 64) + "h"
		b.WriteString(fmt.Sprintf("  %s %s\n",
			hoursStyle.Render(hours),
			taskStyle.Render(taskName),
		))
	}

	if len(m.Plan.Sessions) == 0 {
		b.WriteString("No study sessions planned this week.\n")
	}

	if len(m.Plan.Unscheduled) > 0 {
		b.WriteString("\n" + warnStyle.Render("Does not fit this week:") + "\n")
		ids := make([]string, 0, len(m.Plan.Unscheduled))
		for id := range m.Plan.Unscheduled {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			taskName := id
			if t, ok := m.Tasks[id]; ok {
				taskName = t.Title
			}
			hours := strconv.FormatFloat(m.Plan.Unscheduled[id], 'g', -1, 64)
			b.WriteString(warnStyle.Render(fmt.Sprintf("  %s: %sh short", taskName, hours)) + "\n")
		}
	}

	m.viewport.SetContent(b.String())
}
