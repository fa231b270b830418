package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StatePlan:
		content = docStyle.Render(m.planModel.View())
	case StateTasks:
		content = docStyle.Render(m.taskList.View())
	case StateEditing:
		content = m.form.View()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	case StateConfirmOverwrite:
		content = m.viewConfirmOverwrite()
	}

	sections := []string{m.viewTabs()}
	if m.validationWarning != "" {
		sections = append(sections, warningStyle.Render(m.validationWarning))
	}
	sections = append(sections, content, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Plan", "Tasks"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Are you sure you want to delete this task?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewConfirmOverwrite() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("A plan already exists for this week. Overwrite it?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
