package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theapemachine/study-assistant/pkg/study"
)

// renderTabs draws the task selector with the active task highlighted.
func renderTabs(active study.TaskType) string {
	tabs := make([]string, len(study.Tasks))

	for i, task := range study.Tasks {
		label := task.Info().Tab
		if task == active {
			tabs[i] = activeTabStyle.Foreground(tabColors[i]).Render(label)
			continue
		}
		tabs[i] = tabStyle.Render(label)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
