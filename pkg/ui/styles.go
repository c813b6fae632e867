package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// UI color scheme
var (
	red    = lipgloss.AdaptiveColor{Light: "#FE5F86", Dark: "#FE5F86"}
	indigo = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	purple = lipgloss.AdaptiveColor{Light: "#8E24AA", Dark: "#BA68C8"}
	green  = lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"}
	blue   = lipgloss.AdaptiveColor{Light: "#1E88E5", Dark: "#42A5F5"}
	gray   = lipgloss.AdaptiveColor{Light: "#9E9E9E", Dark: "#BDBDBD"}
)

// tabColors gives each task its own accent, as the tabs did on the web page.
var tabColors = []lipgloss.AdaptiveColor{blue, purple, green}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(indigo).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(gray).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(gray).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(indigo).
			Padding(0, 2)

	disabledButtonStyle = lipgloss.NewStyle().
				Foreground(gray).
				Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(indigo).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(red).
			Bold(true).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(red).
			Padding(0, 1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(gray).
			Padding(1, 2)

	featureStyle = lipgloss.NewStyle().
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().Foreground(indigo)
)
