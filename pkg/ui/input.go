package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TopicInput is the single-line field the topic is typed into.
type TopicInput struct {
	textinput textinput.Model
}

func NewTopicInput() TopicInput {
	ti := textinput.New()
	ti.Placeholder = "e.g., Binary Search Trees, Photosynthesis, etc."
	ti.Prompt = "┃ "
	ti.CharLimit = 500
	ti.Focus()
	return TopicInput{textinput: ti}
}

func (ti TopicInput) Init() tea.Cmd { return textinput.Blink }

func (ti TopicInput) Update(msg tea.Msg) (TopicInput, tea.Cmd) {
	var cmd tea.Cmd
	ti.textinput, cmd = ti.textinput.Update(msg)
	return ti, cmd
}

func (ti TopicInput) View() string { return ti.textinput.View() }

func (ti TopicInput) Value() string { return ti.textinput.Value() }

func (ti *TopicInput) SetWidth(w int) { ti.textinput.Width = w }
