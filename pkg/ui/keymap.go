package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

// keymap defines the global key bindings used by the application and components.
type keymap struct {
	nextTask key.Binding
	prevTask key.Binding
	explain  key.Binding
	quiz     key.Binding
	notes    key.Binding
	submit   key.Binding
	scroll   key.Binding
	quit     key.Binding
}

func newKeymap() keymap {
	return keymap{
		nextTask: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next task")),
		prevTask: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev task")),
		explain:  key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("alt+1", "explain")),
		quiz:     key.NewBinding(key.WithKeys("alt+2"), key.WithHelp("alt+2", "quiz")),
		notes:    key.NewBinding(key.WithKeys("alt+3"), key.WithHelp("alt+3", "notes")),
		submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "generate")),
		scroll:   key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll")),
		quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// defaultKeymap provides a convenient globally accessible set of bindings.
var defaultKeymap = newKeymap()

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.submit, k.nextTask, k.scroll, k.quit}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.submit, k.nextTask, k.prevTask},
		{k.explain, k.quiz, k.notes},
		{k.scroll, k.quit},
	}
}

/*
newViewportKeyMap keeps the result viewport off every printable key, since
those belong to the topic input.
*/
func newViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
	}
}
