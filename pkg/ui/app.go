package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theapemachine/study-assistant/pkg/study"
)

const gap = "\n\n"

/*
Model is the terminal front end of a study session. Every user event is
forwarded to the session; the view is always rebuilt from the session's
snapshot. The generation call runs as a tea.Cmd and comes back as a
generatedMsg, so the session only ever changes on the event loop.
*/
type Model struct {
	ctx     context.Context
	session *study.Session
	layout  Layout
	input   TopicInput
	result  ResultView
	spinner spinner.Model
	help    help.Model
	keys    keymap
}

func New(ctx context.Context, session *study.Session) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	m := Model{
		ctx:     ctx,
		session: session,
		input:   NewTopicInput(),
		result:  NewResultView(),
		spinner: sp,
		help:    help.New(),
		keys:    defaultKeymap,
	}

	m.resize(tea.WindowSizeMsg{})
	return m
}

// Session exposes the controller the model drives.
func (m Model) Session() *study.Session { return m.session }

func (m Model) Init() tea.Cmd {
	return m.input.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
		return m, nil

	case generatedMsg:
		m.session.Resolve(msg.outcome)
		m.result.SetState(m.session.Snapshot())
		return m, nil

	case spinner.TickMsg:
		if !m.session.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.submit):
		return m.submit()
	case key.Matches(msg, m.keys.nextTask):
		m.session.SelectTask(m.session.ActiveTask().Next())
		return m, nil
	case key.Matches(msg, m.keys.prevTask):
		m.session.SelectTask(m.session.ActiveTask().Prev())
		return m, nil
	case key.Matches(msg, m.keys.explain):
		m.session.SelectTask(study.TaskExplain)
		return m, nil
	case key.Matches(msg, m.keys.quiz):
		m.session.SelectTask(study.TaskQuiz)
		return m, nil
	case key.Matches(msg, m.keys.notes):
		m.session.SelectTask(study.TaskNotes)
		return m, nil
	case key.Matches(msg, m.keys.scroll), msg.Type == tea.KeyUp, msg.Type == tea.KeyDown:
		var cmd tea.Cmd
		m.result, cmd = m.result.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if value := m.input.Value(); value != m.session.Input() {
		m.session.SetInput(value)
	}

	return m, cmd
}

/*
submit hands the topic to the session. While a request is in flight the
session refuses, which is what keeps the button disabled.
*/
func (m Model) submit() (tea.Model, tea.Cmd) {
	req, ok := m.session.Submit()
	if !ok {
		return m, nil
	}

	m.result.SetState(m.session.Snapshot())

	var (
		ctx     = m.ctx
		session = m.session
		seq     = session.Seq()
	)

	generate := func() tea.Msg {
		return generatedMsg{outcome: session.Generate(ctx, seq, req)}
	}

	return m, tea.Batch(m.spinner.Tick, generate)
}

func (m *Model) resize(msg tea.WindowSizeMsg) {
	m.layout = NewLayout(msg)
	m.input.SetWidth(m.layout.InputWidth)
	m.help.Width = m.layout.ResultWidth
	m.result.SetSize(m.layout.ResultWidth, m.layout.ResultHeight)
}

func (m Model) View() string {
	state := m.session.Snapshot()

	header := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render("Study Assistant AI"),
		subtitleStyle.Render("Your personal AI tutor"),
	)

	form := lipgloss.JoinVertical(
		lipgloss.Left,
		renderTabs(state.ActiveTask),
		"",
		labelStyle.Render(state.ActiveTask.Info().Prompt),
		lipgloss.JoinHorizontal(lipgloss.Center, m.input.View(), "  ", m.button(state)),
	)

	body := m.result.View()
	if state.Phase == study.Pending {
		body = ""
	}

	hMargin, vMargin := m.layout.Margins()

	return lipgloss.NewStyle().Margin(vMargin, hMargin).Render(strings.Join([]string{
		header,
		form,
		body,
		m.help.View(m.keys),
	}, gap))
}

func (m Model) button(state study.State) string {
	if state.Phase == study.Pending {
		return disabledButtonStyle.Render(m.spinner.View() + " Thinking...")
	}
	return buttonStyle.Render("Generate")
}
