package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/theapemachine/study-assistant/pkg/render"
	"github.com/theapemachine/study-assistant/pkg/study"
)

// ResultView shows the generated content, the failure message, or the
// getting-started text, depending on the session phase.
type ResultView struct {
	viewport viewport.Model
	state    study.State
}

func NewResultView() ResultView {
	vp := viewport.New(defaultWidth, defaultHeight)
	vp.KeyMap = newViewportKeyMap()
	rv := ResultView{viewport: vp}
	rv.SetState(study.State{})
	return rv
}

func (rv ResultView) Init() tea.Cmd { return nil }

func (rv ResultView) Update(msg tea.Msg) (ResultView, tea.Cmd) {
	var cmd tea.Cmd
	rv.viewport, cmd = rv.viewport.Update(msg)
	return rv, cmd
}

func (rv ResultView) View() string { return rv.viewport.View() }

func (rv *ResultView) SetSize(w, h int) {
	rv.viewport.Width = w
	rv.viewport.Height = h
	rv.SetState(rv.state)
}

/*
SetState redraws the view for state. Pending shows nothing here; the
button row carries the spinner.
*/
func (rv *ResultView) SetState(state study.State) {
	rv.state = state

	var content string

	switch state.Phase {
	case study.Failed:
		content = errorStyle.Render(state.ErrorMessage)
	case study.Succeeded:
		content = titleStyle.Render("Result:") + "\n\n" + render.Terminal(state.Result, rv.viewport.Width)
	case study.Pending:
		content = ""
	default:
		content = gettingStarted()
	}

	rv.viewport.SetContent(content)
	rv.viewport.GotoTop()
}

func gettingStarted() string {
	lines := []string{"Enter a topic above to get started", ""}

	for _, task := range study.Tasks {
		info := task.Info()
		lines = append(lines, featureStyle.Render(info.Feature)+"  "+info.Blurb)
	}

	return emptyStyle.Render(strings.Join(lines, "\n"))
}
