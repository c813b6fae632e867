package ui

import tea "github.com/charmbracelet/bubbletea"

const (
	defaultWidth  = 80
	defaultHeight = 24

	// header (2), tabs through input row (4), help (1) and three blank-line gaps
	chromeHeight = 13
	buttonWidth  = 18
)

// Layout contains the computed dimensions for all panels.
type Layout struct {
	Width  int
	Height int

	InputWidth   int
	ResultWidth  int
	ResultHeight int

	horizontalMargin int
	verticalMargin   int
}

// NewLayout calculates sizes for the different UI components based on the
// terminal window dimensions.
func NewLayout(msg tea.WindowSizeMsg) Layout {
	if msg.Width <= 0 {
		msg.Width = defaultWidth
	}
	if msg.Height <= 0 {
		msg.Height = defaultHeight
	}

	l := Layout{Width: msg.Width, Height: msg.Height, horizontalMargin: 2, verticalMargin: 1}
	availableWidth := msg.Width - (l.horizontalMargin * 2)
	availableHeight := msg.Height - (l.verticalMargin * 2)

	l.InputWidth = max(availableWidth-buttonWidth, 10)
	l.ResultWidth = max(availableWidth, 10)
	l.ResultHeight = max(availableHeight-chromeHeight, 3)
	return l
}

func (l Layout) Margins() (int, int) {
	return l.horizontalMargin, l.verticalMargin
}
