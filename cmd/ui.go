package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/theapemachine/study-assistant/pkg/ui"
)

var (
	uiCmd = &cobra.Command{
		Use:   "ui",
		Short: "Run the interactive study assistant",
		Long:  longUI,
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := startDiagnostics(cmd.Context())
			defer stop()

			model := ui.New(cmd.Context(), newSession())

			if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
				log.Error("error while running program", "error", err)
				return err
			}

			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(uiCmd)
}

var longUI = `
Open the study assistant in the terminal. Pick a task with tab, type a
topic and press enter.

Examples:
  # Use the endpoint from the config file
  study-assistant ui

  # Point at a local generation service
  STUDY_API_URL=http://localhost:8000 study-assistant ui
`
