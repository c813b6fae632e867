package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theapemachine/study-assistant/pkg/render"
	"github.com/theapemachine/study-assistant/pkg/study"
)

var (
	taskFlag  string
	htmlFlag  bool
	widthFlag int

	askCmd = &cobra.Command{
		Use:          "ask [topic]",
		Short:        "Generate content for one topic and print it",
		Long:         longAsk,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := study.ParseTaskType(taskFlag)
			if err != nil {
				return err
			}

			stop := startDiagnostics(cmd.Context())
			defer stop()

			session := newSession()
			session.SelectTask(task)
			session.SetInput(strings.Join(args, " "))

			if !session.Run(cmd.Context()) {
				return nil
			}

			if msg, failed := session.ErrorMessage(); failed {
				return errors.New(msg)
			}

			result, _ := session.Result()

			if htmlFlag {
				html, err := render.HTML(result)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), html)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), render.Terminal(result, widthFlag))
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVarP(&taskFlag, "task", "t", string(study.TaskExplain), "task type: explain, quiz or notes")
	askCmd.Flags().BoolVar(&htmlFlag, "html", false, "print the result as HTML")
	askCmd.Flags().IntVarP(&widthFlag, "width", "w", 80, "wrap terminal output at this width (0 disables)")
}

var longAsk = `
Send a single topic to the generation service and print the answer.
A blank topic sends nothing. On failure the command exits non-zero.

Examples:
  # Explain a concept
  study-assistant ask "Photosynthesis"

  # Quiz questions as HTML
  study-assistant ask --task quiz --html "Binary Search Trees"
`
