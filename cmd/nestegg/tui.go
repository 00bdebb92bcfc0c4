package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/logging"
	"github.com/rgehrsitz/nestegg/internal/tui"
)

const tuiDebugLog = "nestegg-debug.log"

var tuiCmd = &cobra.Command{
	Use:   "tui [plan-file]",
	Short: "Explore a plan interactively in the terminal",
	Long: `Open the interactive planner. Without a plan file the example plan is loaded.
Edits are projected as you make them; ctrl+s saves the plan.

With --debug, log records go to ` + tuiDebugLog + ` so they do not draw over the screen.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planPath := ""
		if len(args) == 1 {
			planPath = args[0]
		}

		if debugMode {
			f, err := os.OpenFile(tuiDebugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("failed to open debug log: %w", err)
			}
			defer f.Close()
			logging.Setup(logging.Config{Writer: f, Debug: true, JSON: jsonLogs})
		}

		p := tea.NewProgram(
			tui.NewModelWithEngine(planPath, newEngine()),
			tea.WithAltScreen(),
			tea.WithContext(commandContext(cmd)),
		)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
