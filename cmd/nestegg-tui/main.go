package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/nestegg/internal/tui"
)

func main() {
	// Optional plan file; the example plan is used without one
	planPath := ""
	if len(os.Args) > 1 {
		planPath = os.Args[1]
		if _, err := os.Stat(planPath); os.IsNotExist(err) {
			fmt.Printf("Error: plan file not found: %s\n", planPath)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(
		tui.NewModel(planPath),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
