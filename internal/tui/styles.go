package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

// Tab bar styles; everything shared with scenes lives in tuistyles
var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(tuistyles.ColorForeground).
			Background(tuistyles.ColorPrimary).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(tuistyles.ColorMuted).
				Padding(0, 1)

	statusMessageStyle = lipgloss.NewStyle().
				Foreground(tuistyles.ColorInfo)
)
