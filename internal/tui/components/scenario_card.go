package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

// ScenarioCard summarises one projection variant: a stress case or a template
type ScenarioCard struct {
	Name        string
	Description string
	Highlights  []string
	OnTrack     *bool // shows a ✓ or ✗ badge when set
	IsSelected  bool
	Width       int
}

// NewScenarioCard creates a new scenario card
func NewScenarioCard(name string) *ScenarioCard {
	return &ScenarioCard{
		Name:  name,
		Width: 30,
	}
}

// WithDescription adds a description
func (s *ScenarioCard) WithDescription(desc string) *ScenarioCard {
	s.Description = desc
	return s
}

// WithOnTrack sets the goal badge
func (s *ScenarioCard) WithOnTrack(ok bool) *ScenarioCard {
	s.OnTrack = &ok
	return s
}

// AddHighlight adds a key metric line
func (s *ScenarioCard) AddHighlight(format string, args ...interface{}) *ScenarioCard {
	s.Highlights = append(s.Highlights, fmt.Sprintf(format, args...))
	return s
}

// SetSelected marks the card as selected
func (s *ScenarioCard) SetSelected(selected bool) *ScenarioCard {
	s.IsSelected = selected
	return s
}

// WithWidth sets the card width
func (s *ScenarioCard) WithWidth(width int) *ScenarioCard {
	s.Width = width
	return s
}

func (s *ScenarioCard) badge() string {
	if s.OnTrack == nil {
		return ""
	}
	if *s.OnTrack {
		return " " + tuistyles.StatusStyle(true).Render("✓")
	}
	return " " + tuistyles.StatusStyle(false).Render("✗")
}

// Render returns the bordered card
func (s *ScenarioCard) Render() string {
	var content strings.Builder

	content.WriteString(tuistyles.TitleStyle.Render(s.Name))
	content.WriteString(s.badge())
	content.WriteString("\n")

	if s.Description != "" {
		content.WriteString(tuistyles.SubtitleStyle.Render(s.Description))
		content.WriteString("\n")
	}

	if len(s.Highlights) > 0 {
		content.WriteString("\n")
		for _, h := range s.Highlights {
			content.WriteString(h)
			content.WriteString("\n")
		}
	}

	border := tuistyles.ColorBorder
	if s.IsSelected {
		border = tuistyles.ColorPrimary
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(s.Width).
		Render(strings.TrimRight(content.String(), "\n"))
}

// RenderCompact returns name, badge and first highlight on one line
func (s *ScenarioCard) RenderCompact() string {
	line := tuistyles.TitleStyle.Render(s.Name) + s.badge()
	if len(s.Highlights) > 0 {
		line += " " + tuistyles.HelpDescStyle.Render("• "+s.Highlights[0])
	}
	return line
}

// ScenarioRow renders cards side by side
func ScenarioRow(cards []*ScenarioCard) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No scenarios available")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		rendered[i] = card.Render()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// ScenarioListCompact renders a selectable list with a cursor
func ScenarioListCompact(cards []*ScenarioCard, selectedIndex int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No scenarios available")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		prefix := "  "
		if i == selectedIndex {
			prefix = tuistyles.SelectedItemStyle.Render("▸ ")
		}
		rendered[i] = prefix + card.RenderCompact()
	}

	return strings.Join(rendered, "\n")
}
