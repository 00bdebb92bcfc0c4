package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ProgressBar shows how far a value has come toward a target, such as
// savings toward the coast number. Percent may exceed 100; the bar is capped.
type ProgressBar struct {
	Percent decimal.Decimal
	Width   int
	Label   string
	Detail  string // e.g. "$120,000 of $180,000"
}

// NewProgressBar creates a progress bar at percent
func NewProgressBar(percent decimal.Decimal) *ProgressBar {
	return &ProgressBar{
		Percent: percent,
		Width:   30,
	}
}

// WithLabel sets the progress label
func (p *ProgressBar) WithLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// WithDetail sets the text shown after the percentage
func (p *ProgressBar) WithDetail(detail string) *ProgressBar {
	p.Detail = detail
	return p
}

// WithWidth sets the bar width
func (p *ProgressBar) WithWidth(width int) *ProgressBar {
	p.Width = width
	return p
}

// IsComplete reports whether the target has been reached
func (p *ProgressBar) IsComplete() bool {
	return p.Percent.GreaterThanOrEqual(decimal.NewFromInt(100))
}

// Filled returns the number of filled cells
func (p *ProgressBar) Filled() int {
	if p.Percent.IsNegative() {
		return 0
	}
	filled := int(p.Percent.Mul(decimal.NewFromInt(int64(p.Width))).Div(decimal.NewFromInt(100)).IntPart())
	if filled > p.Width {
		filled = p.Width
	}
	return filled
}

// Render returns the styled progress bar
func (p *ProgressBar) Render() string {
	var content strings.Builder

	if p.Label != "" {
		content.WriteString(lipgloss.NewStyle().Bold(true).Render(p.Label))
		content.WriteString("\n")
	}

	filled := p.Filled()
	barColor := tuistyles.ColorAccent
	if p.IsComplete() {
		barColor = tuistyles.ColorSuccess
	}

	content.WriteString("[")
	content.WriteString(lipgloss.NewStyle().Foreground(barColor).Render(strings.Repeat("█", filled)))
	content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorBorder).Render(strings.Repeat("░", p.Width-filled)))
	content.WriteString("] ")

	content.WriteString(lipgloss.NewStyle().
		Foreground(tuistyles.ColorPrimary).
		Bold(true).
		Render(fmt.Sprintf("%s%%", p.Percent.StringFixed(1))))

	if p.Detail != "" {
		content.WriteString(" • ")
		content.WriteString(tuistyles.HelpDescStyle.Render(p.Detail))
	}

	return content.String()
}
