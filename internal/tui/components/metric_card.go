package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

// MetricCard displays a headline number with a label and optional trend or status
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Status      *bool // colours the value green or red when set
	Description string
	Width       int
}

// Trend represents a metric's change direction and amount
type Trend struct {
	IsPositive bool
	Change     string // e.g. "+$5,234" or "-2.3%"
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 24,
	}
}

// WithTrend adds a trend indicator to the metric card
func (m *MetricCard) WithTrend(isPositive bool, change string) *MetricCard {
	m.Trend = &Trend{
		IsPositive: isPositive,
		Change:     change,
	}
	return m
}

// WithStatus marks the value as good or bad
func (m *MetricCard) WithStatus(ok bool) *MetricCard {
	m.Status = &ok
	return m
}

// WithDescription adds a description/subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) renderValue() string {
	if m.Status != nil {
		return tuistyles.StatusStyle(*m.Status).Render(m.Value)
	}
	return tuistyles.MetricValueStyle.Render(m.Value)
}

func (m *MetricCard) renderTrend() string {
	if m.Trend == nil {
		return ""
	}
	return tuistyles.MetricTrendStyle(m.Trend.IsPositive).
		Render(tuistyles.TrendIndicator(m.Trend.IsPositive) + " " + m.Trend.Change)
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + m.renderValue()
	if trend := m.renderTrend(); trend != "" {
		content += "\n" + trend
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns an inline label: value form without a border
func (m *MetricCard) RenderCompact() string {
	out := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + m.renderValue()
	if trend := m.renderTrend(); trend != "" {
		out += " " + trend
	}
	return out
}

// MetricGrid lays cards out in rows of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
