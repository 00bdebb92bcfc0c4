// Package tuistyles holds the colour palette and lipgloss styles shared by the
// dashboard, its scenes and components. It lives apart from package tui so
// components can use it without an import cycle.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/nestegg/internal/output"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorSecondary = lipgloss.Color("#2563EB")
	ColorAccent    = lipgloss.Color("#F59E0B")
	ColorSuccess   = lipgloss.Color("#059669")
	ColorDanger    = lipgloss.Color("#DC2626")
	ColorInfo      = lipgloss.Color("#0891B2")

	ColorBackground = lipgloss.Color("#111827")
	ColorForeground = lipgloss.Color("#F9FAFB")
	ColorMuted      = lipgloss.Color("#9CA3AF")
	ColorBorder     = lipgloss.Color("#4B5563")

	ColorChartLine1 = lipgloss.Color("#10B981")
	ColorChartLine2 = lipgloss.Color("#3B82F6")
	ColorChartLine3 = lipgloss.Color("#F59E0B")
	ColorChartLine4 = lipgloss.Color("#EF4444")
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorBorder)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	ParameterValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	HelpKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Italic(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorBorder)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	TableHighlightStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorBackground).
				Background(ColorPrimary)

	ConservativeBadgeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorBackground).
				Background(ColorAccent).
				Padding(0, 1)
)

// MetricTrendStyle picks the colour of a change indicator
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for the direction of a change
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// StatusStyle colours on-track and off-track text
func StatusStyle(ok bool) lipgloss.Style {
	if ok {
		return MetricPositiveStyle.Bold(true)
	}
	return MetricNegativeStyle.Bold(true)
}

// FormatCurrency renders whole dollars with thousands separators.
func FormatCurrency(d decimal.Decimal) string {
	return output.FormatCurrency(d)
}

// FormatShort renders a compact amount such as $1.25M for cards and axes.
func FormatShort(d decimal.Decimal) string {
	return output.FormatShort(d)
}
