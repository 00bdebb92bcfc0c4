package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// SliderUnit controls how a slider value is displayed
type SliderUnit int

const (
	UnitDollars SliderUnit = iota
	UnitPercent
	UnitYears
)

// ParameterSlider displays one adjustable plan input with a visual slider.
// Values are decimals so repeated steps do not drift.
type ParameterSlider struct {
	Key         string // plan field the slider edits, e.g. "annual_spending"
	Label       string
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	Step        decimal.Decimal
	Unit        SliderUnit
	Width       int
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a slider, clamping value into [min, max]
func NewParameterSlider(key, label string, value, min, max, step decimal.Decimal) *ParameterSlider {
	p := &ParameterSlider{
		Key:   key,
		Label: label,
		Min:   min,
		Max:   max,
		Step:  step,
		Width: 20,
	}
	p.SetValue(value)
	return p
}

// WithUnit sets the display unit
func (p *ParameterSlider) WithUnit(unit SliderUnit) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// WithDescription adds a description/help text
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// Increment raises the value by one step and reports whether it moved.
func (p *ParameterSlider) Increment() bool {
	return p.move(p.Step)
}

// Decrement lowers the value by one step and reports whether it moved.
func (p *ParameterSlider) Decrement() bool {
	return p.move(p.Step.Neg())
}

func (p *ParameterSlider) move(delta decimal.Decimal) bool {
	before := p.Value
	p.SetValue(p.Value.Add(delta))
	return !p.Value.Equal(before)
}

// SetValue sets the value directly, clamping to min/max
func (p *ParameterSlider) SetValue(value decimal.Decimal) {
	switch {
	case value.LessThan(p.Min):
		p.Value = p.Min
	case value.GreaterThan(p.Max):
		p.Value = p.Max
	default:
		p.Value = value
	}
}

// Percentage returns the value's position within the range, 0 to 1
func (p *ParameterSlider) Percentage() float64 {
	span := p.Max.Sub(p.Min)
	if span.IsZero() {
		return 0
	}
	return p.Value.Sub(p.Min).Div(span).InexactFloat64()
}

// FormatValue renders v in the slider's unit
func (p *ParameterSlider) FormatValue(v decimal.Decimal) string {
	switch p.Unit {
	case UnitPercent:
		return v.StringFixed(1) + "%"
	case UnitYears:
		return v.StringFixed(0)
	default:
		return tuistyles.FormatCurrency(v)
	}
}

// Render returns the full slider with label, bar, range and hints
func (p *ParameterSlider) Render() string {
	var content strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}
	content.WriteString(labelStyle.Render(p.Label))
	content.WriteString("\n")
	content.WriteString(valueStyle.Render(p.FormatValue(p.Value)))
	content.WriteString("\n")
	content.WriteString(p.renderSliderBar(p.Width))

	rangeStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString("\n")
	content.WriteString(rangeStyle.Render(fmt.Sprintf("%s  ─  %s", p.FormatValue(p.Min), p.FormatValue(p.Max))))

	if p.Description != "" {
		content.WriteString("\n")
		descStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString(descStyle.Render(p.Description))
	}

	if p.IsFocused {
		content.WriteString("\n")
		hintStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorInfo).
			Italic(true)
		content.WriteString(hintStyle.Render("← → to adjust • ↑↓ to navigate"))
	}

	return content.String()
}

// RenderCompact returns a single line: marker, label, value and a mini bar
func (p *ParameterSlider) RenderCompact(labelWidth int) string {
	labelStyle := tuistyles.ParameterLabelStyle.Width(labelWidth)
	valueStyle := tuistyles.ParameterValueStyle.Width(11).Align(lipgloss.Right)
	marker := "  "

	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary).Bold(true)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
		marker = tuistyles.SelectedItemStyle.Render("▸ ")
	}

	return marker + labelStyle.Render(p.Label) + valueStyle.Render(p.FormatValue(p.Value)) + " " + p.renderSliderBar(10)
}

// renderSliderBar draws [━━━●───] with the thumb at the value's position
func (p *ParameterSlider) renderSliderBar(width int) string {
	if width < 1 {
		width = 1
	}
	pos := int(math.Round(float64(width-1) * p.Percentage()))
	if pos < 0 {
		pos = 0
	}
	if pos > width-1 {
		pos = width - 1
	}

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if pos > 0 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", pos)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if rest := width - pos - 1; rest > 0 {
		bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", rest)))
	}
	bar.WriteString("]")

	return bar.String()
}
