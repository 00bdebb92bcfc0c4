package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/nestegg/internal/config"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/tui/components"
	"github.com/rgehrsitz/nestegg/internal/tui/tuimsg"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

// parameterSpec binds a slider to one field of the plan
type parameterSpec struct {
	key   string
	label string
	desc  string
	unit  components.SliderUnit
	min   decimal.Decimal
	max   decimal.Decimal
	step  decimal.Decimal
	get   func(domain.Inputs) decimal.Decimal
	set   func(*domain.Inputs, decimal.Decimal)
}

func decInt(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func optionalIncome(p *decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return *p
}

func setOptionalIncome(v decimal.Decimal) *decimal.Decimal {
	if v.IsZero() {
		return nil
	}
	return domain.DecimalPtr(v)
}

var parameterSpecs = []parameterSpec{
	{"current_age", "Current Age", "Your age today", components.UnitYears, decInt(18), decInt(99), decInt(1),
		func(in domain.Inputs) decimal.Decimal { return decInt(int64(in.CurrentAge)) },
		func(in *domain.Inputs, v decimal.Decimal) { in.CurrentAge = int(v.IntPart()) }},
	{"retirement_age", "Retirement Age", "Contributions stop and withdrawals begin", components.UnitYears, decInt(19), decInt(100), decInt(1),
		func(in domain.Inputs) decimal.Decimal { return decInt(int64(in.RetirementAge)) },
		func(in *domain.Inputs, v decimal.Decimal) { in.RetirementAge = int(v.IntPart()) }},
	{"life_expectancy", "Life Expectancy", "Last age the plan has to fund", components.UnitYears, decInt(20), decInt(120), decInt(1),
		func(in domain.Inputs) decimal.Decimal { return decInt(int64(in.LifeExpectancy)) },
		func(in *domain.Inputs, v decimal.Decimal) { in.LifeExpectancy = int(v.IntPart()) }},
	{"current_savings", "Current Savings", "Invested balance today", components.UnitDollars, decInt(0), decInt(10000000), decInt(5000),
		func(in domain.Inputs) decimal.Decimal { return in.CurrentSavings },
		func(in *domain.Inputs, v decimal.Decimal) { in.CurrentSavings = v }},
	{"annual_contribution", "Annual Contribution", "Saved each working year", components.UnitDollars, decInt(0), decInt(100000), decInt(1000),
		func(in domain.Inputs) decimal.Decimal { return in.AnnualContribution },
		func(in *domain.Inputs, v decimal.Decimal) { in.AnnualContribution = v }},
	{"annual_spending", "Annual Spending", "Retirement spending in today's dollars", components.UnitDollars, decInt(0), decInt(500000), decInt(1000),
		func(in domain.Inputs) decimal.Decimal { return in.AnnualSpending },
		func(in *domain.Inputs, v decimal.Decimal) { in.AnnualSpending = v }},
	{"rate_of_return", "Rate of Return", "Nominal annual return", components.UnitPercent, decInt(0), decInt(20), decimal.NewFromFloat(0.5),
		func(in domain.Inputs) decimal.Decimal { return in.RateOfReturn },
		func(in *domain.Inputs, v decimal.Decimal) { in.RateOfReturn = v }},
	{"inflation_rate", "Inflation Rate", "Grows spending each year", components.UnitPercent, decInt(0), decInt(10), decimal.NewFromFloat(0.25),
		func(in domain.Inputs) decimal.Decimal { return in.InflationRate },
		func(in *domain.Inputs, v decimal.Decimal) { in.InflationRate = v }},
	{"social_security_income", "Social Security", "Annual benefit from retirement", components.UnitDollars, decInt(0), decInt(100000), decInt(1000),
		func(in domain.Inputs) decimal.Decimal { return optionalIncome(in.SocialSecurityIncome) },
		func(in *domain.Inputs, v decimal.Decimal) { in.SocialSecurityIncome = setOptionalIncome(v) }},
	{"pension_income", "Pension", "Annual pension from retirement", components.UnitDollars, decInt(0), decInt(200000), decInt(1000),
		func(in domain.Inputs) decimal.Decimal { return optionalIncome(in.PensionIncome) },
		func(in *domain.Inputs, v decimal.Decimal) { in.PensionIncome = setOptionalIncome(v) }},
}

var (
	keyPrevParam  = key.NewBinding(key.WithKeys("up"))
	keyNextParam  = key.NewBinding(key.WithKeys("down"))
	keyDecrease   = key.NewBinding(key.WithKeys("left"))
	keyIncrease   = key.NewBinding(key.WithKeys("right"))
	keyDecrease10 = key.NewBinding(key.WithKeys("shift+left"))
	keyIncrease10 = key.NewBinding(key.WithKeys("shift+right"))
	keyReset      = key.NewBinding(key.WithKeys("r"))
)

// ParametersModel is the editable list of plan inputs on the left of the dashboard
type ParametersModel struct {
	original      domain.Inputs
	inputs        domain.Inputs
	sliders       []*components.ParameterSlider
	focusedSlider int
	modified      bool
	validate      func(domain.Inputs) error
	width         int
	height        int
}

// NewParametersModel creates a new parameters scene model
func NewParametersModel() *ParametersModel {
	return &ParametersModel{
		validate: config.NewInputParser().ValidateInputs,
	}
}

// SetInputs replaces the plan being edited and makes it the reset point
func (m *ParametersModel) SetInputs(inputs domain.Inputs) {
	m.original = inputs.Clone()
	m.inputs = inputs.Clone()
	m.modified = false
	m.buildSliders()
}

// Inputs returns the plan with every slider applied
func (m *ParametersModel) Inputs() domain.Inputs {
	return m.inputs.Clone()
}

// Modified reports whether the plan differs from the last SetInputs
func (m *ParametersModel) Modified() bool {
	return m.modified
}

// Focused returns the key of the focused parameter
func (m *ParametersModel) Focused() string {
	if m.focusedSlider < len(m.sliders) {
		return m.sliders[m.focusedSlider].Key
	}
	return ""
}

func (m *ParametersModel) buildSliders() {
	focused := m.focusedSlider
	m.sliders = make([]*components.ParameterSlider, len(parameterSpecs))
	for i, spec := range parameterSpecs {
		m.sliders[i] = components.NewParameterSlider(spec.key, spec.label, spec.get(m.inputs), spec.min, spec.max, spec.step).
			WithUnit(spec.unit).
			WithDescription(spec.desc)
	}
	if focused >= len(m.sliders) {
		focused = 0
	}
	m.focusedSlider = focused
	m.sliders[focused].SetFocused(true)
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *ParametersModel) handleKeyPress(msg tea.KeyMsg) (*ParametersModel, tea.Cmd) {
	if len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, keyPrevParam):
		m.moveFocus(-1)
	case key.Matches(msg, keyNextParam):
		m.moveFocus(1)
	case key.Matches(msg, keyDecrease):
		return m, m.adjust(-1)
	case key.Matches(msg, keyIncrease):
		return m, m.adjust(1)
	case key.Matches(msg, keyDecrease10):
		return m, m.adjust(-10)
	case key.Matches(msg, keyIncrease10):
		return m, m.adjust(10)
	case key.Matches(msg, keyReset):
		if !m.modified {
			return m, nil
		}
		m.SetInputs(m.original)
		return m, m.changed()
	}

	return m, nil
}

func (m *ParametersModel) moveFocus(delta int) {
	next := m.focusedSlider + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focusedSlider].SetFocused(false)
	m.focusedSlider = next
	m.sliders[next].SetFocused(true)
}

// adjust moves the focused slider by steps and applies it to the plan.
// Edits that fail validation are rolled back.
func (m *ParametersModel) adjust(steps int) tea.Cmd {
	slider := m.sliders[m.focusedSlider]
	spec := parameterSpecs[m.focusedSlider]
	before := slider.Value

	slider.SetValue(before.Add(slider.Step.Mul(decInt(int64(steps)))))
	if slider.Value.Equal(before) {
		return nil
	}

	candidate := m.inputs.Clone()
	spec.set(&candidate, slider.Value)
	if err := m.validate(candidate); err != nil {
		slider.SetValue(before)
		return func() tea.Msg { return tuimsg.InputsRejectedMsg{Err: err} }
	}

	m.inputs = candidate
	m.modified = true
	return m.changed()
}

func (m *ParametersModel) changed() tea.Cmd {
	inputs := m.Inputs()
	return func() tea.Msg { return tuimsg.InputsChangedMsg{Inputs: inputs} }
}

// View renders the compact parameter list with the focused description
func (m *ParametersModel) View() string {
	var b strings.Builder

	title := "Plan Inputs"
	if m.modified {
		title += " *"
	}
	b.WriteString(tuistyles.TitleStyle.Render(title))
	b.WriteString("\n\n")

	for _, s := range m.sliders {
		b.WriteString(s.RenderCompact(20))
		b.WriteString("\n")
	}

	if m.focusedSlider < len(m.sliders) {
		b.WriteString("\n")
		b.WriteString(tuistyles.SubtitleStyle.Render(m.sliders[m.focusedSlider].Description))
	}
	b.WriteString("\n")
	b.WriteString(tuistyles.HelpDescStyle.Render("↑↓ select • ←→ adjust • shift ×10 • r reset"))

	return tuistyles.BorderStyle.Render(b.String())
}
