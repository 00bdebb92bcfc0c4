package scenes

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/compare"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/tui/tuimsg"
)

func flatInputs() domain.Inputs {
	return domain.Inputs{
		CurrentAge:         60,
		RetirementAge:      65,
		CurrentSavings:     decimal.NewFromInt(100000),
		AnnualContribution: decimal.Zero,
		RateOfReturn:       decimal.Zero,
		AnnualSpending:     decimal.NewFromInt(5000),
		InflationRate:      decimal.Zero,
		LifeExpectancy:     90,
	}
}

func flatPlan(conservative bool) PlanView {
	return ComputePlan(calculation.NewProjectionEngine(), flatInputs(), conservative, 1)
}

func TestComputePlan(t *testing.T) {
	plan := flatPlan(false)
	assert.Equal(t, 1, plan.Revision)
	assert.Len(t, plan.Results.Projections, 31)
	assert.False(t, plan.Coast.IsCoasting)
	assert.False(t, plan.StopAge.Found)
	assert.Len(t, plan.Stress.Named(), 3)

	conservative := flatPlan(true)
	assert.True(t, conservative.Conservative)
	assert.Equal(t, 95, conservative.Inputs.LifeExpectancy)
	assert.Len(t, conservative.Results.Projections, 36)
}

func TestParametersModel_AdjustAndReset(t *testing.T) {
	m := NewParametersModel()
	m.SetInputs(flatInputs())
	assert.Equal(t, "current_age", m.Focused())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "retirement_age", m.Focused())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, cmd)
	changed, ok := cmd().(tuimsg.InputsChangedMsg)
	require.True(t, ok)
	assert.Equal(t, 66, changed.Inputs.RetirementAge)
	assert.True(t, m.Modified())
	assert.Contains(t, m.View(), "Plan Inputs *")

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	assert.False(t, m.Modified())
	assert.Equal(t, 65, m.Inputs().RetirementAge)
}

func TestParametersModel_RejectsInvalidEdit(t *testing.T) {
	m := NewParametersModel()
	m.SetInputs(flatInputs())

	// life expectancy down ten would fall below retirement age
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, "life_expectancy", m.Focused())

	m.Update(tea.KeyMsg{Type: tea.KeyShiftLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyShiftLeft})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyShiftLeft})
	require.NotNil(t, cmd)

	_, ok := cmd().(tuimsg.InputsRejectedMsg)
	assert.True(t, ok, "third step to 60 should be rejected")
	assert.Equal(t, 70, m.Inputs().LifeExpectancy)
}

func TestParametersModel_OptionalIncome(t *testing.T) {
	m := NewParametersModel()
	m.SetInputs(flatInputs())

	for m.Focused() != "pension_income" {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, m.Inputs().PensionIncome)
	assert.Equal(t, "1000", m.Inputs().PensionIncome.String())

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Nil(t, m.Inputs().PensionIncome, "zero income should clear the field")
}

func TestResultsModel_Rows(t *testing.T) {
	m := NewResultsModel()
	assert.Contains(t, m.View(), "No projection yet")

	m.SetPlan(flatPlan(false))
	assert.Equal(t, 31, m.Rows())

	rows := projectionRows(flatPlan(false).Results.Projections, 65)
	assert.Equal(t, "60", rows[0][0])
	assert.Equal(t, "working", rows[0][1])
	assert.Equal(t, "retired", rows[5][1])
	assert.Equal(t, "depleted", rows[len(rows)-1][1])
}

func TestScenariosModel_Selection(t *testing.T) {
	m := NewScenariosModel()
	assert.Empty(t, m.Selected())

	m.SetPlan(flatPlan(false))
	assert.Equal(t, "Base Case", m.Selected())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")})
	assert.Equal(t, "Best Case", m.Selected())
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")})
	assert.Equal(t, "Best Case", m.Selected())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	assert.Equal(t, "Worst Case", m.Selected())
	assert.Contains(t, m.View(), "Stress Test")
}

func TestCoastModel_View(t *testing.T) {
	m := NewCoastModel()
	m.SetPlan(flatPlan(false))

	view := m.View()
	assert.Contains(t, view, "Coast FIRE")
	assert.Contains(t, view, "Not coasting yet")
	assert.Contains(t, view, "$125,000")
	assert.Contains(t, view, "still does not fund the plan")
}

func TestHomeModel_View(t *testing.T) {
	m := NewHomeModel()
	m.SetSize(100, 40)
	m.SetPlan(flatPlan(false))

	view := m.View()
	assert.Contains(t, view, "Needs Adjustment")
	assert.Contains(t, view, "Portfolio Balance")
}

func TestCompareModel_IgnoresStaleResults(t *testing.T) {
	m := NewCompareModel(compare.NewCompareEngine(calculation.NewProjectionEngine()))
	plan := flatPlan(false)

	cmd := m.Request(plan)
	require.NotNil(t, cmd)
	assert.True(t, m.Running())
	assert.Nil(t, m.Request(plan), "same revision in flight")

	m.SetResult(tuimsg.ComparisonCompleteMsg{Revision: 7})
	assert.True(t, m.Running())

	m.SetResult(tuimsg.ComparisonCompleteMsg{Revision: plan.Revision})
	assert.False(t, m.Running())
	assert.Nil(t, m.Request(plan), "already computed")
}
