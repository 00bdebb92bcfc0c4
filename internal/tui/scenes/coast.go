package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/nestegg/internal/tui/components"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

// CoastModel shows Coast FIRE progress and the earliest contribution-stop age
type CoastModel struct {
	plan   *PlanView
	width  int
	height int
}

// NewCoastModel creates a new coast scene model
func NewCoastModel() *CoastModel {
	return &CoastModel{}
}

// SetPlan updates the plan to display
func (m *CoastModel) SetPlan(plan PlanView) {
	m.plan = &plan
}

// SetSize updates the scene dimensions
func (m *CoastModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the coast scene
func (m *CoastModel) Update(msg tea.Msg) (*CoastModel, tea.Cmd) {
	return m, nil
}

// View renders the coast and stop-age panels
func (m *CoastModel) View() string {
	if m.plan == nil {
		return tuistyles.InfoStyle.Render("Loading plan...")
	}
	return m.renderCoast() + "\n\n" + m.renderStopAge()
}

func (m *CoastModel) renderCoast() string {
	coast := m.plan.Coast
	var b strings.Builder

	b.WriteString(tuistyles.TitleStyle.Render("Coast FIRE"))
	b.WriteString("\n\n")

	b.WriteString(components.NewProgressBar(coast.PercentToCoast).
		WithWidth(36).
		WithDetail(fmt.Sprintf("%s of %s", tuistyles.FormatCurrency(coast.CurrentSavings), tuistyles.FormatCurrency(coast.CoastNumber))).
		Render())
	b.WriteString("\n\n")

	rows := [][2]string{
		{"FIRE number", tuistyles.FormatCurrency(coast.FireNumber)},
		{"Coast number", tuistyles.FormatCurrency(coast.CoastNumber)},
		{"Current savings", tuistyles.FormatCurrency(coast.CurrentSavings)},
	}
	if coast.IsCoasting {
		rows = append(rows, [2]string{"Surplus", tuistyles.FormatCurrency(coast.Gap.Neg())})
	} else {
		rows = append(rows, [2]string{"Gap", tuistyles.FormatCurrency(coast.Gap)})
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s %s\n", tuistyles.MetricLabelStyle.Width(18).Render(r[0]), r[1]))
	}

	b.WriteString("\n")
	if coast.IsCoasting {
		b.WriteString(tuistyles.StatusStyle(true).Render(
			fmt.Sprintf("✓ Coasting: savings alone grow to the FIRE number by %d", m.plan.Inputs.RetirementAge)))
	} else {
		b.WriteString(tuistyles.StatusStyle(false).Render("✗ Not coasting yet: keep contributing"))
	}

	return tuistyles.BorderStyle.Render(b.String())
}

func (m *CoastModel) renderStopAge() string {
	stop := m.plan.StopAge
	var b strings.Builder

	b.WriteString(tuistyles.TitleStyle.Render("Earliest Contribution Stop"))
	b.WriteString("\n\n")

	if !stop.Found {
		b.WriteString(tuistyles.StatusStyle(false).Render(
			fmt.Sprintf("✗ Contributing every year through %d still does not fund the plan", m.plan.Inputs.RetirementAge)))
		return tuistyles.BorderStyle.Render(b.String())
	}

	b.WriteString(tuistyles.StatusStyle(true).Render(fmt.Sprintf("✓ Contributions can stop at age %d", stop.StopAge)))
	b.WriteString("\n")
	if years := m.plan.Inputs.RetirementAge - stop.StopAge; years > 0 {
		b.WriteString(tuistyles.HelpDescStyle.Render(
			fmt.Sprintf("%d years before retirement, saving %s in contributions",
				years, tuistyles.FormatCurrency(m.plan.Inputs.AnnualContribution.Mul(decInt(int64(years)))))))
		b.WriteString("\n")
	}
	if stop.Hypothetical != nil {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			tuistyles.MetricLabelStyle.Width(18).Render("Balance at stop"),
			tuistyles.FormatCurrency(stop.Hypothetical.CurrentSavings)))
	}

	return tuistyles.BorderStyle.Render(b.String())
}
