package scenes

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/nestegg/internal/output"
	"github.com/rgehrsitz/nestegg/internal/tui/components"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

// HomeModel is the summary view: headline cards over a balance chart
type HomeModel struct {
	plan   *PlanView
	width  int
	height int
}

// NewHomeModel creates a new home scene model
func NewHomeModel() *HomeModel {
	return &HomeModel{width: 80}
}

// SetPlan updates the plan to display
func (m *HomeModel) SetPlan(plan PlanView) {
	m.plan = &plan
}

// SetSize updates the model dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the home scene
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	return m, nil
}

// View renders the summary cards and chart
func (m *HomeModel) View() string {
	if m.plan == nil {
		return tuistyles.InfoStyle.Render("Loading plan...")
	}

	cardWidth := (m.width - 2) / 3
	if cardWidth < 20 {
		cardWidth = 20
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		components.MetricGrid(m.cards(cardWidth), 3),
		"",
		m.chart().Render(),
	)
}

func (m *HomeModel) cards(width int) []*components.MetricCard {
	summary := m.plan.Results.Summary
	onTrack := summary.RetirementGoalReached

	status := "On Track"
	if !onTrack {
		status = "Needs Adjustment"
	}

	longevity := components.NewMetricCard("Money Lasts", "Through "+strconv.Itoa(m.plan.Inputs.LifeExpectancy)).WithStatus(true)
	if summary.AgeMoneyRunsOut != nil {
		longevity = components.NewMetricCard("Money Runs Out", "Age "+strconv.Itoa(*summary.AgeMoneyRunsOut)).
			WithStatus(onTrack)
	}

	peak, peakAge := m.plan.Results.PeakBalance()
	atRetirement, _ := m.plan.Results.ProjectionAt(m.plan.Inputs.RetirementAge)

	cards := []*components.MetricCard{
		components.NewMetricCard("Status", status).WithStatus(onTrack),
		longevity,
		components.NewMetricCard("Success Probability", output.FormatPercent(summary.SuccessProbability)).
			WithStatus(onTrack),
		components.NewMetricCard("Balance at Retirement", tuistyles.FormatShort(atRetirement.Balance)).
			WithDescription(fmt.Sprintf("age %d", m.plan.Inputs.RetirementAge)),
		components.NewMetricCard("Peak Balance", tuistyles.FormatShort(peak)).
			WithDescription(fmt.Sprintf("age %d", peakAge)),
		components.NewMetricCard("Safe Withdrawal Rate", output.FormatPercent(summary.SafeWithdrawalRate)),
	}

	for _, c := range cards {
		c.WithWidth(width)
	}
	return cards
}

func (m *HomeModel) chart() *components.ASCIIChart {
	projections := m.plan.Results.Projections
	nominal := make([]float64, len(projections))
	adjusted := make([]float64, len(projections))
	labels := make([]string, len(projections))
	marker := -1

	for i, p := range projections {
		nominal[i] = p.Balance.InexactFloat64()
		adjusted[i] = p.InflationAdjustedBalance.InexactFloat64()
		labels[i] = strconv.Itoa(p.Age)
		if p.Age == m.plan.Inputs.RetirementAge {
			marker = i
		}
	}

	height := m.height - 14
	if height < 6 {
		height = 6
	}

	return components.NewASCIIChart("Portfolio Balance").
		AddSeries("Nominal", nominal, tuistyles.ColorChartLine1).
		AddSeries("Today's dollars", adjusted, tuistyles.ColorChartLine2).
		WithLabels(labels).
		WithSize(m.width, height).
		WithMarker(marker, "Retirement").
		WithXAxisLabel("Age")
}
