package scenes

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/output"
	"github.com/rgehrsitz/nestegg/internal/tui/components"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

var stressDescriptions = map[string]string{
	"Worst Case": "4% return, 5% inflation, +10% spending, plan to 95",
	"Base Case":  "Your plan as entered",
	"Best Case":  "10% return, 2% inflation",
}

var (
	keyPrevScenario = key.NewBinding(key.WithKeys("["))
	keyNextScenario = key.NewBinding(key.WithKeys("]"))
)

// ScenariosModel shows the worst, base and best stress runs side by side
type ScenariosModel struct {
	scenarios     []domain.NamedResults
	selectedIndex int
	width         int
	height        int
}

// NewScenariosModel creates a new scenarios scene model
func NewScenariosModel() *ScenariosModel {
	return &ScenariosModel{selectedIndex: 1}
}

// SetPlan updates the stress runs to display
func (m *ScenariosModel) SetPlan(plan PlanView) {
	m.scenarios = plan.Stress.Named()
}

// SetSize updates the scene dimensions
func (m *ScenariosModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the name of the highlighted scenario
func (m *ScenariosModel) Selected() string {
	if m.selectedIndex < len(m.scenarios) {
		return m.scenarios[m.selectedIndex].Name
	}
	return ""
}

// Update moves the highlighted card with [ and ]
func (m *ScenariosModel) Update(msg tea.Msg) (*ScenariosModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keyPrevScenario):
			if m.selectedIndex > 0 {
				m.selectedIndex--
			}
		case key.Matches(msg, keyNextScenario):
			if m.selectedIndex < len(m.scenarios)-1 {
				m.selectedIndex++
			}
		}
	}
	return m, nil
}

// View renders the stress cards and the chart of the highlighted run
func (m *ScenariosModel) View() string {
	if len(m.scenarios) == 0 {
		return tuistyles.InfoStyle.Render("Loading plan...")
	}

	cardWidth := (m.width - 6) / 3
	if cardWidth < 24 {
		cardWidth = 24
	}

	cards := make([]*components.ScenarioCard, len(m.scenarios))
	for i, s := range m.scenarios {
		cards[i] = m.card(s).WithWidth(cardWidth).SetSelected(i == m.selectedIndex)
	}

	selected := m.scenarios[m.selectedIndex]
	points := make([]float64, len(selected.Results.Projections))
	labels := make([]string, len(selected.Results.Projections))
	for i, p := range selected.Results.Projections {
		points[i] = p.Balance.InexactFloat64()
		labels[i] = strconv.Itoa(p.Age)
	}
	height := m.height - 16
	if height < 5 {
		height = 5
	}
	chart := components.NewASCIIChart(selected.Name+" Balance").
		AddSeries(selected.Name, points, tuistyles.ColorChartLine3).
		WithLabels(labels).
		WithSize(m.width, height)

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Stress Test"),
		components.ScenarioRow(cards),
		"",
		chart.Render(),
		tuistyles.HelpDescStyle.Render("[ ] select scenario"),
	)
}

func (m *ScenariosModel) card(s domain.NamedResults) *components.ScenarioCard {
	summary := s.Results.Summary
	card := components.NewScenarioCard(s.Name).
		WithDescription(stressDescriptions[s.Name]).
		WithOnTrack(summary.RetirementGoalReached).
		AddHighlight("Final balance  %s", tuistyles.FormatShort(summary.FinalBalance)).
		AddHighlight("Success        %s", output.FormatPercent(summary.SuccessProbability))

	if summary.AgeMoneyRunsOut != nil {
		card.AddHighlight("Runs out at    %d", *summary.AgeMoneyRunsOut)
	} else if n := len(s.Results.Projections); n > 0 {
		card.AddHighlight("Lasts through  %d", s.Results.Projections[n-1].Age)
	}
	return card
}
