package scenes

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rgehrsitz/nestegg/internal/breakeven"
	"github.com/rgehrsitz/nestegg/internal/tui/tuimsg"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

var targetLabels = map[breakeven.OptimizationTarget]string{
	breakeven.OptimizeSpending:      "Max annual spending",
	breakeven.OptimizeContribution:  "Min annual contribution",
	breakeven.OptimizeSavings:       "Min savings today",
	breakeven.OptimizeRetirementAge: "Earliest retirement age",
}

// OptimizeModel solves for the break-even value of each single input
type OptimizeModel struct {
	solver   *breakeven.Solver
	result   *breakeven.MultiDimensionalResult
	err      error
	revision int
	pending  int
	running  bool
	width    int
	height   int
}

// NewOptimizeModel creates an optimize scene over solver
func NewOptimizeModel(solver *breakeven.Solver) *OptimizeModel {
	return &OptimizeModel{solver: solver, revision: -1, pending: -1}
}

// SetSize updates the scene dimensions
func (m *OptimizeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Running reports whether a solve is in flight
func (m *OptimizeModel) Running() bool {
	return m.running
}

// Request starts a solve for plan unless the same revision is done or in flight
func (m *OptimizeModel) Request(plan PlanView) tea.Cmd {
	if m.revision == plan.Revision || (m.running && m.pending == plan.Revision) {
		return nil
	}
	m.running = true
	m.pending = plan.Revision

	solver := m.solver
	inputs := plan.Inputs.Clone()
	revision := plan.Revision

	return func() tea.Msg {
		result, err := solver.OptimizeAllTargets(context.Background(), inputs,
			breakeven.DefaultConstraints(inputs), breakeven.GoalMoneyLasts)
		return tuimsg.OptimizationCompleteMsg{Revision: revision, Result: result, Err: err}
	}
}

// SetResult stores a finished solve, ignoring results for superseded plans
func (m *OptimizeModel) SetResult(msg tuimsg.OptimizationCompleteMsg) {
	if msg.Revision != m.pending {
		return
	}
	m.running = false
	m.revision = msg.Revision
	m.result = msg.Result
	m.err = msg.Err
}

// Update handles messages for the optimize scene
func (m *OptimizeModel) Update(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	if msg, ok := msg.(tuimsg.OptimizationCompleteMsg); ok {
		m.SetResult(msg)
	}
	return m, nil
}

// View renders the break-even table; spin is shown while a solve is in flight
func (m *OptimizeModel) View(spin string) string {
	title := tuistyles.TitleStyle.Render("Break-Even Values") + "\n" +
		tuistyles.SubtitleStyle.Render("Each value changes one input so the money just lasts")

	switch {
	case m.running:
		return title + "\n\n" + spin + " Solving..."
	case m.err != nil:
		return title + "\n\n" + tuistyles.ErrorStyle.Render(m.err.Error())
	case m.result == nil:
		return title + "\n\n" + tuistyles.InfoStyle.Render("No results yet")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)).
		Headers("Target", "Value", "Final Balance", "Iterations")

	for _, res := range m.result.Results {
		t.Row(targetLabels[res.Request.Target], optimalValue(res), tuistyles.FormatShort(res.FinalBalance), strconv.Itoa(res.Iterations))
	}
	for _, target := range m.result.Failed {
		t.Row(targetLabels[target], "not reachable", "", "")
	}

	var recs strings.Builder
	recs.WriteString(tuistyles.SubtitleStyle.Render("Recommendations"))
	for _, rec := range m.result.Recommendations {
		recs.WriteString("\n • " + rec)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render(), "", recs.String())
}

func optimalValue(res breakeven.OptimizationResult) string {
	switch {
	case res.OptimalSpending != nil:
		return tuistyles.FormatCurrency(*res.OptimalSpending)
	case res.OptimalContribution != nil:
		return tuistyles.FormatCurrency(*res.OptimalContribution)
	case res.OptimalSavings != nil:
		return tuistyles.FormatCurrency(*res.OptimalSavings)
	case res.OptimalRetirementAge != nil:
		return "age " + strconv.Itoa(*res.OptimalRetirementAge)
	}
	return "-"
}
