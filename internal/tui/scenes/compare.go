package scenes

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rgehrsitz/nestegg/internal/compare"
	"github.com/rgehrsitz/nestegg/internal/output"
	"github.com/rgehrsitz/nestegg/internal/tui/tuimsg"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

// CompareModel runs every built-in template against the plan and tabulates the variants
type CompareModel struct {
	engine   *compare.CompareEngine
	set      *compare.ComparisonSet
	err      error
	revision int
	pending  int
	running  bool
	width    int
	height   int
}

// NewCompareModel creates a compare scene over engine
func NewCompareModel(engine *compare.CompareEngine) *CompareModel {
	return &CompareModel{engine: engine, revision: -1, pending: -1}
}

// SetSize updates the scene dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Running reports whether a comparison is in flight
func (m *CompareModel) Running() bool {
	return m.running
}

// Request starts a comparison for plan unless one for the same revision is
// already done or in flight.
func (m *CompareModel) Request(plan PlanView) tea.Cmd {
	if m.revision == plan.Revision || (m.running && m.pending == plan.Revision) {
		return nil
	}
	m.running = true
	m.pending = plan.Revision

	engine := m.engine
	inputs := plan.Inputs.Clone()
	templates := engine.TemplateRegistry.List()
	revision := plan.Revision

	return func() tea.Msg {
		set, err := engine.Compare(context.Background(), inputs, compare.CompareOptions{
			BaseScenarioName: "your plan",
			Templates:        templates,
		})
		return tuimsg.ComparisonCompleteMsg{Revision: revision, Set: set, Err: err}
	}
}

// SetResult stores a finished comparison, ignoring results for superseded plans
func (m *CompareModel) SetResult(msg tuimsg.ComparisonCompleteMsg) {
	if msg.Revision != m.pending {
		return
	}
	m.running = false
	m.revision = msg.Revision
	m.set = msg.Set
	m.err = msg.Err
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	if msg, ok := msg.(tuimsg.ComparisonCompleteMsg); ok {
		m.SetResult(msg)
	}
	return m, nil
}

// View renders the comparison; spin is shown while a run is in flight
func (m *CompareModel) View(spin string) string {
	title := tuistyles.TitleStyle.Render("Template Comparison")

	switch {
	case m.running:
		return title + "\n\n" + spin + " Comparing templates..."
	case m.err != nil:
		return title + "\n\n" + tuistyles.ErrorStyle.Render("Comparison failed: "+m.err.Error())
	case m.set == nil:
		return title + "\n\n" + tuistyles.InfoStyle.Render("No comparison yet")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.renderTable(),
		"",
		m.renderRecommendations(),
	)
}

func (m *CompareModel) renderTable() string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)).
		Headers("Scenario", "Final Balance", "vs Plan", "Funded To", "Success")

	base := m.set.BaseResult
	t.Row(base.ScenarioName, tuistyles.FormatShort(base.FinalBalance), "", fundedTo(*base), output.FormatPercent(base.SuccessProbability))

	for _, alt := range m.set.AlternativeResults {
		diff := tuistyles.FormatShort(alt.BalanceDiffFromBase)
		if alt.BalanceDiffFromBase.IsPositive() {
			diff = "+" + diff
		}
		t.Row(alt.ScenarioName, tuistyles.FormatShort(alt.FinalBalance), diff, fundedTo(alt), output.FormatPercent(alt.SuccessProbability))
	}

	return t.Render()
}

func fundedTo(r compare.ComparisonResult) string {
	if r.MoneyLasts {
		return "✓ " + fmt.Sprint(r.LastFundedAge)
	}
	return "✗ " + fmt.Sprint(r.LastFundedAge)
}

func (m *CompareModel) renderRecommendations() string {
	if len(m.set.Recommendations) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(tuistyles.SubtitleStyle.Render("Recommendations"))
	for _, rec := range m.set.Recommendations {
		b.WriteString("\n • " + rec)
	}
	return b.String()
}
