package scenes

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

// ResultsModel is the year-by-year projection table
type ResultsModel struct {
	table         table.Model
	retirementAge int
	rows          int
	width         int
	height        int
}

// tableKeys leaves the arrow keys to the parameter list
var tableKeys = table.KeyMap{
	LineUp:       key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "row up")),
	LineDown:     key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "row down")),
	PageUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
	HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
	GotoTop:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	GotoBottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
}

var projectionColumns = []table.Column{
	{Title: "Age", Width: 5},
	{Title: "Phase", Width: 8},
	{Title: "Balance", Width: 14},
	{Title: "Contribution", Width: 13},
	{Title: "Withdrawal", Width: 12},
	{Title: "Interest", Width: 12},
	{Title: "Today's $", Width: 14},
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	t := table.New(
		table.WithColumns(projectionColumns),
		table.WithFocused(true),
		table.WithHeight(12),
		table.WithKeyMap(tableKeys),
	)

	styles := table.DefaultStyles()
	styles.Header = tuistyles.TableHeaderStyle
	styles.Cell = tuistyles.TableCellStyle
	styles.Selected = tuistyles.TableHighlightStyle
	t.SetStyles(styles)

	return &ResultsModel{table: t}
}

// SetPlan fills the table from the plan's projections, keeping the cursor
func (m *ResultsModel) SetPlan(plan PlanView) {
	m.retirementAge = plan.Inputs.RetirementAge
	m.rows = len(plan.Results.Projections)
	cursor := m.table.Cursor()
	m.table.SetRows(projectionRows(plan.Results.Projections, plan.Inputs.RetirementAge))
	if cursor >= m.rows {
		cursor = m.rows - 1
	}
	if cursor >= 0 {
		m.table.SetCursor(cursor)
	}
}

func projectionRows(projections []domain.YearlyProjection, retirementAge int) []table.Row {
	rows := make([]table.Row, len(projections))
	for i, p := range projections {
		phase := "working"
		if p.IsRetired(retirementAge) {
			phase = "retired"
		}
		if p.Balance.IsZero() && p.IsRetired(retirementAge) {
			phase = "depleted"
		}
		rows[i] = table.Row{
			strconv.Itoa(p.Age),
			phase,
			tuistyles.FormatCurrency(p.Balance),
			tuistyles.FormatCurrency(p.Contribution),
			tuistyles.FormatCurrency(p.Withdrawal),
			tuistyles.FormatCurrency(p.Interest),
			tuistyles.FormatCurrency(p.InflationAdjustedBalance),
		}
	}
	return rows
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if h := height - 4; h > 3 {
		m.table.SetHeight(h)
	}
}

// Rows returns the number of projection rows shown
func (m *ResultsModel) Rows() int {
	return m.rows
}

// Update forwards scrolling keys to the table
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the projection table
func (m *ResultsModel) View() string {
	if m.rows == 0 {
		return tuistyles.InfoStyle.Render("No projection yet")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Year-by-Year Projection"),
		m.table.View(),
		tuistyles.HelpDescStyle.Render("j/k scroll • pgup/pgdn page • g/G top/bottom"),
	)
}
