// Package tui is the interactive retirement dashboard: an editable list of plan
// inputs beside a set of views that recompute on every change.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/nestegg/internal/breakeven"
	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/compare"
	"github.com/rgehrsitz/nestegg/internal/config"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/tui/scenes"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

// DefaultSavePath is where ctrl+s writes when no plan file was given
const DefaultSavePath = "nestegg-plan.yaml"

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene Scene

	// Terminal dimensions
	width  int
	height int

	// Plan
	planPath     string
	loaded       bool
	base         domain.Inputs
	conservative bool
	revision     int
	plan         scenes.PlanView

	engine *calculation.ProjectionEngine

	keys     keyMap
	help     help.Model
	showHelp bool
	spinner  spinner.Model

	parametersModel *scenes.ParametersModel
	homeModel       *scenes.HomeModel
	resultsModel    *scenes.ResultsModel
	coastModel      *scenes.CoastModel
	scenariosModel  *scenes.ScenariosModel
	compareModel    *scenes.CompareModel
	optimizeModel   *scenes.OptimizeModel

	status string
	err    error
}

// NewModel creates a dashboard for the plan at planPath. An empty path starts
// from the example plan.
func NewModel(planPath string) Model {
	return NewModelWithEngine(planPath, nil)
}

// NewModelWithEngine is NewModel with a caller-supplied engine, e.g. one with debug logging
func NewModelWithEngine(planPath string, engine *calculation.ProjectionEngine) Model {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tuistyles.SelectedItemStyle

	return Model{
		currentScene:    SceneHome,
		planPath:        planPath,
		engine:          engine,
		keys:            defaultKeyMap(),
		help:            help.New(),
		spinner:         sp,
		parametersModel: scenes.NewParametersModel(),
		homeModel:       scenes.NewHomeModel(),
		resultsModel:    scenes.NewResultsModel(),
		coastModel:      scenes.NewCoastModel(),
		scenariosModel:  scenes.NewScenariosModel(),
		compareModel:    scenes.NewCompareModel(compare.NewCompareEngine(engine)),
		optimizeModel:   scenes.NewOptimizeModel(breakeven.NewDefaultSolver(engine)),
		width:           100,
		height:          30,
	}
}

// WithInputs returns the model with inputs already loaded, skipping the file read
func (m Model) WithInputs(inputs domain.Inputs) Model {
	m.loaded = true
	m.base = inputs.Clone()
	m.parametersModel.SetInputs(inputs)
	m.recompute()
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.loaded {
		return nil
	}
	return loadPlanCmd(m.planPath)
}

// loadPlanCmd reads and validates the plan file, or returns the example plan for an empty path
func loadPlanCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return PlanLoadedMsg{Inputs: config.ExampleInputs()}
		}

		plan, err := config.NewInputParser().LoadPlan(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return PlanLoadedMsg{Inputs: plan.Inputs, Path: path, Conservative: plan.Conservative()}
	}
}

// savePlanCmd writes the edited plan in the format implied by path
func savePlanCmd(inputs domain.Inputs, path string) tea.Cmd {
	return func() tea.Msg {
		err := config.NewInputParser().SaveToFile(inputs, path)
		return SaveCompleteMsg{Filename: path, Err: err}
	}
}

// recompute rebuilds every view from the current base inputs and mode
func (m *Model) recompute() {
	m.revision++
	m.plan = scenes.ComputePlan(m.engine, m.base, m.conservative, m.revision)

	m.homeModel.SetPlan(m.plan)
	m.resultsModel.SetPlan(m.plan)
	m.coastModel.SetPlan(m.plan)
	m.scenariosModel.SetPlan(m.plan)
}

// requestAsync starts the comparison or break-even solve when its view is showing
func (m *Model) requestAsync() tea.Cmd {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneCompare:
		cmd = m.compareModel.Request(m.plan)
	case SceneOptimize:
		cmd = m.optimizeModel.Request(m.plan)
	}
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m Model) asyncRunning() bool {
	return m.compareModel.Running() || m.optimizeModel.Running()
}

// Plan returns the currently displayed plan
func (m Model) Plan() scenes.PlanView {
	return m.plan
}

// CurrentScene returns the active view
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

func (m *Model) resize() {
	contentWidth := m.width - parameterPanelWidth - 4
	if contentWidth < 40 {
		contentWidth = 40
	}
	contentHeight := m.height - 5

	m.parametersModel.SetSize(parameterPanelWidth, contentHeight)
	m.homeModel.SetSize(contentWidth, contentHeight)
	m.resultsModel.SetSize(contentWidth, contentHeight)
	m.coastModel.SetSize(contentWidth, contentHeight)
	m.scenariosModel.SetSize(contentWidth, contentHeight)
	m.compareModel.SetSize(contentWidth, contentHeight)
	m.optimizeModel.SetSize(contentWidth, contentHeight)
	m.help.Width = m.width
}
