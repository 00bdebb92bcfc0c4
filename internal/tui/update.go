package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case NavigateMsg:
		m.currentScene = msg.Scene
		return m, m.requestAsync()

	case ErrorMsg:
		if m.loaded {
			m.status = msg.Err.Error()
		} else {
			m.err = msg.Err
		}
		return m, nil

	case PlanLoadedMsg:
		m.loaded = true
		m.err = nil
		m.base = msg.Inputs.Clone()
		if msg.Path != "" {
			m.planPath = msg.Path
		}
		if msg.Conservative {
			m.conservative = true
		}
		m.parametersModel.SetInputs(msg.Inputs)
		m.recompute()
		return m, m.requestAsync()

	case InputsChangedMsg:
		m.base = msg.Inputs.Clone()
		m.status = ""
		m.recompute()
		return m, m.requestAsync()

	case InputsRejectedMsg:
		m.status = msg.Err.Error()
		return m, nil

	case SaveCompleteMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("save failed: %v", msg.Err)
		} else {
			m.status = "saved " + msg.Filename
		}
		return m, nil

	case ComparisonCompleteMsg:
		m.compareModel.SetResult(msg)
		return m, nil

	case OptimizationCompleteMsg:
		m.optimizeModel.SetResult(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.asyncRunning() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKeyPress processes dashboard keys first and passes the rest to the
// parameter list and the active view
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}

	// Until a plan is loaded only quit and help do anything
	if !m.loaded {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextView):
		return m.switchScene(m.sceneOffset(1))

	case key.Matches(msg, m.keys.PrevView):
		return m.switchScene(m.sceneOffset(-1))

	case key.Matches(msg, m.keys.JumpView):
		idx := int(msg.Runes[0] - '1')
		if idx >= 0 && idx < len(sceneOrder) {
			return m.switchScene(sceneOrder[idx])
		}
		return m, nil

	case key.Matches(msg, m.keys.Conservative):
		m.conservative = !m.conservative
		if m.conservative {
			m.status = "conservative mode on"
		} else {
			m.status = "conservative mode off"
		}
		m.recompute()
		return m, m.requestAsync()

	case key.Matches(msg, m.keys.Save):
		path := m.planPath
		if path == "" {
			path = DefaultSavePath
		}
		return m, savePlanCmd(m.parametersModel.Inputs(), path)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.parametersModel, cmd = m.parametersModel.Update(msg)
	cmds = append(cmds, cmd)

	switch m.currentScene {
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
		cmds = append(cmds, cmd)
	case SceneScenarios:
		m.scenariosModel, cmd = m.scenariosModel.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) switchScene(s Scene) (tea.Model, tea.Cmd) {
	m.currentScene = s
	return m, m.requestAsync()
}

// sceneOffset returns the scene delta tabs away from the current one, wrapping
func (m Model) sceneOffset(delta int) Scene {
	n := len(sceneOrder)
	idx := 0
	for i, s := range sceneOrder {
		if s == m.currentScene {
			idx = i
			break
		}
	}
	return sceneOrder[((idx+delta)%n+n)%n]
}
