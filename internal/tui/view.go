package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

const parameterPanelWidth = 44

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil && !m.loaded {
		return m.renderError()
	}
	if !m.loaded {
		return tuistyles.AppStyle.Render(m.spinner.View() + " Loading plan...")
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneCoast:
		content = m.coastModel.View()
	case SceneScenarios:
		content = m.scenariosModel.View()
	case SceneCompare:
		content = m.compareModel.View(m.spinner.View())
	case SceneOptimize:
		content = m.optimizeModel.View(m.spinner.View())
	default:
		content = "Unknown view"
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(parameterPanelWidth).Render(m.parametersModel.View()),
		"  ",
		content,
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.renderTabs(),
		"",
		body,
		"",
		m.renderStatusBar(),
	)
}

func (m Model) renderTitle() string {
	title := tuistyles.TitleStyle.Render("nestegg · Retirement Planner")
	if m.planPath != "" {
		title += " " + tuistyles.SubtitleStyle.Render(m.planPath)
	}
	if m.conservative {
		title += " " + tuistyles.ConservativeBadgeStyle.Render("CONSERVATIVE")
	}
	return title
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(sceneOrder))
	for i, s := range sceneOrder {
		label := fmt.Sprintf("%d %s", i+1, s)
		if s == m.currentScene {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = inactiveTabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderStatusBar() string {
	var b strings.Builder
	if m.status != "" {
		b.WriteString(statusMessageStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderError() string {
	return tuistyles.AppStyle.Render(
		tuistyles.ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" +
			tuistyles.HelpDescStyle.Render("press q to quit"),
	)
}
