package tui

import (
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/tui/tuimsg"
)

// Scene represents the views on the right of the dashboard
type Scene int

const (
	SceneHome Scene = iota
	SceneResults
	SceneCoast
	SceneScenarios
	SceneCompare
	SceneOptimize
)

// sceneOrder lists every view in tab order
var sceneOrder = []Scene{SceneHome, SceneResults, SceneCoast, SceneScenarios, SceneCompare, SceneOptimize}

// String returns the tab title for a scene
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Summary"
	case SceneResults:
		return "Projection"
	case SceneCoast:
		return "Coast"
	case SceneScenarios:
		return "Stress"
	case SceneCompare:
		return "Compare"
	case SceneOptimize:
		return "Break-Even"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// PlanLoadedMsg carries the plan read at startup,
// with Conservative set when the plan file asks for the conservative preset.
type PlanLoadedMsg struct {
	Inputs       domain.Inputs
	Path         string
	Conservative bool
}

// Scene messages are re-exported so callers of this package need only one import
type (
	ErrorMsg                = tuimsg.ErrorMsg
	InputsChangedMsg        = tuimsg.InputsChangedMsg
	InputsRejectedMsg       = tuimsg.InputsRejectedMsg
	ComparisonCompleteMsg   = tuimsg.ComparisonCompleteMsg
	OptimizationCompleteMsg = tuimsg.OptimizationCompleteMsg
	SaveCompleteMsg         = tuimsg.SaveCompleteMsg
)
