package scenes

import (
	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
)

// PlanView is the computed state every scene renders from. Revision increases
// each time the plan changes so async results for stale plans can be dropped.
type PlanView struct {
	Revision     int
	Conservative bool
	Inputs       domain.Inputs // effective inputs, after the conservative set when enabled
	Results      domain.Results
	Coast        domain.CoastResult
	StopAge      domain.StopAgeResult
	Stress       domain.StressScenarios
}

// ComputePlan runs every analysis the dashboard shows for base
func ComputePlan(engine *calculation.ProjectionEngine, base domain.Inputs, conservative bool, revision int) PlanView {
	inputs := base
	if conservative {
		inputs = engine.ApplyConservativeAdjustment(base)
	}

	return PlanView{
		Revision:     revision,
		Conservative: conservative,
		Inputs:       inputs,
		Results:      engine.Project(inputs),
		Coast:        engine.CoastStatus(inputs),
		StopAge:      engine.FindStopAge(inputs),
		Stress:       engine.StressScenarios(inputs),
	}
}
