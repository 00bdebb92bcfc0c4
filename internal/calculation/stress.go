package calculation

import (
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/transform"
)

// ApplyConservativeAdjustment returns inputs with the conservative assumption
// set: 5% return, 3.5% inflation, 10% more spending, and a planning horizon of
// at least age 95. Other fields pass through unchanged.
func (pe *ProjectionEngine) ApplyConservativeAdjustment(inputs domain.Inputs) domain.Inputs {
	return transform.MustApply(inputs, transform.ConservativeTransforms())
}

// StressScenarios runs three independent projections: a worst case (4% return,
// 5% inflation, plan to 95, 10% more spending), the unmodified base case, and a
// best case (10% return, 2% inflation).
func (pe *ProjectionEngine) StressScenarios(inputs domain.Inputs) domain.StressScenarios {
	worst := transform.MustApply(inputs, transform.WorstCaseTransforms())
	best := transform.MustApply(inputs, transform.BestCaseTransforms())

	scenarios := domain.StressScenarios{
		WorstCase: pe.Project(worst),
		BaseCase:  pe.Project(inputs),
		BestCase:  pe.Project(best),
	}

	pe.logger().Debugf("stress: final balances worst=%s base=%s best=%s",
		scenarios.WorstCase.Summary.FinalBalance.StringFixed(0),
		scenarios.BaseCase.Summary.FinalBalance.StringFixed(0),
		scenarios.BestCase.Summary.FinalBalance.StringFixed(0))
	return scenarios
}
