package calculation

import (
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// EarliestStopAge finds the earliest age at which contributions can stop and
// the plan still reaches its goal. Candidates run from CurrentAge through
// RetirementAge inclusive; the second return is false when none works.
func (pe *ProjectionEngine) EarliestStopAge(inputs domain.Inputs) (int, bool) {
	result := pe.FindStopAge(inputs)
	return result.StopAge, result.Found
}

// FindStopAge is EarliestStopAge returning the hypothetical inputs that succeeded.
func (pe *ProjectionEngine) FindStopAge(inputs domain.Inputs) domain.StopAgeResult {
	log := pe.logger()

	growth := growthFactor(inputs.RateOfReturn)
	projected := inputs.CurrentSavings

	for stopAge := inputs.CurrentAge; stopAge <= inputs.RetirementAge; stopAge++ {
		// projected holds the balance after contributing every year before stopAge
		hypothetical := stopAgeInputs(inputs, stopAge, projected)
		results := pe.Project(hypothetical)

		log.Debugf("stop-age: candidate %d balance=%s goal reached=%t",
			stopAge, projected.StringFixed(2), results.Summary.RetirementGoalReached)

		if results.Summary.RetirementGoalReached {
			return domain.StopAgeResult{
				Found:        true,
				StopAge:      stopAge,
				Hypothetical: &hypothetical,
			}
		}

		projected = projected.Add(inputs.AnnualContribution).Mul(growth)
	}

	log.Debugf("stop-age: no candidate between %d and %d reaches the goal", inputs.CurrentAge, inputs.RetirementAge)
	return domain.StopAgeResult{}
}

// StopAgeHypothetical returns the inputs the search evaluates for stopAge:
// the plan restarted at stopAge with the balance grown from full contributions
// until then and no further contributions.
func StopAgeHypothetical(inputs domain.Inputs, stopAge int) domain.Inputs {
	growth := growthFactor(inputs.RateOfReturn)
	projected := inputs.CurrentSavings
	for age := inputs.CurrentAge; age < stopAge; age++ {
		projected = projected.Add(inputs.AnnualContribution).Mul(growth)
	}
	return stopAgeInputs(inputs, stopAge, projected)
}

func stopAgeInputs(inputs domain.Inputs, stopAge int, balance decimal.Decimal) domain.Inputs {
	hypothetical := inputs.Clone()
	hypothetical.CurrentAge = stopAge
	hypothetical.CurrentSavings = balance
	hypothetical.AnnualContribution = decimalZero
	return hypothetical
}
