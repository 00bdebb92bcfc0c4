package calculation

import (
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// SafeWithdrawalRule is the 4% rule used to size the FIRE number.
var SafeWithdrawalRule = decimal.NewFromFloat(0.04)

// CoastStatus reports whether current savings, left to grow with no further
// contributions until RetirementAge, would reach the FIRE number.
func (pe *ProjectionEngine) CoastStatus(inputs domain.Inputs) domain.CoastResult {
	fireNumber := inputs.AnnualSpending.Div(SafeWithdrawalRule)

	coastNumber := decimalZero
	if growth := compound(inputs.RateOfReturn, inputs.YearsToRetirement()); !growth.IsZero() {
		coastNumber = fireNumber.Div(growth)
	}

	// A zero coast number (no spending) is trivially reached
	percentToCoast := decimalHundred
	if !coastNumber.IsZero() {
		percentToCoast = inputs.CurrentSavings.Div(coastNumber).Mul(decimalHundred)
	}

	result := domain.CoastResult{
		FireNumber:     fireNumber,
		CoastNumber:    coastNumber,
		CurrentSavings: inputs.CurrentSavings,
		Gap:            coastNumber.Sub(inputs.CurrentSavings),
		IsCoasting:     inputs.CurrentSavings.GreaterThanOrEqual(coastNumber),
		PercentToCoast: percentToCoast,
	}

	pe.logger().Debugf("coast: fire=%s coast=%s coasting=%t",
		fireNumber.StringFixed(2), coastNumber.StringFixed(2), result.IsCoasting)
	return result
}
