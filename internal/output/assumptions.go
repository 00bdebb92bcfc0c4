package output

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// PlanAssumptions lists the modeling assumptions rendered in detailed outputs.
func PlanAssumptions(inputs domain.Inputs) []string {
	assumptions := []string{
		fmt.Sprintf("Investment return: %s annually, compounded once per year", FormatPercent(inputs.RateOfReturn)),
		fmt.Sprintf("Inflation: %s annually, applied to spending from today", FormatPercent(inputs.InflationRate)),
		"Contributions are flat in nominal dollars and stop at retirement age",
		"Withdrawals begin at retirement age and cover spending net of other income; growth is applied after each year's flows",
	}
	if inputs.SocialSecurityIncome != nil || inputs.PensionIncome != nil {
		assumptions = append(assumptions, "Social Security and pension income start at retirement and stay flat in nominal dollars")
	}
	if len(inputs.OneTimeCashflows) > 0 {
		assumptions = append(assumptions, "One-time cashflows are applied in nominal dollars in the year they occur")
	}
	assumptions = append(assumptions,
		"Success probability is a heuristic based on years funded, not a market simulation",
		"Taxes and fees are not modeled")
	return assumptions
}
