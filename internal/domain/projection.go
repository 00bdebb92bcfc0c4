package domain

import (
	"github.com/shopspring/decimal"
)

// YearlyProjection is the simulated state at the end of one age year
type YearlyProjection struct {
	Age                      int             `json:"age"`
	Balance                  decimal.Decimal `json:"balance"` // floored at zero
	Contribution             decimal.Decimal `json:"contribution"`
	Withdrawal               decimal.Decimal `json:"withdrawal"`
	Interest                 decimal.Decimal `json:"interest"`
	InflationAdjustedBalance decimal.Decimal `json:"inflationAdjustedBalance"` // today's dollars
}

// IsRetired reports whether the row belongs to the withdrawal phase of inputs.
func (yp YearlyProjection) IsRetired(retirementAge int) bool {
	return yp.Age >= retirementAge
}

// Summary aggregates a projection into the headline metrics
type Summary struct {
	RetirementGoalReached bool            `json:"retirementGoalReached"`
	AgeMoneyRunsOut       *int            `json:"ageMoneyRunsOut"`
	FinalBalance          decimal.Decimal `json:"finalBalance"`
	TotalContributions    decimal.Decimal `json:"totalContributions"`
	TotalWithdrawals      decimal.Decimal `json:"totalWithdrawals"`
	SafeWithdrawalRate    decimal.Decimal `json:"safeWithdrawalRate"`
	SuccessProbability    decimal.Decimal `json:"successProbability"`
}

// Results is the output of a single projection run
type Results struct {
	Projections []YearlyProjection `json:"projections"`
	Summary     Summary            `json:"summary"`
}

// ProjectionAt returns the row for age.
func (r Results) ProjectionAt(age int) (YearlyProjection, bool) {
	for _, p := range r.Projections {
		if p.Age == age {
			return p, true
		}
	}
	return YearlyProjection{}, false
}

// MoneyLasts reports whether the balance never hit zero during the projection.
func (r Results) MoneyLasts() bool {
	return r.Summary.AgeMoneyRunsOut == nil
}

// PeakBalance returns the largest year-end balance and the age it occurred at.
func (r Results) PeakBalance() (decimal.Decimal, int) {
	peak := decimal.Zero
	age := 0
	for _, p := range r.Projections {
		if p.Balance.GreaterThan(peak) {
			peak = p.Balance
			age = p.Age
		}
	}
	return peak, age
}

// CoastResult describes progress toward Coast FIRE
type CoastResult struct {
	FireNumber     decimal.Decimal `json:"fireNumber"`
	CoastNumber    decimal.Decimal `json:"coastNumber"`
	CurrentSavings decimal.Decimal `json:"currentSavings"`
	Gap            decimal.Decimal `json:"gap"` // negative once coasting
	IsCoasting     bool            `json:"isCoasting"`
	PercentToCoast decimal.Decimal `json:"percentToCoast"`
}

// StopAgeResult is the outcome of the earliest contribution-stop search
type StopAgeResult struct {
	Found        bool    `json:"found"`
	StopAge      int     `json:"stopAge,omitempty"`
	Hypothetical *Inputs `json:"hypothetical,omitempty"`
}

// StressScenarios holds the three fixed stress runs
type StressScenarios struct {
	WorstCase Results `json:"worstCase"`
	BaseCase  Results `json:"baseCase"`
	BestCase  Results `json:"bestCase"`
}

// Named returns the scenarios in worst, base, best order with display names.
func (s StressScenarios) Named() []NamedResults {
	return []NamedResults{
		{Name: "Worst Case", Results: s.WorstCase},
		{Name: "Base Case", Results: s.BaseCase},
		{Name: "Best Case", Results: s.BestCase},
	}
}

// NamedResults pairs a projection with a display name
type NamedResults struct {
	Name    string  `json:"name"`
	Results Results `json:"results"`
}
