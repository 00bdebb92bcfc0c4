package compare

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string         `json:"scenarioName"`
	Description  string         `json:"description,omitempty"`
	Inputs       domain.Inputs  `json:"inputs"`
	Summary      domain.Summary `json:"summary"`

	// Key Metrics
	FinalBalance       decimal.Decimal `json:"finalBalance"`
	PeakBalance        decimal.Decimal `json:"peakBalance"`
	MoneyLasts         bool            `json:"moneyLasts"`
	AgeMoneyRunsOut    *int            `json:"ageMoneyRunsOut,omitempty"`
	LastFundedAge      int             `json:"lastFundedAge"` // depletion age, or life expectancy when the money lasts
	SafeWithdrawalRate decimal.Decimal `json:"safeWithdrawalRate"`
	SuccessProbability decimal.Decimal `json:"successProbability"`

	// Comparison to Base
	BalanceDiffFromBase decimal.Decimal `json:"balanceDiffFromBase"`
	BalancePctFromBase  decimal.Decimal `json:"balancePctFromBase"`
	LongevityDiff       int             `json:"longevityDiff"`
	SuccessDiffFromBase decimal.Decimal `json:"successDiffFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// MetricsCalculator extracts key metrics from projection results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for one projected scenario
func (mc *MetricsCalculator) CalculateMetrics(name string, inputs domain.Inputs, results domain.Results) ComparisonResult {
	peak, _ := results.PeakBalance()
	summary := results.Summary

	result := ComparisonResult{
		ScenarioName:       name,
		Inputs:             inputs,
		Summary:            summary,
		FinalBalance:       summary.FinalBalance,
		PeakBalance:        peak,
		MoneyLasts:         results.MoneyLasts(),
		AgeMoneyRunsOut:    summary.AgeMoneyRunsOut,
		LastFundedAge:      inputs.LifeExpectancy,
		SafeWithdrawalRate: summary.SafeWithdrawalRate,
		SuccessProbability: summary.SuccessProbability,
	}
	if summary.AgeMoneyRunsOut != nil {
		result.LastFundedAge = *summary.AgeMoneyRunsOut
	}

	return result
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.BalanceDiffFromBase = scenario.FinalBalance.Sub(base.FinalBalance)

	if !base.FinalBalance.IsZero() {
		scenario.BalancePctFromBase = scenario.BalanceDiffFromBase.
			Div(base.FinalBalance).
			Mul(decimal.NewFromInt(100))
	}

	scenario.LongevityDiff = scenario.LastFundedAge - base.LastFundedAge
	scenario.SuccessDiffFromBase = scenario.SuccessProbability.Sub(base.SuccessProbability)

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Find best scenario by final balance
	best := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FinalBalance.GreaterThan(best.FinalBalance) {
			best = alt
		}
	}

	if best != base {
		diff := best.FinalBalance.Sub(base.FinalBalance)
		recommendations = append(recommendations,
			"Best Balance: "+best.ScenarioName+" ends with $"+diff.StringFixed(0)+
				" more than the base plan")
	}

	// Find longest-lasting scenario among those that deplete
	if !base.MoneyLasts {
		longest := base
		for i := range compSet.AlternativeResults {
			alt := &compSet.AlternativeResults[i]
			if alt.LastFundedAge > longest.LastFundedAge {
				longest = alt
			}
		}

		if longest != base {
			recommendations = append(recommendations,
				"Best Longevity: "+longest.ScenarioName+" keeps the plan funded "+
					fmt.Sprintf("%d years longer", longest.LastFundedAge-base.LastFundedAge))
		}
	}

	// Scenarios that rescue a failing plan
	if !base.Summary.RetirementGoalReached {
		for _, alt := range compSet.AlternativeResults {
			if alt.Summary.RetirementGoalReached {
				recommendations = append(recommendations,
					"Reaches Goal: "+alt.ScenarioName+" funds retirement through life expectancy")
			}
		}
	}

	// Scenarios that break a working plan
	if base.Summary.RetirementGoalReached {
		for _, alt := range compSet.AlternativeResults {
			if !alt.Summary.RetirementGoalReached {
				recommendations = append(recommendations,
					fmt.Sprintf("At Risk: under %s the money runs out at age %d", alt.ScenarioName, alt.LastFundedAge))
			}
		}
	}

	return recommendations
}
