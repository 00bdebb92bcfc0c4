package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter represents a parameter to sweep in sensitivity analysis
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	Unit        string          `yaml:"unit" json:"unit"` // "percent", "dollars", "years"
	Description string          `yaml:"description" json:"description"`
}

// SensitivityPoint is the projection outcome at one parameter value
type SensitivityPoint struct {
	Value              decimal.Decimal `json:"value"`
	FinalBalance       decimal.Decimal `json:"finalBalance"`
	GoalReached        bool            `json:"goalReached"`
	AgeMoneyRunsOut    *int            `json:"ageMoneyRunsOut"`
	SuccessProbability decimal.Decimal `json:"successProbability"`
	SafeWithdrawalRate decimal.Decimal `json:"safeWithdrawalRate"`
}

// SensitivityAnalysis is a single-parameter sweep
type SensitivityAnalysis struct {
	Parameter SensitivityParameter `json:"parameter"`
	BaseValue decimal.Decimal      `json:"baseValue"`
	Points    []SensitivityPoint   `json:"points"`
	Summary   SensitivitySummary   `json:"summary"`
}

// SensitivitySummary provides overall analysis summary
type SensitivitySummary struct {
	// Smallest swept value at which the goal is reached, nil when none
	BreakEvenValue *decimal.Decimal `json:"breakEvenValue"`
	// Final balance spread across the sweep as a percent of the base-case balance
	SpreadPercent decimal.Decimal `json:"spreadPercent"`
	RiskLevel     string          `json:"riskLevel"` // "LOW", "MEDIUM", "HIGH", "CRITICAL"
}

// Common sensitivity parameters
var (
	ReturnRateParam = SensitivityParameter{
		Name:        "return_rate",
		MinValue:    decimal.NewFromInt(3),
		MaxValue:    decimal.NewFromInt(11),
		Steps:       9,
		Unit:        "percent",
		Description: "Annual rate of return",
	}

	InflationRateParam = SensitivityParameter{
		Name:        "inflation_rate",
		MinValue:    decimal.NewFromInt(1),
		MaxValue:    decimal.NewFromInt(6),
		Steps:       6,
		Unit:        "percent",
		Description: "Annual inflation rate",
	}

	AnnualSpendingParam = SensitivityParameter{
		Name:        "annual_spending",
		MinValue:    decimal.NewFromInt(30000),
		MaxValue:    decimal.NewFromInt(80000),
		Steps:       6,
		Unit:        "dollars",
		Description: "Annual spending in retirement (today's dollars)",
	}

	RetirementAgeParam = SensitivityParameter{
		Name:        "retirement_age",
		MinValue:    decimal.NewFromInt(55),
		MaxValue:    decimal.NewFromInt(70),
		Steps:       16,
		Unit:        "years",
		Description: "Age at which contributions stop and withdrawals begin",
	}
)

// GetCommonParameters returns a list of common sensitivity parameters
func GetCommonParameters() []SensitivityParameter {
	return []SensitivityParameter{
		ReturnRateParam,
		InflationRateParam,
		AnnualSpendingParam,
		RetirementAgeParam,
	}
}

// LookupParameter returns the common parameter with the given name.
func LookupParameter(name string) (SensitivityParameter, bool) {
	for _, p := range GetCommonParameters() {
		if p.Name == name {
			return p, true
		}
	}
	return SensitivityParameter{}, false
}

// DetermineRiskLevel determines the risk level based on the balance spread
func (ss *SensitivitySummary) DetermineRiskLevel() string {
	switch {
	case ss.SpreadPercent.LessThan(decimal.NewFromInt(25)):
		return "LOW"
	case ss.SpreadPercent.LessThan(decimal.NewFromInt(75)):
		return "MEDIUM"
	case ss.SpreadPercent.LessThan(decimal.NewFromInt(150)):
		return "HIGH"
	default:
		return "CRITICAL"
	}
}

// GenerateRecommendations generates recommendations based on sensitivity analysis
func (sa *SensitivityAnalysis) GenerateRecommendations() []string {
	recommendations := []string{}

	switch sa.Summary.RiskLevel {
	case "LOW":
		recommendations = append(recommendations, "Plan is robust to changes in "+sa.Parameter.Description)
	case "MEDIUM":
		recommendations = append(recommendations, "Monitor "+sa.Parameter.Description+" regularly")
	case "HIGH", "CRITICAL":
		recommendations = append(recommendations, "Plan is sensitive to "+sa.Parameter.Description)
		recommendations = append(recommendations, "Consider stress testing with conservative assumptions")
	}

	if sa.Summary.BreakEvenValue == nil {
		recommendations = append(recommendations, "No value in the swept range reaches the retirement goal")
	}

	switch sa.Parameter.Name {
	case "inflation_rate":
		recommendations = append(recommendations, "Consider inflation-protected investments")
	case "return_rate":
		recommendations = append(recommendations, "Review asset allocation against the assumed return")
	case "annual_spending":
		recommendations = append(recommendations, "Budget flexibility in retirement directly extends portfolio life")
	}

	return recommendations
}
