package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	engine *ProjectionEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer(engine *ProjectionEngine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewProjectionEngine()
	}
	return &SensitivityAnalyzer{engine: engine}
}

// AnalyzeSingleParameter sweeps one parameter across its range and projects the
// plan at each value.
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(
	ctx context.Context,
	inputs domain.Inputs,
	parameter domain.SensitivityParameter,
) (*domain.SensitivityAnalysis, error) {
	baseValue, err := parameterValue(inputs, parameter.Name)
	if err != nil {
		return nil, err
	}

	if parameter.MinValue.GreaterThan(parameter.MaxValue) {
		return nil, fmt.Errorf("parameter %s: min %s is greater than max %s",
			parameter.Name, parameter.MinValue, parameter.MaxValue)
	}

	values := sa.generateParameterValues(parameter)
	points := make([]domain.SensitivityPoint, 0, len(values))

	for _, value := range values {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		modified, err := withParameter(inputs, parameter.Name, value)
		if err != nil {
			return nil, err
		}

		results := sa.engine.Project(modified)
		points = append(points, domain.SensitivityPoint{
			Value:              value,
			FinalBalance:       results.Summary.FinalBalance,
			GoalReached:        results.Summary.RetirementGoalReached,
			AgeMoneyRunsOut:    results.Summary.AgeMoneyRunsOut,
			SuccessProbability: results.Summary.SuccessProbability,
			SafeWithdrawalRate: results.Summary.SafeWithdrawalRate,
		})
	}

	baseResults := sa.engine.Project(inputs)

	analysis := &domain.SensitivityAnalysis{
		Parameter: parameter,
		BaseValue: baseValue,
		Points:    points,
		Summary:   sa.calculateSensitivitySummary(points, parameter, baseResults.Summary.FinalBalance),
	}

	sa.engine.logger().Infof("sensitivity: %s swept over %d values, risk %s",
		parameter.Name, len(points), analysis.Summary.RiskLevel)

	return analysis, nil
}

// generateParameterValues generates values for a parameter sweep
func (sa *SensitivityAnalyzer) generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.MinValue}
	}

	values := make([]decimal.Decimal, 0, param.Steps)
	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))

	for i := 0; i < param.Steps; i++ {
		values = append(values, param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}

	return values
}

// calculateSensitivitySummary finds the break-even value and the balance spread
func (sa *SensitivityAnalyzer) calculateSensitivitySummary(points []domain.SensitivityPoint, parameter domain.SensitivityParameter, baseBalance decimal.Decimal) domain.SensitivitySummary {
	summary := domain.SensitivitySummary{}
	if len(points) == 0 {
		return summary
	}

	minBalance := points[0].FinalBalance
	maxBalance := points[0].FinalBalance
	for i := range points {
		p := points[i]
		if p.GoalReached && summary.BreakEvenValue == nil {
			v := p.Value
			summary.BreakEvenValue = &v
		}
		minBalance = minDecimal(minBalance, p.FinalBalance)
		maxBalance = maxDecimal(maxBalance, p.FinalBalance)
	}

	switch {
	case baseBalance.IsPositive():
		summary.SpreadPercent = maxBalance.Sub(minBalance).Div(baseBalance).Mul(decimalHundred)
	case maxBalance.IsPositive():
		// The base plan depletes while some swept value does not
		summary.SpreadPercent = decimal.NewFromInt(1000)
	}

	summary.RiskLevel = summary.DetermineRiskLevel()
	return summary
}

func parameterValue(inputs domain.Inputs, name string) (decimal.Decimal, error) {
	switch name {
	case "return_rate":
		return inputs.RateOfReturn, nil
	case "inflation_rate":
		return inputs.InflationRate, nil
	case "annual_spending":
		return inputs.AnnualSpending, nil
	case "retirement_age":
		return decimal.NewFromInt(int64(inputs.RetirementAge)), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown sensitivity parameter: %s", name)
	}
}

// withParameter returns a copy of inputs with the named parameter replaced
func withParameter(inputs domain.Inputs, name string, value decimal.Decimal) (domain.Inputs, error) {
	modified := inputs.Clone()

	switch name {
	case "return_rate":
		modified.RateOfReturn = value
	case "inflation_rate":
		modified.InflationRate = value
	case "annual_spending":
		modified.AnnualSpending = value
	case "retirement_age":
		modified.RetirementAge = int(value.Round(0).IntPart())
	default:
		return inputs, fmt.Errorf("unknown sensitivity parameter: %s", name)
	}

	return modified, nil
}
