package calculation

import (
	"context"
	"testing"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensitivityAnalyzer_ReturnRateSweep(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(nil)
	inputs := basicInputs()

	analysis, err := analyzer.AnalyzeSingleParameter(context.Background(), inputs, domain.ReturnRateParam)
	require.NoError(t, err)

	require.Len(t, analysis.Points, domain.ReturnRateParam.Steps)
	assertDecimal(t, "7", analysis.BaseValue)
	assertDecimal(t, "3", analysis.Points[0].Value)
	assertDecimal(t, "11", analysis.Points[len(analysis.Points)-1].Value)

	// Higher returns never leave less money at the end
	for i := 1; i < len(analysis.Points); i++ {
		assert.True(t, analysis.Points[i].FinalBalance.GreaterThanOrEqual(analysis.Points[i-1].FinalBalance),
			"final balance should not fall as return rises (%s)", analysis.Points[i].Value)
	}

	assert.NotEmpty(t, analysis.Summary.RiskLevel)
	assert.NotEmpty(t, analysis.GenerateRecommendations())
}

func TestSensitivityAnalyzer_BreakEvenValue(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(NewProjectionEngine())
	inputs := depletingInputs()

	param := domain.SensitivityParameter{
		Name:     "annual_spending",
		MinValue: decimal.NewFromInt(2000),
		MaxValue: decimal.NewFromInt(10000),
		Steps:    5,
	}

	analysis, err := analyzer.AnalyzeSingleParameter(context.Background(), inputs, param)
	require.NoError(t, err)

	// 100k over 26 retirement years with no growth lasts at 2k-4k/yr only
	require.NotNil(t, analysis.Summary.BreakEvenValue)
	assertDecimal(t, "2000", *analysis.Summary.BreakEvenValue)
	assert.True(t, analysis.Points[0].GoalReached)
	assert.False(t, analysis.Points[4].GoalReached)
}

func TestSensitivityAnalyzer_RetirementAgeSweep(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(nil)
	inputs := basicInputs()

	param := domain.SensitivityParameter{
		Name:     "retirement_age",
		MinValue: decimal.NewFromInt(60),
		MaxValue: decimal.NewFromInt(70),
		Steps:    3,
	}

	analysis, err := analyzer.AnalyzeSingleParameter(context.Background(), inputs, param)
	require.NoError(t, err)
	require.Len(t, analysis.Points, 3)
	assertDecimal(t, "65", analysis.Points[1].Value)
}

func TestSensitivityAnalyzer_Errors(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(nil)
	inputs := basicInputs()

	_, err := analyzer.AnalyzeSingleParameter(context.Background(), inputs, domain.SensitivityParameter{Name: "tsp_return", Steps: 3})
	assert.Error(t, err)

	inverted := domain.ReturnRateParam
	inverted.MinValue, inverted.MaxValue = inverted.MaxValue, inverted.MinValue
	_, err = analyzer.AnalyzeSingleParameter(context.Background(), inputs, inverted)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = analyzer.AnalyzeSingleParameter(ctx, inputs, domain.ReturnRateParam)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSensitivityAnalyzer_SingleStep(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(nil)
	values := analyzer.generateParameterValues(domain.SensitivityParameter{
		MinValue: decimal.NewFromInt(4),
		MaxValue: decimal.NewFromInt(9),
		Steps:    1,
	})
	require.Len(t, values, 1)
	assertDecimal(t, "4", values[0])
}
