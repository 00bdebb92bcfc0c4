package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEarliestStopAge_FindsAge(t *testing.T) {
	inputs := basicInputs()
	inputs.CurrentSavings = decimal.NewFromInt(100000)
	inputs.AnnualContribution = decimal.NewFromInt(20000)
	inputs.AnnualSpending = decimal.NewFromInt(50000)

	stopAge, ok := EarliestStopAge(inputs)

	require.True(t, ok)
	assert.GreaterOrEqual(t, stopAge, inputs.CurrentAge)
	assert.Less(t, stopAge, inputs.RetirementAge)

	// The returned age works and the one before it does not
	assert.True(t, Project(StopAgeHypothetical(inputs, stopAge)).Summary.RetirementGoalReached)
	if stopAge > inputs.CurrentAge {
		assert.False(t, Project(StopAgeHypothetical(inputs, stopAge-1)).Summary.RetirementGoalReached)
	}
}

func TestEarliestStopAge_NoneWorks(t *testing.T) {
	inputs := basicInputs()
	inputs.CurrentSavings = decimal.NewFromInt(10000)
	inputs.AnnualContribution = decimal.NewFromInt(5000)
	inputs.RateOfReturn = decimal.NewFromInt(3)
	inputs.AnnualSpending = decimal.NewFromInt(80000)

	_, ok := EarliestStopAge(inputs)
	assert.False(t, ok)

	result := NewProjectionEngine().FindStopAge(inputs)
	assert.False(t, result.Found)
	assert.Nil(t, result.Hypothetical)
}

func TestEarliestStopAge_AlreadyCoasting(t *testing.T) {
	inputs := basicInputs()
	inputs.CurrentSavings = decimal.NewFromInt(500000)

	stopAge, ok := EarliestStopAge(inputs)

	require.True(t, ok)
	assert.Equal(t, inputs.CurrentAge, stopAge)
}

func TestFindStopAge_ReturnsHypothetical(t *testing.T) {
	inputs := basicInputs()
	inputs.CurrentSavings = decimal.NewFromInt(100000)
	inputs.AnnualContribution = decimal.NewFromInt(20000)
	inputs.AnnualSpending = decimal.NewFromInt(50000)

	result := NewProjectionEngine().FindStopAge(inputs)

	require.True(t, result.Found)
	require.NotNil(t, result.Hypothetical)
	assert.Equal(t, result.StopAge, result.Hypothetical.CurrentAge)
	assert.True(t, result.Hypothetical.AnnualContribution.IsZero())
	assert.Equal(t, StopAgeHypothetical(inputs, result.StopAge), *result.Hypothetical)
}

func TestStopAgeHypothetical(t *testing.T) {
	inputs := smallInputs()

	// Stopping immediately keeps current savings
	h := StopAgeHypothetical(inputs, inputs.CurrentAge)
	assert.Equal(t, inputs.CurrentAge, h.CurrentAge)
	assertDecimal(t, "1000", h.CurrentSavings)
	assert.True(t, h.AnnualContribution.IsZero())

	// Two years of (balance + 100) * 1.1
	h = StopAgeHypothetical(inputs, 62)
	assertDecimal(t, "1441", h.CurrentSavings)
	assert.Equal(t, inputs.RetirementAge, h.RetirementAge)
	assert.Equal(t, inputs.LifeExpectancy, h.LifeExpectancy)

	// Source inputs untouched
	assertDecimal(t, "100", inputs.AnnualContribution)
}
