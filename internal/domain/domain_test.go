package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInputs_Clone(t *testing.T) {
	original := Inputs{
		CurrentAge:           40,
		RetirementAge:        65,
		CurrentSavings:       decimal.NewFromInt(100000),
		SocialSecurityIncome: DecimalPtr(decimal.NewFromInt(20000)),
		PensionIncome:        DecimalPtr(decimal.NewFromInt(5000)),
		OneTimeCashflows: []Cashflow{
			{Age: 50, Amount: decimal.NewFromInt(25000), Label: "Inheritance"},
		},
	}

	copied := original.Clone()

	assert.Equal(t, original, copied)
	assert.NotSame(t, original.SocialSecurityIncome, copied.SocialSecurityIncome)
	assert.NotSame(t, original.PensionIncome, copied.PensionIncome)

	// Modifications to the copy don't leak back
	copied.OneTimeCashflows[0].Amount = decimal.NewFromInt(1)
	*copied.SocialSecurityIncome = decimal.Zero
	assert.True(t, original.OneTimeCashflows[0].Amount.Equal(decimal.NewFromInt(25000)))
	assert.True(t, original.SocialSecurity().Equal(decimal.NewFromInt(20000)))
}

func TestInputs_OptionalIncomeDefaults(t *testing.T) {
	var in Inputs
	assert.True(t, in.SocialSecurity().IsZero())
	assert.True(t, in.Pension().IsZero())

	in.PensionIncome = DecimalPtr(decimal.NewFromInt(12000))
	assert.True(t, in.Pension().Equal(decimal.NewFromInt(12000)))
}

func TestInputs_CashflowAt_FirstMatchWins(t *testing.T) {
	in := Inputs{
		OneTimeCashflows: []Cashflow{
			{Age: 55, Amount: decimal.NewFromInt(-10000)},
			{Age: 60, Amount: decimal.NewFromInt(50000)},
			{Age: 60, Amount: decimal.NewFromInt(99999)},
		},
	}

	cf, ok := in.CashflowAt(60)
	assert.True(t, ok)
	assert.True(t, cf.Amount.Equal(decimal.NewFromInt(50000)))

	_, ok = in.CashflowAt(61)
	assert.False(t, ok)
}

func TestResults_Helpers(t *testing.T) {
	age := 80
	r := Results{
		Projections: []YearlyProjection{
			{Age: 64, Balance: decimal.NewFromInt(900)},
			{Age: 65, Balance: decimal.NewFromInt(1000)},
			{Age: 66, Balance: decimal.NewFromInt(800)},
		},
		Summary: Summary{AgeMoneyRunsOut: &age},
	}

	row, ok := r.ProjectionAt(65)
	assert.True(t, ok)
	assert.True(t, row.Balance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, row.IsRetired(65))
	assert.False(t, r.Projections[0].IsRetired(65))

	peak, peakAge := r.PeakBalance()
	assert.True(t, peak.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 65, peakAge)

	assert.False(t, r.MoneyLasts())
	r.Summary.AgeMoneyRunsOut = nil
	assert.True(t, r.MoneyLasts())
}

func TestSensitivitySummary_DetermineRiskLevel(t *testing.T) {
	tests := []struct {
		spread int64
		want   string
	}{
		{10, "LOW"},
		{50, "MEDIUM"},
		{100, "HIGH"},
		{400, "CRITICAL"},
	}

	for _, tt := range tests {
		ss := SensitivitySummary{SpreadPercent: decimal.NewFromInt(tt.spread)}
		assert.Equal(t, tt.want, ss.DetermineRiskLevel(), "spread %d", tt.spread)
	}
}

func TestLookupParameter(t *testing.T) {
	p, ok := LookupParameter("inflation_rate")
	assert.True(t, ok)
	assert.Equal(t, "percent", p.Unit)

	_, ok = LookupParameter("tsp_return")
	assert.False(t, ok)
}
