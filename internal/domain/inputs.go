package domain

import (
	"github.com/shopspring/decimal"
)

// Cashflow is a one-time signed amount applied in the year the projection reaches Age.
// Positive amounts are inflows (inheritance, home sale), negative amounts are outflows.
type Cashflow struct {
	Age    int             `yaml:"age" json:"age" toml:"age"`
	Amount decimal.Decimal `yaml:"amount" json:"amount" toml:"amount"`
	Label  string          `yaml:"label,omitempty" json:"label,omitempty" toml:"label,omitempty"`
}

// Inputs holds every assumption a projection runs on. Rates are percentages (7 means 7%).
type Inputs struct {
	CurrentAge         int             `yaml:"current_age" json:"currentAge" toml:"current_age"`
	RetirementAge      int             `yaml:"retirement_age" json:"retirementAge" toml:"retirement_age"`
	CurrentSavings     decimal.Decimal `yaml:"current_savings" json:"currentSavings" toml:"current_savings"`
	AnnualContribution decimal.Decimal `yaml:"annual_contribution" json:"annualContribution" toml:"annual_contribution"`
	RateOfReturn       decimal.Decimal `yaml:"rate_of_return" json:"rateOfReturn" toml:"rate_of_return"`
	AnnualSpending     decimal.Decimal `yaml:"annual_spending" json:"annualSpending" toml:"annual_spending"`
	InflationRate      decimal.Decimal `yaml:"inflation_rate" json:"inflationRate" toml:"inflation_rate"`
	LifeExpectancy     int             `yaml:"life_expectancy" json:"lifeExpectancy" toml:"life_expectancy"`

	// Optional retirement income, nil when absent
	SocialSecurityIncome *decimal.Decimal `yaml:"social_security_income,omitempty" json:"socialSecurityIncome,omitempty" toml:"social_security_income,omitempty"`
	PensionIncome        *decimal.Decimal `yaml:"pension_income,omitempty" json:"pensionIncome,omitempty" toml:"pension_income,omitempty"`

	OneTimeCashflows []Cashflow `yaml:"one_time_cashflows,omitempty" json:"oneTimeCashflows,omitempty" toml:"one_time_cashflows,omitempty"`
}

// SocialSecurity returns the annual Social Security income, zero when not set.
func (in Inputs) SocialSecurity() decimal.Decimal {
	if in.SocialSecurityIncome == nil {
		return decimal.Zero
	}
	return *in.SocialSecurityIncome
}

// Pension returns the annual pension income, zero when not set.
func (in Inputs) Pension() decimal.Decimal {
	if in.PensionIncome == nil {
		return decimal.Zero
	}
	return *in.PensionIncome
}

// CashflowAt returns the first one-time cashflow scheduled for age.
// Later entries with the same age are ignored.
func (in Inputs) CashflowAt(age int) (Cashflow, bool) {
	for _, cf := range in.OneTimeCashflows {
		if cf.Age == age {
			return cf, true
		}
	}
	return Cashflow{}, false
}

// YearsToRetirement returns RetirementAge - CurrentAge (may be zero or negative).
func (in Inputs) YearsToRetirement() int {
	return in.RetirementAge - in.CurrentAge
}

// Clone returns a copy that shares no mutable state with the receiver.
func (in Inputs) Clone() Inputs {
	out := in
	if in.SocialSecurityIncome != nil {
		ss := *in.SocialSecurityIncome
		out.SocialSecurityIncome = &ss
	}
	if in.PensionIncome != nil {
		p := *in.PensionIncome
		out.PensionIncome = &p
	}
	if in.OneTimeCashflows != nil {
		out.OneTimeCashflows = make([]Cashflow, len(in.OneTimeCashflows))
		copy(out.OneTimeCashflows, in.OneTimeCashflows)
	}
	return out
}

// DecimalPtr is a convenience for populating optional income fields.
func DecimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
