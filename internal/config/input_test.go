package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlPlan = `
current_age: 40
retirement_age: 62
current_savings: 250000
annual_contribution: 20000
rate_of_return: 6.5
annual_spending: 60000
inflation_rate: 2.5
life_expectancy: 92
social_security_income: 24000
one_time_cashflows:
  - age: 55
    amount: 100000
    label: inheritance
  - age: 70
    amount: -30000
    label: roof
`

const tomlPlan = `
current_age = 40
retirement_age = 62
current_savings = 250000
annual_contribution = 20000
rate_of_return = 6.5
annual_spending = 60000
inflation_rate = 2.5
life_expectancy = 92
social_security_income = 24000

[[one_time_cashflows]]
age = 55
amount = 100000
label = "inheritance"

[[one_time_cashflows]]
age = 70
amount = -30000
label = "roof"
`

const jsonPlan = `{
  "currentAge": 40,
  "retirementAge": 62,
  "currentSavings": 250000,
  "annualContribution": 20000,
  "rateOfReturn": 6.5,
  "annualSpending": 60000,
  "inflationRate": 2.5,
  "lifeExpectancy": 92,
  "socialSecurityIncome": 24000,
  "oneTimeCashflows": [
    {"age": 55, "amount": 100000, "label": "inheritance"},
    {"age": 70, "amount": -30000, "label": "roof"}
  ]
}`

func writePlan(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func assertSamplePlan(t *testing.T, inputs domain.Inputs) {
	t.Helper()
	assert.Equal(t, 40, inputs.CurrentAge)
	assert.Equal(t, 62, inputs.RetirementAge)
	assert.Equal(t, 92, inputs.LifeExpectancy)
	assert.True(t, inputs.CurrentSavings.Equal(decimal.NewFromInt(250000)))
	assert.True(t, inputs.RateOfReturn.Equal(decimal.RequireFromString("6.5")))
	assert.True(t, inputs.InflationRate.Equal(decimal.RequireFromString("2.5")))
	require.NotNil(t, inputs.SocialSecurityIncome)
	assert.True(t, inputs.SocialSecurityIncome.Equal(decimal.NewFromInt(24000)))
	assert.Nil(t, inputs.PensionIncome)
	require.Len(t, inputs.OneTimeCashflows, 2)
	assert.Equal(t, "inheritance", inputs.OneTimeCashflows[0].Label)
	assert.True(t, inputs.OneTimeCashflows[1].Amount.Equal(decimal.NewFromInt(-30000)))
}

func TestLoadFromFile_Formats(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "plan.yaml", yamlPlan},
		{"yml", "plan.yml", yamlPlan},
		{"toml", "plan.toml", tomlPlan},
		{"json", "plan.json", jsonPlan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs, err := parser.LoadFromFile(writePlan(t, tt.file, tt.content))
			require.NoError(t, err)
			assertSamplePlan(t, inputs)
		})
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(writePlan(t, "plan.txt", yamlPlan))
	assert.ErrorContains(t, err, "unsupported plan file extension")

	_, err = parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read file")

	_, err = parser.LoadFromFile(writePlan(t, "bad.yaml", "current_age: [oops"))
	assert.ErrorContains(t, err, "failed to parse YAML")

	_, err = parser.LoadFromFile(writePlan(t, "bad.json", `{"currentAge": 40, "bogus": 1}`))
	assert.ErrorContains(t, err, "failed to parse JSON")
}

func TestLoadFromFile_ValidationError(t *testing.T) {
	parser := NewInputParser()
	path := writePlan(t, "plan.yaml", `
current_age: 40
retirement_age: 35
current_savings: 1000
annual_contribution: 0
rate_of_return: 5
annual_spending: 1000
inflation_rate: 2
life_expectancy: 90
`)

	_, err := parser.LoadFromFile(path)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "retirement_age")
}

func TestParse_ConservativeAssumptions(t *testing.T) {
	parser := NewInputParser()
	data := []byte(yamlPlan + "assumptions: conservative\n")

	inputs, err := parser.Parse(data, FormatYAML)
	require.NoError(t, err)

	assert.True(t, inputs.RateOfReturn.Equal(decimal.NewFromInt(5)))
	assert.True(t, inputs.InflationRate.Equal(decimal.RequireFromString("3.5")))
	assert.True(t, inputs.AnnualSpending.Equal(decimal.NewFromInt(66000)))
	assert.Equal(t, 95, inputs.LifeExpectancy)
}

func TestLoadPlan_KeepsPresetSeparate(t *testing.T) {
	parser := NewInputParser()
	// valid as written; the conservative +10% would exceed the spending bound
	content := strings.Replace(yamlPlan, "annual_spending: 60000", "annual_spending: 480000", 1) + "assumptions: conservative\n"
	path := writePlan(t, "plan.yaml", content)

	plan, err := parser.LoadPlan(path)
	require.NoError(t, err)
	assert.True(t, plan.Conservative())
	assert.True(t, plan.AnnualSpending.Equal(decimal.NewFromInt(480000)), "preset must not be applied")

	effective, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, effective.AnnualSpending.Equal(decimal.NewFromInt(528000)))
	assert.Equal(t, 95, effective.LifeExpectancy)

	base, err := parser.ParsePlan([]byte(yamlPlan), FormatYAML)
	require.NoError(t, err)
	assert.False(t, base.Conservative())
	assert.Equal(t, base.Inputs, base.Effective())
}

func TestParse_UnknownAssumptions(t *testing.T) {
	_, err := NewInputParser().Parse([]byte(yamlPlan+"assumptions: reckless\n"), FormatYAML)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestValidateInputs(t *testing.T) {
	parser := NewInputParser()
	negative := decimal.NewFromInt(-1)
	bigPension := decimal.NewFromInt(200001)

	tests := []struct {
		name      string
		modify    func(*domain.Inputs)
		wantField string
	}{
		{"valid", func(*domain.Inputs) {}, ""},
		{"too young", func(in *domain.Inputs) { in.CurrentAge = 17 }, "current_age"},
		{"too old", func(in *domain.Inputs) { in.CurrentAge = 101 }, "current_age"},
		{"retire before now", func(in *domain.Inputs) { in.RetirementAge = in.CurrentAge }, "retirement_age"},
		{"retire after 100", func(in *domain.Inputs) { in.RetirementAge = 101; in.LifeExpectancy = 110 }, "retirement_age"},
		{"die before retiring", func(in *domain.Inputs) { in.LifeExpectancy = in.RetirementAge }, "life_expectancy"},
		{"life past 120", func(in *domain.Inputs) { in.LifeExpectancy = 121 }, "life_expectancy"},
		{"savings cap", func(in *domain.Inputs) { in.CurrentSavings = decimal.NewFromInt(10000001) }, "current_savings"},
		{"negative contribution", func(in *domain.Inputs) { in.AnnualContribution = negative }, "annual_contribution"},
		{"return cap", func(in *domain.Inputs) { in.RateOfReturn = decimal.NewFromInt(21) }, "rate_of_return"},
		{"spending cap", func(in *domain.Inputs) { in.AnnualSpending = decimal.NewFromInt(500001) }, "annual_spending"},
		{"inflation cap", func(in *domain.Inputs) { in.InflationRate = decimal.RequireFromString("10.5") }, "inflation_rate"},
		{"negative social security", func(in *domain.Inputs) { in.SocialSecurityIncome = &negative }, "social_security_income"},
		{"pension cap", func(in *domain.Inputs) { in.PensionIncome = &bigPension }, "pension_income"},
		{"cashflow before now", func(in *domain.Inputs) {
			in.OneTimeCashflows = []domain.Cashflow{{Age: in.CurrentAge - 1, Amount: decimal.NewFromInt(5)}}
		}, "one_time_cashflows[0].age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := ExampleInputs()
			tt.modify(&inputs)

			err := parser.ValidateInputs(inputs)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestValidateInputs_Boundaries(t *testing.T) {
	inputs := domain.Inputs{
		CurrentAge:         18,
		RetirementAge:      100,
		CurrentSavings:     decimal.NewFromInt(10000000),
		AnnualContribution: decimal.NewFromInt(100000),
		RateOfReturn:       decimal.NewFromInt(20),
		AnnualSpending:     decimal.NewFromInt(500000),
		InflationRate:      decimal.NewFromInt(10),
		LifeExpectancy:     120,
	}

	if err := NewInputParser().ValidateInputs(inputs); err != nil {
		t.Errorf("Expected inclusive upper bounds to be accepted, got: %v", err)
	}
}
