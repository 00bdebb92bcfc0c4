package output

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatInputs has no growth or inflation: 100k drawn down 5k a year from 65 runs out at 84.
func flatInputs() domain.Inputs {
	return domain.Inputs{
		CurrentAge:         60,
		RetirementAge:      65,
		CurrentSavings:     decimal.NewFromInt(100000),
		AnnualContribution: decimal.Zero,
		RateOfReturn:       decimal.Zero,
		AnnualSpending:     decimal.NewFromInt(5000),
		InflationRate:      decimal.Zero,
		LifeExpectancy:     90,
	}
}

func buildTestReport(t *testing.T) *Report {
	t.Helper()
	report := BuildReport(nil, flatInputs(), AllAnalyses(false))
	report.GeneratedAt = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	return report
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1000", "$1,000"},
		{"999.99", "$1,000"},
		{"1234567.5", "$1,234,568"},
		{"0", "$0"},
		{"-0.4", "$0"},
		{"-500.4", "-$500"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatPercentAndShort(t *testing.T) {
	assert.Equal(t, "10.1%", FormatPercent(decimal.RequireFromString("10.06")))
	assert.Equal(t, "0.0%", FormatPercent(decimal.Zero))
	assert.Equal(t, "1234.50", FormatCurrencyFixed(decimal.RequireFromString("1234.5")))

	assert.Equal(t, "$1.25M", FormatShort(decimal.NewFromInt(1250000)))
	assert.Equal(t, "$850K", FormatShort(decimal.NewFromInt(850000)))
	assert.Equal(t, "$999", FormatShort(decimal.NewFromInt(999)))
	assert.Equal(t, "-$2K", FormatShort(decimal.NewFromInt(-2000)))
}

func TestBuildReport(t *testing.T) {
	report := buildTestReport(t)

	require.Len(t, report.Results.Projections, 31)
	require.NotNil(t, report.Coast)
	require.NotNil(t, report.StopAge)
	require.NotNil(t, report.Stress)
	assert.False(t, report.Conservative)
	assert.NotEmpty(t, report.Assumptions)

	assert.Equal(t, "✗ Needs Adjustment", report.StatusLine())
	assert.Equal(t, "Money Runs Out: Age 84", report.LongevityLine())
}

func TestBuildReport_Conservative(t *testing.T) {
	report := BuildReport(calculation.NewProjectionEngine(), flatInputs(), ReportOptions{Conservative: true})

	assert.True(t, report.Conservative)
	assert.True(t, report.Inputs.RateOfReturn.Equal(decimal.NewFromInt(5)))
	assert.True(t, report.Inputs.AnnualSpending.Equal(decimal.NewFromInt(5500)))
	assert.Equal(t, 95, report.Inputs.LifeExpectancy)
	assert.Nil(t, report.Coast)
	assert.Nil(t, report.Stress)
}

func TestSampledProjections(t *testing.T) {
	report := buildTestReport(t)

	var ages []int
	for _, p := range report.SampledProjections() {
		ages = append(ages, p.Age)
	}
	assert.Equal(t, []int{60, 65, 70, 75, 80, 85, 90}, ages)

	// the final year is kept even when it falls off the 5-year grid
	report.Results.Projections = report.Results.Projections[:28]
	sampled := report.SampledProjections()
	assert.Equal(t, 87, sampled[len(sampled)-1].Age)
}

func TestCSVFormatter_Format(t *testing.T) {
	report := buildTestReport(t)

	data, err := CSVFormatter{}.Format(report)
	require.NoError(t, err)

	lines := strings.Split(string(data), "\n")
	assert.Equal(t, "# Retirement Calculator Results", lines[0])
	assert.Equal(t, "# Generated: 2026-10-19 09:30:00", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "# Inputs", lines[3])
	assert.Equal(t, "Current Age,60", lines[4])

	content := string(data)
	for _, want := range []string{
		"Rate of Return,0%",
		"Annual Spending,5000",
		"Life Expectancy,90",
		"# Summary",
		"Goal Reached,No",
		"Age Money Runs Out,84",
		"Final Balance,0.00",
		"Safe Withdrawal Rate,5.00%",
		"Success Probability,76.0%",
		"# Yearly Projections\nAge,Balance,Contribution,Withdrawal,Interest\n60,100000.00,0.00,0.00,0.00\n",
		"65,95000.00,0.00,5000.00,0.00",
	} {
		assert.Contains(t, content, want)
	}
	assert.NotContains(t, content, "Social Security")
}

func TestCSVFormatter_OptionalIncome(t *testing.T) {
	inputs := flatInputs()
	ss := decimal.NewFromInt(1000)
	inputs.SocialSecurityIncome = &ss

	data, err := CSVFormatter{}.Format(BuildReport(nil, inputs, ReportOptions{}))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Social Security,1000\n")
	assert.NotContains(t, string(data), "Pension")
}

func TestMarkdownFormatter_Format(t *testing.T) {
	data, err := MarkdownFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "**Status:** ✗ Needs Adjustment")
	assert.Contains(t, content, "Money Runs Out: Age 84")
	assert.Contains(t, content, "| Current Savings | $100,000 |")
	assert.Contains(t, content, "| 70 | $70,000 | $0 | $5,000 |")
	assert.Contains(t, content, "| Worst Case |")
	assert.NotContains(t, content, "| 71 |")
	assert.Contains(t, content, "Not financial advice")
}

func TestHTMLFormatter_Format(t *testing.T) {
	data, err := HTMLFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "<!DOCTYPE html>"))
	assert.Contains(t, content, "<title>Retirement Plan 2026-10-19</title>")
	assert.Contains(t, content, "<table>")
	assert.Contains(t, content, "<h2>Projections</h2>")
	assert.Contains(t, content, "#dc2626")
}

func TestConsoleFormatter_Format(t *testing.T) {
	report := buildTestReport(t)

	data, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "RETIREMENT PLAN SUMMARY")
	assert.Contains(t, content, "Success Probability:   76.0%")
	assert.Contains(t, content, "COAST FIRE")
	assert.Contains(t, content, "STRESS TEST")
	assert.Contains(t, content, "Best Case")
	assert.Contains(t, content, "ASSUMPTIONS")

	verbose, err := ConsoleFormatter{Verbose: true}.Format(report)
	require.NoError(t, err)
	assert.Greater(t, strings.Count(string(verbose), "\n"), strings.Count(content, "\n"))
}

func TestJSONFormatter_Format(t *testing.T) {
	data, err := JSONFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "results")
	assert.Contains(t, decoded, "coast")
	assert.Contains(t, decoded, "stress")

	inputs, ok := decoded["inputs"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 60, inputs["currentAge"])
}

func TestGetFormatterByName(t *testing.T) {
	for name, want := range map[string]string{
		"console": "console",
		"TABLE":   "console",
		"md":      "markdown",
		"csv":     "csv",
		" json ":  "json",
		"htm":     "html",
	} {
		f, ok := GetFormatterByName(name)
		require.True(t, ok, name)
		assert.Equal(t, want, f.Name())
	}

	_, ok := GetFormatterByName("pdf")
	assert.False(t, ok)

	assert.Equal(t, []string{"console", "csv", "html", "json", "markdown"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "md")
	assert.Equal(t, "md", Extension("markdown"))
	assert.Equal(t, "txt", Extension("console"))
}

func TestFormatterFunc(t *testing.T) {
	var received *Report
	f := FormatterFunc{ID: "test", F: func(r *Report) ([]byte, error) {
		received = r
		return []byte("ok"), nil
	}}

	report := buildTestReport(t)
	out, err := f.Format(report)
	require.NoError(t, err)
	assert.Equal(t, "test", f.Name())
	assert.Equal(t, []byte("ok"), out)
	assert.Same(t, report, received)
}

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()
	report := buildTestReport(t)

	path, err := WriteFormatted(CSVFormatter{}, report, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "retirement-plan-2026-10-19.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# Retirement Calculator Results\n"))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	f := FormatterFunc{ID: "broken", F: func(*Report) ([]byte, error) {
		return nil, errors.New("formatter error")
	}}

	path, err := WriteFormatted(f, buildTestReport(t), t.TempDir())
	assert.Error(t, err)
	assert.Empty(t, path)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestPlanAssumptions(t *testing.T) {
	base := PlanAssumptions(flatInputs())

	inputs := flatInputs()
	pension := decimal.NewFromInt(12000)
	inputs.PensionIncome = &pension
	inputs.OneTimeCashflows = []domain.Cashflow{{Age: 70, Amount: decimal.NewFromInt(-20000)}}
	withExtras := PlanAssumptions(inputs)

	assert.Len(t, withExtras, len(base)+2)
	assert.Contains(t, base[0], "0.0%")
}

func sensitivityAnalysis(t *testing.T) *domain.SensitivityAnalysis {
	t.Helper()
	param := domain.AnnualSpendingParam
	param.MinValue = decimal.NewFromInt(3000)
	param.MaxValue = decimal.NewFromInt(5000)
	param.Steps = 3

	analysis, err := calculation.NewSensitivityAnalyzer(nil).AnalyzeSingleParameter(context.Background(), flatInputs(), param)
	require.NoError(t, err)
	return analysis
}

func TestSensitivityConsoleFormatter(t *testing.T) {
	out, err := SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(sensitivityAnalysis(t))
	require.NoError(t, err)

	assert.Contains(t, out, "SENSITIVITY ANALYSIS: ANNUAL SPENDING")
	assert.Contains(t, out, "Base Case: $5,000")
	assert.Contains(t, out, "$5,000 ← BASE")
	assert.Contains(t, out, "Break-even value: $3,000")
	assert.Contains(t, out, "RECOMMENDATIONS:")

	_, err = SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(&domain.SensitivityAnalysis{})
	assert.Error(t, err)
}

func TestSensitivityCSVFormatter(t *testing.T) {
	out, err := SensitivityCSVFormatter{}.FormatSensitivityAnalysis(sensitivityAnalysis(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "annual_spending,3000,false,22000.00,true,,"))
	assert.True(t, strings.HasPrefix(lines[3], "annual_spending,5000,true,0.00,false,84,"))
}

func TestSensitivityJSONFormatter(t *testing.T) {
	out, err := SensitivityJSONFormatter{}.FormatSensitivityAnalysis(sensitivityAnalysis(t))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "recommendations")
	assert.Contains(t, decoded, "points")
}

func TestNewSensitivityFormatter(t *testing.T) {
	assert.Equal(t, "console", NewSensitivityFormatter("table").Name())
	assert.Equal(t, "csv", NewSensitivityFormatter("CSV").Name())
	assert.Equal(t, "json", NewSensitivityFormatter("json").Name())
	assert.Equal(t, "console", NewSensitivityFormatter("unknown").Name())
}
