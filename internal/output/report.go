package output

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// Report is everything a formatter renders for one plan
type Report struct {
	GeneratedAt  time.Time               `json:"generatedAt"`
	Conservative bool                    `json:"conservative"`
	Inputs       domain.Inputs           `json:"inputs"` // effective inputs, after any conservative adjustment
	Results      domain.Results          `json:"results"`
	Assumptions  []string                `json:"assumptions"`
	Coast        *domain.CoastResult     `json:"coast,omitempty"`
	StopAge      *domain.StopAgeResult   `json:"stopAge,omitempty"`
	Stress       *domain.StressScenarios `json:"stress,omitempty"`
}

// ReportOptions selects the optional analyses included in a report
type ReportOptions struct {
	Conservative bool
	Coast        bool
	StopAge      bool
	Stress       bool
}

// AllAnalyses includes every optional analysis
func AllAnalyses(conservative bool) ReportOptions {
	return ReportOptions{Conservative: conservative, Coast: true, StopAge: true, Stress: true}
}

// BuildReport projects a plan and runs the requested analyses on the effective inputs
func BuildReport(engine *calculation.ProjectionEngine, inputs domain.Inputs, opts ReportOptions) *Report {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}

	effective := inputs
	if opts.Conservative {
		effective = engine.ApplyConservativeAdjustment(inputs)
	}

	report := &Report{
		GeneratedAt:  time.Now(),
		Conservative: opts.Conservative,
		Inputs:       effective,
		Results:      engine.Project(effective),
		Assumptions:  PlanAssumptions(effective),
	}

	if opts.Coast {
		coast := engine.CoastStatus(effective)
		report.Coast = &coast
	}
	if opts.StopAge {
		stop := engine.FindStopAge(effective)
		report.StopAge = &stop
	}
	if opts.Stress {
		stress := engine.StressScenarios(effective)
		report.Stress = &stress
	}

	return report
}

// SampledProjections returns every 5th year plus the final year
func (r *Report) SampledProjections() []domain.YearlyProjection {
	projections := r.Results.Projections
	var sampled []domain.YearlyProjection
	for i, p := range projections {
		if i%5 == 0 || i == len(projections)-1 {
			sampled = append(sampled, p)
		}
	}
	return sampled
}

// StatusLine summarizes whether the plan works
func (r *Report) StatusLine() string {
	if r.Results.Summary.RetirementGoalReached {
		return "✓ On Track"
	}
	return "✗ Needs Adjustment"
}

// LongevityLine describes when the money runs out
func (r *Report) LongevityLine() string {
	if age := r.Results.Summary.AgeMoneyRunsOut; age != nil {
		return fmt.Sprintf("Money Runs Out: Age %d", *age)
	}
	return "Money Lasts: Through life expectancy"
}

// FormatCurrency formats whole dollars with thousands separators: $1,235 or -$500
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	if rounded.IsNegative() {
		return "-$" + humanize.Comma(rounded.Abs().IntPart())
	}
	return "$" + humanize.Comma(rounded.IntPart())
}

// FormatCurrencyFixed formats an amount with two decimals and no symbol
func FormatCurrencyFixed(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatPercent formats a percentage value with one decimal: 10.1%
func FormatPercent(value decimal.Decimal) string {
	return value.StringFixed(1) + "%"
}

// FormatShort abbreviates large amounts for charts and tight tables: $1.25M, $850K
func FormatShort(amount decimal.Decimal) string {
	abs := amount.Abs()
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	switch {
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1000000)):
		return sign + "$" + abs.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1000)):
		return sign + "$" + abs.Div(decimal.NewFromInt(1000)).StringFixed(0) + "K"
	default:
		return sign + "$" + abs.StringFixed(0)
	}
}
