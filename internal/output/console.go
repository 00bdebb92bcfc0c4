package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// ConsoleFormatter renders a plain-text report for the terminal
type ConsoleFormatter struct {
	// Verbose prints every projection year instead of the 5-year sample
	Verbose bool
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	in := report.Inputs
	sum := report.Results.Summary

	fmt.Fprintln(&buf, "RETIREMENT PLAN SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	if report.Conservative {
		fmt.Fprintln(&buf, "Assumptions: conservative")
	}
	fmt.Fprintf(&buf, "Status:                %s\n", report.StatusLine())
	fmt.Fprintf(&buf, "Safe Withdrawal Rate:  %s\n", FormatPercent(sum.SafeWithdrawalRate))
	fmt.Fprintf(&buf, "Success Probability:   %s\n", FormatPercent(sum.SuccessProbability))
	fmt.Fprintf(&buf, "Final Balance:         %s\n", FormatCurrency(sum.FinalBalance))
	fmt.Fprintf(&buf, "Total Contributions:   %s\n", FormatCurrency(sum.TotalContributions))
	fmt.Fprintf(&buf, "Total Withdrawals:     %s\n", FormatCurrency(sum.TotalWithdrawals))
	fmt.Fprintln(&buf, report.LongevityLine())
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "INPUTS")
	fmt.Fprintln(&buf, strings.Repeat("-", 60))
	for _, row := range inputRows(in) {
		fmt.Fprintf(&buf, "  %-22s %s\n", row[0]+":", row[1])
	}
	fmt.Fprintln(&buf)

	if report.Coast != nil {
		coast := report.Coast
		fmt.Fprintln(&buf, "COAST FIRE")
		fmt.Fprintln(&buf, strings.Repeat("-", 60))
		fmt.Fprintf(&buf, "  FIRE Number:          %s\n", FormatCurrency(coast.FireNumber))
		fmt.Fprintf(&buf, "  Coast Number:         %s\n", FormatCurrency(coast.CoastNumber))
		fmt.Fprintf(&buf, "  Progress:             %s\n", FormatPercent(coast.PercentToCoast))
		if coast.IsCoasting {
			fmt.Fprintf(&buf, "  Coasting with %s to spare\n", FormatCurrency(coast.Gap.Neg()))
		} else {
			fmt.Fprintf(&buf, "  Gap to Coast:         %s\n", FormatCurrency(coast.Gap))
		}
		fmt.Fprintln(&buf)
	}

	if report.StopAge != nil {
		fmt.Fprintln(&buf, "CONTRIBUTIONS")
		fmt.Fprintln(&buf, strings.Repeat("-", 60))
		if report.StopAge.Found {
			fmt.Fprintf(&buf, "  Contributions can stop at age %d\n", report.StopAge.StopAge)
		} else {
			fmt.Fprintln(&buf, "  No stop age before retirement reaches the goal")
		}
		fmt.Fprintln(&buf)
	}

	if report.Stress != nil {
		fmt.Fprintln(&buf, "STRESS TEST")
		fmt.Fprintln(&buf, strings.Repeat("-", 60))
		fmt.Fprintf(&buf, "  %-12s %15s %10s %12s\n", "Scenario", "Final Balance", "Success", "Runs Out")
		for _, named := range report.Stress.Named() {
			fmt.Fprintf(&buf, "  %-12s %15s %10s %12s\n",
				named.Name,
				FormatCurrency(named.Results.Summary.FinalBalance),
				FormatPercent(named.Results.Summary.SuccessProbability),
				runsOutLabel(named.Results.Summary))
		}
		fmt.Fprintln(&buf)
	}

	projections := report.SampledProjections()
	if c.Verbose {
		projections = report.Results.Projections
	}
	fmt.Fprintln(&buf, "PROJECTIONS")
	fmt.Fprintln(&buf, strings.Repeat("-", 60))
	fmt.Fprintf(&buf, "  %-5s %15s %14s %14s\n", "Age", "Balance", "Contribution", "Withdrawal")
	for _, p := range projections {
		fmt.Fprintf(&buf, "  %-5d %15s %14s %14s\n",
			p.Age, FormatCurrency(p.Balance), FormatCurrency(p.Contribution), FormatCurrency(p.Withdrawal))
	}

	if len(report.Assumptions) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "ASSUMPTIONS")
		fmt.Fprintln(&buf, strings.Repeat("-", 60))
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "  • %s\n", a)
		}
	}

	return buf.Bytes(), nil
}

func runsOutLabel(sum domain.Summary) string {
	if sum.AgeMoneyRunsOut == nil {
		return "never"
	}
	return fmt.Sprintf("age %d", *sum.AgeMoneyRunsOut)
}

// inputRows lists the plan inputs as display label/value pairs
func inputRows(in domain.Inputs) [][2]string {
	rows := [][2]string{
		{"Current Age", fmt.Sprintf("%d", in.CurrentAge)},
		{"Retirement Age", fmt.Sprintf("%d", in.RetirementAge)},
		{"Current Savings", FormatCurrency(in.CurrentSavings)},
		{"Annual Contribution", FormatCurrency(in.AnnualContribution)},
		{"Rate of Return", FormatPercent(in.RateOfReturn)},
		{"Annual Spending", FormatCurrency(in.AnnualSpending)},
		{"Inflation Rate", FormatPercent(in.InflationRate)},
		{"Life Expectancy", fmt.Sprintf("%d", in.LifeExpectancy)},
	}
	if in.SocialSecurityIncome != nil && in.SocialSecurityIncome.IsPositive() {
		rows = append(rows, [2]string{"Social Security", FormatCurrency(*in.SocialSecurityIncome)})
	}
	if in.PensionIncome != nil && in.PensionIncome.IsPositive() {
		rows = append(rows, [2]string{"Pension", FormatCurrency(*in.PensionIncome)})
	}
	for _, cf := range in.OneTimeCashflows {
		label := cf.Label
		if label == "" {
			label = "Cashflow"
		}
		rows = append(rows, [2]string{fmt.Sprintf("%s (age %d)", label, cf.Age), FormatCurrency(cf.Amount)})
	}
	return rows
}
