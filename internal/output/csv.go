package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVFormatter writes the plan as sectioned CSV: inputs, summary, then every projection year.
// Section headings are "#" comment lines separated by blank lines.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	// comment and blank lines bypass the csv writer so they stay unquoted
	line := func(s string) error {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
		buf.WriteString(s)
		buf.WriteByte('\n')
		return nil
	}

	in := report.Inputs
	sum := report.Results.Summary

	if err := line("# Retirement Calculator Results"); err != nil {
		return nil, err
	}
	if err := line("# Generated: " + report.GeneratedAt.Format("2006-01-02 15:04:05")); err != nil {
		return nil, err
	}
	if err := line(""); err != nil {
		return nil, err
	}

	if err := line("# Inputs"); err != nil {
		return nil, err
	}
	rows := [][]string{
		{"Current Age", strconv.Itoa(in.CurrentAge)},
		{"Retirement Age", strconv.Itoa(in.RetirementAge)},
		{"Current Savings", in.CurrentSavings.String()},
		{"Annual Contribution", in.AnnualContribution.String()},
		{"Rate of Return", in.RateOfReturn.String() + "%"},
		{"Annual Spending", in.AnnualSpending.String()},
		{"Inflation Rate", in.InflationRate.String() + "%"},
		{"Life Expectancy", strconv.Itoa(in.LifeExpectancy)},
	}
	if in.SocialSecurityIncome != nil {
		rows = append(rows, []string{"Social Security", in.SocialSecurityIncome.String()})
	}
	if in.PensionIncome != nil {
		rows = append(rows, []string{"Pension", in.PensionIncome.String()})
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	if err := line(""); err != nil {
		return nil, err
	}

	if err := line("# Summary"); err != nil {
		return nil, err
	}
	runsOut := "N/A"
	if sum.AgeMoneyRunsOut != nil {
		runsOut = strconv.Itoa(*sum.AgeMoneyRunsOut)
	}
	rows = [][]string{
		{"Goal Reached", yesNo(sum.RetirementGoalReached)},
		{"Age Money Runs Out", runsOut},
		{"Final Balance", sum.FinalBalance.StringFixed(2)},
		{"Safe Withdrawal Rate", sum.SafeWithdrawalRate.StringFixed(2) + "%"},
		{"Success Probability", sum.SuccessProbability.StringFixed(1) + "%"},
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	if err := line(""); err != nil {
		return nil, err
	}

	if err := line("# Yearly Projections"); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"Age", "Balance", "Contribution", "Withdrawal", "Interest"}); err != nil {
		return nil, err
	}
	for _, p := range report.Results.Projections {
		row := []string{
			strconv.Itoa(p.Age),
			p.Balance.StringFixed(2),
			p.Contribution.StringFixed(2),
			p.Withdrawal.StringFixed(2),
			p.Interest.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
