package output

import (
	"bytes"
	"fmt"
)

// MarkdownFormatter renders a printable report: summary, inputs table, and
// the projection sampled every five years.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	sum := report.Results.Summary

	fmt.Fprintln(&buf, "# Retirement Calculator Results")
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "_Generated: %s_\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "## Summary")
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "- **Status:** %s\n", report.StatusLine())
	fmt.Fprintf(&buf, "- **Safe Withdrawal Rate:** %s\n", FormatPercent(sum.SafeWithdrawalRate))
	fmt.Fprintf(&buf, "- **Success Probability:** %s\n", FormatPercent(sum.SuccessProbability))
	fmt.Fprintf(&buf, "- **Final Balance:** %s\n", FormatCurrency(sum.FinalBalance))
	fmt.Fprintf(&buf, "- **Total Contributions:** %s\n", FormatCurrency(sum.TotalContributions))
	fmt.Fprintf(&buf, "- %s\n", report.LongevityLine())
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "## Inputs")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "| Input | Value |")
	fmt.Fprintln(&buf, "|---|---|")
	for _, row := range inputRows(report.Inputs) {
		fmt.Fprintf(&buf, "| %s | %s |\n", row[0], row[1])
	}
	fmt.Fprintln(&buf)

	if report.Stress != nil {
		fmt.Fprintln(&buf, "## Stress Test")
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "| Scenario | Final Balance | Success | Runs Out |")
		fmt.Fprintln(&buf, "|---|---:|---:|---|")
		for _, named := range report.Stress.Named() {
			fmt.Fprintf(&buf, "| %s | %s | %s | %s |\n",
				named.Name,
				FormatCurrency(named.Results.Summary.FinalBalance),
				FormatPercent(named.Results.Summary.SuccessProbability),
				runsOutLabel(named.Results.Summary))
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "## Projections")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "| Age | Balance | Contribution | Withdrawal |")
	fmt.Fprintln(&buf, "|---:|---:|---:|---:|")
	for _, p := range report.SampledProjections() {
		fmt.Fprintf(&buf, "| %d | %s | %s | %s |\n",
			p.Age, FormatCurrency(p.Balance), FormatCurrency(p.Contribution), FormatCurrency(p.Withdrawal))
	}
	fmt.Fprintln(&buf)

	if len(report.Assumptions) > 0 {
		fmt.Fprintln(&buf, "## Assumptions")
		fmt.Fprintln(&buf)
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "- %s\n", a)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "---")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "Generated by nestegg | Not financial advice")

	return buf.Bytes(), nil
}
