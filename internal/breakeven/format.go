package breakeven

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN RESULTS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	sb.WriteString(fmt.Sprintf("Target:       %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Goal:         %s\n", result.Request.Goal))
	sb.WriteString(fmt.Sprintf("Status:       %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:   %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:  %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("BREAK-EVEN VALUE\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	if result.OptimalSpending != nil {
		sb.WriteString(fmt.Sprintf("Maximum Annual Spending:     %s\n", tf.formatCurrency(*result.OptimalSpending)))
	}
	if result.OptimalContribution != nil {
		sb.WriteString(fmt.Sprintf("Minimum Annual Contribution: %s\n", tf.formatCurrency(*result.OptimalContribution)))
	}
	if result.OptimalSavings != nil {
		sb.WriteString(fmt.Sprintf("Minimum Current Savings:     %s\n", tf.formatCurrency(*result.OptimalSavings)))
	}
	if result.OptimalRetirementAge != nil {
		sb.WriteString(fmt.Sprintf("Earliest Retirement Age:     %d\n", *result.OptimalRetirementAge))
	}
	sb.WriteString("\n")

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Final Balance:        %s\n", tf.formatCurrency(result.FinalBalance)))
	sb.WriteString(fmt.Sprintf("Success Probability:  %s%%\n", result.Summary.SuccessProbability.StringFixed(1)))
	if result.AgeMoneyRunsOut != nil {
		sb.WriteString(fmt.Sprintf("Money Runs Out At:    %d\n", *result.AgeMoneyRunsOut))
	}
	sb.WriteString("\n")

	if result.BaseSummary != nil && !result.BalanceDiffFromBase.IsZero() {
		sb.WriteString("COMPARISON TO CURRENT PLAN\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		sb.WriteString(fmt.Sprintf("Current Final Balance: %s\n", tf.formatCurrency(result.BaseSummary.FinalBalance)))
		sb.WriteString(fmt.Sprintf("Final Balance Change:  %s%s\n",
			tf.deltaSymbol(result.BalanceDiffFromBase), tf.formatCurrency(result.BalanceDiffFromBase.Abs())))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMultiDimensional formats results from every target
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")

	sb.WriteString(fmt.Sprintf("%-18s %14s %14s %10s\n", "Target", "Value", "Final Balance", "Success"))
	sb.WriteString(strings.Repeat("-", 60) + "\n")

	for _, res := range result.Results {
		sb.WriteString(fmt.Sprintf("%-18s %14s %14s %9s%%\n",
			tf.truncate(string(res.Request.Target), 18),
			tf.formatValue(res),
			tf.formatShort(res.FinalBalance),
			res.Summary.SuccessProbability.StringFixed(0)))
	}
	for _, target := range result.Failed {
		sb.WriteString(fmt.Sprintf("%-18s %14s\n", tf.truncate(string(target), 18), "unreachable"))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-target results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v interface{}) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + humanize.Comma(d.Abs().Round(0).IntPart())
}

func (tf *TableFormatter) formatValue(res OptimizationResult) string {
	switch {
	case res.OptimalSpending != nil:
		return tf.formatCurrency(*res.OptimalSpending)
	case res.OptimalContribution != nil:
		return tf.formatCurrency(*res.OptimalContribution)
	case res.OptimalSavings != nil:
		return tf.formatShort(*res.OptimalSavings)
	case res.OptimalRetirementAge != nil:
		return fmt.Sprintf("age %d", *res.OptimalRetirementAge)
	}
	return "-"
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return "$" + millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return "$" + thousands.StringFixed(1) + "K"
	}
	return "$" + d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
