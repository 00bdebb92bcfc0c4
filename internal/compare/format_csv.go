package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Final Balance",
		"Peak Balance",
		"Money Lasts",
		"Age Money Runs Out",
		"Safe Withdrawal Rate",
		"Success Probability",
		"Balance Diff from Base",
		"Balance % Change",
		"Longevity Diff (Years)",
		"Success Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	runsOut := ""
	if result.AgeMoneyRunsOut != nil {
		runsOut = strconv.Itoa(*result.AgeMoneyRunsOut)
	}
	return []string{
		result.ScenarioName,
		scenarioType,
		result.FinalBalance.StringFixed(2),
		result.PeakBalance.StringFixed(2),
		strconv.FormatBool(result.MoneyLasts),
		runsOut,
		result.SafeWithdrawalRate.StringFixed(2),
		result.SuccessProbability.StringFixed(1),
		result.BalanceDiffFromBase.StringFixed(2),
		result.BalancePctFromBase.StringFixed(2),
		strconv.Itoa(result.LongevityDiff),
		result.SuccessDiffFromBase.StringFixed(1),
	}
}
