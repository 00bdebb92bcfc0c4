package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) (string, error) {
	if analysis == nil || len(analysis.Points) == 0 {
		return "", fmt.Errorf("no results in analysis")
	}

	var buf bytes.Buffer
	param := analysis.Parameter

	fmt.Fprintf(&buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
	fmt.Fprintln(&buf, strings.Repeat("=", 65))
	fmt.Fprintf(&buf, "Base Case: %s\n", formatParamValue(analysis.BaseValue, param.Unit))
	fmt.Fprintf(&buf, "Range: %s to %s (%d steps)\n",
		formatParamValue(param.MinValue, param.Unit),
		formatParamValue(param.MaxValue, param.Unit),
		param.Steps)
	if param.Description != "" {
		fmt.Fprintf(&buf, "Description: %s\n", param.Description)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-18s %15s %8s %10s %10s\n", "Value", "Final Balance", "Goal", "Success", "Runs Out")
	fmt.Fprintln(&buf, strings.Repeat("-", 65))
	for _, p := range analysis.Points {
		value := formatParamValue(p.Value, param.Unit)
		if p.Value.Equal(analysis.BaseValue) {
			value += " ← BASE"
		}
		goal := "✗"
		if p.GoalReached {
			goal = "✓"
		}
		runsOut := "-"
		if p.AgeMoneyRunsOut != nil {
			runsOut = strconv.Itoa(*p.AgeMoneyRunsOut)
		}
		fmt.Fprintf(&buf, "%-18s %15s %8s %10s %10s\n",
			value, FormatCurrency(p.FinalBalance), goal, FormatPercent(p.SuccessProbability), runsOut)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "SUMMARY:")
	if analysis.Summary.BreakEvenValue != nil {
		fmt.Fprintf(&buf, "  Break-even value: %s\n", formatParamValue(*analysis.Summary.BreakEvenValue, param.Unit))
	} else {
		fmt.Fprintln(&buf, "  Break-even value: none in range")
	}
	fmt.Fprintf(&buf, "  Balance spread:   %s of base case\n", FormatPercent(analysis.Summary.SpreadPercent))
	fmt.Fprintf(&buf, "  Risk level:       %s\n", analysis.Summary.RiskLevel)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "RECOMMENDATIONS:")
	for _, rec := range analysis.GenerateRecommendations() {
		fmt.Fprintf(&buf, "  • %s\n", rec)
	}

	return buf.String(), nil
}

// SensitivityCSVFormatter writes one row per swept value
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) (string, error) {
	if analysis == nil {
		return "", fmt.Errorf("no analysis to format")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"Parameter", "Value", "IsBase", "FinalBalance", "GoalReached", "AgeMoneyRunsOut", "SuccessProbability", "SafeWithdrawalRate"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, p := range analysis.Points {
		runsOut := ""
		if p.AgeMoneyRunsOut != nil {
			runsOut = strconv.Itoa(*p.AgeMoneyRunsOut)
		}
		row := []string{
			analysis.Parameter.Name,
			p.Value.String(),
			strconv.FormatBool(p.Value.Equal(analysis.BaseValue)),
			p.FinalBalance.StringFixed(2),
			strconv.FormatBool(p.GoalReached),
			runsOut,
			p.SuccessProbability.StringFixed(1),
			p.SafeWithdrawalRate.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SensitivityJSONFormatter encodes the analysis and its recommendations
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) (string, error) {
	if analysis == nil {
		return "", fmt.Errorf("no analysis to format")
	}

	payload := struct {
		*domain.SensitivityAnalysis
		Recommendations []string `json:"recommendations"`
	}{analysis, analysis.GenerateRecommendations()}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format name
func NewSensitivityFormatter(format string) SensitivityFormatter {
	switch NormalizeFormatName(format) {
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{}
	}
}

func formatParamValue(v decimal.Decimal, unit string) string {
	switch unit {
	case "percent":
		return FormatPercent(v)
	case "dollars":
		return FormatCurrency(v)
	case "years":
		return "age " + v.Round(0).String()
	default:
		return v.String()
	}
}
