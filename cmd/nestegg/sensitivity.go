package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/output"
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [plan-file]",
	Short: "Sweep one or more inputs to see how robust a plan is",
	Long: `Perform sensitivity analysis to test how robust a plan is to changes in one input.
Rates are percentages (7 means 7%).

Parameters: return_rate, inflation_rate, annual_spending, retirement_age

Examples:
  # Single parameter sweep over its default range
  nestegg sensitivity plan.yaml --parameter inflation_rate

  # Custom range and steps
  nestegg sensitivity plan.yaml --parameter return_rate:3-9:7

  # Every common parameter
  nestegg sensitivity plan.yaml --parameter-set common --output csv`,
	Args: cobra.ExactArgs(1),
	RunE: runSensitivityAnalysis,
}

var (
	sensitivityParameter    []string
	sensitivitySteps        int
	sensitivityOutputFormat string
	sensitivityParameterSet string
)

func init() {
	sensitivityCmd.Flags().StringSliceVar(&sensitivityParameter, "parameter", []string{}, "Parameter to analyze (format: name or name:min-max:steps)")
	sensitivityCmd.Flags().IntVar(&sensitivitySteps, "steps", 0, "Override the number of steps for every parameter")
	sensitivityCmd.Flags().StringVar(&sensitivityOutputFormat, "output", "table", "Output format (table, csv, json)")
	sensitivityCmd.Flags().StringVar(&sensitivityParameterSet, "parameter-set", "", "Use predefined parameter set (common)")

	rootCmd.AddCommand(sensitivityCmd)
}

func runSensitivityAnalysis(cmd *cobra.Command, args []string) error {
	plan, err := loadPlan(args[0])
	if err != nil {
		return err
	}

	var parameters []domain.SensitivityParameter
	switch {
	case sensitivityParameterSet != "":
		parameters, err = getPredefinedParameterSet(sensitivityParameterSet)
	case len(sensitivityParameter) > 0:
		parameters, err = parseCustomParameters(sensitivityParameter)
	default:
		err = fmt.Errorf("must specify either --parameter or --parameter-set")
	}
	if err != nil {
		return err
	}

	if sensitivitySteps > 0 {
		for i := range parameters {
			parameters[i].Steps = sensitivitySteps
		}
	}

	engine := newEngine()
	inputs := effectiveInputs(engine, plan)
	analyzer := calculation.NewSensitivityAnalyzer(engine)
	formatter := output.NewSensitivityFormatter(sensitivityOutputFormat)

	for i, param := range parameters {
		analysis, err := analyzer.AnalyzeSingleParameter(commandContext(cmd), inputs, param)
		if err != nil {
			return fmt.Errorf("sensitivity analysis of %s failed: %w", param.Name, err)
		}

		out, err := formatter.FormatSensitivityAnalysis(analysis)
		if err != nil {
			return fmt.Errorf("error formatting output: %w", err)
		}
		if i > 0 && formatter.Name() == "console" {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
	}
	return nil
}

func getPredefinedParameterSet(setName string) ([]domain.SensitivityParameter, error) {
	switch setName {
	case "common":
		return domain.GetCommonParameters(), nil
	default:
		return nil, fmt.Errorf("unknown parameter set: %s (valid: common)", setName)
	}
}

func parseCustomParameters(paramStrings []string) ([]domain.SensitivityParameter, error) {
	parameters := make([]domain.SensitivityParameter, 0, len(paramStrings))

	for _, paramStr := range paramStrings {
		param, err := parseParameterString(paramStr)
		if err != nil {
			return nil, fmt.Errorf("error parsing parameter '%s': %w", paramStr, err)
		}
		parameters = append(parameters, param)
	}

	return parameters, nil
}

// parseParameterString accepts "name" for the default range or "name:min-max:steps"
func parseParameterString(paramStr string) (domain.SensitivityParameter, error) {
	parts := strings.Split(paramStr, ":")

	param, ok := domain.LookupParameter(parts[0])
	if !ok {
		return domain.SensitivityParameter{}, fmt.Errorf("unknown parameter %s", parts[0])
	}

	switch len(parts) {
	case 1:
		return param, nil
	case 3:
	default:
		return domain.SensitivityParameter{}, fmt.Errorf("invalid parameter format: %s (expected name or name:min-max:steps)", paramStr)
	}

	minValue, maxValue, err := parseRange(parts[1])
	if err != nil {
		return domain.SensitivityParameter{}, err
	}

	steps, err := strconv.Atoi(parts[2])
	if err != nil || steps < 1 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid steps value: %s", parts[2])
	}

	param.MinValue = minValue
	param.MaxValue = maxValue
	param.Steps = steps
	return param, nil
}

func parseRange(rangeStr string) (decimal.Decimal, decimal.Decimal, error) {
	minMax := strings.Split(rangeStr, "-")
	if len(minMax) != 2 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid range format: %s (expected min-max)", rangeStr)
	}

	minValue, err := decimal.NewFromString(strings.TrimSpace(minMax[0]))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid min value: %w", err)
	}

	maxValue, err := decimal.NewFromString(strings.TrimSpace(minMax[1]))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid max value: %w", err)
	}

	if minValue.GreaterThan(maxValue) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("min %s is greater than max %s", minValue, maxValue)
	}
	return minValue, maxValue, nil
}

// commandContext returns the command's context, or Background when run outside Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
