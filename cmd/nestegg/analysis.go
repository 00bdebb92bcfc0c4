package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/output"
)

// writeJSON encodes v indented to w
func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// jsonOutput reports whether --format asks for JSON; anything else prints text
func jsonOutput(cmd *cobra.Command) (bool, error) {
	format, _ := cmd.Flags().GetString("format")
	switch output.NormalizeFormatName(format) {
	case "json":
		return true, nil
	case "console", "":
		return false, nil
	default:
		return false, fmt.Errorf("unknown output format: %s (valid: console, json)", format)
	}
}

var coastCmd = &cobra.Command{
	Use:   "coast [plan-file]",
	Short: "Check Coast FIRE status",
	Long: `Report whether current savings, left to grow with no further contributions,
reach the FIRE number (25x annual spending) by the retirement age.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlan(args[0])
		if err != nil {
			return err
		}
		asJSON, err := jsonOutput(cmd)
		if err != nil {
			return err
		}

		engine := newEngine()
		inputs := effectiveInputs(engine, plan)
		coast := engine.CoastStatus(inputs)

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), coast)
		}
		printCoast(cmd.OutOrStdout(), inputs, coast)
		return nil
	},
}

func printCoast(w io.Writer, inputs domain.Inputs, coast domain.CoastResult) {
	fmt.Fprintln(w, "COAST FIRE STATUS")
	fmt.Fprintln(w, strings.Repeat("=", 40))
	fmt.Fprintf(w, "FIRE Number:       %s\n", output.FormatCurrency(coast.FireNumber))
	fmt.Fprintf(w, "Coast Number:      %s\n", output.FormatCurrency(coast.CoastNumber))
	fmt.Fprintf(w, "Current Savings:   %s\n", output.FormatCurrency(coast.CurrentSavings))
	fmt.Fprintf(w, "Progress:          %s\n", output.FormatPercent(coast.PercentToCoast))
	if coast.IsCoasting {
		fmt.Fprintf(w, "Surplus:           %s\n\n", output.FormatCurrency(coast.Gap.Neg()))
		fmt.Fprintf(w, "✓ Coasting: savings alone reach the FIRE number by age %d\n", inputs.RetirementAge)
	} else {
		fmt.Fprintf(w, "Gap:               %s\n\n", output.FormatCurrency(coast.Gap))
		fmt.Fprintln(w, "✗ Not coasting yet: keep contributing")
	}
}

var stopAgeCmd = &cobra.Command{
	Use:   "stop-age [plan-file]",
	Short: "Find the earliest age contributions can stop",
	Long: `Search ages from today through the retirement age for the first age at which
contributions can stop and the plan still lasts through life expectancy.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlan(args[0])
		if err != nil {
			return err
		}
		asJSON, err := jsonOutput(cmd)
		if err != nil {
			return err
		}

		engine := newEngine()
		inputs := effectiveInputs(engine, plan)
		result := engine.FindStopAge(inputs)

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), result)
		}
		printStopAge(cmd.OutOrStdout(), inputs, result)
		return nil
	},
}

func printStopAge(w io.Writer, inputs domain.Inputs, result domain.StopAgeResult) {
	fmt.Fprintln(w, "EARLIEST CONTRIBUTION STOP AGE")
	fmt.Fprintln(w, strings.Repeat("=", 40))
	if !result.Found {
		fmt.Fprintf(w, "✗ Contributing every year through %d still does not fund the plan\n", inputs.RetirementAge)
		return
	}

	fmt.Fprintf(w, "✓ Contributions can stop at age %d\n", result.StopAge)
	if years := inputs.RetirementAge - result.StopAge; years > 0 {
		saved := inputs.AnnualContribution.Mul(decimal.NewFromInt(int64(years)))
		fmt.Fprintf(w, "  %d years before retirement, %s in contributions not needed\n", years, output.FormatCurrency(saved))
	}
	if result.Hypothetical != nil {
		fmt.Fprintf(w, "  Balance at stop age: %s\n", output.FormatCurrency(result.Hypothetical.CurrentSavings))
	}
}

var stressCmd = &cobra.Command{
	Use:   "stress [plan-file]",
	Short: "Run worst, base and best case projections",
	Long: `Project the plan under three independent assumption sets:
  Worst Case  4% return, 5% inflation, plan to 95, +10% spending
  Base Case   the plan as written
  Best Case   10% return, 2% inflation`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlan(args[0])
		if err != nil {
			return err
		}
		asJSON, err := jsonOutput(cmd)
		if err != nil {
			return err
		}

		engine := newEngine()
		stress := engine.StressScenarios(effectiveInputs(engine, plan))

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), stress)
		}
		printStress(cmd.OutOrStdout(), stress)
		return nil
	},
}

func printStress(w io.Writer, stress domain.StressScenarios) {
	fmt.Fprintln(w, "STRESS TEST")
	fmt.Fprintln(w, strings.Repeat("=", 64))
	fmt.Fprintf(w, "%-12s %16s %10s %22s\n", "Scenario", "Final Balance", "Success", "Outcome")
	fmt.Fprintln(w, strings.Repeat("-", 64))
	for _, s := range stress.Named() {
		outcome := "Lasts through plan"
		if age := s.Results.Summary.AgeMoneyRunsOut; age != nil {
			outcome = fmt.Sprintf("Runs out at %d", *age)
		}
		fmt.Fprintf(w, "%-12s %16s %10s %22s\n",
			s.Name,
			output.FormatCurrency(s.Results.Summary.FinalBalance),
			output.FormatPercent(s.Results.Summary.SuccessProbability),
			outcome)
	}
}

func init() {
	for _, c := range []*cobra.Command{coastCmd, stopAgeCmd, stressCmd} {
		c.Flags().StringP("format", "f", "console", "Output format (console, json)")
		rootCmd.AddCommand(c)
	}
}
