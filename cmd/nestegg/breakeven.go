package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/breakeven"
)

var breakEvenCmd = &cobra.Command{
	Use:   "breakeven [plan-file]",
	Short: "Solve for the input value that makes a plan work",
	Long: `Search for the break-even value of one plan input: the highest spending, the
smallest contribution or starting savings, or the earliest retirement age that
still meets the goal. With --target all every input is solved independently.

Goals:
  money_lasts   the balance stays positive through life expectancy
  legacy        money lasts and the final balance reaches --target-balance

Examples:
  nestegg breakeven plan.yaml
  nestegg breakeven plan.yaml --target max_spending
  nestegg breakeven plan.yaml --target retirement_age --goal legacy --target-balance 250000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlan(args[0])
		if err != nil {
			return err
		}

		targetStr, _ := cmd.Flags().GetString("target")
		goalStr, _ := cmd.Flags().GetString("goal")
		targetBalance, _ := cmd.Flags().GetString("target-balance")
		format, _ := cmd.Flags().GetString("format")

		target, err := parseTarget(targetStr)
		if err != nil {
			return err
		}
		goal := breakeven.OptimizationGoal(strings.ToLower(goalStr))
		if goal != breakeven.GoalMoneyLasts && goal != breakeven.GoalLegacy {
			return fmt.Errorf("unknown goal: %s (valid: money_lasts, legacy)", goalStr)
		}

		engine := newEngine()
		inputs := effectiveInputs(engine, plan)
		constraints := breakeven.DefaultConstraints(inputs)
		if targetBalance != "" {
			balance, err := decimal.NewFromString(targetBalance)
			if err != nil {
				return fmt.Errorf("invalid --target-balance %q: %w", targetBalance, err)
			}
			constraints.TargetFinalBalance = &balance
		} else if goal == breakeven.GoalLegacy {
			return fmt.Errorf("--target-balance is required for the legacy goal")
		}

		solver := breakeven.NewDefaultSolver(engine)
		ctx := commandContext(cmd)
		out := cmd.OutOrStdout()

		if target == breakeven.OptimizeAll {
			result, err := solver.OptimizeAllTargets(ctx, inputs, constraints, goal)
			if err != nil {
				return fmt.Errorf("break-even analysis failed: %w", err)
			}
			if format == "json" {
				s, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(result)
				if err != nil {
					return err
				}
				fmt.Fprint(out, s)
				return nil
			}
			fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatMultiDimensional(result))
			return nil
		}

		opts := breakeven.DefaultSolverOptions()
		result, err := solver.Optimize(ctx, breakeven.OptimizationRequest{
			Inputs:        inputs,
			Target:        target,
			Goal:          goal,
			Constraints:   constraints,
			MaxIterations: opts.MaxIterations,
			Tolerance:     opts.Tolerance,
		})
		if err != nil {
			return fmt.Errorf("break-even analysis failed: %w", err)
		}
		if format == "json" {
			s, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			if err != nil {
				return err
			}
			fmt.Fprint(out, s)
			return nil
		}
		fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
		return nil
	},
}

func parseTarget(s string) (breakeven.OptimizationTarget, error) {
	target := breakeven.OptimizationTarget(strings.ToLower(s))
	if target == breakeven.OptimizeAll {
		return target, nil
	}
	for _, t := range breakeven.AllTargets {
		if t == target {
			return target, nil
		}
	}
	return "", fmt.Errorf("unknown target: %s (valid: all, max_spending, min_contribution, min_savings, retirement_age)", s)
}

func init() {
	breakEvenCmd.Flags().String("target", "all", "Input to solve for (all, max_spending, min_contribution, min_savings, retirement_age)")
	breakEvenCmd.Flags().String("goal", "money_lasts", "Goal the plan has to meet (money_lasts, legacy)")
	breakEvenCmd.Flags().String("target-balance", "", "Required final balance for the legacy goal")
	breakEvenCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")

	rootCmd.AddCommand(breakEvenCmd)
}
