package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/config"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/logging"
	"github.com/rgehrsitz/nestegg/internal/output"
)

// planValues holds the raw text of each form field
type planValues struct {
	CurrentAge         string
	RetirementAge      string
	LifeExpectancy     string
	CurrentSavings     string
	AnnualContribution string
	RateOfReturn       string
	AnnualSpending     string
	InflationRate      string
	SocialSecurity     string
	Pension            string
}

func newPlanValues(in domain.Inputs) planValues {
	v := planValues{
		CurrentAge:         strconv.Itoa(in.CurrentAge),
		RetirementAge:      strconv.Itoa(in.RetirementAge),
		LifeExpectancy:     strconv.Itoa(in.LifeExpectancy),
		CurrentSavings:     in.CurrentSavings.String(),
		AnnualContribution: in.AnnualContribution.String(),
		RateOfReturn:       in.RateOfReturn.String(),
		AnnualSpending:     in.AnnualSpending.String(),
		InflationRate:      in.InflationRate.String(),
	}
	if in.SocialSecurityIncome != nil {
		v.SocialSecurity = in.SocialSecurityIncome.String()
	}
	if in.PensionIncome != nil {
		v.Pension = in.PensionIncome.String()
	}
	return v
}

// Inputs converts the form text into plan inputs. Empty income fields mean no income.
func (v planValues) Inputs() (domain.Inputs, error) {
	var in domain.Inputs
	var err error

	ints := []struct {
		field string
		text  string
		dst   *int
	}{
		{"current age", v.CurrentAge, &in.CurrentAge},
		{"retirement age", v.RetirementAge, &in.RetirementAge},
		{"life expectancy", v.LifeExpectancy, &in.LifeExpectancy},
	}
	for _, f := range ints {
		if *f.dst, err = strconv.Atoi(strings.TrimSpace(f.text)); err != nil {
			return domain.Inputs{}, fmt.Errorf("%s: %q is not a whole number", f.field, f.text)
		}
	}

	amounts := []struct {
		field string
		text  string
		dst   *decimal.Decimal
	}{
		{"current savings", v.CurrentSavings, &in.CurrentSavings},
		{"annual contribution", v.AnnualContribution, &in.AnnualContribution},
		{"rate of return", v.RateOfReturn, &in.RateOfReturn},
		{"annual spending", v.AnnualSpending, &in.AnnualSpending},
		{"inflation rate", v.InflationRate, &in.InflationRate},
	}
	for _, f := range amounts {
		if *f.dst, err = parseAmount(f.text); err != nil {
			return domain.Inputs{}, fmt.Errorf("%s: %w", f.field, err)
		}
	}

	if in.SocialSecurityIncome, err = optionalAmount(v.SocialSecurity); err != nil {
		return domain.Inputs{}, fmt.Errorf("social security income: %w", err)
	}
	if in.PensionIncome, err = optionalAmount(v.Pension); err != nil {
		return domain.Inputs{}, fmt.Errorf("pension income: %w", err)
	}
	return in, nil
}

// parseAmount accepts plain numbers with optional $ , and % decoration
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("$", "", ",", "", "%", "", " ", "").Replace(s)
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("must not be negative")
	}
	return d, nil
}

func optionalAmount(s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := parseAmount(s)
	if err != nil {
		return nil, err
	}
	if d.IsZero() {
		return nil, nil
	}
	return &d, nil
}

func validateWhole(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return errors.New("enter a whole number")
	}
	return nil
}

func validateAmountText(s string) error {
	_, err := parseAmount(s)
	return err
}

func validateOptionalText(s string) error {
	_, err := optionalAmount(s)
	return err
}

func newPlanForm(v *planValues, savePath *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Current age").Value(&v.CurrentAge).Validate(validateWhole),
			huh.NewInput().Title("Retirement age").Value(&v.RetirementAge).Validate(validateWhole),
			huh.NewInput().Title("Life expectancy").Value(&v.LifeExpectancy).Validate(validateWhole),
		).Title("Ages"),
		huh.NewGroup(
			huh.NewInput().Title("Current savings").Placeholder("100000").Value(&v.CurrentSavings).Validate(validateAmountText),
			huh.NewInput().Title("Annual contribution").Value(&v.AnnualContribution).Validate(validateAmountText),
			huh.NewInput().Title("Annual spending in retirement").Description("Today's dollars").Value(&v.AnnualSpending).Validate(validateAmountText),
		).Title("Money"),
		huh.NewGroup(
			huh.NewInput().Title("Expected rate of return (%)").Value(&v.RateOfReturn).Validate(validateAmountText),
			huh.NewInput().Title("Inflation rate (%)").Value(&v.InflationRate).Validate(validateAmountText),
		).Title("Assumptions"),
		huh.NewGroup(
			huh.NewInput().Title("Annual Social Security income").Description("Leave empty for none").Value(&v.SocialSecurity).Validate(validateOptionalText),
			huh.NewInput().Title("Annual pension income").Description("Leave empty for none").Value(&v.Pension).Validate(validateOptionalText),
			huh.NewInput().Title("Save plan to").Description("Leave empty to skip saving").Placeholder(defaultPlanFile).Value(savePath),
		).Title("Retirement income"),
	)
}

const defaultPlanFile = "nestegg-plan.yaml"

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a plan interactively and print its report",
	Long: `Walk through a short form for every plan input, starting from an existing plan
(--from) or the example plan, then print the projection report and optionally
save the plan.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		savePath, _ := cmd.Flags().GetString("save")

		start := config.PlanFile{Inputs: config.ExampleInputs()}
		if from != "" {
			loaded, err := loadPlan(from)
			if err != nil {
				return err
			}
			start = loaded
		}

		values := newPlanValues(start.Inputs)
		if err := newPlanForm(&values, &savePath).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), "Plan cancelled")
				return nil
			}
			return err
		}

		inputs, err := values.Inputs()
		if err != nil {
			return err
		}
		inputs.OneTimeCashflows = start.OneTimeCashflows

		parser := config.NewInputParser()
		if err := parser.ValidateInputs(inputs); err != nil {
			return err
		}

		if savePath = strings.TrimSpace(savePath); savePath != "" {
			if err := parser.SaveToFile(inputs, savePath); err != nil {
				return err
			}
			logging.L().Debug("plan saved", "path", savePath)
			fmt.Fprintf(cmd.OutOrStdout(), "Plan saved to %s\n\n", savePath)
		}

		report := output.BuildReport(newEngine(), inputs, output.AllAnalyses(useConservative(start)))
		data, err := (&output.ConsoleFormatter{}).Format(report)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	planCmd.Flags().String("from", "", "Start from an existing plan file instead of the example plan")
	planCmd.Flags().String("save", "", "Save the finished plan to this file")

	rootCmd.AddCommand(planCmd)
}
