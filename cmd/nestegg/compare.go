package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/compare"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/transform"
)

var compareCmd = &cobra.Command{
	Use:   "compare [plan-file] [other-plan-files...]",
	Short: "Compare a plan against strategy templates or other plan files",
	Long: `Compare a base plan against alternative strategies. Alternatives are either
built-in templates applied to the base plan (--with) or other plan files.

Examples:
  nestegg compare plan.yaml --with retire_later_2yr,save_more_10pct
  nestegg compare plan.yaml --with conservative,best_case --format csv
  nestegg compare plan.yaml early.yaml frugal.toml
  nestegg compare plan.yaml --transform "add_cashflow:age=55,amount=-20000,label=Wedding"
  nestegg compare plan.yaml --transform set_return_rate:rate=5 --transform scale_spending:factor=0.9
  nestegg compare --list-templates  # Show all available templates
`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		listTemplates, _ := cmd.Flags().GetBool("list-templates")
		if listTemplates {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("plan file required for comparison (use --list-templates to see available templates)")
		}

		inputFile := args[0]
		baseName, _ := cmd.Flags().GetString("base")
		templatesStr, _ := cmd.Flags().GetString("with")
		outputFormat, _ := cmd.Flags().GetString("format")
		transformSpecs, _ := cmd.Flags().GetStringArray("transform")

		if baseName == "" {
			baseName = planName(inputFile)
		}

		plan, err := loadPlan(inputFile)
		if err != nil {
			return err
		}

		engine := newEngine()
		inputs := effectiveInputs(engine, plan)
		compareEngine := compare.NewCompareEngine(engine)
		ctx := commandContext(cmd)

		modes := 0
		for _, used := range []bool{len(args) > 1, templatesStr != "", len(transformSpecs) > 0} {
			if used {
				modes++
			}
		}
		if modes > 1 {
			return fmt.Errorf("use only one of --with, --transform or extra plan files, not both")
		}

		var comparisonSet *compare.ComparisonSet
		switch {
		case len(transformSpecs) > 0:
			alternatives, err := transformScenarios(inputs, transformSpecs)
			if err != nil {
				return err
			}
			comparisonSet, err = compareEngine.CompareScenarios(ctx, compare.Scenario{Name: baseName, Inputs: inputs}, alternatives)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

		case len(args) > 1:
			alternatives := make([]compare.Scenario, 0, len(args)-1)
			for _, path := range args[1:] {
				alt, err := loadPlan(path)
				if err != nil {
					return err
				}
				alternatives = append(alternatives, compare.Scenario{Name: planName(path), Inputs: effectiveInputs(engine, alt)})
			}
			comparisonSet, err = compareEngine.CompareScenarios(ctx, compare.Scenario{Name: baseName, Inputs: inputs}, alternatives)

		default:
			templateNames := transform.ParseTemplateList(templatesStr)
			if len(templateNames) == 0 {
				return fmt.Errorf("--with flag is required to specify templates to compare (or pass more plan files, or use --list-templates)")
			}
			comparisonSet, err = compareEngine.Compare(ctx, inputs, compare.CompareOptions{
				BaseScenarioName: baseName,
				Templates:        templateNames,
			})
		}
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}

		comparisonSet.ConfigPath = inputFile

		out := cmd.OutOrStdout()
		switch strings.ToLower(outputFormat) {
		case "csv":
			formatter := &compare.CSVFormatter{}
			s, err := formatter.Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format CSV: %w", err)
			}
			fmt.Fprint(out, s)

		case "json":
			formatter := &compare.JSONFormatter{Pretty: true}
			s, err := formatter.Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprint(out, s)

		case "compact":
			formatter := &compare.TableFormatter{}
			fmt.Fprint(out, formatter.FormatCompact(comparisonSet))

		case "table", "console", "":
			formatter := &compare.TableFormatter{}
			fmt.Fprint(out, formatter.Format(comparisonSet))

		default:
			return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
		}
		return nil
	},
}

// transformScenarios builds one alternative per transform spec ("name:key=value,...")
func transformScenarios(inputs domain.Inputs, specs []string) ([]compare.Scenario, error) {
	registry := transform.NewTransformRegistry()
	scenarios := make([]compare.Scenario, 0, len(specs))
	for _, spec := range specs {
		tf, err := registry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid --transform %q: %w", spec, err)
		}
		alt, err := transform.ApplyTransforms(inputs, []transform.InputTransform{tf})
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, compare.Scenario{Name: tf.Name(), Description: tf.Description(), Inputs: alt})
	}
	return scenarios, nil
}

// planName turns a plan path into a scenario name: plans/early.yaml -> early
func planName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func init() {
	compareCmd.Flags().String("base", "", "Display name of the base plan (default: the file name)")
	compareCmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	compareCmd.Flags().StringArray("transform", nil, "Transform spec to compare as its own scenario (repeatable, name:key=value,...)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().Bool("list-templates", false, "List all available scenario templates")

	rootCmd.AddCommand(compareCmd)
}
