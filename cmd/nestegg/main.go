package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/config"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/logging"
	"github.com/rgehrsitz/nestegg/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Persistent flags
var (
	debugMode    bool
	jsonLogs     bool
	conservative bool
)

var rootCmd = &cobra.Command{
	Use:   "nestegg",
	Short: "Retirement savings projection calculator",
	Long: `nestegg projects retirement savings year by year from today to life expectancy
and reports whether the money lasts, Coast FIRE progress, the earliest age
contributions can stop, and worst/base/best stress scenarios.

Plans are YAML, TOML or JSON files; run "nestegg example plan.yaml" for a template.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd.ErrOrStderr())
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nestegg %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.GoVersion + " " + bi.Main.Path
	}
	return ""
}

// setupLogging sends debug log records to w when --debug is set and discards them otherwise
func setupLogging(w io.Writer) *slog.Logger {
	if !debugMode {
		return logging.Setup(logging.Config{Writer: io.Discard})
	}
	return logging.Setup(logging.Config{Writer: w, Debug: true, JSON: jsonLogs})
}

// newEngine returns a projection engine that logs through the process logger when --debug is set
func newEngine() *calculation.ProjectionEngine {
	engine := calculation.NewProjectionEngine()
	if debugMode {
		engine.SetLogger(logging.NewEngineLogger(logging.L()))
	}
	return engine
}

// loadPlan reads and validates a plan file. Its assumptions preset is left
// for effectiveInputs so it is applied once, together with --conservative.
func loadPlan(path string) (config.PlanFile, error) {
	plan, err := config.NewInputParser().LoadPlan(path)
	if err != nil {
		return config.PlanFile{}, err
	}
	logging.L().Debug("plan loaded", "path", path,
		"current_age", plan.CurrentAge, "retirement_age", plan.RetirementAge, "assumptions", plan.Assumptions)
	return plan, nil
}

// useConservative reports whether --conservative or the plan's preset asks for conservative assumptions
func useConservative(plan config.PlanFile) bool {
	return conservative || plan.Conservative()
}

// effectiveInputs applies the conservative assumption set at most once
func effectiveInputs(engine *calculation.ProjectionEngine, plan config.PlanFile) domain.Inputs {
	if useConservative(plan) {
		return engine.ApplyConservativeAdjustment(plan.Inputs)
	}
	return plan.Inputs
}

var projectCmd = &cobra.Command{
	Use:   "project [plan-file]",
	Short: "Project a plan and print the full report",
	Long: `Project a plan year by year and print a report with the summary, the
projection table and the coast, stop-age and stress analyses.

Examples:
  nestegg project plan.yaml
  nestegg project plan.yaml --format markdown
  nestegg project plan.yaml --format html --output-dir reports/
  nestegg project plan.yaml --conservative --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlan(args[0])
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		outputDir, _ := cmd.Flags().GetString("output-dir")
		summaryOnly, _ := cmd.Flags().GetBool("summary-only")

		f, ok := output.GetFormatterByName(format)
		if !ok {
			return fmt.Errorf("unknown output format: %s (valid: %v)", format, output.AvailableFormatterNames())
		}

		opts := output.AllAnalyses(useConservative(plan))
		if summaryOnly {
			opts = output.ReportOptions{Conservative: useConservative(plan)}
		}
		report := output.BuildReport(newEngine(), plan.Inputs, opts)

		if outputDir != "" {
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", outputDir, err)
			}
			path, err := output.WriteFormatted(f, report, outputDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
			return nil
		}

		data, err := f.Format(report)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [plan-file]",
	Short: "Validate a plan file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadPlan(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Plan file %s is valid\n", args[0])
		return nil
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example [output-file]",
	Short: "Write an example plan file (.yaml, .toml or .json)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile := args[0]
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(outputFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", outputFile)
		}

		if err := config.NewInputParser().SaveToFile(config.ExampleInputs(), outputFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example plan saved to %s\n", outputFile)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging of each calculation step")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "log-json", false, "Write debug logs as JSON")
	rootCmd.PersistentFlags().BoolVar(&conservative, "conservative", false, "Apply conservative assumptions (5% return, 3.5% inflation, +10% spending, plan to at least 95)")

	projectCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json, markdown, html)")
	projectCmd.Flags().StringP("output-dir", "o", "", "Write the report into this directory instead of stdout")
	projectCmd.Flags().Bool("summary-only", false, "Skip the coast, stop-age and stress analyses")

	exampleCmd.Flags().Bool("force", false, "Overwrite an existing file")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
