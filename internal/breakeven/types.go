package breakeven

import (
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines which input the solver moves
type OptimizationTarget string

const (
	OptimizeSpending      OptimizationTarget = "max_spending"
	OptimizeContribution  OptimizationTarget = "min_contribution"
	OptimizeSavings       OptimizationTarget = "min_savings"
	OptimizeRetirementAge OptimizationTarget = "retirement_age"
	OptimizeAll           OptimizationTarget = "all"
)

// OptimizationGoal defines what outcome a plan has to achieve
type OptimizationGoal string

const (
	GoalMoneyLasts OptimizationGoal = "money_lasts" // Balance stays positive through life expectancy
	GoalLegacy     OptimizationGoal = "legacy"      // Money lasts and the final balance meets TargetFinalBalance
)

// AllTargets lists the single-input targets in the order they are reported
var AllTargets = []OptimizationTarget{
	OptimizeSpending,
	OptimizeContribution,
	OptimizeSavings,
	OptimizeRetirementAge,
}

// Constraints define bounds for the searched inputs
type Constraints struct {
	MinSpending *decimal.Decimal `json:"minSpending,omitempty"`
	MaxSpending *decimal.Decimal `json:"maxSpending,omitempty"`

	MinContribution *decimal.Decimal `json:"minContribution,omitempty"`
	MaxContribution *decimal.Decimal `json:"maxContribution,omitempty"`

	MinSavings *decimal.Decimal `json:"minSavings,omitempty"`
	MaxSavings *decimal.Decimal `json:"maxSavings,omitempty"`

	MinRetirementAge *int `json:"minRetirementAge,omitempty"`
	MaxRetirementAge *int `json:"maxRetirementAge,omitempty"`

	// Required balance at life expectancy for the legacy goal
	TargetFinalBalance *decimal.Decimal `json:"targetFinalBalance,omitempty"`
}

// DefaultConstraints returns the input ranges the planner accepts for a plan
func DefaultConstraints(inputs domain.Inputs) Constraints {
	minSpending := decimal.Zero
	maxSpending := decimal.NewFromInt(500000)
	minContribution := decimal.Zero
	maxContribution := decimal.NewFromInt(100000)
	minSavings := decimal.Zero
	maxSavings := decimal.NewFromInt(10000000)
	minAge := inputs.CurrentAge + 1
	maxAge := inputs.LifeExpectancy

	return Constraints{
		MinSpending:      &minSpending,
		MaxSpending:      &maxSpending,
		MinContribution:  &minContribution,
		MaxContribution:  &maxContribution,
		MinSavings:       &minSavings,
		MaxSavings:       &maxSavings,
		MinRetirementAge: &minAge,
		MaxRetirementAge: &maxAge,
	}
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	Inputs        domain.Inputs      `json:"inputs"`
	Target        OptimizationTarget `json:"target"`
	Goal          OptimizationGoal   `json:"goal"`
	Constraints   Constraints        `json:"constraints"`
	MaxIterations int                `json:"maxIterations"` // Maximum solver iterations
	Tolerance     decimal.Decimal    `json:"tolerance"`      // Convergence tolerance for bisection, in dollars
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"request"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergenceInfo"`

	OptimalSpending      *decimal.Decimal `json:"optimalSpending,omitempty"`
	OptimalContribution  *decimal.Decimal `json:"optimalContribution,omitempty"`
	OptimalSavings       *decimal.Decimal `json:"optimalSavings,omitempty"`
	OptimalRetirementAge *int             `json:"optimalRetirementAge,omitempty"`

	// Results at the optimal value
	Summary         domain.Summary  `json:"summary"`
	FinalBalance    decimal.Decimal `json:"finalBalance"`
	AgeMoneyRunsOut *int            `json:"ageMoneyRunsOut,omitempty"`

	BaseSummary         *domain.Summary `json:"baseSummary,omitempty"`
	BalanceDiffFromBase decimal.Decimal `json:"balanceDiffFromBase"`
}

// MultiDimensionalResult contains results when optimizing every target
type MultiDimensionalResult struct {
	Results         []OptimizationResult `json:"results"`
	Failed          []OptimizationTarget `json:"failed,omitempty"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Algorithm     string          // "bisection" for dollar targets; ages are always grid searched
	Tolerance     decimal.Decimal // Convergence tolerance
	MaxIterations int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Algorithm:     "bisection",
		Tolerance:     decimal.NewFromInt(1), // $1 tolerance
		MaxIterations: 100,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if err := validateRange("spending", c.MinSpending, c.MaxSpending); err != nil {
		return err
	}
	if err := validateRange("contribution", c.MinContribution, c.MaxContribution); err != nil {
		return err
	}
	if err := validateRange("savings", c.MinSavings, c.MaxSavings); err != nil {
		return err
	}

	if c.MinRetirementAge != nil && c.MaxRetirementAge != nil && *c.MinRetirementAge > *c.MaxRetirementAge {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_retirement_age cannot be greater than max_retirement_age",
		}
	}

	if c.TargetFinalBalance != nil && c.TargetFinalBalance.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "target_final_balance cannot be negative",
		}
	}

	return nil
}

func validateRange(name string, min, max *decimal.Decimal) error {
	if min != nil && min.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_" + name + " cannot be negative",
		}
	}
	if min != nil && max != nil && min.GreaterThan(*max) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_" + name + " cannot be greater than max_" + name,
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
