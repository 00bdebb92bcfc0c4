package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/transform"
	"github.com/shopspring/decimal"
)

var decimalTwo = decimal.NewFromInt(2)

// Solver finds the input values at which a plan just meets its goal
type Solver struct {
	Engine  *calculation.ProjectionEngine
	Options SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(engine *calculation.ProjectionEngine, options SolverOptions) *Solver {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *calculation.ProjectionEngine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	// Apply defaults
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	if req.Goal == "" {
		req.Goal = GoalMoneyLasts
	}

	switch req.Goal {
	case GoalMoneyLasts:
	case GoalLegacy:
		if req.Constraints.TargetFinalBalance == nil {
			return nil, &BreakEvenError{
				Operation: "optimize",
				Message:   "legacy goal requires target_final_balance",
			}
		}
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization goal: %s", req.Goal),
		}
	}

	defaults := DefaultConstraints(req.Inputs)

	switch req.Target {
	case OptimizeSpending:
		return s.bisect(ctx, req, dollarSearch{
			operation:  "optimize_spending",
			min:        valueOr(req.Constraints.MinSpending, defaults.MinSpending),
			max:        valueOr(req.Constraints.MaxSpending, defaults.MaxSpending),
			increasing: false,
			transform: func(v decimal.Decimal) transform.InputTransform {
				return &transform.SetSpending{Amount: v}
			},
			record: func(r *OptimizationResult, v decimal.Decimal) { r.OptimalSpending = &v },
		})
	case OptimizeContribution:
		return s.bisect(ctx, req, dollarSearch{
			operation:  "optimize_contribution",
			min:        valueOr(req.Constraints.MinContribution, defaults.MinContribution),
			max:        valueOr(req.Constraints.MaxContribution, defaults.MaxContribution),
			increasing: true,
			transform: func(v decimal.Decimal) transform.InputTransform {
				return &transform.SetContribution{Amount: v}
			},
			record: func(r *OptimizationResult, v decimal.Decimal) { r.OptimalContribution = &v },
		})
	case OptimizeSavings:
		return s.bisect(ctx, req, dollarSearch{
			operation:  "optimize_savings",
			min:        valueOr(req.Constraints.MinSavings, defaults.MinSavings),
			max:        valueOr(req.Constraints.MaxSavings, defaults.MaxSavings),
			increasing: true,
			transform: func(v decimal.Decimal) transform.InputTransform {
				return &transform.SetSavings{Amount: v}
			},
			record: func(r *OptimizationResult, v decimal.Decimal) { r.OptimalSavings = &v },
		})
	case OptimizeRetirementAge:
		return s.optimizeRetirementAge(ctx, req, defaults)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// dollarSearch describes one monotone dollar input. increasing is true when a
// larger value makes the goal easier to meet.
type dollarSearch struct {
	operation  string
	min, max   decimal.Decimal
	increasing bool
	transform  func(decimal.Decimal) transform.InputTransform
	record     func(*OptimizationResult, decimal.Decimal)
}

// bisect narrows the gap between a value that meets the goal and one that does
// not until it is within tolerance. The returned value always meets the goal.
func (s *Solver) bisect(ctx context.Context, req OptimizationRequest, search dollarSearch) (*OptimizationResult, error) {
	good, bad := search.max, search.min
	if !search.increasing {
		good, bad = search.min, search.max
	}

	iterations := 0

	// The hardest end of the range already meets the goal
	iterations++
	results, ok, err := s.evaluate(ctx, req, search.transform(bad))
	if err != nil {
		return nil, s.wrap(search.operation, err)
	}
	if ok {
		result := s.buildResult(req, results, iterations)
		search.record(result, bad)
		result.Success = true
		result.ConvergenceInfo = "Goal met at the edge of the search range"
		return result, nil
	}

	iterations++
	goodResults, ok, err := s.evaluate(ctx, req, search.transform(good))
	if err != nil {
		return nil, s.wrap(search.operation, err)
	}
	if !ok {
		return nil, &BreakEvenError{
			Operation: search.operation,
			Message: fmt.Sprintf("goal cannot be met anywhere between $%s and $%s",
				search.min.StringFixed(0), search.max.StringFixed(0)),
		}
	}

	for good.Sub(bad).Abs().GreaterThan(req.Tolerance) {
		if iterations >= req.MaxIterations {
			result := s.buildResult(req, goodResults, iterations)
			search.record(result, good)
			result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
			return result, nil
		}
		iterations++

		mid := good.Add(bad).Div(decimalTwo)
		midResults, ok, err := s.evaluate(ctx, req, search.transform(mid))
		if err != nil {
			return nil, s.wrap(search.operation, err)
		}
		if ok {
			good, goodResults = mid, midResults
		} else {
			bad = mid
		}
	}

	result := s.buildResult(req, goodResults, iterations)
	search.record(result, good)
	result.Success = true
	result.ConvergenceInfo = fmt.Sprintf("Bisection converged within $%s", req.Tolerance.String())

	s.logger().Debugf("breakeven: %s converged after %d iterations", search.operation, iterations)
	return result, nil
}

// optimizeRetirementAge finds the earliest retirement age that meets the goal
func (s *Solver) optimizeRetirementAge(ctx context.Context, req OptimizationRequest, defaults Constraints) (*OptimizationResult, error) {
	minAge := *defaults.MinRetirementAge
	maxAge := *defaults.MaxRetirementAge
	if req.Constraints.MinRetirementAge != nil && *req.Constraints.MinRetirementAge > minAge {
		minAge = *req.Constraints.MinRetirementAge
	}
	if req.Constraints.MaxRetirementAge != nil {
		maxAge = *req.Constraints.MaxRetirementAge
	}

	iterations := 0
	for age := minAge; age <= maxAge && iterations < req.MaxIterations; age++ {
		iterations++

		results, ok, err := s.evaluate(ctx, req, &transform.SetRetirementAge{Age: age})
		if err != nil {
			return nil, s.wrap("optimize_retirement_age", err)
		}
		if !ok {
			continue
		}

		result := s.buildResult(req, results, iterations)
		found := age
		result.OptimalRetirementAge = &found
		result.Success = true
		result.ConvergenceInfo = fmt.Sprintf("Evaluated %d retirement ages", iterations)
		return result, nil
	}

	return nil, &BreakEvenError{
		Operation: "optimize_retirement_age",
		Message:   fmt.Sprintf("no retirement age between %d and %d meets the goal", minAge, maxAge),
	}
}

// evaluate applies one transform, projects the plan and reports whether it meets the goal
func (s *Solver) evaluate(ctx context.Context, req OptimizationRequest, tr transform.InputTransform) (domain.Results, bool, error) {
	select {
	case <-ctx.Done():
		return domain.Results{}, false, ctx.Err()
	default:
	}

	modified, err := transform.ApplyTransforms(req.Inputs, []transform.InputTransform{tr})
	if err != nil {
		return domain.Results{}, false, err
	}

	results := s.engine().Project(modified)
	return results, meetsGoal(req, results.Summary), nil
}

func meetsGoal(req OptimizationRequest, summary domain.Summary) bool {
	if !summary.RetirementGoalReached {
		return false
	}
	if req.Goal == GoalLegacy {
		return summary.FinalBalance.GreaterThanOrEqual(*req.Constraints.TargetFinalBalance)
	}
	return true
}

// buildResult creates an optimization result from a projection, compared against the unmodified plan
func (s *Solver) buildResult(req OptimizationRequest, results domain.Results, iterations int) *OptimizationResult {
	base := s.engine().Project(req.Inputs).Summary

	return &OptimizationResult{
		Request:             req,
		Iterations:          iterations,
		Summary:             results.Summary,
		FinalBalance:        results.Summary.FinalBalance,
		AgeMoneyRunsOut:     results.Summary.AgeMoneyRunsOut,
		BaseSummary:         &base,
		BalanceDiffFromBase: results.Summary.FinalBalance.Sub(base.FinalBalance),
	}
}

func (s *Solver) engine() *calculation.ProjectionEngine {
	if s.Engine == nil {
		s.Engine = calculation.NewProjectionEngine()
	}
	return s.Engine
}

func (s *Solver) logger() calculation.Logger {
	if l := s.engine().Logger; l != nil {
		return l
	}
	return calculation.NopLogger{}
}

func (s *Solver) wrap(operation string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &BreakEvenError{
		Operation: operation,
		Message:   "failed to evaluate plan",
		Cause:     err,
	}
}

func valueOr(v, fallback *decimal.Decimal) decimal.Decimal {
	if v != nil {
		return *v
	}
	return *fallback
}
