package breakeven

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatInputs has no growth and no inflation so break-even points can be worked out by hand.
// 100k covers 26 retirement withdrawals (65-90) only while spending stays under 4,000.
func flatInputs() domain.Inputs {
	return domain.Inputs{
		CurrentAge:         60,
		RetirementAge:      65,
		CurrentSavings:     decimal.NewFromInt(100000),
		AnnualContribution: decimal.Zero,
		RateOfReturn:       decimal.Zero,
		AnnualSpending:     decimal.NewFromInt(5000),
		InflationRate:      decimal.Zero,
		LifeExpectancy:     90,
	}
}

func TestNewSolver(t *testing.T) {
	engine := calculation.NewProjectionEngine()
	options := DefaultSolverOptions()

	solver := NewSolver(engine, options)

	if solver == nil {
		t.Fatal("Expected solver to be created, got nil")
	}

	if solver.Engine != engine {
		t.Error("Expected Engine to match input")
	}

	if solver.Options != options {
		t.Error("Expected Options to match input")
	}
}

func TestNewDefaultSolver_NilEngine(t *testing.T) {
	solver := NewDefaultSolver(nil)

	if solver.Engine == nil {
		t.Fatal("Expected a projection engine to be created")
	}

	expectedOptions := DefaultSolverOptions()
	if solver.Options.Algorithm != expectedOptions.Algorithm {
		t.Error("Expected default algorithm to be applied")
	}
}

func TestSolver_MaxSpending(t *testing.T) {
	solver := NewDefaultSolver(nil)

	result, err := solver.Optimize(context.Background(), OptimizationRequest{
		Inputs: flatInputs(),
		Target: OptimizeSpending,
	})
	require.NoError(t, err)

	require.NotNil(t, result.OptimalSpending)
	assert.True(t, result.Success)
	assert.Equal(t, GoalMoneyLasts, result.Request.Goal)
	assert.True(t, result.OptimalSpending.LessThan(decimal.NewFromInt(4000)), "got %s", result.OptimalSpending)
	assert.True(t, result.OptimalSpending.GreaterThan(decimal.NewFromInt(3998)), "got %s", result.OptimalSpending)
	assert.True(t, result.Summary.RetirementGoalReached)
	assert.Nil(t, result.OptimalContribution)

	// The current plan at 5,000 runs dry
	require.NotNil(t, result.BaseSummary)
	assert.False(t, result.BaseSummary.RetirementGoalReached)
	require.NotNil(t, result.BaseSummary.AgeMoneyRunsOut)
	assert.Equal(t, 84, *result.BaseSummary.AgeMoneyRunsOut)
}

func TestSolver_MinContribution(t *testing.T) {
	inputs := flatInputs()
	inputs.CurrentSavings = decimal.Zero
	inputs.AnnualSpending = decimal.NewFromInt(4000)

	result, err := NewDefaultSolver(nil).Optimize(context.Background(), OptimizationRequest{
		Inputs: inputs,
		Target: OptimizeContribution,
	})
	require.NoError(t, err)

	// Five working years must fund 25 withdrawals of 4,000 with something left
	require.NotNil(t, result.OptimalContribution)
	assert.True(t, result.OptimalContribution.GreaterThan(decimal.NewFromInt(20000)), "got %s", result.OptimalContribution)
	assert.True(t, result.OptimalContribution.LessThanOrEqual(decimal.NewFromInt(20001)), "got %s", result.OptimalContribution)
}

func TestSolver_MinSavings(t *testing.T) {
	inputs := flatInputs()
	inputs.AnnualSpending = decimal.NewFromInt(4000)

	result, err := NewDefaultSolver(nil).Optimize(context.Background(), OptimizationRequest{
		Inputs: inputs,
		Target: OptimizeSavings,
	})
	require.NoError(t, err)

	require.NotNil(t, result.OptimalSavings)
	assert.True(t, result.OptimalSavings.GreaterThan(decimal.NewFromInt(100000)))
	assert.True(t, result.OptimalSavings.LessThanOrEqual(decimal.NewFromInt(100001)))
}

func TestSolver_RetirementAge(t *testing.T) {
	inputs := flatInputs()
	inputs.AnnualContribution = decimal.NewFromInt(10000)
	inputs.AnnualSpending = decimal.NewFromInt(10000)

	result, err := NewDefaultSolver(nil).Optimize(context.Background(), OptimizationRequest{
		Inputs: inputs,
		Target: OptimizeRetirementAge,
	})
	require.NoError(t, err)

	// Retiring at 70 empties the account at 89; 71 leaves 10k at 90
	require.NotNil(t, result.OptimalRetirementAge)
	assert.Equal(t, 71, *result.OptimalRetirementAge)
	assertDecimalEqual(t, "10000", result.FinalBalance)
	assert.Equal(t, 71-61+1, result.Iterations)
}

func TestSolver_RetirementAge_Unreachable(t *testing.T) {
	inputs := flatInputs()
	inputs.AnnualSpending = decimal.NewFromInt(10000)
	maxAge := 68

	_, err := NewDefaultSolver(nil).Optimize(context.Background(), OptimizationRequest{
		Inputs:      inputs,
		Target:      OptimizeRetirementAge,
		Constraints: Constraints{MaxRetirementAge: &maxAge},
	})

	var beErr *BreakEvenError
	require.True(t, errors.As(err, &beErr))
	assert.Equal(t, "optimize_retirement_age", beErr.Operation)
}

func TestSolver_GoalMetAtEdge(t *testing.T) {
	maxSpending := decimal.NewFromInt(3000)

	result, err := NewDefaultSolver(nil).Optimize(context.Background(), OptimizationRequest{
		Inputs:      flatInputs(),
		Target:      OptimizeSpending,
		Constraints: Constraints{MaxSpending: &maxSpending},
	})
	require.NoError(t, err)

	// 3000 is the hardest spending level searched, and it still lasts
	assertDecimalEqual(t, "3000", *result.OptimalSpending)
	assert.Equal(t, 1, result.Iterations)
	assert.True(t, result.Success)
	assert.Equal(t, "Goal met at the edge of the search range", result.ConvergenceInfo)
}

func TestSolver_GoalUnreachable(t *testing.T) {
	inputs := flatInputs()
	inputs.CurrentSavings = decimal.Zero
	inputs.AnnualSpending = decimal.NewFromInt(40000)
	maxContribution := decimal.NewFromInt(10000)

	result, err := NewDefaultSolver(nil).Optimize(context.Background(), OptimizationRequest{
		Inputs:      inputs,
		Target:      OptimizeContribution,
		Constraints: Constraints{MaxContribution: &maxContribution},
	})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be met")
}

func TestSolver_LegacyGoal(t *testing.T) {
	target := decimal.NewFromInt(50000)

	result, err := NewDefaultSolver(nil).Optimize(context.Background(), OptimizationRequest{
		Inputs:      flatInputs(),
		Target:      OptimizeSpending,
		Goal:        GoalLegacy,
		Constraints: Constraints{TargetFinalBalance: &target},
	})
	require.NoError(t, err)

	// 100k - 26 * spending >= 50k
	assert.True(t, result.OptimalSpending.LessThanOrEqual(decimal.RequireFromString("1923.08")), "got %s", result.OptimalSpending)
	assert.True(t, result.OptimalSpending.GreaterThan(decimal.NewFromInt(1922)), "got %s", result.OptimalSpending)
	assert.True(t, result.FinalBalance.GreaterThanOrEqual(target))
}

func TestSolver_LegacyGoalRequiresTarget(t *testing.T) {
	_, err := NewDefaultSolver(nil).Optimize(context.Background(), OptimizationRequest{
		Inputs: flatInputs(),
		Target: OptimizeSpending,
		Goal:   GoalLegacy,
	})
	if err == nil {
		t.Error("Expected error for legacy goal without a target balance")
	}
}

func TestSolver_MaxIterationsReached(t *testing.T) {
	result, err := NewDefaultSolver(nil).Optimize(context.Background(), OptimizationRequest{
		Inputs:        flatInputs(),
		Target:        OptimizeSpending,
		MaxIterations: 4,
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 4, result.Iterations)
	assert.Contains(t, result.ConvergenceInfo, "Max iterations")
	// Still a value that works, just not a tight one
	assert.True(t, result.Summary.RetirementGoalReached)
}

func TestSolver_Optimize_InvalidConstraints(t *testing.T) {
	minSpending := decimal.NewFromInt(10)
	maxSpending := decimal.NewFromInt(5)

	result, err := NewDefaultSolver(nil).Optimize(context.Background(), OptimizationRequest{
		Inputs:      flatInputs(),
		Target:      OptimizeSpending,
		Constraints: Constraints{MinSpending: &minSpending, MaxSpending: &maxSpending},
	})

	if err == nil {
		t.Error("Expected error for invalid constraints, got nil")
	}

	if result != nil {
		t.Error("Expected result to be nil for invalid constraints")
	}
}

func TestSolver_Optimize_UnsupportedTarget(t *testing.T) {
	result, err := NewDefaultSolver(nil).Optimize(context.Background(), OptimizationRequest{
		Inputs: flatInputs(),
		Target: "unsupported_target",
	})

	if err == nil {
		t.Error("Expected error for unsupported target, got nil")
	}

	if result != nil {
		t.Error("Expected result to be nil for unsupported target")
	}
}

func TestSolver_Optimize_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDefaultSolver(nil).Optimize(ctx, OptimizationRequest{
		Inputs: flatInputs(),
		Target: OptimizeSpending,
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled error, got %v", err)
	}
}

func TestSolver_OptimizeAllTargets(t *testing.T) {
	inputs := flatInputs()
	inputs.AnnualContribution = decimal.NewFromInt(10000)
	inputs.AnnualSpending = decimal.NewFromInt(10000)

	solver := NewDefaultSolver(nil)
	result, err := solver.OptimizeAllTargets(context.Background(), inputs, Constraints{}, GoalMoneyLasts)
	require.NoError(t, err)

	require.Len(t, result.Results, len(AllTargets))
	assert.Empty(t, result.Failed)
	assert.Len(t, result.Recommendations, len(AllTargets))
	assert.Contains(t, result.Recommendations[3], "71")

	table := (&TableFormatter{}).FormatMultiDimensional(result)
	assert.Contains(t, table, "BREAK-EVEN SUMMARY")
	assert.Contains(t, table, "age 71")
}

func TestSolver_OptimizeAllTargets_PartialFailure(t *testing.T) {
	inputs := flatInputs()
	inputs.AnnualSpending = decimal.NewFromInt(10000)
	maxContribution := decimal.NewFromInt(1000)

	result, err := NewDefaultSolver(nil).OptimizeAllTargets(context.Background(), inputs,
		Constraints{MaxContribution: &maxContribution}, GoalMoneyLasts)
	require.NoError(t, err)

	assert.Equal(t, []OptimizationTarget{OptimizeContribution}, result.Failed)
	assert.True(t, strings.Contains(result.Recommendations[len(result.Recommendations)-1], "combine adjustments"))
}

func assertDecimalEqual(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	if !actual.Equal(decimal.RequireFromString(expected)) {
		t.Errorf("expected %s, got %s", expected, actual.String())
	}
}
