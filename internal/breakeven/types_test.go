package breakeven

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultConstraints(t *testing.T) {
	c := DefaultConstraints(flatInputs())

	if c.MaxSpending == nil || !c.MaxSpending.Equal(decimal.NewFromInt(500000)) {
		t.Errorf("Expected MaxSpending 500000, got %v", c.MaxSpending)
	}

	if c.MaxContribution == nil || !c.MaxContribution.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("Expected MaxContribution 100000, got %v", c.MaxContribution)
	}

	if c.MaxSavings == nil || !c.MaxSavings.Equal(decimal.NewFromInt(10000000)) {
		t.Errorf("Expected MaxSavings 10000000, got %v", c.MaxSavings)
	}

	if c.MinRetirementAge == nil || *c.MinRetirementAge != 61 {
		t.Errorf("Expected MinRetirementAge 61, got %v", c.MinRetirementAge)
	}

	if c.MaxRetirementAge == nil || *c.MaxRetirementAge != 90 {
		t.Errorf("Expected MaxRetirementAge 90, got %v", c.MaxRetirementAge)
	}

	if c.TargetFinalBalance != nil {
		t.Error("Expected no default target final balance")
	}

	if err := c.Validate(); err != nil {
		t.Errorf("Expected default constraints to be valid, got: %v", err)
	}
}

func TestConstraints_Validate_Ranges(t *testing.T) {
	low := decimal.NewFromInt(100)
	high := decimal.NewFromInt(10)
	negative := decimal.NewFromInt(-1)

	tests := []struct {
		name        string
		constraints Constraints
		wantField   string
	}{
		{"spending inverted", Constraints{MinSpending: &low, MaxSpending: &high}, "min_spending"},
		{"contribution inverted", Constraints{MinContribution: &low, MaxContribution: &high}, "min_contribution"},
		{"savings inverted", Constraints{MinSavings: &low, MaxSavings: &high}, "min_savings"},
		{"negative savings", Constraints{MinSavings: &negative}, "min_savings"},
		{"negative target", Constraints{TargetFinalBalance: &negative}, "target_final_balance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.constraints.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}

			if _, ok := err.(*BreakEvenError); !ok {
				t.Errorf("Expected BreakEvenError, got %T", err)
			}

			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("Expected error to mention %s, got %v", tt.wantField, err)
			}
		})
	}
}

func TestConstraints_Validate_RetirementAgeRange(t *testing.T) {
	minAge := 70
	maxAge := 62 // Less than min

	c := Constraints{
		MinRetirementAge: &minAge,
		MaxRetirementAge: &maxAge,
	}

	err := c.Validate()
	if err == nil {
		t.Error("Expected error for invalid retirement age range")
	}
}

func TestConstraints_Validate_Empty(t *testing.T) {
	c := Constraints{}

	if err := c.Validate(); err != nil {
		t.Errorf("Expected no error for empty constraints, got: %v", err)
	}
}

func TestDefaultSolverOptions(t *testing.T) {
	opts := DefaultSolverOptions()

	if opts.Algorithm != "bisection" {
		t.Errorf("Expected algorithm 'bisection', got %s", opts.Algorithm)
	}

	expectedTol := decimal.NewFromInt(1)
	if !opts.Tolerance.Equal(expectedTol) {
		t.Errorf("Expected tolerance 1, got %s", opts.Tolerance.String())
	}

	if opts.MaxIterations != 100 {
		t.Errorf("Expected max iterations 100, got %d", opts.MaxIterations)
	}
}

func TestBreakEvenError(t *testing.T) {
	// Test error without cause
	err := &BreakEvenError{
		Operation: "test_op",
		Message:   "test message",
	}

	expected := "test_op: test message"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}

	// Test error with cause
	causeErr := &BreakEvenError{
		Operation: "cause_op",
		Message:   "cause message",
	}

	err = &BreakEvenError{
		Operation: "test_op",
		Message:   "test message",
		Cause:     causeErr,
	}

	expectedWithCause := "test_op: test message: cause_op: cause message"
	if err.Error() != expectedWithCause {
		t.Errorf("Expected error message '%s', got '%s'", expectedWithCause, err.Error())
	}

	// Test unwrap
	if err.Unwrap() != causeErr {
		t.Error("Unwrap() should return the cause error")
	}
}

func TestTableFormatter_Format(t *testing.T) {
	spending := decimal.RequireFromString("3999.42")
	age := 84
	result := &OptimizationResult{
		Request:         OptimizationRequest{Target: OptimizeSpending, Goal: GoalMoneyLasts},
		Success:         true,
		Iterations:      21,
		ConvergenceInfo: "Bisection converged within $1",
		OptimalSpending: &spending,
		FinalBalance:    decimal.Zero,
		AgeMoneyRunsOut: &age,
	}

	out := (&TableFormatter{}).Format(result)

	for _, want := range []string{
		"BREAK-EVEN RESULTS",
		"max_spending",
		"✓ Converged",
		"Maximum Annual Spending:     $3,999",
		"Money Runs Out At:    84",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	age := 67
	result := &OptimizationResult{
		Request:              OptimizationRequest{Target: OptimizeRetirementAge},
		Success:              true,
		OptimalRetirementAge: &age,
	}

	out, err := (&JSONFormatter{}).Format(result)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	if !strings.Contains(out, `"optimal_retirement_age":67`) {
		t.Errorf("Expected compact JSON with the optimal age, got %s", out)
	}
	if strings.Contains(out, "optimal_spending") {
		t.Errorf("Expected unset values to be omitted, got %s", out)
	}
}
