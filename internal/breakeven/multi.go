package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// OptimizeAllTargets runs the solver for every single-input target and collects the results
func (s *Solver) OptimizeAllTargets(
	ctx context.Context,
	inputs domain.Inputs,
	constraints Constraints,
	goal OptimizationGoal,
) (*MultiDimensionalResult, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	mdResult := &MultiDimensionalResult{}

	for _, target := range AllTargets {
		req := OptimizationRequest{
			Inputs:        inputs,
			Target:        target,
			Goal:          goal,
			Constraints:   constraints,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		}

		result, err := s.Optimize(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// An unreachable target does not stop the others
			s.logger().Debugf("breakeven: %s: %v", target, err)
			mdResult.Failed = append(mdResult.Failed, target)
			continue
		}

		mdResult.Results = append(mdResult.Results, *result)
	}

	if len(mdResult.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_all_targets",
			Message:   "no target can meet the goal within its constraints",
		}
	}

	mdResult.Recommendations = s.generateRecommendations(inputs, mdResult)

	return mdResult, nil
}

// generateRecommendations turns each solved target into a plain-language suggestion
func (s *Solver) generateRecommendations(inputs domain.Inputs, result *MultiDimensionalResult) []string {
	var recommendations []string

	for _, res := range result.Results {
		switch {
		case res.OptimalSpending != nil:
			rec := fmt.Sprintf("You can spend up to $%s per year", res.OptimalSpending.StringFixed(0))
			if res.OptimalSpending.LessThan(inputs.AnnualSpending) {
				rec += fmt.Sprintf(" (currently $%s, cut $%s)", inputs.AnnualSpending.StringFixed(0),
					inputs.AnnualSpending.Sub(*res.OptimalSpending).StringFixed(0))
			}
			recommendations = append(recommendations, rec)
		case res.OptimalContribution != nil:
			rec := fmt.Sprintf("Contribute at least $%s per year", res.OptimalContribution.StringFixed(0))
			if res.OptimalContribution.GreaterThan(inputs.AnnualContribution) {
				rec += fmt.Sprintf(" (currently $%s)", inputs.AnnualContribution.StringFixed(0))
			}
			recommendations = append(recommendations, rec)
		case res.OptimalSavings != nil:
			recommendations = append(recommendations,
				fmt.Sprintf("You would need $%s saved today with no other changes", res.OptimalSavings.StringFixed(0)))
		case res.OptimalRetirementAge != nil:
			rec := fmt.Sprintf("The earliest retirement age that works is %d", *res.OptimalRetirementAge)
			if *res.OptimalRetirementAge > inputs.RetirementAge {
				rec += fmt.Sprintf(" (%d years later than planned)", *res.OptimalRetirementAge-inputs.RetirementAge)
			}
			recommendations = append(recommendations, rec)
		}
	}

	if len(result.Failed) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("No single change to %v meets the goal; combine adjustments", result.Failed))
	}

	return recommendations
}
