package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveAll runs the solver for every single target and summarises the
// answers. A target that cannot be solved for this configuration (for
// example returns without any bucket) is skipped.
func (s *Solver) SolveAll(
	ctx context.Context,
	config *domain.CalculatorConfig,
	targetYears decimal.Decimal,
) (*MultiResult, error) {
	check := Request{Config: config, TargetYears: targetYears}
	if err := check.Validate(); err != nil {
		return nil, err
	}

	var results []Result
	for _, target := range SingleTargets {
		result, err := s.Solve(ctx, Request{
			Config:        config,
			Target:        target,
			TargetYears:   targetYears,
			MaxIterations: s.Options.MaxIterations,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		results = append(results, *result)
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_all",
			Message:   "no target could be solved",
		}
	}

	mr := &MultiResult{
		TargetYears:   targetYears,
		BaseYearsLeft: results[0].BaseYearsLeft,
		Results:       results,
	}
	mr.Recommendations = s.generateRecommendations(mr)
	return mr, nil
}

// generateRecommendations turns the solutions into one line each
func (s *Solver) generateRecommendations(mr *MultiResult) []string {
	recommendations := []string{}
	years := mr.TargetYears.String()

	if mr.BaseYearsLeft.GreaterThanOrEqual(mr.TargetYears) {
		recommendations = append(recommendations,
			fmt.Sprintf("On track: the current plan already lasts %s years", years))
	}

	for _, r := range mr.Results {
		if !r.Success {
			recommendations = append(recommendations,
				fmt.Sprintf("%s alone cannot stretch the runway to %s years", capitalize(string(r.Target)), years))
			continue
		}

		change := r.Change()
		switch r.Target {
		case TargetExpenses:
			recommendations = append(recommendations,
				fmt.Sprintf("Keep %s expenses at or below %s to last %s years (%s%s)",
					r.ExpenseType, r.Value.StringFixed(0), years, sign(change), change.StringFixed(0)))
		case TargetCorpus:
			recommendations = append(recommendations,
				fmt.Sprintf("A corpus of %s lasts %s years (%s%s versus today)",
					r.Value.StringFixed(0), years, sign(change), change.StringFixed(0)))
		case TargetReturns:
			recommendations = append(recommendations,
				fmt.Sprintf("Returns %s%s points on every bucket last %s years (weighted return %s%%)",
					sign(change), change.StringFixed(2), years, r.Projection.WeightedReturn.StringFixed(2)))
		}
	}

	return recommendations
}

func sign(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+"
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
