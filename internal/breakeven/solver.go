package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/rgehrsitz/runway/internal/transform"
	"github.com/shopspring/decimal"
)

var (
	two = decimal.NewFromInt(2)

	// search bounds
	maxExpenses    = decimal.New(1, 18)
	maxCorpusScale = decimal.New(1, 12)
	returnStep     = decimal.NewFromInt(5)
	maxReturnShift = decimal.NewFromInt(50)
	returnRes      = decimal.RequireFromString("0.01")
)

// Solver finds the value of one input at which the runway reaches a target
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// builder turns a candidate value into the transforms that apply it.
type builder func(x decimal.Decimal) []transform.ConfigTransform

// stepper picks the next candidate while bracketing. passes reports whether
// x reached the target; ok is false once the search bound is hit.
type stepper func(x decimal.Decimal, passes bool) (next decimal.Decimal, ok bool)

type probe struct {
	x          decimal.Decimal
	cfg        *domain.CalculatorConfig
	projection domain.ProjectionResult
	passes     bool
}

// Solve runs the solver for a single target
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.MaxIterations <= 0 {
		req.MaxIterations = DefaultSolverOptions().MaxIterations
	}

	base := s.CalcEngine.RunConfig(*req.Config)

	var (
		res *Result
		err error
	)
	switch req.Target {
	case TargetExpenses:
		res, err = s.solveExpenses(ctx, req)
	case TargetCorpus:
		res, err = s.solveCorpus(ctx, req)
	case TargetReturns:
		res, err = s.solveReturns(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported target: %s", req.Target),
		}
	}
	if err != nil {
		return nil, err
	}

	res.Target = req.Target
	res.TargetYears = req.TargetYears
	res.BaseYearsLeft = base.YearsLeft
	return res, nil
}

// solveExpenses finds the highest regular expense amount that still lasts.
func (s *Solver) solveExpenses(ctx context.Context, req Request) (*Result, error) {
	build := func(x decimal.Decimal) []transform.ConfigTransform {
		return []transform.ConfigTransform{&transform.SetExpenses{Amount: x}}
	}
	step := func(x decimal.Decimal, passes bool) (decimal.Decimal, bool) {
		if !passes {
			return decimal.Zero, !x.IsZero()
		}
		if x.IsZero() {
			return decimal.NewFromInt(1), true
		}
		return x.Mul(two), x.LessThan(maxExpenses)
	}

	start := req.Config.MonthlyExpenses
	if start.IsNegative() {
		start = decimal.Zero
	}

	res, err := s.search(ctx, req, "solve_expenses", start, build, step, decimal.NewFromInt(1))
	if err != nil {
		return nil, err
	}
	res.BaseValue = req.Config.MonthlyExpenses
	res.ExpenseType = req.Config.ExpenseType
	return res, nil
}

// solveCorpus finds the smallest invested corpus that lasts, keeping the
// bucket mix. The search runs over a scale factor applied to every bucket.
func (s *Solver) solveCorpus(ctx context.Context, req Request) (*Result, error) {
	total := decimal.Zero
	for _, b := range req.Config.InvestmentBuckets {
		total = total.Add(b.Amount)
	}
	if !total.IsPositive() {
		return nil, &BreakEvenError{
			Operation: "solve_corpus",
			Message:   "configuration has no invested corpus to scale",
		}
	}

	build := func(x decimal.Decimal) []transform.ConfigTransform {
		return []transform.ConfigTransform{&transform.ScaleCorpus{Factor: x}}
	}
	step := func(x decimal.Decimal, passes bool) (decimal.Decimal, bool) {
		if passes {
			return decimal.Zero, !x.IsZero()
		}
		if x.IsZero() {
			return decimal.NewFromInt(1), true
		}
		return x.Mul(two), x.LessThan(maxCorpusScale)
	}

	// One currency unit of corpus
	resolution := decimal.NewFromInt(1).Div(total)

	res, err := s.search(ctx, req, "solve_corpus", decimal.NewFromInt(1), build, step, resolution)
	if err != nil {
		return nil, err
	}
	res.Value = total.Mul(res.Value)
	res.BaseValue = total
	return res, nil
}

// solveReturns finds the smallest shift of every expected return that lasts.
func (s *Solver) solveReturns(ctx context.Context, req Request) (*Result, error) {
	build := func(x decimal.Decimal) []transform.ConfigTransform {
		return []transform.ConfigTransform{&transform.AdjustReturns{Delta: x}}
	}
	step := func(x decimal.Decimal, passes bool) (decimal.Decimal, bool) {
		if passes {
			next := x.Sub(returnStep)
			return next, next.GreaterThanOrEqual(maxReturnShift.Neg())
		}
		next := x.Add(returnStep)
		return next, next.LessThanOrEqual(maxReturnShift)
	}

	res, err := s.search(ctx, req, "solve_returns", decimal.Zero, build, step, returnRes)
	if err != nil {
		return nil, err
	}
	res.BaseValue = decimal.Zero
	return res, nil
}

// search walks from start until the outcome flips, then bisects between the
// last passing and the first failing candidate.
func (s *Solver) search(
	ctx context.Context,
	req Request,
	op string,
	start decimal.Decimal,
	build builder,
	step stepper,
	resolution decimal.Decimal,
) (*Result, error) {
	iterations := 0
	try := func(x decimal.Decimal) (probe, error) {
		iterations++
		if err := ctx.Err(); err != nil {
			return probe{}, err
		}
		cfg, err := transform.ApplyTransforms(req.Config, build(x))
		if err != nil {
			return probe{}, &BreakEvenError{Operation: op, Message: "failed to apply transform", Cause: err}
		}
		projection := s.CalcEngine.RunConfig(*cfg)
		return probe{
			x:          x,
			cfg:        cfg,
			projection: projection,
			passes:     projection.YearsLeft.GreaterThanOrEqual(req.TargetYears),
		}, nil
	}

	last, err := try(start)
	if err != nil {
		return nil, err
	}

	// Bracket the target
	var other probe
	bracketed := false
	for iterations < req.MaxIterations {
		next, ok := step(last.x, last.passes)
		if !ok {
			break
		}
		p, err := try(next)
		if err != nil {
			return nil, err
		}
		if p.passes != last.passes {
			other = p
			bracketed = true
			break
		}
		last = p
	}

	if !bracketed {
		res := resultFrom(last)
		if last.passes {
			res.Success = true
			res.ConvergenceInfo = "Search bound reached; the goal holds across the whole range"
		} else {
			res.ConvergenceInfo = "Goal not reachable within the search bounds"
		}
		res.Iterations = iterations
		return res, nil
	}

	pass, fail := last, other
	if !pass.passes {
		pass, fail = fail, pass
	}

	for iterations < req.MaxIterations && pass.x.Sub(fail.x).Abs().GreaterThan(resolution) {
		p, err := try(pass.x.Add(fail.x).Div(two))
		if err != nil {
			return nil, err
		}
		if p.passes {
			pass = p
		} else {
			fail = p
		}
	}

	res := resultFrom(pass)
	res.Iterations = iterations
	if pass.x.Sub(fail.x).Abs().GreaterThan(resolution) {
		res.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
		return res, nil
	}
	res.Success = true
	res.ConvergenceInfo = "Binary search converged"
	return res, nil
}

func resultFrom(p probe) *Result {
	return &Result{
		Value:      p.x,
		Config:     p.cfg,
		Projection: p.projection,
	}
}
