package breakeven

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// Target defines which input the solver adjusts
type Target string

const (
	TargetExpenses Target = "expenses" // highest regular expenses that still reach the goal
	TargetCorpus   Target = "corpus"   // smallest invested corpus that reaches the goal
	TargetReturns  Target = "returns"  // smallest shift of every return that reaches the goal
	TargetAll      Target = "all"
)

// SingleTargets lists the targets SolveAll runs, in display order.
var SingleTargets = []Target{TargetExpenses, TargetCorpus, TargetReturns}

// ParseTarget resolves a target name, case-insensitively.
func ParseTarget(name string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(name)))
	switch t {
	case TargetExpenses, TargetCorpus, TargetReturns, TargetAll:
		return t, nil
	}
	return "", fmt.Errorf("unknown target %q (valid: expenses, corpus, returns, all)", name)
}

// Request defines the parameters for one solver run
type Request struct {
	Config        *domain.CalculatorConfig
	Target        Target
	TargetYears   decimal.Decimal // runway the solution must reach
	MaxIterations int             // Maximum projections, including the bracketing walk
}

// Validate checks the request before any projection is run.
func (r *Request) Validate() error {
	if r.Config == nil {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "configuration is required",
		}
	}
	horizon := decimal.NewFromInt(calculation.HorizonYears)
	if !r.TargetYears.IsPositive() || r.TargetYears.GreaterThanOrEqual(horizon) {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("target years must be above 0 and below %d, got %s", calculation.HorizonYears, r.TargetYears),
		}
	}
	return nil
}

// Result contains the outcome of one solver run
type Result struct {
	Target          Target          `json:"target"`
	TargetYears     decimal.Decimal `json:"targetYears"`
	Success         bool            `json:"success"`
	Iterations      int             `json:"iterations"`
	ConvergenceInfo string          `json:"convergenceInfo"`

	// Value is the solved input: a regular expense amount in ExpenseType
	// granularity, a total corpus, or a return shift in percentage points.
	Value       decimal.Decimal    `json:"value"`
	BaseValue   decimal.Decimal    `json:"baseValue"`
	ExpenseType domain.ExpenseType `json:"expenseType,omitempty"`

	Config        *domain.CalculatorConfig `json:"-"`
	Projection    domain.ProjectionResult  `json:"projection"`
	BaseYearsLeft decimal.Decimal          `json:"baseYearsLeft"`
}

// Change is the solved value minus today's value.
func (r *Result) Change() decimal.Decimal {
	return r.Value.Sub(r.BaseValue)
}

// MultiResult contains the solutions for every target
type MultiResult struct {
	TargetYears     decimal.Decimal `json:"targetYears"`
	BaseYearsLeft   decimal.Decimal `json:"baseYearsLeft"`
	Results         []Result        `json:"results"`
	Recommendations []string        `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	MaxIterations int // Maximum projections per target
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 200,
	}
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
