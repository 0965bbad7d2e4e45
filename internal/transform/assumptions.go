package transform

import (
	"fmt"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

var maxRateShift = decimal.NewFromInt(50)

// AdjustInflation shifts the general inflation assumption by a number of
// percentage points. One-time expenses keep their own rates.
type AdjustInflation struct {
	Delta decimal.Decimal // percentage points, may be negative
}

func (ai *AdjustInflation) Name() string {
	return "adjust_inflation"
}

func (ai *AdjustInflation) Description() string {
	return fmt.Sprintf("Shift inflation by %s percentage points", signed(ai.Delta))
}

func (ai *AdjustInflation) Validate(base *domain.CalculatorConfig) error {
	if ai.Delta.Abs().GreaterThan(maxRateShift) {
		return NewTransformError(ai.Name(), "validate", fmt.Sprintf("delta must be within ±%s points, got %s", maxRateShift, ai.Delta), nil)
	}
	return requireBase(ai.Name(), base)
}

func (ai *AdjustInflation) Apply(base *domain.CalculatorConfig) (*domain.CalculatorConfig, error) {
	modified := base.DeepCopy()
	modified.Inflation = modified.Inflation.Add(ai.Delta)
	return modified, nil
}

// AdjustReturns shifts the expected return of every bucket (and every
// contribution) by a number of percentage points.
type AdjustReturns struct {
	Delta decimal.Decimal
}

func (ar *AdjustReturns) Name() string {
	return "adjust_returns"
}

func (ar *AdjustReturns) Description() string {
	return fmt.Sprintf("Shift every expected return by %s percentage points", signed(ar.Delta))
}

func (ar *AdjustReturns) Validate(base *domain.CalculatorConfig) error {
	if ar.Delta.Abs().GreaterThan(maxRateShift) {
		return NewTransformError(ar.Name(), "validate", fmt.Sprintf("delta must be within ±%s points, got %s", maxRateShift, ar.Delta), nil)
	}
	if err := requireBase(ar.Name(), base); err != nil {
		return err
	}
	if len(base.InvestmentBuckets) == 0 && len(base.Contributions) == 0 {
		return NewTransformError(ar.Name(), "validate", "configuration has no investment buckets", nil)
	}
	return nil
}

func (ar *AdjustReturns) Apply(base *domain.CalculatorConfig) (*domain.CalculatorConfig, error) {
	modified := base.DeepCopy()
	for i := range modified.InvestmentBuckets {
		modified.InvestmentBuckets[i].Return = modified.InvestmentBuckets[i].Return.Add(ar.Delta)
	}
	for i := range modified.Contributions {
		modified.Contributions[i].Return = modified.Contributions[i].Return.Add(ar.Delta)
	}
	return modified, nil
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.String()
	}
	return d.String()
}
