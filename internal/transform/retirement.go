package transform

import (
	"fmt"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// RemoveBucket drops an investment bucket, e.g. to see how long the money
// lasts without an emergency fund.
type RemoveBucket struct {
	BucketID int
}

func (rb *RemoveBucket) Name() string {
	return "remove_bucket"
}

func (rb *RemoveBucket) Description() string {
	return fmt.Sprintf("Remove investment bucket %d", rb.BucketID)
}

func (rb *RemoveBucket) Validate(base *domain.CalculatorConfig) error {
	if err := requireBase(rb.Name(), base); err != nil {
		return err
	}
	for _, b := range base.InvestmentBuckets {
		if b.ID == rb.BucketID {
			return nil
		}
	}
	return NewTransformError(rb.Name(), "validate", fmt.Sprintf("investment bucket %d not found", rb.BucketID), nil)
}

func (rb *RemoveBucket) Apply(base *domain.CalculatorConfig) (*domain.CalculatorConfig, error) {
	modified := base.RemoveBucket(rb.BucketID)
	return &modified, nil
}

// ScaleCorpus multiplies every investment bucket by a factor. Contributions
// are left alone.
type ScaleCorpus struct {
	Factor decimal.Decimal
}

func (sc *ScaleCorpus) Name() string {
	return "scale_corpus"
}

func (sc *ScaleCorpus) Description() string {
	return fmt.Sprintf("Scale every investment bucket by %s", sc.Factor.String())
}

func (sc *ScaleCorpus) Validate(base *domain.CalculatorConfig) error {
	if sc.Factor.IsNegative() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", sc.Factor), nil)
	}
	return requireBase(sc.Name(), base)
}

func (sc *ScaleCorpus) Apply(base *domain.CalculatorConfig) (*domain.CalculatorConfig, error) {
	modified := base.DeepCopy()
	for i := range modified.InvestmentBuckets {
		modified.InvestmentBuckets[i].Amount = modified.InvestmentBuckets[i].Amount.Mul(sc.Factor)
	}
	return modified, nil
}

// PostponeRetirement keeps contributing for longer by moving the retirement
// age later. It only matters when contributions are configured.
type PostponeRetirement struct {
	Years decimal.Decimal
}

func (pr *PostponeRetirement) Name() string {
	return "postpone_retirement"
}

func (pr *PostponeRetirement) Description() string {
	return fmt.Sprintf("Postpone retirement by %s years", pr.Years.String())
}

func (pr *PostponeRetirement) Validate(base *domain.CalculatorConfig) error {
	if pr.Years.IsNegative() {
		return NewTransformError(pr.Name(), "validate", fmt.Sprintf("years must be non-negative, got %s", pr.Years), nil)
	}
	if err := requireBase(pr.Name(), base); err != nil {
		return err
	}
	if len(base.Contributions) == 0 {
		return NewTransformError(pr.Name(), "validate", "configuration has no contributions", nil)
	}
	if base.RetirementAge.LessThanOrEqual(base.CurrentAge) {
		return NewTransformError(pr.Name(), "validate", "configuration has no future retirement age", nil)
	}
	return nil
}

func (pr *PostponeRetirement) Apply(base *domain.CalculatorConfig) (*domain.CalculatorConfig, error) {
	modified := base.DeepCopy()
	modified.RetirementAge = modified.RetirementAge.Add(pr.Years)
	return modified, nil
}
