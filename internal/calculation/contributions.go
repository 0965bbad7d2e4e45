package calculation

import (
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// MonthsUntil returns the whole number of months between the current age and
// the retirement age, or zero when retirement is not in the future.
func MonthsUntil(currentAge, retirementAge decimal.Decimal) int {
	years := retirementAge.Sub(currentAge)
	if years.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return int(years.Mul(twelve).IntPart())
}

// ContributionFutureValue is the value at retirement of a monthly saving:
// FV = P × ((1 + r)^n − 1) / r with r the monthly rate and n the months.
// A non-positive rate falls back to the undiscounted sum P × n.
func ContributionFutureValue(c domain.ContributionBucket, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(months))
	r := c.Return.Div(hundred).Div(twelve)
	if !r.IsPositive() {
		return c.MonthlyAmount.Mul(n)
	}
	factor := one.Add(r).Pow(n).Sub(one).Div(r)
	return c.MonthlyAmount.Mul(factor).Round(workingPlaces)
}
