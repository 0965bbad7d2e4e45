package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ExpenseType selects how MonthlyExpenses is interpreted.
type ExpenseType string

const (
	ExpenseMonthly ExpenseType = "monthly"
	ExpenseYearly  ExpenseType = "yearly"
)

// Valid reports whether t is one of the known expense granularities.
func (t ExpenseType) Valid() bool {
	return t == ExpenseMonthly || t == ExpenseYearly
}

// UnmarshalText rejects anything other than "monthly" or "yearly" so that
// YAML and JSON decoding of a config fail on unknown granularities.
func (t *ExpenseType) UnmarshalText(text []byte) error {
	v := ExpenseType(text)
	if !v.Valid() {
		return fmt.Errorf("invalid expense type %q (expected monthly or yearly)", string(text))
	}
	*t = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t ExpenseType) MarshalText() ([]byte, error) {
	return []byte(t), nil
}

// InvestmentBucket is one allocation of current savings with its own
// expected annual post-tax return (percent, may be negative).
type InvestmentBucket struct {
	ID     int             `yaml:"id" json:"id"`
	Name   string          `yaml:"name" json:"name"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
	Return decimal.Decimal `yaml:"return" json:"return"`
}

// OneTimeExpense is a planned lump-sum outflow priced in today's money and
// inflated at its own rate until it falls due.
type OneTimeExpense struct {
	ID            int             `yaml:"id" json:"id"`
	Name          string          `yaml:"name" json:"name"`
	YearsFromNow  int             `yaml:"years_from_now" json:"yearsFromNow"`
	CurrentCost   decimal.Decimal `yaml:"current_cost" json:"currentCost"`
	InflationRate decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
}

// FutureOneTimeExpense is a OneTimeExpense resolved to its nominal value at
// the time it falls due.
type FutureOneTimeExpense struct {
	OneTimeExpense `yaml:",inline"`
	FutureValue    decimal.Decimal `yaml:"future_value" json:"futureValue"`
	AgeWhenDue     decimal.Decimal `yaml:"age_when_due" json:"ageWhenDue"`
}

// ContributionBucket is a recurring monthly saving made until retirement.
type ContributionBucket struct {
	ID            int             `yaml:"id" json:"id"`
	Name          string          `yaml:"name" json:"name"`
	MonthlyAmount decimal.Decimal `yaml:"monthly_amount" json:"monthlyAmount"`
	Return        decimal.Decimal `yaml:"return" json:"return"`
}

// YearlyProjection is the end-of-year snapshot of one simulated year.
type YearlyProjection struct {
	Year            int                    `json:"year"`
	Age             decimal.Decimal        `json:"age"`
	Corpus          decimal.Decimal        `json:"corpus"` // floored at zero
	RegularExpenses decimal.Decimal        `json:"regularExpenses"`
	OneTimeExpenses decimal.Decimal        `json:"oneTimeExpenses"`
	OneTimeItems    []FutureOneTimeExpense `json:"oneTimeItems"`
}

// ProjectionParams is the complete input of a projection.
type ProjectionParams struct {
	CurrentAge        decimal.Decimal
	Inflation         decimal.Decimal // percent
	MonthlyExpenses   decimal.Decimal
	ExpenseType       ExpenseType
	InvestmentBuckets []InvestmentBucket
	OneTimeExpenses   []OneTimeExpense

	// RetirementAge and Contributions model savings still being made before
	// retirement. Both are optional; with no contributions they have no effect.
	RetirementAge decimal.Decimal
	Contributions []ContributionBucket
}

// ProjectionResult is the aggregate output of a projection.
type ProjectionResult struct {
	TotalCorpus           decimal.Decimal        `json:"totalCorpus"`
	WeightedReturn        decimal.Decimal        `json:"weightedReturn"`
	RealReturn            decimal.Decimal        `json:"realReturn"`
	YearsLeft             decimal.Decimal        `json:"yearsLeft"`
	AnnualExpenses        decimal.Decimal        `json:"annualExpenses"`
	FutureOneTimeExpenses []FutureOneTimeExpense `json:"futureOneTimeExpenses"`
	YearlyData            []YearlyProjection     `json:"yearlyData"`
	SurvivalAge           decimal.Decimal        `json:"survivalAge"`
	ContributionsValue    decimal.Decimal        `json:"contributionsValue"`
}

// Saturated reports whether the corpus outlasts the projection horizon.
func (r ProjectionResult) Saturated(horizon int) bool {
	return r.YearsLeft.GreaterThanOrEqual(decimal.NewFromInt(int64(horizon)))
}

// AllocationPercent returns the share of the total corpus held in amount,
// or zero when the corpus is zero.
func (r ProjectionResult) AllocationPercent(amount decimal.Decimal) decimal.Decimal {
	if r.TotalCorpus.IsZero() {
		return decimal.Zero
	}
	return amount.Div(r.TotalCorpus).Mul(decimal.NewFromInt(100))
}
