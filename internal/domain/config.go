package domain

import (
	"github.com/shopspring/decimal"
)

// CalculatorConfig is the editable state of the calculator: the projection
// inputs plus the counters used to hand out ids to new rows.
type CalculatorConfig struct {
	CurrentAge        decimal.Decimal    `yaml:"current_age" json:"currentAge"`
	Inflation         decimal.Decimal    `yaml:"inflation" json:"inflation"`
	MonthlyExpenses   decimal.Decimal    `yaml:"monthly_expenses" json:"monthlyExpenses"`
	ExpenseType       ExpenseType        `yaml:"expense_type" json:"expenseType"`
	InvestmentBuckets []InvestmentBucket `yaml:"investment_buckets" json:"investmentBuckets"`
	OneTimeExpenses   []OneTimeExpense   `yaml:"one_time_expenses" json:"oneTimeExpenses"`
	NextBucketID      int                `yaml:"next_bucket_id" json:"nextBucketId"`
	NextExpenseID     int                `yaml:"next_expense_id" json:"nextExpenseId"`

	// Optional pre-retirement savings.
	RetirementAge decimal.Decimal      `yaml:"retirement_age,omitempty" json:"retirementAge,omitempty"`
	Contributions []ContributionBucket `yaml:"contributions,omitempty" json:"contributions,omitempty"`
}

// DefaultConfig returns the configuration used when nothing has been saved
// yet or the saved snapshot cannot be trusted.
func DefaultConfig() CalculatorConfig {
	return CalculatorConfig{
		CurrentAge:      decimal.NewFromInt(30),
		Inflation:       decimal.NewFromInt(6),
		MonthlyExpenses: decimal.NewFromInt(50000),
		ExpenseType:     ExpenseMonthly,
		InvestmentBuckets: []InvestmentBucket{
			{ID: 1, Name: "Short Term (FD, Savings)", Amount: decimal.NewFromInt(1000000), Return: decimal.NewFromInt(7)},
			{ID: 2, Name: "Medium Term (Debt Funds)", Amount: decimal.NewFromInt(2000000), Return: decimal.NewFromInt(10)},
			{ID: 3, Name: "Long Term (Equity)", Amount: decimal.NewFromInt(3000000), Return: decimal.NewFromInt(12)},
		},
		OneTimeExpenses: []OneTimeExpense{
			{ID: 1, Name: "Car Purchase", YearsFromNow: 5, CurrentCost: decimal.NewFromInt(1000000), InflationRate: decimal.NewFromInt(5)},
			{ID: 2, Name: "Child Education", YearsFromNow: 15, CurrentCost: decimal.NewFromInt(2000000), InflationRate: decimal.NewFromInt(8)},
		},
		NextBucketID:  4,
		NextExpenseID: 3,
	}
}

// Params converts the configuration into projection input. The returned
// slices are copies; the engine never sees the config's backing arrays.
func (c CalculatorConfig) Params() ProjectionParams {
	return ProjectionParams{
		CurrentAge:        c.CurrentAge,
		Inflation:         c.Inflation,
		MonthlyExpenses:   c.MonthlyExpenses,
		ExpenseType:       c.ExpenseType,
		InvestmentBuckets: append([]InvestmentBucket(nil), c.InvestmentBuckets...),
		OneTimeExpenses:   append([]OneTimeExpense(nil), c.OneTimeExpenses...),
		RetirementAge:     c.RetirementAge,
		Contributions:     append([]ContributionBucket(nil), c.Contributions...),
	}
}

// DeepCopy returns a copy that shares no slices with c.
func (c *CalculatorConfig) DeepCopy() *CalculatorConfig {
	if c == nil {
		return nil
	}
	cp := *c
	cp.InvestmentBuckets = append([]InvestmentBucket(nil), c.InvestmentBuckets...)
	cp.OneTimeExpenses = append([]OneTimeExpense(nil), c.OneTimeExpenses...)
	cp.Contributions = append([]ContributionBucket(nil), c.Contributions...)
	return &cp
}

// BucketEdit changes one field of an investment bucket.
type BucketEdit func(*InvestmentBucket)

// BucketName sets the bucket name.
func BucketName(name string) BucketEdit {
	return func(b *InvestmentBucket) { b.Name = name }
}

// BucketAmount sets the bucket amount.
func BucketAmount(amount decimal.Decimal) BucketEdit {
	return func(b *InvestmentBucket) { b.Amount = amount }
}

// BucketReturn sets the bucket's annual return in percent.
func BucketReturn(pct decimal.Decimal) BucketEdit {
	return func(b *InvestmentBucket) { b.Return = pct }
}

// ExpenseEdit changes one field of a one-time expense.
type ExpenseEdit func(*OneTimeExpense)

// ExpenseName sets the expense name.
func ExpenseName(name string) ExpenseEdit {
	return func(e *OneTimeExpense) { e.Name = name }
}

// ExpenseYearsFromNow sets how many years ahead the expense falls due.
func ExpenseYearsFromNow(years int) ExpenseEdit {
	return func(e *OneTimeExpense) { e.YearsFromNow = years }
}

// ExpenseCurrentCost sets the cost in today's money.
func ExpenseCurrentCost(cost decimal.Decimal) ExpenseEdit {
	return func(e *OneTimeExpense) { e.CurrentCost = cost }
}

// ExpenseInflationRate sets the expense-specific inflation in percent.
func ExpenseInflationRate(pct decimal.Decimal) ExpenseEdit {
	return func(e *OneTimeExpense) { e.InflationRate = pct }
}

// AddBucket appends a blank bucket using the next free id.
func (c CalculatorConfig) AddBucket() CalculatorConfig {
	out := *c.DeepCopy()
	out.InvestmentBuckets = append(out.InvestmentBuckets, InvestmentBucket{
		ID:     c.NextBucketID,
		Name:   "New Investment",
		Amount: decimal.Zero,
		Return: decimal.Zero,
	})
	out.NextBucketID++
	return out
}

// UpdateBucket applies edits to the bucket with the given id. The boolean is
// false when no such bucket exists, in which case c is returned unchanged.
func (c CalculatorConfig) UpdateBucket(id int, edits ...BucketEdit) (CalculatorConfig, bool) {
	out := *c.DeepCopy()
	for i := range out.InvestmentBuckets {
		if out.InvestmentBuckets[i].ID != id {
			continue
		}
		for _, edit := range edits {
			edit(&out.InvestmentBuckets[i])
		}
		return out, true
	}
	return c, false
}

// RemoveBucket drops the bucket with the given id. Id counters never move
// backwards.
func (c CalculatorConfig) RemoveBucket(id int) CalculatorConfig {
	out := c
	out.InvestmentBuckets = make([]InvestmentBucket, 0, len(c.InvestmentBuckets))
	for _, b := range c.InvestmentBuckets {
		if b.ID != id {
			out.InvestmentBuckets = append(out.InvestmentBuckets, b)
		}
	}
	out.OneTimeExpenses = append([]OneTimeExpense(nil), c.OneTimeExpenses...)
	out.Contributions = append([]ContributionBucket(nil), c.Contributions...)
	return out
}

// AddExpense appends a default one-time expense using the next free id.
func (c CalculatorConfig) AddExpense() CalculatorConfig {
	out := *c.DeepCopy()
	out.OneTimeExpenses = append(out.OneTimeExpenses, OneTimeExpense{
		ID:            c.NextExpenseID,
		Name:          "New Expense",
		YearsFromNow:  1,
		CurrentCost:   decimal.Zero,
		InflationRate: decimal.NewFromInt(6),
	})
	out.NextExpenseID++
	return out
}

// UpdateExpense applies edits to the expense with the given id.
func (c CalculatorConfig) UpdateExpense(id int, edits ...ExpenseEdit) (CalculatorConfig, bool) {
	out := *c.DeepCopy()
	for i := range out.OneTimeExpenses {
		if out.OneTimeExpenses[i].ID != id {
			continue
		}
		for _, edit := range edits {
			edit(&out.OneTimeExpenses[i])
		}
		return out, true
	}
	return c, false
}

// RemoveExpense drops the expense with the given id.
func (c CalculatorConfig) RemoveExpense(id int) CalculatorConfig {
	out := c
	out.OneTimeExpenses = make([]OneTimeExpense, 0, len(c.OneTimeExpenses))
	for _, e := range c.OneTimeExpenses {
		if e.ID != id {
			out.OneTimeExpenses = append(out.OneTimeExpenses, e)
		}
	}
	out.InvestmentBuckets = append([]InvestmentBucket(nil), c.InvestmentBuckets...)
	out.Contributions = append([]ContributionBucket(nil), c.Contributions...)
	return out
}

// ToggleExpenseType flips between monthly and yearly granularity without
// converting the amount, matching the form's radio behaviour.
func (c CalculatorConfig) ToggleExpenseType() CalculatorConfig {
	out := *c.DeepCopy()
	if out.ExpenseType == ExpenseYearly {
		out.ExpenseType = ExpenseMonthly
	} else {
		out.ExpenseType = ExpenseYearly
	}
	return out
}
