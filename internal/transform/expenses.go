package transform

import (
	"fmt"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// ScaleExpenses multiplies the regular expense amount by a factor, e.g. 0.9
// for a ten percent cut.
type ScaleExpenses struct {
	Factor decimal.Decimal
}

func (se *ScaleExpenses) Name() string {
	return "scale_expenses"
}

func (se *ScaleExpenses) Description() string {
	return fmt.Sprintf("Scale regular expenses by %s", se.Factor.String())
}

func (se *ScaleExpenses) Validate(base *domain.CalculatorConfig) error {
	if se.Factor.IsNegative() {
		return NewTransformError(se.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", se.Factor), nil)
	}
	return requireBase(se.Name(), base)
}

func (se *ScaleExpenses) Apply(base *domain.CalculatorConfig) (*domain.CalculatorConfig, error) {
	modified := base.DeepCopy()
	modified.MonthlyExpenses = modified.MonthlyExpenses.Mul(se.Factor)
	return modified, nil
}

// SetExpenses replaces the regular expense amount. The expense type is kept
// unless Type is set.
type SetExpenses struct {
	Amount decimal.Decimal
	Type   domain.ExpenseType
}

func (se *SetExpenses) Name() string {
	return "set_expenses"
}

func (se *SetExpenses) Description() string {
	if se.Type != "" {
		return fmt.Sprintf("Set %s expenses to %s", se.Type, se.Amount.String())
	}
	return fmt.Sprintf("Set expenses to %s", se.Amount.String())
}

func (se *SetExpenses) Validate(base *domain.CalculatorConfig) error {
	if se.Amount.IsNegative() {
		return NewTransformError(se.Name(), "validate", "amount must be non-negative", nil)
	}
	if se.Type != "" && !se.Type.Valid() {
		return NewTransformError(se.Name(), "validate", fmt.Sprintf("invalid expense type %q", se.Type), nil)
	}
	return requireBase(se.Name(), base)
}

func (se *SetExpenses) Apply(base *domain.CalculatorConfig) (*domain.CalculatorConfig, error) {
	modified := base.DeepCopy()
	modified.MonthlyExpenses = se.Amount
	if se.Type != "" {
		modified.ExpenseType = se.Type
	}
	return modified, nil
}

// DeferExpense moves a one-time expense later (or earlier, with negative
// years) without changing its cost in today's money.
type DeferExpense struct {
	ExpenseID int
	Years     int
}

func (de *DeferExpense) Name() string {
	return "defer_expense"
}

func (de *DeferExpense) Description() string {
	return fmt.Sprintf("Move one-time expense %d by %d years", de.ExpenseID, de.Years)
}

func (de *DeferExpense) Validate(base *domain.CalculatorConfig) error {
	if err := requireBase(de.Name(), base); err != nil {
		return err
	}
	for _, e := range base.OneTimeExpenses {
		if e.ID != de.ExpenseID {
			continue
		}
		if e.YearsFromNow+de.Years < 0 {
			return NewTransformError(de.Name(), "validate", fmt.Sprintf("expense %d would fall due in the past", de.ExpenseID), nil)
		}
		return nil
	}
	return NewTransformError(de.Name(), "validate", fmt.Sprintf("one-time expense %d not found", de.ExpenseID), nil)
}

func (de *DeferExpense) Apply(base *domain.CalculatorConfig) (*domain.CalculatorConfig, error) {
	var current int
	for _, e := range base.OneTimeExpenses {
		if e.ID == de.ExpenseID {
			current = e.YearsFromNow
		}
	}
	modified, ok := base.UpdateExpense(de.ExpenseID, domain.ExpenseYearsFromNow(current+de.Years))
	if !ok {
		return nil, NewTransformError(de.Name(), "apply", fmt.Sprintf("one-time expense %d not found", de.ExpenseID), nil)
	}
	return &modified, nil
}

// DropOneTimeExpenses removes every one-time expense.
type DropOneTimeExpenses struct{}

func (d *DropOneTimeExpenses) Name() string {
	return "drop_one_time_expenses"
}

func (d *DropOneTimeExpenses) Description() string {
	return "Remove all one-time expenses"
}

func (d *DropOneTimeExpenses) Validate(base *domain.CalculatorConfig) error {
	return requireBase(d.Name(), base)
}

func (d *DropOneTimeExpenses) Apply(base *domain.CalculatorConfig) (*domain.CalculatorConfig, error) {
	modified := base.DeepCopy()
	modified.OneTimeExpenses = []domain.OneTimeExpense{}
	return modified, nil
}
