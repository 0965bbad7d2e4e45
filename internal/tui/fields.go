package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/rgehrsitz/runway/internal/tui/components"
	"github.com/shopspring/decimal"
)

// fieldKind selects which input of the form a field edits.
type fieldKind int

const (
	fieldAge fieldKind = iota
	fieldInflation
	fieldExpenses
	fieldExpenseType
	fieldBucketName
	fieldBucketAmount
	fieldBucketReturn
	fieldExpenseName
	fieldExpenseYears
	fieldExpenseCost
	fieldExpenseInflation
)

// isBucket reports whether the field belongs to an investment bucket row.
func (k fieldKind) isBucket() bool {
	return k >= fieldBucketName && k <= fieldBucketReturn
}

// isExpense reports whether the field belongs to a one-time expense row.
func (k fieldKind) isExpense() bool {
	return k >= fieldExpenseName && k <= fieldExpenseInflation
}

// fieldRef identifies one input: the kind plus the row id for bucket and
// expense fields.
type fieldRef struct {
	kind fieldKind
	id   int
}

type formField struct {
	ref fieldRef
	components.Field
}

// buildFields lays out the form for cfg: the basics, then three fields per
// bucket, then four per one-time expense.
func buildFields(cfg domain.CalculatorConfig) []formField {
	fields := []formField{
		{fieldRef{kind: fieldAge}, components.NewField("Current Age", cfg.CurrentAge.String())},
		{fieldRef{kind: fieldInflation}, components.NewField("Inflation (%)", cfg.Inflation.String())},
		{fieldRef{kind: fieldExpenses}, components.NewField(expenseLabel(cfg.ExpenseType), cfg.MonthlyExpenses.String())},
		{fieldRef{kind: fieldExpenseType}, components.NewField("Expense Type", string(cfg.ExpenseType))},
	}

	for _, b := range cfg.InvestmentBuckets {
		fields = append(fields,
			formField{fieldRef{fieldBucketName, b.ID}, components.NewField("Name", b.Name)},
			formField{fieldRef{fieldBucketAmount, b.ID}, components.NewField("Amount", b.Amount.String())},
			formField{fieldRef{fieldBucketReturn, b.ID}, components.NewField("Return (%)", b.Return.String())},
		)
	}

	for _, e := range cfg.OneTimeExpenses {
		fields = append(fields,
			formField{fieldRef{fieldExpenseName, e.ID}, components.NewField("Name", e.Name)},
			formField{fieldRef{fieldExpenseYears, e.ID}, components.NewField("Years From Now", strconv.Itoa(e.YearsFromNow))},
			formField{fieldRef{fieldExpenseCost, e.ID}, components.NewField("Current Cost", e.CurrentCost.String())},
			formField{fieldRef{fieldExpenseInflation, e.ID}, components.NewField("Inflation (%)", e.InflationRate.String())},
		)
	}

	return fields
}

func expenseLabel(t domain.ExpenseType) string {
	if t == domain.ExpenseYearly {
		return "Yearly Expenses"
	}
	return "Monthly Expenses"
}

// parseNumber reads a decimal field; an empty field counts as zero.
func parseNumber(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number")
	}
	return d, nil
}

// parseYears reads a whole, non-negative number of years.
func parseYears(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("whole years only")
	}
	if n < 0 {
		return 0, fmt.Errorf("must be 0 or more")
	}
	return n, nil
}

// applyField returns cfg with the field identified by ref set from text. On a
// parse error cfg is returned unchanged along with the error.
func applyField(cfg domain.CalculatorConfig, ref fieldRef, text string) (domain.CalculatorConfig, error) {
	switch ref.kind {
	case fieldAge, fieldInflation, fieldExpenses:
		v, err := parseNumber(text)
		if err != nil {
			return cfg, err
		}
		out := *cfg.DeepCopy()
		switch ref.kind {
		case fieldAge:
			out.CurrentAge = v
		case fieldInflation:
			out.Inflation = v
		default:
			out.MonthlyExpenses = v
		}
		return out, nil

	case fieldBucketName:
		out, _ := cfg.UpdateBucket(ref.id, domain.BucketName(text))
		return out, nil

	case fieldBucketAmount, fieldBucketReturn:
		v, err := parseNumber(text)
		if err != nil {
			return cfg, err
		}
		edit := domain.BucketAmount(v)
		if ref.kind == fieldBucketReturn {
			edit = domain.BucketReturn(v)
		}
		out, _ := cfg.UpdateBucket(ref.id, edit)
		return out, nil

	case fieldExpenseName:
		out, _ := cfg.UpdateExpense(ref.id, domain.ExpenseName(text))
		return out, nil

	case fieldExpenseYears:
		n, err := parseYears(text)
		if err != nil {
			return cfg, err
		}
		out, _ := cfg.UpdateExpense(ref.id, domain.ExpenseYearsFromNow(n))
		return out, nil

	case fieldExpenseCost, fieldExpenseInflation:
		v, err := parseNumber(text)
		if err != nil {
			return cfg, err
		}
		edit := domain.ExpenseCurrentCost(v)
		if ref.kind == fieldExpenseInflation {
			edit = domain.ExpenseInflationRate(v)
		}
		out, _ := cfg.UpdateExpense(ref.id, edit)
		return out, nil
	}

	// The expense type is toggled, never typed.
	return cfg, fmt.Errorf("field is not editable as text")
}

// indexOf returns the position of ref in fields, or -1.
func indexOf(fields []formField, ref fieldRef) int {
	for i, f := range fields {
		if f.ref == ref {
			return i
		}
	}
	return -1
}
