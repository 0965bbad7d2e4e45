package output

import (
	"strings"
	"time"

	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// Report is everything a formatter needs to render one projection.
type Report struct {
	Params      domain.ProjectionParams
	Result      domain.ProjectionResult
	Alerts      []calculation.Alert
	Currency    string
	GeneratedAt time.Time
}

// NewReport assesses the result and bundles it with its inputs.
func NewReport(p domain.ProjectionParams, r domain.ProjectionResult, currency string) *Report {
	if strings.TrimSpace(currency) == "" {
		currency = DefaultCurrency
	}
	return &Report{
		Params:      p,
		Result:      r,
		Alerts:      calculation.Assess(p.Inflation, r),
		Currency:    strings.ToUpper(currency),
		GeneratedAt: time.Now(),
	}
}

// AllocationRow is one bucket's share of the corpus.
type AllocationRow struct {
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	Return  decimal.Decimal `json:"return"`
	Percent decimal.Decimal `json:"percent"`
}

// Allocation lists the buckets with their share of the total corpus.
func (r *Report) Allocation() []AllocationRow {
	rows := make([]AllocationRow, 0, len(r.Params.InvestmentBuckets))
	for _, b := range r.Params.InvestmentBuckets {
		rows = append(rows, AllocationRow{
			Name:    b.Name,
			Amount:  b.Amount,
			Return:  b.Return,
			Percent: r.Result.AllocationPercent(b.Amount),
		})
	}
	return rows
}

// Money formats an amount compactly in the report currency.
func (r *Report) Money(amount decimal.Decimal) string {
	return FormatCompact(amount, r.Currency)
}

// DrawDown reports whether the result came from the no-growth branch, which
// has no yearly rows.
func (r *Report) DrawDown() bool {
	return !r.Result.WeightedReturn.IsPositive()
}

func itemNames(items []domain.FutureOneTimeExpense) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return strings.Join(names, ", ")
}
