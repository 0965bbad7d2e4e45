package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a report does not name one.
const DefaultCurrency = "INR"

var (
	crore    = decimal.NewFromInt(10_000_000)
	lakh     = decimal.NewFromInt(100_000)
	billion  = decimal.NewFromInt(1_000_000_000)
	million  = decimal.NewFromInt(1_000_000)
	thousand = decimal.NewFromInt(1_000)
	maxMinor = decimal.NewFromInt(math.MaxInt64)
)

func currency(code string) *money.Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}
	return money.GetCurrency(code)
}

// FormatCurrency formats amount in full using the currency's symbol,
// grouping and fraction digits. Unknown codes print the code and two
// decimals.
func FormatCurrency(amount decimal.Decimal, code string) string {
	cur := currency(code)
	if cur == nil {
		return strings.ToUpper(code) + " " + amount.StringFixed(2)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	if minor.Abs().GreaterThan(maxMinor) {
		return cur.Grapheme + amount.StringFixed(int32(cur.Fraction))
	}
	return cur.Formatter().Format(minor.IntPart())
}

// FormatCompact abbreviates large amounts: crore and lakh for rupees, B, M
// and K otherwise. Small amounts are printed in full.
func FormatCompact(amount decimal.Decimal, code string) string {
	cur := currency(code)
	if cur == nil {
		return FormatCurrency(amount, code)
	}

	type unit struct {
		size   decimal.Decimal
		suffix string
	}
	units := []unit{{billion, "B"}, {million, "M"}, {thousand, "K"}}
	if cur.Code == "INR" {
		units = []unit{{crore, " Cr"}, {lakh, " L"}}
	}

	for _, u := range units {
		if amount.GreaterThanOrEqual(u.size) {
			return cur.Grapheme + amount.Div(u.size).StringFixed(1) + u.suffix
		}
	}
	return FormatCurrency(amount, code)
}

// FormatPercent prints a percentage with one decimal.
func FormatPercent(pct decimal.Decimal) string {
	return pct.StringFixed(1) + "%"
}

// FormatYears prints the runway, or "100+ years" when the corpus outlasts
// the horizon.
func FormatYears(r domain.ProjectionResult) string {
	if r.Saturated(calculation.HorizonYears) {
		return fmt.Sprintf("%d+ years", calculation.HorizonYears)
	}
	return r.YearsLeft.StringFixed(1) + " years"
}

// FormatSurvivalAge prints the age the money lasts until, rounded to a whole
// year, with a trailing "+" at the horizon.
func FormatSurvivalAge(r domain.ProjectionResult) string {
	age := r.SurvivalAge.Round(0).String()
	if r.Saturated(calculation.HorizonYears) {
		return age + "+"
	}
	return age
}
