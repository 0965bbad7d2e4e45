package output

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// JSONFormatter emits the projection and its inputs as a JSON document.
type JSONFormatter struct {
	Indent bool
}

func (j JSONFormatter) Name() string { return "json" }

type jsonInputs struct {
	CurrentAge        decimal.Decimal             `json:"currentAge"`
	Inflation         decimal.Decimal             `json:"inflation"`
	MonthlyExpenses   decimal.Decimal             `json:"monthlyExpenses"`
	ExpenseType       domain.ExpenseType          `json:"expenseType"`
	InvestmentBuckets []domain.InvestmentBucket   `json:"investmentBuckets"`
	OneTimeExpenses   []domain.OneTimeExpense     `json:"oneTimeExpenses"`
	RetirementAge     *decimal.Decimal            `json:"retirementAge,omitempty"`
	Contributions     []domain.ContributionBucket `json:"contributions,omitempty"`
}

type jsonReport struct {
	GeneratedAt time.Time               `json:"generatedAt"`
	Currency    string                  `json:"currency"`
	Inputs      jsonInputs              `json:"inputs"`
	Result      domain.ProjectionResult `json:"result"`
	Alerts      []calculation.Alert     `json:"alerts"`
	Allocation  []AllocationRow         `json:"allocation"`
	Display     map[string]string       `json:"display"`
}

func (j JSONFormatter) Format(r *Report) ([]byte, error) {
	p := r.Params
	in := jsonInputs{
		CurrentAge:        p.CurrentAge,
		Inflation:         p.Inflation,
		MonthlyExpenses:   p.MonthlyExpenses,
		ExpenseType:       p.ExpenseType,
		InvestmentBuckets: nonNil(p.InvestmentBuckets),
		OneTimeExpenses:   nonNil(p.OneTimeExpenses),
		Contributions:     p.Contributions,
	}
	if len(p.Contributions) > 0 {
		in.RetirementAge = &p.RetirementAge
	}

	result := r.Result
	result.FutureOneTimeExpenses = nonNil(result.FutureOneTimeExpenses)
	result.YearlyData = nonNil(result.YearlyData)

	doc := jsonReport{
		GeneratedAt: r.GeneratedAt,
		Currency:    r.Currency,
		Inputs:      in,
		Result:      result,
		Alerts:      nonNil(r.Alerts),
		Allocation:  r.Allocation(),
		Display: map[string]string{
			"totalCorpus": FormatCurrency(result.TotalCorpus, r.Currency),
			"yearsLeft":   FormatYears(result),
			"survivalAge": FormatSurvivalAge(result),
		},
	}

	if j.Indent {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
