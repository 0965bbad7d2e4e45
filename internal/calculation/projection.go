package calculation

import (
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// HorizonYears bounds the simulation; a corpus that survives it reports
	// exactly this many years left.
	HorizonYears = 100

	// DisplayYears is the number of yearly rows kept in a result.
	DisplayYears = 30

	// workingPlaces caps the scale of running balances between years so the
	// compounding products stay small.
	workingPlaces = 12
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	one     = decimal.NewFromInt(1)
)

// growthFactor returns 1 + pct/100.
func growthFactor(pct decimal.Decimal) decimal.Decimal {
	return one.Add(pct.Div(hundred))
}

// compound returns (1 + pct/100)^years. Negative years discount.
func compound(pct decimal.Decimal, years int) decimal.Decimal {
	return growthFactor(pct).Pow(decimal.NewFromInt(int64(years)))
}

// AnnualExpenses normalises the configured expense amount to a yearly figure.
func AnnualExpenses(amount decimal.Decimal, kind domain.ExpenseType) decimal.Decimal {
	if kind == domain.ExpenseMonthly {
		return amount.Mul(twelve)
	}
	return amount
}

// ResolveOneTimeExpenses prices every one-time expense at the year it falls
// due. Expenses beyond the horizon are resolved too.
func ResolveOneTimeExpenses(currentAge decimal.Decimal, expenses []domain.OneTimeExpense) []domain.FutureOneTimeExpense {
	resolved := make([]domain.FutureOneTimeExpense, 0, len(expenses))
	for _, e := range expenses {
		resolved = append(resolved, domain.FutureOneTimeExpense{
			OneTimeExpense: e,
			FutureValue:    e.CurrentCost.Mul(compound(e.InflationRate, e.YearsFromNow)),
			AgeWhenDue:     currentAge.Add(decimal.NewFromInt(int64(e.YearsFromNow))),
		})
	}
	return resolved
}

// dueInYear returns the expenses whose YearsFromNow equals year, and their sum.
// Year counters start at 1, so an expense due now (YearsFromNow == 0) never
// matches.
func dueInYear(expenses []domain.FutureOneTimeExpense, year int) ([]domain.FutureOneTimeExpense, decimal.Decimal) {
	items := []domain.FutureOneTimeExpense{}
	total := decimal.Zero
	for _, e := range expenses {
		if e.YearsFromNow == year {
			items = append(items, e)
			total = total.Add(e.FutureValue)
		}
	}
	return items, total
}

// interpolate walks back into the crossing year assuming the outflow was
// spread evenly across it. A zero outflow cannot be spread, so the crossing
// is reported at the end of the year.
func interpolate(year int, overshoot, outflow decimal.Decimal) decimal.Decimal {
	y := decimal.NewFromInt(int64(year))
	if outflow.IsZero() {
		return y
	}
	return y.Sub(overshoot.Div(outflow))
}

// Project runs the full projection. It is a pure function of its input: it
// performs no I/O, keeps no state and never modifies the slices in p.
func Project(p domain.ProjectionParams) domain.ProjectionResult {
	corpus, weighted, contributions := corpusAndReturn(p)
	annual := AnnualExpenses(p.MonthlyExpenses, p.ExpenseType)
	future := ResolveOneTimeExpenses(p.CurrentAge, p.OneTimeExpenses)

	var yearsLeft decimal.Decimal
	var yearly []domain.YearlyProjection
	if weighted.LessThanOrEqual(decimal.Zero) {
		yearsLeft = drawDown(corpus, annual, p.Inflation, future)
		yearly = []domain.YearlyProjection{}
	} else {
		yearsLeft, yearly = simulate(p.CurrentAge, corpus, weighted, annual, p.Inflation, future)
	}

	if len(yearly) > DisplayYears {
		yearly = yearly[:DisplayYears:DisplayYears]
	}

	return domain.ProjectionResult{
		TotalCorpus:           corpus,
		WeightedReturn:        weighted,
		RealReturn:            weighted.Sub(p.Inflation),
		YearsLeft:             yearsLeft,
		AnnualExpenses:        annual,
		FutureOneTimeExpenses: future,
		YearlyData:            yearly,
		SurvivalAge:           p.CurrentAge.Add(yearsLeft),
		ContributionsValue:    contributions,
	}
}

// corpusAndReturn sums the buckets (and the future value of any
// contributions) and weights each return by its amount.
func corpusAndReturn(p domain.ProjectionParams) (corpus, weighted, contributions decimal.Decimal) {
	weightedSum := decimal.Zero
	for _, b := range p.InvestmentBuckets {
		corpus = corpus.Add(b.Amount)
		weightedSum = weightedSum.Add(b.Amount.Mul(b.Return))
	}

	months := MonthsUntil(p.CurrentAge, p.RetirementAge)
	for _, c := range p.Contributions {
		fv := ContributionFutureValue(c, months)
		contributions = contributions.Add(fv)
		weightedSum = weightedSum.Add(fv.Mul(c.Return))
	}
	corpus = corpus.Add(contributions)

	if corpus.GreaterThan(decimal.Zero) {
		weighted = weightedSum.Div(corpus)
	}
	return corpus, weighted, contributions
}

// drawDown handles a non-positive blended return: no growth is modelled and
// the corpus is consumed by the cumulative inflated expenses.
func drawDown(corpus, annual, inflation decimal.Decimal, future []domain.FutureOneTimeExpense) decimal.Decimal {
	spent := decimal.Zero
	for year := 1; year <= HorizonYears; year++ {
		expense := annual.Mul(compound(inflation, year-1))
		_, oneTime := dueInYear(future, year)
		spent = spent.Add(expense).Add(oneTime)

		if spent.GreaterThanOrEqual(corpus) {
			return interpolate(year, spent.Sub(corpus), expense)
		}
	}
	return decimal.NewFromInt(HorizonYears)
}

// simulate compounds the corpus year by year against the growing expense
// stream until it is exhausted or the horizon is reached.
func simulate(age, corpus, weighted, annual, inflation decimal.Decimal, future []domain.FutureOneTimeExpense) (decimal.Decimal, []domain.YearlyProjection) {
	growth := growthFactor(weighted)
	priceRise := growthFactor(inflation)

	yearly := make([]domain.YearlyProjection, 0, DisplayYears)
	remaining := corpus
	expense := annual

	for year := 1; year <= HorizonYears && remaining.GreaterThan(decimal.Zero); year++ {
		remaining = remaining.Mul(growth).Sub(expense)

		items, oneTime := dueInYear(future, year)
		remaining = remaining.Sub(oneTime).Round(workingPlaces)

		yearly = append(yearly, domain.YearlyProjection{
			Year:            year,
			Age:             age.Add(decimal.NewFromInt(int64(year))),
			Corpus:          decimal.Max(decimal.Zero, remaining),
			RegularExpenses: expense,
			OneTimeExpenses: oneTime,
			OneTimeItems:    items,
		})

		// interpolation below uses the already inflated expense
		expense = expense.Mul(priceRise).Round(workingPlaces)

		if remaining.LessThanOrEqual(decimal.Zero) {
			return interpolate(year, remaining.Abs(), expense), yearly
		}
	}

	// still funded at the horizon
	return decimal.NewFromInt(HorizonYears), yearly
}
