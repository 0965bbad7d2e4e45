package compare

import (
	"fmt"

	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario with its calculated metrics
type ComparisonResult struct {
	ScenarioName string                   `json:"scenarioName"`
	Description  string                   `json:"description"`
	Config       *domain.CalculatorConfig `json:"-"`
	Result       domain.ProjectionResult  `json:"-"`

	// Key Metrics
	TotalCorpus    decimal.Decimal `json:"totalCorpus"`
	AnnualExpenses decimal.Decimal `json:"annualExpenses"`
	WeightedReturn decimal.Decimal `json:"weightedReturn"`
	RealReturn     decimal.Decimal `json:"realReturn"`
	YearsLeft      decimal.Decimal `json:"yearsLeft"`
	SurvivalAge    decimal.Decimal `json:"survivalAge"`
	OneTimeTotal   decimal.Decimal `json:"oneTimeTotal"`  // nominal, at the time each falls due
	CorpusAfter10  decimal.Decimal `json:"corpusAfter10"` // zero when there is no row for year 10
	Saturated      bool            `json:"saturated"`
	AlertCount     int             `json:"alertCount"`

	// Comparison to Base
	CorpusDiffFromBase decimal.Decimal `json:"corpusDiffFromBase"`
	YearsLeftDiff      decimal.Decimal `json:"yearsLeftDiff"`
	SurvivalAgeDiff    decimal.Decimal `json:"survivalAgeDiff"`
	RealReturnDiff     decimal.Decimal `json:"realReturnDiff"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts key metrics from projection results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one projected configuration
func (mc *MetricsCalculator) CalculateMetrics(name string, cfg *domain.CalculatorConfig, result domain.ProjectionResult) ComparisonResult {
	oneTime := decimal.Zero
	for _, e := range result.FutureOneTimeExpenses {
		oneTime = oneTime.Add(e.FutureValue)
	}

	inflation := decimal.Zero
	if cfg != nil {
		inflation = cfg.Inflation
	}

	return ComparisonResult{
		ScenarioName:   name,
		Config:         cfg,
		Result:         result,
		TotalCorpus:    result.TotalCorpus,
		AnnualExpenses: result.AnnualExpenses,
		WeightedReturn: result.WeightedReturn,
		RealReturn:     result.RealReturn,
		YearsLeft:      result.YearsLeft,
		SurvivalAge:    result.SurvivalAge,
		OneTimeTotal:   oneTime,
		CorpusAfter10:  CorpusAfter(result, 10),
		Saturated:      result.Saturated(calculation.HorizonYears),
		AlertCount:     len(calculation.Assess(inflation, result)),
	}
}

// CorpusAfter returns the end-of-year corpus for the given year of the
// yearly projection, or zero when the projection has no such row.
func CorpusAfter(result domain.ProjectionResult, year int) decimal.Decimal {
	for _, y := range result.YearlyData {
		if y.Year == year {
			return y.Corpus
		}
	}
	return decimal.Zero
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.CorpusDiffFromBase = scenario.TotalCorpus.Sub(base.TotalCorpus)
	scenario.YearsLeftDiff = scenario.YearsLeft.Sub(base.YearsLeft)
	scenario.SurvivalAgeDiff = scenario.SurvivalAge.Sub(base.SurvivalAge)
	scenario.RealReturnDiff = scenario.RealReturn.Sub(base.RealReturn)
	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Longest runway
	best := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.YearsLeft.GreaterThan(best.YearsLeft) {
			best = alt
		}
	}
	if best != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Longest Runway: %s extends the corpus by %s years (to age %s)",
				best.ScenarioName, best.YearsLeft.Sub(base.YearsLeft).StringFixed(1), best.SurvivalAge.Round(0)))
	}

	// Worst case
	worst := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.YearsLeft.LessThan(worst.YearsLeft) {
			worst = alt
		}
	}
	if worst != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Biggest Risk: %s shortens the corpus by %s years",
				worst.ScenarioName, base.YearsLeft.Sub(worst.YearsLeft).StringFixed(1)))
	}

	// Scenarios that cross the low-duration line
	low := decimal.NewFromInt(calculation.LowDurationYears)
	if base.YearsLeft.GreaterThanOrEqual(low) {
		for _, alt := range compSet.AlternativeResults {
			if alt.YearsLeft.LessThan(low) {
				recommendations = append(recommendations,
					fmt.Sprintf("Watch: %s drops the runway below %d years", alt.ScenarioName, calculation.LowDurationYears))
			}
		}
	}

	// Negative real return
	if !base.RealReturn.IsNegative() {
		for _, alt := range compSet.AlternativeResults {
			if alt.RealReturn.IsNegative() {
				recommendations = append(recommendations,
					fmt.Sprintf("Watch: %s leaves returns below inflation (real return %s%%)", alt.ScenarioName, alt.RealReturn.StringFixed(1)))
			}
		}
	}

	return recommendations
}
