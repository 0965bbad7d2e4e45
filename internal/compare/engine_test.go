package compare

import (
	"context"
	"strings"
	"testing"

	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *domain.CalculatorConfig {
	cfg := domain.DefaultConfig()
	return &cfg
}

func TestCompare_Templates(t *testing.T) {
	ce := NewCompareEngine(nil)

	set, err := ce.Compare(context.Background(), defaultConfig(), CompareOptions{
		Templates:  []string{"inflation_plus_1", "returns_plus_1", "no_one_time"},
		ConfigPath: "plan.yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, "base", set.BaseScenarioName)
	assert.Equal(t, "plan.yaml", set.ConfigPath)
	require.NotNil(t, set.BaseResult)
	require.Len(t, set.AlternativeResults, 3)

	base := set.BaseResult
	assert.True(t, base.TotalCorpus.Equal(decimal.NewFromInt(6000000)))
	assert.True(t, base.WeightedReturn.Equal(decimal.RequireFromString("10.5")))
	assert.True(t, base.YearsLeft.GreaterThan(decimal.NewFromInt(11)))
	assert.True(t, base.YearsLeft.LessThan(decimal.NewFromInt(12)))
	assert.Equal(t, 1, base.AlertCount)
	assert.True(t, base.CorpusAfter10.IsPositive())
	assert.True(t, base.CorpusAfter10.Equal(CorpusAfter(base.Result, 10)))
	assert.True(t, CorpusAfter(base.Result, 40).IsZero())

	inflation, returns, noOneTime := set.AlternativeResults[0], set.AlternativeResults[1], set.AlternativeResults[2]

	assert.Equal(t, "inflation_plus_1", inflation.ScenarioName)
	assert.True(t, inflation.YearsLeftDiff.IsNegative(), "higher inflation should shorten the runway")
	assert.True(t, inflation.RealReturnDiff.Equal(decimal.NewFromInt(-1)))
	assert.True(t, inflation.CorpusDiffFromBase.IsZero())

	assert.True(t, returns.YearsLeftDiff.IsPositive(), "higher returns should lengthen the runway")
	assert.True(t, returns.WeightedReturn.Equal(decimal.RequireFromString("11.5")))

	assert.True(t, noOneTime.YearsLeftDiff.IsPositive())
	assert.True(t, noOneTime.OneTimeTotal.IsZero())
	assert.True(t, base.OneTimeTotal.GreaterThan(decimal.NewFromInt(3000000)))

	require.NotEmpty(t, set.Recommendations)
	assert.Contains(t, set.Recommendations[0], "Longest Runway: ")
	assert.Contains(t, strings.Join(set.Recommendations, "\n"), "Biggest Risk: inflation_plus_1")
}

func TestCompare_Transforms(t *testing.T) {
	ce := NewCompareEngine(calculation.NewCalculationEngine())

	set, err := ce.Compare(context.Background(), defaultConfig(), CompareOptions{
		BaseScenarioName: "plan",
		Transforms:       []string{"remove_bucket:id=1", "scale_expenses:factor=0.5"},
	})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 1)

	custom := set.AlternativeResults[0]
	assert.Equal(t, CustomScenarioName, custom.ScenarioName)
	assert.Equal(t, "Remove investment bucket 1; Scale regular expenses by 0.5", custom.Description)
	assert.True(t, custom.CorpusDiffFromBase.Equal(decimal.NewFromInt(-1000000)))
	assert.True(t, custom.AnnualExpenses.Equal(decimal.NewFromInt(300000)))
	assert.Equal(t, "plan", set.BaseScenarioName)
}

func TestCompare_LeavesConfigUntouched(t *testing.T) {
	cfg := defaultConfig()
	_, err := NewCompareEngine(nil).Compare(context.Background(), cfg, CompareOptions{
		Templates:  []string{"frugal", "stress"},
		Transforms: []string{"drop_one_time_expenses"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), *cfg)
}

func TestCompare_Errors(t *testing.T) {
	ce := NewCompareEngine(nil)
	ctx := context.Background()

	_, err := ce.Compare(ctx, nil, CompareOptions{Templates: []string{"stress"}})
	assert.Error(t, err)

	_, err = ce.Compare(ctx, defaultConfig(), CompareOptions{})
	assert.Error(t, err)

	_, err = ce.Compare(ctx, defaultConfig(), CompareOptions{Templates: []string{"retire_tomorrow"}})
	assert.ErrorContains(t, err, "template retire_tomorrow not found")

	_, err = ce.Compare(ctx, defaultConfig(), CompareOptions{Transforms: []string{"remove_bucket:id=x"}})
	assert.ErrorContains(t, err, "failed to parse transform")

	_, err = ce.Compare(ctx, defaultConfig(), CompareOptions{Transforms: []string{"postpone_retirement:years=1"}})
	assert.ErrorContains(t, err, "no contributions")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = ce.Compare(cancelled, defaultConfig(), CompareOptions{Templates: []string{"stress"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateRecommendations_LowDuration(t *testing.T) {
	base := &ComparisonResult{ScenarioName: "base", YearsLeft: decimal.NewFromInt(25), RealReturn: decimal.NewFromInt(2)}
	set := &ComparisonSet{
		BaseResult: base,
		AlternativeResults: []ComparisonResult{
			{ScenarioName: "stress", YearsLeft: decimal.NewFromInt(18), RealReturn: decimal.RequireFromString("-0.5")},
		},
	}

	recs := GenerateRecommendations(set)
	require.Len(t, recs, 3)
	assert.Equal(t, "Biggest Risk: stress shortens the corpus by 7.0 years", recs[0])
	assert.Equal(t, "Watch: stress drops the runway below 20 years", recs[1])
	assert.Equal(t, "Watch: stress leaves returns below inflation (real return -0.5%)", recs[2])

	assert.Empty(t, GenerateRecommendations(&ComparisonSet{BaseResult: base}))
	assert.NotNil(t, GenerateRecommendations(&ComparisonSet{}))
}
