package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/runway/internal/breakeven"
	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/compare"
	"github.com/rgehrsitz/runway/internal/config"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/rgehrsitz/runway/internal/output"
	"github.com/rgehrsitz/runway/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planFile = "../testdata/runway_plan.yaml"

func loadPlan(t *testing.T) *domain.CalculatorConfig {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(planFile)
	require.NoError(t, err, "Should load configuration successfully")
	require.NotNil(t, cfg)
	return cfg
}

// TestBasicIntegration tests basic end-to-end functionality
func TestBasicIntegration(t *testing.T) {
	t.Run("configuration_loading", func(t *testing.T) {
		cfg := loadPlan(t)

		assert.Len(t, cfg.InvestmentBuckets, 3, "Should have buckets")
		assert.Len(t, cfg.OneTimeExpenses, 2, "Should have one-time expenses")
		assert.Equal(t, domain.ExpenseMonthly, cfg.ExpenseType)
	})

	t.Run("file_matches_defaults", func(t *testing.T) {
		cfg := loadPlan(t)
		engine := calculation.NewCalculationEngine()

		fromFile := engine.RunConfig(*cfg)
		fromDefaults := engine.RunConfig(domain.DefaultConfig())

		assert.True(t, fromFile.YearsLeft.Equal(fromDefaults.YearsLeft), "file %s vs defaults %s", fromFile.YearsLeft, fromDefaults.YearsLeft)
	})

	t.Run("calculation_engine", func(t *testing.T) {
		result := calculation.NewCalculationEngine().RunConfig(*loadPlan(t))

		assert.Equal(t, "6000000", result.TotalCorpus.String())
		assert.Equal(t, "10.5", result.WeightedReturn.String())
		assert.Equal(t, "4.5", result.RealReturn.String())
		assert.Equal(t, "600000", result.AnnualExpenses.String())
		assert.Equal(t, "12.0", result.YearsLeft.StringFixed(1))
		assert.NotEmpty(t, result.YearlyData, "Should have yearly data")
		assert.Len(t, result.FutureOneTimeExpenses, 2)
	})

	t.Run("output_generation", func(t *testing.T) {
		cfg := loadPlan(t)
		result := calculation.NewCalculationEngine().RunConfig(*cfg)
		report := output.NewReport(cfg.Params(), result, "INR")

		for _, name := range []string{"console", "json", "csv", "markdown", "html"} {
			t.Run(fmt.Sprintf("format_%s", name), func(t *testing.T) {
				f := output.GetFormatterByName(name)
				require.NotNil(t, f, "Formatter %s should exist", name)
				data, err := f.Format(report)
				require.NoError(t, err, "Should generate %s output", name)
				assert.NotEmpty(t, data)
			})
		}
	})
}

// TestStoreRoundTrip saves an edited plan and projects it again after reload.
func TestStoreRoundTrip(t *testing.T) {
	cfg := loadPlan(t)
	cfg.CurrentAge = decimal.NewFromInt(45)
	*cfg = cfg.ToggleExpenseType()

	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, storage.NewStore(storage.NewFileKV(path)).Save(*cfg))

	loaded := storage.NewStore(storage.NewFileKV(path)).Load()
	assert.Equal(t, domain.ExpenseYearly, loaded.ExpenseType)

	engine := calculation.NewCalculationEngine()
	before := engine.RunConfig(*cfg)
	after := engine.RunConfig(loaded)
	assert.True(t, before.YearsLeft.Equal(after.YearsLeft), "Runway should survive a save and load")
	assert.Equal(t, "50000", after.AnnualExpenses.String())
}

// TestCompareAndSolve runs the what-if and break-even layers on the same plan.
func TestCompareAndSolve(t *testing.T) {
	cfg := loadPlan(t)
	engine := calculation.NewCalculationEngine()

	t.Run("compare", func(t *testing.T) {
		set, err := compare.NewCompareEngine(engine).Compare(context.Background(), cfg, compare.CompareOptions{
			Templates:  []string{"returns_plus_1", "returns_minus_1"},
			Transforms: []string{"scale_corpus:factor=2"},
			ConfigPath: planFile,
		})
		require.NoError(t, err)
		require.Len(t, set.AlternativeResults, 3)

		base := set.BaseResult.YearsLeft
		assert.True(t, set.AlternativeResults[0].YearsLeft.GreaterThan(base), "Higher returns should last longer")
		assert.True(t, set.AlternativeResults[1].YearsLeft.LessThan(base), "Lower returns should run out sooner")
		assert.Equal(t, "custom", set.AlternativeResults[2].ScenarioName)
		assert.True(t, set.AlternativeResults[2].YearsLeft.GreaterThan(base), "A doubled corpus should last longer")

		text, err := (&compare.CSVFormatter{}).Format(set)
		require.NoError(t, err)
		assert.Len(t, strings.Split(strings.TrimSpace(text), "\n"), 5, "header, base and three alternatives")
	})

	t.Run("solve", func(t *testing.T) {
		target := decimal.NewFromInt(25)
		result, err := breakeven.NewDefaultSolver(engine).SolveAll(context.Background(), cfg, target)
		require.NoError(t, err)
		require.Len(t, result.Results, 3)

		for _, r := range result.Results {
			assert.True(t, r.Success, "%s should converge: %s", r.Target, r.ConvergenceInfo)
			assert.True(t, r.Projection.YearsLeft.GreaterThanOrEqual(target), "%s solution should last %s years", r.Target, target)

			// Re-projecting the solved configuration gives the same runway
			again := engine.RunConfig(*r.Config)
			assert.True(t, again.YearsLeft.Equal(r.Projection.YearsLeft))
		}
	})
}
