package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
current_age: 45
inflation: 6.5
monthly_expenses: 80000
expense_type: monthly
investment_buckets:
  - id: 1
    name: Fixed Deposits
    amount: 2500000
    return: 7
  - id: 2
    name: Index Funds
    amount: 7500000
    return: 12
one_time_expenses:
  - id: 1
    name: Daughter's Wedding
    years_from_now: 8
    current_cost: 1500000
    inflation_rate: 7
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInputParser_LoadFromFile(t *testing.T) {
	parser := NewInputParser()

	config, err := parser.LoadFromFile(writeFile(t, "plan.yaml", sampleYAML))
	require.NoError(t, err)

	assert.True(t, config.CurrentAge.Equal(decimal.NewFromInt(45)))
	assert.True(t, config.Inflation.Equal(decimal.RequireFromString("6.5")))
	assert.Equal(t, domain.ExpenseMonthly, config.ExpenseType)
	require.Len(t, config.InvestmentBuckets, 2)
	assert.Equal(t, "Index Funds", config.InvestmentBuckets[1].Name)
	require.Len(t, config.OneTimeExpenses, 1)
	assert.Equal(t, 8, config.OneTimeExpenses[0].YearsFromNow)

	// id counters are derived when the file omits them
	assert.Equal(t, 3, config.NextBucketID)
	assert.Equal(t, 2, config.NextExpenseID)
}

func TestInputParser_LoadFromFile_JSON(t *testing.T) {
	parser := NewInputParser()
	doc := `{
  "currentAge": 50,
  "inflation": "5",
  "monthlyExpenses": 1200000,
  "expenseType": "yearly",
  "investmentBuckets": [{"id": 4, "name": "Bonds", "amount": 30000000, "return": 8}],
  "oneTimeExpenses": [],
  "nextBucketId": 5,
  "nextExpenseId": 1
}`

	config, err := parser.LoadFromFile(writeFile(t, "plan.json", doc))
	require.NoError(t, err)

	assert.Equal(t, domain.ExpenseYearly, config.ExpenseType)
	assert.True(t, config.Inflation.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 5, config.NextBucketID)
}

func TestInputParser_LoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	_, err = parser.LoadFromFile(writeFile(t, "bad.yaml", "current_age: [unclosed"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")

	_, err = parser.LoadFromFile(writeFile(t, "weekly.yaml", "expense_type: weekly\n"))
	assert.Error(t, err)
}

func TestInputParser_ValidateConfiguration(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		modify  func(*domain.CalculatorConfig)
		wantErr string
	}{
		{
			name:   "default is valid",
			modify: func(*domain.CalculatorConfig) {},
		},
		{
			name: "negative amounts are tolerated",
			modify: func(c *domain.CalculatorConfig) {
				c.InvestmentBuckets[0].Amount = decimal.NewFromInt(-5)
				c.Inflation = decimal.NewFromInt(-3)
			},
		},
		{
			name: "duplicate bucket id",
			modify: func(c *domain.CalculatorConfig) {
				c.InvestmentBuckets[1].ID = c.InvestmentBuckets[0].ID
			},
			wantErr: "duplicate id 1",
		},
		{
			name: "bucket id ahead of counter",
			modify: func(c *domain.CalculatorConfig) {
				c.NextBucketID = 2
			},
			wantErr: "next_bucket_id",
		},
		{
			name: "expense without name",
			modify: func(c *domain.CalculatorConfig) {
				c.OneTimeExpenses[0].Name = ""
			},
			wantErr: "name is required",
		},
		{
			name: "negative years from now",
			modify: func(c *domain.CalculatorConfig) {
				c.OneTimeExpenses[1].YearsFromNow = -1
			},
			wantErr: "years_from_now cannot be negative",
		},
		{
			name: "unknown expense type",
			modify: func(c *domain.CalculatorConfig) {
				c.ExpenseType = "weekly"
			},
			wantErr: "invalid expense type",
		},
		{
			name: "contributions need a retirement age",
			modify: func(c *domain.CalculatorConfig) {
				c.Contributions = []domain.ContributionBucket{{ID: 1, Name: "SIP", MonthlyAmount: decimal.NewFromInt(10000)}}
			},
			wantErr: "retirement age",
		},
		{
			name: "contributions with retirement age",
			modify: func(c *domain.CalculatorConfig) {
				c.RetirementAge = decimal.NewFromInt(55)
				c.Contributions = []domain.ContributionBucket{{ID: 1, Name: "SIP", MonthlyAmount: decimal.NewFromInt(10000)}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := domain.DefaultConfig()
			tt.modify(&config)

			err := parser.ValidateConfiguration(&config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.Error(t, parser.ValidateConfiguration(nil))
}

func TestInputParser_WriteToFileRoundTrip(t *testing.T) {
	parser := NewInputParser()
	original := domain.DefaultConfig()
	path := filepath.Join(t.TempDir(), "export.yaml")

	require.NoError(t, parser.WriteToFile(path, &original))
	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, loaded.MonthlyExpenses.Equal(original.MonthlyExpenses))
	assert.Equal(t, original.NextBucketID, loaded.NextBucketID)
	require.Len(t, loaded.InvestmentBuckets, len(original.InvestmentBuckets))
	for i := range original.InvestmentBuckets {
		assert.True(t, loaded.InvestmentBuckets[i].Amount.Equal(original.InvestmentBuckets[i].Amount))
	}

	assert.Error(t, parser.WriteToFile(path, nil))
}
