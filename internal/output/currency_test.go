package output

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,234.56", FormatCurrency(decimal.RequireFromString("1234.56"), "USD"))
	assert.Equal(t, "$1,234.57", FormatCurrency(decimal.RequireFromString("1234.565"), "usd"))
	assert.Equal(t, "$0.00", FormatCurrency(decimal.Zero, "USD"))

	inr := FormatCurrency(decimal.NewFromInt(50000), "")
	assert.True(t, strings.HasPrefix(inr, "₹"), inr)
	assert.Contains(t, inr, "50,000")

	assert.Equal(t, "XYZ 12.50", FormatCurrency(decimal.RequireFromString("12.5"), "xyz"))
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		amount   string
		code     string
		expected string
	}{
		{"15000000", "INR", "₹1.5 Cr"},
		{"10000000", "INR", "₹1.0 Cr"},
		{"6000000", "INR", "₹60.0 L"},
		{"100000", "INR", "₹1.0 L"},
		{"2500000", "USD", "$2.5M"},
		{"3400000000", "USD", "$3.4B"},
		{"12500", "USD", "$12.5K"},
		{"999.5", "USD", "$999.50"},
	}

	for _, tt := range tests {
		t.Run(tt.code+" "+tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCompact(decimal.RequireFromString(tt.amount), tt.code))
		})
	}

	small := FormatCompact(decimal.NewFromInt(99999), "INR")
	assert.NotContains(t, small, " L")
}

func TestFormatYearsAndAge(t *testing.T) {
	saturated := domain.ProjectionResult{YearsLeft: decimal.NewFromInt(100), SurvivalAge: decimal.NewFromInt(130)}
	assert.Equal(t, "100+ years", FormatYears(saturated))
	assert.Equal(t, "130+", FormatSurvivalAge(saturated))

	short := domain.ProjectionResult{YearsLeft: decimal.RequireFromString("12.46"), SurvivalAge: decimal.RequireFromString("57.46")}
	assert.Equal(t, "12.5 years", FormatYears(short))
	assert.Equal(t, "57", FormatSurvivalAge(short))

	assert.Equal(t, "-1.8%", FormatPercent(decimal.RequireFromString("-1.75")))
}
