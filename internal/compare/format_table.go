package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct {
	Currency string
}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("RETIREMENT RUNWAY COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Corpus",
		numWidth, "Real Return",
		numWidth, "Runway",
		numWidth, "Lasts Until"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.ScenarioName, alt.Description))
			sb.WriteString(fmt.Sprintf("  Runway:           %s%s years\n",
				tf.deltaSymbol(alt.YearsLeftDiff), alt.YearsLeftDiff.Abs().StringFixed(1)))
			sb.WriteString(fmt.Sprintf("  Real Return:      %s%s points\n",
				tf.deltaSymbol(alt.RealReturnDiff), alt.RealReturnDiff.Abs().StringFixed(1)))
			if !alt.CorpusDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Corpus:           %s%s\n",
					tf.deltaSymbol(alt.CorpusDiffFromBase), tf.money(alt.CorpusDiffFromBase)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	runway := result.YearsLeft.StringFixed(1) + " years"
	if result.Saturated {
		runway = fmt.Sprintf("%d+ years", calculation.HorizonYears)
	}

	age := result.SurvivalAge.Round(0).String()
	if result.Saturated {
		age += "+"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.money(result.TotalCorpus),
		numWidth, output.FormatPercent(result.RealReturn),
		numWidth, runway,
		numWidth, age)
}

// money prints an absolute amount in compact form; the sign comes from deltaSymbol.
func (tf *TableFormatter) money(d decimal.Decimal) string {
	code := tf.Currency
	if code == "" {
		code = output.DefaultCurrency
	}
	return output.FormatCompact(d.Abs(), code)
}

// deltaSymbol returns a + or - sign for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsNegative() {
		return "-"
	}
	if delta.IsPositive() {
		return "+"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary of runway changes
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s", compSet.BaseScenarioName))
	if compSet.BaseResult != nil {
		sb.WriteString(fmt.Sprintf(" (%s years)", compSet.BaseResult.YearsLeft.StringFixed(1)))
	}

	for _, alt := range compSet.AlternativeResults {
		change := "="
		if !alt.YearsLeftDiff.IsZero() {
			change = tf.deltaSymbol(alt.YearsLeftDiff) + alt.YearsLeftDiff.Abs().StringFixed(1) + "y"
		}
		sb.WriteString(fmt.Sprintf(" | %s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
