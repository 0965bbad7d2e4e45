package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/runway/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct {
	Currency string
}

// Format generates a formatted table for a single target
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("RUNWAY BREAK-EVEN\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Target:              %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Target Runway:       %s years\n", result.TargetYears.String()))
	sb.WriteString(fmt.Sprintf("Current Runway:      %s years\n", result.BaseYearsLeft.StringFixed(1)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("SOLUTION\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(tf.formatSolution(result))
	sb.WriteString("\n")

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	p := result.Projection
	sb.WriteString(fmt.Sprintf("Total Corpus:        %s\n", tf.money(p.TotalCorpus)))
	sb.WriteString(fmt.Sprintf("Weighted Return:     %s\n", output.FormatPercent(p.WeightedReturn)))
	sb.WriteString(fmt.Sprintf("Real Return:         %s\n", output.FormatPercent(p.RealReturn)))
	sb.WriteString(fmt.Sprintf("Money Lasts:         %s\n", output.FormatYears(p)))
	sb.WriteString(fmt.Sprintf("Until Age:           %s\n", output.FormatSurvivalAge(p)))
	sb.WriteString("\n")

	return sb.String()
}

// FormatMulti formats the solutions for every target
func (tf *TableFormatter) FormatMulti(result *MultiResult) string {
	var sb strings.Builder

	sb.WriteString("RUNWAY BREAK-EVEN\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Target Runway:  %s years\n", result.TargetYears.String()))
	sb.WriteString(fmt.Sprintf("Current Runway: %s years\n\n", result.BaseYearsLeft.StringFixed(1)))

	sb.WriteString(fmt.Sprintf("%-12s %16s %16s %16s %12s\n", "Target", "Solution", "Today", "Change", "Runway"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for i := range result.Results {
		r := &result.Results[i]
		solution, today, change := tf.columns(r)
		if !r.Success {
			solution = "not reachable"
		}
		sb.WriteString(fmt.Sprintf("%-12s %16s %16s %16s %12s\n",
			r.Target, solution, today, change, output.FormatYears(r.Projection)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatMulti formats multi-target results as JSON
func (jf *JSONFormatter) FormatMulti(result *MultiResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data) + "\n", nil
}

// Helper methods

func (tf *TableFormatter) formatSolution(r *Result) string {
	solution, today, change := tf.columns(r)
	switch r.Target {
	case TargetExpenses:
		label := capitalize(string(r.ExpenseType)) + " Expenses:"
		return fmt.Sprintf("%-21s%s (today %s, %s)\n", label, solution, today, change)
	case TargetCorpus:
		return fmt.Sprintf("Total Corpus:        %s (today %s, %s)\n", solution, today, change)
	case TargetReturns:
		return fmt.Sprintf("Return Shift:        %s (weighted return %s)\n",
			solution, output.FormatPercent(r.Projection.WeightedReturn))
	}
	return ""
}

// columns renders the solved value, today's value and the change.
func (tf *TableFormatter) columns(r *Result) (string, string, string) {
	change := r.Change()
	if r.Target == TargetReturns {
		return tf.points(r.Value), tf.points(r.BaseValue), tf.points(change)
	}
	return tf.money(r.Value), tf.money(r.BaseValue), tf.deltaSymbol(change) + tf.money(change.Abs())
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) money(d decimal.Decimal) string {
	return output.FormatCompact(d, tf.Currency)
}

func (tf *TableFormatter) points(d decimal.Decimal) string {
	return tf.deltaSymbol(d) + d.Abs().StringFixed(2) + " pts"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return ""
}
