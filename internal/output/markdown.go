package output

import (
	"bytes"
	"fmt"
	"strings"
)

// MarkdownFormatter renders the report as GitHub-flavoured markdown. The
// pretty and html formatters render this same document.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	res := r.Result

	fmt.Fprintln(&buf, "# Retirement Runway")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "## Key Metrics")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "| Metric | Value |")
	fmt.Fprintln(&buf, "|---|---:|")
	fmt.Fprintf(&buf, "| Total Corpus | %s |\n", r.Money(res.TotalCorpus))
	if res.ContributionsValue.IsPositive() {
		fmt.Fprintf(&buf, "| Contributions at Retirement | %s |\n", r.Money(res.ContributionsValue))
	}
	fmt.Fprintf(&buf, "| Weighted Return | %s |\n", FormatPercent(res.WeightedReturn))
	fmt.Fprintf(&buf, "| Annual Expenses | %s |\n", r.Money(res.AnnualExpenses))
	fmt.Fprintf(&buf, "| Real Return (after inflation) | %s |\n", FormatPercent(res.RealReturn))
	fmt.Fprintf(&buf, "| Money Lasts | %s |\n", FormatYears(res))
	fmt.Fprintf(&buf, "| Until Age | %s |\n", FormatSurvivalAge(res))
	fmt.Fprintln(&buf)

	for _, a := range r.Alerts {
		fmt.Fprintf(&buf, "> **%s:** %s\n\n", a.Title, a.Message)
	}

	if len(res.FutureOneTimeExpenses) > 0 {
		fmt.Fprintln(&buf, "## Future One-Time Expenses")
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "| Expense | Age | Future Value |")
		fmt.Fprintln(&buf, "|---|---:|---:|")
		for _, e := range res.FutureOneTimeExpenses {
			fmt.Fprintf(&buf, "| %s | %s | %s |\n", cell(e.Name), e.AgeWhenDue.String(), r.Money(e.FutureValue))
		}
		fmt.Fprintln(&buf)
	}

	if rows := r.Allocation(); len(rows) > 0 {
		fmt.Fprintln(&buf, "## Portfolio Allocation")
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "| Bucket | Return | Share | Amount |")
		fmt.Fprintln(&buf, "|---|---:|---:|---:|")
		for _, a := range rows {
			fmt.Fprintf(&buf, "| %s | %s | %s | %s |\n", cell(a.Name), FormatPercent(a.Return), FormatPercent(a.Percent), r.Money(a.Amount))
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "## Projection")
	fmt.Fprintln(&buf)
	if r.DrawDown() {
		fmt.Fprintln(&buf, "_No growth is modelled for a non-positive weighted return; there is no yearly projection._")
		return buf.Bytes(), nil
	}
	fmt.Fprintln(&buf, "| Year | Age | Corpus | Regular | One-time |")
	fmt.Fprintln(&buf, "|---:|---:|---:|---:|---|")
	for _, y := range res.YearlyData {
		oneTime := ""
		if y.OneTimeExpenses.IsPositive() {
			oneTime = fmt.Sprintf("%s (%s)", r.Money(y.OneTimeExpenses), cell(itemNames(y.OneTimeItems)))
		}
		fmt.Fprintf(&buf, "| %d | %s | %s | %s | %s |\n",
			y.Year, y.Age.String(), r.Money(y.Corpus), r.Money(y.RegularExpenses), oneTime)
	}

	return buf.Bytes(), nil
}

// cell escapes text for use inside a markdown table.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
