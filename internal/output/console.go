package output

import (
	"bytes"
	"fmt"
	"strings"
)

// ConsoleFormatter renders a plain-text report for terminals without styling.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	rule := strings.Repeat("=", 64)
	res := r.Result

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "RETIREMENT RUNWAY")
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "Total Corpus:           %s\n", r.Money(res.TotalCorpus))
	if res.ContributionsValue.IsPositive() {
		fmt.Fprintf(&buf, "  from contributions:   %s\n", r.Money(res.ContributionsValue))
	}
	fmt.Fprintf(&buf, "Weighted Return:        %s\n", FormatPercent(res.WeightedReturn))
	fmt.Fprintf(&buf, "Annual Expenses:        %s\n", r.Money(res.AnnualExpenses))
	fmt.Fprintf(&buf, "Real Return:            %s\n", FormatPercent(res.RealReturn))
	fmt.Fprintf(&buf, "Money Lasts:            %s\n", FormatYears(res))
	fmt.Fprintf(&buf, "Until Age:              %s\n", FormatSurvivalAge(res))

	for _, a := range r.Alerts {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "[%s] %s\n", strings.ToUpper(a.Severity.String()), a.Title)
		fmt.Fprintf(&buf, "  %s\n", a.Message)
	}

	if len(res.FutureOneTimeExpenses) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "FUTURE ONE-TIME EXPENSES")
		fmt.Fprintln(&buf, strings.Repeat("-", 24))
		for _, e := range res.FutureOneTimeExpenses {
			fmt.Fprintf(&buf, "%-30s age %-6s %s\n", e.Name, e.AgeWhenDue.String(), r.Money(e.FutureValue))
		}
	}

	if rows := r.Allocation(); len(rows) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "PORTFOLIO ALLOCATION")
		fmt.Fprintln(&buf, strings.Repeat("-", 20))
		for _, a := range rows {
			fmt.Fprintf(&buf, "%-30s %6s  (%s)\n", a.Name, FormatPercent(a.Percent), r.Money(a.Amount))
		}
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "PROJECTION")
	fmt.Fprintln(&buf, strings.Repeat("-", 10))
	if r.DrawDown() {
		fmt.Fprintln(&buf, "No growth is modelled for a non-positive weighted return; no yearly projection.")
		return buf.Bytes(), nil
	}
	fmt.Fprintf(&buf, "%-5s %-6s %14s %14s %14s  %s\n", "Year", "Age", "Corpus", "Regular", "One-time", "Items")
	for _, y := range res.YearlyData {
		oneTime := ""
		if y.OneTimeExpenses.IsPositive() {
			oneTime = r.Money(y.OneTimeExpenses)
		}
		fmt.Fprintf(&buf, "%-5d %-6s %14s %14s %14s  %s\n",
			y.Year, y.Age.String(), r.Money(y.Corpus), r.Money(y.RegularExpenses), oneTime, itemNames(y.OneTimeItems))
	}

	return buf.Bytes(), nil
}
