package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/rgehrsitz/runway/internal/output"
	"github.com/rgehrsitz/runway/internal/tui/components"
)

// wideLayout is the terminal width from which the form and the summary sit
// side by side.
const wideLayout = 110

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("Loading saved configuration..."))
	}

	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err)))
	}

	var content string
	switch m.currentScene {
	case SceneForm:
		content = m.renderForm()
	case SceneProjection:
		content = m.renderProjection()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("RUNWAY - Retirement Runway Calculator")
	crumb := m.currentScene.String()
	if m.dirty {
		crumb += " (unsaved changes)"
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

func (m Model) renderStatusBar() string {
	var bindings []key.Binding
	switch m.currentScene {
	case SceneForm:
		bindings = []key.Binding{
			keys.Next, keys.AddBucket, keys.AddExpense, keys.RemoveRow,
			keys.Projection, keys.Save, keys.Help, keys.Quit,
		}
	default:
		bindings = []key.Binding{keys.Back, keys.Save, keys.Help, keys.Quit}
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, shortcut(b))
	}

	text := strings.Join(parts, " • ")
	if m.status != "" {
		text = InfoStyle.Render(m.status) + "  " + text
	}
	return StatusBarStyle.Width(m.width).Render(text)
}

func shortcut(b key.Binding) string {
	h := b.Help()
	return StatusKeyStyle.Render(h.Key) + " " + h.Desc
}

func (m Model) money(amount decimal.Decimal) string {
	return output.FormatCompact(amount, m.currency)
}

// renderForm renders the editable inputs next to (or under) the summary.
func (m Model) renderForm() string {
	summary := m.renderSummary()

	available := m.height - 4
	if m.width < wideLayout {
		available -= lipgloss.Height(summary)
	}
	if available < 6 {
		available = 6
	}

	lines, focusLine := m.formLines()
	form := strings.Join(window(lines, focusLine, available), "\n")

	if m.width >= wideLayout {
		return lipgloss.JoinHorizontal(lipgloss.Top, form, "   ", summary)
	}
	return lipgloss.JoinVertical(lipgloss.Left, summary, form)
}

// formLines renders every field with its section headings and returns the
// line index of the focused field.
func (m Model) formLines() ([]string, int) {
	var lines []string
	focusLine := 0

	shares := map[int]string{}
	for _, b := range m.config.InvestmentBuckets {
		shares[b.ID] = output.FormatPercent(m.result.AllocationPercent(b.Amount))
	}
	due := map[int]domain.FutureOneTimeExpense{}
	for _, e := range m.result.FutureOneTimeExpenses {
		due[e.ID] = e
	}

	lines = append(lines, SectionStyle.Render("Basics"))
	lastRow := fieldRef{kind: -1}

	for i, f := range m.fields {
		row := fieldRef{kind: f.ref.kind, id: f.ref.id}
		switch {
		case f.ref.kind.isBucket():
			row.kind = fieldBucketName
		case f.ref.kind.isExpense():
			row.kind = fieldExpenseName
		}

		if row != lastRow {
			if row.kind == fieldBucketName && !lastRow.kind.isBucket() {
				lines = append(lines, SectionStyle.Render("Investment Buckets"))
			}
			if row.kind == fieldExpenseName && !lastRow.kind.isExpense() {
				if !lastRow.kind.isBucket() {
					lines = append(lines, SectionStyle.Render("Investment Buckets"), SubtitleStyle.Render("  none (ctrl+b to add)"))
				}
				lines = append(lines, SectionStyle.Render("One-Time Expenses"))
			}
			switch row.kind {
			case fieldBucketName:
				lines = append(lines, SubtitleStyle.Render(fmt.Sprintf("Bucket #%d  %s of corpus", row.id, shares[row.id])))
			case fieldExpenseName:
				note := "not scheduled"
				if e, ok := due[row.id]; ok {
					note = fmt.Sprintf("%s at age %s", m.money(e.FutureValue), e.AgeWhenDue.StringFixed(0))
				}
				lines = append(lines, SubtitleStyle.Render(fmt.Sprintf("Expense #%d  %s", row.id, note)))
			}
			lastRow = row
		}

		if i == m.focus {
			focusLine = len(lines)
		}
		if f.ref.kind == fieldExpenseType {
			lines = append(lines, m.renderExpenseType(f))
			continue
		}
		lines = append(lines, f.View())
	}

	if !lastRow.kind.isBucket() && !lastRow.kind.isExpense() {
		lines = append(lines, SectionStyle.Render("Investment Buckets"), SubtitleStyle.Render("  none (ctrl+b to add)"))
	}
	if !lastRow.kind.isExpense() {
		lines = append(lines, SectionStyle.Render("One-Time Expenses"), SubtitleStyle.Render("  none (ctrl+e to add)"))
	}

	return lines, focusLine
}

func (m Model) renderExpenseType(f formField) string {
	monthly, yearly := "( )", "( )"
	if m.config.ExpenseType == domain.ExpenseYearly {
		yearly = "(•)"
	} else {
		monthly = "(•)"
	}
	labelStyle := FieldLabelStyle
	if f.Focused() {
		labelStyle = FocusedLabelStyle
	}
	return labelStyle.Render(f.Label) + monthly + " Monthly  " + yearly + " Yearly"
}

// window returns at most height lines around focus.
func window(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := focus - height/2
	if start < 0 {
		start = 0
	}
	if start > len(lines)-height {
		start = len(lines) - height
	}
	return lines[start : start+height]
}

// summaryCards returns the headline figures of the current projection.
func (m Model) summaryCards() []*components.MetricCard {
	r := m.result
	low := decimal.NewFromInt(calculation.LowDurationYears)

	years := components.NewMetricCard("Years Left", output.FormatYears(r))
	if r.YearsLeft.LessThan(low) {
		years.WithStatus(false, fmt.Sprintf("below %d years", calculation.LowDurationYears))
	} else {
		years.WithStatus(true, "")
	}

	realCard := components.NewMetricCard("Real Return", output.FormatPercent(r.RealReturn))
	if r.RealReturn.IsNegative() {
		realCard.WithStatus(false, "below inflation")
	}

	return []*components.MetricCard{
		components.NewMetricCard("Total Corpus", m.money(r.TotalCorpus)),
		components.NewMetricCard("Weighted Return", output.FormatPercent(r.WeightedReturn)),
		realCard,
		components.NewMetricCard("Annual Expenses", m.money(r.AnnualExpenses)),
		years,
		components.NewMetricCard("Money Lasts Until", "Age "+output.FormatSurvivalAge(r)),
	}
}

func (m Model) renderAlerts() string {
	var boxes []string
	for _, a := range m.alerts {
		style := WarningStyle
		if a.Severity == calculation.SeverityCritical {
			style = CriticalStyle
		}
		boxes = append(boxes, style.Width(50).Render(a.Title+"\n"+a.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}

func (m Model) renderSummary() string {
	parts := []string{components.MetricGrid(m.summaryCards(), 2)}
	if len(m.alerts) > 0 {
		parts = append(parts, m.renderAlerts())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderProjection renders the full results: figures, alerts, one-time
// expenses, allocation and the yearly corpus.
func (m Model) renderProjection() string {
	r := m.result
	parts := []string{components.MetricGrid(m.summaryCards(), 3)}

	if len(m.alerts) > 0 {
		parts = append(parts, m.renderAlerts())
	}

	if len(r.FutureOneTimeExpenses) > 0 {
		parts = append(parts, SectionStyle.Render("Future One-Time Expenses"))
		for _, e := range r.FutureOneTimeExpenses {
			parts = append(parts, fmt.Sprintf("  %-24s %12s  at age %s (in %d years)",
				e.Name, m.money(e.FutureValue), e.AgeWhenDue.StringFixed(0), e.YearsFromNow))
		}
	}

	allocation := output.NewReport(m.config.Params(), r, m.currency).Allocation()
	if len(allocation) > 0 {
		parts = append(parts, SectionStyle.Render("Allocation"))
		for _, row := range allocation {
			parts = append(parts, fmt.Sprintf("  %-24s %12s  %6s of corpus, returns %s",
				row.Name, m.money(row.Amount), output.FormatPercent(row.Percent), output.FormatPercent(row.Return)))
		}
	}

	parts = append(parts, SectionStyle.Render("Yearly Projection"))
	if len(r.YearlyData) == 0 {
		parts = append(parts, InfoStyle.Render("  No yearly breakdown: the weighted return is not positive, so the corpus is drawn down without growth."))
	} else {
		chart := components.NewRunwayChart("").WithWidth(30)
		for _, y := range r.YearlyData {
			note := m.money(y.Corpus)
			if len(y.OneTimeItems) > 0 {
				names := make([]string, 0, len(y.OneTimeItems))
				for _, item := range y.OneTimeItems {
					names = append(names, item.Name)
				}
				note += "  after " + strings.Join(names, ", ")
			}
			chart.Add(fmt.Sprintf("Y%d age %s", y.Year, y.Age.StringFixed(0)), y.Corpus, note)
		}
		parts = append(parts, chart.Render())
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHelp() string {
	rows := []struct{ keys, desc string }{
		{"tab / ↓ / enter", "Next field"},
		{"shift+tab / ↑", "Previous field"},
		{"space / ← / →", "Switch monthly or yearly (on Expense Type)"},
		{"ctrl+t", "Switch monthly or yearly"},
		{"ctrl+b", "Add an investment bucket"},
		{"ctrl+e", "Add a one-time expense"},
		{"ctrl+d", "Remove the bucket or expense being edited"},
		{"ctrl+r", "Reset every input to the defaults"},
		{"ctrl+p / f2", "Show the full projection"},
		{"ctrl+s", "Save the inputs"},
		{"f1", "Show or hide this help"},
		{"esc", "Back to the inputs"},
		{"ctrl+c", "Quit"},
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Keyboard"))
	sb.WriteString("\n\n")
	for _, r := range rows {
		sb.WriteString(HelpKeyStyle.Width(18).Render(r.keys))
		sb.WriteString(HelpDescStyle.Render(r.desc))
		sb.WriteString("\n")
	}
	sb.WriteString("\nEvery change is recalculated immediately. Empty numbers count as zero.")

	return BorderStyle.Render(sb.String())
}
