package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/runway/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// Bar is one labelled value of a RunwayChart.
type Bar struct {
	Label string
	Value decimal.Decimal
	Note  string // printed after the bar, e.g. the formatted amount
}

// RunwayChart draws one horizontal bar per row, scaled to the largest value.
// Negative values draw as empty bars.
type RunwayChart struct {
	Title string
	Bars  []Bar
	Width int // width of the longest bar in cells
}

// NewRunwayChart creates a chart with a default bar width
func NewRunwayChart(title string) *RunwayChart {
	return &RunwayChart{Title: title, Width: 30}
}

// Add appends a bar
func (c *RunwayChart) Add(label string, value decimal.Decimal, note string) *RunwayChart {
	c.Bars = append(c.Bars, Bar{Label: label, Value: value, Note: note})
	return c
}

// WithWidth sets the width of the longest bar
func (c *RunwayChart) WithWidth(width int) *RunwayChart {
	c.Width = width
	return c
}

// Cells returns how many cells the bar for v occupies.
func (c *RunwayChart) Cells(v decimal.Decimal) int {
	peak := decimal.Zero
	for _, b := range c.Bars {
		if b.Value.GreaterThan(peak) {
			peak = b.Value
		}
	}
	if !v.IsPositive() || !peak.IsPositive() || c.Width <= 0 {
		return 0
	}
	cells := v.Div(peak).Mul(decimal.NewFromInt(int64(c.Width))).Ceil().IntPart()
	if cells > int64(c.Width) {
		cells = int64(c.Width)
	}
	return int(cells)
}

// Render returns the styled chart
func (c *RunwayChart) Render() string {
	if len(c.Bars) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	labelWidth := 0
	for _, b := range c.Bars {
		if w := lipgloss.Width(b.Label); w > labelWidth {
			labelWidth = w
		}
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Width(labelWidth).
		Align(lipgloss.Right)
	barStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSecondary)
	emptyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(tuistyles.TitleStyle.Render(c.Title))
		sb.WriteString("\n")
	}

	for _, b := range c.Bars {
		sb.WriteString(labelStyle.Render(b.Label))
		sb.WriteString(" │")
		n := c.Cells(b.Value)
		if n == 0 {
			sb.WriteString(emptyStyle.Render("·"))
		} else {
			sb.WriteString(barStyle.Render(strings.Repeat("█", n)))
		}
		if b.Note != "" {
			sb.WriteString(" ")
			sb.WriteString(tuistyles.SubtitleStyle.Render(b.Note))
		}
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
