package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/runway/internal/tui/tuistyles"
)

// MetricCard displays a single result figure with a label and an optional
// note underneath.
type MetricCard struct {
	Label  string
	Value  string
	Note   string
	Status *Status
	Width  int
}

// Status colours a card's value as good or bad news.
type Status struct {
	Good   bool
	Reason string // e.g. "below 20 years"
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 24,
	}
}

// WithStatus marks the value as good or bad
func (m *MetricCard) WithStatus(good bool, reason string) *MetricCard {
	m.Status = &Status{Good: good, Reason: reason}
	return m
}

// WithNote adds a muted line below the value
func (m *MetricCard) WithNote(note string) *MetricCard {
	m.Note = note
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	label := tuistyles.MetricLabelStyle.Render(m.Label)

	valueStyle := tuistyles.MetricValueStyle
	var status string
	if m.Status != nil {
		valueStyle = tuistyles.MetricTrendStyle(m.Status.Good).Bold(true)
		if m.Status.Reason != "" {
			status = "\n" + tuistyles.MetricTrendStyle(m.Status.Good).Render(
				fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Status.Good), m.Status.Reason))
		}
	}
	value := valueStyle.Render(m.Value)

	var note string
	if m.Note != "" {
		note = "\n" + tuistyles.SubtitleStyle.Render(m.Note)
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width)

	return cardStyle.Render(label + "\n" + value + status + note)
}

// RenderCompact returns a single "label: value" line without a border
func (m *MetricCard) RenderCompact() string {
	valueStyle := tuistyles.MetricValueStyle
	if m.Status != nil {
		valueStyle = tuistyles.MetricTrendStyle(m.Status.Good)
	}
	return tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + valueStyle.Render(m.Value)
}

// MetricGrid renders cards in rows of the given number of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	rows := []string{}
	currentRow := []string{}

	for i, card := range cards {
		currentRow = append(currentRow, card.Render())

		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = []string{}
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
