package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/runway/internal/tui/tuistyles"
)

// Field is a labelled single-line text input with an optional error note.
type Field struct {
	Label string
	Input textinput.Model
	Err   string
}

// NewField creates an unfocused field holding value.
func NewField(label, value string) Field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 40
	ti.Width = 24
	ti.SetValue(value)
	return Field{Label: label, Input: ti}
}

// Focus gives the field the cursor.
func (f *Field) Focus() tea.Cmd {
	return f.Input.Focus()
}

// Blur removes the cursor.
func (f *Field) Blur() {
	f.Input.Blur()
}

// Focused reports whether the field has the cursor.
func (f Field) Focused() bool {
	return f.Input.Focused()
}

// Value returns the current text.
func (f Field) Value() string {
	return f.Input.Value()
}

// SetValue replaces the text.
func (f *Field) SetValue(s string) {
	f.Input.SetValue(s)
}

// Update forwards msg to the text input.
func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	var cmd tea.Cmd
	f.Input, cmd = f.Input.Update(msg)
	return f, cmd
}

// View renders "label  [input]" and the error note when there is one.
func (f Field) View() string {
	labelStyle := tuistyles.FieldLabelStyle
	if f.Focused() {
		labelStyle = tuistyles.FocusedLabelStyle
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(f.Label), f.Input.View())
	if f.Err != "" {
		line += "  " + tuistyles.FieldErrorStyle.Render(f.Err)
	}
	return line
}
