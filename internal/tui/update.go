package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/runway/internal/domain"
)

// keyMap holds the global bindings. Control keys are used so that plain
// characters always reach the focused input.
type keyMap struct {
	Quit          key.Binding
	Help          key.Binding
	Projection    key.Binding
	Back          key.Binding
	Save          key.Binding
	Next          key.Binding
	Prev          key.Binding
	AddBucket     key.Binding
	AddExpense    key.Binding
	RemoveRow     key.Binding
	ToggleType    key.Binding
	ResetDefaults key.Binding
	Toggle        key.Binding
}

var keys = keyMap{
	Quit:          key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Help:          key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
	Projection:    key.NewBinding(key.WithKeys("ctrl+p", "f2"), key.WithHelp("ctrl+p", "projection")),
	Back:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Save:          key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Next:          key.NewBinding(key.WithKeys("tab", "down", "enter"), key.WithHelp("tab", "next field")),
	Prev:          key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	AddBucket:     key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "add bucket")),
	AddExpense:    key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "add expense")),
	RemoveRow:     key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "remove row")),
	ToggleType:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "monthly/yearly")),
	ResetDefaults: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset to defaults")),
	Toggle:        key.NewBinding(key.WithKeys(" ", "left", "right")),
}

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.loading = false
		cmd := m.setConfig(msg.Config)
		m.dirty = false
		return m, cmd

	case ConfigSavedMsg:
		if msg.Err != nil {
			m.err = fmt.Errorf("save failed: %w", msg.Err)
			return m, nil
		}
		m.dirty = false
		m.status = "Saved"
		return m, nil
	}

	// Cursor blink and other input messages
	return m.updateFocusedField(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Help):
		if m.currentScene == SceneHelp {
			return m, navigate(m.previousScene)
		}
		return m, navigate(SceneHelp)

	case key.Matches(msg, keys.Projection):
		if m.currentScene == SceneProjection {
			return m, navigate(SceneForm)
		}
		return m, navigate(SceneProjection)

	case key.Matches(msg, keys.Back):
		if m.currentScene != SceneForm {
			return m, navigate(SceneForm)
		}
		return m, nil

	case key.Matches(msg, keys.Save):
		if m.store == nil {
			m.status = "Nothing to save to"
			return m, nil
		}
		m.status = "Saving..."
		return m, saveConfigCmd(m.store, m.config)
	}

	if m.currentScene != SceneForm {
		return m, nil
	}
	return m.handleFormKey(msg)
}

func navigate(s Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: s}
	}
}

// handleFormKey processes keys on the input form
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Next):
		m.focus = (m.focus + 1) % len(m.fields)
		return m, m.focusCmd()

	case key.Matches(msg, keys.Prev):
		m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)
		return m, m.focusCmd()

	case key.Matches(msg, keys.AddBucket):
		ref := fieldRef{fieldBucketName, m.config.NextBucketID}
		return m.restructure(m.config.AddBucket(), &ref, "Added investment bucket")

	case key.Matches(msg, keys.AddExpense):
		ref := fieldRef{fieldExpenseName, m.config.NextExpenseID}
		return m.restructure(m.config.AddExpense(), &ref, "Added one-time expense")

	case key.Matches(msg, keys.RemoveRow):
		return m.removeFocusedRow()

	case key.Matches(msg, keys.ToggleType):
		return m.toggleExpenseType()

	case key.Matches(msg, keys.ResetDefaults):
		m.focus = 0
		return m.restructure(domain.DefaultConfig(), nil, "Reset to defaults (ctrl+s to keep)")
	}

	if ref, ok := m.focusedRef(); ok && ref.kind == fieldExpenseType {
		if key.Matches(msg, keys.Toggle) {
			return m.toggleExpenseType()
		}
		return m, nil
	}

	return m.updateFocusedField(msg)
}

// restructure installs cfg after a row was added or removed and moves focus
// to focusOn when given.
func (m Model) restructure(cfg domain.CalculatorConfig, focusOn *fieldRef, status string) (tea.Model, tea.Cmd) {
	m.setConfig(cfg)
	if focusOn != nil {
		if i := indexOf(m.fields, *focusOn); i >= 0 {
			m.focus = i
		}
	}
	m.dirty = true
	m.status = status
	return m, m.focusCmd()
}

func (m Model) removeFocusedRow() (tea.Model, tea.Cmd) {
	ref, ok := m.focusedRef()
	switch {
	case ok && ref.kind.isBucket():
		return m.restructure(m.config.RemoveBucket(ref.id), nil, "Removed investment bucket")
	case ok && ref.kind.isExpense():
		return m.restructure(m.config.RemoveExpense(ref.id), nil, "Removed one-time expense")
	}
	m.status = "Only bucket and expense rows can be removed"
	return m, nil
}

func (m Model) toggleExpenseType() (tea.Model, tea.Cmd) {
	cfg := m.config.ToggleExpenseType()
	return m.restructure(cfg, nil, "Expenses are now "+string(cfg.ExpenseType))
}

// updateFocusedField forwards msg to the focused input and, when its text
// changed, applies the new value and recomputes the projection.
func (m Model) updateFocusedField(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return m, nil
	}

	f := &m.fields[m.focus]
	before := f.Value()

	var cmd tea.Cmd
	f.Field, cmd = f.Field.Update(msg)

	if f.Value() == before || f.ref.kind == fieldExpenseType {
		return m, cmd
	}

	cfg, err := applyField(m.config, f.ref, f.Value())
	if err != nil {
		f.Err = err.Error()
		return m, cmd
	}

	f.Err = ""
	m.config = cfg
	m.recompute()
	m.dirty = true
	m.status = ""
	return m, cmd
}
