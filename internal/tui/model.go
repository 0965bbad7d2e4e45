package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/rgehrsitz/runway/internal/output"
	"github.com/rgehrsitz/runway/internal/storage"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Persistence; nil runs without saving
	store *storage.Store

	calcEngine *calculation.CalculationEngine
	currency   string

	// Inputs and the projection they produce
	config domain.CalculatorConfig
	result domain.ProjectionResult
	alerts []calculation.Alert

	// Form state
	fields []formField
	focus  int
	dirty  bool // edited since the last load or save

	status string
	err    error

	loading bool
}

// NewModel creates a new application model. The configuration is read from
// store when the program starts.
func NewModel(store *storage.Store, currency string) Model {
	if currency == "" {
		currency = output.DefaultCurrency
	}
	m := Model{
		currentScene: SceneForm,
		store:        store,
		calcEngine:   calculation.NewCalculationEngine(),
		currency:     currency,
		width:        100,
		height:       30,
		loading:      store != nil,
	}
	m.setConfig(domain.DefaultConfig())
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.store == nil {
		return textinput.Blink
	}
	return tea.Batch(loadConfigCmd(m.store), textinput.Blink)
}

// loadConfigCmd returns a command that reads the saved configuration. The
// store falls back to the default configuration on its own.
func loadConfigCmd(store *storage.Store) tea.Cmd {
	return func() tea.Msg {
		return ConfigLoadedMsg{Config: store.Load()}
	}
}

// saveConfigCmd returns a command that persists cfg.
func saveConfigCmd(store *storage.Store, cfg domain.CalculatorConfig) tea.Cmd {
	return func() tea.Msg {
		return ConfigSavedMsg{Err: store.Save(cfg)}
	}
}

// Config returns the configuration as currently edited.
func (m Model) Config() domain.CalculatorConfig {
	return m.config
}

// Result returns the projection of the current configuration.
func (m Model) Result() domain.ProjectionResult {
	return m.result
}

// Scene returns the scene being shown.
func (m Model) Scene() Scene {
	return m.currentScene
}

// setConfig replaces the configuration, rebuilds the form and recomputes.
// Focus stays on the same position where possible.
func (m *Model) setConfig(cfg domain.CalculatorConfig) tea.Cmd {
	m.config = cfg
	m.fields = buildFields(cfg)
	if m.focus >= len(m.fields) {
		m.focus = len(m.fields) - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
	m.recompute()
	return m.focusCmd()
}

// recompute projects the current configuration.
func (m *Model) recompute() {
	m.result = m.calcEngine.RunConfig(m.config)
	m.alerts = calculation.Assess(m.config.Inflation, m.result)
}

// focusCmd focuses the current field and blurs every other one.
func (m *Model) focusCmd() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.fields {
		if i == m.focus {
			cmd = m.fields[i].Focus()
		} else {
			m.fields[i].Blur()
		}
	}
	return cmd
}

// focusedRef returns the reference of the focused field.
func (m Model) focusedRef() (fieldRef, bool) {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return fieldRef{}, false
	}
	return m.fields[m.focus].ref, true
}
