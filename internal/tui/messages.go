package tui

import (
	"github.com/rgehrsitz/runway/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneProjection
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Inputs"
	case SceneProjection:
		return "Projection"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg carries the configuration read at start-up
type ConfigLoadedMsg struct {
	Config domain.CalculatorConfig
}

// ConfigSavedMsg reports the outcome of a save
type ConfigSavedMsg struct {
	Err error
}
