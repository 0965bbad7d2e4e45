package tui

import "github.com/rgehrsitz/runway/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	TitleStyle        = tuistyles.TitleStyle
	SubtitleStyle     = tuistyles.SubtitleStyle
	SectionStyle      = tuistyles.SectionStyle
	StatusBarStyle    = tuistyles.StatusBarStyle
	StatusKeyStyle    = tuistyles.StatusKeyStyle
	BorderStyle       = tuistyles.BorderStyle
	ActiveBorderStyle = tuistyles.ActiveBorderStyle
	WarningStyle      = tuistyles.WarningStyle
	CriticalStyle     = tuistyles.CriticalStyle
	HelpKeyStyle      = tuistyles.HelpKeyStyle
	HelpDescStyle     = tuistyles.HelpDescStyle
	ErrorStyle        = tuistyles.ErrorStyle
	InfoStyle         = tuistyles.InfoStyle
	TableHeaderStyle  = tuistyles.TableHeaderStyle
	TableCellStyle    = tuistyles.TableCellStyle
	FieldLabelStyle   = tuistyles.FieldLabelStyle
	FocusedLabelStyle = tuistyles.FocusedLabelStyle
)
