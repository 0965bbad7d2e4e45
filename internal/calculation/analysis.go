package calculation

import (
	"fmt"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// LowDurationYears is the runway below which a projection is flagged.
const LowDurationYears = 20

// AlertKind identifies a condition worth surfacing next to a projection.
type AlertKind string

const (
	AlertNegativeRealReturn AlertKind = "negative_real_return"
	AlertLowDuration        AlertKind = "low_duration"
)

// Severity orders alerts for display.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	default:
		return "warning"
	}
}

// MarshalText renders the severity by name in JSON and YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Alert is a presentation-level warning derived from a projection.
type Alert struct {
	Kind     AlertKind `json:"kind"`
	Severity Severity  `json:"severity"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
}

// Assess inspects a projection and returns the alerts that apply, in display
// order. The inflation figure is the one the projection was run with.
func Assess(inflation decimal.Decimal, r domain.ProjectionResult) []Alert {
	var alerts []Alert

	if r.RealReturn.LessThan(decimal.Zero) {
		alerts = append(alerts, Alert{
			Kind:     AlertNegativeRealReturn,
			Severity: SeverityCritical,
			Title:    "Negative Real Return",
			Message: fmt.Sprintf("Your weighted return (%s%%) is lower than inflation (%s%%). "+
				"Consider increasing allocation to higher-return investments.",
				r.WeightedReturn.StringFixed(1), inflation.String()),
		})
	}

	if r.YearsLeft.LessThan(decimal.NewFromInt(LowDurationYears)) {
		alerts = append(alerts, Alert{
			Kind:     AlertLowDuration,
			Severity: SeverityWarning,
			Title:    "Low Duration Alert",
			Message: fmt.Sprintf("Your corpus may last only %s years. "+
				"Consider increasing your corpus or reducing expenses.",
				r.YearsLeft.StringFixed(1)),
		})
	}

	return alerts
}

// HasAlert reports whether alerts contains one of the given kind.
func HasAlert(alerts []Alert, kind AlertKind) bool {
	for _, a := range alerts {
		if a.Kind == kind {
			return true
		}
	}
	return false
}
