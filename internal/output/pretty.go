package output

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// PrettyFormatter renders the markdown report for a terminal with glamour.
type PrettyFormatter struct {
	// Style is a glamour standard style ("dark", "light", "notty", ...).
	// Empty picks one from the terminal background.
	Style    string
	WordWrap int
}

func (p PrettyFormatter) Name() string { return "pretty" }

func (p PrettyFormatter) Format(r *Report) ([]byte, error) {
	md, err := MarkdownFormatter{}.Format(r)
	if err != nil {
		return nil, err
	}

	wrap := p.WordWrap
	if wrap <= 0 {
		wrap = 100
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(wrap)}
	if p.Style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(p.Style))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := renderer.RenderBytes(md)
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
