package advisor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns advisor Markdown into terminal output.
type Renderer struct {
	term *glamour.TermRenderer
}

// NewRenderer builds a renderer wrapping at width. An empty style detects the
// terminal background; "notty" produces plain text.
func NewRenderer(width int, style string) (*Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	term, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Renderer{term: term}, nil
}

// Render returns md rendered and trimmed of the surrounding blank lines.
// On failure the Markdown source is returned unchanged.
func (r *Renderer) Render(md string) string {
	if r == nil || r.term == nil {
		return md
	}
	out, err := r.term.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
