package repl

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns the backend's markdown answers into terminal output.
// When glamour cannot be initialized or fails on a document, the raw
// text is returned instead.
type Renderer struct {
	term *glamour.TermRenderer
}

// NewRenderer creates a markdown renderer
func NewRenderer() *Renderer {
	term, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return &Renderer{}
	}
	return &Renderer{term: term}
}

// Render renders markdown for the terminal, falling back to plain text
func (r *Renderer) Render(markdown string) string {
	if r.term == nil {
		return markdown
	}

	rendered, err := r.term.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(rendered, "\n") + "\n"
}
