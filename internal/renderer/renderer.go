package renderer

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns generated markdown into styled terminal output
type Renderer struct {
	md *glamour.TermRenderer
}

// New creates a renderer with a glamour standard style ("dark", "light",
// "notty", ...) and word wrap width. On failure it falls back to plain text.
func New(style string, wrap int) *Renderer {
	if style == "" {
		style = "dark"
	}
	if wrap <= 0 {
		wrap = 100
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		slog.Warn("failed to initialize glamour renderer", "style", style, "error", err)
		md = nil
	}
	return &Renderer{md: md}
}

// Render renders markdown for terminal display
func (r *Renderer) Render(markdown string) string {
	if r == nil || r.md == nil {
		return markdown // Fallback to plain text
	}

	rendered, err := r.md.Render(markdown)
	if err != nil {
		slog.Warn("failed to render markdown", "error", err)
		return markdown // Fallback on error
	}

	return strings.TrimSpace(rendered)
}
