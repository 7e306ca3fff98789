// Package markdown renders the help screen notes with glamour.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// DefaultStyle is used when no style is named.
const DefaultStyle = styles.DarkStyle

// Renderer wraps a glamour renderer with a fixed wrap width.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a renderer that wraps at width using one of glamour's built-in
// styles ("dark", "light", "notty", ...). The style's document margin is
// removed so the text lines up with the surrounding box.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = DefaultStyle
	}
	base, ok := styles.DefaultStyles[style]
	if !ok {
		return nil, fmt.Errorf("unknown markdown style %q", style)
	}

	cfg := *base
	var noMargin uint
	cfg.Document.Margin = &noMargin
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(cfg),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output without leading or
// trailing blank lines.
func (r *Renderer) Render(markdown string) (string, error) {
	out, err := r.renderer.Render(markdown)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
