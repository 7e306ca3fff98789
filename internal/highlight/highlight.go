// Package highlight renders tokenized CSS as ANSI-styled text.
package highlight

import (
	"strings"

	"github.com/zjrosen/cssliner/internal/csslex"
)

// Render concatenates the spans, each styled by its category. Default spans
// are written unstyled. A span that crosses line breaks is styled one line at
// a time so every output line carries its own escape sequences and the line
// structure of the input is unchanged.
func Render(spans []csslex.Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Category == csslex.Default {
			b.WriteString(s.Text)
			continue
		}
		style := StyleFor(s.Category)
		for i, part := range strings.Split(s.Text, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if part != "" {
				b.WriteString(style.Render(part))
			}
		}
	}
	return b.String()
}

// CSS tokenizes css and renders it.
func CSS(css string) string {
	return Render(csslex.Tokenize(css))
}
