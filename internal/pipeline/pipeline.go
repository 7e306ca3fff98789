// Package pipeline turns raw CSS into the text and spans shown to the user.
//
// The canonical form is the collapsed document. Display text is derived from
// it on every render, so toggling comment stripping never re-reads or
// re-collapses the source.
package pipeline

import (
	"regexp"

	"github.com/zjrosen/cssliner/internal/collapse"
	"github.com/zjrosen/cssliner/internal/csslex"
	"github.com/zjrosen/cssliner/internal/log"
)

var (
	commentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)
	// Three or more line breaks, each optionally followed by whitespace.
	blankRunPattern = regexp.MustCompile(`(?:` + collapse.LineBreak + collapse.Space + `*){3,}`)
)

// Options controls how canonical text is prepared for display.
type Options struct {
	StripComments bool
}

// Result is the output of one full run.
type Result struct {
	// Canonical is the collapsed document, before display options.
	Canonical string
	// Display is Canonical after Prepare.
	Display string
	// Spans classifies Display.
	Spans []csslex.Span
}

// StripComments removes every /* ... */ comment, including ones spanning
// lines. An unterminated comment is left in place.
func StripComments(s string) string {
	return commentPattern.ReplaceAllString(s, "")
}

// CollapseBlankRuns replaces any run of three or more line breaks, with
// whitespace between them, by a single blank line.
func CollapseBlankRuns(s string) string {
	return blankRunPattern.ReplaceAllString(s, "\n\n")
}

// Prepare derives display text from canonical text. Comments are stripped
// first so the gaps they leave are caught by the blank-run collapse.
func Prepare(canonical string, opts Options) string {
	s := canonical
	if opts.StripComments {
		s = StripComments(s)
	}
	return CollapseBlankRuns(s)
}

// Run collapses raw, prepares it for display and tokenizes the result.
func Run(raw string, opts Options, c collapse.Collapser) Result {
	canonical := c.Transform(raw)
	return Render(canonical, opts)
}

// Render prepares already-collapsed text and tokenizes it.
func Render(canonical string, opts Options) Result {
	display := Prepare(canonical, opts)
	spans := csslex.Tokenize(display)
	log.Debug(log.CatLex, "tokenized display text",
		"bytes", len(display), "spans", len(spans), "strip_comments", opts.StripComments)
	return Result{Canonical: canonical, Display: display, Spans: spans}
}
