// Package collapse reflows line-oriented CSS so that every rule block sits on
// a single line. Conditional group rules (@media, @feature) keep their wrapper
// lines and have their bodies collapsed recursively.
//
// Block completion is decided purely by brace counting: a block ends on the
// first line where the number of '{' seen since the block started equals the
// number of '}'. Nesting order is never validated.
package collapse

import (
	"regexp"
	"strings"

	"github.com/zjrosen/cssliner/internal/log"
)

// DefaultMaxDepth bounds recursion into nested conditional group rules.
const DefaultMaxDepth = 64

// conditionalGroupPrefixes are the at-rules whose bodies are collapsed as
// independent documents. Matching is a case-sensitive prefix test.
var conditionalGroupPrefixes = []string{"@media", "@feature"}

const (
	// Space is the whitespace class used by the normalizers. Unlike RE2's \s
	// it includes vertical tab.
	Space = `[\t\n\v\f\r ]`
	// LineBreak matches one line break of any convention.
	LineBreak = `(?:\r\n|[\n\v\f\r\x{85}\x{2028}\x{2029}])`
)

var (
	// breakWithSpace matches a line break together with surrounding whitespace.
	breakWithSpace = regexp.MustCompile(Space + `*` + LineBreak + Space + `*`)
	spaceRun       = regexp.MustCompile(Space + `{2,}`)
	punctSpace     = regexp.MustCompile(Space + `*([{};:])` + Space + `*`)
)

// Collapser collapses rule blocks. The zero value has no depth limit.
type Collapser struct {
	// MaxDepth is the deepest conditional group that is still recursed into.
	// Groups nested deeper are emitted as their raw text. Zero means unlimited.
	MaxDepth int
}

// New returns a Collapser with the given nesting limit.
func New(maxDepth int) Collapser {
	if maxDepth < 0 {
		maxDepth = 0
	}
	return Collapser{MaxDepth: maxDepth}
}

// Transform collapses css using DefaultMaxDepth.
func Transform(css string) string {
	return New(DefaultMaxDepth).Transform(css)
}

// Transform collapses every rule block in css onto one line. It is defined for
// all inputs: malformed or unterminated blocks are passed through unchanged.
func (c Collapser) Transform(css string) string {
	return c.transform(css, 0)
}

func (c Collapser) transform(css string, depth int) string {
	var (
		out           strings.Builder
		block         strings.Builder
		inBlock       bool
		opens, closes int
	)

	for _, line := range SplitLines(css) {
		if !inBlock {
			if !strings.Contains(line, "{") {
				// Top-level comments, @import, @charset and the like.
				if trim(line) != "" {
					out.WriteString(line)
					out.WriteByte('\n')
				}
				continue
			}
			inBlock = true
			opens, closes = 0, 0
		}

		block.WriteString(line)
		block.WriteByte('\n')
		opens += strings.Count(line, "{")
		closes += strings.Count(line, "}")

		if opens > 0 && opens == closes {
			c.emit(&out, block.String(), depth)
			block.Reset()
			inBlock = false
		}
	}

	if inBlock {
		pending := block.String()
		if !endsWithBreak(css) {
			pending = strings.TrimSuffix(pending, "\n")
		}
		log.Debug(log.CatCollapse, "unterminated block passed through",
			"depth", depth, "open", opens, "close", closes)
		out.WriteString(pending)
	}

	return out.String()
}

// emit writes one balanced block to out.
func (c Collapser) emit(out *strings.Builder, block string, depth int) {
	first := strings.IndexByte(block, '{')
	last := strings.LastIndexByte(block, '}')
	if first < 0 || last <= first {
		log.Debug(log.CatCollapse, "malformed block passed through", "depth", depth)
		out.WriteString(block)
		return
	}

	selector := trim(block[:first])
	body := block[first+1 : last]

	if isConditionalGroup(selector) {
		if c.MaxDepth > 0 && depth >= c.MaxDepth {
			log.Warn(log.CatCollapse, "conditional group nesting limit reached",
				"selector", selector, "max_depth", c.MaxDepth)
			out.WriteString(block)
			return
		}
		out.WriteString(selector)
		out.WriteString(" {\n")
		inner := c.transform(trim(body), depth+1)
		for _, line := range SplitLines(inner) {
			if trim(line) != "" {
				out.WriteString(line)
				out.WriteByte('\n')
			}
		}
		out.WriteString("}\n")
		return
	}

	declarations := NormalizeBody(body)
	switch {
	case declarations != "":
		out.WriteString(selector)
		out.WriteString(" { ")
		out.WriteString(declarations)
		out.WriteString(" }\n")
	case selector != "":
		// Empty rules are kept.
		out.WriteString(selector)
		out.WriteString(" { }\n")
	}
}

// NormalizeBody squeezes a declaration block onto one line: line breaks and
// whitespace runs become a single space, whitespace next to { } ; : is
// removed, and the result is trimmed.
func NormalizeBody(body string) string {
	s := breakWithSpace.ReplaceAllString(body, " ")
	s = spaceRun.ReplaceAllString(s, " ")
	s = punctSpace.ReplaceAllString(s, "$1")
	return trim(s)
}

// trim drops leading and trailing runes up to and including U+0020. Control
// characters go; NBSP and other Unicode spaces stay.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}

func isConditionalGroup(selector string) bool {
	for _, prefix := range conditionalGroupPrefixes {
		if strings.HasPrefix(selector, prefix) {
			return true
		}
	}
	return false
}

// SplitLines splits s on \r\n, \n and \r. Trailing empty lines are dropped,
// so "a\n" and "a" both yield ["a"] and "" yields nothing.
func SplitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, s[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}
	return lines
}

func endsWithBreak(s string) bool {
	return strings.HasSuffix(s, "\n") || strings.HasSuffix(s, "\r")
}
