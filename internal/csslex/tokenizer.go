package csslex

import (
	"unicode"
	"unicode/utf8"
)

// Tokenize splits css into classified spans. Every byte of css belongs to
// exactly one span, in order, so Join(Tokenize(css)) == css for any input.
//
// Comments are recognised in every state except inside another comment.
// A closed comment always returns the scanner to the top-level state rather
// than the state it interrupted.
func Tokenize(css string) []Span {
	s := scanner{src: css}
	s.run()
	return s.spans
}

// scanner holds one Tokenize call's state. The pending token is always the
// contiguous range src[start:pos], so it is tracked as an offset.
type scanner struct {
	src   string
	start int
	state state
	spans []Span
}

// flush closes the pending token at end, emitting it when non-empty.
func (s *scanner) flush(end int, cat Category) {
	if end > s.start {
		s.spans = append(s.spans, Span{Text: s.src[s.start:end], Category: cat})
	}
	s.start = end
}

// single flushes the pending token, then emits src[pos:pos+size] on its own.
func (s *scanner) single(pending Category, pos, size int, cat Category) {
	s.flush(pos, pending)
	s.flush(pos+size, cat)
}

func (s *scanner) run() {
	pos := 0
	for pos < len(s.src) {
		c, size := utf8.DecodeRuneInString(s.src[pos:])
		next := s.peek(pos + size)
		opensComment := c == '/' && next == '*'

		switch s.state {
		case stateDefault:
			switch {
			case opensComment:
				s.beginComment(pos, Default)
			case c == '@':
				s.flush(pos, Default)
				s.state = stateInAtRule
			case c == '{':
				s.single(Selector, pos, size, Brace)
				s.state = stateBlockStart
			case c == '}':
				s.single(Default, pos, size, Brace)
			case !isWhitespace(c):
				if pos == s.start {
					s.state = stateInSelector
				}
			default:
				s.single(Default, pos, size, Default)
			}

		case stateSlashSeen:
			if c != '*' {
				// Only reachable on malformed state; rescan c at top level.
				s.flush(pos, Default)
				s.state = stateDefault
				continue
			}
			s.state = stateInComment

		case stateInComment:
			if c == '*' && next == '/' {
				s.flush(pos+size+1, Comment)
				s.state = stateDefault
				pos += size + 1
				continue
			}

		case stateInAtRule:
			if !isAtRuleRune(c) {
				s.flush(pos, AtRule)
				s.state = stateDefault
				continue
			}

		case stateInSelector:
			switch {
			case c == '{':
				s.single(Selector, pos, size, Brace)
				s.state = stateBlockStart
			case opensComment:
				s.beginComment(pos, Selector)
			}

		case stateBlockStart:
			switch {
			case c == '}':
				s.single(Default, pos, size, Brace)
				s.state = stateDefault
			case opensComment:
				s.beginComment(pos, Default)
			case !isWhitespace(c):
				s.flush(pos, Default)
				s.state = stateInProperty
			default:
				s.single(Default, pos, size, Default)
			}

		case stateInProperty:
			switch {
			case c == ':':
				s.single(Property, pos, size, Punctuation)
				s.state = stateAfterColon
			case opensComment:
				s.beginComment(pos, Property)
			}

		case stateAfterColon:
			switch {
			case opensComment:
				s.beginComment(pos, Default)
			case !isWhitespace(c):
				s.flush(pos, Default)
				s.state = stateInValue
			default:
				s.single(Default, pos, size, Default)
			}

		case stateInValue:
			switch {
			case c == ';':
				s.single(Value, pos, size, Punctuation)
				s.state = stateBlockStart
			case c == '}':
				s.single(Value, pos, size, Brace)
				s.state = stateDefault
			case opensComment:
				s.beginComment(pos, Value)
			}
		}

		pos += size
	}

	s.flush(len(s.src), s.state.pendingCategory())
}

// beginComment flushes the pending token as cat and starts a comment token at
// pos. The caller's advance past pos consumes the "/".
func (s *scanner) beginComment(pos int, cat Category) {
	s.flush(pos, cat)
	s.state = stateSlashSeen
}

func (s *scanner) peek(pos int) rune {
	if pos >= len(s.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.src[pos:])
	return r
}

func isAtRuleRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-'
}

// isWhitespace reports the separators that end a selector or value lead-in:
// the ASCII controls \t through \r, the file/group/record/unit separators
// U+001C-U+001F, and Unicode space, line and paragraph separators except the
// no-break spaces U+00A0, U+2007 and U+202F. U+0085 is not whitespace here.
func isWhitespace(r rune) bool {
	switch {
	case r >= '\t' && r <= '\r', r >= 0x1c && r <= 0x1f:
		return true
	case r == '\u00a0', r == '\u2007', r == '\u202f':
		return false
	}
	return unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp)
}
