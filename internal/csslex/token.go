// Package csslex classifies CSS text into styled spans for display.
//
// It is a best-effort lexical pass, not a parser: a single left-to-right scan
// with one character of lookahead decides whether each run of characters is a
// selector, property, value, comment, at-rule keyword, brace or punctuation.
package csslex

import "strings"

// Category is the lexical class of a span.
type Category int

const (
	Default Category = iota
	Comment
	Selector
	Property
	Value
	Brace
	AtRule
	Punctuation
)

// Categories lists every category in declaration order.
var Categories = []Category{Default, Comment, Selector, Property, Value, Brace, AtRule, Punctuation}

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Default:
		return "Default"
	case Comment:
		return "Comment"
	case Selector:
		return "Selector"
	case Property:
		return "Property"
	case Value:
		return "Value"
	case Brace:
		return "Brace"
	case AtRule:
		return "AtRule"
	case Punctuation:
		return "Punctuation"
	default:
		return "Unknown"
	}
}

// Span is a classified slice of the input.
type Span struct {
	Text     string
	Category Category
}

// Join concatenates span texts. For spans produced by Tokenize it returns
// the original input.
func Join(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// state is the tokenizer's position in the grammar.
type state int

const (
	stateDefault    state = iota // top level, between rules
	stateSlashSeen               // consumed "/" of a comment opener
	stateInComment               // inside /* ... */
	stateInAtRule                // reading an at-keyword
	stateInSelector              // reading a selector
	stateBlockStart              // after "{" or ";", before a property
	stateInProperty              // reading a property name
	stateAfterColon              // after ":", before the value
	stateInValue                 // reading a value
)

func (s state) String() string {
	switch s {
	case stateDefault:
		return "Default"
	case stateSlashSeen:
		return "SlashSeen"
	case stateInComment:
		return "InComment"
	case stateInAtRule:
		return "InAtRule"
	case stateInSelector:
		return "InSelector"
	case stateBlockStart:
		return "InBlockStart"
	case stateInProperty:
		return "InProperty"
	case stateAfterColon:
		return "AfterColon"
	case stateInValue:
		return "InValue"
	default:
		return "Unknown"
	}
}

// pendingCategory is the category used for a token still open at end of input.
func (s state) pendingCategory() Category {
	switch s {
	case stateInSelector:
		return Selector
	case stateInProperty:
		return Property
	case stateInValue:
		return Value
	case stateInComment:
		return Comment
	case stateInAtRule:
		return AtRule
	default:
		return Default
	}
}
