package highlight

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/cssliner/internal/csslex"
	"github.com/zjrosen/cssliner/internal/ui/styles"
)

// Span styles for CSS syntax highlighting.
// Uses centralized color constants from the styles package.
var (
	// CommentStyle for /* ... */ comments
	CommentStyle lipgloss.Style
	// SelectorStyle for selectors and other top-level text
	SelectorStyle lipgloss.Style
	// PropertyStyle for declaration property names
	PropertyStyle lipgloss.Style
	// ValueStyle for declaration values
	ValueStyle lipgloss.Style
	// BraceStyle for { and }
	BraceStyle lipgloss.Style
	// AtRuleStyle for @-keywords
	AtRuleStyle lipgloss.Style
	// PunctuationStyle for : and ;
	PunctuationStyle lipgloss.Style
)

func init() {
	RebuildStyles()
	styles.RegisterStyleRebuilder(RebuildStyles)
}

// base keeps tabs as-is so rendered text lines up with the source.
func base() lipgloss.Style {
	return lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
}

// RebuildStyles recreates the span styles from the current theme colors.
func RebuildStyles() {
	CommentStyle = base().Foreground(styles.CSSCommentColor).Italic(true)
	SelectorStyle = base().Foreground(styles.CSSSelectorColor).Bold(true)
	PropertyStyle = base().Foreground(styles.CSSPropertyColor)
	ValueStyle = base().Foreground(styles.CSSValueColor)
	BraceStyle = base().Foreground(styles.CSSBraceColor).Bold(true)
	AtRuleStyle = base().Foreground(styles.CSSAtRuleColor).Bold(true)
	PunctuationStyle = base().Foreground(styles.CSSPunctuationColor)
}

// StyleFor returns the style for a span category. Default spans get an
// empty style.
func StyleFor(c csslex.Category) lipgloss.Style {
	switch c {
	case csslex.Comment:
		return CommentStyle
	case csslex.Selector:
		return SelectorStyle
	case csslex.Property:
		return PropertyStyle
	case csslex.Value:
		return ValueStyle
	case csslex.Brace:
		return BraceStyle
	case csslex.AtRule:
		return AtRuleStyle
	case csslex.Punctuation:
		return PunctuationStyle
	default:
		return base()
	}
}
