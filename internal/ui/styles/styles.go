// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"} // File names, status labels
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#696969"} // Hints, help text
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"} // Input placeholders

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"} // Focused pane

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Checkbox mark color
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#FFFFFF"}

	// Overlay colors
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}

	// Toast notification colors
	ToastBorderSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastBorderErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ToastBorderWarnColor    = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}

	// CSS syntax highlighting colors. Light values are the classic
	// white-background scheme; dark values are their lifted counterparts.
	CSSCommentColor     = lipgloss.AdaptiveColor{Light: "#808080", Dark: "#7F8490"}
	CSSSelectorColor    = lipgloss.AdaptiveColor{Light: "#00008B", Dark: "#89B4FA"}
	CSSPropertyColor    = lipgloss.AdaptiveColor{Light: "#8B0000", Dark: "#F38BA8"}
	CSSValueColor       = lipgloss.AdaptiveColor{Light: "#008000", Dark: "#A6E3A1"}
	CSSBraceColor       = lipgloss.AdaptiveColor{Light: "#B28C00", Dark: "#FAB387"}
	CSSAtRuleColor      = lipgloss.AdaptiveColor{Light: "#B400B4", Dark: "#CBA6F7"}
	CSSPunctuationColor = lipgloss.AdaptiveColor{Light: "#404040", Dark: "#9399B2"}

	// Checkbox style (used for the strip comments toggle in the sidebar)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Hint text under the sidebar controls and in the empty pane
	HintStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)
)
