package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override under theme.colors in their config.
const (
	// Text hierarchy
	TokenTextPrimary     ColorToken = "text.primary"
	TokenTextSecondary   ColorToken = "text.secondary"
	TokenTextMuted       ColorToken = "text.muted"
	TokenTextPlaceholder ColorToken = "text.placeholder"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Checkbox and other selectable controls
	TokenSelectionIndicator ColorToken = "selection.indicator"

	// Overlays/Modals
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"

	// Toast notifications
	TokenToastSuccess ColorToken = "toast.success"
	TokenToastError   ColorToken = "toast.error"
	TokenToastInfo    ColorToken = "toast.info"
	TokenToastWarn    ColorToken = "toast.warn"

	// CSS syntax highlighting
	TokenCSSComment     ColorToken = "css.comment"
	TokenCSSSelector    ColorToken = "css.selector"
	TokenCSSProperty    ColorToken = "css.property"
	TokenCSSValue       ColorToken = "css.value"
	TokenCSSBrace       ColorToken = "css.brace"
	TokenCSSAtRule      ColorToken = "css.atrule"
	TokenCSSPunctuation ColorToken = "css.punctuation"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,
		TokenTextPlaceholder,

		TokenBorderDefault,
		TokenBorderFocus,

		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		TokenSelectionIndicator,

		TokenOverlayTitle,
		TokenOverlayBorder,

		TokenToastSuccess,
		TokenToastError,
		TokenToastInfo,
		TokenToastWarn,

		TokenCSSComment,
		TokenCSSSelector,
		TokenCSSProperty,
		TokenCSSValue,
		TokenCSSBrace,
		TokenCSSAtRule,
		TokenCSSPunctuation,
	}
}
