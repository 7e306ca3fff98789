package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"classic":          ClassicPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
}

// PresetNames returns the preset names in a stable order for help output.
func PresetNames() []string {
	return []string{"default", "classic", "catppuccin-mocha", "dracula", "nord"}
}

// DefaultPreset matches the Dark values of the AdaptiveColor definitions in styles.go.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default cssliner theme",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#CCCCCC",
		TokenTextSecondary:   "#BBBBBB",
		TokenTextMuted:       "#696969",
		TokenTextPlaceholder: "#777777",

		// Borders
		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#54A0FF",

		// Status indicators
		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		TokenSelectionIndicator: "#FFFFFF",

		// Overlays/Modals
		TokenOverlayTitle:  "#C9C9C9",
		TokenOverlayBorder: "#8C8C8C",

		// Toast notifications
		TokenToastSuccess: "#73F59F",
		TokenToastError:   "#FF8787",
		TokenToastInfo:    "#54A0FF",
		TokenToastWarn:    "#FECA57",

		// CSS syntax highlighting
		TokenCSSComment:     "#7F8490",
		TokenCSSSelector:    "#89B4FA",
		TokenCSSProperty:    "#F38BA8",
		TokenCSSValue:       "#A6E3A1",
		TokenCSSBrace:       "#FAB387",
		TokenCSSAtRule:      "#CBA6F7",
		TokenCSSPunctuation: "#9399B2",
	},
}

// ClassicPreset reproduces the original desktop viewer's colors, which were
// chosen for a white background.
var ClassicPreset = Preset{
	Name:        "classic",
	Description: "Classic light scheme for white terminals",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#1F1F1F",
		TokenTextSecondary:   "#555555",
		TokenTextMuted:       "#8C8C8C",
		TokenTextPlaceholder: "#666666",
		TokenBorderDefault:   "#BBBBBB",
		TokenOverlayTitle:    "#555555",
		TokenOverlayBorder:   "#BBBBBB",

		TokenSelectionIndicator: "#1F1F1F",

		TokenCSSComment:     "#808080", // gray, italic
		TokenCSSSelector:    "#00008B", // dark blue, bold
		TokenCSSProperty:    "#8B0000", // dark red
		TokenCSSValue:       "#008000", // green
		TokenCSSBrace:       "#B28C00", // darker orange, bold
		TokenCSSAtRule:      "#B400B4", // purple, bold
		TokenCSSPunctuation: "#404040", // dark gray
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha (dark) theme.
// Colors from: https://catppuccin.com/palette
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha - warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#CDD6F4", // text
		TokenTextSecondary:   "#BAC2DE", // subtext1
		TokenTextMuted:       "#6C7086", // overlay0
		TokenTextPlaceholder: "#585B70", // surface2

		TokenBorderDefault: "#6C7086", // overlay0
		TokenBorderFocus:   "#89B4FA", // blue

		TokenStatusSuccess: "#A6E3A1", // green
		TokenStatusWarning: "#F9E2AF", // yellow
		TokenStatusError:   "#F38BA8", // red

		TokenSelectionIndicator: "#CDD6F4", // text

		TokenOverlayTitle:  "#CDD6F4", // text
		TokenOverlayBorder: "#6C7086", // overlay0

		TokenToastSuccess: "#A6E3A1", // green
		TokenToastError:   "#F38BA8", // red
		TokenToastInfo:    "#89B4FA", // blue
		TokenToastWarn:    "#F9E2AF", // yellow

		TokenCSSComment:     "#6C7086", // overlay0
		TokenCSSSelector:    "#89B4FA", // blue
		TokenCSSProperty:    "#94E2D5", // teal
		TokenCSSValue:       "#A6E3A1", // green
		TokenCSSBrace:       "#FAB387", // peach
		TokenCSSAtRule:      "#CBA6F7", // mauve
		TokenCSSPunctuation: "#9399B2", // overlay2
	},
}

// DraculaPreset is the Dracula theme.
// Colors from: https://draculatheme.com/contribute
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dracula - dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#F8F8F2", // foreground
		TokenTextSecondary:   "#BFBFBF",
		TokenTextMuted:       "#6272A4", // comment
		TokenTextPlaceholder: "#6272A4",

		TokenBorderDefault: "#6272A4",
		TokenBorderFocus:   "#BD93F9", // purple

		TokenStatusSuccess: "#50FA7B", // green
		TokenStatusWarning: "#F1FA8C", // yellow
		TokenStatusError:   "#FF5555", // red

		TokenToastSuccess: "#50FA7B",
		TokenToastError:   "#FF5555",
		TokenToastInfo:    "#8BE9FD", // cyan
		TokenToastWarn:    "#F1FA8C",

		TokenCSSComment:     "#6272A4", // comment
		TokenCSSSelector:    "#50FA7B", // green
		TokenCSSProperty:    "#8BE9FD", // cyan
		TokenCSSValue:       "#F1FA8C", // yellow
		TokenCSSBrace:       "#FFB86C", // orange
		TokenCSSAtRule:      "#FF79C6", // pink
		TokenCSSPunctuation: "#F8F8F2", // foreground
	},
}

// NordPreset is the Nord theme.
// Colors from: https://www.nordtheme.com/docs/colors-and-palettes
var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord - arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#ECEFF4", // nord6
		TokenTextSecondary:   "#D8DEE9", // nord4
		TokenTextMuted:       "#4C566A", // nord3
		TokenTextPlaceholder: "#4C566A",

		TokenBorderDefault: "#4C566A",
		TokenBorderFocus:   "#88C0D0", // nord8

		TokenStatusSuccess: "#A3BE8C", // nord14
		TokenStatusWarning: "#EBCB8B", // nord13
		TokenStatusError:   "#BF616A", // nord11

		TokenToastSuccess: "#A3BE8C",
		TokenToastError:   "#BF616A",
		TokenToastInfo:    "#81A1C1", // nord9
		TokenToastWarn:    "#EBCB8B",

		TokenCSSComment:     "#616E88",
		TokenCSSSelector:    "#8FBCBB", // nord7
		TokenCSSProperty:    "#81A1C1", // nord9
		TokenCSSValue:       "#A3BE8C", // nord14
		TokenCSSBrace:       "#D08770", // nord12
		TokenCSSAtRule:      "#B48EAD", // nord15
		TokenCSSPunctuation: "#D8DEE9", // nord4
	},
}
