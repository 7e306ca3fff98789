package highlight

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/cssliner/internal/csslex"
	"github.com/zjrosen/cssliner/internal/ui/styles"
)

func init() {
	// Force ANSI color output in tests (lipgloss disables colors when no TTY)
	lipgloss.SetColorProfile(termenv.ANSI256)
}

func TestRender_StylesNonDefaultSpans(t *testing.T) {
	out := CSS("a{color:red}")

	require.NotEqual(t, "a{color:red}", out, "expected escape sequences")
	require.Equal(t, "a{color:red}", ansi.Strip(out))
	require.Contains(t, out, SelectorStyle.Render("a"))
	require.Contains(t, out, ValueStyle.Render("red"))
}

func TestRender_DefaultSpansUnstyled(t *testing.T) {
	spans := []csslex.Span{{Text: " \n\t", Category: csslex.Default}}
	require.Equal(t, " \n\t", Render(spans))
}

func TestRender_MultiLineSpanStyledPerLine(t *testing.T) {
	spans := []csslex.Span{{Text: "/* one\n\ttwo */", Category: csslex.Comment}}
	out := Render(spans)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	require.Equal(t, CommentStyle.Render("/* one"), lines[0])
	require.Equal(t, "\ttwo */", ansi.Strip(lines[1]), "tabs are kept")
}

func TestRender_Empty(t *testing.T) {
	require.Equal(t, "", Render(nil))
	require.Equal(t, "", CSS(""))
}

func TestStyleFor(t *testing.T) {
	require.True(t, StyleFor(csslex.Selector).GetBold())
	require.True(t, StyleFor(csslex.Comment).GetItalic())
	require.True(t, StyleFor(csslex.Brace).GetBold())
	require.False(t, StyleFor(csslex.Value).GetBold())
	require.Equal(t, "x", StyleFor(csslex.Default).Render("x"))
}

func TestRebuildStyles_FollowsTheme(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, styles.ApplyTheme(styles.ThemeConfig{})) })

	require.NoError(t, styles.ApplyTheme(styles.ThemeConfig{
		Colors: map[string]string{"css.selector": "#123456"},
	}))
	require.Equal(t, lipgloss.TerminalColor(lipgloss.AdaptiveColor{Light: "#123456", Dark: "#123456"}),
		SelectorStyle.GetForeground())
}

func TestRender_LosslessProperty(t *testing.T) {
	alphabet := []rune("ab-@:;{}/* \n\t.#é")
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.StringOf(rapid.SampledFrom(alphabet)).Draw(t, "input")
		out := CSS(input)
		require.Equal(t, input, ansi.Strip(out))
		require.Equal(t, strings.Count(input, "\n"), strings.Count(out, "\n"))
	})
}
