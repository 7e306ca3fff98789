package pipeline

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/cssliner/internal/collapse"
	"github.com/zjrosen/cssliner/internal/csslex"
)

func TestStripComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"none", "a { b:c; }", "a { b:c; }"},
		{"single", "/* x */a", "a"},
		{"multi-line", "a/* one\ntwo\r\nthree */b", "ab"},
		{"non-greedy", "/* a */x/* b */", "x"},
		{"unterminated", "a /* open", "a /* open"},
		{"empty comment", "a/**/b", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, StripComments(tt.input))
		})
	}
}

func TestCollapseBlankRuns(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"two breaks kept", "a\n\nb", "a\n\nb"},
		{"three breaks", "a\n\n\nb", "a\n\nb"},
		{"whitespace between breaks", "a\n  \n\t\n  b", "a\n\nb"},
		{"crlf", "a\r\n\r\n\r\nb", "a\n\nb"},
		{"mixed conventions", "a\r\n \u0085\u2028b", "a\n\nb"},
		{"trailing whitespace consumed", "a\n\n\n   ", "a\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CollapseBlankRuns(tt.input))
		})
	}
}

func TestPrepare(t *testing.T) {
	canonical := "a { x:1; }\n/* gap */\n\n\nb { y:2; }\n"

	kept := Prepare(canonical, Options{})
	require.Equal(t, "a { x:1; }\n/* gap */\n\nb { y:2; }\n", kept)

	stripped := Prepare(canonical, Options{StripComments: true})
	require.Equal(t, "a { x:1; }\n\nb { y:2; }\n", stripped)
}

func TestRun(t *testing.T) {
	res := Run("/* note */\na{color:red}", Options{}, collapse.New(collapse.DefaultMaxDepth))

	require.Equal(t, "/* note */\na { color:red }\n", res.Canonical)
	require.Equal(t, res.Canonical, res.Display)
	require.Equal(t, res.Display, csslex.Join(res.Spans))
	require.Equal(t, csslex.Span{Text: "/* note */", Category: csslex.Comment}, res.Spans[0])

	stripped := Render(res.Canonical, Options{StripComments: true})
	require.Equal(t, res.Canonical, stripped.Canonical)
	require.Equal(t, "\na { color:red }\n", stripped.Display)
	for _, s := range stripped.Spans {
		require.NotEqual(t, csslex.Comment, s.Category)
	}
}

var threeBreaks = regexp.MustCompile(`(?:` + collapse.LineBreak + collapse.Space + `*){3,}`)

func TestPrepare_NoBlankRunsProperty(t *testing.T) {
	alphabet := []rune("a{}; \t\n\r/*")
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.StringOf(rapid.SampledFrom(alphabet)).Draw(t, "input")
		strip := rapid.Bool().Draw(t, "strip")

		res := Render(input, Options{StripComments: strip})
		require.False(t, threeBreaks.MatchString(res.Display), "output %q", res.Display)
		require.Equal(t, res.Display, csslex.Join(res.Spans))
		if !strip {
			require.Equal(t, strings.Count(input, "/*"), strings.Count(res.Display, "/*"))
		}
	})
}
