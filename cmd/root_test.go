package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/cssliner/internal/config"
	"github.com/zjrosen/cssliner/internal/document"
)

const fixtureCSS = "/* theme */\n.btn {\n  color: red;\n  padding: 0 4px;\n}\n\n\n\n@media print {\n  .btn {\n    display: none;\n  }\n}\n"

// execute runs the root command with args against a fresh config file and
// returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	resetFlags(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		resetFlags(c.Flags())
	}

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(configPath))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPrint_Collapses(t *testing.T) {
	path := writeFixture(t, "site.css", fixtureCSS)

	out, err := execute(t, "print", "--color", "never", path)
	require.NoError(t, err)
	require.Equal(t,
		"/* theme */\n.btn { color:red;padding:0 4px; }\n@media print {\n.btn { display:none; }\n}\n",
		out)
}

func TestPrint_StripComments(t *testing.T) {
	path := writeFixture(t, "site.css", fixtureCSS)

	out, err := execute(t, "print", "--color", "never", "--strip-comments", path)
	require.NoError(t, err)
	require.NotContains(t, out, "theme")
	require.Contains(t, out, ".btn { color:red;padding:0 4px; }\n")
}

func TestPrint_Stdin(t *testing.T) {
	rootCmd.SetIn(strings.NewReader("a {\n  b: c;\n}\n"))
	t.Cleanup(func() { rootCmd.SetIn(nil) })

	out, err := execute(t, "print", "--color", "never", "-")
	require.NoError(t, err)
	require.Equal(t, "a { b:c; }\n", out)
}

func TestPrint_ColorAlways(t *testing.T) {
	path := writeFixture(t, "site.css", fixtureCSS)

	out, err := execute(t, "print", "--color", "always", path)
	require.NoError(t, err)
	require.Contains(t, out, "\x1b[")

	plain, err := execute(t, "print", "--color", "never", path)
	require.NoError(t, err)
	require.Equal(t, plain, ansi.Strip(out))
}

func TestPrint_InvalidColor(t *testing.T) {
	path := writeFixture(t, "site.css", fixtureCSS)

	_, err := execute(t, "print", "--color", "sometimes", path)
	require.ErrorContains(t, err, "invalid --color value")
}

func TestPrint_NotCSS(t *testing.T) {
	path := writeFixture(t, "notes.txt", "a {}")

	_, err := execute(t, "print", path)
	require.ErrorIs(t, err, document.ErrNotCSS)
}

func TestPrint_MissingFile(t *testing.T) {
	_, err := execute(t, "print", filepath.Join(t.TempDir(), "gone.css"))
	require.ErrorContains(t, err, "reading")
}

func TestSpans(t *testing.T) {
	path := writeFixture(t, "a.css", "a {\n  color: red;\n}\n")

	out, err := execute(t, "spans", path)
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		"Selector\t\"a \"",
		"Brace\t\"{\"",
		"Default\t\" \"",
		"Property\t\"color\"",
		"Punctuation\t\":\"",
		"Value\t\"red\"",
		"Punctuation\t\";\"",
		"Default\t\" \"",
		"Brace\t\"}\"",
		"Default\t\"\\n\"",
	}, "\n")+"\n", out)
}

func TestDiff(t *testing.T) {
	path := writeFixture(t, "a.css", "b { x: 1; }\na {\n  color: red;\n}\n")

	out, err := execute(t, "diff", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Contains(t, lines, "-b { x: 1; }")
	require.Contains(t, lines, "+b { x:1; }")
	require.Contains(t, lines, "-a {")
	require.Contains(t, lines, "-  color: red;")
	require.Contains(t, lines, "+a { color:red; }")
}

func TestDiff_UnchangedLinesKept(t *testing.T) {
	path := writeFixture(t, "a.css", "@import url(x.css);\na{b:c}\n")

	out, err := execute(t, "diff", path)
	require.NoError(t, err)
	require.Equal(t, " @import url(x.css);\n-a{b:c}\n+a { b:c }\n", out)
}

func TestConfig_InvalidValueFails(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("max_depth: -1\n"), 0o600))
	path := writeFixture(t, "a.css", "a {\n}\n")

	viper.Reset()
	resetFlags(rootCmd.PersistentFlags())
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--config", configPath, "print", path})

	err := rootCmd.Execute()
	require.ErrorContains(t, err, "max_depth")
}

func TestConfig_MaxDepthApplies(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "depth.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("max_depth: 1\n"), 0o600))
	path := writeFixture(t, "a.css", "@media a {\n@media b {\nx { y: z; }\n}\n}\n")

	viper.Reset()
	resetFlags(rootCmd.PersistentFlags())
	resetFlags(printCmd.Flags())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--config", configPath, "print", "--color", "never", path})

	require.NoError(t, rootCmd.Execute())
	require.Equal(t, "@media a {\n@media b {\nx { y: z; }\n}\n}\n", out.String())
}
