package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/cssliner/internal/collapse"
	"github.com/zjrosen/cssliner/internal/config"
	"github.com/zjrosen/cssliner/internal/document"
	"github.com/zjrosen/cssliner/internal/log"
	"github.com/zjrosen/cssliner/internal/pubsub"
	"github.com/zjrosen/cssliner/internal/watcher"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	lipgloss.SetColorProfile(termenv.ANSI256)
	os.Exit(m.Run())
}

const sampleCSS = "/* header */\n.card {\n  color: red;\n  margin: 0;\n}\n\n\n\n@media print {\n  .card {\n    display: none;\n  }\n}\n"

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) Copy(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func writeCSS(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestModel(t *testing.T, clip Clipboard, configPath string) Model {
	t.Helper()
	cfg := config.Defaults()
	cfg.Watch = false

	m := New(Options{
		Config:     cfg,
		ConfigPath: configPath,
		Loader:     document.NewLoader(collapse.New(cfg.MaxDepth), cfg.CacheTTL),
		Clipboard:  clip,
	})
	t.Cleanup(func() { _ = m.Close() })
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// load runs the load command for path and feeds its result back in.
func load(t *testing.T, m Model, path string) Model {
	t.Helper()
	return update(t, m, m.loadCmd(path, false)())
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApp_EmptyStatePrompts(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{}, "")

	view := ansi.Strip(m.View())
	require.Contains(t, view, "Open a CSS file")
	require.Contains(t, view, "[ ] strip comments")
	_, ok := m.Document()
	require.False(t, ok)
}

func TestApp_LoadShowsCollapsedText(t *testing.T) {
	path := writeCSS(t, "site.css", sampleCSS)
	m := load(t, newTestModel(t, &fakeClipboard{}, ""), path)

	doc, ok := m.Document()
	require.True(t, ok)
	require.Equal(t, "site.css", doc.Name)
	require.Equal(t, collapse.Transform(sampleCSS), doc.Canonical)
	require.Equal(t,
		"/* header */\n.card { color:red;margin:0; }\n@media print {\n.card { display:none; }\n}\n",
		m.Display())

	view := ansi.Strip(m.View())
	require.Contains(t, view, ".card { color:red;margin:0; }")
	require.Contains(t, view, "(comments kept)")
}

func TestApp_ToggleStripsCommentsWithoutRereading(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(configPath))

	path := writeCSS(t, "site.css", sampleCSS)
	m := load(t, newTestModel(t, &fakeClipboard{}, configPath), path)

	// The toggle must work from the cached canonical text.
	require.NoError(t, os.Remove(path))

	m = update(t, m, runes("c"))
	require.True(t, m.StripComments())
	require.NotContains(t, m.Display(), "/*")
	require.Contains(t, m.Display(), ".card { color:red;margin:0; }")
	require.Contains(t, ansi.Strip(m.View()), "(comments stripped)")
	require.Contains(t, ansi.Strip(m.View()), "[x] strip comments")

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "strip_comments: true")

	m = update(t, m, runes("c"))
	require.False(t, m.StripComments())
	require.Contains(t, m.Display(), "/* header */")
}

func TestApp_NotCSSShowsWarning(t *testing.T) {
	path := writeCSS(t, "notes.txt", "hello")
	m := load(t, newTestModel(t, &fakeClipboard{}, ""), path)

	_, ok := m.Document()
	require.False(t, ok)
	require.True(t, errors.Is(m.loadErr, document.ErrNotCSS))
	require.Equal(t, "not a CSS file", m.toaster.Message())
	require.Empty(t, m.Display())
	require.Contains(t, ansi.Strip(m.View()), "not a CSS file")
}

func TestApp_ReadErrorClearsDocument(t *testing.T) {
	good := writeCSS(t, "a.css", "a {\n}\n")
	m := load(t, newTestModel(t, &fakeClipboard{}, ""), good)
	_, ok := m.Document()
	require.True(t, ok)

	missing := filepath.Join(t.TempDir(), "missing.css")
	m = load(t, m, missing)

	_, ok = m.Document()
	require.False(t, ok)
	require.Empty(t, m.Display())
	require.Error(t, m.loadErr)
	require.Contains(t, m.toaster.Message(), "reading")
	require.Contains(t, ansi.Strip(m.View()), "missing.css")
}

func TestApp_YankCopiesDisplay(t *testing.T) {
	clip := &fakeClipboard{}
	m := newTestModel(t, clip, "")

	m = update(t, m, runes("y"))
	require.Equal(t, "nothing to copy", m.toaster.Message())

	m = load(t, m, writeCSS(t, "a.css", sampleCSS))
	m = update(t, m, runes("y"))
	require.Equal(t, m.Display(), clip.text)
	require.Equal(t, "copied 5 lines", m.toaster.Message())

	clip.err = errors.New("no clipboard")
	m = update(t, m, runes("y"))
	require.Equal(t, "copy failed: no clipboard", m.toaster.Message())
}

func TestApp_HorizontalScroll(t *testing.T) {
	long := ".wide {\n  background: " + strings.Repeat("x", 200) + ";\n}\n"
	m := load(t, newTestModel(t, &fakeClipboard{}, ""), writeCSS(t, "wide.css", long))
	step := m.cfg.UI.HorizontalStep

	m = update(t, m, runes("h"))
	require.Equal(t, 0, m.xOffset)

	m = update(t, m, runes("l"))
	require.Equal(t, step, m.xOffset)
	require.NotContains(t, ansi.Strip(m.viewport.View()), ".wide")

	for i := 0; i < 100; i++ {
		m = update(t, m, runes("l"))
	}
	require.Equal(t, m.maxXOffset(), m.xOffset)
	require.Positive(t, m.xOffset)

	m = update(t, m, runes("h"))
	require.Equal(t, m.maxXOffset()-step, m.xOffset)

	// A new render starts at the left edge again.
	m = update(t, m, runes("c"))
	require.Equal(t, 0, m.xOffset)
}

func TestApp_VerticalScrollResetsOnRender(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 80; i++ {
		b.WriteString(".r" + strings.Repeat("a", i%5) + " {\n  color: red;\n}\n")
	}
	m := load(t, newTestModel(t, &fakeClipboard{}, ""), writeCSS(t, "long.css", b.String()))

	m = update(t, m, runes("G"))
	require.Positive(t, m.viewport.YOffset)

	m = update(t, m, runes("c"))
	require.Equal(t, 0, m.viewport.YOffset)
}

func TestApp_OpenPrompt(t *testing.T) {
	path := writeCSS(t, "picked.css", "a {\n b: c;\n}\n")
	m := newTestModel(t, &fakeClipboard{}, "")

	m = update(t, m, runes("o"))
	require.True(t, m.prompting)

	// Keys go to the prompt, not the viewer.
	m = update(t, m, runes(path))
	require.False(t, m.StripComments())
	require.Equal(t, path, m.prompt.Value())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.False(t, m.prompting)
	require.NotNil(t, cmd)

	m = update(t, m, cmd())
	doc, ok := m.Document()
	require.True(t, ok)
	require.Equal(t, "picked.css", doc.Name)
	require.Equal(t, "a { b:c; }\n", m.Display())
}

func TestApp_PromptCancel(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{}, "")
	m = update(t, m, runes("o"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.prompting)
}

func TestApp_WatcherEventReloads(t *testing.T) {
	path := writeCSS(t, "live.css", "a {\n b: c;\n}\n")
	m := load(t, newTestModel(t, &fakeClipboard{}, ""), path)
	doc, _ := m.Document()

	require.NoError(t, os.WriteFile(path, []byte("a {\n b: d;\n}\nz {\n}\n"), 0o644))

	_, cmd := m.Update(pubsub.Event[watcher.Change]{Type: pubsub.FileReplaced, Payload: watcher.Change{Path: doc.Path}})
	require.NotNil(t, cmd)
	msg := cmd()
	loaded, ok := msg.(DocumentLoadedMsg)
	require.True(t, ok, "got %T", msg)
	require.True(t, loaded.Reload)

	m = update(t, m, loaded)
	require.Equal(t, "a { b:d; }\nz { }\n", m.Display())
	require.Equal(t, "reloaded live.css", m.toaster.Message())
}

func TestApp_WatcherRemovalKeepsContent(t *testing.T) {
	path := writeCSS(t, "gone.css", "a {\n b: c;\n}\n")
	m := load(t, newTestModel(t, &fakeClipboard{}, ""), path)
	doc, _ := m.Document()

	m = update(t, m, pubsub.Event[watcher.Change]{Type: pubsub.FileRemoved, Payload: watcher.Change{Path: doc.Path}})
	require.Equal(t, "a { b:c; }\n", m.Display())
	require.Equal(t, "gone.css was removed", m.toaster.Message())
}

func TestApp_WatcherEventForOtherFileIgnored(t *testing.T) {
	m := load(t, newTestModel(t, &fakeClipboard{}, ""), writeCSS(t, "a.css", "a {\n}\n"))
	_, cmd := m.Update(pubsub.Event[watcher.Change]{Type: pubsub.FileWritten, Payload: watcher.Change{Path: "/elsewhere/b.css"}})
	require.Nil(t, cmd)
}

func TestApp_HelpOverlay(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{}, "")

	m = update(t, m, runes("?"))
	require.True(t, m.showHelp)
	require.Contains(t, ansi.Strip(m.View()), "Keybindings")

	// Other keys are swallowed while help is open.
	m = update(t, m, runes("c"))
	require.False(t, m.StripComments())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.showHelp)
}

func TestApp_SidebarToggle(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{}, "")
	require.True(t, m.sidebarVisible())
	require.Equal(t, 100-m.sidebarWidth(), m.paneWidth())

	m = update(t, m, runes("s"))
	require.False(t, m.sidebarVisible())
	require.Equal(t, 100, m.paneWidth())
	require.NotContains(t, ansi.Strip(m.View()), "[ ] strip comments")
}

func TestApp_NarrowTerminalHidesSidebar(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{}, "")
	m = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})
	require.False(t, m.sidebarVisible())
}

func TestApp_ViewFitsWindow(t *testing.T) {
	m := load(t, newTestModel(t, &fakeClipboard{}, ""), writeCSS(t, "a.css", sampleCSS))

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 30)
	for i, line := range lines {
		require.LessOrEqual(t, ansi.StringWidth(line), 100, "line %d", i)
	}
}

func TestApp_ClickCheckboxToggles(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{}, "")

	var z *zone.ZoneInfo
	for retries := 0; retries < 50; retries++ {
		_ = m.View()
		z = zone.Get(zoneStripToggle)
		if z != nil && !z.IsZero() {
			break
		}
		// Zone registration is asynchronous in bubblezone.
		time.Sleep(time.Millisecond)
	}
	require.NotNil(t, z)
	require.False(t, z.IsZero())

	m = update(t, m, tea.MouseMsg{
		X:      z.StartX + 1,
		Y:      z.StartY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	})
	require.True(t, m.StripComments())
}

func TestApp_MouseWheelScrolls(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString(".r {\n  color: red;\n}\n")
	}
	m := load(t, newTestModel(t, &fakeClipboard{}, ""), writeCSS(t, "long.css", b.String()))

	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, X: 60, Y: 10})
	require.Equal(t, 3, m.viewport.YOffset)
	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, X: 60, Y: 10})
	require.Equal(t, 0, m.viewport.YOffset)
}

func TestApp_EndToEnd(t *testing.T) {
	path := writeCSS(t, "site.css", sampleCSS)
	cfg := config.Defaults()
	cfg.Watch = false

	m := New(Options{
		Config:      cfg,
		Loader:      document.NewLoader(collapse.New(cfg.MaxDepth), cfg.CacheTTL),
		Clipboard:   &fakeClipboard{},
		InitialPath: path,
	})

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return strings.Contains(ansi.Strip(string(out)), "margin:0;")
	}, teatest.WithDuration(3*time.Second))

	tm.Send(runes("c"))
	tm.Send(runes("q"))

	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	require.True(t, final.StripComments())
	require.NotContains(t, final.Display(), "header")
	doc, ok := final.Document()
	require.True(t, ok)
	require.Equal(t, "site.css", doc.Name)
}

func TestApp_LogOverlayOnlyInDebug(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{}, "")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.False(t, m.logOverlay.Visible())

	cfg := config.Defaults()
	cfg.Watch = false
	dm := New(Options{
		Config:    cfg,
		Loader:    document.NewLoader(collapse.New(cfg.MaxDepth), cfg.CacheTTL),
		Clipboard: &fakeClipboard{},
		Debug:     true,
	})
	t.Cleanup(func() { _ = dm.Close() })
	dm = update(t, dm, tea.WindowSizeMsg{Width: 100, Height: 30})
	dm = update(t, dm, log.LogEvent{Payload: "2026-01-01T00:00:00 [INFO] [ui] hello overlay\n"})

	dm = update(t, dm, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.True(t, dm.logOverlay.Visible())
	require.Contains(t, ansi.Strip(dm.View()), "hello overlay")

	// Keys go to the overlay while it is open.
	dm = update(t, dm, runes("c"))
	require.False(t, dm.StripComments())
	require.Empty(t, dm.logOverlay.Entries())

	dm = update(t, dm, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.False(t, dm.logOverlay.Visible())
}
