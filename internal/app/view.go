package app

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/cssliner/internal/highlight"
	"github.com/zjrosen/cssliner/internal/log"
	"github.com/zjrosen/cssliner/internal/pipeline"
	"github.com/zjrosen/cssliner/internal/ui/styles"
)

const (
	zoneStripToggle = "strip-comments"

	// tabSpaces replaces tabs in the pane. The copied text keeps its tabs.
	tabSpaces = "    "

	minPaneWidth   = 20
	helpNotesWidth = 60
)

// render rebuilds the pane text from the cached canonical document and
// scrolls back to the top-left corner.
func (m *Model) render() {
	m.display = ""
	m.lines = nil
	m.maxWidth = 0
	m.xOffset = 0

	if m.doc != nil {
		res := pipeline.Render(m.doc.Canonical, pipeline.Options{StripComments: m.stripComments})
		m.display = res.Display

		styled := strings.ReplaceAll(highlight.Render(res.Spans), "\t", tabSpaces)
		m.lines = strings.Split(strings.TrimSuffix(styled, "\n"), "\n")
		for _, line := range strings.Split(res.Display, "\n") {
			m.maxWidth = max(m.maxWidth, runewidth.StringWidth(strings.ReplaceAll(line, "\t", tabSpaces)))
		}
		log.Debug(log.CatUI, "rendered document",
			"name", m.doc.Name, "strip_comments", m.stripComments, "lines", len(m.lines))
	}

	m.refreshViewport()
	m.viewport.GotoTop()
}

// refreshViewport sizes the viewport to the pane and crops every line to the
// visible columns. The viewport itself only scrolls vertically.
func (m *Model) refreshViewport() {
	m.viewport.Width = max(m.paneWidth()-2, 1)
	m.viewport.Height = max(m.mainHeight()-2, 1)
	m.xOffset = min(m.xOffset, m.maxXOffset())

	cropped := make([]string, len(m.lines))
	for i, line := range m.lines {
		if m.xOffset > 0 {
			line = ansi.TruncateLeft(line, m.xOffset, "")
		}
		cropped[i] = ansi.Truncate(line, m.viewport.Width, "")
	}
	m.viewport.SetContent(strings.Join(cropped, "\n"))
}

func (m *Model) scrollHorizontal(delta int) {
	next := min(max(m.xOffset+delta, 0), m.maxXOffset())
	if next == m.xOffset {
		return
	}
	m.xOffset = next
	m.refreshViewport()
}

func (m Model) maxXOffset() int {
	return max(m.maxWidth-m.viewport.Width, 0)
}

func (m Model) horizontalStep() int {
	if m.cfg.UI.HorizontalStep > 0 {
		return m.cfg.UI.HorizontalStep
	}
	return 1
}

func (m Model) sidebarWidth() int {
	if m.cfg.UI.SidebarWidth > 0 {
		return m.cfg.UI.SidebarWidth
	}
	return 28
}

// sidebarVisible reports whether the sidebar is shown. It is hidden when the
// terminal is too narrow to fit it next to a usable pane.
func (m Model) sidebarVisible() bool {
	return m.showSidebar && m.width >= m.sidebarWidth()+minPaneWidth
}

func (m Model) paneWidth() int {
	if m.sidebarVisible() {
		return m.width - m.sidebarWidth()
	}
	return m.width
}

// mainHeight is the height above the status line.
func (m Model) mainHeight() int {
	return max(m.height-1, 3)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	main := m.renderPane()
	if m.sidebarVisible() {
		main = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), main)
	}
	view := main + "\n" + m.renderStatusLine()

	if m.showHelp {
		view = m.helpView.Overlay(view)
	}
	view = m.toaster.Overlay(view, m.width, m.height)
	if m.debugMode {
		view = m.logOverlay.Overlay(view)
	}

	return zone.Scan(view)
}

func (m Model) renderPane() string {
	title := "cssliner"
	if m.doc != nil {
		title = m.doc.Name
	}

	var lines []string
	switch {
	case m.loadErr != nil:
		lines = strings.Split(styles.ErrorStyle.Render(m.loadErr.Error()), "\n")
	case m.doc == nil:
		lines = []string{"", styles.HintStyle.Render("  Open a CSS file (press o)")}
	default:
		lines = strings.Split(m.viewport.View(), "\n")
	}

	return styles.RenderWithTitleBorder(lines, title, m.paneWidth(), m.mainHeight(), true)
}

func (m Model) renderSidebar() string {
	width := m.sidebarWidth()
	inner := max(width-4, 1)

	name := "no file"
	if m.doc != nil {
		name = m.doc.Name
	} else if m.path != "" {
		name = filepath.Base(m.path)
	}

	state := "(comments kept)"
	mark := "[ ]"
	if m.stripComments {
		state = "(comments stripped)"
		mark = "[x]"
	}

	lines := []string{
		" " + styles.StatusBarStyle.UnsetPadding().Render(truncate.StringWithTail(name, uint(inner), "…")),
		" " + styles.HintStyle.Render(state),
		"",
		" " + zone.Mark(zoneStripToggle, styles.SelectionIndicatorStyle.Render(mark)+" strip comments"),
		"",
	}
	if m.doc != nil {
		lines = append(lines,
			" "+styles.HintStyle.Render(pluralize(len(m.lines), "line")),
			" "+styles.HintStyle.Render(pluralize(int(m.doc.Size), "byte")+" on disk"),
			"",
		)
	}
	if m.xOffset > 0 {
		lines = append(lines, " "+styles.HintStyle.Render("col "+strconv.Itoa(m.xOffset+1)), "")
	}
	lines = append(lines,
		" "+styles.HintStyle.Render("o open · r reload"),
		" "+styles.HintStyle.Render("y copy · ? help"),
	)

	return styles.RenderWithTitleBorder(lines, "File", width, m.mainHeight(), false)
}

func (m Model) renderStatusLine() string {
	if m.prompting {
		line := m.prompt.View() + "  " + m.helpBar.ShortHelpView(m.promptKeys.ShortHelp())
		return styles.FitWidth(line, m.width)
	}
	return styles.FitWidth(styles.StatusBarStyle.Render(m.helpBar.View(m.keys)), m.width)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
