// Package logoverlay shows recent debug log entries on top of the viewer.
// Entries are collected from the log broker whether or not the overlay is
// open, and can be narrowed by minimum level and by category.
package logoverlay

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/cssliner/internal/log"
	"github.com/zjrosen/cssliner/internal/ui/overlay"
	"github.com/zjrosen/cssliner/internal/ui/styles"
)

const (
	maxEntries = 1000

	minListHeight = 5
	maxListHeight = 25
	minBoxWidth   = 40
	maxBoxWidth   = 160
)

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

// record is one log entry with the level and category it was written with.
// Lines that do not follow the log format have no level and no category.
type record struct {
	text     string
	level    log.Level
	hasLevel bool
	category log.Category
}

func parseRecord(entry string) record {
	r := record{text: strings.TrimSuffix(entry, "\n")}
	for _, field := range strings.Fields(r.text) {
		bracketed := len(field) > 2 && field[0] == '[' && field[len(field)-1] == ']'
		if !bracketed {
			if r.hasLevel {
				break
			}
			continue
		}
		name := field[1 : len(field)-1]
		if !r.hasLevel {
			r.level, r.hasLevel = log.ParseLevel(name)
			continue
		}
		r.category = log.Category(name)
		break
	}
	return r
}

// Model is the log overlay state.
type Model struct {
	visible  bool
	records  []record
	minLevel log.Level
	category log.Category // "" shows every category

	width, height int
	list          viewport.Model

	listener *log.LogListener
}

// New creates a hidden overlay showing every level and category.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// StartListening subscribes to the global logger. It returns nil when no
// logger is installed.
func (m *Model) StartListening() tea.Cmd {
	m.listener = log.NewListener(context.Background())
	if m.listener == nil {
		return nil
	}
	return m.listener.Listen()
}

// StopListening ends the subscription started by StartListening.
func (m *Model) StopListening() {
	m.listener.Close()
}

// Update collects log events and, while visible, handles keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if ev, ok := msg.(log.LogEvent); ok {
		m.records = append(m.records, parseRecord(ev.Payload))
		if over := len(m.records) - maxEntries; over > 0 {
			m.records = m.records[over:]
		}
		if m.visible {
			m.refresh()
		}
		if m.listener == nil {
			return m, nil
		}
		return m, m.listener.Listen()
	}

	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			m.records = nil
			m.refresh()
		case "d":
			m.filterLevel(log.LevelDebug)
		case "i":
			m.filterLevel(log.LevelInfo)
		case "w":
			m.filterLevel(log.LevelWarn)
		case "e":
			m.filterLevel(log.LevelError)
		case "f":
			m.category = nextCategory(m.category)
			m.refresh()
		case "j", "down":
			m.list.ScrollDown(1)
		case "k", "up":
			m.list.ScrollUp(1)
		case "g":
			m.list.GotoTop()
		case "G":
			m.list.GotoBottom()
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+x", "esc":
			m.visible = false
			return m, func() tea.Msg { return CloseMsg{} }
		}

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}

	return m, nil
}

func (m *Model) filterLevel(level log.Level) {
	m.minLevel = level
	m.refresh()
}

// nextCategory cycles "" -> first category -> ... -> last category -> "".
func nextCategory(current log.Category) log.Category {
	if current == "" {
		return log.Categories[0]
	}
	for i, c := range log.Categories {
		if c == current && i+1 < len(log.Categories) {
			return log.Categories[i+1]
		}
	}
	return ""
}

// View renders the log box, or "" while hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	title := "Logs"
	if m.category != "" {
		title += " · " + string(m.category)
	}
	lines := append(strings.Split(m.list.View(), "\n"), m.filterHint())
	return styles.RenderWithTitleBorder(lines, title, m.boxWidth(), m.list.Height+3, true)
}

// Overlay renders the log box centered on bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// Visible reports whether the overlay is open.
func (m Model) Visible() bool {
	return m.visible
}

// Entries returns the collected entries that pass the current filters.
// Entries without a level pass every level filter.
func (m Model) Entries() []string {
	var out []string
	for _, r := range m.records {
		if m.matches(r) {
			out = append(out, r.text)
		}
	}
	return out
}

func (m Model) matches(r record) bool {
	if r.hasLevel && r.level < m.minLevel {
		return false
	}
	return m.category == "" || r.category == m.category
}

// Toggle opens or closes the overlay.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refresh()
	}
}

// Hide closes the overlay.
func (m *Model) Hide() {
	m.visible = false
}

// SetSize records the screen size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.refresh()
}

// refresh rebuilds the list and scrolls to the newest entry.
func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	// Borders and the hint line take 3 rows, plus margin around the box.
	height := max(min(maxListHeight, m.height-5), minListHeight)
	width := m.boxWidth() - 2

	m.list = viewport.New(width, height)
	m.list.SetContent(m.renderEntries(width))
	m.list.GotoBottom()
}

func (m Model) renderEntries(width int) string {
	var lines []string
	for _, r := range m.records {
		if m.matches(r) {
			lines = append(lines, renderRecord(r, width))
		}
	}
	if len(lines) == 0 {
		return lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Italic(true).
			Render("No logs to display")
	}
	return strings.Join(lines, "\n")
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, maxBoxWidth), minBoxWidth)
}

func renderRecord(r record, width int) string {
	text := r.text
	if ansi.StringWidth(text) > width {
		text = ansi.Truncate(text, width-3, "...")
	}
	return lipgloss.NewStyle().Foreground(levelColor(r)).Render(text)
}

func levelColor(r record) lipgloss.TerminalColor {
	if !r.hasLevel {
		return styles.TextPrimaryColor
	}
	switch r.level {
	case log.LevelError:
		return styles.StatusErrorColor
	case log.LevelWarn:
		return styles.StatusWarningColor
	case log.LevelInfo:
		return styles.ToastBorderInfoColor
	default:
		return styles.TextMutedColor
	}
}

// filterHint lists the filter keys with the active choices in bold.
func (m Model) filterHint() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	parts := []string{hint.Render("[c] Clear")}
	for _, opt := range []struct {
		level log.Level
		label string
	}{
		{log.LevelDebug, "[d] Debug"},
		{log.LevelInfo, "[i] Info"},
		{log.LevelWarn, "[w] Warn"},
		{log.LevelError, "[e] Error"},
	} {
		style := hint
		if m.minLevel == opt.level {
			style = active
		}
		parts = append(parts, style.Render(opt.label))
	}

	category := "all"
	if m.category != "" {
		category = string(m.category)
	}
	parts = append(parts, hint.Render("[f] ")+active.Render(category))
	return " " + strings.Join(parts, "  ")
}
