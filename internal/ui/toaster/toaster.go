// Package toaster shows short status notifications in the corner of the
// viewer. Errors stay up longer than confirmations, long messages wrap, and
// a message repeated while still showing is counted instead of re-shown.
package toaster

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/zjrosen/cssliner/internal/ui/overlay"
	"github.com/zjrosen/cssliner/internal/ui/styles"
)

// Style determines the icon, border color and lifetime of a toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// Duration is how long a toast of this style stays up.
func (s Style) Duration() time.Duration {
	switch s {
	case StyleError:
		return 6 * time.Second
	case StyleWarn:
		return 4 * time.Second
	default:
		return 3 * time.Second
	}
}

func (s Style) icon() string {
	switch s {
	case StyleError:
		return "✗"
	case StyleInfo:
		return "i"
	case StyleWarn:
		return "!"
	default:
		return "✓"
	}
}

func (s Style) border() lipgloss.TerminalColor {
	switch s {
	case StyleError:
		return styles.ToastBorderErrorColor
	case StyleInfo:
		return styles.ToastBorderInfoColor
	case StyleWarn:
		return styles.ToastBorderWarnColor
	default:
		return styles.ToastBorderSuccessColor
	}
}

// minWrap keeps very narrow terminals from wrapping every word.
const minWrap = 20

// Model is the toast currently on screen, if any.
type Model struct {
	message string
	style   Style
	repeats int
	// seq identifies the current toast so that a dismissal scheduled for an
	// earlier one does not hide it.
	seq int
}

// New creates an empty toaster.
func New() Model {
	return Model{}
}

// Show displays message for style.Duration.
func (m Model) Show(message string, style Style) (Model, tea.Cmd) {
	return m.ShowFor(message, style, style.Duration())
}

// ShowFor displays message for d. Showing the message already on screen
// bumps its repeat count and restarts the timer.
func (m Model) ShowFor(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	if m.Visible() && message == m.message && style == m.style {
		m.repeats++
	} else {
		m.message, m.style, m.repeats = message, style, 1
	}
	m.seq++
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg { return DismissMsg{seq: seq} })
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		return m.Hide()
	}
	return m
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.message = ""
	m.repeats = 0
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool {
	return m.message != ""
}

// Message returns the current toast text.
func (m Model) Message() string {
	return m.message
}

// Repeats returns how many times the current message was shown in a row.
func (m Model) Repeats() int {
	return m.repeats
}

// View renders the toast box with text wrapped at maxWidth cells. A
// non-positive maxWidth disables wrapping.
func (m Model) View(maxWidth int) string {
	if !m.Visible() {
		return ""
	}

	text := m.style.icon() + " " + m.message
	if m.repeats > 1 {
		text += fmt.Sprintf(" (×%d)", m.repeats)
	}
	if maxWidth > 0 {
		// Border and padding take 4 cells. Unbreakable words such as long
		// paths are hard-wrapped after word wrapping.
		limit := max(maxWidth-4, minWrap)
		text = wrap.String(wordwrap.String(text, limit), limit)
		text = strings.TrimRight(text, "\n")
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.style.border()).
		Render(text)
}

// Overlay renders the toast in the bottom-right corner of bg, using at most
// half the screen width.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.Visible() {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.BottomRight,
		PadX:     1,
		PadY:     1,
	}, m.View(width/2), bg)
}

// DismissMsg closes the toast it was scheduled for.
type DismissMsg struct {
	seq int
}
