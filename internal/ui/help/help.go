// Package help contains the help overlay component.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/cssliner/internal/csslex"
	"github.com/zjrosen/cssliner/internal/highlight"
	"github.com/zjrosen/cssliner/internal/keys"
	"github.com/zjrosen/cssliner/internal/log"
	"github.com/zjrosen/cssliner/internal/ui/markdown"
	"github.com/zjrosen/cssliner/internal/ui/overlay"
	"github.com/zjrosen/cssliner/internal/ui/styles"
)

// notesMarkdown is rendered with glamour below the key columns.
const notesMarkdown = `Every rule block is collapsed onto a single line. Bodies of ` + "`@media`" + ` and ` + "`@feature`" + ` groups are collapsed the same way and keep their wrapper lines.

Toggling **strip comments** re-renders the cached text; the file is not read again.`

// legendSamples shows one example per highlighted category.
var legendSamples = []struct {
	cat    csslex.Category
	sample string
}{
	{csslex.Comment, "/* note */"},
	{csslex.AtRule, "@media"},
	{csslex.Selector, ".card"},
	{csslex.Brace, "{ }"},
	{csslex.Property, "color"},
	{csslex.Punctuation, ": ;"},
	{csslex.Value, "red"},
}

// legendExample is highlighted in full below the samples.
const legendExample = "@media print {\n.card { color:red; }\n}"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			PaddingLeft(2)

	dividerStyle = lipgloss.NewStyle().
			Foreground(styles.OverlayBorderColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Width(8)

	descStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			MarginTop(1)
)

// Model holds the help view state.
type Model struct {
	keys   keys.KeyMap
	notes  string
	width  int
	height int
}

// New creates a help view for km.
func New(km keys.KeyMap) Model {
	return Model{keys: km}
}

// WithNotes renders the explanatory notes with r. On failure the notes are
// left out and the key columns are still shown.
func (m Model) WithNotes(r *markdown.Renderer) Model {
	if r == nil {
		m.notes = ""
		return m
	}
	out, err := r.Render(notesMarkdown)
	if err != nil {
		log.ErrorErr(log.CatUI, "rendering help notes", err)
		m.notes = ""
		return m
	}
	m.notes = out
	return m
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help box on its own, centered.
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	box := m.renderContent()

	if background == "" {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			box,
		)
	}

	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, box, background)
}

func (m Model) renderContent() string {
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	var navCol strings.Builder
	navCol.WriteString(sectionStyle.Render("Navigation"))
	navCol.WriteString("\n")
	navCol.WriteString(renderKeyDesc("j/k", "up/down"))
	navCol.WriteString(renderKeyDesc("h/l", "left/right"))
	navCol.WriteString(renderBinding(m.keys.PageUp))
	navCol.WriteString(renderBinding(m.keys.PageDown))
	navCol.WriteString(renderKeyDesc("g/G", "top/bottom"))

	var actionsCol strings.Builder
	actionsCol.WriteString(sectionStyle.Render("Actions"))
	actionsCol.WriteString("\n")
	actionsCol.WriteString(renderBinding(m.keys.ToggleComments))
	actionsCol.WriteString(renderBinding(m.keys.Open))
	actionsCol.WriteString(renderBinding(m.keys.Reload))
	actionsCol.WriteString(renderBinding(m.keys.Yank))

	var generalCol strings.Builder
	generalCol.WriteString(sectionStyle.Render("General"))
	generalCol.WriteString("\n")
	generalCol.WriteString(renderBinding(m.keys.ToggleSidebar))
	generalCol.WriteString(renderBinding(m.keys.Help))
	generalCol.WriteString(renderBinding(m.keys.Escape))
	generalCol.WriteString(renderBinding(m.keys.Quit))

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(navCol.String()),
		columnStyle.Render(actionsCol.String()),
		generalCol.String(),
	)

	var legend strings.Builder
	legend.WriteString(sectionStyle.Render("Legend"))
	legend.WriteString("\n")
	for i, s := range legendSamples {
		if i > 0 {
			legend.WriteString("  ")
		}
		legend.WriteString(highlight.StyleFor(s.cat).Render(s.sample))
	}
	legend.WriteString("\n\n")
	legend.WriteString(highlight.CSS(legendExample))

	sections := []string{columns, legend.String()}
	if m.notes != "" {
		sections = append(sections, "", m.notes)
	}
	sections = append(sections, footerStyle.Render("Press ? or Esc to close"))
	inner := strings.Join(sections, "\n")

	boxWidth := lipgloss.Width(inner) + 4
	body := contentStyle.Render(inner)
	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Keybindings"))
	content.WriteString("\n")
	content.WriteString(divider)
	content.WriteString("\n")
	content.WriteString(body)

	return boxStyle.Width(boxWidth).Render(content.String())
}

func renderBinding(b key.Binding) string {
	h := b.Help()
	return renderKeyDesc(h.Key, h.Desc)
}

func renderKeyDesc(key, desc string) string {
	return keyStyle.Render(key) + descStyle.Render(desc) + "\n"
}
