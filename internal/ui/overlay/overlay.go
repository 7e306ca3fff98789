// Package overlay draws one block of text over another without clearing the
// screen. Both layers may carry ANSI styling.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	// Center places the overlay in the middle of the area.
	Center Position = iota
	// Bottom places the overlay at the bottom, centered horizontally.
	Bottom
	// BottomRight places the overlay in the bottom-right corner.
	BottomRight
)

// Config controls overlay rendering behavior.
type Config struct {
	Width    int // total area width
	Height   int // total area height
	Position Position
	PadX     int // distance from the right edge (BottomRight only)
	PadY     int // distance from the bottom edge (Bottom and BottomRight)
}

// Place renders fg on top of bg. bg is padded to cfg.Height lines; fg lines
// wider than cfg.Width are clipped.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	fgWidth := 0
	for _, line := range fgLines {
		fgWidth = max(fgWidth, ansi.StringWidth(line))
	}
	x, y := origin(cfg, fgWidth, len(fgLines))

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		if cfg.Width > 0 {
			line = ansi.Truncate(line, max(cfg.Width-x, 0), "")
		}
		bgLines[row] = splice(bgLines[row], line, x)
	}

	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of bg starting at column x with fg.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	// Reset after fg so its styling does not bleed into the background.
	return left + fg + ansi.ResetStyle + right
}

// origin determines the top-left cell of the overlay.
func origin(cfg Config, fgWidth, fgHeight int) (x, y int) {
	switch cfg.Position {
	case Bottom:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.Height - fgHeight - cfg.PadY
	case BottomRight:
		x = cfg.Width - fgWidth - cfg.PadX
		y = cfg.Height - fgHeight - cfg.PadY
	default:
		x = (cfg.Width - fgWidth) / 2
		y = (cfg.Height - fgHeight) / 2
	}
	return max(x, 0), max(y, 0)
}
