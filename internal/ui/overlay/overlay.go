// Package overlay renders popup content on top of a background view
// without clearing the screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where the foreground is placed in the viewport.
type Position int

const (
	// Center places the foreground in the middle of the viewport.
	Center Position = iota
	// Top places it top-center.
	Top
	// Bottom places it bottom-center.
	Bottom
	// TopRight pins it to the upper right corner, used for toasts.
	TopRight
)

// Config controls placement.
type Config struct {
	// Width and Height are the viewport dimensions.
	Width  int
	Height int
	// Position selects the anchor.
	Position Position
	// PadX insets from the left/right edge for corner positions.
	PadX int
	// PadY insets from the top/bottom edge for Top, Bottom, and corners.
	PadY int
}

// Place composites fg over bg. Both sides keep their ANSI styling: the
// covered slice of each background line is cut out with ANSI-aware
// truncation and the foreground line spliced in.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	startX, startY := anchor(cfg, lipgloss.Width(fg), len(fgLines))

	for i, fgLine := range fgLines {
		y := startY + i
		if y >= len(bgLines) {
			break
		}

		bgLine := bgLines[y]
		left := ansi.Truncate(bgLine, startX, "")
		if pad := startX - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}

		endX := startX + ansi.StringWidth(fgLine)
		var right string
		if endX < ansi.StringWidth(bgLine) {
			right = ansi.TruncateLeft(bgLine, endX, "")
		}

		bgLines[y] = left + fgLine + right
	}

	return strings.Join(bgLines, "\n")
}

func anchor(cfg Config, fgWidth, fgHeight int) (x, y int) {
	switch cfg.Position {
	case Top:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.PadY
	case Bottom:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.Height - fgHeight - cfg.PadY
	case TopRight:
		x = cfg.Width - fgWidth - cfg.PadX
		y = cfg.PadY
	default:
		x = (cfg.Width - fgWidth) / 2
		y = (cfg.Height - fgHeight) / 2
	}

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
