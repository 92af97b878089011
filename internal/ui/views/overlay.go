package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// PlaceOverlay draws fg on top of bg with its top-left corner at (x, y).
// Both are rendered, possibly styled, multi-line strings. Cells of bg that
// fg does not cover are kept, styles included.
func PlaceOverlay(x, y int, fg, bg string) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	for i, fgLine := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		line := bgLines[row]
		lineWidth := lipgloss.Width(line)
		fgWidth := lipgloss.Width(fgLine)

		left := xansi.Truncate(line, x, "")
		if pad := x - lipgloss.Width(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if x+fgWidth < lineWidth {
			right = xansi.TruncateLeft(line, x+fgWidth, "")
		}
		bgLines[row] = left + fgLine + right
	}
	return strings.Join(bgLines, "\n")
}

// placeCenter draws fg centred over bg
func placeCenter(fg, bg string, width, height int) string {
	x := (width - lipgloss.Width(fg)) / 2
	y := (height - lipgloss.Height(fg)) / 2
	return PlaceOverlay(x, y, fg, bg)
}
