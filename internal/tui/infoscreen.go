package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// severityLine splits an embedded severity prefix off a log line and
// picks the style for it. Lines without a prefix render normal.
func severityLine(line string, styles Styles) (string, lipgloss.Style) {
	switch {
	case strings.HasPrefix(line, "SUCCESS: "):
		return strings.TrimPrefix(line, "SUCCESS: "), styles.Success
	case strings.HasPrefix(line, "ERROR: "):
		return strings.TrimPrefix(line, "ERROR: "), styles.Error
	case strings.HasPrefix(line, "WARNING: "):
		return strings.TrimPrefix(line, "WARNING: "), styles.Warning
	case strings.HasPrefix(line, "INFO: "):
		return strings.TrimPrefix(line, "INFO: "), styles.Info
	default:
		return line, styles.Normal
	}
}

// drawInfoLines renders lines from row y down to the last usable row,
// dropping whatever does not fit. Returns the first free row.
func drawInfoLines(s *Surface, y int, lines []string, styles Styles) int {
	for _, line := range lines {
		if y >= s.Height()-1 {
			break
		}
		text, style := severityLine(line, styles)
		s.DrawText(y, 2, text, style)
		y++
	}
	return y
}
