package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmChoice is a two-button Yes/No dialog. Escape and 'q' resolve
// as No regardless of which button is highlighted.
type confirmChoice struct {
	message string
	yes     bool
}

func newConfirmChoice(message string, defaultYes bool) confirmChoice {
	return confirmChoice{message: message, yes: defaultYes}
}

// handleKey consumes one key. done reports that the dialog resolved;
// result is meaningful only when done.
func (c *confirmChoice) handleKey(msg tea.KeyMsg) (done bool, result bool) {
	switch msg.String() {
	case "left", "h":
		c.yes = true
	case "right", "l":
		c.yes = false
	case "enter", " ":
		return true, c.yes
	case "esc", "q":
		return true, false
	}
	return false, false
}

// draw renders the wrapped message and the two buttons side by side,
// returning the first free row.
func (c *confirmChoice) draw(s *Surface, y int, styles Styles) int {
	for _, line := range wrapText(c.message, s.Width()-4) {
		s.DrawText(y, 2, line, styles.Normal)
		y++
	}
	y++

	yesStyle, noStyle := styles.Normal, styles.Normal
	if c.yes {
		yesStyle = styles.HighlightButton
	} else {
		noStyle = styles.HighlightButton
	}
	s.DrawText(y, 4, "[ Yes ]", yesStyle)
	s.DrawText(y, 14, "[ No ]", noStyle)

	return y + 2
}

// wrapText word-wraps text to the given width, breaking oversized words
// rather than overflowing.
func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range words {
			for len([]rune(word)) > width {
				runes := []rune(word)
				if current != "" {
					lines = append(lines, current)
					current = ""
				}
				lines = append(lines, string(runes[:width]))
				word = string(runes[width:])
			}
			switch {
			case current == "":
				current = word
			case len([]rune(current))+1+len([]rune(word)) <= width:
				current += " " + word
			default:
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}
