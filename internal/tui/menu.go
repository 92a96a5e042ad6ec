package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type menuAction int

const (
	menuActionNone menuAction = iota
	menuActionSelect
	menuActionCancel
)

type menuOption struct {
	label       string
	description string
}

// menuList is a cursor-driven option list. The cursor never wraps:
// moving up at the top or down at the bottom is a no-op.
type menuList struct {
	title   string
	options []menuOption
	cursor  int
}

func newMenuList(title string, options []menuOption) menuList {
	return menuList{title: title, options: options}
}

func (l *menuList) handleKey(msg tea.KeyMsg) menuAction {
	switch msg.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < len(l.options)-1 {
			l.cursor++
		}
	case "enter", " ":
		return menuActionSelect
	case "esc", "q":
		return menuActionCancel
	}
	return menuActionNone
}

// window bounds the visible slice to the row budget, recentred around
// the cursor once the list outgrows it.
func (l *menuList) window(budget int) (start, end int, moreAbove, moreBelow bool) {
	if budget < 1 {
		budget = 1
	}
	if len(l.options) <= budget {
		return 0, len(l.options), false, false
	}

	start = l.cursor - budget/2
	if start < 0 {
		start = 0
	}
	if start > len(l.options)-budget {
		start = len(l.options) - budget
	}
	end = start + budget

	return start, end, start > 0, end < len(l.options)
}

// draw renders the list starting at row y and returns the first free row.
func (l *menuList) draw(s *Surface, y int, styles Styles) int {
	s.DrawText(y, 2, l.title, styles.Title)
	y += 2

	budget := s.Height() - y - 4
	start, end, moreAbove, moreBelow := l.window(budget)

	if moreAbove {
		s.DrawText(y-1, 4, "↑ more", styles.Subtle)
	}

	for i := start; i < end; i++ {
		option := l.options[i]
		if i == l.cursor {
			s.DrawText(y, 2, "▶ "+option.label, styles.SelectedOption)
		} else {
			s.DrawText(y, 4, option.label, styles.Normal)
		}
		if option.description != "" {
			s.DrawText(y, 6+len([]rune(option.label)), fmt.Sprintf("(%s)", option.description), styles.Subtle)
		}
		y++
	}

	if moreBelow {
		s.DrawText(y, 4, "↓ more", styles.Subtle)
		y++
	}

	return y + 1
}

func (l *menuList) selected() menuOption {
	return l.options[l.cursor]
}
