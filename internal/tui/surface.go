package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	MinWidth  = 60
	MinHeight = 20
)

// Surface is a fixed-size character grid the views draw into. Text is
// plain runes; styling is applied per run when the frame is flushed, so
// drawn text must never carry escape sequences of its own.
type Surface struct {
	width  int
	height int
	cells  [][]rune
	styles [][]int
	// palette[styles[y][x]] styles the cell; -1 leaves it unstyled.
	palette []lipgloss.Style
}

func NewSurface(width, height int) *Surface {
	s := &Surface{width: width, height: height}
	s.Clear()
	return s
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

func (s *Surface) Clear() {
	s.cells = make([][]rune, s.height)
	s.styles = make([][]int, s.height)
	for y := 0; y < s.height; y++ {
		s.cells[y] = make([]rune, s.width)
		s.styles[y] = make([]int, s.width)
		for x := 0; x < s.width; x++ {
			s.cells[y][x] = ' '
			s.styles[y][x] = -1
		}
	}
	s.palette = s.palette[:0]
}

// DrawText writes text at (y, x), clipped to width-x-1 cells. Positions
// outside the grid are ignored rather than reported; callers lay out
// optimistically and let the grid bound them.
func (s *Surface) DrawText(y, x int, text string, style lipgloss.Style) {
	if y < 0 || y >= s.height || x < 0 || x >= s.width {
		return
	}
	limit := s.width - x - 1
	if limit <= 0 {
		return
	}

	runes := []rune(text)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	if len(runes) == 0 {
		return
	}

	styleIdx := len(s.palette)
	s.palette = append(s.palette, style)

	for i, r := range runes {
		s.cells[y][x+i] = r
		s.styles[y][x+i] = styleIdx
	}
}

// String flushes the frame, rendering each run of equally styled cells
// through its style.
func (s *Surface) String() string {
	var b strings.Builder
	for y := 0; y < s.height; y++ {
		x := 0
		for x < s.width {
			idx := s.styles[y][x]
			end := x
			for end < s.width && s.styles[y][end] == idx {
				end++
			}
			chunk := string(s.cells[y][x:end])
			if idx >= 0 {
				chunk = s.palette[idx].Render(chunk)
			}
			b.WriteString(chunk)
			x = end
		}
		if y < s.height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
