package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/armando-rios/dev-setup/internal/installer"
)

func stepGlyph(status installer.StepStatus, styles Styles) (string, lipgloss.Style) {
	switch status {
	case installer.StatusCompleted:
		return "✓", styles.Success
	case installer.StatusCurrent:
		return "▶", styles.Info
	case installer.StatusError:
		return "✗", styles.Error
	default:
		return " ", styles.Subtle
	}
}

func (m Model) drawSteps(s *Surface, y int) int {
	for _, step := range m.steps {
		glyph, style := stepGlyph(step.Status, m.styles)
		s.DrawText(y, 2, glyph, style)
		s.DrawText(y, 4, step.Label, m.styles.Normal)
		y++
	}
	return y + 1
}

// drawLogTail fills the space between y and the help row with the most
// recent output lines.
func (m Model) drawLogTail(s *Surface, y int) {
	budget := s.Height() - 2 - y
	if budget <= 1 || len(m.logs) == 0 {
		return
	}
	s.DrawText(y, 2, "Output:", m.styles.Subtle)
	y++
	budget--

	start := 0
	if len(m.logs) > budget {
		start = len(m.logs) - budget
	}
	drawInfoLines(s, y, m.logs[start:], m.styles)
}

func (m Model) viewSystemChecks(s *Surface) {
	y := m.drawBanner(s)

	s.DrawText(y, 2, fmt.Sprintf("%s System Checks", m.spinner.View()), m.styles.Title)
	y += 2

	y = m.drawSteps(s, y)
	m.drawLogTail(s, y)
	m.drawHelp(s, "Ctrl+C to cancel")
}

func (m Model) viewInstalling(s *Surface) {
	y := m.drawBanner(s)

	s.DrawText(y, 2, fmt.Sprintf("%s %s", m.spinner.View(), m.phase), m.styles.Title)
	y += 2

	y = m.drawSteps(s, y)

	if len(m.steps) > 0 {
		completed := 0
		for _, step := range m.steps {
			if step.Status == installer.StatusCompleted {
				completed++
			}
		}
		filled := completed * 30 / len(m.steps)
		bar := fmt.Sprintf("[%s%s] %d/%d",
			strings.Repeat("█", filled),
			strings.Repeat("░", 30-filled),
			completed, len(m.steps))
		s.DrawText(y, 2, bar, m.styles.Normal)
		y += 2
	}

	m.drawLogTail(s, y)
	m.drawHelp(s, "Ctrl+C to cancel")
}

func (m Model) viewComplete(s *Surface) {
	y := m.drawBanner(s)

	s.DrawText(y, 2, "Installation Complete!", m.styles.Success)
	y += 2

	done := []string{
		"• Base system installed and bootloader configured",
		"• Hyprland desktop and development tools installed",
		"• Dotfiles linked for the new user",
	}
	for _, line := range done {
		s.DrawText(y, 2, line, m.styles.Subtle)
		y++
	}
	y++

	s.DrawText(y, 2, "Remove the installation medium and reboot into the new system.", m.styles.Normal)
	m.drawHelp(s, "Press Enter to exit")
}

func (m Model) viewError(s *Surface) {
	y := m.drawBanner(s)

	s.DrawText(y, 2, "Installation Failed", m.styles.Error)
	y += 2

	if m.err != nil {
		s.DrawText(y, 2, "✗ "+m.err.Error(), m.styles.Error)
		y += 2
	}

	if len(m.steps) > 0 {
		y = m.drawSteps(s, y)
	}

	m.drawLogTail(s, y)
	m.drawHelp(s, "Press Enter to exit")
}

func (m Model) updateCompleteState(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) updateErrorState(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "q":
			return m, tea.Quit
		}
	}
	return m, nil
}
