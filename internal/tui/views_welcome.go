package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) viewWelcome(s *Surface) {
	y := m.drawBanner(s)

	s.DrawText(y, 2, "Welcome", m.styles.Title)
	y += 2

	overview := []string{
		"This wizard installs a complete Arch Linux system with the",
		"Hyprland desktop, an AUR helper, development tooling, and",
		"personal dotfiles.",
	}
	for _, line := range overview {
		s.DrawText(y, 2, line, m.styles.Normal)
		y++
	}
	y++

	s.DrawText(y, 2, "WARNING: the selected target disk will be completely erased.", m.styles.Warning)
	y += 2

	m.confirm.draw(s, y, m.styles)
	m.drawHelp(s, "←/→ to choose, Enter to confirm, Ctrl+C to quit")
}

func (m Model) updateWelcomeState(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	done, proceed := m.confirm.handleKey(keyMsg)
	if !done {
		return m, nil
	}
	if !proceed {
		return m.abort()
	}

	m.state = StateSystemChecks
	m.isLoading = true
	return m, tea.Batch(m.spinner.Tick, m.startChecks())
}
