package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type summaryRow struct {
	label string
	value string
}

// summaryRows lays out everything collected. Passwords are reported
// only as set or not, never by value.
func (m Model) summaryRows() []summaryRow {
	mask := func(v string) string {
		if v == "" {
			return "Not set"
		}
		return "Set"
	}

	firmware := "BIOS"
	if m.cfg.UEFI {
		firmware = "UEFI"
	}

	return []summaryRow{
		{"Target disk", m.cfg.Disk},
		{"Firmware", firmware},
		{"Hostname", m.cfg.Hostname},
		{"Username", m.cfg.Username},
		{"Timezone", m.cfg.Timezone},
		{"Locale", m.cfg.Locale},
		{"Root password", mask(m.cfg.RootPassword)},
		{"User password", mask(m.cfg.UserPassword)},
	}
}

func (m Model) viewSummary(s *Surface) {
	y := m.drawBanner(s)

	s.DrawText(y, 2, "Installation Summary", m.styles.Title)
	y += 2

	for _, row := range m.summaryRows() {
		s.DrawText(y, 2, row.label, m.styles.Subtle)
		s.DrawText(y, 18, row.value, m.styles.Bold)
		y++
	}
	y++

	m.confirm.draw(s, y, m.styles)
	m.drawHelp(s, "←/→ to choose, Enter to confirm, Esc for No")
}

func (m Model) updateSummaryState(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	m.state = StateInstalling
	m.isLoading = true
	m.logs = nil
	return m, tea.Batch(m.spinner.Tick, m.startInstall())
}
