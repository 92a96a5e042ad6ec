package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/armando-rios/dev-setup/internal/config"
)

func (m Model) viewSelectDisk(s *Surface) {
	y := m.drawBanner(s)
	m.diskMenu.draw(s, y, m.styles)
	m.drawHelp(s, "↑/↓ to move, Enter to select, Esc to quit")
}

func (m Model) updateSelectDiskState(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.diskMenu.handleKey(keyMsg) {
	case menuActionSelect:
		m.cfg.Disk = m.disks[m.diskMenu.cursor].Name
		m.confirm = newConfirmChoice(fmt.Sprintf(
			"ALL DATA ON %s WILL BE ERASED. This cannot be undone. Continue?", m.cfg.Disk), false)
		m.state = StateConfirmDisk
	case menuActionCancel:
		return m.abort()
	}
	return m, nil
}

func (m Model) viewConfirmDisk(s *Surface) {
	y := m.drawBanner(s)
	s.DrawText(y, 2, "Confirm Target Disk", m.styles.Title)
	y += 2
	m.confirm.draw(s, y, m.styles)
	m.drawHelp(s, "←/→ to choose, Enter to confirm, Esc for No")
}

func (m Model) updateConfirmDiskState(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	return m.enterHostname()
}

func (m Model) viewSelectTimezone(s *Surface) {
	y := m.drawBanner(s)
	m.tzMenu.draw(s, y, m.styles)
	m.drawHelp(s, "↑/↓ to move, Enter to select, Esc to quit")
}

func (m Model) updateSelectTimezoneState(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.tzMenu.handleKey(keyMsg) {
	case menuActionSelect:
		if m.tzMenu.cursor < len(config.TimezonePresets) {
			m.cfg.Timezone = config.TimezonePresets[m.tzMenu.cursor].Value
			return m.enterLocaleSelect()
		}
		return m.enterCustomTimezone()
	case menuActionCancel:
		return m.abort()
	}
	return m, nil
}

func (m Model) viewSelectLocale(s *Surface) {
	y := m.drawBanner(s)
	m.localeMenu.draw(s, y, m.styles)
	m.drawHelp(s, "↑/↓ to move, Enter to select, Esc to quit")
}

func (m Model) updateSelectLocaleState(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.localeMenu.handleKey(keyMsg) {
	case menuActionSelect:
		if m.localeMenu.cursor < len(config.LocalePresets) {
			m.cfg.Locale = config.LocalePresets[m.localeMenu.cursor].Value
			return m.enterRootPassword()
		}
		return m.enterCustomLocale()
	case menuActionCancel:
		return m.abort()
	}
	return m, nil
}
