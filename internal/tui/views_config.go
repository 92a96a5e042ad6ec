package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/armando-rios/dev-setup/internal/config"
	"github.com/armando-rios/dev-setup/internal/validate"
)

func newTextField(hint string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = hint
	ti.CharLimit = 64
	ti.Focus()
	return ti
}

func (m Model) enterHostname() (tea.Model, tea.Cmd) {
	m.state = StateHostname
	m.inputDefault = config.DefaultHostname
	m.inputErr = ""
	m.textInput = newTextField(config.DefaultHostname)
	return m, textinput.Blink
}

func (m Model) enterUsername() (tea.Model, tea.Cmd) {
	m.state = StateUsername
	m.inputDefault = config.DefaultUsername
	m.inputErr = ""
	m.textInput = newTextField(config.DefaultUsername)
	return m, textinput.Blink
}

func (m Model) enterTimezoneSelect() (tea.Model, tea.Cmd) {
	options := make([]menuOption, 0, len(config.TimezonePresets)+1)
	for _, preset := range config.TimezonePresets {
		options = append(options, menuOption{label: preset.Label})
	}
	options = append(options, menuOption{label: "Custom timezone", description: "type your own"})
	m.tzMenu = newMenuList("Select Timezone", options)
	m.state = StateSelectTimezone
	return m, nil
}

func (m Model) enterCustomTimezone() (tea.Model, tea.Cmd) {
	m.state = StateCustomTimezone
	m.inputDefault = ""
	m.inputErr = ""
	m.textInput = newTextField("Region/City")
	return m, textinput.Blink
}

func (m Model) enterLocaleSelect() (tea.Model, tea.Cmd) {
	options := make([]menuOption, 0, len(config.LocalePresets)+1)
	for _, preset := range config.LocalePresets {
		options = append(options, menuOption{label: preset.Label})
	}
	options = append(options, menuOption{label: "Custom locale", description: "type your own"})
	m.localeMenu = newMenuList("Select Locale", options)
	m.state = StateSelectLocale
	return m, nil
}

func (m Model) enterCustomLocale() (tea.Model, tea.Cmd) {
	m.state = StateCustomLocale
	m.inputDefault = ""
	m.inputErr = ""
	m.textInput = newTextField("xx_YY.UTF-8")
	return m, textinput.Blink
}

func (m Model) enterRootPassword() (tea.Model, tea.Cmd) {
	m.state = StateRootPassword
	m.cred = newCredentialFlow("Root password")
	m.inputErr = ""
	m.textInput = newTextField("")
	m.textInput.EchoMode = textinput.EchoNone
	return m, textinput.Blink
}

func (m Model) enterUserPassword() (tea.Model, tea.Cmd) {
	m.state = StateUserPassword
	m.cred = newCredentialFlow("User password")
	m.inputErr = ""
	m.textInput = newTextField("")
	m.textInput.EchoMode = textinput.EchoNone
	return m, textinput.Blink
}

func (m Model) enterSummary() (tea.Model, tea.Cmd) {
	m.state = StateSummary
	m.confirm = newConfirmChoice("Proceed with installation?", false)
	return m, nil
}

func (m Model) updateTextEntryState(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m.submitTextEntry()
		case "esc":
			return m.abort()
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// submitTextEntry resolves the current field: empty input falls back to
// the default, then the value must pass its validator before the wizard
// moves on.
func (m Model) submitTextEntry() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.textInput.Value())
	if value == "" {
		value = m.inputDefault
	}

	switch m.state {
	case StateHostname:
		if ok, reason := validate.Hostname(value); !ok {
			m.inputErr = reason
			return m, nil
		}
		m.cfg.Hostname = value
		return m.enterUsername()

	case StateUsername:
		if ok, reason := validate.Username(value); !ok {
			m.inputErr = reason
			return m, nil
		}
		m.cfg.Username = value
		return m.enterTimezoneSelect()

	case StateCustomTimezone:
		if ok, reason := validate.Timezone(value); !ok {
			m.inputErr = reason
			return m, nil
		}
		m.cfg.Timezone = value
		return m.enterLocaleSelect()

	case StateCustomLocale:
		if ok, reason := validate.Locale(value); !ok {
			m.inputErr = reason
			return m, nil
		}
		m.cfg.Locale = value
		return m.enterRootPassword()
	}
	return m, nil
}

func (m Model) viewTextEntry(s *Surface) {
	y := m.drawBanner(s)

	s.DrawText(y, 2, m.inputTitle(), m.styles.Title)
	y += 2

	m.drawInputField(s, y)
	y += 2

	if m.inputDefault != "" {
		s.DrawText(y, 2, fmt.Sprintf("Leave empty for default: %s", m.inputDefault), m.styles.Subtle)
		y++
	}
	if m.isSecretEntry() {
		s.DrawText(y, 2, "Input is hidden while you type.", m.styles.Subtle)
		y++
	}
	if m.inputErr != "" {
		y++
		s.DrawText(y, 2, "✗ "+m.inputErr, m.styles.Error)
	}

	m.drawHelp(s, "Enter to accept, Esc to quit")
}

func (m Model) inputTitle() string {
	switch m.state {
	case StateHostname:
		return "Hostname"
	case StateUsername:
		return "Username"
	case StateCustomTimezone:
		return "Custom Timezone"
	case StateCustomLocale:
		return "Custom Locale"
	case StateRootPassword, StateUserPassword:
		return m.cred.prompt()
	}
	return ""
}

func (m Model) isSecretEntry() bool {
	return m.state == StateRootPassword || m.state == StateUserPassword
}

// drawInputField renders the prompt, the current value, and a block
// cursor. Secret fields show only the cursor.
func (m Model) drawInputField(s *Surface, y int) {
	s.DrawText(y, 2, ">", m.styles.Key)

	value := m.textInput.Value()
	cursor := 4 + m.textInput.Position()
	if m.textInput.EchoMode == textinput.EchoNone {
		value = ""
		cursor = 4
	}

	s.DrawText(y, 4, value, m.styles.Bold)
	s.DrawText(y, cursor, "█", m.styles.Normal)
}

func (m Model) drawHelp(s *Surface, text string) {
	s.DrawText(s.Height()-2, 2, text, m.styles.Subtle)
}
