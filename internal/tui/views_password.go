package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// updatePasswordState feeds submitted entries to the credential flow.
// The flow decides when the pair is judged; the view renders its prompt
// and error through the shared text entry screen.
func (m Model) updatePasswordState(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			value := m.textInput.Value()
			m.textInput.SetValue("")

			password, done := m.cred.feed(value)
			m.inputErr = m.cred.errMsg
			if !done {
				return m, nil
			}

			if m.state == StateRootPassword {
				m.cfg.RootPassword = password
				return m.enterUserPassword()
			}
			m.cfg.UserPassword = password
			return m.enterSummary()

		case "esc":
			return m.abort()
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}
