package tui

import (
	"github.com/armando-rios/dev-setup/internal/installer"
	"github.com/armando-rios/dev-setup/internal/system"
)

type logMsg struct {
	line string
}

type logClosedMsg struct{}

// progressMsg wraps the engine's channel payload so it can travel as a
// tea.Msg.
type progressMsg installer.ProgressMsg

type progressClosedMsg struct{}

type disksLoadedMsg struct {
	disks []system.Disk
	err   error
}
