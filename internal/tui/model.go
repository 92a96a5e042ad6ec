package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/armando-rios/dev-setup/internal/config"
	"github.com/armando-rios/dev-setup/internal/installer"
	"github.com/armando-rios/dev-setup/internal/system"
)

const maxLogLines = 50

// Model drives the wizard. It owns the collected configuration and the
// install engine; the engine runs in command goroutines and reports
// back over the progress and log channels.
type Model struct {
	state  ApplicationState
	styles Styles
	width  int
	height int

	spinner      spinner.Model
	textInput    textinput.Model
	inputDefault string
	inputErr     string

	cfg    *config.Install
	engine *installer.Engine

	ctx    context.Context
	cancel context.CancelFunc

	progressChan chan installer.ProgressMsg
	logChan      chan string

	disks      []system.Disk
	diskMenu   menuList
	tzMenu     menuList
	localeMenu menuList
	confirm    confirmChoice
	cred       credentialFlow

	phase installer.InstallPhase
	steps []installer.StepView
	logs  []string

	err       error
	cancelled bool
	isLoading bool
}

func NewModel() Model {
	cfg := &config.Install{}
	logChan := make(chan string, 64)
	ctx, cancel := context.WithCancel(context.Background())

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		state:        StateWelcome,
		styles:       NewStyles(ArchTheme()),
		spinner:      sp,
		cfg:          cfg,
		engine:       installer.NewEngine(cfg, logChan),
		ctx:          ctx,
		cancel:       cancel,
		progressChan: make(chan installer.ProgressMsg, 16),
		logChan:      logChan,
		confirm:      newConfirmChoice("Ready to begin?", true),
	}
}

// Err reports the failure that ended the run, if any.
func (m Model) Err() error { return m.err }

// Cancelled reports whether the user backed out before completion.
func (m Model) Cancelled() bool { return m.cancelled }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForProgress(), m.listenForLogs())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.abort()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case logMsg:
		m.logs = append(m.logs, msg.line)
		if len(m.logs) > maxLogLines {
			m.logs = m.logs[len(m.logs)-maxLogLines:]
		}
		return m, m.listenForLogs()

	case logClosedMsg:
		return m, nil

	case progressMsg:
		return m.handleProgress(installer.ProgressMsg(msg))

	case progressClosedMsg:
		return m, nil

	case disksLoadedMsg:
		return m.handleDisksLoaded(msg)
	}

	switch m.state {
	case StateWelcome:
		return m.updateWelcomeState(msg)
	case StateSelectDisk:
		return m.updateSelectDiskState(msg)
	case StateConfirmDisk:
		return m.updateConfirmDiskState(msg)
	case StateHostname, StateUsername, StateCustomTimezone, StateCustomLocale:
		return m.updateTextEntryState(msg)
	case StateSelectTimezone:
		return m.updateSelectTimezoneState(msg)
	case StateSelectLocale:
		return m.updateSelectLocaleState(msg)
	case StateRootPassword, StateUserPassword:
		return m.updatePasswordState(msg)
	case StateSummary:
		return m.updateSummaryState(msg)
	case StateComplete:
		return m.updateCompleteState(msg)
	case StateError:
		return m.updateErrorState(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.width < MinWidth || m.height < MinHeight {
		return fmt.Sprintf("Terminal too small: %dx%d, minimum is %dx%d. Resize to continue.",
			m.width, m.height, MinWidth, MinHeight)
	}

	s := NewSurface(m.width, m.height)
	switch m.state {
	case StateWelcome:
		m.viewWelcome(s)
	case StateSystemChecks:
		m.viewSystemChecks(s)
	case StateSelectDisk:
		m.viewSelectDisk(s)
	case StateConfirmDisk:
		m.viewConfirmDisk(s)
	case StateHostname, StateUsername, StateCustomTimezone, StateCustomLocale,
		StateRootPassword, StateUserPassword:
		m.viewTextEntry(s)
	case StateSelectTimezone:
		m.viewSelectTimezone(s)
	case StateSelectLocale:
		m.viewSelectLocale(s)
	case StateSummary:
		m.viewSummary(s)
	case StateInstalling:
		m.viewInstalling(s)
	case StateComplete:
		m.viewComplete(s)
	case StateError:
		m.viewError(s)
	}
	return s.String()
}

// abort tears the run down on user cancellation.
func (m Model) abort() (tea.Model, tea.Cmd) {
	m.cancelled = true
	m.cancel()
	return m, tea.Quit
}

func (m Model) handleProgress(p installer.ProgressMsg) (tea.Model, tea.Cmd) {
	if p.Steps != nil {
		m.phase = p.Phase
		m.steps = p.Steps
	}

	if p.Err != nil {
		m.err = p.Err
		m.isLoading = false
		m.state = StateError
		return m, m.listenForProgress()
	}

	if p.Done {
		switch p.Phase {
		case installer.PhaseSystemChecks:
			return m, tea.Batch(m.listenForProgress(), m.loadDisks())
		case installer.PhaseComplete:
			m.isLoading = false
			m.state = StateComplete
			return m, m.listenForProgress()
		}
	}

	return m, m.listenForProgress()
}

func (m Model) handleDisksLoaded(msg disksLoadedMsg) (tea.Model, tea.Cmd) {
	m.isLoading = false
	if msg.err != nil {
		m.err = msg.err
		m.state = StateError
		return m, nil
	}
	if len(msg.disks) == 0 {
		m.err = fmt.Errorf("no target disks detected")
		m.state = StateError
		return m, nil
	}

	m.disks = msg.disks
	options := make([]menuOption, len(msg.disks))
	for i, d := range msg.disks {
		options[i] = menuOption{label: d.String()}
	}
	m.diskMenu = newMenuList("Select Target Disk", options)
	m.state = StateSelectDisk
	return m, nil
}

func (m Model) listenForLogs() tea.Cmd {
	return func() tea.Msg {
		line, ok := <-m.logChan
		if !ok {
			return logClosedMsg{}
		}
		return logMsg{line: line}
	}
}

func (m Model) listenForProgress() tea.Cmd {
	return func() tea.Msg {
		p, ok := <-m.progressChan
		if !ok {
			return progressClosedMsg{}
		}
		return progressMsg(p)
	}
}

func (m Model) startChecks() tea.Cmd {
	return func() tea.Msg {
		m.engine.RunChecks(m.ctx, m.progressChan)
		return nil
	}
}

func (m Model) startInstall() tea.Cmd {
	return func() tea.Msg {
		m.engine.RunInstall(m.ctx, m.progressChan)
		return nil
	}
}

func (m Model) loadDisks() tea.Cmd {
	return func() tea.Msg {
		disks, err := m.engine.Prober().ListDisks(m.ctx)
		return disksLoadedMsg{disks: disks, err: err}
	}
}
