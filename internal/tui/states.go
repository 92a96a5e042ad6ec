package tui

type ApplicationState int

const (
	StateWelcome ApplicationState = iota
	StateSystemChecks
	StateSelectDisk
	StateConfirmDisk
	StateHostname
	StateUsername
	StateSelectTimezone
	StateCustomTimezone
	StateSelectLocale
	StateCustomLocale
	StateRootPassword
	StateUserPassword
	StateSummary
	StateInstalling
	StateComplete
	StateError
)
