package installer

import (
	"context"

	"github.com/armando-rios/dev-setup/internal/system"
)

type InstallPhase int

const (
	PhaseSystemChecks InstallPhase = iota
	PhaseBaseInstall
	PhasePostConfig
	PhaseSoftware
	PhaseDotfiles
	PhaseComplete
)

func (p InstallPhase) String() string {
	switch p {
	case PhaseSystemChecks:
		return "System checks"
	case PhaseBaseInstall:
		return "Base installation"
	case PhasePostConfig:
		return "System configuration"
	case PhaseSoftware:
		return "Software installation"
	case PhaseDotfiles:
		return "Dotfiles setup"
	case PhaseComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// ProgressMsg is the engine's report to the UI. Steps is a snapshot of
// the active phase's step list; nil Steps means "keep what you had".
// Done marks the last message of a run; Err carries its failure.
type ProgressMsg struct {
	Phase InstallPhase
	Steps []StepView
	Done  bool
	Err   error
}

// SystemProber answers pre-install environment questions.
type SystemProber interface {
	CheckInternet(ctx context.Context) error
	SyncClock(ctx context.Context) error
	IsUEFI() bool
	ListDisks(ctx context.Context) ([]system.Disk, error)
}

// DiskManager prepares the target disk.
type DiskManager interface {
	IsInstallMedium(disk string) (bool, error)
	Cleanup(ctx context.Context, disk string) error
	PartitionUEFI(ctx context.Context, disk string) error
	PartitionBIOS(ctx context.Context, disk string) error
	FormatPartitions(ctx context.Context, disk string, uefi bool) error
	MountPartitions(ctx context.Context, disk string, uefi bool) error
	GenerateMountTable(ctx context.Context) error
}

// PackageManager installs packages into the target tree.
type PackageManager interface {
	Bootstrap(ctx context.Context, packages []string) error
	Install(ctx context.Context, packages []string) error
	InstallAUR(ctx context.Context, packages []string, username string) error
	SetupAURHelper(ctx context.Context, username string) error
}

// Configurator applies chroot-phase system configuration.
type Configurator interface {
	Timezone(ctx context.Context, tz string) error
	Locale(ctx context.Context, locale string) error
	Hostname(ctx context.Context, name string) error
	Networking(ctx context.Context) error
	Users(ctx context.Context, username, rootPassword, userPassword string) error
	Bootloader(ctx context.Context, uefi bool, diskPath string) error
	EnableServices(ctx context.Context, services []string) error
	LoginShell(ctx context.Context, username, shell string) error
}

// DotfilesManager sets up the primary user's home.
type DotfilesManager interface {
	Clone(ctx context.Context, username string) error
	InstallOhMyZsh(ctx context.Context, username string) error
	Link(ctx context.Context, username string) error
	InstallNode(ctx context.Context, username string) error
	InstallBun(ctx context.Context, username string) error
}
