package installer

import (
	"context"
	"fmt"
	"strings"

	"github.com/armando-rios/dev-setup/internal/config"
	"github.com/armando-rios/dev-setup/internal/deps"
	"github.com/armando-rios/dev-setup/internal/disk"
	"github.com/armando-rios/dev-setup/internal/dotfiles"
	"github.com/armando-rios/dev-setup/internal/log"
	"github.com/armando-rios/dev-setup/internal/osinfo"
	"github.com/armando-rios/dev-setup/internal/pkgmanager"
	"github.com/armando-rios/dev-setup/internal/system"
	"github.com/armando-rios/dev-setup/internal/sysconfig"
)

// Engine owns the destructive half of the wizard. It runs each phase as
// a step pipeline over the collaborators and reports progress over a
// channel; the UI never calls a collaborator directly.
type Engine struct {
	cfg      *config.Install
	prober   SystemProber
	disks    DiskManager
	packages PackageManager
	sysconf  Configurator
	dotfiles DotfilesManager

	detectOS    func() (*osinfo.OSInfo, error)
	detectTools func() []deps.Dependency

	logChan chan<- string
}

func NewEngine(cfg *config.Install, logChan chan<- string) *Engine {
	return &Engine{
		cfg:         cfg,
		prober:      system.NewProber(),
		disks:       disk.NewManager(config.TargetRoot),
		packages:    pkgmanager.NewPacman(config.TargetRoot, logChan),
		sysconf:     sysconfig.New(config.TargetRoot),
		dotfiles:    dotfiles.NewManager(config.TargetRoot, logChan),
		detectOS:    osinfo.GetOSInfo,
		detectTools: deps.DetectInstallerTools,
		logChan:     logChan,
	}
}

// Prober exposes the system prober for the UI's disk listing.
func (e *Engine) Prober() SystemProber {
	return e.prober
}

// RunChecks runs the pre-install environment phase. It records the
// firmware type in the wizard config. Meant to run in its own goroutine;
// the last message it sends carries Done.
func (e *Engine) RunChecks(ctx context.Context, progress chan<- ProgressMsg) {
	if res := RunPhase(ctx, PhaseSystemChecks, e.checkSteps(), progress); !res.Success {
		log.Errorf("system checks failed: %s", res.Reason)
		return
	}
	progress <- ProgressMsg{Phase: PhaseSystemChecks, Done: true}
}

// RunInstall runs the four destructive phases in order, stopping at the
// first failure. Meant to run in its own goroutine; the last message it
// sends carries Done.
func (e *Engine) RunInstall(ctx context.Context, progress chan<- ProgressMsg) {
	phases := []struct {
		phase InstallPhase
		steps []Step
	}{
		{PhaseBaseInstall, e.baseInstallSteps()},
		{PhasePostConfig, e.postConfigSteps()},
		{PhaseSoftware, e.softwareSteps()},
		{PhaseDotfiles, e.dotfilesSteps()},
	}

	for _, p := range phases {
		e.log(fmt.Sprintf("Starting phase: %s", p.phase))
		if res := RunPhase(ctx, p.phase, p.steps, progress); !res.Success {
			log.Errorf("installation failed: %s", res.Reason)
			return
		}
	}

	progress <- ProgressMsg{Phase: PhaseComplete, Done: true}
}

func (e *Engine) checkSteps() []Step {
	return []Step{
		{Label: "Verify installer environment", Run: func(ctx context.Context) error {
			info, err := e.detectOS()
			if err != nil {
				return err
			}
			e.log(fmt.Sprintf("Running on %s (%s)", info.PrettyName, info.Architecture))
			return nil
		}},
		{Label: "Check required tools", Run: func(ctx context.Context) error {
			if missing := deps.MissingRequired(e.detectTools()); len(missing) > 0 {
				return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
			}
			return nil
		}},
		{Label: "Check internet connection", Run: e.prober.CheckInternet},
		{Label: "Synchronize system clock", Run: func(ctx context.Context) error {
			// A skewed clock usually still works; signature checks warn
			// loudly enough if it doesn't.
			if err := e.prober.SyncClock(ctx); err != nil {
				log.Warnf("clock synchronization failed: %v", err)
				e.log("WARNING: clock synchronization failed, continuing")
			}
			return nil
		}},
		{Label: "Detect firmware type", Run: func(ctx context.Context) error {
			e.cfg.UEFI = e.prober.IsUEFI()
			if e.cfg.UEFI {
				e.log("UEFI firmware detected")
			} else {
				e.log("BIOS firmware detected")
			}
			return nil
		}},
	}
}

func (e *Engine) baseInstallSteps() []Step {
	target := e.cfg.Disk
	uefi := e.cfg.UEFI
	return []Step{
		{Label: "Verify target disk is safe", Run: func(ctx context.Context) error {
			isMedium, err := e.disks.IsInstallMedium(target)
			if err != nil {
				return err
			}
			if isMedium {
				return fmt.Errorf("%s appears to be the live installation medium", target)
			}
			return nil
		}},
		{Label: "Clean target disk", Run: func(ctx context.Context) error {
			return e.disks.Cleanup(ctx, target)
		}},
		{Label: "Create partitions", Run: func(ctx context.Context) error {
			if uefi {
				return e.disks.PartitionUEFI(ctx, target)
			}
			return e.disks.PartitionBIOS(ctx, target)
		}},
		{Label: "Format partitions", Run: func(ctx context.Context) error {
			return e.disks.FormatPartitions(ctx, target, uefi)
		}},
		{Label: "Mount partitions", Run: func(ctx context.Context) error {
			return e.disks.MountPartitions(ctx, target, uefi)
		}},
		{Label: "Install base system", Run: func(ctx context.Context) error {
			return e.packages.Bootstrap(ctx, config.BaseSystemPackages)
		}},
		{Label: "Generate filesystem table", Run: func(ctx context.Context) error {
			return e.disks.GenerateMountTable(ctx)
		}},
	}
}

func (e *Engine) postConfigSteps() []Step {
	return []Step{
		{Label: "Configure timezone", Run: func(ctx context.Context) error {
			return e.sysconf.Timezone(ctx, e.cfg.Timezone)
		}},
		{Label: "Configure locales", Run: func(ctx context.Context) error {
			return e.sysconf.Locale(ctx, e.cfg.Locale)
		}},
		{Label: "Configure hostname", Run: func(ctx context.Context) error {
			return e.sysconf.Hostname(ctx, e.cfg.Hostname)
		}},
		{Label: "Configure networking", Run: func(ctx context.Context) error {
			return e.sysconf.Networking(ctx)
		}},
		{Label: "Configure users", Run: func(ctx context.Context) error {
			return e.sysconf.Users(ctx, e.cfg.Username, e.cfg.RootPassword, e.cfg.UserPassword)
		}},
		{Label: "Install bootloader", Run: func(ctx context.Context) error {
			return e.sysconf.Bootloader(ctx, e.cfg.UEFI, e.cfg.Disk)
		}},
	}
}

func (e *Engine) softwareSteps() []Step {
	user := e.cfg.Username
	return []Step{
		{Label: "Install essential packages", Run: func(ctx context.Context) error {
			return e.packages.Install(ctx, config.AllEssentialPackages())
		}},
		{Label: "Install AMD graphics drivers", Run: func(ctx context.Context) error {
			return e.packages.Install(ctx, config.AMDGraphicsPackages)
		}},
		{Label: "Set up AUR helper", Run: func(ctx context.Context) error {
			return e.packages.SetupAURHelper(ctx, user)
		}},
		{Label: "Install AUR packages", Run: func(ctx context.Context) error {
			return e.packages.InstallAUR(ctx, config.AURPackages, user)
		}},
		{Label: "Install oh-my-zsh", Run: func(ctx context.Context) error {
			return e.dotfiles.InstallOhMyZsh(ctx, user)
		}},
		{Label: "Change login shell to zsh", Run: func(ctx context.Context) error {
			return e.sysconf.LoginShell(ctx, user, "/usr/bin/zsh")
		}},
		{Label: "Enable system services", Run: func(ctx context.Context) error {
			return e.sysconf.EnableServices(ctx, config.SystemServices)
		}},
	}
}

func (e *Engine) dotfilesSteps() []Step {
	user := e.cfg.Username
	return []Step{
		{Label: "Clone dotfiles", Run: func(ctx context.Context) error {
			return e.dotfiles.Clone(ctx, user)
		}},
		{Label: "Link dotfiles", Run: func(ctx context.Context) error {
			return e.dotfiles.Link(ctx, user)
		}},
		{Label: "Install Node.js", Run: func(ctx context.Context) error {
			return e.dotfiles.InstallNode(ctx, user)
		}},
		{Label: "Install Bun", Run: func(ctx context.Context) error {
			return e.dotfiles.InstallBun(ctx, user)
		}},
	}
}

func (e *Engine) log(line string) {
	if e.logChan == nil || line == "" {
		return
	}
	select {
	case e.logChan <- line:
	default:
	}
}
