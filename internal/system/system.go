package system

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"strings"
	"time"

	"github.com/Wifx/gonetworkmanager/v2"
	"github.com/godbus/dbus/v5"
	"github.com/spf13/afero"
)

const (
	timedateBusName   = "org.freedesktop.timedate1"
	timedateObject    = "/org/freedesktop/timedate1"
	timedateInterface = "org.freedesktop.timedate1"

	probeTimeout = 5 * time.Second
)

// probeURL is fetched as a connectivity fallback when NetworkManager is
// unreachable or reports a non-global connection.
var probeURL = "https://archlinux.org"

var (
	newNetworkManager = gonetworkmanager.NewNetworkManager
	systemBus         = dbus.SystemBus
	runCommand        = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return exec.CommandContext(ctx, name, args...).Output()
	}
)

// Disk describes a block device that can serve as an installation target.
type Disk struct {
	Name  string
	Size  string
	Model string
}

func (d Disk) String() string {
	return fmt.Sprintf("%s (%s) - %s", d.Name, d.Size, d.Model)
}

// Prober answers the environment questions the installer asks before it
// touches any disk: network reachability, clock synchronization, firmware
// type, and the block devices available as targets.
type Prober struct {
	fs afero.Fs
}

func NewProber() *Prober {
	return &Prober{fs: afero.NewOsFs()}
}

// CheckInternet reports whether the machine can reach the outside world.
// NetworkManager is consulted first; live environments that don't run it
// fall back to fetching a well-known mirror page.
func (p *Prober) CheckInternet(ctx context.Context) error {
	if nm, err := newNetworkManager(); err == nil {
		if state, err := nm.State(); err == nil && state == gonetworkmanager.NmStateConnectedGlobal {
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build connectivity probe: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("no internet connection: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("no internet connection: %s answered %s", probeURL, resp.Status)
	}

	return nil
}

// SyncClock enables NTP synchronization through timedated so that package
// signature checks don't fail on a skewed live-environment clock.
func (p *Prober) SyncClock(ctx context.Context) error {
	conn, err := systemBus()
	if err != nil {
		return fmt.Errorf("failed to connect to system bus: %w", err)
	}

	obj := conn.Object(timedateBusName, timedateObject)
	call := obj.CallWithContext(ctx, timedateInterface+".SetNTP", 0, true, false)
	if call.Err != nil {
		return fmt.Errorf("failed to enable NTP: %w", call.Err)
	}

	return nil
}

// IsUEFI reports whether the machine booted in UEFI mode.
func (p *Prober) IsUEFI() bool {
	_, err := p.fs.Stat("/sys/firmware/efi")
	return err == nil
}

// ListDisks returns the physical block devices lsblk knows about, excluding
// loop devices. The model column is optional in lsblk output; devices
// without one are reported as "Unknown".
func (p *Prober) ListDisks(ctx context.Context) ([]Disk, error) {
	out, err := runCommand(ctx, "lsblk", "-dpno", "NAME,SIZE,MODEL")
	if err != nil {
		return nil, fmt.Errorf("failed to list block devices: %w", err)
	}

	var disks []Disk
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		name := fields[0]
		if strings.HasPrefix(name, "/dev/loop") {
			continue
		}

		model := "Unknown"
		if len(fields) > 2 {
			model = strings.Join(fields[2:], " ")
		}

		disks = append(disks, Disk{Name: name, Size: fields[1], Model: model})
	}

	return disks, nil
}
