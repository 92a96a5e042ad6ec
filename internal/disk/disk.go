package disk

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// Removable devices smaller than this are treated as a likely install
// medium even when nothing from them is currently mounted.
const smallRemovableBytes = 64 << 30

// Mountpoints that identify the running live environment.
var liveMountpoints = map[string]bool{
	"/":                    true,
	"/run/archiso/bootmnt": true,
	"/run/initramfs/live":  true,
}

var runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Manager prepares a target disk for installation: safety checks, cleanup
// of previous state, partitioning, formatting, and mounting under root.
type Manager struct {
	fs   afero.Fs
	root string
}

func NewManager(root string) *Manager {
	return &Manager{fs: afero.NewOsFs(), root: root}
}

// IsInstallMedium reports whether the disk appears to back the running
// live environment. Partitioning such a disk would destroy the installer
// out from under itself, so the caller must refuse it.
func (m *Manager) IsInstallMedium(disk string) (bool, error) {
	mounts, err := m.mountsOf(disk)
	if err != nil {
		return false, err
	}
	for _, target := range mounts {
		if liveMountpoints[target] {
			return true, nil
		}
	}
	return m.isSmallRemovable(disk)
}

// Cleanup releases everything still holding the disk from a previous run:
// swap is turned off, mounts are removed deepest-first, filesystem
// signatures are wiped, and the kernel re-reads the partition table.
func (m *Manager) Cleanup(ctx context.Context, disk string) error {
	for _, dev := range m.swapDevicesOf(disk) {
		// Best effort: a device that is not actually swapping fails here.
		_, _ = runCommand(ctx, "swapoff", dev)
	}

	mounts, err := m.mountsOf(disk)
	if err != nil {
		return err
	}
	sort.Slice(mounts, func(i, j int) bool { return len(mounts[i]) > len(mounts[j]) })
	for _, target := range mounts {
		if _, err := runCommand(ctx, "umount", target); err != nil {
			if _, err := runCommand(ctx, "umount", "-l", target); err != nil {
				return commandError(fmt.Sprintf("failed to unmount %s", target), err)
			}
		}
	}

	if _, err := runCommand(ctx, "wipefs", "--all", "--force", disk); err != nil {
		return commandError("failed to wipe filesystem signatures", err)
	}
	if _, err := runCommand(ctx, "partprobe", disk); err != nil {
		return commandError("failed to re-read partition table", err)
	}
	return nil
}

// PartitionUEFI writes a GPT with a 1G EFI system partition followed by a
// root partition spanning the rest of the disk.
func (m *Manager) PartitionUEFI(ctx context.Context, disk string) error {
	return m.partition(ctx, disk, [][]string{
		{"sgdisk", "--zap-all", disk},
		{"sgdisk", "--new=1:0:+1G", "--typecode=1:ef00", "--change-name=1:EFI System", disk},
		{"sgdisk", "--new=2:0:0", "--typecode=2:8300", "--change-name=2:Linux filesystem", disk},
	})
}

// PartitionBIOS writes a GPT with a BIOS boot partition for GRUB followed
// by a root partition spanning the rest of the disk.
func (m *Manager) PartitionBIOS(ctx context.Context, disk string) error {
	return m.partition(ctx, disk, [][]string{
		{"sgdisk", "--zap-all", disk},
		{"sgdisk", "--new=1:0:+1M", "--typecode=1:ef02", "--change-name=1:BIOS boot", disk},
		{"sgdisk", "--new=2:0:0", "--typecode=2:8300", "--change-name=2:Linux filesystem", disk},
	})
}

func (m *Manager) partition(ctx context.Context, disk string, commands [][]string) error {
	for _, argv := range commands {
		if _, err := runCommand(ctx, argv[0], argv[1:]...); err != nil {
			return commandError(fmt.Sprintf("failed to partition %s", disk), err)
		}
	}
	return nil
}

// FormatPartitions formats the EFI partition as FAT32 on UEFI systems and
// the root partition as ext4.
func (m *Manager) FormatPartitions(ctx context.Context, disk string, uefi bool) error {
	if uefi {
		if _, err := runCommand(ctx, "mkfs.fat", "-F32", partitionPath(disk, 1)); err != nil {
			return commandError("failed to format EFI partition", err)
		}
	}
	if _, err := runCommand(ctx, "mkfs.ext4", "-F", partitionPath(disk, 2)); err != nil {
		return commandError("failed to format root partition", err)
	}
	return nil
}

// MountPartitions mounts the root partition under the target root and, on
// UEFI systems, the EFI partition under boot/efi inside it.
func (m *Manager) MountPartitions(ctx context.Context, disk string, uefi bool) error {
	if _, err := runCommand(ctx, "mount", partitionPath(disk, 2), m.root); err != nil {
		return commandError("failed to mount root partition", err)
	}

	if uefi {
		efiDir := filepath.Join(m.root, "boot", "efi")
		if err := m.fs.MkdirAll(efiDir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", efiDir, err)
		}
		if _, err := runCommand(ctx, "mount", partitionPath(disk, 1), efiDir); err != nil {
			return commandError("failed to mount EFI partition", err)
		}
	}
	return nil
}

// GenerateMountTable appends genfstab output for the mounted target tree
// to its /etc/fstab.
func (m *Manager) GenerateMountTable(ctx context.Context) error {
	out, err := runCommand(ctx, "genfstab", "-U", m.root)
	if err != nil {
		return commandError("failed to generate filesystem table", err)
	}

	fstab := filepath.Join(m.root, "etc", "fstab")
	f, err := m.fs.OpenFile(fstab, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", fstab, err)
	}
	defer f.Close()

	if _, err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write %s: %w", fstab, err)
	}
	return nil
}

// mountsOf returns the mountpoints of the disk and its partitions.
func (m *Manager) mountsOf(disk string) ([]string, error) {
	f, err := m.fs.Open("/proc/mounts")
	if err != nil {
		return nil, fmt.Errorf("failed to read mount table: %w", err)
	}
	defer f.Close()

	var targets []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		if belongsTo(fields[0], disk) {
			targets = append(targets, fields[1])
		}
	}
	return targets, scanner.Err()
}

// swapDevicesOf returns active swap devices backed by the disk.
func (m *Manager) swapDevicesOf(disk string) []string {
	f, err := m.fs.Open("/proc/swaps")
	if err != nil {
		return nil
	}
	defer f.Close()

	var devices []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if belongsTo(fields[0], disk) {
			devices = append(devices, fields[0])
		}
	}
	return devices
}

func (m *Manager) isSmallRemovable(disk string) (bool, error) {
	base := filepath.Base(disk)

	removable, err := afero.ReadFile(m.fs, filepath.Join("/sys/block", base, "removable"))
	if err != nil {
		// Devices without the flag (virtio, loop-backed test rigs) are
		// not treated as removable.
		return false, nil
	}
	if strings.TrimSpace(string(removable)) != "1" {
		return false, nil
	}

	sectors, err := afero.ReadFile(m.fs, filepath.Join("/sys/block", base, "size"))
	if err != nil {
		return true, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(string(sectors)), 10, 64)
	if err != nil {
		return true, nil
	}
	return n*512 < smallRemovableBytes, nil
}

// belongsTo reports whether source is the disk itself or one of its
// partitions (/dev/sda2, /dev/nvme0n1p2).
func belongsTo(source, disk string) bool {
	if source == disk {
		return true
	}
	rest, ok := strings.CutPrefix(source, disk)
	if !ok {
		return false
	}
	rest = strings.TrimPrefix(rest, "p")
	if rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// partitionPath names the nth partition of a disk, inserting the "p"
// separator required when the disk name ends in a digit (nvme0n1p1,
// mmcblk0p1).
func partitionPath(disk string, n int) string {
	if len(disk) > 0 {
		if last := disk[len(disk)-1]; last >= '0' && last <= '9' {
			return fmt.Sprintf("%sp%d", disk, n)
		}
	}
	return fmt.Sprintf("%s%d", disk, n)
}

func commandError(action string, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if line := lastLine(exitErr.Stderr); line != "" {
			return fmt.Errorf("%s: %s: %w", action, line, err)
		}
	}
	return fmt.Errorf("%s: %w", action, err)
}

func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
