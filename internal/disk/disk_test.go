package disk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(fs afero.Fs) *Manager {
	return &Manager{fs: fs, root: "/mnt"}
}

func interceptCommands(t *testing.T, fail func(argv []string) error) *[][]string {
	t.Helper()

	orig := runCommand
	t.Cleanup(func() { runCommand = orig })

	var calls [][]string
	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		argv := append([]string{name}, args...)
		calls = append(calls, argv)
		if fail != nil {
			return nil, fail(argv)
		}
		return nil, nil
	}
	return &calls
}

func TestPartitionPath(t *testing.T) {
	tests := []struct {
		disk string
		n    int
		want string
	}{
		{"/dev/sda", 1, "/dev/sda1"},
		{"/dev/sda", 2, "/dev/sda2"},
		{"/dev/nvme0n1", 1, "/dev/nvme0n1p1"},
		{"/dev/nvme0n1", 2, "/dev/nvme0n1p2"},
		{"/dev/mmcblk0", 2, "/dev/mmcblk0p2"},
		{"/dev/vdb", 1, "/dev/vdb1"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, partitionPath(tt.disk, tt.n))
		})
	}
}

func TestBelongsTo(t *testing.T) {
	assert.True(t, belongsTo("/dev/sda", "/dev/sda"))
	assert.True(t, belongsTo("/dev/sda2", "/dev/sda"))
	assert.True(t, belongsTo("/dev/nvme0n1p2", "/dev/nvme0n1"))
	assert.False(t, belongsTo("/dev/sdab", "/dev/sda"))
	assert.False(t, belongsTo("/dev/sdb1", "/dev/sda"))
	assert.False(t, belongsTo("/dev/nvme0n1p", "/dev/nvme0n1"))
}

func TestIsInstallMediumMountedLiveImage(t *testing.T) {
	fs := afero.NewMemMapFs()
	mounts := strings.Join([]string{
		"proc /proc proc rw 0 0",
		"/dev/sdb1 /run/archiso/bootmnt iso9660 ro 0 0",
		"/dev/mapper/root / ext4 rw 0 0",
	}, "\n")
	require.NoError(t, afero.WriteFile(fs, "/proc/mounts", []byte(mounts), 0o444))

	m := newTestManager(fs)

	isMedium, err := m.IsInstallMedium("/dev/sdb")
	require.NoError(t, err)
	assert.True(t, isMedium)

	isMedium, err = m.IsInstallMedium("/dev/sda")
	require.NoError(t, err)
	assert.False(t, isMedium)
}

func TestIsInstallMediumSmallRemovable(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proc/mounts", []byte("proc /proc proc rw 0 0\n"), 0o444))

	// 16 GiB USB stick.
	require.NoError(t, afero.WriteFile(fs, "/sys/block/sdc/removable", []byte("1\n"), 0o444))
	require.NoError(t, afero.WriteFile(fs, "/sys/block/sdc/size", []byte(fmt.Sprintf("%d\n", (16<<30)/512)), 0o444))

	// 1 TiB external SSD.
	require.NoError(t, afero.WriteFile(fs, "/sys/block/sdd/removable", []byte("1\n"), 0o444))
	require.NoError(t, afero.WriteFile(fs, "/sys/block/sdd/size", []byte(fmt.Sprintf("%d\n", (1<<40)/512)), 0o444))

	// Fixed internal disk.
	require.NoError(t, afero.WriteFile(fs, "/sys/block/sda/removable", []byte("0\n"), 0o444))

	m := newTestManager(fs)

	isMedium, err := m.IsInstallMedium("/dev/sdc")
	require.NoError(t, err)
	assert.True(t, isMedium)

	isMedium, err = m.IsInstallMedium("/dev/sdd")
	require.NoError(t, err)
	assert.False(t, isMedium)

	isMedium, err = m.IsInstallMedium("/dev/sda")
	require.NoError(t, err)
	assert.False(t, isMedium)
}

func TestCleanupOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	mounts := strings.Join([]string{
		"/dev/sda2 /mnt ext4 rw 0 0",
		"/dev/sda1 /mnt/boot/efi vfat rw 0 0",
		"/dev/sdb1 /other ext4 rw 0 0",
	}, "\n")
	swaps := strings.Join([]string{
		"Filename\tType\tSize\tUsed\tPriority",
		"/dev/sda3 partition 8388604 0 -2",
	}, "\n")
	require.NoError(t, afero.WriteFile(fs, "/proc/mounts", []byte(mounts), 0o444))
	require.NoError(t, afero.WriteFile(fs, "/proc/swaps", []byte(swaps), 0o444))

	calls := interceptCommands(t, nil)

	m := newTestManager(fs)
	require.NoError(t, m.Cleanup(context.Background(), "/dev/sda"))

	assert.Equal(t, [][]string{
		{"swapoff", "/dev/sda3"},
		{"umount", "/mnt/boot/efi"},
		{"umount", "/mnt"},
		{"wipefs", "--all", "--force", "/dev/sda"},
		{"partprobe", "/dev/sda"},
	}, *calls)
}

func TestPartitionUEFI(t *testing.T) {
	calls := interceptCommands(t, nil)

	m := newTestManager(afero.NewMemMapFs())
	require.NoError(t, m.PartitionUEFI(context.Background(), "/dev/sda"))

	assert.Equal(t, [][]string{
		{"sgdisk", "--zap-all", "/dev/sda"},
		{"sgdisk", "--new=1:0:+1G", "--typecode=1:ef00", "--change-name=1:EFI System", "/dev/sda"},
		{"sgdisk", "--new=2:0:0", "--typecode=2:8300", "--change-name=2:Linux filesystem", "/dev/sda"},
	}, *calls)
}

func TestPartitionBIOS(t *testing.T) {
	calls := interceptCommands(t, nil)

	m := newTestManager(afero.NewMemMapFs())
	require.NoError(t, m.PartitionBIOS(context.Background(), "/dev/sda"))

	assert.Equal(t, [][]string{
		{"sgdisk", "--zap-all", "/dev/sda"},
		{"sgdisk", "--new=1:0:+1M", "--typecode=1:ef02", "--change-name=1:BIOS boot", "/dev/sda"},
		{"sgdisk", "--new=2:0:0", "--typecode=2:8300", "--change-name=2:Linux filesystem", "/dev/sda"},
	}, *calls)
}

func TestPartitionStopsOnFailure(t *testing.T) {
	calls := interceptCommands(t, func(argv []string) error {
		if len(argv) > 1 && argv[1] == "--new=1:0:+1G" {
			return errors.New("exit status 2")
		}
		return nil
	})

	m := newTestManager(afero.NewMemMapFs())
	err := m.PartitionUEFI(context.Background(), "/dev/sda")
	require.Error(t, err)
	assert.Len(t, *calls, 2)
}

func TestFormatPartitions(t *testing.T) {
	t.Run("uefi", func(t *testing.T) {
		calls := interceptCommands(t, nil)

		m := newTestManager(afero.NewMemMapFs())
		require.NoError(t, m.FormatPartitions(context.Background(), "/dev/nvme0n1", true))

		assert.Equal(t, [][]string{
			{"mkfs.fat", "-F32", "/dev/nvme0n1p1"},
			{"mkfs.ext4", "-F", "/dev/nvme0n1p2"},
		}, *calls)
	})

	t.Run("bios", func(t *testing.T) {
		calls := interceptCommands(t, nil)

		m := newTestManager(afero.NewMemMapFs())
		require.NoError(t, m.FormatPartitions(context.Background(), "/dev/sda", false))

		assert.Equal(t, [][]string{
			{"mkfs.ext4", "-F", "/dev/sda2"},
		}, *calls)
	})
}

func TestMountPartitions(t *testing.T) {
	t.Run("uefi", func(t *testing.T) {
		calls := interceptCommands(t, nil)
		fs := afero.NewMemMapFs()

		m := newTestManager(fs)
		require.NoError(t, m.MountPartitions(context.Background(), "/dev/sda", true))

		assert.Equal(t, [][]string{
			{"mount", "/dev/sda2", "/mnt"},
			{"mount", "/dev/sda1", "/mnt/boot/efi"},
		}, *calls)

		exists, err := afero.DirExists(fs, "/mnt/boot/efi")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("bios", func(t *testing.T) {
		calls := interceptCommands(t, nil)

		m := newTestManager(afero.NewMemMapFs())
		require.NoError(t, m.MountPartitions(context.Background(), "/dev/sda", false))

		assert.Equal(t, [][]string{
			{"mount", "/dev/sda2", "/mnt"},
		}, *calls)
	})
}

func TestGenerateMountTable(t *testing.T) {
	orig := runCommand
	t.Cleanup(func() { runCommand = orig })

	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		assert.Equal(t, "genfstab", name)
		assert.Equal(t, []string{"-U", "/mnt"}, args)
		return []byte("UUID=abcd / ext4 rw,relatime 0 1\n"), nil
	}

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/mnt/etc/fstab", []byte("# Static information about the filesystems.\n"), 0o644))

	m := newTestManager(fs)
	require.NoError(t, m.GenerateMountTable(context.Background()))

	content, err := afero.ReadFile(fs, "/mnt/etc/fstab")
	require.NoError(t, err)
	assert.Equal(t, "# Static information about the filesystems.\nUUID=abcd / ext4 rw,relatime 0 1\n", string(content))
}
