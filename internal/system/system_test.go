package system

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Wifx/gonetworkmanager/v2"
	"github.com/godbus/dbus/v5"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDisks(t *testing.T) {
	orig := runCommand
	t.Cleanup(func() { runCommand = orig })

	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		assert.Equal(t, "lsblk", name)
		assert.Equal(t, []string{"-dpno", "NAME,SIZE,MODEL"}, args)
		return []byte(`/dev/loop0    7:0    0  156M
/dev/sda    476.9G Samsung SSD 870
/dev/nvme0n1 931.5G WD_BLACK SN770 1TB
/dev/sdb     14.3G
`), nil
	}

	p := NewProber()
	disks, err := p.ListDisks(context.Background())
	require.NoError(t, err)
	require.Len(t, disks, 3)

	assert.Equal(t, Disk{Name: "/dev/sda", Size: "476.9G", Model: "Samsung SSD 870"}, disks[0])
	assert.Equal(t, Disk{Name: "/dev/nvme0n1", Size: "931.5G", Model: "WD_BLACK SN770 1TB"}, disks[1])
	assert.Equal(t, Disk{Name: "/dev/sdb", Size: "14.3G", Model: "Unknown"}, disks[2])
	assert.Equal(t, "/dev/sda (476.9G) - Samsung SSD 870", disks[0].String())
}

func TestListDisksCommandError(t *testing.T) {
	orig := runCommand
	t.Cleanup(func() { runCommand = orig })

	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("exec: \"lsblk\": executable file not found in $PATH")
	}

	p := NewProber()
	_, err := p.ListDisks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list block devices")
}

func TestCheckInternetHTTPFallback(t *testing.T) {
	origNM := newNetworkManager
	origURL := probeURL
	t.Cleanup(func() {
		newNetworkManager = origNM
		probeURL = origURL
	})

	newNetworkManager = func() (gonetworkmanager.NetworkManager, error) {
		return nil, errors.New("dbus unavailable")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	probeURL = srv.URL
	p := NewProber()
	assert.NoError(t, p.CheckInternet(context.Background()))
}

func TestCheckInternetUnreachable(t *testing.T) {
	origNM := newNetworkManager
	origURL := probeURL
	t.Cleanup(func() {
		newNetworkManager = origNM
		probeURL = origURL
	})

	newNetworkManager = func() (gonetworkmanager.NetworkManager, error) {
		return nil, errors.New("dbus unavailable")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	probeURL = srv.URL
	p := NewProber()
	err := p.CheckInternet(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no internet connection")
}

func TestIsUEFI(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/sys/firmware/efi/efivars", 0o755))

	p := &Prober{fs: fs}
	assert.True(t, p.IsUEFI())

	p = &Prober{fs: afero.NewMemMapFs()}
	assert.False(t, p.IsUEFI())
}

func TestSyncClockBusUnavailable(t *testing.T) {
	orig := systemBus
	t.Cleanup(func() { systemBus = orig })

	systemBus = func() (*dbus.Conn, error) {
		return nil, errors.New("no system bus")
	}

	p := NewProber()
	err := p.SyncClock(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to system bus")
}
