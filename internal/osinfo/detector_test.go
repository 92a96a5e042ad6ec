package osinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armando-rios/dev-setup/internal/errdefs"
)

func withOSRelease(t *testing.T, content string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "os-release")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	orig := osOpen
	osOpen = func(string) (*os.File, error) { return os.Open(path) }
	t.Cleanup(func() { osOpen = orig })
}

func TestGetOSInfoArch(t *testing.T) {
	origOs, origArch := getOsFunc, getArchFunc
	getOsFunc = func() string { return "linux" }
	getArchFunc = func() string { return "amd64" }
	t.Cleanup(func() { getOsFunc, getArchFunc = origOs, origArch })

	withOSRelease(t, `NAME="Arch Linux"
PRETTY_NAME="Arch Linux"
ID=arch
BUILD_ID=rolling
`)

	info, err := GetOSInfo()
	require.NoError(t, err)
	assert.Equal(t, "arch", info.Distribution)
	assert.Equal(t, "rolling", info.VersionID)
	assert.Equal(t, "Arch Linux", info.PrettyName)
	assert.Equal(t, "amd64", info.Architecture)
}

func TestGetOSInfoRejectsNonArch(t *testing.T) {
	origOs, origArch := getOsFunc, getArchFunc
	getOsFunc = func() string { return "linux" }
	getArchFunc = func() string { return "amd64" }
	t.Cleanup(func() { getOsFunc, getArchFunc = origOs, origArch })

	withOSRelease(t, `NAME="Ubuntu"
PRETTY_NAME="Ubuntu 24.04 LTS"
ID=ubuntu
VERSION_ID="24.04"
`)

	_, err := GetOSInfo()
	require.Error(t, err)

	var custom *errdefs.CustomError
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, errdefs.ErrTypeUnsupportedDistribution, custom.Type)
}

func TestGetOSInfoRejectsNonLinux(t *testing.T) {
	origOs := getOsFunc
	getOsFunc = func() string { return "darwin" }
	t.Cleanup(func() { getOsFunc = origOs })

	_, err := GetOSInfo()
	require.Error(t, err)

	var custom *errdefs.CustomError
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, errdefs.ErrTypeNotLinux, custom.Type)
}
