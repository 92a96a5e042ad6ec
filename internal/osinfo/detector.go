package osinfo

import (
	"fmt"
	"runtime"
	"slices"

	"github.com/armando-rios/dev-setup/internal/errdefs"
)

// The wizard bootstraps an Arch target and drives Arch-specific tooling
// (pacstrap, arch-chroot), so the live host must be Arch as well.
var AllSupportedDistros = []string{
	"arch",
}

type OSInfo struct {
	Distribution string
	Version      string
	VersionID    string
	PrettyName   string
	Architecture string
}

var getOsFunc = getGoos
var getArchFunc = getGoarch

func getGoos() string {
	return runtime.GOOS
}

func getGoarch() string {
	return runtime.GOARCH
}

func GetOSInfo() (*OSInfo, error) {
	if getOsFunc() != "linux" {
		return nil, errdefs.NewCustomError(errdefs.ErrTypeNotLinux, fmt.Sprintf("Only linux is supported, but I found %s", getOsFunc()))
	}

	if getArchFunc() != "amd64" && getArchFunc() != "arm64" {
		return nil, errdefs.NewCustomError(errdefs.ErrTypeInvalidArchitecture, fmt.Sprintf("Only amd64 and arm64 are supported, but I found %s", getArchFunc()))
	}

	info := &OSInfo{
		Architecture: getArchFunc(),
	}

	err := detectLinuxDistro(info)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(AllSupportedDistros, info.Distribution) {
		return nil, errdefs.NewCustomError(errdefs.ErrTypeUnsupportedDistribution, fmt.Sprintf("Unsupported distribution: %s", info.Distribution))
	}

	return info, nil
}
