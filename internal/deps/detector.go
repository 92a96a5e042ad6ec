package deps

import (
	"os/exec"
)

type DependencyStatus int

const (
	StatusMissing DependencyStatus = iota
	StatusInstalled
)

type Dependency struct {
	Name        string
	Status      DependencyStatus
	Path        string
	Description string
	Required    bool
}

var execLookPath = exec.LookPath

// installerTools are the external executables the installation phases
// drive. Everything here must exist on the live host before any
// destructive step runs; the packages inside the chroot come from
// pacstrap, not from this list.
var installerTools = []struct {
	name        string
	description string
	required    bool
}{
	{"lsblk", "Block device enumeration", true},
	{"sgdisk", "GPT partitioning", true},
	{"wipefs", "Filesystem signature wipe", true},
	{"partprobe", "Partition table reload", true},
	{"mkfs.fat", "EFI system partition formatting", true},
	{"mkfs.ext4", "Root filesystem formatting", true},
	{"mount", "Filesystem mounting", true},
	{"umount", "Filesystem unmounting", true},
	{"swapoff", "Swap deactivation during disk cleanup", true},
	{"pacstrap", "Base system bootstrap", true},
	{"genfstab", "Mount table generation", true},
	{"arch-chroot", "Target system configuration", true},
}

// DetectInstallerTools resolves every external tool the phases call.
func DetectInstallerTools() []Dependency {
	dependencies := make([]Dependency, 0, len(installerTools))

	for _, tool := range installerTools {
		dep := Dependency{
			Name:        tool.name,
			Description: tool.description,
			Required:    tool.required,
			Status:      StatusMissing,
		}

		if path, err := execLookPath(tool.name); err == nil {
			dep.Status = StatusInstalled
			dep.Path = path
		}

		dependencies = append(dependencies, dep)
	}

	return dependencies
}

// MissingRequired returns the names of required tools that were not found.
func MissingRequired(dependencies []Dependency) []string {
	var missing []string
	for _, dep := range dependencies {
		if dep.Required && dep.Status == StatusMissing {
			missing = append(missing, dep.Name)
		}
	}
	return missing
}
