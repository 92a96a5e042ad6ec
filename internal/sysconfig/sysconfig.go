package sysconfig

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/armando-rios/dev-setup/internal/chroot"
	"github.com/armando-rios/dev-setup/internal/config"
)

// Locale generation falls back to this when the chosen locale differs, so
// the system always has at least one working UTF-8 locale.
const fallbackLocale = "en_US.UTF-8"

// sudoers drop-in: wheel members get sudo, and pacman/makepkg run without
// a password so the AUR helper can build unattended.
const sudoersWheel = "%wheel ALL=(ALL:ALL) ALL\n" +
	"%wheel ALL=(ALL:ALL) NOPASSWD: /usr/bin/pacman, /usr/bin/makepkg\n"

type executor interface {
	Run(ctx context.Context, args ...string) error
	RunInput(ctx context.Context, input string, args ...string) error
}

// Configurator applies post-install configuration to the bootstrapped
// target tree, partly through arch-chroot and partly by writing files
// under the target root directly.
type Configurator struct {
	fs     afero.Fs
	root   string
	chroot executor
}

func New(root string) *Configurator {
	return &Configurator{
		fs:     afero.NewOsFs(),
		root:   root,
		chroot: chroot.New(root),
	}
}

// Timezone links /etc/localtime to the zoneinfo entry and writes the
// hardware clock from the (NTP-synced) system time.
func (c *Configurator) Timezone(ctx context.Context, tz string) error {
	zone := filepath.Join("/usr/share/zoneinfo", tz)
	if err := c.chroot.Run(ctx, "ln", "-sf", zone, "/etc/localtime"); err != nil {
		return fmt.Errorf("failed to set timezone: %w", err)
	}
	if err := c.chroot.Run(ctx, "hwclock", "--systohc"); err != nil {
		return fmt.Errorf("failed to set hardware clock: %w", err)
	}
	return nil
}

// Locale enables the chosen locale in locale.gen (plus the UTF-8 fallback
// when they differ), generates locales, and sets LANG.
func (c *Configurator) Locale(ctx context.Context, locale string) error {
	if err := c.enableLocale(locale); err != nil {
		return err
	}
	if locale != fallbackLocale {
		if err := c.enableLocale(fallbackLocale); err != nil {
			return err
		}
	}

	if err := c.chroot.Run(ctx, "locale-gen"); err != nil {
		return fmt.Errorf("failed to generate locales: %w", err)
	}

	confPath := filepath.Join(c.root, "etc", "locale.conf")
	if err := afero.WriteFile(c.fs, confPath, []byte("LANG="+locale+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", confPath, err)
	}
	return nil
}

func (c *Configurator) enableLocale(locale string) error {
	path := filepath.Join(c.root, "etc", "locale.gen")
	content, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	lines := strings.Split(string(content), "\n")
	enabled := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, locale+" ") || trimmed == locale {
			enabled = true
			continue
		}
		rest, ok := strings.CutPrefix(trimmed, "#")
		if !ok {
			continue
		}
		rest = strings.TrimSpace(rest)
		if strings.HasPrefix(rest, locale+" ") || rest == locale {
			lines[i] = rest
			enabled = true
		}
	}

	out := strings.Join(lines, "\n")
	if !enabled {
		// Locales typed in by hand may not appear in the shipped file.
		out = strings.TrimRight(out, "\n") + "\n" + locale + " UTF-8\n"
	}

	if err := afero.WriteFile(c.fs, path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Hostname writes /etc/hostname and a matching /etc/hosts.
func (c *Configurator) Hostname(ctx context.Context, name string) error {
	hostnamePath := filepath.Join(c.root, "etc", "hostname")
	if err := afero.WriteFile(c.fs, hostnamePath, []byte(name+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", hostnamePath, err)
	}

	hosts := fmt.Sprintf("127.0.0.1\tlocalhost\n::1\t\tlocalhost\n127.0.1.1\t%s.localdomain\t%s\n", name, name)
	hostsPath := filepath.Join(c.root, "etc", "hosts")
	if err := afero.WriteFile(c.fs, hostsPath, []byte(hosts), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", hostsPath, err)
	}
	return nil
}

// Networking enables NetworkManager so the installed system comes up with
// working network management on first boot.
func (c *Configurator) Networking(ctx context.Context) error {
	if err := c.chroot.Run(ctx, "systemctl", "enable", "NetworkManager"); err != nil {
		return fmt.Errorf("failed to enable NetworkManager: %w", err)
	}
	return nil
}

// Users sets the root password, creates the primary user with its groups
// and shell, sets its password, and installs the sudoers drop-in.
// Passwords travel to chpasswd on stdin.
func (c *Configurator) Users(ctx context.Context, username, rootPassword, userPassword string) error {
	if err := c.chroot.RunInput(ctx, "root:"+rootPassword+"\n", "chpasswd"); err != nil {
		return fmt.Errorf("failed to set root password: %w", err)
	}

	groups := strings.Join(config.UserGroups, ",")
	if err := c.chroot.Run(ctx, "useradd", "-m", "-G", groups, "-s", "/bin/bash", username); err != nil {
		return fmt.Errorf("failed to create user %s: %w", username, err)
	}

	if err := c.chroot.RunInput(ctx, username+":"+userPassword+"\n", "chpasswd"); err != nil {
		return fmt.Errorf("failed to set password for %s: %w", username, err)
	}

	dropinDir := filepath.Join(c.root, "etc", "sudoers.d")
	if err := c.fs.MkdirAll(dropinDir, 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", dropinDir, err)
	}
	dropin := filepath.Join(dropinDir, "10-wheel")
	if err := afero.WriteFile(c.fs, dropin, []byte(sudoersWheel), 0o440); err != nil {
		return fmt.Errorf("failed to write %s: %w", dropin, err)
	}
	return nil
}

// Bootloader installs GRUB for the detected firmware and generates its
// configuration. BIOS installs target the whole disk, not a partition.
func (c *Configurator) Bootloader(ctx context.Context, uefi bool, diskPath string) error {
	if uefi {
		if err := c.chroot.Run(ctx, "grub-install", "--target=x86_64-efi", "--efi-directory=/boot/efi", "--bootloader-id=GRUB"); err != nil {
			return fmt.Errorf("failed to install GRUB for UEFI: %w", err)
		}
	} else {
		if diskPath == "" {
			return errors.New("disk path required for BIOS bootloader")
		}
		if err := c.chroot.Run(ctx, "grub-install", "--target=i386-pc", diskPath); err != nil {
			return fmt.Errorf("failed to install GRUB for BIOS: %w", err)
		}
	}

	if err := c.chroot.Run(ctx, "grub-mkconfig", "-o", "/boot/grub/grub.cfg"); err != nil {
		return fmt.Errorf("failed to generate GRUB configuration: %w", err)
	}
	return nil
}

// EnableServices enables each systemd unit in order, failing on the first
// unit systemctl rejects.
func (c *Configurator) EnableServices(ctx context.Context, services []string) error {
	for _, service := range services {
		if err := c.chroot.Run(ctx, "systemctl", "enable", service); err != nil {
			return fmt.Errorf("failed to enable %s: %w", service, err)
		}
	}
	return nil
}

// LoginShell switches the user's login shell.
func (c *Configurator) LoginShell(ctx context.Context, username, shell string) error {
	if err := c.chroot.Run(ctx, "chsh", "-s", shell, username); err != nil {
		return fmt.Errorf("failed to change shell for %s: %w", username, err)
	}
	return nil
}
