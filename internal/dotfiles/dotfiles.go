package dotfiles

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v6"
	"github.com/spf13/afero"

	"github.com/armando-rios/dev-setup/internal/chroot"
	"github.com/armando-rios/dev-setup/internal/config"
)

// Default configs the essential packages drop into $HOME that stow would
// otherwise refuse to link over. Removal failures are logged, not fatal.
var conflictPaths = []string{
	".config/alacritty",
	".config/ghostty",
	".config/hypr",
	".config/kitty",
	".config/nvim",
	".config/ohmyposh",
	".config/posting",
	".config/waybar",
	".config/wofi",
	".config/zed",
	".zshrc",
	".tmux.conf",
	".ssh",
}

type executor interface {
	Run(ctx context.Context, args ...string) error
}

var gitClone = func(ctx context.Context, url, path string, depth int, progress io.Writer) error {
	_, err := git.PlainCloneContext(ctx, path, &git.CloneOptions{
		URL:      url,
		Depth:    depth,
		Progress: progress,
	})
	return err
}

// Manager sets up the primary user's home inside the target tree: the
// dotfiles checkout, oh-my-zsh, stow-managed symlinks, and the JavaScript
// runtimes the dotfiles expect.
type Manager struct {
	fs      afero.Fs
	root    string
	chroot  executor
	logChan chan<- string
}

func NewManager(root string, logChan chan<- string) *Manager {
	return &Manager{
		fs:      afero.NewOsFs(),
		root:    root,
		chroot:  chroot.New(root),
		logChan: logChan,
	}
}

// Clone checks the dotfiles repository out into the user's home and hands
// it to the user. A leftover checkout from an earlier run is replaced.
func (m *Manager) Clone(ctx context.Context, username string) error {
	target := filepath.Join(m.root, "home", username, ".dotfiles")
	if err := m.fs.RemoveAll(target); err != nil {
		return fmt.Errorf("failed to clear %s: %w", target, err)
	}

	m.log("Cloning dotfiles")
	if err := gitClone(ctx, config.DotfilesRepo, target, 0, &lineWriter{log: m.log}); err != nil {
		return fmt.Errorf("failed to clone dotfiles: %w", err)
	}

	return m.chownHome(ctx, username, ".dotfiles")
}

// InstallOhMyZsh clones oh-my-zsh into the user's home. The dotfiles zshrc
// sources it, so it has to exist before the shell is usable.
func (m *Manager) InstallOhMyZsh(ctx context.Context, username string) error {
	target := filepath.Join(m.root, "home", username, ".oh-my-zsh")
	if err := m.fs.RemoveAll(target); err != nil {
		return fmt.Errorf("failed to clear %s: %w", target, err)
	}

	m.log("Installing oh-my-zsh")
	if err := gitClone(ctx, config.OhMyZshRepo, target, 1, &lineWriter{log: m.log}); err != nil {
		return fmt.Errorf("failed to clone oh-my-zsh: %w", err)
	}

	return m.chownHome(ctx, username, ".oh-my-zsh")
}

// Link removes the default configs that collide with the dotfiles and
// stows the checkout into the user's home.
func (m *Manager) Link(ctx context.Context, username string) error {
	home := filepath.Join(m.root, "home", username)
	for _, rel := range conflictPaths {
		if err := m.fs.RemoveAll(filepath.Join(home, rel)); err != nil {
			m.log(fmt.Sprintf("Warning: could not remove %s: %v", rel, err))
		}
	}

	m.log("Linking dotfiles with stow")
	script := fmt.Sprintf("cd /home/%s/.dotfiles && stow .", username)
	if err := m.chroot.Run(ctx, "sudo", "-u", username, "bash", "-c", script); err != nil {
		return fmt.Errorf("failed to stow dotfiles: %w", err)
	}
	return nil
}

// InstallNode installs the current LTS Node.js through the nvm the
// dotfiles configure. The zshrc has to be linked already.
func (m *Manager) InstallNode(ctx context.Context, username string) error {
	m.log("Installing Node.js LTS via nvm")
	script := fmt.Sprintf("source /home/%s/.zshrc && nvm install --lts && nvm use --lts", username)
	if err := m.chroot.Run(ctx, "sudo", "-u", username, "zsh", "-c", script); err != nil {
		return fmt.Errorf("failed to install Node.js: %w", err)
	}
	return nil
}

// InstallBun runs the upstream Bun installer as the user.
func (m *Manager) InstallBun(ctx context.Context, username string) error {
	m.log("Installing Bun")
	if err := m.chroot.Run(ctx, "sudo", "-u", username, "bash", "-c", "curl -fsSL https://bun.sh/install | bash"); err != nil {
		return fmt.Errorf("failed to install Bun: %w", err)
	}
	return nil
}

func (m *Manager) chownHome(ctx context.Context, username, rel string) error {
	target := filepath.Join("/home", username, rel)
	if err := m.chroot.Run(ctx, "chown", "-R", username+":"+username, target); err != nil {
		return fmt.Errorf("failed to chown %s: %w", target, err)
	}
	return nil
}

func (m *Manager) log(line string) {
	if m.logChan == nil || line == "" {
		return
	}
	select {
	case m.logChan <- line:
	default:
		// A full channel must not stall the setup.
	}
}

// lineWriter forwards git transport progress to the log callback,
// treating carriage returns as line breaks.
type lineWriter struct {
	log func(string)
	buf []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexAny(w.buf, "\r\n")
		if i < 0 {
			break
		}
		if line := strings.TrimSpace(string(w.buf[:i])); line != "" {
			w.log(line)
		}
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}
