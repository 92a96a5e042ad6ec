package pkgmanager

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-git/go-git/v6"
	"github.com/spf13/afero"

	"github.com/armando-rios/dev-setup/internal/chroot"
	"github.com/armando-rios/dev-setup/internal/config"
)

type chrootRunner interface {
	Run(ctx context.Context, args ...string) error
	Command(ctx context.Context, args ...string) *exec.Cmd
}

var newCommand = exec.CommandContext

var gitClone = func(ctx context.Context, url, path string, progress io.Writer) error {
	_, err := git.PlainCloneContext(ctx, path, &git.CloneOptions{
		URL:      url,
		Depth:    1,
		Progress: progress,
	})
	return err
}

// Pacman drives package operations against the target tree: the initial
// pacstrap bootstrap, chrooted pacman installs, the yay helper build, and
// AUR installs through yay. Command output is streamed line by line to
// the log channel while commands run.
type Pacman struct {
	fs      afero.Fs
	root    string
	chroot  chrootRunner
	logChan chan<- string
}

func NewPacman(root string, logChan chan<- string) *Pacman {
	return &Pacman{
		fs:      afero.NewOsFs(),
		root:    root,
		chroot:  chroot.New(root),
		logChan: logChan,
	}
}

// Bootstrap installs the base package set into the target root with a
// fresh keyring.
func (p *Pacman) Bootstrap(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		return errors.New("no packages to bootstrap")
	}

	p.log(fmt.Sprintf("Bootstrapping base system: %s", strings.Join(packages, ", ")))
	args := append([]string{"-K", p.root}, packages...)
	return p.runStreaming(newCommand(ctx, "pacstrap", args...), "failed to bootstrap base system")
}

// Install installs repository packages inside the target tree.
func (p *Pacman) Install(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		return nil
	}

	p.log(fmt.Sprintf("Installing packages: %s", strings.Join(packages, ", ")))
	args := append([]string{"pacman", "-S", "--needed", "--noconfirm"}, packages...)
	return p.runStreaming(p.chroot.Command(ctx, args...), "failed to install packages")
}

// InstallAUR installs AUR packages through yay, running as the primary
// user since makepkg refuses to build as root.
func (p *Pacman) InstallAUR(ctx context.Context, packages []string, username string) error {
	if len(packages) == 0 {
		return nil
	}

	p.log(fmt.Sprintf("Installing AUR packages: %s", strings.Join(packages, ", ")))
	args := append([]string{"sudo", "-u", username, "yay", "-S", "--needed", "--noconfirm"}, packages...)
	return p.runStreaming(p.chroot.Command(ctx, args...), "failed to install AUR packages")
}

// SetupAURHelper clones yay from the AUR into the user's home inside the
// target tree, hands the checkout to the user, and builds it with makepkg.
// The build directory is removed afterwards.
func (p *Pacman) SetupAURHelper(ctx context.Context, username string) error {
	buildDir := filepath.Join(p.root, "home", username, "yay")
	chrootDir := filepath.Join("/home", username, "yay")

	if err := p.fs.RemoveAll(buildDir); err != nil {
		return fmt.Errorf("failed to clear %s: %w", buildDir, err)
	}

	p.log("Cloning yay from the AUR")
	if err := gitClone(ctx, config.YayRepo, buildDir, &lineWriter{log: p.log}); err != nil {
		return fmt.Errorf("failed to clone yay: %w", err)
	}

	if err := p.chroot.Run(ctx, "chown", "-R", username+":"+username, chrootDir); err != nil {
		return fmt.Errorf("failed to chown %s: %w", chrootDir, err)
	}

	p.log("Building yay")
	build := fmt.Sprintf("cd %s && makepkg -si --noconfirm", chrootDir)
	if err := p.runStreaming(p.chroot.Command(ctx, "sudo", "-u", username, "bash", "-c", build), "failed to build yay"); err != nil {
		return err
	}

	if err := p.fs.RemoveAll(buildDir); err != nil {
		p.log(fmt.Sprintf("Could not remove %s: %v", buildDir, err))
	}
	return nil
}

// runStreaming starts the command, forwards every stdout/stderr line to
// the log channel, and reports the last line alongside the exit error.
func (p *Pacman) runStreaming(cmd *exec.Cmd, action string) error {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}

	outputChan := make(chan string, 100)
	done := make(chan error, 1)

	var readers sync.WaitGroup
	readers.Add(2)
	go func() {
		defer readers.Done()
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			outputChan <- scanner.Text()
		}
	}()
	go func() {
		defer readers.Done()
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			outputChan <- scanner.Text()
		}
	}()
	go func() {
		readers.Wait()
		done <- cmd.Wait()
		close(outputChan)
	}()

	lastLine := ""
	for line := range outputChan {
		if line != "" {
			lastLine = line
		}
		p.log(line)
	}

	if err := <-done; err != nil {
		if lastLine != "" {
			return fmt.Errorf("%s: %s: %w", action, lastLine, err)
		}
		return fmt.Errorf("%s: %w", action, err)
	}
	return nil
}

func (p *Pacman) log(line string) {
	if p.logChan == nil || line == "" {
		return
	}
	select {
	case p.logChan <- line:
	default:
		// A full channel must not stall the install.
	}
}

// lineWriter adapts the log callback to the io.Writer the git transport
// expects for progress output. Carriage returns count as line breaks so
// progress spinners don't glue updates together.
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
