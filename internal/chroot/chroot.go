package chroot

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Executor runs commands inside the mounted target tree through arch-chroot.
// Secrets are always passed on stdin, never as arguments.
type Executor struct {
	Root string
}

var runCommand = func(ctx context.Context, stdin string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	return cmd.CombinedOutput()
}

func New(root string) *Executor {
	return &Executor{Root: root}
}

// Run executes the command inside the target tree and waits for it.
func (e *Executor) Run(ctx context.Context, args ...string) error {
	return e.run(ctx, "", args)
}

// RunInput executes the command inside the target tree feeding input on stdin.
func (e *Executor) RunInput(ctx context.Context, input string, args ...string) error {
	return e.run(ctx, input, args)
}

// Command builds the raw arch-chroot invocation for callers that need to
// stream output while the command runs.
func (e *Executor) Command(ctx context.Context, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, "arch-chroot", append([]string{e.Root}, args...)...)
}

func (e *Executor) run(ctx context.Context, input string, args []string) error {
	if len(args) == 0 {
		return errors.New("no command given")
	}

	output, err := runCommand(ctx, input, "arch-chroot", append([]string{e.Root}, args...)...)
	if err != nil {
		if line := lastLine(output); line != "" {
			return fmt.Errorf("%s: %s: %w", args[0], line, err)
		}
		return fmt.Errorf("%s: %w", args[0], err)
	}

	return nil
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
