package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/armando-rios/dev-setup/internal/errdefs"
	"github.com/armando-rios/dev-setup/internal/log"
	"github.com/armando-rios/dev-setup/internal/tui"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "devsetup",
	Short: "Guided Arch Linux installer",
	Long: "devsetup installs a complete Arch Linux system with the Hyprland\n" +
		"desktop, development tooling, and personal dotfiles.\n\n" +
		"Run it from the Arch live environment. The selected target disk is\n" +
		"erased without any rollback.",
	RunE:          runInstaller,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("devsetup %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errdefs.ErrUserCancelled) {
			fmt.Println("Installation cancelled.")
			return
		}

		var sizeErr *errdefs.TerminalSizeError
		if errors.As(err, &sizeErr) {
			// The wizard cannot render its own diagnostic at this size.
			fmt.Fprintf(os.Stderr, "%v (minimum %dx%d)\n", sizeErr, tui.MinWidth, tui.MinHeight)
			os.Exit(1)
		}

		log.Fatal(err)
	}
}

func runInstaller(cmd *cobra.Command, args []string) error {
	if os.Geteuid() != 0 {
		return fmt.Errorf("this installer must run as root")
	}

	if err := checkTerminalSize(); err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run installer: %w", err)
	}

	model, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	if model.Err() != nil {
		return model.Err()
	}
	if model.Cancelled() {
		return errdefs.ErrUserCancelled
	}
	return nil
}

func checkTerminalSize() error {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return fmt.Errorf("failed to inspect terminal: %w", err)
	}
	if int(ws.Col) < tui.MinWidth || int(ws.Row) < tui.MinHeight {
		return &errdefs.TerminalSizeError{Width: int(ws.Col), Height: int(ws.Row)}
	}
	return nil
}
