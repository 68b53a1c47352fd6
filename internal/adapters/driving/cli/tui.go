package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mnemo-labs/mnemo-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [file]",
	Short: "Launch the interactive collection browser",
	Long: `Launch the interactive terminal user interface for browsing a
collection: its decks, cards and rendered card faces.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Open / Flip card
  Esc      - Back
  q        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Panic recovery keeps a stack trace visible after the alt screen
	// is torn down.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	sess, err := openCollection(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer sess.Close()

	app, err := tui.NewApp(&tui.Ports{Collection: sess.Collection})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
