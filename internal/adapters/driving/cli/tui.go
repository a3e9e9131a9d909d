package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui"
	"github.com/kameleon-labs/kameleon-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Kameleon.

Sign in or create an account, then browse documents, personas, templates
and axioms, write new documents and change settings.

Controls:
  ↑/k, ↓/j - Navigate
  Tab      - Next field
  Enter    - Select / Submit
  Esc      - Back
  ?        - Toggle help
  ctrl+c   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Session:   sessionService,
		Auth:      authFlows,
		Dashboard: dashboardService,
		Documents: documentService,
		Personas:  personaService,
		Templates: templateService,
		Axioms:    axiomService,
		Settings:  settingsService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	// The TUI owns the terminal; verbose logs would tear the screen.
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
