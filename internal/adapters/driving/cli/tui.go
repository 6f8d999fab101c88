package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/packmule-labs/packmule-cli/internal/adapters/driven/logsink"
	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/tui"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driving"
	"github.com/packmule-labs/packmule-cli/internal/logger"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	IngestionService driving.IngestionService
	WorkspaceService driving.WorkspaceService
	RunService       driving.RunService
	SettingsService  driving.SettingsService

	// Sink is the dispatcher the ingestion service notifies. While
	// the TUI runs it swaps in its own sink so progress lands in the
	// running view instead of on stderr.
	Sink *logsink.Dispatcher
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Packmule.

The TUI walks you through an ingestion run with live tool output,
shows which sources the workspace supports, and browses the run
history with keyboard navigation.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / Confirm
  Esc      - Back / Cancel
  q        - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the TUI needs an interactive terminal")
	}

	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// Build ports from configuration
	ports := &tui.Ports{}

	if tuiConfig != nil {
		ports.Ingestion = tuiConfig.IngestionService
		ports.Workspace = tuiConfig.WorkspaceService
		ports.Runs = tuiConfig.RunService
		ports.Settings = tuiConfig.SettingsService
	}

	// Create the TUI app
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	// Set up context from command
	app.WithContext(cmd.Context())

	// Create and run the bubbletea program
	p := tea.NewProgram(app, tea.WithAltScreen())

	// Route ingestion progress into the running view for the
	// program's lifetime.
	if tuiConfig != nil && tuiConfig.Sink != nil {
		programSink := tui.NewProgramSink(p)
		previous := tuiConfig.Sink.Swap(programSink)
		defer func() {
			tuiConfig.Sink.Swap(previous)
			programSink.Close()
		}()
	}

	// Park logger output so stray writes cannot corrupt the
	// alternate screen.
	previousOut := logger.Output()
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(previousOut)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
