// Package main is the entry point for the packmule CLI.
package main

import (
	"fmt"
	"os"

	"github.com/packmule-labs/packmule-cli/internal/adapters/driven/config/file"
	"github.com/packmule-labs/packmule-cli/internal/adapters/driven/logsink"
	"github.com/packmule-labs/packmule-cli/internal/adapters/driven/process"
	"github.com/packmule-labs/packmule-cli/internal/adapters/driven/storage/sqlite"
	"github.com/packmule-labs/packmule-cli/internal/adapters/driven/workspace"
	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/cli"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driven"
	"github.com/packmule-labs/packmule-cli/internal/core/services"
	"github.com/packmule-labs/packmule-cli/internal/logger"
)

// Build metadata - overridden by ldflags at release time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	// Run history is optional: without it everything still works,
	// the runs command just reports unavailability.
	var runStore driven.RunStore
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("Run history disabled: %v", err)
	} else {
		defer store.Close()
		runStore = store.RunStore()
	}

	probe := workspace.NewProbe()
	runner := process.NewRunner()

	// Progress goes to stderr by default; the TUI swaps in its own
	// sink while it owns the terminal.
	sink := logsink.NewDispatcher(logsink.NewWriter(os.Stderr))

	ingestionService := services.NewIngestionService(runner, configStore, sink, runStore)
	workspaceService := services.NewWorkspaceService(probe)
	runService := services.NewRunService(runStore, configStore)
	settingsService := services.NewSettingsService(configStore, probe)

	cli.SetVersionInfo(version, commit, date)
	cli.SetConfigStore(configStore)
	cli.SetServices(cli.Services{
		Ingestion: ingestionService,
		Workspace: workspaceService,
		Runs:      runService,
		Settings:  settingsService,
	})
	cli.SetTUIConfig(&cli.TUIConfig{
		IngestionService: ingestionService,
		WorkspaceService: workspaceService,
		RunService:       runService,
		SettingsService:  settingsService,
		Sink:             sink,
	})

	return cli.Execute()
}
