// Package tui provides an interactive terminal user interface for Packmule.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ingestion runs ingestions against the configured workspace.
	Ingestion driving.IngestionService

	// Workspace answers source availability questions and streams
	// workspace status for the status bar.
	Workspace driving.WorkspaceService

	// Runs exposes the ingestion run history.
	Runs driving.RunService

	// Settings resolves the configured workspace directory.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	ingestion driving.IngestionService,
	workspace driving.WorkspaceService,
	runs driving.RunService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Ingestion: ingestion,
		Workspace: workspace,
		Runs:      runs,
		Settings:  settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ingestion == nil {
		return ErrMissingIngestionService
	}
	if p.Workspace == nil {
		return ErrMissingWorkspaceService
	}
	if p.Runs == nil {
		return ErrMissingRunService
	}
	// Settings is optional; without it the workspace watcher and the
	// pre-filled marketplace fields are simply absent.
	return nil
}
