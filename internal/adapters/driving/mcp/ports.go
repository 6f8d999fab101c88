package mcp

import (
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ingestion runs ingestions.
	Ingestion driving.IngestionService

	// Workspace answers source availability questions.
	Workspace driving.WorkspaceService

	// Runs exposes the ingestion run history.
	Runs driving.RunService

	// Settings resolves the configured workspace directory.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ingestion == nil {
		return ErrMissingIngestionService
	}
	// Workspace, Runs and Settings are optional; the tools that need
	// them report unavailability per call.
	return nil
}
