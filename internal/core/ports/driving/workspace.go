package driving

import (
	"context"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
)

// WorkspaceService answers workspace readiness questions for the
// CLI, TUI, and MCP surfaces.
type WorkspaceService interface {
	// Validate reports whether dir holds the ingestion tool.
	// Returns domain.ErrWorkspaceInvalid when it does not.
	Validate(dir string) error

	// Sources lists the source catalogue with per-kind availability
	// in dir.
	Sources(dir string) []SourceAvailability

	// Watch streams workspace status changes for live displays.
	// The channel closes when ctx is cancelled.
	Watch(ctx context.Context, dir string) (<-chan domain.WorkspaceStatus, error)
}

// SourceAvailability pairs a catalogue entry with its availability in
// the inspected workspace.
type SourceAvailability struct {
	// Info describes the source kind.
	Info domain.SourceInfo

	// Available is true when the kind can ingest from the workspace.
	Available bool
}
