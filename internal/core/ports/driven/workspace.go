package driven

import (
	"context"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
)

// Workspace inspects the directory holding the ingestion tool.
// A directory is a workspace when it carries the pyproject.toml
// marker of the tool's Python project.
type Workspace interface {
	// ValidateDir reports whether dir is an ingestion workspace.
	// Returns domain.ErrWorkspaceInvalid when the marker is absent.
	ValidateDir(dir string) error

	// SourceAvailable reports whether kind can ingest from dir.
	// Filesystem is always available; marketplace kinds need the
	// workspace marker; unknown kinds are never available.
	SourceAvailable(dir string, kind domain.SourceKind) bool

	// Watch emits a status snapshot whenever the workspace changes,
	// starting with the current state. Sends are non-blocking and
	// latest-wins; slow consumers see the newest snapshot only. The
	// channel closes when ctx is cancelled.
	Watch(ctx context.Context, dir string) (<-chan domain.WorkspaceStatus, error)
}
