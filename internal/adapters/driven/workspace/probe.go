package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driven"
	"github.com/packmule-labs/packmule-cli/internal/logger"
)

// markerFile identifies a directory as the ingestion tool's Python
// project.
const markerFile = "pyproject.toml"

// Ensure Probe implements the interface.
var _ driven.Workspace = (*Probe)(nil)

// Probe inspects ingestion workspaces on the local filesystem.
type Probe struct{}

// NewProbe creates a new workspace probe.
func NewProbe() *Probe {
	return &Probe{}
}

// ValidateDir reports whether dir carries the workspace marker.
func (p *Probe) ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: no directory configured", domain.ErrWorkspaceInvalid)
	}

	if _, err := os.Stat(filepath.Join(dir, markerFile)); err != nil {
		return fmt.Errorf("%w: %s has no %s", domain.ErrWorkspaceInvalid, dir, markerFile)
	}

	return nil
}

// SourceAvailable reports whether kind can run in dir. Filesystem
// ingestion needs nothing from the workspace; marketplace kinds need
// the marker so their extras can be synced.
func (p *Probe) SourceAvailable(dir string, kind domain.SourceKind) bool {
	switch kind {
	case domain.SourceFilesystem:
		return true
	case domain.SourceFab, domain.SourceUAS:
		return p.ValidateDir(dir) == nil
	default:
		return false
	}
}

// Watch emits a validity snapshot whenever the marker file changes,
// starting with the current state. Sends are latest-wins: a slow
// consumer sees only the newest snapshot. The channel closes when ctx
// is cancelled.
func (p *Probe) Watch(ctx context.Context, dir string) (<-chan domain.WorkspaceStatus, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	statuses := make(chan domain.WorkspaceStatus, 1)
	statuses <- p.snapshot(dir)

	go func() {
		defer close(statuses)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != markerFile {
					continue
				}
				push(statuses, p.snapshot(dir))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Workspace watcher error: %v", err)
			}
		}
	}()

	return statuses, nil
}

func (p *Probe) snapshot(dir string) domain.WorkspaceStatus {
	return domain.WorkspaceStatus{Dir: dir, Valid: p.ValidateDir(dir) == nil}
}

// push replaces a stale undelivered snapshot with the newest one.
// Only the watch goroutine sends, so the channel always has room
// after the drain.
func push(statuses chan domain.WorkspaceStatus, status domain.WorkspaceStatus) {
	select {
	case statuses <- status:
	default:
		select {
		case <-statuses:
		default:
		}
		statuses <- status
	}
}
