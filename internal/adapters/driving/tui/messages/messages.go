// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/packmule-labs/packmule-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewIngest is the ingestion wizard.
	ViewIngest
	// ViewRuns is the run history view.
	ViewRuns
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewIngest:
		return "ingest"
	case ViewRuns:
		return "runs"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// LogLine carries one progress entry from a running ingestion into
// the UI. Delivery is best-effort: entries may be dropped when the
// render loop cannot keep up.
type LogLine struct {
	Entry domain.LogEntry
}

// IngestCompleted signals that an ingestion invocation finished.
// Result is nil when Err is set: hard failures (validation, spawn,
// sync) never produce a result.
type IngestCompleted struct {
	Result *domain.IngestionResult
	Err    error
}

// RunsLoaded carries the run history from the service.
type RunsLoaded struct {
	Runs []domain.IngestionRun
	Err  error
}

// WorkspaceStatusChanged carries a workspace watcher snapshot for the
// status bar.
type WorkspaceStatusChanged struct {
	Status domain.WorkspaceStatus
}
