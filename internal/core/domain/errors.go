package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Ingestion Errors.

	// ErrMissingField indicates a field required by the selected
	// source kind was absent from the ingestion config.
	// Recoverable: fix the config and retry.
	ErrMissingField = errors.New("missing required field")

	// ErrUnknownSource indicates a source discriminant outside the
	// supported set. Raised before any process is spawned.
	ErrUnknownSource = errors.New("unknown source")

	// ErrSpawn indicates the ingestion process never started
	// (executable not found, bad working directory, permissions).
	// Distinct from a process that started and exited non-zero.
	ErrSpawn = errors.New("failed to spawn")

	// ErrStreamEnded indicates the process event stream closed
	// without ever delivering a termination event.
	ErrStreamEnded = errors.New("process ended unexpectedly")

	// Workspace Errors.

	// ErrWorkspaceInvalid indicates the configured tool directory is
	// not an ingestion workspace (the pyproject.toml marker is absent).
	ErrWorkspaceInvalid = errors.New("not an ingestion workspace")

	// ErrSourceUnavailable indicates the requested source kind is not
	// usable in the configured workspace.
	ErrSourceUnavailable = errors.New("source unavailable in this workspace")

	// ErrHistoryUnavailable indicates run history was requested but no
	// run store is attached.
	ErrHistoryUnavailable = errors.New("run history unavailable")
)

// SyncError reports a failed marketplace dependency sync. The main
// ingestion command never ran; Stderr carries the captured sync
// diagnostics.
type SyncError struct {
	Source SourceKind
	Stderr string
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("dependency sync failed: %s", e.Stderr)
}

// IsSyncFailure checks whether err is a marketplace sync failure.
func IsSyncFailure(err error) bool {
	var syncErr *SyncError
	return errors.As(err, &syncErr)
}
