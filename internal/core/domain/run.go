package domain

import "time"

// IngestionRun is the persisted record of one ingestion invocation,
// kept for the runs history view. The manifest payload itself is not
// stored, only its size.
type IngestionRun struct {
	// ID is the unique identifier for the run.
	ID string

	// Source is the kind the run ingested from.
	Source SourceKind

	// Name is the catalogue entry name for filesystem runs, empty for
	// marketplace runs.
	Name string

	// Args is the main command's argument vector joined with spaces,
	// recorded for diagnostics.
	Args string

	// StartedAt is when the invocation began.
	StartedAt time.Time

	// FinishedAt is when the process terminated or the invocation
	// failed hard.
	FinishedAt time.Time

	// Success mirrors the result's success flag. False for failed
	// runs and for hard errors.
	Success bool

	// Error holds the stderr transcript or hard-error text for
	// unsuccessful runs.
	Error string

	// ManifestBytes is the size of the manifest payload produced by a
	// successful run.
	ManifestBytes int
}

// Duration returns how long the run took.
func (r IngestionRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
