package domain

import "fmt"

// IngestionConfig is the caller-supplied description of one ingestion
// run. Fields other than Source apply only to particular kinds; the
// zero value means absent. Validate enforces per-kind requirements
// before any command is built — a missing field is an error, never a
// silent default.
type IngestionConfig struct {
	// Source selects the ingestion mode.
	Source SourceKind

	// Path is the asset folder to ingest. Required for filesystem.
	Path string

	// Name is the catalogue entry name. Required for filesystem.
	Name string

	// Tags are optional labels, applied in input order.
	Tags []string

	// License is an optional licence identifier.
	License string

	// DownloadStrategy optionally overrides how marketplace assets
	// are fetched.
	DownloadStrategy string

	// OutputDir optionally overrides where marketplace downloads
	// land.
	OutputDir string
}

// Validate checks that the fields required by the config's source
// kind are present.
func (c IngestionConfig) Validate() error {
	switch c.Source {
	case SourceFilesystem:
		if c.Path == "" {
			return fmt.Errorf("%w: path (required for filesystem source)", ErrMissingField)
		}
		if c.Name == "" {
			return fmt.Errorf("%w: name (required for filesystem source)", ErrMissingField)
		}
		return nil
	case SourceFab, SourceUAS:
		// Marketplace runs need no mode-specific fields up front.
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, string(c.Source))
	}
}

// CommandSpec is one ready-to-run invocation of the ingestion tool:
// an ordered argument vector plus the working directory it runs in.
// Built once, never mutated, consumed by exactly one spawn.
type CommandSpec struct {
	// Args is the full argument vector, excluding the tool binary.
	Args []string

	// Dir is the working directory for the process.
	Dir string
}

// IngestionResult is the terminal outcome of an ingestion run.
// Exactly one of Manifest and Error is populated, discriminated by
// Success. A run that exits non-zero (or dies to a signal) is a
// result, not a Go error: the caller displays it and decides what to
// do next.
type IngestionResult struct {
	// Success is true only for a clean exit code of zero.
	Success bool

	// Manifest is the accumulated stdout of a successful run: the
	// manifest payload, opaque to this backend.
	Manifest string

	// Error is the accumulated stderr transcript of a failed run.
	Error string
}

// LogKind classifies a LogEntry for display.
type LogKind string

const (
	// LogInfo marks backend status notices such as the sync banner.
	LogInfo LogKind = "info"

	// LogStderr marks a line relayed live from the tool's stderr.
	LogStderr LogKind = "stderr"
)

// LogEntry is a fire-and-forget progress notification pushed to the
// log sink while a run executes. Delivery is best-effort: a slow or
// absent observer never stalls the run.
type LogEntry struct {
	Kind    LogKind
	Message string
}
