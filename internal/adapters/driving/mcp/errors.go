package mcp

import "errors"

var (
	// ErrMissingIngestionService is returned when the ingestion service is not provided.
	ErrMissingIngestionService = errors.New("mcp: ingestion service is required")

	// ErrWorkspaceUnavailable is returned when the workspace service is not wired.
	ErrWorkspaceUnavailable = errors.New("mcp: workspace service is not available")

	// ErrRunsUnavailable is returned when the run history is not wired.
	ErrRunsUnavailable = errors.New("mcp: run history is not available")
)
