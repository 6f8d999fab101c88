package tui

import "errors"

// ErrMissingIngestionService is returned when the ingestion service is not provided.
var ErrMissingIngestionService = errors.New("tui: ingestion service is required")

// ErrMissingWorkspaceService is returned when the workspace service is not provided.
var ErrMissingWorkspaceService = errors.New("tui: workspace service is required")

// ErrMissingRunService is returned when the run service is not provided.
var ErrMissingRunService = errors.New("tui: run service is required")
