package domain

// WorkspaceStatus is a point-in-time view of the ingestion workspace.
type WorkspaceStatus struct {
	// Dir is the watched directory.
	Dir string

	// Valid is true while the workspace marker is present.
	Valid bool
}
