package services

import "github.com/packmule-labs/packmule-cli/internal/core/domain"

// classify maps a terminated process onto its result. Classification
// is exit-status-driven only: a zero code succeeds with the stdout
// payload, anything else fails with the stderr transcript. A nil code
// means the process died without reporting one, which also fails.
func classify(exitCode *int, stdout, stderr string) domain.IngestionResult {
	if exitCode != nil && *exitCode == 0 {
		return domain.IngestionResult{Success: true, Manifest: stdout}
	}
	return domain.IngestionResult{Success: false, Error: stderr}
}
