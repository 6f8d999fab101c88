package driven

import (
	"github.com/packmule-labs/packmule-cli/internal/core/domain"
)

// LogSink observes ingestion progress. It replaces any direct UI
// handle inside the core: the orchestrator only ever talks to this
// interface.
type LogSink interface {
	// Accept delivers one log entry. Implementations must not block
	// and must not fail the caller; entries may be dropped when the
	// observer cannot keep up. There is no acknowledgment.
	Accept(entry domain.LogEntry)
}
