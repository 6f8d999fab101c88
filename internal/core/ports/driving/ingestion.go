package driving

import (
	"context"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
)

// IngestionService runs ingestions against the configured workspace.
type IngestionService interface {
	// Ingest validates cfg, runs any marketplace dependency sync,
	// spawns the ingestion tool, and returns the classified result.
	//
	// Hard failures (validation, spawn failure, sync failure, stream
	// protocol violation) return a nil result and an error. A run
	// whose process merely exited non-zero is not an error: it
	// returns a result with Success false so the caller can display
	// the diagnostics.
	//
	// ctx covers bookkeeping such as history writes. It does not
	// cancel the spawned process.
	Ingest(ctx context.Context, cfg domain.IngestionConfig) (*domain.IngestionResult, error)
}
