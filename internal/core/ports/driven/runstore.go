package driven

import (
	"context"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
)

// RunStore persists ingestion run history.
type RunStore interface {
	// Save inserts or replaces a run record.
	Save(ctx context.Context, run domain.IngestionRun) error

	// Get retrieves a run by ID.
	// Returns domain.ErrNotFound if the run does not exist.
	Get(ctx context.Context, id string) (*domain.IngestionRun, error)

	// List returns the most recent runs, newest first, up to limit.
	// A limit of zero or less returns all runs.
	List(ctx context.Context, limit int) ([]domain.IngestionRun, error)
}
