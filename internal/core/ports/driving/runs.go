package driving

import (
	"context"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
)

// RunService exposes the ingestion run history.
type RunService interface {
	// List returns the most recent runs, newest first, up to limit.
	// A limit of zero or less applies the configured default.
	List(ctx context.Context, limit int) ([]domain.IngestionRun, error)

	// Get retrieves a run by ID.
	// Returns domain.ErrNotFound if the run does not exist.
	Get(ctx context.Context, id string) (*domain.IngestionRun, error)
}
