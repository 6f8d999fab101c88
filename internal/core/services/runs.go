package services

import (
	"context"
	"fmt"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driven"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driving"
)

// Ensure RunService implements the interface.
var _ driving.RunService = (*RunService)(nil)

// RunService serves the persisted ingestion run history.
type RunService struct {
	store       driven.RunStore
	configStore driven.ConfigStore
}

// NewRunService creates a new run history service.
func NewRunService(store driven.RunStore, configStore driven.ConfigStore) *RunService {
	return &RunService{
		store:       store,
		configStore: configStore,
	}
}

// List returns recent runs, newest first. A non-positive limit falls
// back to the configured history limit.
func (s *RunService) List(ctx context.Context, limit int) ([]domain.IngestionRun, error) {
	if s.store == nil {
		return nil, domain.ErrHistoryUnavailable
	}

	if limit <= 0 {
		limit = settingsFromStore(s.configStore).WithDefaults().HistoryLimit
	}

	runs, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	return runs, nil
}

// Get returns a single run by ID.
func (s *RunService) Get(ctx context.Context, id string) (*domain.IngestionRun, error) {
	if s.store == nil {
		return nil, domain.ErrHistoryUnavailable
	}

	run, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}

	return run, nil
}
