package services

import (
	"context"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driven"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driving"
)

// Ensure WorkspaceService implements the interface.
var _ driving.WorkspaceService = (*WorkspaceService)(nil)

// WorkspaceService answers readiness questions about the ingestion
// workspace: is the directory a workspace at all, and which source
// kinds can run in it.
type WorkspaceService struct {
	probe driven.Workspace
}

// NewWorkspaceService creates a new workspace service.
func NewWorkspaceService(probe driven.Workspace) *WorkspaceService {
	return &WorkspaceService{probe: probe}
}

// Validate checks that dir is an ingestion workspace.
func (s *WorkspaceService) Validate(dir string) error {
	return s.probe.ValidateDir(dir)
}

// Sources reports availability for every known source kind in dir,
// in catalogue order.
func (s *WorkspaceService) Sources(dir string) []driving.SourceAvailability {
	infos := domain.Catalogue()

	out := make([]driving.SourceAvailability, len(infos))
	for i, info := range infos {
		out[i] = driving.SourceAvailability{
			Info:      info,
			Available: s.probe.SourceAvailable(dir, info.Kind),
		}
	}

	return out
}

// Watch streams workspace validity changes until ctx is cancelled.
func (s *WorkspaceService) Watch(ctx context.Context, dir string) (<-chan domain.WorkspaceStatus, error) {
	return s.probe.Watch(ctx, dir)
}
