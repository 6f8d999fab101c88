package mcp

import (
	"context"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driving"
)

// mockIngestionService is a mock implementation of driving.IngestionService.
type mockIngestionService struct {
	result  *domain.IngestionResult
	err     error
	configs []domain.IngestionConfig
}

func (m *mockIngestionService) Ingest(
	_ context.Context,
	cfg domain.IngestionConfig,
) (*domain.IngestionResult, error) {
	m.configs = append(m.configs, cfg)
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.IngestionResult{Success: true, Manifest: "{}"}, nil
}

// mockWorkspaceService is a mock implementation of driving.WorkspaceService.
type mockWorkspaceService struct {
	validateErr error
	dirs        []string
}

func (m *mockWorkspaceService) Validate(string) error {
	return m.validateErr
}

func (m *mockWorkspaceService) Sources(dir string) []driving.SourceAvailability {
	m.dirs = append(m.dirs, dir)
	catalogue := domain.Catalogue()
	sources := make([]driving.SourceAvailability, len(catalogue))
	for i, info := range catalogue {
		available := info.Kind == domain.SourceFilesystem || m.validateErr == nil
		sources[i] = driving.SourceAvailability{Info: info, Available: available}
	}
	return sources
}

func (m *mockWorkspaceService) Watch(
	_ context.Context,
	_ string,
) (<-chan domain.WorkspaceStatus, error) {
	statuses := make(chan domain.WorkspaceStatus)
	close(statuses)
	return statuses, nil
}

// mockRunService is a mock implementation of driving.RunService.
type mockRunService struct {
	runs []domain.IngestionRun
	err  error
}

func (m *mockRunService) List(_ context.Context, limit int) ([]domain.IngestionRun, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit > 0 && limit < len(m.runs) {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

func (m *mockRunService) Get(_ context.Context, id string) (*domain.IngestionRun, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	settings := m.settings.WithDefaults()
	return &settings, nil
}

func (m *mockSettingsService) Save(*domain.AppSettings) error { return m.err }

func (m *mockSettingsService) SetToolDir(string) error { return m.err }

func (m *mockSettingsService) GetValue(string) (string, error) {
	return "", domain.ErrNotFound
}

func (m *mockSettingsService) SetValue(string, string) error { return m.err }

func (m *mockSettingsService) Keys() []string { return nil }

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.AppSettings{}.WithDefaults()
}
