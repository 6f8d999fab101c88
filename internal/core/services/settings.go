package services

import (
	"fmt"
	"strconv"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driven"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyToolDir          = "tool.dir"
	keyRunner           = "tool.runner"
	keyHelperModule     = "tool.helper_module"
	keyOutputDir        = "ingest.output_dir"
	keyDownloadStrategy = "ingest.download_strategy"
	keyHistoryLimit     = "runs.limit"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	workspace   driven.Workspace
}

// NewSettingsService creates a new settings service. workspace is
// optional; without it SetToolDir skips the marker check.
func NewSettingsService(configStore driven.ConfigStore, workspace driven.Workspace) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		workspace:   workspace,
	}
}

// settingsFromStore assembles raw settings from config keys, without
// defaults applied. Shared with the ingestion service, which resolves
// its toolchain through the same keys.
func settingsFromStore(store driven.ConfigStore) domain.AppSettings {
	if store == nil {
		return domain.AppSettings{}
	}
	return domain.AppSettings{
		ToolDir:                 store.GetString(keyToolDir),
		Runner:                  store.GetString(keyRunner),
		HelperModule:            store.GetString(keyHelperModule),
		DefaultOutputDir:        store.GetString(keyOutputDir),
		DefaultDownloadStrategy: store.GetString(keyDownloadStrategy),
		HistoryLimit:            store.GetInt(keyHistoryLimit),
	}
}

// Get retrieves current application settings with defaults applied.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if err := s.configStore.Load(); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	settings := settingsFromStore(s.configStore).WithDefaults()
	return &settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings cannot be nil", domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(keyToolDir, settings.ToolDir); err != nil {
		return fmt.Errorf("save tool dir: %w", err)
	}
	if err := s.configStore.Set(keyRunner, settings.Runner); err != nil {
		return fmt.Errorf("save runner: %w", err)
	}
	if err := s.configStore.Set(keyHelperModule, settings.HelperModule); err != nil {
		return fmt.Errorf("save helper module: %w", err)
	}
	if err := s.configStore.Set(keyOutputDir, settings.DefaultOutputDir); err != nil {
		return fmt.Errorf("save output dir: %w", err)
	}
	if err := s.configStore.Set(keyDownloadStrategy, settings.DefaultDownloadStrategy); err != nil {
		return fmt.Errorf("save download strategy: %w", err)
	}
	if err := s.configStore.Set(keyHistoryLimit, settings.HistoryLimit); err != nil {
		return fmt.Errorf("save history limit: %w", err)
	}

	return nil
}

// SetToolDir points the app at an ingestion workspace, verifying the
// marker file first when a workspace probe is attached.
func (s *SettingsService) SetToolDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: tool directory cannot be empty", domain.ErrInvalidInput)
	}

	if s.workspace != nil {
		if err := s.workspace.ValidateDir(dir); err != nil {
			return err
		}
	}

	return s.configStore.Set(keyToolDir, dir)
}

// GetValue returns a single setting by key, with its default applied.
func (s *SettingsService) GetValue(key string) (string, error) {
	settings := settingsFromStore(s.configStore).WithDefaults()

	switch key {
	case keyToolDir:
		return settings.ToolDir, nil
	case keyRunner:
		return settings.Runner, nil
	case keyHelperModule:
		return settings.HelperModule, nil
	case keyOutputDir:
		return settings.DefaultOutputDir, nil
	case keyDownloadStrategy:
		return settings.DefaultDownloadStrategy, nil
	case keyHistoryLimit:
		return strconv.Itoa(settings.HistoryLimit), nil
	default:
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, key)
	}
}

// SetValue updates a single setting by key.
func (s *SettingsService) SetValue(key, value string) error {
	switch key {
	case keyToolDir:
		return s.SetToolDir(value)
	case keyRunner, keyHelperModule, keyOutputDir, keyDownloadStrategy:
		return s.configStore.Set(key, value)
	case keyHistoryLimit:
		limit, err := strconv.Atoi(value)
		if err != nil || limit <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, limit)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, key)
	}
}

// Keys lists every key GetValue and SetValue understand.
func (s *SettingsService) Keys() []string {
	return []string{
		keyToolDir,
		keyRunner,
		keyHelperModule,
		keyOutputDir,
		keyDownloadStrategy,
		keyHistoryLimit,
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.AppSettings{}.WithDefaults()
}
