package driving

import "github.com/packmule-labs/packmule-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings with defaults
	// applied.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetToolDir updates the ingestion workspace directory after
	// validating it.
	SetToolDir(dir string) error

	// GetValue retrieves one settings field by its configuration key.
	// Returns domain.ErrNotFound for unsupported keys.
	GetValue(key string) (string, error)

	// SetValue updates one settings field by its configuration key.
	// Returns domain.ErrNotFound for unsupported keys.
	SetValue(key, value string) error

	// Keys lists the supported configuration keys.
	Keys() []string

	// GetDefaults returns the built-in default settings.
	GetDefaults() domain.AppSettings
}
