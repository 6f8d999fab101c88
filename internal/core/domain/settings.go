package domain

// Built-in defaults for the ingestion toolchain.
const (
	// DefaultRunner is the package manager that drives the tool.
	DefaultRunner = "uv"

	// DefaultHelperModule is the Python module invoked for
	// marketplace ingestion.
	DefaultHelperModule = "packmule_ingestion.gui_helper"

	// DefaultHistoryLimit caps history listings when no limit is
	// configured.
	DefaultHistoryLimit = 20
)

// AppSettings holds user-configurable application settings.
type AppSettings struct {
	// ToolDir is the ingestion workspace: the directory of the
	// tool's Python project.
	ToolDir string

	// Runner is the executable that drives the tool.
	Runner string

	// HelperModule is the Python module for marketplace runs.
	HelperModule string

	// DefaultOutputDir pre-fills the marketplace output directory.
	DefaultOutputDir string

	// DefaultDownloadStrategy pre-fills the marketplace download
	// strategy.
	DefaultDownloadStrategy string

	// HistoryLimit caps the runs listing. Zero means the built-in
	// default.
	HistoryLimit int
}

// WithDefaults returns a copy with unset fields replaced by the
// built-in defaults.
func (s AppSettings) WithDefaults() AppSettings {
	if s.Runner == "" {
		s.Runner = DefaultRunner
	}
	if s.HelperModule == "" {
		s.HelperModule = DefaultHelperModule
	}
	if s.HistoryLimit <= 0 {
		s.HistoryLimit = DefaultHistoryLimit
	}
	return s
}
