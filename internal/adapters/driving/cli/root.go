package cli

import (
	"github.com/spf13/cobra"

	"github.com/packmule-labs/packmule-cli/internal/core/ports/driven"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driving"
	"github.com/packmule-labs/packmule-cli/internal/logger"
)

// keyLoggingVerbose persists the debug-logging default; the --verbose
// flag overrides it for one invocation.
const keyLoggingVerbose = "logging.verbose"

// Build variables - set by ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Service ports injected from main before Execute.
var (
	ingestionService driving.IngestionService
	workspaceService driving.WorkspaceService
	runService       driving.RunService
	settingsService  driving.SettingsService
)

// Services bundles the driving ports the CLI commands call.
type Services struct {
	Ingestion driving.IngestionService
	Workspace driving.WorkspaceService
	Runs      driving.RunService
	Settings  driving.SettingsService
}

// SetServices installs the service implementations used by the
// commands. Commands guard against missing services at run time, so
// partial wiring (as in tests) is allowed.
func SetServices(services Services) {
	ingestionService = services.Ingestion
	workspaceService = services.Workspace
	runService = services.Runs
	settingsService = services.Settings
}

// SetVersionInfo records the build metadata shown by the version
// command.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

var configStore driven.ConfigStore

// SetConfigStore attaches the persisted configuration consulted for
// start-up options.
func SetConfigStore(store driven.ConfigStore) {
	configStore = store
}

var verbose bool

// verboseEnabled resolves debug logging: the --verbose flag wins,
// otherwise the logging.verbose config key decides.
func verboseEnabled() bool {
	if verbose {
		return true
	}
	return configStore != nil && configStore.GetBool(keyLoggingVerbose)
}

var rootCmd = &cobra.Command{
	Use:   "packmule",
	Short: "Game asset ingestion from the command line",
	Long: `Packmule drives the asset ingestion tool from your terminal.

It ingests local asset folders and marketplace purchases into your
catalogue, shows which sources the configured workspace supports, and
keeps a history of past runs.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetVerbose(verboseEnabled())
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
