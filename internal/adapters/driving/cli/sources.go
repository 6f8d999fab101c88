package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sourcesToolDir string

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List ingestion sources",
	Long: `Lists the supported ingestion sources and whether the current
workspace can run them.

Marketplace sources need a configured workspace so their Python extras
can be synced before the run.`,
	RunE: runSources,
}

func init() {
	sourcesCmd.Flags().StringVar(&sourcesToolDir, "tool-dir", "", "inspect a workspace without saving it")
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	dir := sourcesToolDir
	if dir == "" && settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		dir = settings.ToolDir
	}

	switch {
	case dir == "":
		cmd.Println("No workspace configured. Run 'packmule config dir <path>' first.")
	case workspaceService.Validate(dir) != nil:
		cmd.Printf("Workspace %s is not an ingestion workspace.\n", dir)
	default:
		cmd.Printf("Workspace: %s\n", dir)
	}
	cmd.Println()

	cmd.Println("Sources:")
	for _, source := range workspaceService.Sources(dir) {
		status := "available"
		if !source.Available {
			status = "needs workspace"
		}
		cmd.Printf("  %-10s  %-18s  %s\n", source.Info.Kind, source.Info.DisplayName, status)
	}

	return nil
}
