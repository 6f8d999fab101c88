package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("packmule version %s%s\n", version, buildMetadata())
	},
}

// buildMetadata renders the ldflags-injected commit and build date,
// or nothing for a plain source build.
func buildMetadata() string {
	var parts []string
	if commit != "unknown" {
		parts = append(parts, "commit "+commit)
	}
	if date != "unknown" {
		parts = append(parts, "built "+date)
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
