package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent ingestion runs",
	Long: `Lists recent ingestion runs, newest first.

Use --limit to override the configured history limit, and
'packmule runs show <run-id>' for the full record of one run.`,
	RunE: runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show one ingestion run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 0, "maximum number of runs (0 = configured default)")
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	if runService == nil {
		return errors.New("run service not configured")
	}

	runs, err := runService.List(cmd.Context(), runsLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No ingestion runs recorded yet.")
		return nil
	}

	cmd.Println("Recent Runs:")
	cmd.Println()
	for i := range runs {
		run := &runs[i]
		cmd.Printf("  [%d] %s - %s\n", i+1, runTitle(run), runStatus(run))
		cmd.Printf("      ID: %s\n", run.ID)
		cmd.Printf("      Started: %s  Duration: %s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Duration().Round(time.Second))
		cmd.Println()
	}

	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	if runService == nil {
		return errors.New("run service not configured")
	}

	run, err := runService.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("run %s not found", args[0])
		}
		return err
	}

	cmd.Printf("Run %s\n", run.ID)
	cmd.Printf("  Source:   %s\n", run.Source)
	if run.Name != "" {
		cmd.Printf("  Name:     %s\n", run.Name)
	}
	if run.Args != "" {
		cmd.Printf("  Command:  %s\n", run.Args)
	}
	cmd.Printf("  Started:  %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	cmd.Printf("  Finished: %s\n", run.FinishedAt.Local().Format("2006-01-02 15:04:05"))
	cmd.Printf("  Duration: %s\n", run.Duration().Round(time.Second))
	cmd.Printf("  Status:   %s\n", runStatus(run))

	if run.Success {
		cmd.Printf("  Manifest: %d bytes\n", run.ManifestBytes)
		return nil
	}

	if run.Error != "" {
		cmd.Println()
		cmd.Println("Error output:")
		for _, line := range strings.Split(strings.TrimRight(run.Error, "\n"), "\n") {
			cmd.Printf("  %s\n", line)
		}
	}

	return nil
}

func runTitle(run *domain.IngestionRun) string {
	if run.Name != "" {
		return fmt.Sprintf("%s (%s)", run.Name, run.Source)
	}
	return string(run.Source)
}

func runStatus(run *domain.IngestionRun) string {
	if run.Success {
		return "ok"
	}
	return "failed"
}
