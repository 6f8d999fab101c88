package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
)

var (
	ingestSource           string
	ingestPath             string
	ingestName             string
	ingestTags             []string
	ingestLicense          string
	ingestDownloadStrategy string
	ingestOutputDir        string
	ingestToolDir          string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run one asset ingestion",
	Long: `Runs the ingestion tool once for the selected source.

Filesystem ingestion needs --path and --name. Marketplace sources
(fab, uas) sync their workspace extras first and accept optional
--download-strategy and --output-dir overrides.

The tool's progress is echoed to stderr while it runs. On success the
manifest it produced is printed to stdout, so the output can be piped
into other tools.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestSource, "source", "s", "", "source kind: filesystem, fab or uas")
	ingestCmd.Flags().StringVar(&ingestPath, "path", "", "asset folder to ingest (filesystem)")
	ingestCmd.Flags().StringVar(&ingestName, "name", "", "catalogue entry name (filesystem)")
	ingestCmd.Flags().StringSliceVar(&ingestTags, "tags", nil, "tags to attach, kept in the given order")
	ingestCmd.Flags().StringVar(&ingestLicense, "license", "", "licence identifier")
	ingestCmd.Flags().StringVar(&ingestDownloadStrategy, "download-strategy", "", "marketplace download strategy")
	ingestCmd.Flags().StringVar(&ingestOutputDir, "output-dir", "", "marketplace download directory")
	ingestCmd.Flags().StringVar(&ingestToolDir, "tool-dir", "", "set and remember the ingestion workspace first")
	_ = ingestCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestionService == nil {
		return errors.New("ingestion service not configured")
	}

	if ingestToolDir != "" {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		if err := settingsService.SetToolDir(ingestToolDir); err != nil {
			return fmt.Errorf("setting tool directory: %w", err)
		}
	}

	kind, err := domain.ParseSourceKind(ingestSource)
	if err != nil {
		return err
	}

	cfg := domain.IngestionConfig{
		Source:           kind,
		Path:             ingestPath,
		Name:             ingestName,
		Tags:             ingestTags,
		License:          ingestLicense,
		DownloadStrategy: ingestDownloadStrategy,
		OutputDir:        ingestOutputDir,
	}

	result, err := ingestionService.Ingest(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	if !result.Success {
		// Diagnostics were already echoed line by line while the
		// tool ran.
		return errors.New("ingestion failed")
	}

	if result.Manifest != "" {
		cmd.Print(result.Manifest)
	}

	return nil
}
