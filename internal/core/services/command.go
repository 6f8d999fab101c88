package services

import (
	"fmt"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
)

// buildIngestCommand turns a validated config into the main tool
// invocation for the given workspace. Pure: identical inputs yield
// byte-identical argument vectors.
func buildIngestCommand(cfg domain.IngestionConfig, helperModule, dir string) (domain.CommandSpec, error) {
	if err := cfg.Validate(); err != nil {
		return domain.CommandSpec{}, err
	}

	switch cfg.Source {
	case domain.SourceFilesystem:
		return buildFilesystemCommand(cfg, dir), nil
	case domain.SourceFab, domain.SourceUAS:
		return buildMarketplaceCommand(cfg, helperModule, dir), nil
	default:
		return domain.CommandSpec{}, fmt.Errorf("%w: %q", domain.ErrUnknownSource, string(cfg.Source))
	}
}

func buildFilesystemCommand(cfg domain.IngestionConfig, dir string) domain.CommandSpec {
	args := []string{
		"run", "ingest",
		"--path", cfg.Path,
		"--name", cfg.Name,
		"--source", string(domain.SourceFilesystem),
	}

	// Tags keep their input order; one flag, then each tag as its own
	// argument.
	if len(cfg.Tags) > 0 {
		args = append(args, "--tags")
		args = append(args, cfg.Tags...)
	}

	if cfg.License != "" {
		args = append(args, "--license", cfg.License)
	}

	return domain.CommandSpec{Args: args, Dir: dir}
}

func buildMarketplaceCommand(cfg domain.IngestionConfig, helperModule, dir string) domain.CommandSpec {
	args := []string{"run", "python", "-m", helperModule, string(cfg.Source)}

	if cfg.DownloadStrategy != "" {
		args = append(args, "--download-strategy", cfg.DownloadStrategy)
	}

	if cfg.OutputDir != "" {
		args = append(args, "--output-dir", cfg.OutputDir)
	}

	return domain.CommandSpec{Args: args, Dir: dir}
}

// buildSyncCommand produces the dependency sync invocation that runs
// before a marketplace ingestion.
func buildSyncCommand(kind domain.SourceKind, dir string) domain.CommandSpec {
	return domain.CommandSpec{
		Args: []string{"sync", "--extra", string(kind)},
		Dir:  dir,
	}
}
