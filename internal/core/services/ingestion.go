package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driven"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driving"
	"github.com/packmule-labs/packmule-cli/internal/logger"
)

// Ensure IngestionService implements the interface.
var _ driving.IngestionService = (*IngestionService)(nil)

// IngestionService orchestrates one ingestion run end to end:
// validation, marketplace pre-sync, spawn, stream aggregation, and
// outcome classification.
type IngestionService struct {
	runner driven.ProcessRunner
	config driven.ConfigStore
	sink   driven.LogSink
	runs   driven.RunStore
}

// NewIngestionService creates a new ingestion service. sink and runs
// are optional: without a sink no progress is relayed, without a run
// store no history is recorded.
func NewIngestionService(
	runner driven.ProcessRunner,
	config driven.ConfigStore,
	sink driven.LogSink,
	runs driven.RunStore,
) *IngestionService {
	return &IngestionService{
		runner: runner,
		config: config,
		sink:   sink,
		runs:   runs,
	}
}

// Ingest runs a single ingestion invocation and reports its outcome.
// A non-zero exit from the tool is data, not an error: it comes back
// as an unsuccessful result. The returned error covers everything
// that prevented a clean run instead (bad config, failed sync, spawn
// failure, truncated stream).
//
// The context covers bookkeeping only. Once spawned, the process runs
// to completion; cancelling ctx does not kill it.
func (s *IngestionService) Ingest(ctx context.Context, cfg domain.IngestionConfig) (*domain.IngestionResult, error) {
	// 1. Resolve the source kind before anything can spawn
	kind, err := domain.ParseSourceKind(string(cfg.Source))
	if err != nil {
		return nil, err
	}
	cfg.Source = kind

	// 2. Validate per-kind required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	settings := s.settings()
	if settings.ToolDir == "" {
		return nil, fmt.Errorf("%w: tool directory not configured", domain.ErrWorkspaceInvalid)
	}

	started := time.Now()

	// 3. Marketplace kinds sync their extras first
	if kind.IsMarketplace() {
		if err := s.syncDependencies(settings, kind); err != nil {
			s.record(ctx, cfg, domain.CommandSpec{}, started, nil, err)
			return nil, err
		}
	}

	// 4. Build and supervise the main command
	spec, err := buildIngestCommand(cfg, settings.HelperModule, settings.ToolDir)
	if err != nil {
		return nil, err
	}

	logger.Info("Running %s %s", settings.Runner, strings.Join(spec.Args, " "))
	outcome, err := drainEvents(s.runner.Spawn(settings.Runner, spec), s.sink)
	if err != nil {
		s.record(ctx, cfg, spec, started, nil, err)
		return nil, err
	}

	// 5. Classify the exit and record the run
	result := classify(outcome.exitCode, outcome.stdout, outcome.stderr)
	s.record(ctx, cfg, spec, started, &result, nil)

	return &result, nil
}

// syncDependencies runs the buffered dependency sync for a
// marketplace kind. Its output is not relayed incrementally; on
// failure the captured stderr travels back inside a SyncError.
func (s *IngestionService) syncDependencies(settings domain.AppSettings, kind domain.SourceKind) error {
	notify(s.sink, domain.LogEntry{
		Kind:    domain.LogInfo,
		Message: fmt.Sprintf("Syncing %s dependencies...", kind),
	})

	spec := buildSyncCommand(kind, settings.ToolDir)
	logger.Info("Running %s %s", settings.Runner, strings.Join(spec.Args, " "))

	outcome, err := drainEvents(s.runner.Spawn(settings.Runner, spec), nil)
	if err != nil {
		return fmt.Errorf("running dependency sync: %w", err)
	}

	if outcome.exitCode == nil || *outcome.exitCode != 0 {
		return &domain.SyncError{Source: kind, Stderr: outcome.stderr}
	}

	return nil
}

// record persists one history entry. Failures are logged and
// swallowed: history never blocks an ingestion outcome.
func (s *IngestionService) record(
	ctx context.Context,
	cfg domain.IngestionConfig,
	spec domain.CommandSpec,
	started time.Time,
	result *domain.IngestionResult,
	hardErr error,
) {
	if s.runs == nil {
		return
	}

	run := domain.IngestionRun{
		ID:         uuid.New().String(),
		Source:     cfg.Source,
		Name:       cfg.Name,
		Args:       strings.Join(spec.Args, " "),
		StartedAt:  started,
		FinishedAt: time.Now(),
	}

	switch {
	case hardErr != nil:
		run.Error = hardErr.Error()
	case result.Success:
		run.Success = true
		run.ManifestBytes = len(result.Manifest)
	default:
		run.Error = result.Error
	}

	if err := s.runs.Save(ctx, run); err != nil {
		logger.Warn("Failed to record ingestion run: %v", err)
	}
}

func (s *IngestionService) settings() domain.AppSettings {
	return settingsFromStore(s.config).WithDefaults()
}
