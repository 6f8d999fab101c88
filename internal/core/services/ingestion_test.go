package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packmule-labs/packmule-cli/internal/adapters/driven/storage/memory"
	"github.com/packmule-labs/packmule-cli/internal/core/domain"
)

// --- Mock implementations for ingestion testing ---

// mockRunner implements driven.ProcessRunner with scripted event
// streams, consumed one script per Spawn in call order.
type mockRunner struct {
	mu      sync.Mutex
	scripts [][]domain.ProcessEvent
	calls   []spawnCall
}

type spawnCall struct {
	command string
	spec    domain.CommandSpec
}

func (r *mockRunner) script(events ...domain.ProcessEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts = append(r.scripts, events)
}

func (r *mockRunner) Spawn(command string, spec domain.CommandSpec) <-chan domain.ProcessEvent {
	r.mu.Lock()
	r.calls = append(r.calls, spawnCall{command: command, spec: spec})

	var events []domain.ProcessEvent
	if len(r.scripts) > 0 {
		events = r.scripts[0]
		r.scripts = r.scripts[1:]
	}
	r.mu.Unlock()

	ch := make(chan domain.ProcessEvent)
	go func() {
		defer close(ch)
		for _, ev := range events {
			ch <- ev
		}
	}()
	return ch
}

func (r *mockRunner) spawned() []spawnCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]spawnCall(nil), r.calls...)
}

// mockSink implements driven.LogSink, recording entries in arrival
// order.
type mockSink struct {
	mu      sync.Mutex
	entries []domain.LogEntry
}

func (s *mockSink) Accept(entry domain.LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

func (s *mockSink) Entries() []domain.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.LogEntry(nil), s.entries...)
}

// configuredStore returns a config store pointing at a workspace.
func configuredStore(t *testing.T) *memory.ConfigStore {
	t.Helper()
	store := memory.NewConfigStore()
	require.NoError(t, store.Set("tool.dir", "/work/tool"))
	return store
}

// --- Tests ---

func TestIngestionService_Ingest_FilesystemSuccess(t *testing.T) {
	runner := &mockRunner{}
	runner.script(
		stdoutChunk(`{"assets": 3}`),
		exitedWith(0),
	)
	runs := memory.NewRunStore()
	svc := NewIngestionService(runner, configuredStore(t), nil, runs)

	result, err := svc.Ingest(context.Background(), domain.IngestionConfig{
		Source:  domain.SourceFilesystem,
		Path:    "/assets/rocks.zip",
		Name:    "rock pack",
		Tags:    []string{"props"},
		License: "MIT",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Equal(t, `{"assets": 3}`, result.Manifest)

	calls := runner.spawned()
	require.Len(t, calls, 1)
	assert.Equal(t, "uv", calls[0].command)
	assert.Equal(t, []string{
		"run", "ingest",
		"--path", "/assets/rocks.zip",
		"--name", "rock pack",
		"--source", "filesystem",
		"--tags", "props",
		"--license", "MIT",
	}, calls[0].spec.Args)
	assert.Equal(t, "/work/tool", calls[0].spec.Dir)

	// Verify the run was recorded
	recorded, err := runs.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.True(t, recorded[0].Success)
	assert.Equal(t, domain.SourceFilesystem, recorded[0].Source)
	assert.Equal(t, "rock pack", recorded[0].Name)
	assert.Equal(t, len(`{"assets": 3}`), recorded[0].ManifestBytes)
}

func TestIngestionService_Ingest_NonZeroExitIsResultNotError(t *testing.T) {
	runner := &mockRunner{}
	runner.script(
		stderrChunk("boom\n"),
		exitedWith(2),
	)
	runs := memory.NewRunStore()
	svc := NewIngestionService(runner, configuredStore(t), nil, runs)

	result, err := svc.Ingest(context.Background(), domain.IngestionConfig{
		Source: domain.SourceFilesystem,
		Path:   "/p",
		Name:   "n",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, "boom\n", result.Error)

	recorded, err := runs.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.False(t, recorded[0].Success)
	assert.Equal(t, "boom\n", recorded[0].Error)
}

func TestIngestionService_Ingest_SignalDeathFails(t *testing.T) {
	runner := &mockRunner{}
	runner.script(domain.ProcessEvent{Kind: domain.EventTerminated})
	svc := NewIngestionService(runner, configuredStore(t), nil, nil)

	result, err := svc.Ingest(context.Background(), domain.IngestionConfig{
		Source: domain.SourceFilesystem,
		Path:   "/p",
		Name:   "n",
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestIngestionService_Ingest_SpawnError(t *testing.T) {
	runner := &mockRunner{}
	runner.script(domain.ProcessEvent{
		Kind: domain.EventSpawnError,
		Text: `exec: "uv": executable file not found in $PATH`,
	})
	runs := memory.NewRunStore()
	svc := NewIngestionService(runner, configuredStore(t), nil, runs)

	result, err := svc.Ingest(context.Background(), domain.IngestionConfig{
		Source: domain.SourceFilesystem,
		Path:   "/p",
		Name:   "n",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSpawn)
	assert.Contains(t, err.Error(), "executable file not found")
	assert.Nil(t, result)

	// Hard failures still land in history
	recorded, listErr := runs.List(context.Background(), 10)
	require.NoError(t, listErr)
	require.Len(t, recorded, 1)
	assert.False(t, recorded[0].Success)
	assert.Contains(t, recorded[0].Error, "failed to spawn")
}

func TestIngestionService_Ingest_TruncatedStream(t *testing.T) {
	runner := &mockRunner{}
	runner.script(stdoutChunk("partial"))
	svc := NewIngestionService(runner, configuredStore(t), nil, nil)

	result, err := svc.Ingest(context.Background(), domain.IngestionConfig{
		Source: domain.SourceFilesystem,
		Path:   "/p",
		Name:   "n",
	})

	assert.ErrorIs(t, err, domain.ErrStreamEnded)
	assert.Nil(t, result)
}

func TestIngestionService_Ingest_ValidationPrecedesSpawn(t *testing.T) {
	tests := []struct {
		name    string
		cfg     domain.IngestionConfig
		wantErr error
	}{
		{
			name:    "missing path",
			cfg:     domain.IngestionConfig{Source: domain.SourceFilesystem, Name: "n"},
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "missing name",
			cfg:     domain.IngestionConfig{Source: domain.SourceFilesystem, Path: "/p"},
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "unknown source",
			cfg:     domain.IngestionConfig{Source: domain.SourceKind("steam")},
			wantErr: domain.ErrUnknownSource,
		},
		{
			name:    "empty source",
			cfg:     domain.IngestionConfig{},
			wantErr: domain.ErrUnknownSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &mockRunner{}
			svc := NewIngestionService(runner, configuredStore(t), nil, nil)

			result, err := svc.Ingest(context.Background(), tt.cfg)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
			assert.Empty(t, runner.spawned())
		})
	}
}

func TestIngestionService_Ingest_ToolDirNotConfigured(t *testing.T) {
	runner := &mockRunner{}
	svc := NewIngestionService(runner, memory.NewConfigStore(), nil, nil)

	result, err := svc.Ingest(context.Background(), domain.IngestionConfig{
		Source: domain.SourceFilesystem,
		Path:   "/p",
		Name:   "n",
	})

	assert.ErrorIs(t, err, domain.ErrWorkspaceInvalid)
	assert.Nil(t, result)
	assert.Empty(t, runner.spawned())
}

func TestIngestionService_Ingest_MarketplaceSyncsFirst(t *testing.T) {
	runner := &mockRunner{}
	runner.script(exitedWith(0)) // sync
	runner.script(               // main invocation
		stdoutChunk(`{"assets": 1}`),
		exitedWith(0),
	)
	sink := &mockSink{}
	svc := NewIngestionService(runner, configuredStore(t), sink, nil)

	result, err := svc.Ingest(context.Background(), domain.IngestionConfig{
		Source: domain.SourceFab,
	})

	require.NoError(t, err)
	assert.True(t, result.Success)

	calls := runner.spawned()
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"sync", "--extra", "fab"}, calls[0].spec.Args)
	assert.Equal(t, []string{
		"run", "python", "-m", "packmule_ingestion.gui_helper", "fab",
	}, calls[1].spec.Args)
	assert.Equal(t, "/work/tool", calls[0].spec.Dir)

	// The sync banner is announced before anything else
	entries := sink.Entries()
	require.NotEmpty(t, entries)
	assert.Equal(t, domain.LogInfo, entries[0].Kind)
	assert.Equal(t, "Syncing fab dependencies...", entries[0].Message)
}

func TestIngestionService_Ingest_SyncFailureAbortsRun(t *testing.T) {
	runner := &mockRunner{}
	runner.script(
		stderrChunk("No solution found\n"),
		exitedWith(1),
	)
	runs := memory.NewRunStore()
	svc := NewIngestionService(runner, configuredStore(t), nil, runs)

	result, err := svc.Ingest(context.Background(), domain.IngestionConfig{
		Source: domain.SourceUAS,
	})

	require.Error(t, err)
	assert.True(t, domain.IsSyncFailure(err))
	assert.Contains(t, err.Error(), "No solution found")
	assert.Nil(t, result)

	// The main command never spawned
	calls := runner.spawned()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"sync", "--extra", "uas"}, calls[0].spec.Args)

	recorded, listErr := runs.List(context.Background(), 10)
	require.NoError(t, listErr)
	require.Len(t, recorded, 1)
	assert.Contains(t, recorded[0].Error, "dependency sync failed")
}

func TestIngestionService_Ingest_SyncStderrNotRelayed(t *testing.T) {
	runner := &mockRunner{}
	runner.script(
		stderrChunk("Resolving dependencies...\n"),
		exitedWith(0),
	)
	runner.script(
		stderrChunk("ingesting\n"),
		exitedWith(0),
	)
	sink := &mockSink{}
	svc := NewIngestionService(runner, configuredStore(t), sink, nil)

	_, err := svc.Ingest(context.Background(), domain.IngestionConfig{
		Source: domain.SourceFab,
	})

	require.NoError(t, err)

	// Sync output stays buffered; only the banner and the main run's
	// stderr reach the sink.
	entries := sink.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, domain.LogInfo, entries[0].Kind)
	assert.Equal(t, domain.LogEntry{Kind: domain.LogStderr, Message: "ingesting"}, entries[1])
}

func TestIngestionService_Ingest_RelaysStderrInOrder(t *testing.T) {
	runner := &mockRunner{}
	runner.script(
		stderrChunk("step 1\n"),
		stderrChunk("step 2\n"),
		stderrChunk("step 3\n"),
		exitedWith(0),
	)
	sink := &mockSink{}
	svc := NewIngestionService(runner, configuredStore(t), sink, nil)

	_, err := svc.Ingest(context.Background(), domain.IngestionConfig{
		Source: domain.SourceFilesystem,
		Path:   "/p",
		Name:   "n",
	})

	require.NoError(t, err)

	entries := sink.Entries()
	require.Len(t, entries, 3)
	for i, want := range []string{"step 1", "step 2", "step 3"} {
		assert.Equal(t, domain.LogStderr, entries[i].Kind)
		assert.Equal(t, want, entries[i].Message)
	}
}

func TestIngestionService_Ingest_CustomToolchain(t *testing.T) {
	store := configuredStore(t)
	require.NoError(t, store.Set("tool.runner", "uvx"))
	require.NoError(t, store.Set("tool.helper_module", "custom.helper"))

	runner := &mockRunner{}
	runner.script(exitedWith(0))
	runner.script(exitedWith(0))
	svc := NewIngestionService(runner, store, nil, nil)

	_, err := svc.Ingest(context.Background(), domain.IngestionConfig{
		Source: domain.SourceFab,
	})

	require.NoError(t, err)

	calls := runner.spawned()
	require.Len(t, calls, 2)
	assert.Equal(t, "uvx", calls[0].command)
	assert.Equal(t, "uvx", calls[1].command)
	assert.Contains(t, calls[1].spec.Args, "custom.helper")
}

func TestIngestionService_Ingest_WithoutOptionalPorts(t *testing.T) {
	runner := &mockRunner{}
	runner.script(
		stderrChunk("progress\n"),
		exitedWith(0),
	)
	svc := NewIngestionService(runner, configuredStore(t), nil, nil)

	result, err := svc.Ingest(context.Background(), domain.IngestionConfig{
		Source: domain.SourceFilesystem,
		Path:   "/p",
		Name:   "n",
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
}
