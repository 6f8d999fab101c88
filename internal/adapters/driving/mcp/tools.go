package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
)

// RunIngestionInput is the input schema for the run_ingestion tool.
type RunIngestionInput struct {
	Source           string   `json:"source" jsonschema:"source kind: filesystem, fab or uas"`
	Path             string   `json:"path,omitempty" jsonschema:"asset folder to ingest (filesystem only)"`
	Name             string   `json:"name,omitempty" jsonschema:"catalogue entry name (filesystem only)"`
	Tags             []string `json:"tags,omitempty" jsonschema:"tags to attach, kept in the given order"`
	License          string   `json:"license,omitempty" jsonschema:"licence identifier"`
	DownloadStrategy string   `json:"download_strategy,omitempty" jsonschema:"marketplace download strategy"`
	OutputDir        string   `json:"output_dir,omitempty" jsonschema:"marketplace download directory"`
}

// RunIngestionOutput is the output schema for the run_ingestion tool.
// A run that merely failed is reported here, not as a tool error.
type RunIngestionOutput struct {
	Success  bool   `json:"success"`
	Manifest string `json:"manifest,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ListSourcesOutput is the output schema for the list_sources tool.
type ListSourcesOutput struct {
	Sources []SourceOutput `json:"sources"`
}

// SourceOutput represents a single catalogue entry.
type SourceOutput struct {
	Kind         string `json:"kind"`
	DisplayName  string `json:"display_name"`
	RequiresSync bool   `json:"requires_sync"`
	Available    bool   `json:"available"`
}

// ListRunsInput is the input schema for the list_runs tool.
type ListRunsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of runs to return (default: configured limit)"`
}

// ListRunsOutput is the output schema for the list_runs tool.
type ListRunsOutput struct {
	Runs  []RunOutput `json:"runs"`
	Count int         `json:"count"`
}

// RunOutput represents a single ingestion run record.
type RunOutput struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	Name          string    `json:"name,omitempty"`
	Args          string    `json:"args,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Success       bool      `json:"success"`
	Error         string    `json:"error,omitempty"`
	ManifestBytes int       `json:"manifest_bytes"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.inner, &mcp.Tool{
		Name:        "run_ingestion",
		Description: "Run one asset ingestion and return the outcome",
	}, s.handleRunIngestion)
	mcp.AddTool(s.inner, &mcp.Tool{
		Name:        "list_sources",
		Description: "List the supported ingestion sources and their availability",
	}, s.handleListSources)
	mcp.AddTool(s.inner, &mcp.Tool{
		Name:        "list_runs",
		Description: "List recent ingestion runs, newest first",
	}, s.handleListRuns)
}

// handleRunIngestion handles the run_ingestion tool invocation.
func (s *Server) handleRunIngestion(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunIngestionInput,
) (*mcp.CallToolResult, RunIngestionOutput, error) {
	kind, err := domain.ParseSourceKind(input.Source)
	if err != nil {
		return nil, RunIngestionOutput{}, err
	}

	cfg := domain.IngestionConfig{
		Source:           kind,
		Path:             input.Path,
		Name:             input.Name,
		Tags:             input.Tags,
		License:          input.License,
		DownloadStrategy: input.DownloadStrategy,
		OutputDir:        input.OutputDir,
	}

	result, err := s.ports.Ingestion.Ingest(ctx, cfg)
	if err != nil {
		return nil, RunIngestionOutput{}, err
	}

	output := RunIngestionOutput{
		Success:  result.Success,
		Manifest: result.Manifest,
		Error:    result.Error,
	}

	return nil, output, nil
}

// handleListSources handles the list_sources tool invocation.
func (s *Server) handleListSources(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListSourcesOutput, error) {
	if s.ports.Workspace == nil {
		return nil, ListSourcesOutput{}, ErrWorkspaceUnavailable
	}

	dir := ""
	if s.ports.Settings != nil {
		if settings, err := s.ports.Settings.Get(); err == nil {
			dir = settings.ToolDir
		}
	}

	sources := s.ports.Workspace.Sources(dir)
	output := ListSourcesOutput{
		Sources: make([]SourceOutput, len(sources)),
	}

	for i := range sources {
		output.Sources[i] = SourceOutput{
			Kind:         string(sources[i].Info.Kind),
			DisplayName:  sources[i].Info.DisplayName,
			RequiresSync: sources[i].Info.RequiresSync,
			Available:    sources[i].Available,
		}
	}

	return nil, output, nil
}

// handleListRuns handles the list_runs tool invocation.
func (s *Server) handleListRuns(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListRunsInput,
) (*mcp.CallToolResult, ListRunsOutput, error) {
	if s.ports.Runs == nil {
		return nil, ListRunsOutput{}, ErrRunsUnavailable
	}

	runs, err := s.ports.Runs.List(ctx, input.Limit)
	if err != nil {
		return nil, ListRunsOutput{}, err
	}

	output := ListRunsOutput{
		Runs:  make([]RunOutput, len(runs)),
		Count: len(runs),
	}

	for i := range runs {
		output.Runs[i] = runOutput(&runs[i])
	}

	return nil, output, nil
}

// runOutput maps a run record onto the wire schema.
func runOutput(run *domain.IngestionRun) RunOutput {
	return RunOutput{
		ID:            run.ID,
		Source:        string(run.Source),
		Name:          run.Name,
		Args:          run.Args,
		StartedAt:     run.StartedAt,
		FinishedAt:    run.FinishedAt,
		Success:       run.Success,
		Error:         run.Error,
		ManifestBytes: run.ManifestBytes,
	}
}
