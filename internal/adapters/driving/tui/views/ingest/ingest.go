// Package ingest provides the ingestion wizard view for the TUI.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/tui/messages"
	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/tui/styles"
	"github.com/packmule-labs/packmule-cli/internal/core/domain"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driving"
)

// WizardStep tracks the current step in the wizard.
type WizardStep int

const (
	StepSelectSource WizardStep = iota
	StepEnterDetails
	StepRunning
	StepDone
)

// Key constants.
const (
	keyEnter = "enter"
	keyDown  = "down"
)

// logChromeRows rows are reserved for chrome around the live log.
const logChromeRows = 6

// View is the ingestion wizard view.
type View struct {
	styles           *styles.Styles
	ingestionService driving.IngestionService
	workspaceService driving.WorkspaceService
	settingsService  driving.SettingsService

	ctx context.Context

	// Wizard state
	step     WizardStep
	sources  []driving.SourceAvailability
	selected int

	// Selected source
	source *driving.SourceAvailability

	// Detail inputs
	inputs     []textinput.Model
	inputKeys  []string
	focusIndex int

	// Running state
	logLines []string
	logView  viewport.Model
	running  bool

	// Result
	result *domain.IngestionResult
	err    error

	width  int
	height int
	ready  bool
}

// NewView creates a new ingestion wizard view.
func NewView(
	s *styles.Styles,
	ingestionService driving.IngestionService,
	workspaceService driving.WorkspaceService,
	settingsService driving.SettingsService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:           s,
		ingestionService: ingestionService,
		workspaceService: workspaceService,
		settingsService:  settingsService,
		ctx:              context.Background(),
		step:             StepSelectSource,
		logView:          viewport.New(80, 16),
	}
}

// SetContext sets the context passed to the ingestion service.
func (v *View) SetContext(ctx context.Context) {
	if ctx != nil {
		v.ctx = ctx
	}
}

// Init initialises the view and loads the source catalogue.
func (v *View) Init() tea.Cmd {
	return v.loadSources()
}

// Reset returns the wizard to its first step. A run in flight keeps
// going; only the view state resets.
func (v *View) Reset() {
	v.step = StepSelectSource
	v.selected = 0
	v.source = nil
	v.inputs = nil
	v.inputKeys = nil
	v.focusIndex = 0
	v.logLines = nil
	v.logView.SetContent("")
	v.running = false
	v.result = nil
	v.err = nil
}

// sourcesLoaded is a private message carrying the source catalogue.
type sourcesLoaded struct {
	sources []driving.SourceAvailability
	err     error
}

// loadSources returns a command that loads the catalogue with
// per-kind availability in the configured workspace.
func (v *View) loadSources() tea.Cmd {
	return func() tea.Msg {
		if v.workspaceService == nil {
			return sourcesLoaded{err: fmt.Errorf("workspace service not available")}
		}
		return sourcesLoaded{sources: v.workspaceService.Sources(v.toolDir())}
	}
}

func (v *View) toolDir() string {
	if v.settingsService == nil {
		return ""
	}
	settings, err := v.settingsService.Get()
	if err != nil || settings == nil {
		return ""
	}
	return settings.ToolDir
}

// Update handles messages for the ingestion wizard.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		v.resizeLog()
		return v, nil

	case sourcesLoaded:
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.sources = msg.sources
		if v.selected >= len(v.sources) {
			v.selected = 0
		}
		return v, nil

	case messages.LogLine:
		if v.step == StepRunning {
			v.appendLog(msg.Entry)
		}
		return v, nil

	case messages.IngestCompleted:
		v.running = false
		v.result = msg.Result
		v.err = msg.Err
		v.step = StepDone
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses based on current step.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		switch v.step {
		case StepSelectSource:
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case StepEnterDetails:
			v.step = StepSelectSource
			return v, nil
		case StepRunning:
			// No cancel path: the spawned process runs to completion.
			return v, nil
		case StepDone:
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}

	switch v.step {
	case StepSelectSource:
		return v.handleSourceSelect(msg)
	case StepEnterDetails:
		return v.handleDetailsInput(msg)
	case StepRunning:
		// Allow scrolling the live log while the tool runs.
		var cmd tea.Cmd
		v.logView, cmd = v.logView.Update(msg)
		return v, cmd
	case StepDone:
		if msg.String() == keyEnter {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}

	return v, nil
}

func (v *View) handleSourceSelect(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(v.sources)-1 {
			v.selected++
		}
	case keyEnter:
		if len(v.sources) == 0 || v.selected >= len(v.sources) {
			return v, nil
		}
		source := v.sources[v.selected]
		if !source.Available {
			v.err = fmt.Errorf("%s: %w", source.Info.DisplayName, domain.ErrSourceUnavailable)
			return v, nil
		}
		v.err = nil
		v.source = &source
		cmd := v.initDetailInputs()
		v.step = StepEnterDetails
		return v, cmd
	}
	return v, nil
}

// detailField describes one wizard input for the selected kind.
type detailField struct {
	key         string
	placeholder string
	value       string
}

// initDetailInputs builds the per-kind input fields.
func (v *View) initDetailInputs() tea.Cmd {
	if v.source == nil {
		return nil
	}

	var fields []detailField
	if v.source.Info.Kind == domain.SourceFilesystem {
		fields = []detailField{
			{key: "path", placeholder: "Asset folder to ingest"},
			{key: "name", placeholder: "Catalogue entry name"},
			{key: "tags", placeholder: "Tags, comma separated (optional)"},
			{key: "license", placeholder: "Licence identifier (optional)"},
		}
	} else {
		defaults := v.marketplaceDefaults()
		fields = []detailField{
			{key: "download-strategy", placeholder: "Download strategy (optional)", value: defaults.DefaultDownloadStrategy},
			{key: "output-dir", placeholder: "Download directory (optional)", value: defaults.DefaultOutputDir},
		}
	}

	v.inputs = make([]textinput.Model, len(fields))
	v.inputKeys = make([]string, len(fields))
	for i, field := range fields {
		ti := textinput.New()
		ti.Placeholder = field.placeholder
		ti.CharLimit = 512
		ti.SetValue(field.value)
		v.inputs[i] = ti
		v.inputKeys[i] = field.key
	}
	v.focusIndex = 0

	if len(v.inputs) > 0 {
		return v.inputs[0].Focus()
	}
	return nil
}

func (v *View) marketplaceDefaults() domain.AppSettings {
	if v.settingsService == nil {
		return domain.AppSettings{}
	}
	settings, err := v.settingsService.Get()
	if err != nil || settings == nil {
		return domain.AppSettings{}
	}
	return *settings
}

func (v *View) handleDetailsInput(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "tab", keyDown:
		v.focusIndex++
		if v.focusIndex >= len(v.inputs) {
			v.focusIndex = 0
		}
		return v, v.updateFocus()
	case "shift+tab", "up":
		v.focusIndex--
		if v.focusIndex < 0 {
			v.focusIndex = len(v.inputs) - 1
		}
		return v, v.updateFocus()
	case keyEnter:
		cfg, err := v.buildConfig()
		if err != nil {
			v.err = err
			return v, nil
		}
		v.err = nil
		v.logLines = nil
		v.logView.SetContent("")
		v.running = true
		v.step = StepRunning
		return v, v.runIngestion(cfg)
	default:
		if len(v.inputs) > 0 && v.focusIndex < len(v.inputs) {
			var cmd tea.Cmd
			v.inputs[v.focusIndex], cmd = v.inputs[v.focusIndex].Update(msg)
			return v, cmd
		}
	}
	return v, nil
}

func (v *View) updateFocus() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(v.inputs))
	for i := range v.inputs {
		if i == v.focusIndex {
			cmds = append(cmds, v.inputs[i].Focus())
			continue
		}
		v.inputs[i].Blur()
	}
	return tea.Batch(cmds...)
}

// buildConfig assembles the IngestionConfig from the wizard state and
// validates it, so field errors surface before the run starts.
func (v *View) buildConfig() (domain.IngestionConfig, error) {
	if v.source == nil {
		return domain.IngestionConfig{}, fmt.Errorf("no source selected")
	}

	cfg := domain.IngestionConfig{Source: v.source.Info.Kind}
	for i, key := range v.inputKeys {
		value := strings.TrimSpace(v.inputs[i].Value())
		switch key {
		case "path":
			cfg.Path = value
		case "name":
			cfg.Name = value
		case "tags":
			cfg.Tags = parseTags(value)
		case "license":
			cfg.License = value
		case "download-strategy":
			cfg.DownloadStrategy = value
		case "output-dir":
			cfg.OutputDir = value
		}
	}

	if err := cfg.Validate(); err != nil {
		return domain.IngestionConfig{}, err
	}
	return cfg, nil
}

// parseTags splits a comma-separated tag list, keeping input order
// and dropping empty segments. No deduplication.
func parseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// runIngestion returns a command that runs the ingestion to
// completion. Progress arrives separately as LogLine messages while
// this command blocks.
func (v *View) runIngestion(cfg domain.IngestionConfig) tea.Cmd {
	return func() tea.Msg {
		if v.ingestionService == nil {
			return messages.IngestCompleted{Err: fmt.Errorf("ingestion service not available")}
		}
		result, err := v.ingestionService.Ingest(v.ctx, cfg)
		return messages.IngestCompleted{Result: result, Err: err}
	}
}

// appendLog adds one progress entry to the live log.
func (v *View) appendLog(entry domain.LogEntry) {
	line := entry.Message
	if entry.Kind == domain.LogInfo {
		line = v.styles.Subtitle.Render(line)
	}
	v.logLines = append(v.logLines, line)
	v.logView.SetContent(strings.Join(v.logLines, "\n"))
	v.logView.GotoBottom()
}

func (v *View) resizeLog() {
	width := v.width - 4
	if width < 20 {
		width = 20
	}
	height := v.height - logChromeRows
	if height < 5 {
		height = 5
	}
	v.logView.Width = width
	v.logView.Height = height
	v.logView.SetContent(strings.Join(v.logLines, "\n"))
}

// View renders the wizard.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	switch v.step {
	case StepSelectSource:
		return v.viewSelectSource()
	case StepEnterDetails:
		return v.viewEnterDetails()
	case StepRunning:
		return v.viewRunning()
	case StepDone:
		return v.viewDone()
	default:
		return ""
	}
}

func (v *View) viewSelectSource() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Ingest"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render("Where are the assets coming from?"))
	b.WriteString("\n\n")

	for i, source := range v.sources {
		cursor := "  "
		label := source.Info.DisplayName
		if source.Info.RequiresSync {
			label += v.styles.Muted.Render("  (syncs dependencies first)")
		}

		style := v.styles.Normal
		if !source.Available {
			style = v.styles.Muted
			label += v.styles.Muted.Render("  unavailable")
		}
		if i == v.selected {
			cursor = "> "
			style = v.styles.Selected
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(label))
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("↑/↓ navigate · enter select · esc back"))

	return b.String()
}

func (v *View) viewEnterDetails() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Ingest from " + v.source.Info.DisplayName))
	b.WriteString("\n\n")

	for i, input := range v.inputs {
		label := v.inputKeys[i]
		if i == v.focusIndex {
			b.WriteString(v.styles.Subtitle.Render(label))
		} else {
			b.WriteString(v.styles.Muted.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("tab next field · enter start · esc back"))

	return b.String()
}

func (v *View) viewRunning() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Ingesting from " + v.source.Info.DisplayName))
	b.WriteString("\n")
	b.WriteString(v.styles.Warning.Render("Running... the tool cannot be interrupted"))
	b.WriteString("\n\n")
	b.WriteString(v.logView.View())
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("↑/↓ scroll log"))

	return b.String()
}

func (v *View) viewDone() string {
	var b strings.Builder

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("✗ Ingestion failed"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Normal.Render(v.err.Error()))
	case v.result != nil && v.result.Success:
		b.WriteString(v.styles.Success.Render("✓ Ingestion complete"))
		if v.result.Manifest != "" {
			b.WriteString("\n\n")
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Manifest: %d bytes", len(v.result.Manifest))))
		}
	case v.result != nil:
		b.WriteString(v.styles.Error.Render("✗ The tool reported a failure"))
		if v.result.Error != "" {
			b.WriteString("\n\n")
			b.WriteString(v.styles.Normal.Render(strings.TrimRight(v.result.Error, "\n")))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("enter/esc back to menu"))

	return b.String()
}

// Step returns the current wizard step (for testing).
func (v *View) Step() WizardStep {
	return v.step
}

// Err returns the last error (for testing).
func (v *View) Err() error {
	return v.err
}

// Result returns the completed run's result (for testing).
func (v *View) Result() *domain.IngestionResult {
	return v.result
}

// Running reports whether an ingestion is in flight.
func (v *View) Running() bool {
	return v.running
}

// LogLines returns the accumulated live log (for testing).
func (v *View) LogLines() []string {
	return v.logLines
}

// SetDimensions sets the terminal dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.resizeLog()
}
