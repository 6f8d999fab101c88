package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/tui/components/status"
	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/tui/keymap"
	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/tui/messages"
	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/tui/styles"
	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/tui/views/ingest"
	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/tui/views/menu"
	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/tui/views/runs"
	"github.com/packmule-labs/packmule-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// ingestView is the ingestion wizard view component.
	ingestView *ingest.View

	// runsView is the run history view component.
	runsView *runs.View

	// statusBar shows workspace state and key hints.
	statusBar *status.Bar

	// statusCh delivers workspace watcher snapshots while the app
	// runs. Nil when no workspace is configured.
	statusCh <-chan domain.WorkspaceStatus

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s),
		ingestView:  ingest.NewView(s, ports.Ingestion, ports.Workspace, ports.Settings),
		runsView:    runs.NewView(s, ports.Runs),
		statusBar:   status.NewBar(s, keymap.DefaultKeyMap()),
		currentView: messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.ingestView.SetContext(ctx)
	a.runsView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("packmule - Asset Ingestion"),
		a.startWorkspaceWatch(),
	)
}

// startWorkspaceWatch subscribes to the workspace watcher when a tool
// directory is configured. Without one the status bar just shows
// "no workspace configured".
func (a *App) startWorkspaceWatch() tea.Cmd {
	if a.ports.Settings == nil || a.ports.Workspace == nil {
		return nil
	}
	settings, err := a.ports.Settings.Get()
	if err != nil || settings == nil || settings.ToolDir == "" {
		return nil
	}

	ch, err := a.ports.Workspace.Watch(a.ctx, settings.ToolDir)
	if err != nil {
		return nil
	}
	a.statusCh = ch
	return a.awaitWorkspaceStatus()
}

// awaitWorkspaceStatus blocks on the watcher channel and re-arms
// itself after every snapshot.
func (a *App) awaitWorkspaceStatus() tea.Cmd {
	ch := a.statusCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		snapshot, ok := <-ch
		if !ok {
			return nil
		}
		return messages.WorkspaceStatusChanged{Status: snapshot}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.ingestView.SetDimensions(msg.Width, msg.Height)
		a.runsView.SetDimensions(msg.Width, msg.Height)
		a.statusBar.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Forward key messages to active view
		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewIngest:
			a.ingestView, cmd = a.ingestView.Update(msg)
			a.syncStatusBar()
			return a, cmd

		case messages.ViewRuns:
			a.runsView, cmd = a.runsView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewIngest:
			a.ingestView.Reset()
			return a, a.ingestView.Init()
		case messages.ViewRuns:
			return a, a.runsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.LogLine:
		// Live tool output always belongs to the wizard, whichever
		// view is showing.
		a.ingestView, cmd = a.ingestView.Update(msg)
		return a, cmd

	case messages.IngestCompleted:
		a.ingestView, cmd = a.ingestView.Update(msg)
		a.syncStatusBar()
		return a, cmd

	case messages.RunsLoaded:
		a.runsView, cmd = a.runsView.Update(msg)
		return a, cmd

	case messages.WorkspaceStatusChanged:
		a.statusBar.SetWorkspace(msg.Status)
		return a, a.awaitWorkspaceStatus()

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError, msg.Err.Error())
		// Forward to current view
		if a.currentView == messages.ViewIngest {
			a.ingestView, cmd = a.ingestView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewIngest:
		a.ingestView, cmd = a.ingestView.Update(msg)
		a.syncStatusBar()
	case messages.ViewRuns:
		a.runsView, cmd = a.runsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// syncStatusBar mirrors the wizard's run state into the status bar.
func (a *App) syncStatusBar() {
	if a.ingestView.Running() {
		a.statusBar.SetState(status.StateIngesting, "")
		return
	}
	if a.statusBar.State() == status.StateIngesting {
		a.statusBar.SetState(status.StateReady, "")
	}
}

// View implements tea.Model.
// It renders the current view with the status bar underneath.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewMenu:
		body = a.menuView.View()
	case messages.ViewIngest:
		body = a.ingestView.View()
	case messages.ViewRuns:
		body = a.runsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}

	return body + "\n" + a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Ingest:
  j/k, ↑/↓    Pick a source
  tab         Next field
  enter       Confirm / start
  esc         Back one step

Runs:
  j/k, ↑/↓    Navigate runs
  r           Refresh
  esc         Back to Menu

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.ingestView.SetDimensions(width, height)
	a.runsView.SetDimensions(width, height)
	a.statusBar.SetWidth(width)
}
