// Package runs provides the run history view for the TUI.
package runs

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/tui/messages"
	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/tui/styles"
	"github.com/packmule-labs/packmule-cli/internal/core/domain"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driving"
)

// View is the run history view.
type View struct {
	styles     *styles.Styles
	runService driving.RunService

	ctx context.Context

	runs     []domain.IngestionRun
	selected int
	loading  bool
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a new run history view.
func NewView(s *styles.Styles, runService driving.RunService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:     s,
		runService: runService,
		ctx:        context.Background(),
	}
}

// SetContext sets the context used for history reads.
func (v *View) SetContext(ctx context.Context) {
	if ctx != nil {
		v.ctx = ctx
	}
}

// Init initialises the view and loads the history.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadRuns()
}

// loadRuns returns a command that loads the recent run history.
func (v *View) loadRuns() tea.Cmd {
	return func() tea.Msg {
		if v.runService == nil {
			return messages.RunsLoaded{Err: fmt.Errorf("run history not available")}
		}
		runs, err := v.runService.List(v.ctx, 0)
		return messages.RunsLoaded{Runs: runs, Err: err}
	}
}

// Update handles messages for the run history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.RunsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.runs = msg.Runs
		if v.selected >= len(v.runs) {
			v.selected = 0
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.runs)-1 {
				v.selected++
			}
		case "r":
			v.loading = true
			return v, v.loadRuns()
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		return v, nil
	}

	return v, nil
}

// View renders the run history.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Runs"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading history..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	case len(v.runs) == 0:
		b.WriteString(v.styles.Muted.Render("No runs yet. Ingest something first."))
	default:
		for i, run := range v.runs {
			cursor := "  "
			style := v.styles.Normal
			if i == v.selected {
				cursor = "> "
				style = v.styles.Selected
			}
			b.WriteString(cursor)
			b.WriteString(style.Render(v.renderRun(run)))
			b.WriteString("\n")
		}

		if v.selected < len(v.runs) {
			b.WriteString("\n")
			b.WriteString(v.renderDetail(v.runs[v.selected]))
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("↑/↓ navigate · r refresh · esc back"))

	return b.String()
}

// renderRun renders one history line.
func (v *View) renderRun(run domain.IngestionRun) string {
	status := v.styles.Success.Render("ok")
	if !run.Success {
		status = v.styles.Error.Render("failed")
	}

	name := run.Name
	if name == "" {
		name = "-"
	}

	return fmt.Sprintf("%s  %-18s %-22s %s",
		run.StartedAt.Format("2006-01-02 15:04"),
		run.Source.DisplayName(),
		truncate(name, 22),
		status,
	)
}

// renderDetail renders the selected run's details.
func (v *View) renderDetail(run domain.IngestionRun) string {
	var lines []string

	lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("id %s · took %s", run.ID, run.Duration().Round(time.Millisecond))))
	if run.Args != "" {
		lines = append(lines, v.styles.Muted.Render("args: "+truncate(run.Args, v.width-8)))
	}
	if run.Success {
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("manifest: %d bytes", run.ManifestBytes)))
	} else if run.Error != "" {
		lines = append(lines, v.styles.Error.Render(truncate(strings.TrimRight(run.Error, "\n"), v.width-8)))
	}

	return strings.Join(lines, "\n")
}

func truncate(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// Runs returns the loaded history (for testing).
func (v *View) Runs() []domain.IngestionRun {
	return v.runs
}

// Selected returns the highlighted index (for testing).
func (v *View) Selected() int {
	return v.selected
}

// Err returns the last load error (for testing).
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the terminal dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
