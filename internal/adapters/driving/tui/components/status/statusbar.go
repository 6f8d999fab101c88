// Package status provides the status bar component for the TUI.
package status

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/tui/keymap"
	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/tui/styles"
	"github.com/packmule-labs/packmule-cli/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateIngesting State = "ingesting"
	StateError     State = "error"
)

// Bar displays workspace state and keybinding hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	state     State
	message   string
	workspace *domain.WorkspaceStatus
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (b *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (b *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return b, nil
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state and workspace segment.
func (b *Bar) renderLeft() string {
	var parts []string

	switch b.state {
	case StateIngesting:
		parts = append(parts, b.styles.Warning.Render("● ingesting"))
	case StateError:
		parts = append(parts, b.styles.Error.Render("✗ "+b.message))
	case StateReady:
		parts = append(parts, b.styles.Muted.Render("ready"))
	}

	if b.workspace != nil {
		if b.workspace.Valid {
			parts = append(parts, b.styles.Success.Render("workspace: "+b.workspace.Dir))
		} else {
			parts = append(parts, b.styles.Error.Render("workspace missing: "+b.workspace.Dir))
		}
	} else {
		parts = append(parts, b.styles.Muted.Render("no workspace configured"))
	}

	return strings.Join(parts, b.styles.Muted.Render(" │ "))
}

// renderRight renders the keybinding hints.
func (b *Bar) renderRight() string {
	hints := make([]string, 0, len(b.keymap.ShortHelp()))
	for _, binding := range b.keymap.ShortHelp() {
		help := binding.Help()
		hints = append(hints, help.Key+" "+help.Desc)
	}
	return b.styles.Help.Render(strings.Join(hints, " · "))
}

// SetState sets the displayed state. The message is shown for
// StateError only.
func (b *Bar) SetState(state State, message string) {
	b.state = state
	b.message = message
}

// SetWorkspace records the latest workspace watcher snapshot.
func (b *Bar) SetWorkspace(status domain.WorkspaceStatus) {
	b.workspace = &status
}

// SetWidth sets the rendered width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// State returns the current state (for testing).
func (b *Bar) State() State {
	return b.state
}
