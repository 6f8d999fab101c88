// Package styles holds the Packmule terminal palette and the lipgloss
// styles the views render with.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the Packmule colour scheme. Amber is the brand accent;
// the run-state colours (Good/Busy/Bad) carry the ingestion outcome
// semantics across every view.
type Palette struct {
	Accent lipgloss.Color // brand amber, titles and selection
	Info   lipgloss.Color // secondary accent, subtitles
	Text   lipgloss.Color // body text
	Dim    lipgloss.Color // de-emphasised text, help lines
	Good   lipgloss.Color // successful runs
	Busy   lipgloss.Color // ingestion in flight
	Bad    lipgloss.Color // failed runs and hard errors
	Chrome lipgloss.Color // status bar background
}

// PackmulePalette returns the default colour scheme.
func PackmulePalette() Palette {
	return Palette{
		Accent: lipgloss.Color("#D97706"),
		Info:   lipgloss.Color("#0EA5E9"),
		Text:   lipgloss.Color("#CDD6F4"),
		Dim:    lipgloss.Color("#6C7086"),
		Good:   lipgloss.Color("#A6E3A1"),
		Busy:   lipgloss.Color("#F9E2AF"),
		Bad:    lipgloss.Color("#F38BA8"),
		Chrome: lipgloss.Color("#181825"),
	}
}

// Styles are the rendered lipgloss styles shared by the menu, wizard,
// runs browser and status bar.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
	StatusBar lipgloss.Style
}

// New builds the style set from a palette.
func New(p Palette) *Styles {
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(p.Info),
		Normal:   lipgloss.NewStyle().Foreground(p.Text),
		Muted:    lipgloss.NewStyle().Foreground(p.Dim),
		Selected: lipgloss.NewStyle().Bold(true).
			Foreground(p.Text).
			Background(p.Accent),
		Success: lipgloss.NewStyle().Foreground(p.Good),
		Warning: lipgloss.NewStyle().Foreground(p.Busy),
		Error:   lipgloss.NewStyle().Foreground(p.Bad),
		Help:    lipgloss.NewStyle().Foreground(p.Dim),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Dim).
			Background(p.Chrome).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles in the Packmule palette.
func DefaultStyles() *Styles {
	return New(PackmulePalette())
}
