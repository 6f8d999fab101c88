// Package menu provides the top-level navigation view for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/tui/messages"
	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/tui/styles"
)

// Item is one navigation target.
type Item struct {
	Label string
	Desc  string
	View  messages.ViewType
	Quit  bool // selecting this item exits the program
}

// menuItems is the fixed Packmule navigation.
func menuItems() []Item {
	return []Item{
		{Label: "Ingest", Desc: "pack assets into the catalogue", View: messages.ViewIngest},
		{Label: "Runs", Desc: "browse past ingestion runs", View: messages.ViewRuns},
		{Label: "Help", Desc: "keys and usage", View: messages.ViewHelp},
		{Label: "Quit", Desc: "leave packmule", Quit: true},
	}
}

// View is the main menu.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates the menu.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items:  menuItems(),
		width:  80,
		height: 24,
	}
}

// Init implements the view contract; the menu needs no startup work.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
		case "enter":
			return v, v.activate(v.items[v.selected])
		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// activate produces the command for a chosen item.
func (v *View) activate(item Item) tea.Cmd {
	if item.Quit {
		return tea.Quit
	}
	target := item.View
	return func() tea.Msg {
		return messages.ViewChanged{View: target}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	labelWidth := 0
	for _, item := range v.items {
		if len(item.Label) > labelWidth {
			labelWidth = len(item.Label)
		}
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Packmule"))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render("game asset catalogue"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		label := item.Label + strings.Repeat(" ", labelWidth-len(item.Label))
		if i == v.selected {
			b.WriteString("▸ ")
			b.WriteString(v.styles.Selected.Render(label))
		} else {
			b.WriteString("  ")
			b.WriteString(v.styles.Normal.Render(label))
		}
		b.WriteString("  ")
		b.WriteString(v.styles.Muted.Render(item.Desc))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("↑/↓ navigate · enter select · q quit"))

	return b.String()
}

// Selected returns the index of the highlighted item (for testing).
func (v *View) Selected() int {
	return v.selected
}

// SetDimensions sets the terminal dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
