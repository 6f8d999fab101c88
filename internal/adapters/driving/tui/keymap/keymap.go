// Package keymap defines the TUI keybindings.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding the views react to.
type KeyMap struct {
	Quit    key.Binding // exit the program
	Help    key.Binding // open the help view
	Back    key.Binding // return to the previous view
	Up      key.Binding // move up in a list
	Down    key.Binding // move down in a list
	Select  key.Binding // confirm a selection
	Cancel  key.Binding // abandon the current input
	Refresh key.Binding // reload the current listing
}

// bind pairs keys with the hint shown in the status bar. The first
// key doubles as the hint label unless label overrides it.
func bind(label, desc string, keys ...string) key.Binding {
	if label == "" {
		label = keys[0]
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// DefaultKeyMap returns the Packmule bindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:    bind("", "quit", "q", "ctrl+c"),
		Help:    bind("", "help", "?"),
		Back:    bind("", "back", "esc"),
		Up:      bind("↑/k", "up", "up", "k"),
		Down:    bind("↓/j", "down", "down", "j"),
		Select:  bind("", "select", "enter"),
		Cancel:  bind("", "cancel", "esc"),
		Refresh: bind("", "refresh", "r"),
	}
}

// ShortHelp returns the most important bindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}
