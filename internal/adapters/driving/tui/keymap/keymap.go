// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Up and Down move between documents, fields, or draft rows.
	Up   key.Binding
	Down key.Binding

	// PrevCollection and NextCollection change the selected collection.
	PrevCollection key.Binding
	NextCollection key.Binding

	Edit     key.Binding
	Delete   key.Binding
	NewDraft key.Binding
	Reload   key.Binding

	// Save writes an edit session or submits the draft.
	Save key.Binding

	// Cancel discards an edit session.
	Cancel key.Binding

	// AddField and RemoveField change the draft's rows.
	AddField    key.Binding
	RemoveField key.Binding

	// NextCell and PrevCell move focus between input cells.
	NextCell key.Binding
	PrevCell key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PrevCollection: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev collection"),
		),
		NextCollection: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next collection"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		NewDraft: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new document"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		AddField: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "+ field"),
		),
		RemoveField: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "remove field"),
		),
		NextCell: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		PrevCell: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev"),
		),
	}
}

// DocumentsHelp returns keybindings for browsing documents.
func (k *KeyMap) DocumentsHelp() []key.Binding {
	return []key.Binding{k.PrevCollection, k.NextCollection, k.Edit, k.Delete, k.NewDraft, k.Reload, k.Quit}
}

// EditHelp returns keybindings while an edit session is open.
func (k *KeyMap) EditHelp() []key.Binding {
	return []key.Binding{k.NextCell, k.Save, k.Cancel}
}

// DraftHelp returns keybindings for the draft form.
func (k *KeyMap) DraftHelp() []key.Binding {
	return []key.Binding{k.AddField, k.RemoveField, k.NextCell, k.Save, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevCollection, k.NextCollection},
		{k.Edit, k.Delete, k.NewDraft, k.Reload},
		{k.Save, k.Cancel, k.NextCell, k.PrevCell},
		{k.AddField, k.RemoveField},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
