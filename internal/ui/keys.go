package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the dashboard.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Refresh    key.Binding

	// Suggestions
	Up       key.Binding
	Down     key.Binding
	Edit     key.Binding
	Copy     key.Binding
	Escalate key.Binding

	// Editor
	Done      key.Binding
	CopyDraft key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh now"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Previous suggestion"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Next suggestion"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "Edit suggestion"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Copy suggestion"),
		),
		Escalate: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Escalate case"),
		),

		Done: key.NewBinding(
			key.WithKeys("ctrl+s", "esc"),
			key.WithHelp("ctrl+s/esc", "Done editing"),
		),
		CopyDraft: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "Copy draft"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Copy, k.Escalate, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Edit, k.Copy, k.Escalate},
		{k.Done, k.CopyDraft},
		{k.Refresh, k.CycleTheme, k.Help, k.Quit},
	}
}

// editorHelp lists the bindings active while the editor has focus.
func (k keyMap) editorHelp() []key.Binding {
	return []key.Binding{k.Done, k.CopyDraft}
}
