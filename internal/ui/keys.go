package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts for the application.
// Each binding includes the actual keys and help text for display.
// Note: Related bindings (Up/Down, Left/Right) share identical help text
// since they appear as a single row in the help overlay.
type KeyMap struct {
	// Camera
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Fit   key.Binding

	// Selection and views
	Next     key.Binding
	Prev     key.Binding
	Enter    key.Binding
	Escape   key.Binding
	Home     key.Binding
	Table    key.Binding
	Implied  key.Binding
	Relayout key.Binding

	// Editing
	Add key.Binding

	// Neighbors
	Effects    key.Binding
	Components key.Binding
	Criteria   key.Binding

	// Misc
	Copy  key.Binding
	Theme key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓  k/j", "Pan up/down"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↑/↓  k/j", "Pan up/down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→  h/l", "Pan left/right"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("←/→  h/l", "Pan left/right"),
		),
		Fit: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Fit view"),
		),

		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("⇥ (Tab)", "Select next node"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("⇧⇥", "Select previous node"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎ (Enter)", "Open claim tree"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Close claim tree/table"),
		),
		Home: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "Back to problem diagram"),
		),
		Table: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Criteria table"),
		),
		Implied: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Toggle implied edges"),
		),
		Relayout: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Relayout"),
		),

		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add child node"),
		),

		Effects: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Show/hide effects"),
		),
		Components: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Show/hide components"),
		),
		Criteria: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Show/hide criteria"),
		),

		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy as Mermaid"),
		),
		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}
