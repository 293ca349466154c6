package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the board view.
type KeyMap struct {
	// Navigation
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding

	// Actions
	Move         key.Binding
	Undo         key.Binding
	Open         key.Binding
	Filter       key.Binding
	Mine         key.Binding
	Help         key.Binding
	Back         key.Binding
	Quit         key.Binding
	ApplyFilter  key.Binding
	CancelFilter key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous column"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next column"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous task"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next task"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move task"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo last move"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "task details"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter tasks"),
		),
		Mine: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle assigned to me"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc/q", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		ApplyFilter: key.NewBinding(
			key.WithKeys("enter"),
		),
		CancelFilter: key.NewBinding(
			key.WithKeys("esc"),
		),
	}
}

// ShortHelp returns key bindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Back}
}

// FullHelp returns key bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Move, k.Undo, k.Open, k.Filter},
		{k.Mine, k.Help, k.Back, k.Quit},
	}
}

// DetailKeyMap defines the key bindings of the project detail view.
type DetailKeyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Scroll  key.Binding
	Board   key.Binding
	Help    key.Binding
	Back    key.Binding
}

// DefaultDetailKeyMap returns the default detail view bindings.
func DefaultDetailKeyMap() DetailKeyMap {
	return DetailKeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab/←", "previous tab"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("j", "k", "up", "down"),
			key.WithHelp("j/k", "scroll"),
		),
		Board: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "task board"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc/q", "back"),
		),
	}
}

// ShortHelp returns key bindings to be shown in the mini help view.
func (k DetailKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Board, k.Back}
}

// FullHelp returns key bindings for the expanded help view.
func (k DetailKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Scroll},
		{k.Board, k.Help, k.Back},
	}
}
