package browser

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the collections browser.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	Open   key.Binding
	Back   key.Binding
	Home   key.Binding
	Filter key.Binding

	Grab   key.Binding
	Drop   key.Binding
	Cancel key.Binding

	NewFolder key.Binding
	Rename    key.Binding
	Favorite  key.Binding
	Trash     key.Binding

	Recent    key.Binding
	Favorites key.Binding
	Shared    key.Binding
	TrashView key.Binding

	Refresh key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the default set of keybindings.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup/ctrl+u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn/ctrl+d", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("gg", "jump to top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "jump to bottom"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter", "l"),
		key.WithHelp("enter", "open folder / drop"),
	),
	Back: key.NewBinding(
		key.WithKeys("backspace", "h"),
		key.WithHelp("backspace/h", "up one level"),
	),
	Home: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "home"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Grab: key.NewBinding(
		key.WithKeys("m", " "),
		key.WithHelp("m/space", "pick up item"),
	),
	Drop: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "drop here"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	NewFolder: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new folder"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Favorite: key.NewBinding(
		key.WithKeys("*"),
		key.WithHelp("*", "toggle favorite"),
	),
	Trash: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "move to trash"),
	),
	Recent: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "recent"),
	),
	Favorites: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "favorites"),
	),
	Shared: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "shared"),
	),
	TrashView: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "trash"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns keybindings shown in the footer when nothing else claims
// the space.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.Drop, k.Filter, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Open, k.Back, k.Home, k.Filter, k.Refresh},
		{k.Grab, k.Drop, k.Cancel},
		{k.NewFolder, k.Rename, k.Favorite, k.Trash},
		{k.Recent, k.Favorites, k.Shared, k.TrashView, k.Quit},
	}
}
