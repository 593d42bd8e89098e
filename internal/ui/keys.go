package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the app
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Enter    key.Binding
	Help     key.Binding
	Quit     key.Binding
	Escape   key.Binding

	Open        key.Binding // Open project in editor (reuse window)
	OpenNew     key.Binding // Open project in a new window
	Terminal    key.Binding // Open terminal in project directory
	Reveal      key.Binding // Reveal in file explorer
	CopyPath    key.Binding // Copy project path
	Favorite    key.Binding // Toggle favorite
	Collapse    key.Binding // Collapse/expand the group under the cursor
	CollapseAll key.Binding // Recursively collapse the subtree
	ExpandAll   key.Binding // Unfold every group
	QuickPick   key.Binding // Ranked project switcher
	TagFilter   key.Binding // Tag filter view
	Remotes     key.Binding // SSH hosts view
	AddProject  key.Binding // Add project form
	EditProject key.Binding // Edit project form
	Delete      key.Binding // Remove project from registry
	Search      key.Binding // Filter projects by text
	Storage     key.Binding // Raw storage viewer
	Refresh     key.Binding // Reload from disk
	Scan        key.Binding // Scan for new worktrees
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("Home", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "last"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		OpenNew: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in new window"),
		),
		Terminal: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "open terminal"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "reveal in files"),
		),
		CopyPath: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		Collapse: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "fold group"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("Z"),
			key.WithHelp("Z", "fold subtree"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "unfold all"),
		),
		QuickPick: key.NewBinding(
			key.WithKeys("p", "ctrl+p"),
			key.WithHelp("p", "quick switch"),
		),
		TagFilter: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tags"),
		),
		Remotes: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "ssh hosts"),
		),
		AddProject: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add project"),
		),
		EditProject: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit project"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "remove"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Storage: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "raw storage"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Scan: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "scan"),
		),
	}
}

// ShortHelp returns keybindings to show in short help
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.QuickPick, k.AddProject, k.TagFilter, k.Help, k.Quit}
}

// FullHelp returns all keybindings for full help
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		// Opening
		{k.Open, k.OpenNew, k.Terminal, k.Reveal, k.CopyPath},
		// Organizing
		{k.Favorite, k.Collapse, k.CollapseAll, k.ExpandAll, k.TagFilter, k.Search},
		// Registry
		{k.AddProject, k.EditProject, k.Delete, k.Scan, k.Refresh},
		// Views & General
		{k.QuickPick, k.Remotes, k.Storage, k.Help, k.Escape, k.Quit},
	}
}
