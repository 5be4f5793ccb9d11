// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the session.
type KeyMap struct {
	// Navigation
	Up         key.Binding
	Down       key.Binding
	NextPanel  key.Binding
	PrevPanel  key.Binding
	GoTeams    key.Binding
	GoProjects key.Binding
	GoIssues   key.Binding
	GoDetail   key.Binding

	// Issue actions
	Enter     key.Binding
	Status    key.Binding
	Priority  key.Binding
	Labels    key.Binding
	Assignee  key.Binding
	Project   key.Binding
	Comment   key.Binding
	EditTitle key.Binding
	EditDesc  key.Binding
	Archive   key.Binding
	Create    key.Binding
	Open      key.Binding
	Yank      key.Binding

	// Selection and list controls
	ToggleSelect   key.Binding
	ClearSelection key.Binding
	BulkMenu       key.Binding
	Search         key.Binding
	Filter         key.Binding
	HideDone       key.Binding
	GroupBy        key.Binding
	Refresh        key.Binding

	// General
	Help    key.Binding
	Dismiss key.Binding
	Escape  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		NextPanel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		PrevPanel: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous panel"),
		),
		GoTeams: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "teams panel"),
		),
		GoProjects: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "projects panel"),
		),
		GoIssues: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "issue list"),
		),
		GoDetail: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "detail panel"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "change status"),
		),
		Priority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "change priority"),
		),
		Labels: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "edit labels"),
		),
		Assignee: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "change assignee"),
		),
		Project: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move to project"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "add comment"),
		),
		EditTitle: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit title"),
		),
		EditDesc: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit description"),
		),
		Archive: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "archive issue"),
		),
		Create: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "create issue"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy issue id"),
		),
		ToggleSelect: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle select"),
		),
		ClearSelection: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear selection"),
		),
		BulkMenu: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bulk actions"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		HideDone: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "hide done"),
		),
		GroupBy: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "cycle grouping"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss notification"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PickerKeyMap defines keybindings inside picker overlays.
type PickerKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultPickerKeyMap returns the picker bindings.
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// InputKeyMap defines keybindings inside text input overlays. Runes not
// matching any binding are inserted as text.
type InputKeyMap struct {
	Confirm   key.Binding
	Cancel    key.Binding
	Backspace key.Binding
	Delete    key.Binding
	Left      key.Binding
	Right     key.Binding
	Home      key.Binding
	End       key.Binding
	NextField key.Binding
	PrevField key.Binding
}

// DefaultInputKeyMap returns the text input bindings.
func DefaultInputKeyMap() InputKeyMap {
	return InputKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete back"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "delete forward"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "cursor left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "cursor right"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "ctrl+a"),
			key.WithHelp("home", "line start"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "ctrl+e"),
			key.WithHelp("end", "line end"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
	}
}

// HelpSections returns the binding groups shown in the help overlay.
func HelpSections(k KeyMap) []struct {
	Title    string
	Bindings []key.Binding
} {
	return []struct {
		Title    string
		Bindings []key.Binding
	}{
		{
			Title: "Navigation",
			Bindings: []key.Binding{
				k.Up, k.Down, k.NextPanel, k.PrevPanel,
				k.GoTeams, k.GoProjects, k.GoIssues, k.GoDetail, k.Enter,
			},
		},
		{
			Title: "Issue actions",
			Bindings: []key.Binding{
				k.Status, k.Priority, k.Labels, k.Assignee, k.Project,
				k.Comment, k.EditTitle, k.EditDesc, k.Archive, k.Create,
				k.Open, k.Yank,
			},
		},
		{
			Title: "List",
			Bindings: []key.Binding{
				k.ToggleSelect, k.ClearSelection, k.BulkMenu,
				k.Search, k.Filter, k.HideDone, k.GroupBy, k.Refresh,
			},
		},
		{
			Title: "General",
			Bindings: []key.Binding{
				k.Help, k.Dismiss, k.Escape, k.Quit,
			},
		},
	}
}
