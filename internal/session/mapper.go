package session

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mfell/lariat/internal/keys"
)

// Mapper converts key presses into actions. It is total: a key with no
// binding in the current context maps to Noop. When an overlay is open
// its table is consulted exclusively, so zone bindings (including quit)
// cannot fire underneath a popup.
type Mapper struct {
	Keys   keys.KeyMap
	Picker keys.PickerKeyMap
	Input  keys.InputKeyMap
}

// NewMapper returns a mapper with the default bindings.
func NewMapper() Mapper {
	return Mapper{
		Keys:   keys.DefaultKeyMap(),
		Picker: keys.DefaultPickerKeyMap(),
		Input:  keys.DefaultInputKeyMap(),
	}
}

// Map resolves one key press against the current focus and overlay.
func (m Mapper) Map(msg tea.KeyMsg, focus Zone, overlay *Overlay) Action {
	if overlay != nil {
		return m.mapOverlay(msg, overlay)
	}
	return m.mapZone(msg, focus)
}

func (m Mapper) mapOverlay(msg tea.KeyMsg, o *Overlay) Action {
	switch o.Kind {
	case OverlayTextInput:
		return m.mapTextInput(msg)

	case OverlayCreateIssue:
		return m.mapCreateForm(msg)

	case OverlayConfirmArchive:
		switch {
		case msg.String() == "y", key.Matches(msg, m.Picker.Confirm):
			return Confirm{}
		case msg.String() == "n", key.Matches(msg, m.Picker.Cancel):
			return Cancel{}
		}
		return Noop{}

	case OverlayHelp:
		switch {
		case key.Matches(msg, m.Picker.Cancel), key.Matches(msg, m.Keys.Help):
			return Cancel{}
		}
		return Noop{}

	default: // pickers and the bulk menu
		switch {
		case key.Matches(msg, m.Picker.Up):
			return MoveUp{}
		case key.Matches(msg, m.Picker.Down):
			return MoveDown{}
		case key.Matches(msg, m.Picker.Toggle):
			return ToggleSelect{}
		case key.Matches(msg, m.Picker.Confirm):
			return Confirm{}
		case key.Matches(msg, m.Picker.Cancel):
			return Cancel{}
		}
		return Noop{}
	}
}

func (m Mapper) mapTextInput(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, m.Input.Confirm):
		return Confirm{}
	case key.Matches(msg, m.Input.Cancel):
		return Cancel{}
	case key.Matches(msg, m.Input.Backspace):
		return Backspace{}
	case key.Matches(msg, m.Input.Delete):
		return DeleteForward{}
	case key.Matches(msg, m.Input.Left):
		return CursorLeft{}
	case key.Matches(msg, m.Input.Right):
		return CursorRight{}
	case key.Matches(msg, m.Input.Home):
		return CursorHome{}
	case key.Matches(msg, m.Input.End):
		return CursorEnd{}
	}
	return runeAction(msg)
}

func (m Mapper) mapCreateForm(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, m.Input.Confirm):
		return Confirm{}
	case key.Matches(msg, m.Input.Cancel):
		return Cancel{}
	case key.Matches(msg, m.Input.NextField):
		return NextField{}
	case key.Matches(msg, m.Input.PrevField):
		return PrevField{}
	case msg.Type == tea.KeyUp:
		return MoveUp{}
	case msg.Type == tea.KeyDown:
		return MoveDown{}
	case key.Matches(msg, m.Input.Backspace):
		return Backspace{}
	case key.Matches(msg, m.Input.Delete):
		return DeleteForward{}
	case key.Matches(msg, m.Input.Left):
		return CursorLeft{}
	case key.Matches(msg, m.Input.Right):
		return CursorRight{}
	case key.Matches(msg, m.Input.Home):
		return CursorHome{}
	case key.Matches(msg, m.Input.End):
		return CursorEnd{}
	}
	return runeAction(msg)
}

func (m Mapper) mapZone(msg tea.KeyMsg, focus Zone) Action {
	// Bindings that work in every zone.
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return Quit{}
	case key.Matches(msg, m.Keys.Help):
		return OpenHelp{}
	case key.Matches(msg, m.Keys.NextPanel):
		return FocusNext{}
	case key.Matches(msg, m.Keys.PrevPanel):
		return FocusPrev{}
	case key.Matches(msg, m.Keys.GoTeams):
		return FocusZone{Zone: ZoneTeams}
	case key.Matches(msg, m.Keys.GoProjects):
		return FocusZone{Zone: ZoneProjects}
	case key.Matches(msg, m.Keys.GoIssues):
		return FocusZone{Zone: ZoneIssues}
	case key.Matches(msg, m.Keys.GoDetail):
		return FocusZone{Zone: ZoneDetail}
	case key.Matches(msg, m.Keys.Up):
		return MoveUp{}
	case key.Matches(msg, m.Keys.Down):
		return MoveDown{}
	case key.Matches(msg, m.Keys.Enter):
		return Select{}
	case key.Matches(msg, m.Keys.Refresh):
		return Refresh{}
	case key.Matches(msg, m.Keys.Dismiss):
		return DismissNotification{}
	case key.Matches(msg, m.Keys.Search):
		return OpenTextInput{Context: TextSearch}
	case key.Matches(msg, m.Keys.Filter):
		return OpenTextInput{Context: TextFilter}
	case key.Matches(msg, m.Keys.HideDone):
		return ToggleHideDone{}
	case key.Matches(msg, m.Keys.GroupBy):
		return CycleGroupBy{}
	case key.Matches(msg, m.Keys.Create):
		return OpenCreateForm{}
	}

	// Issue-scoped bindings only fire with an issue panel focused.
	if focus == ZoneIssues || focus == ZoneDetail {
		switch {
		case key.Matches(msg, m.Keys.Status):
			return OpenPicker{Kind: OverlayStatusPicker}
		case key.Matches(msg, m.Keys.Priority):
			return OpenPicker{Kind: OverlayPriorityPicker}
		case key.Matches(msg, m.Keys.Labels):
			return OpenPicker{Kind: OverlayLabelPicker}
		case key.Matches(msg, m.Keys.Assignee):
			return OpenPicker{Kind: OverlayAssigneePicker}
		case key.Matches(msg, m.Keys.Project):
			return OpenPicker{Kind: OverlayProjectPicker}
		case key.Matches(msg, m.Keys.Comment):
			return OpenTextInput{Context: TextComment}
		case key.Matches(msg, m.Keys.EditTitle):
			return OpenTextInput{Context: TextEditTitle}
		case key.Matches(msg, m.Keys.EditDesc):
			return OpenTextInput{Context: TextEditDescription}
		case key.Matches(msg, m.Keys.Archive):
			return OpenConfirmArchive{}
		case key.Matches(msg, m.Keys.Open):
			return OpenBrowser{}
		case key.Matches(msg, m.Keys.Yank):
			return YankID{}
		case key.Matches(msg, m.Keys.ToggleSelect):
			return ToggleSelect{}
		case key.Matches(msg, m.Keys.ClearSelection):
			return ClearSelection{}
		case key.Matches(msg, m.Keys.BulkMenu):
			return OpenBulkMenu{}
		case key.Matches(msg, m.Keys.Escape):
			return ClearSelection{}
		}
	}

	return Noop{}
}

// runeAction turns printable input into TypeRune.
func runeAction(msg tea.KeyMsg) Action {
	switch msg.Type {
	case tea.KeySpace:
		return TypeRune{Rune: ' '}
	case tea.KeyRunes:
		if len(msg.Runes) > 0 {
			return TypeRune{Rune: msg.Runes[0]}
		}
	}
	return Noop{}
}
