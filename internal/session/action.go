package session

import "time"

// Action is one step of session input: a mapped key, a timer tick, or the
// completion of remote work. Dispatch consumes exactly one Action at a time.
type Action interface{ isAction() }

// Noop is produced for keys with no binding in the current context.
type Noop struct{}

// Quit requests shutdown.
type Quit struct{}

// MoveUp moves the cursor of the focused panel up one entry.
type MoveUp struct{}

// MoveDown moves the cursor of the focused panel down one entry.
type MoveDown struct{}

// ScrollUp scrolls the detail panel up.
type ScrollUp struct{}

// ScrollDown scrolls the detail panel down.
type ScrollDown struct{}

// FocusNext advances focus through the zone ring.
type FocusNext struct{}

// FocusPrev moves focus backwards through the zone ring.
type FocusPrev struct{}

// FocusZone jumps focus to a specific zone.
type FocusZone struct{ Zone Zone }

// Select activates the entry under the cursor: loads a team's or project's
// issues, or focuses the detail panel from the issue list.
type Select struct{}

// OpenPicker opens one of the single-choice overlays for the current issue.
type OpenPicker struct{ Kind OverlayKind }

// OpenTextInput opens a text overlay for the given context.
type OpenTextInput struct{ Context TextContext }

// OpenConfirmArchive asks for confirmation before archiving.
type OpenConfirmArchive struct{}

// OpenCreateForm opens the new-issue form.
type OpenCreateForm struct{}

// OpenBulkMenu opens the bulk action menu for the multi-selection.
type OpenBulkMenu struct{}

// OpenHelp shows the key binding reference.
type OpenHelp struct{}

// ToggleSelect toggles the current issue in the multi-selection.
type ToggleSelect struct{}

// ClearSelection empties the multi-selection.
type ClearSelection struct{}

// ToggleHideDone hides or shows completed and canceled issues.
type ToggleHideDone struct{}

// CycleGroupBy steps through the grouping modes.
type CycleGroupBy struct{}

// Refresh reloads the issue list.
type Refresh struct{}

// OpenBrowser opens the current issue in the web browser.
type OpenBrowser struct{}

// YankID copies the current issue identifier to the clipboard.
type YankID struct{}

// DismissNotification removes the oldest visible notification.
type DismissNotification struct{}

// Typing inside an overlay.
type (
	TypeRune      struct{ Rune rune }
	Backspace     struct{}
	DeleteForward struct{}
	CursorLeft    struct{}
	CursorRight   struct{}
	CursorHome    struct{}
	CursorEnd     struct{}
)

// NextField and PrevField move between create-form fields.
type (
	NextField struct{}
	PrevField struct{}
)

// Confirm submits the open overlay.
type Confirm struct{}

// Cancel closes the open overlay without submitting.
type Cancel struct{}

// Tick drives notification expiry. Now is injected for testability.
type Tick struct{ Now time.Time }

func (Noop) isAction()                {}
func (Quit) isAction()                {}
func (MoveUp) isAction()              {}
func (MoveDown) isAction()            {}
func (ScrollUp) isAction()            {}
func (ScrollDown) isAction()          {}
func (FocusNext) isAction()           {}
func (FocusPrev) isAction()           {}
func (FocusZone) isAction()           {}
func (Select) isAction()              {}
func (OpenPicker) isAction()          {}
func (OpenTextInput) isAction()       {}
func (OpenConfirmArchive) isAction()  {}
func (OpenCreateForm) isAction()      {}
func (OpenBulkMenu) isAction()        {}
func (OpenHelp) isAction()            {}
func (ToggleSelect) isAction()        {}
func (ClearSelection) isAction()      {}
func (ToggleHideDone) isAction()      {}
func (CycleGroupBy) isAction()        {}
func (Refresh) isAction()             {}
func (OpenBrowser) isAction()         {}
func (YankID) isAction()              {}
func (DismissNotification) isAction() {}
func (TypeRune) isAction()            {}
func (Backspace) isAction()           {}
func (DeleteForward) isAction()       {}
func (CursorLeft) isAction()          {}
func (CursorRight) isAction()         {}
func (CursorHome) isAction()          {}
func (CursorEnd) isAction()           {}
func (NextField) isAction()           {}
func (PrevField) isAction()           {}
func (Confirm) isAction()             {}
func (Cancel) isAction()              {}
func (Tick) isAction()                {}
func (EffectDone) isAction()          {}
