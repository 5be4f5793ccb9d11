package session

import (
	"fmt"

	"github.com/mfell/lariat/internal/linear"
	"github.com/mfell/lariat/internal/log"
)

// Dispatch applies one action to the state and returns the effects it
// produced. It performs no I/O and takes no locks; the caller owns the
// state and hands the effects to the Runner.
func Dispatch(s *State, a Action) []Effect {
	switch act := a.(type) {
	case Noop:
		return nil

	case Quit:
		s.Quitting = true
		return nil

	case Tick:
		s.Notifications.Tick(act.Now)
		return nil

	case EffectDone:
		return s.completeEffect(act)

	case MoveUp:
		return s.moveCursor(-1)

	case MoveDown:
		return s.moveCursor(1)

	case ScrollUp:
		s.DetailScroll = clamp(s.DetailScroll-1, 0, 1<<30)
		return nil

	case ScrollDown:
		s.DetailScroll++
		return nil

	case FocusNext:
		return s.setFocus(s.Focus.Next())

	case FocusPrev:
		return s.setFocus(s.Focus.Prev())

	case FocusZone:
		return s.setFocus(act.Zone)

	case Select:
		return s.selectCurrent()

	case OpenPicker:
		return s.openPicker(act.Kind, false)

	case OpenTextInput:
		return s.openTextInput(act.Context)

	case OpenConfirmArchive:
		issue := s.CurrentIssue()
		if issue == nil {
			s.Notifications.Notify(NotifyInfo, "No issue selected")
			return nil
		}
		s.openOverlay(&Overlay{
			Kind:       OverlayConfirmArchive,
			IssueID:    issue.ID,
			IssueIdent: issue.Identifier,
		})
		return nil

	case OpenCreateForm:
		if s.teamID == "" {
			s.Notifications.Notify(NotifyInfo, "Select a team first")
			return nil
		}
		s.openOverlay(&Overlay{Kind: OverlayCreateIssue, Form: NewCreateForm()})
		return nil

	case OpenBulkMenu:
		if s.Selection.Len() == 0 {
			s.Notifications.Notify(NotifyInfo, "No issues selected")
			return nil
		}
		s.openOverlay(&Overlay{Kind: OverlayBulkMenu})
		return nil

	case OpenHelp:
		s.openOverlay(&Overlay{Kind: OverlayHelp})
		return nil

	case ToggleSelect:
		return s.toggleSelect()

	case ClearSelection:
		s.Selection.Clear()
		return nil

	case ToggleHideDone:
		s.HideDone = !s.HideDone
		s.UIPrefsDirty = true
		s.applyFilters()
		return s.fetchCommentsIfNeeded()

	case CycleGroupBy:
		s.GroupBy = s.GroupBy.Cycle()
		s.UIPrefsDirty = true
		s.applyFilters()
		return nil

	case Refresh:
		return s.refreshIssues()

	case OpenBrowser:
		issue := s.CurrentIssue()
		if issue == nil || issue.URL == "" {
			s.Notifications.Notify(NotifyInfo, "No issue selected")
			return nil
		}
		return []Effect{{Kind: EffectOpenURL, Text: issue.URL, IssueIdent: issue.Identifier}}

	case YankID:
		issue := s.CurrentIssue()
		if issue == nil {
			s.Notifications.Notify(NotifyInfo, "No issue selected")
			return nil
		}
		return []Effect{{Kind: EffectCopyText, Text: issue.Identifier, IssueIdent: issue.Identifier}}

	case DismissNotification:
		s.Notifications.Dismiss()
		return nil

	case TypeRune, Backspace, DeleteForward, CursorLeft, CursorRight, CursorHome, CursorEnd:
		s.editOverlayText(a)
		return nil

	case NextField:
		if s.Overlay != nil && s.Overlay.Form != nil {
			s.Overlay.Form.Field = (s.Overlay.Form.Field + 1) % formFieldCount
		}
		return nil

	case PrevField:
		if s.Overlay != nil && s.Overlay.Form != nil {
			s.Overlay.Form.Field = (s.Overlay.Form.Field + formFieldCount - 1) % formFieldCount
		}
		return nil

	case Confirm:
		return s.confirmOverlay()

	case Cancel:
		s.cancelOverlay()
		return nil

	default:
		log.Warn(log.CatSession, "unhandled action", "type", fmt.Sprintf("%T", a))
		return nil
	}
}

// Bootstrap returns the effects that start a fresh session: the team list
// behind a loading toast, and the authenticated user silently.
func (s *State) Bootstrap() []Effect {
	notifID := s.Notifications.Notify(NotifyLoading, "Loading teams...")
	teams := Effect{Kind: EffectLoadTeams, NotifID: notifID}
	viewer := Effect{Kind: EffectLoadViewer}
	s.pending[teams.Key()] = notifID
	s.pending[viewer.Key()] = 0
	return []Effect{teams, viewer}
}

// moveCursor moves the cursor of the focused panel, clamped at both ends.
// There is no wraparound: moving past an edge stays on the edge.
func (s *State) moveCursor(delta int) []Effect {
	if s.Overlay != nil {
		s.movePickerCursor(delta)
		return nil
	}

	switch s.Focus {
	case ZoneTeams:
		s.TeamIndex = clamp(s.TeamIndex+delta, 0, len(s.Teams)-1)
	case ZoneProjects:
		s.ProjectIndex = clamp(s.ProjectIndex+delta, 0, len(s.Projects)) // index 0 is "All issues"
	case ZoneIssues:
		prev := s.Cursor
		s.Cursor = clamp(s.Cursor+delta, 0, len(s.Visible)-1)
		if s.Cursor != prev {
			s.DetailScroll = 0
			return s.fetchCommentsIfNeeded()
		}
	case ZoneDetail:
		s.DetailScroll = clamp(s.DetailScroll+delta, 0, 1<<30)
	}
	return nil
}

func (s *State) movePickerCursor(delta int) {
	o := s.Overlay
	count := s.overlayOptionCount()

	if o.Kind == OverlayCreateIssue && o.Form != nil {
		// Up and down move between form fields.
		if delta > 0 {
			o.Form.Field = (o.Form.Field + 1) % formFieldCount
		} else {
			o.Form.Field = (o.Form.Field + formFieldCount - 1) % formFieldCount
		}
		return
	}

	if count > 0 {
		o.Index = clamp(o.Index+delta, 0, count-1)
	}
}

// overlayOptionCount returns how many rows the open picker has.
func (s *State) overlayOptionCount() int {
	if s.Overlay == nil {
		return 0
	}
	switch s.Overlay.Kind {
	case OverlayStatusPicker:
		return len(s.Catalog.States)
	case OverlayPriorityPicker:
		return len(linear.Priorities)
	case OverlayLabelPicker:
		return len(s.Catalog.Labels)
	case OverlayProjectPicker:
		return len(s.Projects) + 1 // "No project" first
	case OverlayAssigneePicker:
		return len(s.Catalog.Users) + 1 // "Unassigned" first
	case OverlayBulkMenu:
		return int(bulkActionCount)
	default:
		return 0
	}
}

func (s *State) setFocus(z Zone) []Effect {
	if s.Overlay != nil {
		return nil
	}
	s.Focus = z
	if z == ZoneDetail {
		return s.fetchCommentsIfNeeded()
	}
	return nil
}

func (s *State) selectCurrent() []Effect {
	if s.Overlay != nil {
		return nil
	}

	switch s.Focus {
	case ZoneTeams:
		team := s.CurrentTeam()
		if team == nil {
			return nil
		}
		return s.selectTeam(*team)

	case ZoneProjects:
		project := s.CurrentProject()
		if project == nil {
			s.projectID = ""
		} else {
			s.projectID = project.ID
		}
		s.Focus = ZoneIssues
		return s.refreshIssues()

	case ZoneIssues:
		if s.CurrentIssue() == nil {
			return nil
		}
		s.Focus = ZoneDetail
		return s.fetchCommentsIfNeeded()
	}
	return nil
}

// selectTeam loads everything scoped to the team: projects, issues, and
// the picker catalogs.
func (s *State) selectTeam(team linear.Team) []Effect {
	if team.ID == s.teamID {
		return s.refreshIssues()
	}

	s.teamID = team.ID
	s.projectID = ""
	s.Projects = nil
	s.ProjectIndex = 0
	s.Issues = nil
	s.Visible = nil
	s.Cursor = 0
	s.Catalog = Catalog{}
	s.Selection.Clear()
	s.Comments.Flush()
	s.Focus = ZoneIssues

	effects := s.refreshIssues()
	for _, eff := range []Effect{
		{Kind: EffectLoadProjects, TeamID: team.ID},
		{Kind: EffectLoadStates, TeamID: team.ID},
		{Kind: EffectLoadLabels, TeamID: team.ID},
		{Kind: EffectLoadUsers, TeamID: team.ID},
	} {
		if s.Pending(eff.Key()) {
			continue
		}
		s.pending[eff.Key()] = 0
		effects = append(effects, eff)
	}
	return effects
}

func (s *State) refreshIssues() []Effect {
	if s.teamID == "" {
		s.Notifications.Notify(NotifyInfo, "Select a team first")
		return nil
	}

	eff := Effect{
		Kind:   EffectRefreshIssues,
		Filter: linear.IssueFilter{TeamID: s.teamID, ProjectID: s.projectID},
	}
	if s.Pending(eff.Key()) {
		log.Debug(log.CatSession, "refresh already in flight", "key", eff.Key())
		return nil
	}

	eff.NotifID = s.Notifications.Notify(NotifyLoading, "Refreshing issues...")
	s.pending[eff.Key()] = eff.NotifID
	return []Effect{eff}
}

func (s *State) toggleSelect() []Effect {
	if s.Overlay != nil && s.Overlay.Kind == OverlayLabelPicker {
		// Space in the label picker toggles the highlighted label.
		if s.Overlay.Index < len(s.Catalog.Labels) {
			id := s.Catalog.Labels[s.Overlay.Index].ID
			s.Overlay.Checked[id] = !s.Overlay.Checked[id]
		}
		return nil
	}

	issue := s.CurrentIssue()
	if issue == nil {
		return nil
	}
	s.Selection.Toggle(issue.ID)
	return nil
}

// fetchCommentsIfNeeded issues a comment fetch for the current issue when
// the cache has nothing fresh and no fetch is running.
func (s *State) fetchCommentsIfNeeded() []Effect {
	issue := s.CurrentIssue()
	if issue == nil {
		return nil
	}
	if !s.Comments.NeedsFetch(issue.ID) {
		return nil
	}
	if !s.Comments.MarkLoading(issue.ID) {
		return nil
	}

	eff := Effect{Kind: EffectFetchComments, IssueID: issue.ID, IssueIdent: issue.Identifier}
	s.pending[eff.Key()] = 0
	return []Effect{eff}
}

// --- overlays ---

// openOverlay snapshots the focused zone so it can be restored on close.
func (s *State) openOverlay(o *Overlay) {
	if s.Overlay == nil {
		s.returnFocus = s.Focus
	}
	s.Overlay = o
}

// closeOverlay restores the focus that was active before the overlay.
func (s *State) closeOverlay() {
	s.Overlay = nil
	s.Focus = s.returnFocus
}

func (s *State) cancelOverlay() {
	if s.Overlay == nil {
		return
	}

	if s.Overlay.Kind == OverlayTextInput {
		// Cancelling a live search or filter restores the previous query.
		switch s.Overlay.Text {
		case TextSearch:
			s.SearchQuery = s.Overlay.prevQuery
			s.applyFilters()
		case TextFilter:
			s.FilterQuery = s.Overlay.prevQuery
			s.applyFilters()
		}
	}

	s.closeOverlay()
}

func (s *State) openPicker(kind OverlayKind, bulk bool) []Effect {
	var issueID, issueIdent string
	if !bulk {
		issue := s.CurrentIssue()
		if issue == nil {
			s.Notifications.Notify(NotifyInfo, "No issue selected")
			return nil
		}
		issueID = issue.ID
		issueIdent = issue.Identifier
	}

	o := &Overlay{
		Kind:       kind,
		IssueID:    issueID,
		IssueIdent: issueIdent,
		Bulk:       bulk,
	}

	// Preselect the issue's current value where that makes sense.
	if !bulk {
		issue := s.CurrentIssue()
		switch kind {
		case OverlayStatusPicker:
			for i, st := range s.Catalog.States {
				if st.ID == issue.State.ID {
					o.Index = i
					break
				}
			}
		case OverlayPriorityPicker:
			for i, p := range linear.Priorities {
				if p == issue.Priority {
					o.Index = i
					break
				}
			}
		case OverlayLabelPicker:
			o.Checked = make(map[string]bool, len(issue.Labels.Nodes))
			for _, label := range issue.Labels.Nodes {
				o.Checked[label.ID] = true
			}
		case OverlayProjectPicker:
			if issue.Project != nil {
				for i, p := range s.Projects {
					if p.ID == issue.Project.ID {
						o.Index = i + 1
						break
					}
				}
			}
		case OverlayAssigneePicker:
			if issue.Assignee != nil {
				for i, u := range s.Catalog.Users {
					if u.ID == issue.Assignee.ID {
						o.Index = i + 1
						break
					}
				}
			}
		}
	}
	if kind == OverlayLabelPicker && o.Checked == nil {
		o.Checked = make(map[string]bool)
	}

	s.openOverlay(o)
	return nil
}

func (s *State) openTextInput(ctx TextContext) []Effect {
	o := &Overlay{Kind: OverlayTextInput, Text: ctx}

	switch ctx {
	case TextSearch:
		o.Input = NewTextField(s.SearchQuery)
		o.prevQuery = s.SearchQuery
	case TextFilter:
		o.Input = NewTextField(s.FilterQuery)
		o.prevQuery = s.FilterQuery
	case TextComment, TextEditTitle, TextEditDescription:
		issue := s.CurrentIssue()
		if issue == nil {
			s.Notifications.Notify(NotifyInfo, "No issue selected")
			return nil
		}
		o.IssueID = issue.ID
		o.IssueIdent = issue.Identifier
		switch ctx {
		case TextEditTitle:
			o.Input = NewTextField(issue.Title)
		case TextEditDescription:
			o.Input = NewTextField(issue.Description)
		default:
			o.Input = NewTextField("")
		}
	}

	s.openOverlay(o)
	return nil
}

// editOverlayText routes a typing action into whichever text field the
// open overlay exposes. Search and filter queries apply live.
func (s *State) editOverlayText(a Action) {
	if s.Overlay == nil {
		return
	}

	var field *TextField
	switch {
	case s.Overlay.Kind == OverlayTextInput:
		field = &s.Overlay.Input
	case s.Overlay.Kind == OverlayCreateIssue && s.Overlay.Form != nil:
		form := s.Overlay.Form
		field = form.FocusedInput()
		if field == nil {
			// Left and right cycle the value of choice fields.
			switch a.(type) {
			case CursorLeft:
				s.cycleFormChoice(form, -1)
			case CursorRight:
				s.cycleFormChoice(form, 1)
			}
			return
		}
	default:
		return
	}

	switch act := a.(type) {
	case TypeRune:
		field.Insert(act.Rune)
	case Backspace:
		field.Backspace()
	case DeleteForward:
		field.DeleteForward()
	case CursorLeft:
		field.Left()
	case CursorRight:
		field.Right()
	case CursorHome:
		field.Home()
	case CursorEnd:
		field.End()
	}

	if s.Overlay.Kind == OverlayTextInput {
		switch s.Overlay.Text {
		case TextSearch:
			s.SearchQuery = s.Overlay.Input.Value()
			s.applyFilters()
		case TextFilter:
			s.FilterQuery = s.Overlay.Input.Value()
			s.applyFilters()
		}
	}
}

func (s *State) cycleFormChoice(form *CreateForm, delta int) {
	switch form.Field {
	case FormFieldPriority:
		for i, p := range linear.Priorities {
			if p == form.Priority {
				next := (i + delta + len(linear.Priorities)) % len(linear.Priorities)
				form.Priority = linear.Priorities[next]
				return
			}
		}
		form.Priority = linear.Priorities[0]
	case FormFieldState:
		if len(s.Catalog.States) == 0 {
			return
		}
		// -1 means team default; the cycle includes it.
		n := len(s.Catalog.States) + 1
		cur := form.StateIndex + 1
		form.StateIndex = (cur+delta+n)%n - 1
	}
}
