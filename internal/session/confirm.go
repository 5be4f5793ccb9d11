package session

import (
	"fmt"
	"strings"

	"github.com/mfell/lariat/internal/linear"
)

// confirmOverlay submits the open overlay. Pickers close and produce the
// matching update effect; invalid submissions keep the overlay open with
// an error notification.
func (s *State) confirmOverlay() []Effect {
	o := s.Overlay
	if o == nil {
		return nil
	}

	switch o.Kind {
	case OverlayStatusPicker:
		if o.Index >= len(s.Catalog.States) {
			s.closeOverlay()
			return nil
		}
		state := s.Catalog.States[o.Index]
		patch := linear.IssuePatch{StateID: &state.ID}
		return s.submitPatch(o, patch, "status", state.Name)

	case OverlayPriorityPicker:
		if o.Index >= len(linear.Priorities) {
			s.closeOverlay()
			return nil
		}
		p := linear.Priorities[o.Index]
		patch := linear.IssuePatch{Priority: &p}
		return s.submitPatch(o, patch, "priority", linear.PriorityLabel(p))

	case OverlayLabelPicker:
		ids := make([]string, 0, len(o.Checked))
		for id, on := range o.Checked {
			if on {
				ids = append(ids, id)
			}
		}
		patch := linear.IssuePatch{LabelIDs: &ids}
		return s.submitPatch(o, patch, "labels", fmt.Sprintf("%d labels", len(ids)))

	case OverlayProjectPicker:
		var projectID, name string
		if o.Index == 0 {
			projectID, name = "", "no project"
		} else if o.Index-1 < len(s.Projects) {
			projectID, name = s.Projects[o.Index-1].ID, s.Projects[o.Index-1].Name
		} else {
			s.closeOverlay()
			return nil
		}
		patch := linear.IssuePatch{ProjectID: &projectID}
		return s.submitPatch(o, patch, "project", name)

	case OverlayAssigneePicker:
		var userID, name string
		if o.Index == 0 {
			userID, name = "", "unassigned"
		} else if o.Index-1 < len(s.Catalog.Users) {
			u := s.Catalog.Users[o.Index-1]
			userID, name = u.ID, u.DisplayName
			if name == "" {
				name = u.Name
			}
		} else {
			s.closeOverlay()
			return nil
		}
		patch := linear.IssuePatch{AssigneeID: &userID}
		return s.submitPatch(o, patch, "assignee", name)

	case OverlayTextInput:
		return s.confirmTextInput(o)

	case OverlayConfirmArchive:
		s.closeOverlay()
		return s.submitArchive(o.IssueID, o.IssueIdent)

	case OverlayCreateIssue:
		return s.confirmCreate(o)

	case OverlayBulkMenu:
		return s.confirmBulkMenu(o)

	case OverlayHelp:
		s.closeOverlay()
		return nil
	}

	s.closeOverlay()
	return nil
}

// submitPatch turns a picker choice into update effects, either for the
// snapshot issue or fanned out over the bulk selection.
func (s *State) submitPatch(o *Overlay, patch linear.IssuePatch, field, value string) []Effect {
	bulk := o.Bulk
	issueID, issueIdent := o.IssueID, o.IssueIdent
	s.closeOverlay()

	if bulk {
		return s.bulkUpdate(patch, field)
	}

	eff := Effect{
		Kind:       EffectUpdateIssue,
		IssueID:    issueID,
		IssueIdent: issueIdent,
		Patch:      patch,
	}
	if s.Pending(eff.Key()) {
		s.Notifications.Notify(NotifyInfo, fmt.Sprintf("Update already in progress for %s", issueIdent))
		return nil
	}

	eff.NotifID = s.Notifications.Notify(NotifyLoading,
		fmt.Sprintf("Setting %s of %s to %s...", field, issueIdent, value))
	s.pending[eff.Key()] = eff.NotifID
	return []Effect{eff}
}

func (s *State) confirmTextInput(o *Overlay) []Effect {
	value := o.Input.Value()

	switch o.Text {
	case TextSearch, TextFilter:
		// Queries were applied live while typing; confirming just closes.
		s.closeOverlay()
		return nil

	case TextComment:
		if strings.TrimSpace(value) == "" {
			s.Notifications.Notify(NotifyError, "Comment cannot be empty")
			return nil // overlay stays open
		}
		issueID, issueIdent := o.IssueID, o.IssueIdent
		s.closeOverlay()

		eff := Effect{
			Kind:       EffectCreateComment,
			IssueID:    issueID,
			IssueIdent: issueIdent,
			Body:       value,
		}
		if s.Pending(eff.Key()) {
			s.Notifications.Notify(NotifyInfo, fmt.Sprintf("Comment already in progress for %s", issueIdent))
			return nil
		}
		eff.NotifID = s.Notifications.Notify(NotifyLoading, fmt.Sprintf("Adding comment to %s...", issueIdent))
		s.pending[eff.Key()] = eff.NotifID
		return []Effect{eff}

	case TextEditTitle:
		if strings.TrimSpace(value) == "" {
			s.Notifications.Notify(NotifyError, "Title cannot be empty")
			return nil
		}
		patch := linear.IssuePatch{Title: &value}
		return s.submitPatch(o, patch, "title", "new title")

	case TextEditDescription:
		patch := linear.IssuePatch{Description: &value}
		return s.submitPatch(o, patch, "description", "new text")
	}

	s.closeOverlay()
	return nil
}

func (s *State) confirmCreate(o *Overlay) []Effect {
	form := o.Form
	if form == nil {
		s.closeOverlay()
		return nil
	}
	title := strings.TrimSpace(form.Title.Value())
	if title == "" {
		s.Notifications.Notify(NotifyError, "Title is required")
		return nil // form stays open
	}

	create := linear.IssueCreate{
		TeamID:      s.teamID,
		Title:       title,
		Description: form.Description.Value(),
		Priority:    form.Priority,
	}
	if form.StateIndex >= 0 && form.StateIndex < len(s.Catalog.States) {
		create.StateID = s.Catalog.States[form.StateIndex].ID
	}
	s.closeOverlay()

	eff := Effect{Kind: EffectCreateIssue, Create: create}
	if s.Pending(eff.Key()) {
		s.Notifications.Notify(NotifyInfo, "Issue creation already in progress")
		return nil
	}
	eff.NotifID = s.Notifications.Notify(NotifyLoading, "Creating issue...")
	s.pending[eff.Key()] = eff.NotifID
	return []Effect{eff}
}

// confirmBulkMenu either chains into a bulk-scoped picker or, for archive,
// fans out immediately.
func (s *State) confirmBulkMenu(o *Overlay) []Effect {
	switch BulkAction(o.Index) {
	case BulkSetStatus:
		s.Overlay = &Overlay{Kind: OverlayStatusPicker, Bulk: true}
	case BulkSetPriority:
		s.Overlay = &Overlay{Kind: OverlayPriorityPicker, Bulk: true}
	case BulkSetAssignee:
		s.Overlay = &Overlay{Kind: OverlayAssigneePicker, Bulk: true}
	case BulkMoveProject:
		s.Overlay = &Overlay{Kind: OverlayProjectPicker, Bulk: true}
	case BulkArchive:
		s.closeOverlay()
		return s.bulkArchive()
	default:
		s.closeOverlay()
	}
	return nil
}

// bulkUpdate fans one patch out over the selection, one effect per issue.
// Issues with an update already in flight are skipped.
func (s *State) bulkUpdate(patch linear.IssuePatch, field string) []Effect {
	ids := s.Selection.IDs()
	if len(ids) == 0 {
		// The selection can be pruned out from under an open bulk menu by
		// a refresh completion. Nothing to do, and nothing to announce.
		return nil
	}

	effects := make([]Effect, 0, len(ids))
	for _, id := range ids {
		eff := Effect{Kind: EffectUpdateIssue, IssueID: id, Patch: patch}
		if issue := s.issueByID(id); issue != nil {
			eff.IssueIdent = issue.Identifier
		}
		if s.Pending(eff.Key()) {
			continue
		}
		effects = append(effects, eff)
	}
	if len(effects) == 0 {
		s.Notifications.Notify(NotifyInfo, "Updates already in progress for the selection")
		return nil
	}

	notifID := s.Notifications.Notify(NotifyLoading,
		fmt.Sprintf("Updating %s on %d issues...", field, len(effects)))
	s.Bulk = NewBulkOp("Updated", notifID, len(effects))
	for i := range effects {
		effects[i].BulkID = s.Bulk.ID
		s.pending[effects[i].Key()] = 0
	}
	return effects
}

func (s *State) bulkArchive() []Effect {
	ids := s.Selection.IDs()
	if len(ids) == 0 {
		return nil
	}

	effects := make([]Effect, 0, len(ids))
	for _, id := range ids {
		eff := Effect{Kind: EffectArchiveIssue, IssueID: id}
		if issue := s.issueByID(id); issue != nil {
			eff.IssueIdent = issue.Identifier
		}
		if s.Pending(eff.Key()) {
			continue
		}
		effects = append(effects, eff)
	}
	if len(effects) == 0 {
		s.Notifications.Notify(NotifyInfo, "Archive already in progress for the selection")
		return nil
	}

	notifID := s.Notifications.Notify(NotifyLoading,
		fmt.Sprintf("Archiving %d issues...", len(effects)))
	s.Bulk = NewBulkOp("Archived", notifID, len(effects))
	for i := range effects {
		effects[i].BulkID = s.Bulk.ID
		s.pending[effects[i].Key()] = 0
	}
	return effects
}

func (s *State) submitArchive(issueID, issueIdent string) []Effect {
	eff := Effect{Kind: EffectArchiveIssue, IssueID: issueID, IssueIdent: issueIdent}
	if s.Pending(eff.Key()) {
		s.Notifications.Notify(NotifyInfo, fmt.Sprintf("Archive already in progress for %s", issueIdent))
		return nil
	}
	eff.NotifID = s.Notifications.Notify(NotifyLoading, fmt.Sprintf("Archiving %s...", issueIdent))
	s.pending[eff.Key()] = eff.NotifID
	return []Effect{eff}
}
