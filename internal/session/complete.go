package session

import (
	"fmt"

	"github.com/mfell/lariat/internal/linear"
	"github.com/mfell/lariat/internal/log"
)

// completeEffect applies the result of finished remote work. Completions
// always arrive after the dispatch that created them, on the same
// goroutine, so no ordering guard is needed here.
func (s *State) completeEffect(d EffectDone) []Effect {
	delete(s.pending, d.Effect.Key())

	if d.Effect.BulkID != "" {
		return s.completeBulkEffect(d)
	}

	switch d.Effect.Kind {
	case EffectRefreshIssues:
		return s.completeRefresh(d)

	case EffectUpdateIssue:
		if d.Err != nil {
			s.Notifications.Resolve(d.Effect.NotifID, NotifyError, failureMessage(d))
			return nil
		}
		if d.Issue != nil {
			s.replaceIssue(*d.Issue)
		}
		s.Notifications.Resolve(d.Effect.NotifID, NotifySuccess,
			fmt.Sprintf("Updated %s of %s", d.Effect.Patch.Summary(), d.Effect.IssueIdent))
		return nil

	case EffectCreateIssue:
		if d.Err != nil {
			s.Notifications.Resolve(d.Effect.NotifID, NotifyError, failureMessage(d))
			return nil
		}
		message := "Created issue"
		if d.Issue != nil {
			s.Issues = append([]linear.Issue{*d.Issue}, s.Issues...)
			s.applyFilters()
			s.moveCursorTo(d.Issue.ID)
			message = fmt.Sprintf("Created %s", d.Issue.Identifier)
		}
		s.Notifications.Resolve(d.Effect.NotifID, NotifySuccess, message)
		return nil

	case EffectArchiveIssue:
		if d.Err != nil {
			s.Notifications.Resolve(d.Effect.NotifID, NotifyError, failureMessage(d))
			return nil
		}
		s.removeIssue(d.Effect.IssueID)
		s.Notifications.Resolve(d.Effect.NotifID, NotifySuccess,
			fmt.Sprintf("Archived %s", d.Effect.IssueIdent))
		return s.fetchCommentsIfNeeded()

	case EffectCreateComment:
		if d.Err != nil {
			s.Notifications.Resolve(d.Effect.NotifID, NotifyError, failureMessage(d))
			return nil
		}
		if len(d.Comments) == 1 {
			s.Comments.Append(d.Effect.IssueID, d.Comments[0])
		}
		s.Notifications.Resolve(d.Effect.NotifID, NotifySuccess,
			fmt.Sprintf("Comment added to %s", d.Effect.IssueIdent))
		return nil

	case EffectFetchComments:
		if d.Err != nil {
			s.Comments.Fail(d.Effect.IssueID)
			s.Notifications.Notify(NotifyError,
				fmt.Sprintf("Failed to load comments for %s: %s", d.Effect.IssueIdent, linear.UserMessage(d.Err)))
			return nil
		}
		// Results for issues the cursor has left are still cached; the
		// panel just will not show them until the issue is viewed again.
		s.Comments.Store(d.Effect.IssueID, d.Comments)
		return nil

	case EffectLoadViewer:
		if d.Err != nil {
			// The session works without knowing who is logged in; the
			// header simply stays anonymous.
			log.ErrorErr(log.CatSession, "viewer load failed", d.Err)
			return nil
		}
		s.Viewer = d.Viewer
		return nil

	case EffectLoadTeams:
		if d.Err != nil {
			s.Notifications.Resolve(d.Effect.NotifID, NotifyError, failureMessage(d))
			return nil
		}
		s.Teams = d.Teams
		s.TeamIndex = clamp(s.TeamIndex, 0, len(s.Teams)-1)
		s.Notifications.Resolve(d.Effect.NotifID, NotifySuccess,
			fmt.Sprintf("Loaded %d teams", len(d.Teams)))
		// Auto-select the configured default team on first load.
		if s.teamID == "" && s.DefaultTeamKey != "" {
			for i, team := range s.Teams {
				if team.Key == s.DefaultTeamKey {
					s.TeamIndex = i
					return s.selectTeam(team)
				}
			}
		}
		return nil

	case EffectLoadProjects:
		if d.Err != nil {
			log.ErrorErr(log.CatSession, "project load failed", d.Err)
			return nil
		}
		if s.staleTeamScope(d.Effect) {
			return nil
		}
		s.Projects = d.Projects
		s.ProjectIndex = clamp(s.ProjectIndex, 0, len(s.Projects))
		return nil

	case EffectLoadStates:
		if d.Err != nil {
			log.ErrorErr(log.CatSession, "state load failed", d.Err)
			return nil
		}
		if s.staleTeamScope(d.Effect) {
			return nil
		}
		s.Catalog.States = d.States
		return nil

	case EffectLoadLabels:
		if d.Err != nil {
			log.ErrorErr(log.CatSession, "label load failed", d.Err)
			return nil
		}
		if s.staleTeamScope(d.Effect) {
			return nil
		}
		s.Catalog.Labels = d.Labels
		return nil

	case EffectLoadUsers:
		if d.Err != nil {
			log.ErrorErr(log.CatSession, "user load failed", d.Err)
			return nil
		}
		if s.staleTeamScope(d.Effect) {
			return nil
		}
		s.Catalog.Users = d.Users
		return nil

	case EffectCopyText:
		if d.Err != nil {
			s.Notifications.Notify(NotifyError, "Clipboard copy failed")
			return nil
		}
		s.Notifications.Notify(NotifySuccess, fmt.Sprintf("Copied %s", d.Effect.Text))
		return nil

	case EffectOpenURL:
		if d.Err != nil {
			s.Notifications.Notify(NotifyError, "Could not open browser")
		}
		return nil
	}

	return nil
}

// staleTeamScope reports whether a team-scoped load completed after the
// user moved on to a different team. Late results must never replace the
// current team's catalog: a picker would offer options whose ids belong
// to the old team.
func (s *State) staleTeamScope(eff Effect) bool {
	if eff.TeamID == s.teamID {
		return false
	}
	log.Debug(log.CatSession, "dropping load result for old team",
		"kind", eff.Kind.String(), "team", eff.TeamID)
	return true
}

func (s *State) completeRefresh(d EffectDone) []Effect {
	if d.Err != nil {
		s.Notifications.Resolve(d.Effect.NotifID, NotifyError, failureMessage(d))
		return nil
	}

	// Stale results from an older scope are dropped: only the currently
	// selected team and project may replace the list.
	if d.Effect.Filter.TeamID != s.teamID || d.Effect.Filter.ProjectID != s.projectID {
		log.Debug(log.CatSession, "dropping refresh result for old scope",
			"team", d.Effect.Filter.TeamID, "project", d.Effect.Filter.ProjectID)
		s.Notifications.Resolve(d.Effect.NotifID, NotifyInfo, "Discarded results for a previous view")
		return nil
	}

	s.Issues = d.Issues
	s.applyFilters()
	// Everything the detail panel cached may now be outdated. Stale
	// entries keep rendering until their refetch lands.
	s.Comments.InvalidateAll()
	s.Notifications.Resolve(d.Effect.NotifID, NotifySuccess,
		fmt.Sprintf("Loaded %d issues", len(d.Issues)))
	return s.fetchCommentsIfNeeded()
}

// completeBulkEffect feeds one per-issue completion into the aggregate.
func (s *State) completeBulkEffect(d EffectDone) []Effect {
	if s.Bulk == nil || s.Bulk.ID != d.Effect.BulkID {
		// A summary was already produced or the op was superseded; apply
		// the payload silently.
		log.Debug(log.CatSession, "late bulk completion", "bulk", d.Effect.BulkID)
		s.applyBulkPayload(d)
		return nil
	}

	s.Bulk.Record(d.Err)
	if d.Err != nil {
		log.ErrorErr(log.CatEffect, "bulk item failed", d.Err, "issue", d.Effect.IssueIdent)
	}
	s.applyBulkPayload(d)

	if !s.Bulk.Finished() {
		return nil
	}

	kind := NotifySuccess
	if s.Bulk.Failed > 0 {
		kind = NotifyError
	}
	s.Notifications.Resolve(s.Bulk.NotifID, kind, s.Bulk.Summary())
	s.Selection.Clear()
	s.Bulk = nil
	return s.fetchCommentsIfNeeded()
}

func (s *State) applyBulkPayload(d EffectDone) {
	if d.Err != nil {
		return
	}
	switch d.Effect.Kind {
	case EffectUpdateIssue:
		if d.Issue != nil {
			s.replaceIssue(*d.Issue)
		}
	case EffectArchiveIssue:
		s.removeIssue(d.Effect.IssueID)
	}
}

func (s *State) replaceIssue(issue linear.Issue) {
	for i := range s.Issues {
		if s.Issues[i].ID == issue.ID {
			s.Issues[i] = issue
			break
		}
	}
	s.applyFilters()
}

func (s *State) removeIssue(id string) {
	for i := range s.Issues {
		if s.Issues[i].ID == id {
			s.Issues = append(s.Issues[:i], s.Issues[i+1:]...)
			break
		}
	}
	s.applyFilters()
}

func (s *State) moveCursorTo(id string) {
	for vi, idx := range s.Visible {
		if s.Issues[idx].ID == id {
			s.Cursor = vi
			return
		}
	}
}

func failureMessage(d EffectDone) string {
	msg := linear.UserMessage(d.Err)
	if d.Effect.IssueIdent != "" {
		return fmt.Sprintf("%s: %s", d.Effect.IssueIdent, msg)
	}
	return msg
}
