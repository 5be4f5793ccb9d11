package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfell/lariat/internal/linear"
)

func testIssue(id, ident, title string) linear.Issue {
	return linear.Issue{
		ID:         id,
		Identifier: ident,
		Title:      title,
		State:      linear.WorkflowState{ID: "st-todo", Name: "Todo", Type: linear.StateUnstarted},
		URL:        "https://linear.app/acme/issue/" + ident,
	}
}

// seedState builds a state with a selected team and loaded issues by
// driving the same dispatch path the app uses.
func seedState(t *testing.T, issues ...linear.Issue) *State {
	t.Helper()

	s := NewState()
	s.Teams = []linear.Team{{ID: "team-1", Name: "Engineering", Key: "ENG"}}
	s.Focus = ZoneTeams

	effects := Dispatch(s, Select{})
	require.NotEmpty(t, effects)
	require.Equal(t, EffectRefreshIssues, effects[0].Kind)

	out := Dispatch(s, EffectDone{Effect: effects[0], Issues: issues})
	require.Equal(t, ZoneIssues, s.Focus)

	// Settle the comment fetch the refresh triggered for the cursor issue.
	if fetch, ok := findEffect(out, EffectFetchComments); ok {
		Dispatch(s, EffectDone{Effect: fetch})
	}

	s.Catalog.States = []linear.WorkflowState{
		{ID: "st-todo", Name: "Todo", Type: linear.StateUnstarted, Position: 0},
		{ID: "st-doing", Name: "In Progress", Type: linear.StateStarted, Position: 1},
		{ID: "st-done", Name: "Done", Type: linear.StateCompleted, Position: 2},
	}

	// Drop the notifications produced by seeding.
	for range s.Notifications.Visible() {
		s.Notifications.Dismiss()
	}
	return s
}

func findEffect(effects []Effect, kind EffectKind) (Effect, bool) {
	for _, e := range effects {
		if e.Kind == kind {
			return e, true
		}
	}
	return Effect{}, false
}

func TestSelectTeamLoadsScopedData(t *testing.T) {
	s := NewState()
	s.Teams = []linear.Team{{ID: "team-1", Name: "Engineering", Key: "ENG"}}
	s.Focus = ZoneTeams

	effects := Dispatch(s, Select{})

	kinds := make(map[EffectKind]bool)
	for _, e := range effects {
		kinds[e.Kind] = true
		assert.True(t, s.Pending(e.Key()), "effect %s should be pending", e.Key())
	}
	for _, want := range []EffectKind{
		EffectRefreshIssues, EffectLoadProjects, EffectLoadStates, EffectLoadLabels, EffectLoadUsers,
	} {
		assert.True(t, kinds[want], "missing %s", want)
	}
	assert.Equal(t, "team-1", s.TeamID())
	assert.Equal(t, ZoneIssues, s.Focus)
}

func TestReselectingSameTeamOnlyRefreshes(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"))
	s.Focus = ZoneTeams

	effects := Dispatch(s, Select{})

	require.Len(t, effects, 1)
	assert.Equal(t, EffectRefreshIssues, effects[0].Kind)
}

func TestStatusChangeFlow(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"))

	Dispatch(s, OpenPicker{Kind: OverlayStatusPicker})
	require.NotNil(t, s.Overlay)
	assert.Equal(t, 0, s.Overlay.Index, "picker preselects the current status")

	Dispatch(s, MoveDown{})
	Dispatch(s, MoveDown{})
	effects := Dispatch(s, Confirm{})

	require.Len(t, effects, 1)
	eff := effects[0]
	assert.Equal(t, EffectUpdateIssue, eff.Kind)
	assert.Equal(t, "i1", eff.IssueID)
	require.NotNil(t, eff.Patch.StateID)
	assert.Equal(t, "st-done", *eff.Patch.StateID)

	assert.Nil(t, s.Overlay)
	assert.True(t, s.Pending(eff.Key()))

	toasts := s.Notifications.Visible()
	require.Len(t, toasts, 1)
	assert.Equal(t, NotifyLoading, toasts[0].Kind)
	assert.Contains(t, toasts[0].Message, "ENG-1")

	updated := testIssue("i1", "ENG-1", "First")
	updated.State = linear.WorkflowState{ID: "st-done", Name: "Done", Type: linear.StateCompleted}
	Dispatch(s, EffectDone{Effect: eff, Issue: &updated})

	assert.False(t, s.Pending(eff.Key()))
	assert.Equal(t, "st-done", s.Issues[0].State.ID)

	toasts = s.Notifications.Visible()
	require.Len(t, toasts, 1)
	assert.Equal(t, NotifySuccess, toasts[0].Kind)
	assert.Contains(t, toasts[0].Message, "ENG-1")
	assert.Equal(t, toasts[0].ID, eff.NotifID, "loading toast resolved in place")
}

func TestDuplicateUpdateDropped(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"))

	Dispatch(s, OpenPicker{Kind: OverlayStatusPicker})
	Dispatch(s, MoveDown{})
	first := Dispatch(s, Confirm{})
	require.Len(t, first, 1)

	Dispatch(s, OpenPicker{Kind: OverlayStatusPicker})
	Dispatch(s, MoveDown{})
	second := Dispatch(s, Confirm{})

	assert.Empty(t, second, "second update for the same issue is dropped")
	toasts := s.Notifications.Visible()
	require.NotEmpty(t, toasts)
	last := toasts[len(toasts)-1]
	assert.Equal(t, NotifyInfo, last.Kind)
	assert.Contains(t, last.Message, "already in progress")
}

func TestUpdateErrorKeepsIssueUnchanged(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"))

	Dispatch(s, OpenPicker{Kind: OverlayStatusPicker})
	Dispatch(s, MoveDown{})
	effects := Dispatch(s, Confirm{})
	require.Len(t, effects, 1)

	srvErr := &linear.ServiceError{Op: "UpdateIssue", Message: "rate limited by Linear", Transient: true}
	Dispatch(s, EffectDone{Effect: effects[0], Err: srvErr})

	assert.Equal(t, "st-todo", s.Issues[0].State.ID, "local issue unchanged on failure")
	assert.False(t, s.Pending(effects[0].Key()), "failed effect is no longer pending")

	toasts := s.Notifications.Visible()
	require.Len(t, toasts, 1)
	assert.Equal(t, NotifyError, toasts[0].Kind)
	assert.Contains(t, toasts[0].Message, "ENG-1")
	assert.Contains(t, toasts[0].Message, "rate limited")

	// The user can retry immediately.
	Dispatch(s, OpenPicker{Kind: OverlayStatusPicker})
	Dispatch(s, MoveDown{})
	retry := Dispatch(s, Confirm{})
	assert.Len(t, retry, 1)
}

func TestNavigationClampsAtEdges(t *testing.T) {
	s := seedState(t,
		testIssue("i1", "ENG-1", "First"),
		testIssue("i2", "ENG-2", "Second"),
		testIssue("i3", "ENG-3", "Third"),
	)

	Dispatch(s, MoveUp{})
	assert.Equal(t, 0, s.Cursor, "no wraparound at the top")

	for i := 0; i < 10; i++ {
		Dispatch(s, MoveDown{})
	}
	assert.Equal(t, 2, s.Cursor, "no wraparound at the bottom")
}

func TestFocusRing(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"))
	s.Focus = ZoneTeams

	Dispatch(s, FocusNext{})
	assert.Equal(t, ZoneProjects, s.Focus)
	Dispatch(s, FocusPrev{})
	assert.Equal(t, ZoneTeams, s.Focus)
	Dispatch(s, FocusPrev{})
	assert.Equal(t, ZoneDetail, s.Focus, "ring wraps")

	Dispatch(s, FocusZone{Zone: ZoneIssues})
	assert.Equal(t, ZoneIssues, s.Focus)
}

func TestOverlayRestoresFocusOnClose(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"))
	Dispatch(s, FocusZone{Zone: ZoneDetail})

	Dispatch(s, OpenPicker{Kind: OverlayPriorityPicker})
	require.NotNil(t, s.Overlay)

	Dispatch(s, Cancel{})
	assert.Nil(t, s.Overlay)
	assert.Equal(t, ZoneDetail, s.Focus)
}

func TestMoveCursorWithOverlayOpenMovesPicker(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"), testIssue("i2", "ENG-2", "Second"))

	Dispatch(s, OpenPicker{Kind: OverlayStatusPicker})
	Dispatch(s, MoveDown{})

	assert.Equal(t, 1, s.Overlay.Index)
	assert.Equal(t, 0, s.Cursor, "list cursor untouched while a picker is open")
}

func TestLiveSearchAppliesWhileTyping(t *testing.T) {
	s := seedState(t,
		testIssue("i1", "ENG-1", "Fix login crash"),
		testIssue("i2", "ENG-2", "Update docs"),
	)

	Dispatch(s, OpenTextInput{Context: TextSearch})
	for _, r := range "docs" {
		Dispatch(s, TypeRune{Rune: r})
	}

	require.Len(t, s.Visible, 1)
	assert.Equal(t, "ENG-2", s.CurrentIssue().Identifier)

	Dispatch(s, Confirm{})
	assert.Nil(t, s.Overlay)
	assert.Equal(t, "docs", s.SearchQuery, "query survives confirm")
}

func TestCancelSearchRestoresPreviousQuery(t *testing.T) {
	s := seedState(t,
		testIssue("i1", "ENG-1", "Fix login crash"),
		testIssue("i2", "ENG-2", "Update docs"),
	)

	Dispatch(s, OpenTextInput{Context: TextSearch})
	for _, r := range "docs" {
		Dispatch(s, TypeRune{Rune: r})
	}
	require.Len(t, s.Visible, 1)

	Dispatch(s, Cancel{})
	assert.Empty(t, s.SearchQuery)
	assert.Len(t, s.Visible, 2, "cancel restores the unfiltered list")
}

func TestHideDoneFiltersTerminalStates(t *testing.T) {
	done := testIssue("i2", "ENG-2", "Shipped")
	done.State = linear.WorkflowState{ID: "st-done", Name: "Done", Type: linear.StateCompleted}
	s := seedState(t, testIssue("i1", "ENG-1", "Open"), done)

	require.Len(t, s.Visible, 2)
	Dispatch(s, ToggleHideDone{})
	require.Len(t, s.Visible, 1)
	assert.Equal(t, "ENG-1", s.CurrentIssue().Identifier)
	assert.True(t, s.UIPrefsDirty)

	Dispatch(s, ToggleHideDone{})
	assert.Len(t, s.Visible, 2)
}

func TestBulkUpdateFanOut(t *testing.T) {
	s := seedState(t,
		testIssue("i1", "ENG-1", "First"),
		testIssue("i2", "ENG-2", "Second"),
		testIssue("i3", "ENG-3", "Third"),
	)

	Dispatch(s, ToggleSelect{})
	Dispatch(s, MoveDown{})
	Dispatch(s, ToggleSelect{})
	require.Equal(t, 2, s.Selection.Len())

	Dispatch(s, OpenBulkMenu{})
	require.NotNil(t, s.Overlay)
	Dispatch(s, MoveDown{}) // Set priority
	Dispatch(s, Confirm{})
	require.NotNil(t, s.Overlay)
	assert.Equal(t, OverlayPriorityPicker, s.Overlay.Kind)
	assert.True(t, s.Overlay.Bulk)

	effects := Dispatch(s, Confirm{}) // Urgent, the first entry
	require.Len(t, effects, 2)
	require.NotNil(t, s.Bulk)
	assert.Equal(t, 2, s.Bulk.Total)
	for _, eff := range effects {
		assert.Equal(t, EffectUpdateIssue, eff.Kind)
		assert.Equal(t, s.Bulk.ID, eff.BulkID)
		require.NotNil(t, eff.Patch.Priority)
		assert.Equal(t, linear.PriorityUrgent, *eff.Patch.Priority)
	}

	// One success, one failure: partial failure never aborts the rest.
	ok := testIssue("i1", "ENG-1", "First")
	ok.Priority = linear.PriorityUrgent
	Dispatch(s, EffectDone{Effect: effects[0], Issue: &ok})
	require.NotNil(t, s.Bulk, "summary waits for all completions")

	Dispatch(s, EffectDone{Effect: effects[1], Err: errors.New("boom")})

	assert.Nil(t, s.Bulk)
	assert.Equal(t, 0, s.Selection.Len(), "selection cleared after the bulk op")
	toasts := s.Notifications.Visible()
	require.NotEmpty(t, toasts)
	last := toasts[len(toasts)-1]
	assert.Equal(t, NotifyError, last.Kind)
	assert.Contains(t, last.Message, "1/2")
	assert.Contains(t, last.Message, "1 failed")
	assert.Equal(t, linear.PriorityUrgent, s.Issues[0].Priority)
}

func TestBulkMenuNeedsSelection(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"))

	Dispatch(s, OpenBulkMenu{})

	assert.Nil(t, s.Overlay)
	toasts := s.Notifications.Visible()
	require.Len(t, toasts, 1)
	assert.Equal(t, NotifyInfo, toasts[0].Kind)
}

func TestBulkArchiveRemovesIssues(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"), testIssue("i2", "ENG-2", "Second"))

	Dispatch(s, ToggleSelect{})
	Dispatch(s, MoveDown{})
	Dispatch(s, ToggleSelect{})

	Dispatch(s, OpenBulkMenu{})
	for i := 0; i < int(BulkArchive); i++ {
		Dispatch(s, MoveDown{})
	}
	effects := Dispatch(s, Confirm{})
	require.Len(t, effects, 2)

	for _, eff := range effects {
		assert.Equal(t, EffectArchiveIssue, eff.Kind)
		Dispatch(s, EffectDone{Effect: eff})
	}
	assert.Empty(t, s.Issues)
	assert.Nil(t, s.Bulk)
}

func TestStaleScopeRefreshDropped(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"))

	old := Effect{
		Kind:   EffectRefreshIssues,
		Filter: linear.IssueFilter{TeamID: "team-9"},
	}
	Dispatch(s, EffectDone{Effect: old, Issues: []linear.Issue{testIssue("x1", "OPS-1", "Other")}})

	require.Len(t, s.Issues, 1)
	assert.Equal(t, "ENG-1", s.Issues[0].Identifier, "stale-scope results never replace the list")
}

func TestRefreshDedupAndCompletion(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"))

	first := Dispatch(s, Refresh{})
	require.Len(t, first, 1)

	second := Dispatch(s, Refresh{})
	assert.Empty(t, second, "refresh already in flight is dropped silently")

	Dispatch(s, EffectDone{Effect: first[0], Issues: []linear.Issue{
		testIssue("i1", "ENG-1", "First"),
		testIssue("i2", "ENG-2", "Second"),
	}})
	assert.Len(t, s.Issues, 2)

	third := Dispatch(s, Refresh{})
	assert.Len(t, third, 1, "refresh allowed again after completion")
}

func TestCommentFetchOnCursorMoveDedups(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"), testIssue("i2", "ENG-2", "Second"))

	effects := Dispatch(s, MoveDown{})
	require.Len(t, effects, 1)
	assert.Equal(t, EffectFetchComments, effects[0].Kind)
	assert.Equal(t, "i2", effects[0].IssueID)

	// Entering the detail zone while the fetch is running issues nothing.
	again := Dispatch(s, FocusZone{Zone: ZoneDetail})
	assert.Empty(t, again)

	Dispatch(s, EffectDone{Effect: effects[0], Comments: []linear.Comment{{ID: "c1", Body: "hi"}}})
	comments, state := s.Comments.Get("i2")
	assert.Equal(t, CommentsFresh, state)
	require.Len(t, comments, 1)
}

func TestRefreshMarksCommentsStaleNotGone(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"))
	s.Comments.Store("i1", []linear.Comment{{ID: "c1", Body: "old"}})

	effects := Dispatch(s, Refresh{})
	require.Len(t, effects, 1)
	out := Dispatch(s, EffectDone{Effect: effects[0], Issues: []linear.Issue{testIssue("i1", "ENG-1", "First")}})

	comments, state := s.Comments.Get("i1")
	require.Len(t, comments, 1, "stale comments keep rendering")
	assert.Equal(t, CommentsLoading, state, "refetch already in flight")

	refetch, ok := findEffect(out, EffectFetchComments)
	require.True(t, ok, "refresh completion triggers a comment refetch for the cursor issue")
	assert.Equal(t, "i1", refetch.IssueID)
}

func TestCommentSubmitValidation(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"))

	Dispatch(s, OpenTextInput{Context: TextComment})
	require.NotNil(t, s.Overlay)

	effects := Dispatch(s, Confirm{})
	assert.Empty(t, effects)
	require.NotNil(t, s.Overlay, "empty comment keeps the overlay open")
	toasts := s.Notifications.Visible()
	require.Len(t, toasts, 1)
	assert.Equal(t, NotifyError, toasts[0].Kind)

	for _, r := range "looks good" {
		Dispatch(s, TypeRune{Rune: r})
	}
	effects = Dispatch(s, Confirm{})
	require.Len(t, effects, 1)
	assert.Equal(t, EffectCreateComment, effects[0].Kind)
	assert.Equal(t, "looks good", effects[0].Body)
	assert.Nil(t, s.Overlay)

	Dispatch(s, EffectDone{Effect: effects[0], Comments: []linear.Comment{{ID: "c9", Body: "looks good"}}})
	comments, state := s.Comments.Get("i1")
	assert.Equal(t, CommentsFresh, state)
	require.Len(t, comments, 1)
	assert.Equal(t, "looks good", comments[0].Body)
}

func TestCommentTargetsSnapshotIssue(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"), testIssue("i2", "ENG-2", "Second"))

	Dispatch(s, OpenTextInput{Context: TextComment})
	require.Equal(t, "i1", s.Overlay.IssueID)
	for _, r := range "note" {
		Dispatch(s, TypeRune{Rune: r})
	}
	effects := Dispatch(s, Confirm{})

	require.Len(t, effects, 1)
	assert.Equal(t, "i1", effects[0].IssueID, "comment goes to the issue that was open")
}

func TestCreateIssueFlow(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"))

	Dispatch(s, OpenCreateForm{})
	require.NotNil(t, s.Overlay)
	require.NotNil(t, s.Overlay.Form)

	effects := Dispatch(s, Confirm{})
	assert.Empty(t, effects)
	require.NotNil(t, s.Overlay, "missing title keeps the form open")

	for _, r := range "New thing" {
		Dispatch(s, TypeRune{Rune: r})
	}
	Dispatch(s, NextField{}) // description
	Dispatch(s, NextField{}) // priority
	Dispatch(s, CursorRight{})
	effects = Dispatch(s, Confirm{})

	require.Len(t, effects, 1)
	eff := effects[0]
	assert.Equal(t, EffectCreateIssue, eff.Kind)
	assert.Equal(t, "New thing", eff.Create.Title)
	assert.Equal(t, "team-1", eff.Create.TeamID)
	assert.Equal(t, linear.PriorityUrgent, eff.Create.Priority)

	created := testIssue("i9", "ENG-9", "New thing")
	Dispatch(s, EffectDone{Effect: eff, Issue: &created})

	assert.Equal(t, "ENG-9", s.CurrentIssue().Identifier, "cursor lands on the new issue")
}

func TestArchiveFlow(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"), testIssue("i2", "ENG-2", "Second"))

	Dispatch(s, OpenConfirmArchive{})
	require.NotNil(t, s.Overlay)
	assert.Equal(t, OverlayConfirmArchive, s.Overlay.Kind)

	effects := Dispatch(s, Confirm{})
	require.Len(t, effects, 1)
	assert.Equal(t, EffectArchiveIssue, effects[0].Kind)
	assert.Equal(t, "i1", effects[0].IssueID)

	Dispatch(s, EffectDone{Effect: effects[0]})
	require.Len(t, s.Issues, 1)
	assert.Equal(t, "ENG-2", s.Issues[0].Identifier)
}

func TestEditTitlePrefills(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "Old title"))

	Dispatch(s, OpenTextInput{Context: TextEditTitle})
	require.NotNil(t, s.Overlay)
	assert.Equal(t, "Old title", s.Overlay.Input.Value())

	Dispatch(s, CursorHome{})
	Dispatch(s, TypeRune{Rune: 'A'})
	effects := Dispatch(s, Confirm{})

	require.Len(t, effects, 1)
	require.NotNil(t, effects[0].Patch.Title)
	assert.Equal(t, "AOld title", *effects[0].Patch.Title)
}

func TestDefaultTeamAutoSelected(t *testing.T) {
	s := NewState()
	s.DefaultTeamKey = "OPS"

	boot := s.Bootstrap()
	teams, ok := findEffect(boot, EffectLoadTeams)
	require.True(t, ok)

	effects := Dispatch(s, EffectDone{Effect: teams, Teams: []linear.Team{
		{ID: "team-1", Name: "Engineering", Key: "ENG"},
		{ID: "team-2", Name: "Operations", Key: "OPS"},
	}})

	assert.Equal(t, "team-2", s.TeamID())
	assert.Equal(t, 1, s.TeamIndex)
	_, ok = findEffect(effects, EffectRefreshIssues)
	assert.True(t, ok)
}

func TestRefreshWithoutTeamPrompts(t *testing.T) {
	s := NewState()

	effects := Dispatch(s, Refresh{})

	assert.Empty(t, effects)
	toasts := s.Notifications.Visible()
	require.Len(t, toasts, 1)
	assert.Contains(t, toasts[0].Message, "Select a team")
}

func TestYankAndOpenProduceSystemEffects(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"))

	yank := Dispatch(s, YankID{})
	require.Len(t, yank, 1)
	assert.Equal(t, EffectCopyText, yank[0].Kind)
	assert.Equal(t, "ENG-1", yank[0].Text)

	open := Dispatch(s, OpenBrowser{})
	require.Len(t, open, 1)
	assert.Equal(t, EffectOpenURL, open[0].Kind)
	assert.Contains(t, open[0].Text, "ENG-1")
}

func TestGroupByPrioritySortsUrgentFirst(t *testing.T) {
	low := testIssue("i1", "ENG-1", "Low")
	low.Priority = linear.PriorityLow
	urgent := testIssue("i2", "ENG-2", "Urgent")
	urgent.Priority = linear.PriorityUrgent
	none := testIssue("i3", "ENG-3", "None")
	none.Priority = linear.PriorityNone
	s := seedState(t, low, urgent, none)

	Dispatch(s, CycleGroupBy{}) // status
	Dispatch(s, CycleGroupBy{}) // priority
	require.Equal(t, GroupPriority, s.GroupBy)

	got := s.VisibleIssues()
	require.Len(t, got, 3)
	assert.Equal(t, "ENG-2", got[0].Identifier)
	assert.Equal(t, "ENG-1", got[1].Identifier)
	assert.Equal(t, "ENG-3", got[2].Identifier, "no priority sorts last")
}

func TestLabelPickerTogglesAndSubmits(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"))
	s.Catalog.Labels = []linear.Label{
		{ID: "l1", Name: "bug"},
		{ID: "l2", Name: "infra"},
	}

	Dispatch(s, OpenPicker{Kind: OverlayLabelPicker})
	require.NotNil(t, s.Overlay)

	Dispatch(s, ToggleSelect{}) // check "bug"
	assert.True(t, s.Overlay.Checked["l1"])

	effects := Dispatch(s, Confirm{})
	require.Len(t, effects, 1)
	require.NotNil(t, effects[0].Patch.LabelIDs)
	assert.Equal(t, []string{"l1"}, *effects[0].Patch.LabelIDs)
}

func TestClearAssigneeSendsEmptyID(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"))
	s.Catalog.Users = []linear.User{{ID: "u1", Name: "Sam", DisplayName: "sam"}}

	Dispatch(s, OpenPicker{Kind: OverlayAssigneePicker})
	require.NotNil(t, s.Overlay)
	assert.Equal(t, 0, s.Overlay.Index, "Unassigned is the default for an unassigned issue")

	effects := Dispatch(s, Confirm{})
	require.Len(t, effects, 1)
	require.NotNil(t, effects[0].Patch.AssigneeID)
	assert.Empty(t, *effects[0].Patch.AssigneeID)
}

func TestQuitSetsFlag(t *testing.T) {
	s := NewState()
	effects := Dispatch(s, Quit{})
	assert.Empty(t, effects)
	assert.True(t, s.Quitting)
}

func TestStaleTeamCatalogLoadDropped(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"))

	// A load for a team the user already left must not touch the catalog.
	Dispatch(s, EffectDone{
		Effect: Effect{Kind: EffectLoadStates, TeamID: "team-9"},
		States: []linear.WorkflowState{{ID: "st-ops", Name: "Triage", Type: linear.StateUnstarted}},
	})
	require.NotEmpty(t, s.Catalog.States)
	assert.Equal(t, "st-todo", s.Catalog.States[0].ID)

	Dispatch(s, EffectDone{
		Effect:   Effect{Kind: EffectLoadProjects, TeamID: "team-9"},
		Projects: []linear.Project{{ID: "pr-9", Name: "Other"}},
	})
	assert.Empty(t, s.Projects)

	// The current team's load still lands.
	Dispatch(s, EffectDone{
		Effect: Effect{Kind: EffectLoadStates, TeamID: "team-1"},
		States: []linear.WorkflowState{{ID: "st-new", Name: "New", Type: linear.StateUnstarted}},
	})
	require.NotEmpty(t, s.Catalog.States)
	assert.Equal(t, "st-new", s.Catalog.States[0].ID)
}

func TestBulkConfirmAfterSelectionPruned(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"), testIssue("i2", "ENG-2", "Second"))

	Dispatch(s, ToggleSelect{})
	require.Equal(t, 1, s.Selection.Len())
	Dispatch(s, OpenBulkMenu{})
	require.NotNil(t, s.Overlay)

	// A refresh lands while the menu is open and prunes the selected
	// issue out of the visible set.
	Dispatch(s, EffectDone{
		Effect: Effect{Kind: EffectRefreshIssues, Filter: linear.IssueFilter{TeamID: "team-1"}},
		Issues: []linear.Issue{testIssue("i2", "ENG-2", "Second")},
	})
	require.Equal(t, 0, s.Selection.Len())

	before := len(s.Notifications.Visible())
	for i := 0; i < int(BulkArchive); i++ {
		Dispatch(s, MoveDown{})
	}
	effects := Dispatch(s, Confirm{})

	assert.Empty(t, effects, "nothing left to archive")
	assert.Nil(t, s.Overlay)
	assert.Nil(t, s.Bulk)
	assert.Len(t, s.Notifications.Visible(), before, "an empty bulk op stays silent")
}

func TestBootstrapLoadsViewer(t *testing.T) {
	s := NewState()
	effects := s.Bootstrap()

	eff, ok := findEffect(effects, EffectLoadViewer)
	require.True(t, ok)
	assert.True(t, s.Pending(eff.Key()))

	before := len(s.Notifications.Visible())
	Dispatch(s, EffectDone{Effect: eff, Viewer: &linear.Viewer{ID: "u1", Name: "Ana Dev"}})

	require.NotNil(t, s.Viewer)
	assert.Equal(t, "Ana Dev", s.Viewer.Name)
	assert.False(t, s.Pending(eff.Key()))
	assert.Len(t, s.Notifications.Visible(), before, "viewer load is silent")
}

func TestViewerLoadFailureIsSilent(t *testing.T) {
	s := NewState()
	effects := s.Bootstrap()
	eff, ok := findEffect(effects, EffectLoadViewer)
	require.True(t, ok)

	before := len(s.Notifications.Visible())
	Dispatch(s, EffectDone{Effect: eff, Err: errors.New("unauthorized")})

	assert.Nil(t, s.Viewer)
	assert.Len(t, s.Notifications.Visible(), before)
}

func TestCreateIssueWithoutPayloadResolvesToast(t *testing.T) {
	s := seedState(t, testIssue("i1", "ENG-1", "First"))

	Dispatch(s, OpenCreateForm{})
	for _, r := range "Quick one" {
		Dispatch(s, TypeRune{Rune: r})
	}
	effects := Dispatch(s, Confirm{})
	require.Len(t, effects, 1)

	// Some responses omit the created issue. The loading toast must
	// still resolve rather than spin forever.
	Dispatch(s, EffectDone{Effect: effects[0]})

	toasts := s.Notifications.Visible()
	require.NotEmpty(t, toasts)
	last := toasts[len(toasts)-1]
	assert.Equal(t, NotifySuccess, last.Kind)
	assert.Equal(t, "Created issue", last.Message)
	for _, item := range toasts {
		assert.NotEqual(t, NotifyLoading, item.Kind)
	}
	require.Len(t, s.Issues, 1, "no issue payload means nothing to insert")
}
