package session

import (
	"github.com/mfell/lariat/internal/linear"
)

// EffectKind names the remote or system operation an Effect performs.
type EffectKind int

const (
	EffectRefreshIssues EffectKind = iota
	EffectUpdateIssue
	EffectCreateIssue
	EffectArchiveIssue
	EffectCreateComment
	EffectFetchComments
	EffectLoadViewer
	EffectLoadTeams
	EffectLoadProjects
	EffectLoadStates
	EffectLoadLabels
	EffectLoadUsers
	EffectCopyText
	EffectOpenURL
)

func (k EffectKind) String() string {
	switch k {
	case EffectRefreshIssues:
		return "refresh-issues"
	case EffectUpdateIssue:
		return "update-issue"
	case EffectCreateIssue:
		return "create-issue"
	case EffectArchiveIssue:
		return "archive-issue"
	case EffectCreateComment:
		return "create-comment"
	case EffectFetchComments:
		return "fetch-comments"
	case EffectLoadViewer:
		return "load-viewer"
	case EffectLoadTeams:
		return "load-teams"
	case EffectLoadProjects:
		return "load-projects"
	case EffectLoadStates:
		return "load-states"
	case EffectLoadLabels:
		return "load-labels"
	case EffectLoadUsers:
		return "load-users"
	case EffectCopyText:
		return "copy-text"
	case EffectOpenURL:
		return "open-url"
	default:
		return "unknown"
	}
}

// Effect is one unit of work handed to the Runner. Dispatch produces
// effects; it never performs them.
type Effect struct {
	Kind EffectKind

	// IssueID targets issue-scoped kinds.
	IssueID string
	// IssueIdent is carried for notification text only.
	IssueIdent string

	TeamID string
	Filter linear.IssueFilter
	Patch  linear.IssuePatch
	Create linear.IssueCreate
	Body   string // comment body
	Text   string // clipboard text or URL

	// NotifID links the effect to its loading notification; zero means
	// the effect runs silently.
	NotifID int
	// BulkID groups effects belonging to one bulk operation.
	BulkID string
}

// Key is the dedup identity of an effect: at most one effect per key may
// be in flight. Issue-scoped kinds dedup per issue, list loads per scope.
func (e Effect) Key() string {
	switch {
	case e.IssueID != "":
		return e.Kind.String() + ":" + e.IssueID
	case e.Kind == EffectRefreshIssues:
		return e.Kind.String() + ":" + e.Filter.TeamID + ":" + e.Filter.ProjectID
	case e.TeamID != "":
		return e.Kind.String() + ":" + e.TeamID
	default:
		return e.Kind.String()
	}
}

// EffectDone is the completion action published by the Runner. Exactly one
// payload field is set, matching Effect.Kind.
type EffectDone struct {
	Effect Effect
	Err    error

	Issues   []linear.Issue
	Issue    *linear.Issue
	Viewer   *linear.Viewer
	Comments []linear.Comment
	Teams    []linear.Team
	Projects []linear.Project
	States   []linear.WorkflowState
	Labels   []linear.Label
	Users    []linear.User
}
