package linear

import (
	"context"
)

// Service is the remote-service surface the session depends on. The real
// implementation is Client; tests substitute a fake.
type Service interface {
	Viewer(ctx context.Context) (*Viewer, error)
	ListTeams(ctx context.Context) ([]Team, error)
	ListProjects(ctx context.Context, teamID string) ([]Project, error)
	ListIssues(ctx context.Context, filter IssueFilter) ([]Issue, error)
	UpdateIssue(ctx context.Context, issueID string, patch IssuePatch) (*Issue, error)
	CreateIssue(ctx context.Context, input IssueCreate) (*Issue, error)
	ArchiveIssue(ctx context.Context, issueID string) error
	ListComments(ctx context.Context, issueID string) ([]Comment, error)
	CreateComment(ctx context.Context, issueID, body string) (*Comment, error)
	ListWorkflowStates(ctx context.Context, teamID string) ([]WorkflowState, error)
	ListLabels(ctx context.Context, teamID string) ([]Label, error)
	ListUsers(ctx context.Context, teamID string) ([]User, error)
}
