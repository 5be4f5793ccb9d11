// Package testutil provides doubles shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mfell/lariat/internal/linear"
)

// FakeService is a scriptable linear.Service. Each method delegates to the
// corresponding Fn field when set and records the call; unset methods return
// zero values so tests only script what they assert on.
type FakeService struct {
	mu    sync.Mutex
	calls []string

	ViewerFn        func(ctx context.Context) (*linear.Viewer, error)
	ListTeamsFn     func(ctx context.Context) ([]linear.Team, error)
	ListProjectsFn  func(ctx context.Context, teamID string) ([]linear.Project, error)
	ListIssuesFn    func(ctx context.Context, filter linear.IssueFilter) ([]linear.Issue, error)
	UpdateIssueFn   func(ctx context.Context, issueID string, patch linear.IssuePatch) (*linear.Issue, error)
	CreateIssueFn   func(ctx context.Context, input linear.IssueCreate) (*linear.Issue, error)
	ArchiveIssueFn  func(ctx context.Context, issueID string) error
	ListCommentsFn  func(ctx context.Context, issueID string) ([]linear.Comment, error)
	CreateCommentFn func(ctx context.Context, issueID, body string) (*linear.Comment, error)
	ListStatesFn    func(ctx context.Context, teamID string) ([]linear.WorkflowState, error)
	ListLabelsFn    func(ctx context.Context, teamID string) ([]linear.Label, error)
	ListUsersFn     func(ctx context.Context, teamID string) ([]linear.User, error)
}

var _ linear.Service = (*FakeService)(nil)

func (f *FakeService) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

// Calls returns a copy of the recorded call log.
func (f *FakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount reports how many recorded calls start with prefix.
func (f *FakeService) CallCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *FakeService) Viewer(ctx context.Context) (*linear.Viewer, error) {
	f.record("Viewer")
	if f.ViewerFn != nil {
		return f.ViewerFn(ctx)
	}
	return &linear.Viewer{}, nil
}

func (f *FakeService) ListTeams(ctx context.Context) ([]linear.Team, error) {
	f.record("ListTeams")
	if f.ListTeamsFn != nil {
		return f.ListTeamsFn(ctx)
	}
	return nil, nil
}

func (f *FakeService) ListProjects(ctx context.Context, teamID string) ([]linear.Project, error) {
	f.record("ListProjects %s", teamID)
	if f.ListProjectsFn != nil {
		return f.ListProjectsFn(ctx, teamID)
	}
	return nil, nil
}

func (f *FakeService) ListIssues(ctx context.Context, filter linear.IssueFilter) ([]linear.Issue, error) {
	f.record("ListIssues %s/%s", filter.TeamID, filter.ProjectID)
	if f.ListIssuesFn != nil {
		return f.ListIssuesFn(ctx, filter)
	}
	return nil, nil
}

func (f *FakeService) UpdateIssue(ctx context.Context, issueID string, patch linear.IssuePatch) (*linear.Issue, error) {
	f.record("UpdateIssue %s", issueID)
	if f.UpdateIssueFn != nil {
		return f.UpdateIssueFn(ctx, issueID, patch)
	}
	return &linear.Issue{ID: issueID}, nil
}

func (f *FakeService) CreateIssue(ctx context.Context, input linear.IssueCreate) (*linear.Issue, error) {
	f.record("CreateIssue %s", input.TeamID)
	if f.CreateIssueFn != nil {
		return f.CreateIssueFn(ctx, input)
	}
	return &linear.Issue{}, nil
}

func (f *FakeService) ArchiveIssue(ctx context.Context, issueID string) error {
	f.record("ArchiveIssue %s", issueID)
	if f.ArchiveIssueFn != nil {
		return f.ArchiveIssueFn(ctx, issueID)
	}
	return nil
}

func (f *FakeService) ListComments(ctx context.Context, issueID string) ([]linear.Comment, error) {
	f.record("ListComments %s", issueID)
	if f.ListCommentsFn != nil {
		return f.ListCommentsFn(ctx, issueID)
	}
	return nil, nil
}

func (f *FakeService) CreateComment(ctx context.Context, issueID, body string) (*linear.Comment, error) {
	f.record("CreateComment %s", issueID)
	if f.CreateCommentFn != nil {
		return f.CreateCommentFn(ctx, issueID, body)
	}
	return &linear.Comment{Body: body}, nil
}

func (f *FakeService) ListWorkflowStates(ctx context.Context, teamID string) ([]linear.WorkflowState, error) {
	f.record("ListWorkflowStates %s", teamID)
	if f.ListStatesFn != nil {
		return f.ListStatesFn(ctx, teamID)
	}
	return nil, nil
}

func (f *FakeService) ListLabels(ctx context.Context, teamID string) ([]linear.Label, error) {
	f.record("ListLabels %s", teamID)
	if f.ListLabelsFn != nil {
		return f.ListLabelsFn(ctx, teamID)
	}
	return nil, nil
}

func (f *FakeService) ListUsers(ctx context.Context, teamID string) ([]linear.User, error) {
	f.record("ListUsers %s", teamID)
	if f.ListUsersFn != nil {
		return f.ListUsersFn(ctx, teamID)
	}
	return nil, nil
}
