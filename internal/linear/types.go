// Package linear provides a client for the Linear GraphQL API and the
// domain types the session works with.
package linear

import (
	"fmt"
	"strings"
	"time"
)

// Issue represents a Linear issue.
type Issue struct {
	ID          string        `json:"id"`
	Identifier  string        `json:"identifier"` // e.g. "ENG-123"
	Title       string        `json:"title"`
	Description string        `json:"description"`
	State       WorkflowState `json:"state"`
	Priority    int           `json:"priority"`
	Labels      LabelNodes    `json:"labels"`
	Assignee    *User         `json:"assignee"`
	Creator     *User         `json:"creator"`
	Project     *ProjectRef   `json:"project"`
	URL         string        `json:"url"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Done reports whether the issue is in a terminal workflow state.
func (i Issue) Done() bool {
	return i.State.Type == StateCompleted || i.State.Type == StateCanceled
}

// PriorityLabel returns the human name for the issue's priority.
func (i Issue) PriorityLabel() string {
	return PriorityLabel(i.Priority)
}

// SearchText returns the text the fuzzy search runs against.
func (i Issue) SearchText() string {
	return strings.ToLower(i.Identifier + " " + i.Title)
}

// Workflow state types as Linear defines them.
const (
	StateBacklog   = "backlog"
	StateUnstarted = "unstarted"
	StateStarted   = "started"
	StateCompleted = "completed"
	StateCanceled  = "canceled"
)

// WorkflowState represents a Linear workflow state.
type WorkflowState struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"` // backlog, unstarted, started, completed, canceled
	Color    string  `json:"color"`
	Position float64 `json:"position"`
}

// Label represents a Linear issue label.
type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// LabelNodes wraps a list of labels (GraphQL connection pattern).
type LabelNodes struct {
	Nodes []Label `json:"nodes"`
}

// User represents a Linear user.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Team represents a Linear team.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"` // short identifier like "ENG"
}

// Project represents a Linear project.
type Project struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
	Color string `json:"color"`
}

// ProjectRef is a minimal project reference carried on issues.
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Comment represents a comment on an issue.
type Comment struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	User      *User     `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// Viewer is the authenticated user.
type Viewer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PageInfo is the GraphQL cursor pagination envelope.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// IssueConnection wraps a paginated list of issues.
type IssueConnection struct {
	Nodes    []Issue  `json:"nodes"`
	PageInfo PageInfo `json:"pageInfo"`
}

// IssuePatch carries the fields of an issue update. Nil fields are left
// unchanged.
type IssuePatch struct {
	StateID     *string
	Priority    *int
	AssigneeID  *string // empty string clears the assignee
	ProjectID   *string // empty string clears the project
	LabelIDs    *[]string
	Title       *string
	Description *string
}

// Empty reports whether the patch changes nothing.
func (p IssuePatch) Empty() bool {
	return p.StateID == nil && p.Priority == nil && p.AssigneeID == nil &&
		p.ProjectID == nil && p.LabelIDs == nil && p.Title == nil && p.Description == nil
}

// Summary names the changed field, for notifications.
func (p IssuePatch) Summary() string {
	switch {
	case p.StateID != nil:
		return "status"
	case p.Priority != nil:
		return "priority"
	case p.AssigneeID != nil:
		return "assignee"
	case p.ProjectID != nil:
		return "project"
	case p.LabelIDs != nil:
		return "labels"
	case p.Title != nil:
		return "title"
	case p.Description != nil:
		return "description"
	default:
		return "issue"
	}
}

// IssueCreate carries the fields for creating a new issue.
type IssueCreate struct {
	TeamID      string
	Title       string
	Description string
	Priority    int
	StateID     string
	AssigneeID  string
	ProjectID   string
	LabelIDs    []string
}

// IssueFilter restricts which issues a listing returns.
type IssueFilter struct {
	TeamID    string
	ProjectID string
}

// Priority levels as Linear numbers them.
const (
	PriorityNone   = 0
	PriorityUrgent = 1
	PriorityHigh   = 2
	PriorityMedium = 3
	PriorityLow    = 4
)

// Priorities lists all priority values in picker order.
var Priorities = []int{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow, PriorityNone}

// PriorityLabel returns the human name for a priority value.
func PriorityLabel(p int) string {
	switch p {
	case PriorityUrgent:
		return "Urgent"
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	case PriorityNone:
		return "No priority"
	default:
		return fmt.Sprintf("P%d", p)
	}
}
