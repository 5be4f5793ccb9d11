package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/mfell/lariat/internal/log"
)

// DefaultEndpoint is the Linear GraphQL API endpoint.
const DefaultEndpoint = "https://api.linear.app/graphql"

const defaultPageSize = 50

// Client is a Linear GraphQL API client implementing Service.
type Client struct {
	apiKey     string
	httpClient *http.Client
	endpoint   string
	pageSize   int
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the GraphQL endpoint, used in tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPageSize sets the number of issues requested per page.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// NewClient creates a new Linear API client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		endpoint: DefaultEndpoint,
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GraphQLRequest represents a GraphQL request body.
type GraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response envelope.
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a single GraphQL error.
type GraphQLError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// Do executes a GraphQL request and unmarshals the response data into result.
func (c *Client) Do(ctx context.Context, op, query string, variables map[string]any, result any) error {
	req := GraphQLRequest{
		Query:     query,
		Variables: variables,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return &ServiceError{Op: op, Message: "internal encoding error", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &ServiceError{Op: op, Message: "internal request error", Err: err}
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.ErrorErr(log.CatLinear, "request failed", err, "op", op)
		return newTransportError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return newTransportError(op, err)
	}

	log.Debug(log.CatLinear, "request complete", "op", op, "status", resp.StatusCode, "ms", time.Since(start).Milliseconds())

	if resp.StatusCode != http.StatusOK {
		return newStatusError(op, resp.StatusCode)
	}

	var gqlResp GraphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return &ServiceError{Op: op, Message: "malformed response from Linear", Transient: true, Err: err}
	}

	if len(gqlResp.Errors) > 0 {
		return newGraphQLError(op, gqlResp.Errors[0].Message)
	}

	if result != nil {
		if err := json.Unmarshal(gqlResp.Data, result); err != nil {
			return &ServiceError{Op: op, Message: "malformed response from Linear", Transient: true, Err: err}
		}
	}

	return nil
}

// Viewer returns the authenticated user.
func (c *Client) Viewer(ctx context.Context) (*Viewer, error) {
	var result struct {
		Viewer Viewer `json:"viewer"`
	}
	if err := c.Do(ctx, "Viewer", queryViewer, nil, &result); err != nil {
		return nil, err
	}
	return &result.Viewer, nil
}

// ListTeams returns all teams visible to the viewer.
func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	type teamConnection struct {
		Nodes    []Team   `json:"nodes"`
		PageInfo PageInfo `json:"pageInfo"`
	}

	all := make([]Team, 0)
	cursor := ""
	for {
		var result struct {
			Teams teamConnection `json:"teams"`
		}
		variables := map[string]any{}
		if cursor != "" {
			variables["after"] = cursor
		}
		if err := c.Do(ctx, "ListTeams", queryTeams, variables, &result); err != nil {
			return nil, err
		}
		all = append(all, result.Teams.Nodes...)
		if !result.Teams.PageInfo.HasNextPage {
			break
		}
		cursor = result.Teams.PageInfo.EndCursor
	}
	return all, nil
}

// ListProjects returns the projects of a team.
func (c *Client) ListProjects(ctx context.Context, teamID string) ([]Project, error) {
	type projectConnection struct {
		Nodes    []Project `json:"nodes"`
		PageInfo PageInfo  `json:"pageInfo"`
	}

	all := make([]Project, 0)
	cursor := ""
	for {
		var result struct {
			Team struct {
				Projects projectConnection `json:"projects"`
			} `json:"team"`
		}
		variables := map[string]any{"teamId": teamID}
		if cursor != "" {
			variables["after"] = cursor
		}
		if err := c.Do(ctx, "ListProjects", queryProjects, variables, &result); err != nil {
			return nil, err
		}
		all = append(all, result.Team.Projects.Nodes...)
		if !result.Team.Projects.PageInfo.HasNextPage {
			break
		}
		cursor = result.Team.Projects.PageInfo.EndCursor
	}
	return all, nil
}

// ListIssues returns the issues matching the filter, following pagination.
func (c *Client) ListIssues(ctx context.Context, filter IssueFilter) ([]Issue, error) {
	if filter.ProjectID != "" {
		return c.listProjectIssues(ctx, filter.ProjectID)
	}
	if filter.TeamID == "" {
		return nil, &ServiceError{Op: "ListIssues", Message: "no team selected"}
	}

	all := make([]Issue, 0)
	cursor := ""
	for {
		var result struct {
			Team struct {
				Issues IssueConnection `json:"issues"`
			} `json:"team"`
		}
		variables := map[string]any{
			"teamId": filter.TeamID,
			"first":  c.pageSize,
		}
		if cursor != "" {
			variables["after"] = cursor
		}
		if err := c.Do(ctx, "ListIssues", queryTeamIssues, variables, &result); err != nil {
			return nil, err
		}
		all = append(all, result.Team.Issues.Nodes...)
		if !result.Team.Issues.PageInfo.HasNextPage {
			break
		}
		cursor = result.Team.Issues.PageInfo.EndCursor
	}
	return all, nil
}

func (c *Client) listProjectIssues(ctx context.Context, projectID string) ([]Issue, error) {
	all := make([]Issue, 0)
	cursor := ""
	for {
		var result struct {
			Project struct {
				Issues IssueConnection `json:"issues"`
			} `json:"project"`
		}
		variables := map[string]any{
			"projectId": projectID,
			"first":     c.pageSize,
		}
		if cursor != "" {
			variables["after"] = cursor
		}
		if err := c.Do(ctx, "ListIssues", queryProjectIssues, variables, &result); err != nil {
			return nil, err
		}
		all = append(all, result.Project.Issues.Nodes...)
		if !result.Project.Issues.PageInfo.HasNextPage {
			break
		}
		cursor = result.Project.Issues.PageInfo.EndCursor
	}
	return all, nil
}

// UpdateIssue applies a patch to an issue and returns the updated issue.
func (c *Client) UpdateIssue(ctx context.Context, issueID string, patch IssuePatch) (*Issue, error) {
	if patch.Empty() {
		return nil, &ServiceError{Op: "UpdateIssue", Message: "empty update"}
	}

	input := map[string]any{}
	if patch.StateID != nil {
		input["stateId"] = *patch.StateID
	}
	if patch.Priority != nil {
		input["priority"] = *patch.Priority
	}
	if patch.AssigneeID != nil {
		if *patch.AssigneeID == "" {
			input["assigneeId"] = nil
		} else {
			input["assigneeId"] = *patch.AssigneeID
		}
	}
	if patch.ProjectID != nil {
		if *patch.ProjectID == "" {
			input["projectId"] = nil
		} else {
			input["projectId"] = *patch.ProjectID
		}
	}
	if patch.LabelIDs != nil {
		input["labelIds"] = *patch.LabelIDs
	}
	if patch.Title != nil {
		input["title"] = *patch.Title
	}
	if patch.Description != nil {
		input["description"] = *patch.Description
	}

	var result struct {
		IssueUpdate struct {
			Success bool  `json:"success"`
			Issue   Issue `json:"issue"`
		} `json:"issueUpdate"`
	}
	variables := map[string]any{"issueId": issueID, "input": input}
	if err := c.Do(ctx, "UpdateIssue", mutationIssueUpdate, variables, &result); err != nil {
		return nil, err
	}
	if !result.IssueUpdate.Success {
		return nil, &ServiceError{Op: "UpdateIssue", Message: "Linear rejected the update"}
	}
	return &result.IssueUpdate.Issue, nil
}

// CreateIssue creates a new issue.
func (c *Client) CreateIssue(ctx context.Context, in IssueCreate) (*Issue, error) {
	if in.TeamID == "" {
		return nil, &ServiceError{Op: "CreateIssue", Message: "no team selected"}
	}
	if in.Title == "" {
		return nil, &ServiceError{Op: "CreateIssue", Message: "title is required"}
	}

	input := map[string]any{
		"teamId": in.TeamID,
		"title":  in.Title,
	}
	if in.Description != "" {
		input["description"] = in.Description
	}
	if in.Priority != 0 {
		input["priority"] = in.Priority
	}
	if in.StateID != "" {
		input["stateId"] = in.StateID
	}
	if in.AssigneeID != "" {
		input["assigneeId"] = in.AssigneeID
	}
	if in.ProjectID != "" {
		input["projectId"] = in.ProjectID
	}
	if len(in.LabelIDs) > 0 {
		input["labelIds"] = in.LabelIDs
	}

	var result struct {
		IssueCreate struct {
			Success bool  `json:"success"`
			Issue   Issue `json:"issue"`
		} `json:"issueCreate"`
	}
	if err := c.Do(ctx, "CreateIssue", mutationIssueCreate, map[string]any{"input": input}, &result); err != nil {
		return nil, err
	}
	if !result.IssueCreate.Success {
		return nil, &ServiceError{Op: "CreateIssue", Message: "Linear rejected the new issue"}
	}
	return &result.IssueCreate.Issue, nil
}

// ArchiveIssue archives an issue.
func (c *Client) ArchiveIssue(ctx context.Context, issueID string) error {
	var result struct {
		IssueArchive struct {
			Success bool `json:"success"`
		} `json:"issueArchive"`
	}
	variables := map[string]any{"issueId": issueID}
	if err := c.Do(ctx, "ArchiveIssue", mutationIssueArchive, variables, &result); err != nil {
		return err
	}
	if !result.IssueArchive.Success {
		return &ServiceError{Op: "ArchiveIssue", Message: "Linear rejected the archive"}
	}
	return nil
}

// ListComments returns the comments on an issue, oldest first.
func (c *Client) ListComments(ctx context.Context, issueID string) ([]Comment, error) {
	var result struct {
		Issue struct {
			Comments struct {
				Nodes []Comment `json:"nodes"`
			} `json:"comments"`
		} `json:"issue"`
	}
	variables := map[string]any{"issueId": issueID}
	if err := c.Do(ctx, "ListComments", queryComments, variables, &result); err != nil {
		return nil, err
	}
	return result.Issue.Comments.Nodes, nil
}

// CreateComment adds a comment to an issue.
func (c *Client) CreateComment(ctx context.Context, issueID, body string) (*Comment, error) {
	if body == "" {
		return nil, &ServiceError{Op: "CreateComment", Message: "comment is empty"}
	}

	var result struct {
		CommentCreate struct {
			Success bool    `json:"success"`
			Comment Comment `json:"comment"`
		} `json:"commentCreate"`
	}
	variables := map[string]any{
		"input": map[string]any{
			"issueId": issueID,
			"body":    body,
		},
	}
	if err := c.Do(ctx, "CreateComment", mutationCommentCreate, variables, &result); err != nil {
		return nil, err
	}
	if !result.CommentCreate.Success {
		return nil, &ServiceError{Op: "CreateComment", Message: "Linear rejected the comment"}
	}
	return &result.CommentCreate.Comment, nil
}

// ListWorkflowStates returns the workflow states of a team, in board order.
func (c *Client) ListWorkflowStates(ctx context.Context, teamID string) ([]WorkflowState, error) {
	var result struct {
		Team struct {
			States struct {
				Nodes []WorkflowState `json:"nodes"`
			} `json:"states"`
		} `json:"team"`
	}
	variables := map[string]any{"teamId": teamID}
	if err := c.Do(ctx, "ListWorkflowStates", queryWorkflowStates, variables, &result); err != nil {
		return nil, err
	}
	return result.Team.States.Nodes, nil
}

// ListLabels returns the labels of a team.
func (c *Client) ListLabels(ctx context.Context, teamID string) ([]Label, error) {
	var result struct {
		Team struct {
			Labels struct {
				Nodes []Label `json:"nodes"`
			} `json:"labels"`
		} `json:"team"`
	}
	variables := map[string]any{"teamId": teamID}
	if err := c.Do(ctx, "ListLabels", queryLabels, variables, &result); err != nil {
		return nil, err
	}
	return result.Team.Labels.Nodes, nil
}

// ListUsers returns the members of a team.
func (c *Client) ListUsers(ctx context.Context, teamID string) ([]User, error) {
	var result struct {
		Team struct {
			Members struct {
				Nodes []User `json:"nodes"`
			} `json:"members"`
		} `json:"team"`
	}
	variables := map[string]any{"teamId": teamID}
	if err := c.Do(ctx, "ListUsers", queryUsers, variables, &result); err != nil {
		return nil, err
	}
	return result.Team.Members.Nodes, nil
}
