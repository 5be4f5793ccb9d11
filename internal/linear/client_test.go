package linear

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("lin_api_test", WithEndpoint(server.URL))
}

func TestClientViewer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "lin_api_test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req GraphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "viewer")

		_, _ = w.Write([]byte(`{"data":{"viewer":{"id":"u1","name":"Ada","email":"ada@example.com"}}}`))
	})

	viewer, err := client.Viewer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", viewer.ID)
	assert.Equal(t, "Ada", viewer.Name)
}

func TestClientListIssuesPaginates(t *testing.T) {
	page := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		page++
		if page == 1 {
			_, _ = w.Write([]byte(`{"data":{"team":{"issues":{
				"nodes":[{"id":"i1","identifier":"ENG-1","title":"First"}],
				"pageInfo":{"hasNextPage":true,"endCursor":"c1"}}}}}`))
			return
		}

		var req GraphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "c1", req.Variables["after"])

		_, _ = w.Write([]byte(`{"data":{"team":{"issues":{
			"nodes":[{"id":"i2","identifier":"ENG-2","title":"Second"}],
			"pageInfo":{"hasNextPage":false,"endCursor":""}}}}}`))
	})

	issues, err := client.ListIssues(context.Background(), IssueFilter{TeamID: "t1"})
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "ENG-1", issues[0].Identifier)
	assert.Equal(t, "ENG-2", issues[1].Identifier)
}

func TestClientListIssuesRequiresScope(t *testing.T) {
	client := NewClient("key")
	_, err := client.ListIssues(context.Background(), IssueFilter{})
	require.Error(t, err)
	assert.False(t, IsTransient(err))
}

func TestClientGraphQLErrorIsPermanent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"Argument teamId is invalid"}]}`))
	})

	_, err := client.ListIssues(context.Background(), IssueFilter{TeamID: "bad"})
	require.Error(t, err)
	assert.False(t, IsTransient(err))
	assert.Equal(t, "Argument teamId is invalid", UserMessage(err))
}

func TestClientServerErrorIsTransient(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Viewer(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransient(err))
}

func TestClientRateLimitIsTransient(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Viewer(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransient(err))
	assert.Equal(t, "rate limited by Linear", UserMessage(err))
}

func TestClientAuthErrorIsPermanent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Viewer(context.Background())
	require.Error(t, err)
	assert.False(t, IsTransient(err))
	assert.Contains(t, UserMessage(err), "authentication failed")
}

func TestClientNetworkErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on

	client := NewClient("key", WithEndpoint(server.URL))
	_, err := client.Viewer(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransient(err))
}

func TestClientUpdateIssue(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req GraphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		input, ok := req.Variables["input"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "s2", input["stateId"])
		assert.NotContains(t, input, "priority")

		_, _ = w.Write([]byte(`{"data":{"issueUpdate":{"success":true,"issue":
			{"id":"i1","identifier":"ENG-1","title":"First","state":{"id":"s2","name":"Done","type":"completed"}}}}}`))
	})

	stateID := "s2"
	issue, err := client.UpdateIssue(context.Background(), "i1", IssuePatch{StateID: &stateID})
	require.NoError(t, err)
	assert.Equal(t, "Done", issue.State.Name)
}

func TestClientUpdateIssueRejectsEmptyPatch(t *testing.T) {
	client := NewClient("key")
	_, err := client.UpdateIssue(context.Background(), "i1", IssuePatch{})
	assert.Error(t, err)
}

func TestClientUpdateIssueClearsAssignee(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req GraphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		input := req.Variables["input"].(map[string]any)
		val, present := input["assigneeId"]
		assert.True(t, present)
		assert.Nil(t, val)

		_, _ = w.Write([]byte(`{"data":{"issueUpdate":{"success":true,"issue":{"id":"i1"}}}}`))
	})

	clear := ""
	_, err := client.UpdateIssue(context.Background(), "i1", IssuePatch{AssigneeID: &clear})
	require.NoError(t, err)
}

func TestClientCreateIssueValidation(t *testing.T) {
	client := NewClient("key")

	_, err := client.CreateIssue(context.Background(), IssueCreate{Title: "x"})
	assert.Error(t, err, "missing team")

	_, err = client.CreateIssue(context.Background(), IssueCreate{TeamID: "t1"})
	assert.Error(t, err, "missing title")
}

func TestClientCreateComment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"commentCreate":{"success":true,"comment":
			{"id":"c1","body":"looks good","user":{"id":"u1","name":"Ada"}}}}}`))
	})

	comment, err := client.CreateComment(context.Background(), "i1", "looks good")
	require.NoError(t, err)
	assert.Equal(t, "looks good", comment.Body)
}

func TestClientArchiveIssueFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"issueArchive":{"success":false}}}`))
	})

	err := client.ArchiveIssue(context.Background(), "i1")
	assert.Error(t, err)
}

func TestPriorityLabel(t *testing.T) {
	assert.Equal(t, "Urgent", PriorityLabel(PriorityUrgent))
	assert.Equal(t, "No priority", PriorityLabel(PriorityNone))
	assert.Equal(t, "P9", PriorityLabel(9))
}

func TestIssueDone(t *testing.T) {
	assert.True(t, Issue{State: WorkflowState{Type: StateCompleted}}.Done())
	assert.True(t, Issue{State: WorkflowState{Type: StateCanceled}}.Done())
	assert.False(t, Issue{State: WorkflowState{Type: StateStarted}}.Done())
}
