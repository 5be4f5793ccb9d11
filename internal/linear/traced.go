package linear

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ Service = (*Client)(nil)
var _ Service = (*TracedService)(nil)

// TracedService wraps a Service with OpenTelemetry spans, one per API
// operation. With a no-op tracer the overhead is negligible.
type TracedService struct {
	inner  Service
	tracer trace.Tracer
}

// NewTracedService wraps svc with the given tracer.
func NewTracedService(svc Service, tracer trace.Tracer) *TracedService {
	return &TracedService{inner: svc, tracer: tracer}
}

func (t *TracedService) span(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "linear."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, UserMessage(err))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (t *TracedService) Viewer(ctx context.Context) (*Viewer, error) {
	ctx, span := t.span(ctx, "Viewer")
	v, err := t.inner.Viewer(ctx)
	finish(span, err)
	return v, err
}

func (t *TracedService) ListTeams(ctx context.Context) ([]Team, error) {
	ctx, span := t.span(ctx, "ListTeams")
	teams, err := t.inner.ListTeams(ctx)
	finish(span, err)
	return teams, err
}

func (t *TracedService) ListProjects(ctx context.Context, teamID string) ([]Project, error) {
	ctx, span := t.span(ctx, "ListProjects", attribute.String("team.id", teamID))
	projects, err := t.inner.ListProjects(ctx, teamID)
	finish(span, err)
	return projects, err
}

func (t *TracedService) ListIssues(ctx context.Context, filter IssueFilter) ([]Issue, error) {
	ctx, span := t.span(ctx, "ListIssues",
		attribute.String("team.id", filter.TeamID),
		attribute.String("project.id", filter.ProjectID),
	)
	issues, err := t.inner.ListIssues(ctx, filter)
	span.SetAttributes(attribute.Int("issues.count", len(issues)))
	finish(span, err)
	return issues, err
}

func (t *TracedService) UpdateIssue(ctx context.Context, issueID string, patch IssuePatch) (*Issue, error) {
	ctx, span := t.span(ctx, "UpdateIssue",
		attribute.String("issue.id", issueID),
		attribute.String("patch.field", patch.Summary()),
	)
	issue, err := t.inner.UpdateIssue(ctx, issueID, patch)
	finish(span, err)
	return issue, err
}

func (t *TracedService) CreateIssue(ctx context.Context, input IssueCreate) (*Issue, error) {
	ctx, span := t.span(ctx, "CreateIssue", attribute.String("team.id", input.TeamID))
	issue, err := t.inner.CreateIssue(ctx, input)
	finish(span, err)
	return issue, err
}

func (t *TracedService) ArchiveIssue(ctx context.Context, issueID string) error {
	ctx, span := t.span(ctx, "ArchiveIssue", attribute.String("issue.id", issueID))
	err := t.inner.ArchiveIssue(ctx, issueID)
	finish(span, err)
	return err
}

func (t *TracedService) ListComments(ctx context.Context, issueID string) ([]Comment, error) {
	ctx, span := t.span(ctx, "ListComments", attribute.String("issue.id", issueID))
	comments, err := t.inner.ListComments(ctx, issueID)
	finish(span, err)
	return comments, err
}

func (t *TracedService) CreateComment(ctx context.Context, issueID, body string) (*Comment, error) {
	ctx, span := t.span(ctx, "CreateComment", attribute.String("issue.id", issueID))
	comment, err := t.inner.CreateComment(ctx, issueID, body)
	finish(span, err)
	return comment, err
}

func (t *TracedService) ListWorkflowStates(ctx context.Context, teamID string) ([]WorkflowState, error) {
	ctx, span := t.span(ctx, "ListWorkflowStates", attribute.String("team.id", teamID))
	states, err := t.inner.ListWorkflowStates(ctx, teamID)
	finish(span, err)
	return states, err
}

func (t *TracedService) ListLabels(ctx context.Context, teamID string) ([]Label, error) {
	ctx, span := t.span(ctx, "ListLabels", attribute.String("team.id", teamID))
	labels, err := t.inner.ListLabels(ctx, teamID)
	finish(span, err)
	return labels, err
}

func (t *TracedService) ListUsers(ctx context.Context, teamID string) ([]User, error) {
	ctx, span := t.span(ctx, "ListUsers", attribute.String("team.id", teamID))
	users, err := t.inner.ListUsers(ctx, teamID)
	finish(span, err)
	return users, err
}
