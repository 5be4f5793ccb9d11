package session

import (
	"context"
	"sync"

	"github.com/mfell/lariat/internal/linear"
	"github.com/mfell/lariat/internal/log"
	"github.com/mfell/lariat/internal/pubsub"
)

// Runner executes effects off the update goroutine and publishes their
// completions on a broker. The update loop subscribes and feeds each
// completion back into Dispatch, so state is only ever touched there.
//
// The runner keeps its own in-flight set keyed by Effect.Key as a second
// guard: even if the dispatcher issues a duplicate, only one effect per
// key runs at a time.
type Runner struct {
	svc       linear.Service
	clipboard Clipboard
	browser   Browser
	broker    *pubsub.Broker[EffectDone]

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewRunner creates a runner backed by the given service.
func NewRunner(svc linear.Service, clipboard Clipboard, browser Browser) *Runner {
	return &Runner{
		svc:       svc,
		clipboard: clipboard,
		browser:   browser,
		broker:    pubsub.NewBroker[EffectDone](),
		inflight:  make(map[string]struct{}),
	}
}

// Broker exposes the completion broker for subscription.
func (r *Runner) Broker() *pubsub.Broker[EffectDone] { return r.broker }

// Close shuts down the completion broker.
func (r *Runner) Close() { r.broker.Close() }

// Dispatch starts a goroutine per effect. Effects whose key is already in
// flight are dropped.
func (r *Runner) Dispatch(ctx context.Context, effects []Effect) {
	for _, eff := range effects {
		key := eff.Key()

		r.mu.Lock()
		if _, busy := r.inflight[key]; busy {
			r.mu.Unlock()
			log.Debug(log.CatEffect, "dropping duplicate effect", "key", key)
			continue
		}
		r.inflight[key] = struct{}{}
		r.mu.Unlock()

		go r.run(ctx, eff)
	}
}

func (r *Runner) run(ctx context.Context, eff Effect) {
	log.Debug(log.CatEffect, "running effect", "kind", eff.Kind, "key", eff.Key())

	done := r.execute(ctx, eff)

	r.mu.Lock()
	delete(r.inflight, eff.Key())
	r.mu.Unlock()

	if done.Err != nil {
		log.ErrorErr(log.CatEffect, "effect failed", done.Err, "kind", eff.Kind)
	}
	r.broker.Publish(pubsub.CompletedEvent, done)
}

func (r *Runner) execute(ctx context.Context, eff Effect) EffectDone {
	done := EffectDone{Effect: eff}

	switch eff.Kind {
	case EffectRefreshIssues:
		done.Issues, done.Err = r.svc.ListIssues(ctx, eff.Filter)

	case EffectUpdateIssue:
		done.Issue, done.Err = r.svc.UpdateIssue(ctx, eff.IssueID, eff.Patch)

	case EffectCreateIssue:
		done.Issue, done.Err = r.svc.CreateIssue(ctx, eff.Create)

	case EffectArchiveIssue:
		done.Err = r.svc.ArchiveIssue(ctx, eff.IssueID)

	case EffectCreateComment:
		var comment *linear.Comment
		comment, done.Err = r.svc.CreateComment(ctx, eff.IssueID, eff.Body)
		if comment != nil {
			done.Comments = []linear.Comment{*comment}
		}

	case EffectFetchComments:
		done.Comments, done.Err = r.svc.ListComments(ctx, eff.IssueID)

	case EffectLoadViewer:
		done.Viewer, done.Err = r.svc.Viewer(ctx)

	case EffectLoadTeams:
		done.Teams, done.Err = r.svc.ListTeams(ctx)

	case EffectLoadProjects:
		done.Projects, done.Err = r.svc.ListProjects(ctx, eff.TeamID)

	case EffectLoadStates:
		done.States, done.Err = r.svc.ListWorkflowStates(ctx, eff.TeamID)

	case EffectLoadLabels:
		done.Labels, done.Err = r.svc.ListLabels(ctx, eff.TeamID)

	case EffectLoadUsers:
		done.Users, done.Err = r.svc.ListUsers(ctx, eff.TeamID)

	case EffectCopyText:
		done.Err = r.clipboard.Copy(eff.Text)

	case EffectOpenURL:
		done.Err = r.browser.Open(eff.Text)
	}

	return done
}
