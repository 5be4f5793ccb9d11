package session

import (
	"context"
	"time"

	"github.com/mfell/lariat/internal/cachemanager"
	"github.com/mfell/lariat/internal/linear"
)

// CommentState describes what the session knows about an issue's comments.
type CommentState int

const (
	// CommentsAbsent means nothing was ever fetched.
	CommentsAbsent CommentState = iota
	// CommentsLoading means a fetch is in flight.
	CommentsLoading
	// CommentsFresh means the cached value is current.
	CommentsFresh
	// CommentsStale means a cached value exists but was invalidated; it is
	// still shown while a refetch runs.
	CommentsStale
)

func (s CommentState) String() string {
	switch s {
	case CommentsLoading:
		return "loading"
	case CommentsFresh:
		return "fresh"
	case CommentsStale:
		return "stale"
	default:
		return "absent"
	}
}

const commentTTL = 30 * time.Minute

// CommentCache holds fetched comments per issue with in-flight dedup.
// A second fetch for an issue whose fetch is already running is dropped.
type CommentCache struct {
	values   cachemanager.CacheManager[string, []linear.Comment]
	inflight map[string]struct{}
	stale    map[string]struct{}
	ctx      context.Context
}

// NewCommentCache creates an empty cache.
func NewCommentCache() *CommentCache {
	return &CommentCache{
		values:   cachemanager.NewInMemoryCacheManager[string, []linear.Comment]("comments", commentTTL, cachemanager.DefaultCleanupInterval),
		inflight: make(map[string]struct{}),
		stale:    make(map[string]struct{}),
		ctx:      context.Background(),
	}
}

// Get returns the cached comments and their state. A stale value is still
// returned so the panel can keep rendering it during the refetch.
func (c *CommentCache) Get(id string) ([]linear.Comment, CommentState) {
	comments, found := c.values.Get(c.ctx, id)
	if _, loading := c.inflight[id]; loading {
		return comments, CommentsLoading
	}
	if !found {
		return nil, CommentsAbsent
	}
	if _, isStale := c.stale[id]; isStale {
		return comments, CommentsStale
	}
	return comments, CommentsFresh
}

// NeedsFetch reports whether viewing this issue should trigger a fetch.
func (c *CommentCache) NeedsFetch(id string) bool {
	_, state := c.Get(id)
	return state == CommentsAbsent || state == CommentsStale
}

// MarkLoading records an in-flight fetch. It returns false when a fetch
// for the same issue is already running, in which case no new effect
// should be issued.
func (c *CommentCache) MarkLoading(id string) bool {
	if _, ok := c.inflight[id]; ok {
		return false
	}
	c.inflight[id] = struct{}{}
	return true
}

// Store saves a fetched result, clearing the loading and stale marks.
func (c *CommentCache) Store(id string, comments []linear.Comment) {
	c.values.Set(c.ctx, id, comments, commentTTL)
	delete(c.inflight, id)
	delete(c.stale, id)
}

// Append adds a newly created comment to an existing cached value. Without
// a cached value the issue is marked stale so the next view refetches.
func (c *CommentCache) Append(id string, comment linear.Comment) {
	comments, found := c.values.Get(c.ctx, id)
	if !found {
		c.stale[id] = struct{}{}
		return
	}
	c.values.Set(c.ctx, id, append(comments, comment), commentTTL)
}

// Fail clears the loading mark after a failed fetch. Any cached value is
// left in place.
func (c *CommentCache) Fail(id string) {
	delete(c.inflight, id)
}

// Invalidate marks one issue's comments stale without dropping the value.
func (c *CommentCache) Invalidate(id string) {
	if _, found := c.values.Get(c.ctx, id); found {
		c.stale[id] = struct{}{}
	}
}

// InvalidateAll marks every cached value stale. Stale values keep
// rendering until their refetch lands; they are never silently dropped.
func (c *CommentCache) InvalidateAll() {
	for _, id := range c.values.Keys(c.ctx) {
		c.stale[id] = struct{}{}
	}
}

// Flush drops everything, used when switching teams.
func (c *CommentCache) Flush() {
	_ = c.values.Flush(c.ctx)
	c.inflight = make(map[string]struct{})
	c.stale = make(map[string]struct{})
}
