// Package events carries the outbound "these views are stale" notifications
// emitted after every post mutation.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreated   Action = "post.created"
	ActionUpdated   Action = "post.updated"
	ActionPublished Action = "post.published"
	ActionDeleted   Action = "post.deleted"
)

const (
	PathPosts     = "/posts"
	PathDashboard = "/dashboard"
)

// Invalidation names the cached presentation paths made stale by one mutation.
type Invalidation struct {
	Action     Action    `json:"action"`
	PostID     uuid.UUID `json:"postId"`
	Slug       string    `json:"slug,omitempty"`
	Paths      []string  `json:"paths"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher delivers invalidations. It is fire and forget: implementations log
// their own failures and never block the caller's result on them.
type Publisher interface {
	Invalidate(ctx context.Context, inv Invalidation)
}

// PostPath is the detail view of a single post.
func PostPath(slug string) string {
	return PathPosts + "/" + slug
}

// ForPost builds the invalidation for a mutation of one post. The detail path is
// included for every slug given, so a renamed post invalidates both old and new.
func ForPost(action Action, postID uuid.UUID, slugs ...string) Invalidation {
	paths := []string{PathPosts, PathDashboard}
	current := ""
	seen := map[string]bool{}
	for _, slug := range slugs {
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		if current == "" {
			current = slug
		}
		paths = append(paths, PostPath(slug))
	}

	return Invalidation{
		Action:     action,
		PostID:     postID,
		Slug:       current,
		Paths:      paths,
		OccurredAt: time.Now().UTC(),
	}
}

// Noop drops every invalidation.
type Noop struct{}

func (Noop) Invalidate(context.Context, Invalidation) {}

// Multi fans an invalidation out to each publisher in order.
type Multi []Publisher

func (m Multi) Invalidate(ctx context.Context, inv Invalidation) {
	for _, p := range m {
		p.Invalidate(ctx, inv)
	}
}
