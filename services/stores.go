package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/priyanshu14077/NeuronPress/database"
	"github.com/priyanshu14077/NeuronPress/events"
	"github.com/priyanshu14077/NeuronPress/llm"
	"github.com/priyanshu14077/NeuronPress/models"
)

// PostStore is the persistence the post flow needs. *database.PostRepo satisfies it.
type PostStore interface {
	Create(ctx context.Context, post *models.Post, categoryIDs, tagIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	FindByIDPrimary(ctx context.Context, id uuid.UUID) (*models.Post, error)
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, changes map[string]any, categoryIDs, tagIDs []uuid.UUID) error
	Publish(ctx context.Context, id uuid.UUID, publishedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter database.PostFilter) ([]models.Post, int64, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// AuthorStore makes sure a principal has a matching author row.
type AuthorStore interface {
	Ensure(ctx context.Context, author *models.Author) error
}

// GenerationStore is the append-only AI generation history.
type GenerationStore interface {
	Create(ctx context.Context, generation *models.AIGeneration) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.AIGeneration, error)
}

// Invalidator is told which cached presentation paths a mutation made stale.
type Invalidator interface {
	Invalidate(ctx context.Context, inv events.Invalidation)
}

// Completer produces one completion. *llm.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (llm.Completion, error)
	ModelName() string
}

var (
	_ PostStore       = (*database.PostRepo)(nil)
	_ AuthorStore     = (*database.AuthorRepo)(nil)
	_ GenerationStore = (*database.AIGenerationRepo)(nil)
	_ TaxonomyStore   = (*database.TaxonomyRepo)(nil)
	_ Completer       = (*llm.Client)(nil)
	_ Invalidator     = events.Multi{}
)
