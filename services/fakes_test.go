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

type fakePostStore struct {
	createFunc          func(ctx context.Context, post *models.Post, categoryIDs, tagIDs []uuid.UUID) error
	findByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.Post, error)
	findByIDPrimaryFunc func(ctx context.Context, id uuid.UUID) (*models.Post, error)
	findBySlugFunc      func(ctx context.Context, slug string) (*models.Post, error)
	incrementViewsFunc  func(ctx context.Context, id uuid.UUID) error
	updateFunc          func(ctx context.Context, id uuid.UUID, changes map[string]any, categoryIDs, tagIDs []uuid.UUID) error
	publishFunc         func(ctx context.Context, id uuid.UUID, publishedAt time.Time) error
	deleteFunc          func(ctx context.Context, id uuid.UUID) error
	listFunc            func(ctx context.Context, filter database.PostFilter) ([]models.Post, int64, error)
	slugExistsFunc      func(ctx context.Context, slug string) (bool, error)

	calls []string
}

func (f *fakePostStore) Create(ctx context.Context, post *models.Post, categoryIDs, tagIDs []uuid.UUID) error {
	f.calls = append(f.calls, "Create")
	if f.createFunc != nil {
		return f.createFunc(ctx, post, categoryIDs, tagIDs)
	}
	post.ID = uuid.New()
	return nil
}

func (f *fakePostStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	f.calls = append(f.calls, "FindByID")
	return f.findByIDFunc(ctx, id)
}

func (f *fakePostStore) FindByIDPrimary(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	f.calls = append(f.calls, "FindByIDPrimary")
	if f.findByIDPrimaryFunc != nil {
		return f.findByIDPrimaryFunc(ctx, id)
	}
	return &models.Post{ID: id}, nil
}

func (f *fakePostStore) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	f.calls = append(f.calls, "FindBySlug")
	return f.findBySlugFunc(ctx, slug)
}

func (f *fakePostStore) IncrementViews(ctx context.Context, id uuid.UUID) error {
	f.calls = append(f.calls, "IncrementViews")
	if f.incrementViewsFunc != nil {
		return f.incrementViewsFunc(ctx, id)
	}
	return nil
}

func (f *fakePostStore) Update(ctx context.Context, id uuid.UUID, changes map[string]any, categoryIDs, tagIDs []uuid.UUID) error {
	f.calls = append(f.calls, "Update")
	if f.updateFunc != nil {
		return f.updateFunc(ctx, id, changes, categoryIDs, tagIDs)
	}
	return nil
}

func (f *fakePostStore) Publish(ctx context.Context, id uuid.UUID, publishedAt time.Time) error {
	f.calls = append(f.calls, "Publish")
	if f.publishFunc != nil {
		return f.publishFunc(ctx, id, publishedAt)
	}
	return nil
}

func (f *fakePostStore) Delete(ctx context.Context, id uuid.UUID) error {
	f.calls = append(f.calls, "Delete")
	if f.deleteFunc != nil {
		return f.deleteFunc(ctx, id)
	}
	return nil
}

func (f *fakePostStore) List(ctx context.Context, filter database.PostFilter) ([]models.Post, int64, error) {
	f.calls = append(f.calls, "List")
	return f.listFunc(ctx, filter)
}

func (f *fakePostStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	f.calls = append(f.calls, "SlugExists")
	return f.slugExistsFunc(ctx, slug)
}

type fakeAuthorStore struct {
	ensured []*models.Author
	err     error
}

func (f *fakeAuthorStore) Ensure(_ context.Context, author *models.Author) error {
	f.ensured = append(f.ensured, author)
	return f.err
}

type fakeGenerationStore struct {
	createFunc     func(ctx context.Context, generation *models.AIGeneration) error
	listByUserFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]models.AIGeneration, error)

	created []*models.AIGeneration
}

func (f *fakeGenerationStore) Create(ctx context.Context, generation *models.AIGeneration) error {
	f.created = append(f.created, generation)
	if f.createFunc != nil {
		return f.createFunc(ctx, generation)
	}
	return nil
}

func (f *fakeGenerationStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.AIGeneration, error) {
	return f.listByUserFunc(ctx, userID, limit)
}

type fakeCompleter struct {
	completeFunc func(ctx context.Context, req llm.Request) (llm.Completion, error)

	requests []llm.Request
}

func (f *fakeCompleter) Complete(ctx context.Context, req llm.Request) (llm.Completion, error) {
	f.requests = append(f.requests, req)
	return f.completeFunc(ctx, req)
}

func (f *fakeCompleter) ModelName() string {
	return llm.DefaultModel
}

func replying(text string, usage *llm.Usage) *fakeCompleter {
	return &fakeCompleter{completeFunc: func(context.Context, llm.Request) (llm.Completion, error) {
		return llm.Completion{Text: text, Usage: usage}, nil
	}}
}

type recordingInvalidator struct {
	got []events.Invalidation
}

func (r *recordingInvalidator) Invalidate(_ context.Context, inv events.Invalidation) {
	r.got = append(r.got, inv)
}
