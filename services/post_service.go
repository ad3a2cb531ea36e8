package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/priyanshu14077/NeuronPress/database"
	"github.com/priyanshu14077/NeuronPress/errs"
	"github.com/priyanshu14077/NeuronPress/events"
	"github.com/priyanshu14077/NeuronPress/models"
	"github.com/priyanshu14077/NeuronPress/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

type PostPage struct {
	Posts      []models.Post `json:"posts"`
	Pagination Pagination    `json:"pagination"`
}

// PostService runs the post repository flow: validate, check ownership, persist,
// then announce the cache paths the change made stale.
type PostService struct {
	posts           PostStore
	authors         AuthorStore
	invalidator     Invalidator
	slugMaxAttempts int
	now             func() time.Time
	logger          zerolog.Logger
}

// NewPostService wires the flow. A nil invalidator drops invalidation events.
func NewPostService(posts PostStore, authors AuthorStore, invalidator Invalidator, slugMaxAttempts int) *PostService {
	if invalidator == nil {
		invalidator = events.Noop{}
	}
	if slugMaxAttempts <= 0 {
		slugMaxAttempts = DefaultSlugMaxAttempts
	}
	return &PostService{
		posts:           posts,
		authors:         authors,
		invalidator:     invalidator,
		slugMaxAttempts: slugMaxAttempts,
		now:             time.Now,
		logger:          log.With().Str("component", "postService").Logger(),
	}
}

func (s *PostService) Create(ctx context.Context, p Principal, in *validation.CreatePostInput) Result[*models.Post] {
	const fallback = "Failed to create post"

	if err := validation.Validate(in); err != nil {
		return Fail[*models.Post](err, fallback)
	}
	if err := requirePrincipal(p); err != nil {
		return Fail[*models.Post](err, fallback)
	}

	if err := s.authors.Ensure(ctx, p.author()); err != nil {
		logFailure(s.logger, "createPost", err)
		return Fail[*models.Post](err, fallback)
	}

	post := &models.Post{
		Title:           in.Title,
		Slug:            in.Slug,
		Excerpt:         in.Excerpt,
		Content:         in.Content,
		Status:          in.Status,
		PublishedAt:     in.PublishedAt,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		Keywords:        in.Keywords,
		ReadTime:        *in.ReadTime,
		AIGenerated:     in.AIGenerated,
		AIPrompt:        in.AIPrompt,
		AuthorID:        p.ID,
	}
	if err := s.posts.Create(ctx, post, in.CategoryIDs, in.TagIDs); err != nil {
		logFailure(s.logger, "createPost", err)
		return Fail[*models.Post](err, fallback)
	}

	created, err := s.posts.FindByIDPrimary(ctx, post.ID)
	if err != nil {
		logFailure(s.logger, "createPost", err)
		return Fail[*models.Post](err, fallback)
	}

	s.invalidator.Invalidate(ctx, events.ForPost(events.ActionCreated, created.ID))
	return ok(created)
}

func (s *PostService) Update(ctx context.Context, p Principal, in *validation.UpdatePostInput) Result[*models.Post] {
	const fallback = "Failed to update post"

	if err := validation.Validate(in); err != nil {
		return Fail[*models.Post](err, fallback)
	}
	existing, err := s.owned(ctx, p, in.ID)
	if err != nil {
		logFailure(s.logger, "updatePost", err)
		return Fail[*models.Post](err, fallback)
	}

	if err := s.posts.Update(ctx, in.ID, in.Changes(), in.CategoryIDs, in.TagIDs); err != nil {
		logFailure(s.logger, "updatePost", err)
		return Fail[*models.Post](err, fallback)
	}

	updated, err := s.posts.FindByIDPrimary(ctx, in.ID)
	if err != nil {
		logFailure(s.logger, "updatePost", err)
		return Fail[*models.Post](err, fallback)
	}

	s.invalidator.Invalidate(ctx, events.ForPost(events.ActionUpdated, updated.ID, updated.Slug, existing.Slug))
	return ok(updated)
}

// Publish sets PUBLISHED. publishedAt is the supplied time, else now.
func (s *PostService) Publish(ctx context.Context, p Principal, in *validation.PublishPostInput) Result[*models.Post] {
	const fallback = "Failed to publish post"

	if err := validation.Validate(in); err != nil {
		return Fail[*models.Post](err, fallback)
	}
	if _, err := s.owned(ctx, p, in.ID); err != nil {
		logFailure(s.logger, "publishPost", err)
		return Fail[*models.Post](err, fallback)
	}

	publishedAt := s.now()
	if in.PublishedAt != nil {
		publishedAt = *in.PublishedAt
	}

	if err := s.posts.Publish(ctx, in.ID, publishedAt); err != nil {
		logFailure(s.logger, "publishPost", err)
		return Fail[*models.Post](err, fallback)
	}

	published, err := s.posts.FindByIDPrimary(ctx, in.ID)
	if err != nil {
		logFailure(s.logger, "publishPost", err)
		return Fail[*models.Post](err, fallback)
	}

	s.invalidator.Invalidate(ctx, events.ForPost(events.ActionPublished, published.ID, published.Slug))
	return ok(published)
}

func (s *PostService) Delete(ctx context.Context, p Principal, id uuid.UUID) Result[any] {
	const fallback = "Failed to delete post"

	if id == uuid.Nil {
		return Fail[any](errs.NewValidationError([]errs.FieldError{{Field: "id", Message: "Post ID is required"}}), fallback)
	}
	existing, err := s.owned(ctx, p, id)
	if err != nil {
		logFailure(s.logger, "deletePost", err)
		return Fail[any](err, fallback)
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		logFailure(s.logger, "deletePost", err)
		return Fail[any](err, fallback)
	}

	s.invalidator.Invalidate(ctx, events.ForPost(events.ActionDeleted, id, existing.Slug))
	return Result[any]{Success: true}
}

func (s *PostService) List(ctx context.Context, in *validation.PostQueryInput) Result[*PostPage] {
	const fallback = "Failed to fetch posts"

	if err := validation.Validate(in); err != nil {
		return Fail[*PostPage](err, fallback)
	}

	posts, total, err := s.posts.List(ctx, database.PostFilter{
		Search:     in.Search,
		Status:     in.Status,
		AuthorID:   in.AuthorID,
		CategoryID: in.CategoryID,
		TagID:      in.TagID,
		SortBy:     in.SortBy,
		Desc:       in.SortOrder == "desc",
		Offset:     in.Offset(),
		Limit:      in.Limit,
	})
	if err != nil {
		logFailure(s.logger, "listPosts", err)
		return Fail[*PostPage](err, fallback)
	}
	if posts == nil {
		posts = []models.Post{}
	}

	return ok(&PostPage{
		Posts: posts,
		Pagination: Pagination{
			Page:       in.Page,
			Limit:      in.Limit,
			TotalCount: total,
			TotalPages: int(math.Ceil(float64(total) / float64(in.Limit))),
		},
	})
}

// GetBySlug counts a view and returns the post as it was read, before the increment.
func (s *PostService) GetBySlug(ctx context.Context, slug string) Result[*models.Post] {
	const fallback = "Failed to fetch post"

	post, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		logFailure(s.logger, "getPostBySlug", err)
		return Fail[*models.Post](err, fallback)
	}

	if err := s.posts.IncrementViews(ctx, post.ID); err != nil {
		logFailure(s.logger, "getPostBySlug", err)
		return Fail[*models.Post](err, fallback)
	}
	return ok(post)
}

func (s *PostService) GetByID(ctx context.Context, id uuid.UUID) Result[*models.Post] {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		logFailure(s.logger, "getPostByID", err)
		return Fail[*models.Post](err, "Failed to fetch post")
	}
	return ok(post)
}

// GenerateSlug derives an unused slug from a title.
func (s *PostService) GenerateSlug(ctx context.Context, in *validation.SlugInput) Result[string] {
	const fallback = "Failed to generate slug"

	if err := validation.Validate(in); err != nil {
		return Fail[string](err, fallback)
	}

	base := Slugify(in.Title)
	if base == "" {
		err := errs.NewValidationError([]errs.FieldError{{Field: "title", Message: "Title must contain at least one letter or digit"}})
		return Fail[string](err, fallback)
	}

	slug, err := uniqueSlug(ctx, s.posts, base, s.slugMaxAttempts)
	if err != nil {
		logFailure(s.logger, "generateSlug", err)
		return Fail[string](err, fallback)
	}
	return ok(slug)
}

// owned loads the post and checks that p may modify it.
func (s *PostService) owned(ctx context.Context, p Principal, id uuid.UUID) (*models.Post, error) {
	if err := requirePrincipal(p); err != nil {
		return nil, err
	}
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanModify(post) {
		return nil, errs.NewNotOwnerError()
	}
	return post, nil
}
