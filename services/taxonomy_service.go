package services

import (
	"context"

	"github.com/priyanshu14077/NeuronPress/errs"
	"github.com/priyanshu14077/NeuronPress/models"
	"github.com/priyanshu14077/NeuronPress/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TaxonomyStore holds the categories and tags posts link to. *database.TaxonomyRepo satisfies it.
type TaxonomyStore interface {
	Categories(ctx context.Context) ([]models.Category, error)
	Tags(ctx context.Context) ([]models.Tag, error)
	AddCategory(ctx context.Context, category *models.Category) error
	AddTag(ctx context.Context, tag *models.Tag) error
}

// TaxonomyService lists categories and tags for anyone and lets admins add new ones.
type TaxonomyService struct {
	store  TaxonomyStore
	logger zerolog.Logger
}

func NewTaxonomyService(store TaxonomyStore) *TaxonomyService {
	return &TaxonomyService{
		store:  store,
		logger: log.With().Str("component", "taxonomyService").Logger(),
	}
}

func (s *TaxonomyService) Categories(ctx context.Context) Result[[]models.Category] {
	categories, err := s.store.Categories(ctx)
	if err != nil {
		logFailure(s.logger, "listCategories", err)
		return Fail[[]models.Category](err, "Failed to fetch categories")
	}
	return ok(categories)
}

func (s *TaxonomyService) Tags(ctx context.Context) Result[[]models.Tag] {
	tags, err := s.store.Tags(ctx)
	if err != nil {
		logFailure(s.logger, "listTags", err)
		return Fail[[]models.Tag](err, "Failed to fetch tags")
	}
	return ok(tags)
}

func (s *TaxonomyService) CreateCategory(ctx context.Context, p Principal, in *validation.TaxonomyInput) Result[*models.Category] {
	const fallback = "Failed to create category"

	name, slug, err := s.prepare(p, in)
	if err != nil {
		return Fail[*models.Category](err, fallback)
	}
	category := &models.Category{Name: name, Slug: slug}
	if err := s.store.AddCategory(ctx, category); err != nil {
		logFailure(s.logger, "createCategory", err)
		return Fail[*models.Category](err, fallback)
	}
	return ok(category)
}

func (s *TaxonomyService) CreateTag(ctx context.Context, p Principal, in *validation.TaxonomyInput) Result[*models.Tag] {
	const fallback = "Failed to create tag"

	name, slug, err := s.prepare(p, in)
	if err != nil {
		return Fail[*models.Tag](err, fallback)
	}
	tag := &models.Tag{Name: name, Slug: slug}
	if err := s.store.AddTag(ctx, tag); err != nil {
		logFailure(s.logger, "createTag", err)
		return Fail[*models.Tag](err, fallback)
	}
	return ok(tag)
}

func (s *TaxonomyService) prepare(p Principal, in *validation.TaxonomyInput) (string, string, error) {
	if err := validation.Validate(in); err != nil {
		return "", "", err
	}
	if err := requirePrincipal(p); err != nil {
		return "", "", err
	}
	if !p.IsAdmin() {
		return "", "", errs.NewForbiddenError("Only administrators can manage categories and tags")
	}

	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Name)
	}
	if slug == "" {
		return "", "", errs.NewValidationError([]errs.FieldError{{Field: "slug", Message: "Slug is required"}})
	}
	return in.Name, slug, nil
}
