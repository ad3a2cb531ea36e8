package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/priyanshu14077/NeuronPress/errs"
	"github.com/priyanshu14077/NeuronPress/models"
	"github.com/priyanshu14077/NeuronPress/services"
	"github.com/priyanshu14077/NeuronPress/validation"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	postHandler     postHandler
	aiHandler       aiHandler
	taxonomyHandler taxonomyHandler
	healthHandler   healthHandler
}

// ErrorResponse is the failure envelope written outside the services.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Fields  []errs.FieldError `json:"fields,omitempty"`
}

// postFlow is implemented by *services.PostService.
type postFlow interface {
	Create(ctx context.Context, p services.Principal, in *validation.CreatePostInput) services.Result[*models.Post]
	Update(ctx context.Context, p services.Principal, in *validation.UpdatePostInput) services.Result[*models.Post]
	Publish(ctx context.Context, p services.Principal, in *validation.PublishPostInput) services.Result[*models.Post]
	Delete(ctx context.Context, p services.Principal, id uuid.UUID) services.Result[any]
	List(ctx context.Context, in *validation.PostQueryInput) services.Result[*services.PostPage]
	GetBySlug(ctx context.Context, slug string) services.Result[*models.Post]
	GetByID(ctx context.Context, id uuid.UUID) services.Result[*models.Post]
	GenerateSlug(ctx context.Context, in *validation.SlugInput) services.Result[string]
}

// aiFlow is implemented by *services.AIService.
type aiFlow interface {
	GenerateContent(ctx context.Context, p services.Principal, in *validation.AIGenerateInput) services.Result[string]
	GenerateTitles(ctx context.Context, p services.Principal, in *validation.AIGenerateTitleInput) services.Result[[]string]
	GenerateOutline(ctx context.Context, p services.Principal, in *validation.AIGenerateOutlineInput) services.Result[*services.Outline]
	GenerateExcerpt(ctx context.Context, p services.Principal, in *validation.AIGenerateExcerptInput) services.Result[string]
	GenerateKeywords(ctx context.Context, p services.Principal, in *validation.AIGenerateKeywordsInput) services.Result[[]string]
	ImproveContent(ctx context.Context, p services.Principal, in *validation.AIImproveContentInput) services.Result[string]
	History(ctx context.Context, p services.Principal, in *validation.GenerationHistoryInput) services.Result[[]models.AIGeneration]
}

// taxonomyFlow is implemented by *services.TaxonomyService.
type taxonomyFlow interface {
	Categories(ctx context.Context) services.Result[[]models.Category]
	Tags(ctx context.Context) services.Result[[]models.Tag]
	CreateCategory(ctx context.Context, p services.Principal, in *validation.TaxonomyInput) services.Result[*models.Category]
	CreateTag(ctx context.Context, p services.Principal, in *validation.TaxonomyInput) services.Result[*models.Tag]
}

type pinger interface {
	Ping(ctx context.Context) error
}

var (
	_ postFlow     = (*services.PostService)(nil)
	_ aiFlow       = (*services.AIService)(nil)
	_ taxonomyFlow = (*services.TaxonomyService)(nil)
)
