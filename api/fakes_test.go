package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/priyanshu14077/NeuronPress/models"
	"github.com/priyanshu14077/NeuronPress/services"
	"github.com/priyanshu14077/NeuronPress/validation"
)

type fakePosts struct {
	createFunc       func(p services.Principal, in *validation.CreatePostInput) services.Result[*models.Post]
	updateFunc       func(p services.Principal, in *validation.UpdatePostInput) services.Result[*models.Post]
	publishFunc      func(p services.Principal, in *validation.PublishPostInput) services.Result[*models.Post]
	deleteFunc       func(p services.Principal, id uuid.UUID) services.Result[any]
	listFunc         func(in *validation.PostQueryInput) services.Result[*services.PostPage]
	getBySlugFunc    func(slug string) services.Result[*models.Post]
	getByIDFunc      func(id uuid.UUID) services.Result[*models.Post]
	generateSlugFunc func(in *validation.SlugInput) services.Result[string]
	calls            []string
}

func (f *fakePosts) Create(_ context.Context, p services.Principal, in *validation.CreatePostInput) services.Result[*models.Post] {
	f.calls = append(f.calls, "Create")
	if f.createFunc != nil {
		return f.createFunc(p, in)
	}
	return services.Result[*models.Post]{Success: true, Data: &models.Post{ID: uuid.New(), Title: in.Title}}
}

func (f *fakePosts) Update(_ context.Context, p services.Principal, in *validation.UpdatePostInput) services.Result[*models.Post] {
	f.calls = append(f.calls, "Update")
	if f.updateFunc != nil {
		return f.updateFunc(p, in)
	}
	return services.Result[*models.Post]{Success: true, Data: &models.Post{ID: in.ID}}
}

func (f *fakePosts) Publish(_ context.Context, p services.Principal, in *validation.PublishPostInput) services.Result[*models.Post] {
	f.calls = append(f.calls, "Publish")
	if f.publishFunc != nil {
		return f.publishFunc(p, in)
	}
	return services.Result[*models.Post]{Success: true, Data: &models.Post{ID: in.ID}}
}

func (f *fakePosts) Delete(_ context.Context, p services.Principal, id uuid.UUID) services.Result[any] {
	f.calls = append(f.calls, "Delete")
	if f.deleteFunc != nil {
		return f.deleteFunc(p, id)
	}
	return services.Result[any]{Success: true}
}

func (f *fakePosts) List(_ context.Context, in *validation.PostQueryInput) services.Result[*services.PostPage] {
	f.calls = append(f.calls, "List")
	if f.listFunc != nil {
		return f.listFunc(in)
	}
	return services.Result[*services.PostPage]{Success: true, Data: &services.PostPage{Posts: []models.Post{}}}
}

func (f *fakePosts) GetBySlug(_ context.Context, slug string) services.Result[*models.Post] {
	f.calls = append(f.calls, "GetBySlug")
	if f.getBySlugFunc != nil {
		return f.getBySlugFunc(slug)
	}
	return services.Result[*models.Post]{Success: true, Data: &models.Post{Slug: slug}}
}

func (f *fakePosts) GetByID(_ context.Context, id uuid.UUID) services.Result[*models.Post] {
	f.calls = append(f.calls, "GetByID")
	if f.getByIDFunc != nil {
		return f.getByIDFunc(id)
	}
	return services.Result[*models.Post]{Success: true, Data: &models.Post{ID: id}}
}

func (f *fakePosts) GenerateSlug(_ context.Context, in *validation.SlugInput) services.Result[string] {
	f.calls = append(f.calls, "GenerateSlug")
	if f.generateSlugFunc != nil {
		return f.generateSlugFunc(in)
	}
	return services.Result[string]{Success: true, Data: services.Slugify(in.Title)}
}

type fakeAI struct {
	contentFunc func(p services.Principal, in *validation.AIGenerateInput) services.Result[string]
	outlineFunc func(p services.Principal, in *validation.AIGenerateOutlineInput) services.Result[*services.Outline]
	historyFunc func(p services.Principal, in *validation.GenerationHistoryInput) services.Result[[]models.AIGeneration]
	calls       []string
}

func (f *fakeAI) GenerateContent(_ context.Context, p services.Principal, in *validation.AIGenerateInput) services.Result[string] {
	f.calls = append(f.calls, "GenerateContent")
	if f.contentFunc != nil {
		return f.contentFunc(p, in)
	}
	return services.Result[string]{Success: true, Data: "content"}
}

func (f *fakeAI) GenerateTitles(context.Context, services.Principal, *validation.AIGenerateTitleInput) services.Result[[]string] {
	f.calls = append(f.calls, "GenerateTitles")
	return services.Result[[]string]{Success: true, Data: []string{"A", "B"}}
}

func (f *fakeAI) GenerateOutline(_ context.Context, p services.Principal, in *validation.AIGenerateOutlineInput) services.Result[*services.Outline] {
	f.calls = append(f.calls, "GenerateOutline")
	if f.outlineFunc != nil {
		return f.outlineFunc(p, in)
	}
	return services.Result[*services.Outline]{Success: true, Data: &services.Outline{Title: in.Topic}}
}

func (f *fakeAI) GenerateExcerpt(context.Context, services.Principal, *validation.AIGenerateExcerptInput) services.Result[string] {
	f.calls = append(f.calls, "GenerateExcerpt")
	return services.Result[string]{Success: true, Data: "excerpt"}
}

func (f *fakeAI) GenerateKeywords(context.Context, services.Principal, *validation.AIGenerateKeywordsInput) services.Result[[]string] {
	f.calls = append(f.calls, "GenerateKeywords")
	return services.Result[[]string]{Success: true, Data: []string{"go"}}
}

func (f *fakeAI) ImproveContent(context.Context, services.Principal, *validation.AIImproveContentInput) services.Result[string] {
	f.calls = append(f.calls, "ImproveContent")
	return services.Result[string]{Success: true, Data: "improved"}
}

func (f *fakeAI) History(_ context.Context, p services.Principal, in *validation.GenerationHistoryInput) services.Result[[]models.AIGeneration] {
	f.calls = append(f.calls, "History")
	if f.historyFunc != nil {
		return f.historyFunc(p, in)
	}
	return services.Result[[]models.AIGeneration]{Success: true, Data: []models.AIGeneration{}}
}

type fakeTaxonomy struct {
	createCategoryFunc func(p services.Principal, in *validation.TaxonomyInput) services.Result[*models.Category]
}

func (f *fakeTaxonomy) Categories(context.Context) services.Result[[]models.Category] {
	return services.Result[[]models.Category]{Success: true, Data: []models.Category{{Name: "Go", Slug: "go"}}}
}

func (f *fakeTaxonomy) Tags(context.Context) services.Result[[]models.Tag] {
	return services.Result[[]models.Tag]{Success: true, Data: []models.Tag{}}
}

func (f *fakeTaxonomy) CreateCategory(_ context.Context, p services.Principal, in *validation.TaxonomyInput) services.Result[*models.Category] {
	if f.createCategoryFunc != nil {
		return f.createCategoryFunc(p, in)
	}
	return services.Result[*models.Category]{Success: true, Data: &models.Category{Name: in.Name}}
}

func (f *fakeTaxonomy) CreateTag(_ context.Context, _ services.Principal, in *validation.TaxonomyInput) services.Result[*models.Tag] {
	return services.Result[*models.Tag]{Success: true, Data: &models.Tag{Name: in.Name}}
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error {
	return f.err
}

type testServer struct {
	posts    *fakePosts
	ai       *fakeAI
	taxonomy *fakeTaxonomy
	db       *fakePinger
	cfg      map[string]string
}

func newTestServer() *testServer {
	return &testServer{
		posts:    &fakePosts{},
		ai:       &fakeAI{},
		taxonomy: &fakeTaxonomy{},
		db:       &fakePinger{},
		cfg: map[string]string{
			"JWT_SECRET":       testSecret,
			"ACCEPTED_ORIGINS": "https://app.example",
		},
	}
}

func (s *testServer) router() http.Handler {
	deps := Dependencies{Database: s.db, Posts: s.posts, AI: s.ai, Taxonomy: s.taxonomy}
	return newRouter(deps, withConfig(s.cfg), withStartupTime(time.Now().Add(-time.Minute)))
}
