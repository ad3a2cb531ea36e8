package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/priyanshu14077/NeuronPress/errs"
	"github.com/priyanshu14077/NeuronPress/models"
	"github.com/priyanshu14077/NeuronPress/services"
	"github.com/priyanshu14077/NeuronPress/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

var authorID = uuid.MustParse("0b7f7c5e-4a43-4d3b-9a4e-6f1f1d2f9a10")

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Fields  []errs.FieldError `json:"fields"`
}

func signToken(t *testing.T, method jwt.SigningMethod, claims principalClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func validClaims() principalClaims {
	return principalClaims{
		Name:  "Ada",
		Email: "ada@example.com",
		Role:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   authorID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func do(t *testing.T, h http.Handler, method, target, body, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "1m0s", body.Uptime)

	s.db.err = errors.New("connection refused")
	rec = httptest.NewRecorder()
	s.router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unreachable", body.Database)
}

func TestListPostsParsesQuery(t *testing.T) {
	s := newTestServer()
	var got *validation.PostQueryInput
	s.posts.listFunc = func(in *validation.PostQueryInput) services.Result[*services.PostPage] {
		got = in
		return services.Result[*services.PostPage]{Success: true, Data: &services.PostPage{Posts: []models.Post{}}}
	}

	target := "/posts?page=2&limit=5&search=go%25&status=PUBLISHED&authorId=" + authorID.String() + "&sortBy=title&sortOrder=asc"
	rec, env := do(t, s.router(), http.MethodGet, target, "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 5, got.Limit)
	assert.Equal(t, "go%", got.Search)
	assert.Equal(t, models.PostStatusPublished, got.Status)
	require.NotNil(t, got.AuthorID)
	assert.Equal(t, authorID, *got.AuthorID)
	assert.Nil(t, got.CategoryID)
	assert.Equal(t, "title", got.SortBy)
	assert.Equal(t, "asc", got.SortOrder)
}

func TestListPostsRejectsMalformedQuery(t *testing.T) {
	s := newTestServer()

	rec, env := do(t, s.router(), http.MethodGet, "/posts?page=two&tagId=nope", "", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	require.Len(t, env.Fields, 2)
	assert.Equal(t, "page", env.Fields[0].Field)
	assert.Equal(t, "tagId", env.Fields[1].Field)
	assert.Empty(t, s.posts.calls)
}

func TestAuthentication(t *testing.T) {
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	badSubject := validClaims()
	badSubject.Subject = "not-a-uuid"

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"no header", "", http.StatusUnauthorized, "missing access token"},
		{"not bearer", "Basic abc", http.StatusUnauthorized, "missing access token"},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "missing access token"},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized, "invalid access token"},
		{"expired", "Bearer " + signToken(t, jwt.SigningMethodHS256, expired), http.StatusUnauthorized, "expired access token"},
		{"wrong algorithm", "Bearer " + signToken(t, jwt.SigningMethodHS512, validClaims()), http.StatusUnauthorized, "invalid access token"},
		{"subject not a uuid", "Bearer " + signToken(t, jwt.SigningMethodHS256, badSubject), http.StatusUnauthorized, "invalid access token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"title":"x"}`))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			s.router().ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			var env envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.False(t, env.Success)
			assert.Equal(t, tt.message, env.Error)
			assert.Empty(t, s.posts.calls)
		})
	}
}

func TestCreatePostForwardsPrincipal(t *testing.T) {
	s := newTestServer()
	var got services.Principal
	s.posts.createFunc = func(p services.Principal, in *validation.CreatePostInput) services.Result[*models.Post] {
		got = p
		return services.Result[*models.Post]{Success: true, Data: &models.Post{ID: uuid.New(), Title: in.Title, AuthorID: p.ID}}
	}

	rec, env := do(t, s.router(), http.MethodPost, "/posts", `{"title":"Hello","slug":"hello","content":"Body"}`,
		signToken(t, jwt.SigningMethodHS256, validClaims()))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, services.Principal{ID: authorID, Name: "Ada", Email: "ada@example.com", Role: "admin"}, got)

	var post models.Post
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.Equal(t, "Hello", post.Title)
}

func TestInsecureDevPrincipal(t *testing.T) {
	tests := []struct {
		name     string
		insecure string
		bearer   string
		status   int
	}{
		{"uuid bearer accepted", "true", authorID.String(), http.StatusCreated},
		{"non uuid bearer rejected", "true", "alice", http.StatusUnauthorized},
		{"no secret and not insecure", "false", authorID.String(), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			s.cfg["JWT_SECRET"] = ""
			s.cfg["AUTH_INSECURE_DEV"] = tt.insecure
			var got services.Principal
			s.posts.createFunc = func(p services.Principal, _ *validation.CreatePostInput) services.Result[*models.Post] {
				got = p
				return services.Result[*models.Post]{Success: true, Data: &models.Post{}}
			}

			rec, _ := do(t, s.router(), http.MethodPost, "/posts", `{}`, tt.bearer)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusCreated {
				assert.Equal(t, authorID, got.ID)
			}
		})
	}
}

func TestFailureStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", errs.NewNotFound("Post"), http.StatusNotFound, "Post not found"},
		{"not owner", errs.NewNotOwnerError(), http.StatusForbidden, "You are not allowed to modify this post"},
		{"conflict", errs.NewAlreadyExists("Post"), http.StatusConflict, ""},
		{"validation", errs.NewValidationError([]errs.FieldError{{Field: "title", Message: "Title is required"}}), http.StatusBadRequest, "validation failed"},
		{"completion", errs.NewCompletionError(errors.New("timeout")), http.StatusBadGateway, "Failed to generate content with AI"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Failed to fetch post"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			s.posts.getByIDFunc = func(uuid.UUID) services.Result[*models.Post] {
				return services.Fail[*models.Post](tt.err, "Failed to fetch post")
			}

			rec, env := do(t, s.router(), http.MethodGet, "/posts/"+uuid.NewString(), "", "")

			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, env.Success)
			if tt.message != "" {
				assert.Equal(t, tt.message, env.Error)
			}
			assert.JSONEq(t, "null", nullIfEmpty(env.Data))
		})
	}
}

func nullIfEmpty(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	return string(raw)
}

func TestValidationFieldsReachTheBody(t *testing.T) {
	s := newTestServer()
	s.posts.generateSlugFunc = func(in *validation.SlugInput) services.Result[string] {
		return services.Fail[string](validation.Validate(in), "Failed to generate slug")
	}

	rec, env := do(t, s.router(), http.MethodPost, "/posts/slug", `{"title":""}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, env.Fields, 1)
	assert.Equal(t, "title", env.Fields[0].Field)
}

func TestInvalidJSONBody(t *testing.T) {
	s := newTestServer()

	rec, env := do(t, s.router(), http.MethodPost, "/posts", `{"title":`, signToken(t, jwt.SigningMethodHS256, validClaims()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid JSON", env.Error)
	assert.Empty(t, s.posts.calls)
}

func TestInvalidPostID(t *testing.T) {
	s := newTestServer()

	rec, env := do(t, s.router(), http.MethodGet, "/posts/not-a-uuid", "", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, env.Fields, 1)
	assert.Equal(t, "id", env.Fields[0].Field)
	assert.Empty(t, s.posts.calls)
}

func TestGetPostBySlug(t *testing.T) {
	s := newTestServer()

	rec, env := do(t, s.router(), http.MethodGet, "/posts/slug/hello-world", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var post models.Post
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, []string{"GetBySlug"}, s.posts.calls)
}

func TestUpdateUsesPathID(t *testing.T) {
	s := newTestServer()
	pathID := uuid.New()
	var got *validation.UpdatePostInput
	s.posts.updateFunc = func(_ services.Principal, in *validation.UpdatePostInput) services.Result[*models.Post] {
		got = in
		return services.Result[*models.Post]{Success: true, Data: &models.Post{ID: in.ID}}
	}

	body := `{"id":"` + uuid.NewString() + `","title":"Renamed"}`
	rec, _ := do(t, s.router(), http.MethodPut, "/posts/"+pathID.String(), body, signToken(t, jwt.SigningMethodHS256, validClaims()))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, pathID, got.ID)
	require.NotNil(t, got.Title)
	assert.Equal(t, "Renamed", *got.Title)
}

func TestPublishBodyIsOptional(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		body string
		want *time.Time
	}{
		{"no body", "", nil},
		{"with time", `{"publishedAt":"2024-03-01T09:00:00Z"}`, &at},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			var got *validation.PublishPostInput
			s.posts.publishFunc = func(_ services.Principal, in *validation.PublishPostInput) services.Result[*models.Post] {
				got = in
				return services.Result[*models.Post]{Success: true, Data: &models.Post{ID: in.ID}}
			}

			id := uuid.New()
			rec, _ := do(t, s.router(), http.MethodPost, "/posts/"+id.String()+"/publish", tt.body, signToken(t, jwt.SigningMethodHS256, validClaims()))

			assert.Equal(t, http.StatusOK, rec.Code)
			require.NotNil(t, got)
			assert.Equal(t, id, got.ID)
			if tt.want == nil {
				assert.Nil(t, got.PublishedAt)
			} else {
				require.NotNil(t, got.PublishedAt)
				assert.True(t, tt.want.Equal(*got.PublishedAt))
			}
		})
	}
}

func TestDeletePost(t *testing.T) {
	s := newTestServer()

	rec, env := do(t, s.router(), http.MethodDelete, "/posts/"+uuid.NewString(), "", signToken(t, jwt.SigningMethodHS256, validClaims()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, []string{"Delete"}, s.posts.calls)
}

func TestAIRoutes(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, validClaims())
	tests := []struct {
		path string
		call string
	}{
		{"/ai/content", "GenerateContent"},
		{"/ai/titles", "GenerateTitles"},
		{"/ai/outline", "GenerateOutline"},
		{"/ai/excerpt", "GenerateExcerpt"},
		{"/ai/keywords", "GenerateKeywords"},
		{"/ai/improve", "ImproveContent"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			s := newTestServer()

			rec, env := do(t, s.router(), http.MethodPost, tt.path, `{}`, token)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, env.Success)
			assert.Equal(t, []string{tt.call}, s.ai.calls)
		})
	}
}

func TestAIRoutesRequirePrincipal(t *testing.T) {
	s := newTestServer()

	rec, _ := do(t, s.router(), http.MethodPost, "/ai/content", `{"type":"CONTENT","prompt":"x"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, s.ai.calls)
}

func TestOutlineInvalidFormatIs422(t *testing.T) {
	s := newTestServer()
	s.ai.outlineFunc = func(services.Principal, *validation.AIGenerateOutlineInput) services.Result[*services.Outline] {
		return services.Fail[*services.Outline](errs.NewInvalidFormatError("outline", errors.New("bad json")), "Failed to generate outline")
	}

	rec, env := do(t, s.router(), http.MethodPost, "/ai/outline", `{"topic":"Go"}`, signToken(t, jwt.SigningMethodHS256, validClaims()))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Invalid outline format generated", env.Error)
}

func TestListGenerationsLimit(t *testing.T) {
	s := newTestServer()
	var got services.Principal
	var limit int
	s.ai.historyFunc = func(p services.Principal, in *validation.GenerationHistoryInput) services.Result[[]models.AIGeneration] {
		got, limit = p, in.Limit
		return services.Result[[]models.AIGeneration]{Success: true, Data: []models.AIGeneration{}}
	}
	token := signToken(t, jwt.SigningMethodHS256, validClaims())

	rec, env := do(t, s.router(), http.MethodGet, "/ai/generations?limit=25", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", string(env.Data))
	assert.Equal(t, authorID, got.ID)
	assert.Equal(t, 25, limit)

	rec, _ = do(t, s.router(), http.MethodGet, "/ai/generations?limit=many", "", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaxonomyRoutes(t *testing.T) {
	s := newTestServer()
	var got services.Principal
	s.taxonomy.createCategoryFunc = func(p services.Principal, in *validation.TaxonomyInput) services.Result[*models.Category] {
		got = p
		return services.Result[*models.Category]{Success: true, Data: &models.Category{Name: in.Name}}
	}

	rec, env := do(t, s.router(), http.MethodGet, "/categories", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	rec, _ = do(t, s.router(), http.MethodPost, "/categories", `{"name":"Go"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = do(t, s.router(), http.MethodPost, "/categories", `{"name":"Go"}`, signToken(t, jwt.SigningMethodHS256, validClaims()))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, got.IsAdmin())
}

func TestEmptyListKeepsData(t *testing.T) {
	s := newTestServer()

	rec, _ := do(t, s.router(), http.MethodGet, "/tags", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())

	s.posts.generateSlugFunc = func(*validation.SlugInput) services.Result[string] {
		return services.Result[string]{Success: true, Data: ""}
	}
	rec, _ = do(t, s.router(), http.MethodPost, "/posts/slug", `{"title":"Go"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":""}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/posts", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		newTestServer().router().ServeHTTP(rec, req)
		return rec
	}

	rec := preflight("https://app.example")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = preflight("https://evil.example")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPanicIsRecovered(t *testing.T) {
	s := newTestServer()
	s.ai.contentFunc = func(services.Principal, *validation.AIGenerateInput) services.Result[string] {
		panic("unexpected")
	}

	rec, env := do(t, s.router(), http.MethodPost, "/ai/content", `{}`, signToken(t, jwt.SigningMethodHS256, validClaims()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", env.Error)
}

func TestNewServerRequiresDependencies(t *testing.T) {
	_, err := NewServer(map[string]string{}, Dependencies{})
	assert.Error(t, err)

	s := newTestServer()
	server, err := NewServer(map[string]string{"PORT": "9999", "WRITE_TIMEOUT_SECONDS": "30"},
		Dependencies{Database: s.db, Posts: s.posts, AI: s.ai, Taxonomy: s.taxonomy})
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9999", server.Addr)
	assert.Equal(t, 30*time.Second, server.WriteTimeout)
	assert.Equal(t, 180*time.Second, server.ReadTimeout)
}
