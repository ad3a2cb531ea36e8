package validation

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/priyanshu14077/NeuronPress/models"
	"gorm.io/datatypes"
)

const wordsPerMinute = 200

type CreatePostInput struct {
	Title           string            `json:"title" validate:"required,max=200"`
	Slug            string            `json:"slug" validate:"required,slug"`
	Excerpt         *string           `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Content         string            `json:"content" validate:"required"`
	Status          models.PostStatus `json:"status,omitempty" validate:"oneof=DRAFT PUBLISHED SCHEDULED ARCHIVED"`
	PublishedAt     *time.Time        `json:"publishedAt,omitempty"`
	MetaTitle       *string           `json:"metaTitle,omitempty" validate:"omitempty,max=60"`
	MetaDescription *string           `json:"metaDescription,omitempty" validate:"omitempty,max=160"`
	Keywords        []string          `json:"keywords,omitempty" validate:"max=10"`
	ReadTime        *int              `json:"readTime,omitempty" validate:"omitempty,min=0"`
	AIGenerated     bool              `json:"aiGenerated,omitempty"`
	AIPrompt        *string           `json:"aiPrompt,omitempty"`
	CategoryIDs     []uuid.UUID       `json:"categoryIds,omitempty"`
	TagIDs          []uuid.UUID       `json:"tagIds,omitempty"`
}

func (in *CreatePostInput) applyDefaults() {
	if in.Status == "" {
		in.Status = models.PostStatusDraft
	}
	if in.Keywords == nil {
		in.Keywords = []string{}
	}
	if in.ReadTime == nil {
		minutes := EstimateReadTime(in.Content)
		in.ReadTime = &minutes
	}
}

// UpdatePostInput is CreatePostInput with every field optional plus the target id.
// Nil fields are left untouched.
type UpdatePostInput struct {
	ID              uuid.UUID          `json:"id" validate:"required"`
	Title           *string            `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Slug            *string            `json:"slug,omitempty" validate:"omitempty,slug"`
	Excerpt         *string            `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Content         *string            `json:"content,omitempty" validate:"omitempty,min=1"`
	Status          *models.PostStatus `json:"status,omitempty" validate:"omitempty,oneof=DRAFT PUBLISHED SCHEDULED ARCHIVED"`
	PublishedAt     *time.Time         `json:"publishedAt,omitempty"`
	MetaTitle       *string            `json:"metaTitle,omitempty" validate:"omitempty,max=60"`
	MetaDescription *string            `json:"metaDescription,omitempty" validate:"omitempty,max=160"`
	Keywords        []string           `json:"keywords,omitempty" validate:"omitempty,max=10"`
	ReadTime        *int               `json:"readTime,omitempty" validate:"omitempty,min=0"`
	AIGenerated     *bool              `json:"aiGenerated,omitempty"`
	AIPrompt        *string            `json:"aiPrompt,omitempty"`
	CategoryIDs     []uuid.UUID        `json:"categoryIds,omitempty"`
	TagIDs          []uuid.UUID        `json:"tagIds,omitempty"`
}

func (in *UpdatePostInput) applyDefaults() {}

// Changes lists the column updates the input carries, keyed by column name.
func (in *UpdatePostInput) Changes() map[string]any {
	changes := make(map[string]any)
	if in.Title != nil {
		changes["title"] = *in.Title
	}
	if in.Slug != nil {
		changes["slug"] = *in.Slug
	}
	if in.Excerpt != nil {
		changes["excerpt"] = *in.Excerpt
	}
	if in.Content != nil {
		changes["content"] = *in.Content
	}
	if in.Status != nil {
		changes["status"] = *in.Status
	}
	if in.PublishedAt != nil {
		changes["published_at"] = *in.PublishedAt
	}
	if in.MetaTitle != nil {
		changes["meta_title"] = *in.MetaTitle
	}
	if in.MetaDescription != nil {
		changes["meta_description"] = *in.MetaDescription
	}
	if in.Keywords != nil {
		changes["keywords"] = datatypes.JSONSlice[string](in.Keywords)
	}
	if in.ReadTime != nil {
		changes["read_time"] = *in.ReadTime
	}
	if in.AIGenerated != nil {
		changes["ai_generated"] = *in.AIGenerated
	}
	if in.AIPrompt != nil {
		changes["ai_prompt"] = *in.AIPrompt
	}
	return changes
}

type PublishPostInput struct {
	ID          uuid.UUID  `json:"id" validate:"required"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// A nil PublishedAt means the current time.
func (in *PublishPostInput) applyDefaults() {}

type PostQueryInput struct {
	Page       int               `json:"page,omitempty" validate:"min=1"`
	Limit      int               `json:"limit,omitempty" validate:"min=1,max=100"`
	Search     string            `json:"search,omitempty"`
	Status     models.PostStatus `json:"status,omitempty" validate:"omitempty,oneof=DRAFT PUBLISHED SCHEDULED ARCHIVED"`
	AuthorID   *uuid.UUID        `json:"authorId,omitempty"`
	CategoryID *uuid.UUID        `json:"categoryId,omitempty"`
	TagID      *uuid.UUID        `json:"tagId,omitempty"`
	SortBy     string            `json:"sortBy,omitempty" validate:"oneof=createdAt updatedAt publishedAt title views"`
	SortOrder  string            `json:"sortOrder,omitempty" validate:"oneof=asc desc"`
}

func (in *PostQueryInput) applyDefaults() {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.Limit == 0 {
		in.Limit = 10
	}
	if in.SortBy == "" {
		in.SortBy = "updatedAt"
	}
	if in.SortOrder == "" {
		in.SortOrder = "desc"
	}
}

// Offset is the number of rows skipped before the requested page.
func (in *PostQueryInput) Offset() int {
	return (in.Page - 1) * in.Limit
}

// SlugInput is the request to derive a unique slug from a title.
type SlugInput struct {
	Title string `json:"title" validate:"required"`
}

func (in *SlugInput) applyDefaults() {}

// EstimateReadTime rounds content length up to whole minutes at 200 words per minute.
func EstimateReadTime(content string) int {
	words := len(strings.Fields(content))
	return int(math.Ceil(float64(words) / wordsPerMinute))
}
