package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusPublished PostStatus = "PUBLISHED"
	PostStatusScheduled PostStatus = "SCHEDULED"
	PostStatusArchived  PostStatus = "ARCHIVED"
)

// Post is a blog post. Slug is globally unique and URL safe.
type Post struct {
	ID              uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title           string                      `json:"title" gorm:"type:varchar(200);not null"`
	Slug            string                      `json:"slug" gorm:"type:text;not null;uniqueIndex:idx_posts_slug"`
	Excerpt         *string                     `json:"excerpt,omitempty" gorm:"type:varchar(500)"`
	Content         string                      `json:"content" gorm:"type:text;not null"`
	Status          PostStatus                  `json:"status" gorm:"type:text;not null;default:DRAFT;index:idx_posts_status"`
	PublishedAt     *time.Time                  `json:"publishedAt,omitempty" gorm:"type:timestamptz;index:idx_posts_published_at"`
	MetaTitle       *string                     `json:"metaTitle,omitempty" gorm:"type:varchar(60)"`
	MetaDescription *string                     `json:"metaDescription,omitempty" gorm:"type:varchar(160)"`
	Keywords        datatypes.JSONSlice[string] `json:"keywords" gorm:"not null;default:'[]'"`
	ReadTime        int                         `json:"readTime" gorm:"type:integer;not null;default:0"`
	AIGenerated     bool                        `json:"aiGenerated" gorm:"column:ai_generated;not null;default:false"`
	AIPrompt        *string                     `json:"aiPrompt,omitempty" gorm:"column:ai_prompt;type:text"`
	AuthorID        uuid.UUID                   `json:"authorId" gorm:"type:uuid;not null;index:idx_posts_author_id"`
	Views           int                         `json:"views" gorm:"type:integer;not null;default:0"`
	CreatedAt       time.Time                   `json:"createdAt" gorm:"type:timestamptz;not null;index:idx_posts_created_at"`
	UpdatedAt       time.Time                   `json:"updatedAt" gorm:"type:timestamptz;not null;index:idx_posts_updated_at"`

	Author     *Author    `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Categories []Category `json:"categories" gorm:"many2many:post_categories;constraint:OnDelete:CASCADE"`
	Tags       []Tag      `json:"tags" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE"`
	Comments   []Comment  `json:"comments,omitempty" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	Likes      []PostLike `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`

	// Filled by list and slug queries only.
	CommentCount int64 `json:"commentCount" gorm:"->;-:migration;column:comment_count"`
	LikeCount    int64 `json:"likeCount" gorm:"->;-:migration;column:like_count"`
}

// PostRef is the slim post projection attached to generation history.
type PostRef struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
}
