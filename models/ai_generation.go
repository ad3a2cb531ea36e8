package models

import (
	"time"

	"github.com/google/uuid"
)

type GenerationType string

const (
	GenerationOutline     GenerationType = "OUTLINE"
	GenerationContent     GenerationType = "CONTENT"
	GenerationTitle       GenerationType = "TITLE"
	GenerationExcerpt     GenerationType = "EXCERPT"
	GenerationSEOKeywords GenerationType = "SEO_KEYWORDS"
	GenerationImprovement GenerationType = "IMPROVEMENT"
)

// AIGeneration is an append-only audit record of one completion call.
type AIGeneration struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Type      GenerationType `json:"type" gorm:"type:text;not null"`
	Prompt    string         `json:"prompt" gorm:"type:text;not null"`
	Response  string         `json:"response" gorm:"type:text;not null"`
	Model     string         `json:"model" gorm:"type:text;not null"`
	Tokens    *int           `json:"tokens,omitempty" gorm:"type:integer"`
	Cost      *float64       `json:"cost,omitempty" gorm:"type:double precision"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index:idx_ai_generations_user_created,priority:1"`
	PostID    *uuid.UUID     `json:"postId,omitempty" gorm:"type:uuid;index:idx_ai_generations_post_id"`
	CreatedAt time.Time      `json:"createdAt" gorm:"type:timestamptz;not null;index:idx_ai_generations_user_created,priority:2,sort:desc"`

	// Post carries the weak reference constraint; history readers get PostRef instead.
	Post    *Post    `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:SET NULL"`
	PostRef *PostRef `json:"post,omitempty" gorm:"-"`
}
