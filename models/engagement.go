package models

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	PostID    uuid.UUID `json:"postId" gorm:"type:uuid;not null;index:idx_comments_post_id"`
	AuthorID  uuid.UUID `json:"authorId" gorm:"type:uuid;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"type:timestamptz;not null"`

	Author *Author `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
}

// PostLike records one like per (post, user).
type PostLike struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	PostID    uuid.UUID `json:"postId" gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_unique"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_unique"`
	CreatedAt time.Time `json:"createdAt" gorm:"type:timestamptz;not null"`
}
