package models

import (
	"time"

	"github.com/google/uuid"
)

// Author is the persisted form of an authenticated principal.
type Author struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" gorm:"type:text;not null;default:''"`
	Email     *string   `json:"email,omitempty" gorm:"type:text;uniqueIndex:idx_authors_email"`
	Image     *string   `json:"image,omitempty" gorm:"type:text"`
	Role      string    `json:"-" gorm:"type:text;not null;default:'author'"`
	CreatedAt time.Time `json:"-" gorm:"type:timestamptz;not null"`
	UpdatedAt time.Time `json:"-" gorm:"type:timestamptz;not null"`
}
