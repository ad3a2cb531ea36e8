package models

import "github.com/google/uuid"

type Category struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name string    `json:"name" gorm:"type:text;not null"`
	Slug string    `json:"slug" gorm:"type:text;not null;uniqueIndex:idx_categories_slug"`
}

type Tag struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name string    `json:"name" gorm:"type:text;not null"`
	Slug string    `json:"slug" gorm:"type:text;not null;uniqueIndex:idx_tags_slug"`
}
