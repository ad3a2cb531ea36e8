package database

import (
	"context"

	"github.com/priyanshu14077/NeuronPress/errs"
	"github.com/priyanshu14077/NeuronPress/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuthorRepo struct {
	db *gorm.DB
}

func NewAuthorRepo(db *gorm.DB) *AuthorRepo {
	return &AuthorRepo{db}
}

// Ensure inserts the author unless a row with the same id already exists.
func (r *AuthorRepo) Ensure(ctx context.Context, author *models.Author) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(author).Error
	if err != nil {
		return errs.NewDatabaseError("create", "Author", err)
	}
	return nil
}
