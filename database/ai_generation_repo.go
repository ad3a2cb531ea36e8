package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/priyanshu14077/NeuronPress/errs"
	"github.com/priyanshu14077/NeuronPress/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AIGenerationRepo struct {
	db *gorm.DB
}

func NewAIGenerationRepo(db *gorm.DB) *AIGenerationRepo {
	return &AIGenerationRepo{db}
}

// Create appends a generation record. Records are never updated.
func (r *AIGenerationRepo) Create(ctx context.Context, generation *models.AIGeneration) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(generation).Error; err != nil {
		return errs.NewDatabaseError("record", "AI generation", err)
	}
	return nil
}

// ListByUser returns the user's most recent generations, newest first, each with
// a slim reference to its post when one is still linked.
func (r *AIGenerationRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.AIGeneration, error) {
	generations := []models.AIGeneration{}
	err := r.db.WithContext(ctx).
		Preload("Post", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "slug")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&generations).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", "AI generations", err)
	}

	for i := range generations {
		if p := generations[i].Post; p != nil {
			generations[i].PostRef = &models.PostRef{ID: p.ID, Title: p.Title, Slug: p.Slug}
			generations[i].Post = nil
		}
	}
	return generations, nil
}
