package database

import (
	"context"

	"github.com/priyanshu14077/NeuronPress/errs"
	"github.com/priyanshu14077/NeuronPress/models"
	"gorm.io/gorm"
)

// TaxonomyRepo stores the categories and tags posts are filed under.
type TaxonomyRepo struct {
	db *gorm.DB
}

func NewTaxonomyRepo(db *gorm.DB) *TaxonomyRepo {
	return &TaxonomyRepo{db}
}

// Categories returns every category ordered by name
func (r *TaxonomyRepo) Categories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "categories", err)
	}
	return categories, nil
}

// Tags returns every tag ordered by name
func (r *TaxonomyRepo) Tags(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := r.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "tags", err)
	}
	return tags, nil
}

func (r *TaxonomyRepo) AddCategory(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return errs.NewDatabaseError("create", "Category", err)
	}
	return nil
}

func (r *TaxonomyRepo) AddTag(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return errs.NewDatabaseError("create", "Tag", err)
	}
	return nil
}
