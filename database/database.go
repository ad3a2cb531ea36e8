package database

import (
	"context"

	"github.com/priyanshu14077/NeuronPress/errs"
	"gorm.io/gorm"
)

type Database struct {
	db               *gorm.DB
	postRepo         *PostRepo
	aiGenerationRepo *AIGenerationRepo
	authorRepo       *AuthorRepo
	taxonomyRepo     *TaxonomyRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:               db,
		postRepo:         NewPostRepo(db),
		aiGenerationRepo: NewAIGenerationRepo(db),
		authorRepo:       NewAuthorRepo(db),
		taxonomyRepo:     NewTaxonomyRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) AIGenerationRepo() *AIGenerationRepo {
	return d.aiGenerationRepo
}

func (d Database) AuthorRepo() *AuthorRepo {
	return d.authorRepo
}

func (d Database) TaxonomyRepo() *TaxonomyRepo {
	return d.taxonomyRepo
}

// Ping checks the primary connection.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return errs.NewDatabaseError("open", "connection pool", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errs.NewDatabaseError("ping", "database", err)
	}
	return nil
}
