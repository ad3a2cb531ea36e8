package database

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/priyanshu14077/NeuronPress/errs"
	"github.com/priyanshu14077/NeuronPress/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

const (
	postCategoriesTable = "post_categories"
	postTagsTable       = "post_tags"
)

// sortColumns maps the public sort keys onto posts columns.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"publishedAt": "published_at",
	"title":       "title",
	"views":       "views",
}

// PostFilter narrows and pages a post listing. Zero values mean "no filter".
type PostFilter struct {
	Search     string
	Status     models.PostStatus
	AuthorID   *uuid.UUID
	CategoryID *uuid.UUID
	TagID      *uuid.UUID
	SortBy     string
	Desc       bool
	Offset     int
	Limit      int
}

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// Create inserts the post and its category and tag links in one transaction.
func (r *PostRepo) Create(ctx context.Context, post *models.Post, categoryIDs, tagIDs []uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		if err := insertLinks(tx, postCategoriesTable, "category_id", post.ID, categoryIDs); err != nil {
			return err
		}
		return insertLinks(tx, postTagsTable, "tag_id", post.ID, tagIDs)
	})
	if err != nil {
		return errs.NewDatabaseError("create", "Post", err)
	}
	return nil
}

// FindByID returns a post with its author, categories and tags.
func (r *PostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Scopes(withAssociations).
		First(&post, "posts.id = ?", id).Error
	if err != nil {
		return nil, errs.NewDatabaseError("find", "Post", err)
	}
	return &post, nil
}

// FindByIDPrimary is FindByID read from the primary, for reloading a row just written.
func (r *PostRepo) FindByIDPrimary(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Scopes(withAssociations).
		First(&post, "posts.id = ?", id).Error
	if err != nil {
		return nil, errs.NewDatabaseError("find", "Post", err)
	}
	return &post, nil
}

// FindBySlug returns a post with associations, comments newest first and engagement counts.
func (r *PostRepo) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Scopes(withCounts, withAssociations).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at DESC")
		}).
		Preload("Comments.Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "image")
		}).
		Where("posts.slug = ?", slug).
		First(&post).Error
	if err != nil {
		return nil, errs.NewDatabaseError("find", "Post", err)
	}
	return &post, nil
}

// IncrementViews bumps the view counter in a single UPDATE.
func (r *PostRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err != nil {
		return errs.NewDatabaseError("update", "Post", err)
	}
	return nil
}

// Update applies the column changes and, when non-nil, replaces the category and tag sets.
func (r *PostRepo) Update(ctx context.Context, id uuid.UUID, changes map[string]any, categoryIDs, tagIDs []uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(changes) == 0 {
			changes = map[string]any{"updated_at": time.Now()}
		}
		res := tx.Model(&models.Post{}).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if categoryIDs != nil {
			if err := replaceLinks(tx, postCategoriesTable, "category_id", id, categoryIDs); err != nil {
				return err
			}
		}
		if tagIDs != nil {
			if err := replaceLinks(tx, postTagsTable, "tag_id", id, tagIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errs.NewDatabaseError("update", "Post", err)
	}
	return nil
}

// Publish marks the post PUBLISHED at the given time.
func (r *PostRepo) Publish(ctx context.Context, id uuid.UUID, publishedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       models.PostStatusPublished,
			"published_at": publishedAt,
		})
	if res.Error != nil {
		return errs.NewDatabaseError("publish", "Post", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("Post")
	}
	return nil
}

// Delete removes the post; foreign keys cascade to links, comments and likes.
func (r *PostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id)
	if res.Error != nil {
		return errs.NewDatabaseError("delete", "Post", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("Post")
	}
	return nil
}

// List returns one page of posts plus the total number of matches.
// The count and the page are queried concurrently.
func (r *PostRepo) List(ctx context.Context, filter PostFilter) ([]models.Post, int64, error) {
	var total int64
	posts := []models.Post{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.filtered(gctx, filter).Count(&total).Error
	})
	g.Go(func() error {
		return r.filtered(gctx, filter).
			Scopes(withCounts, withAssociations).
			Order(clause.OrderByColumn{
				Column: clause.Column{Table: "posts", Name: sortColumn(filter.SortBy)},
				Desc:   filter.Desc,
			}).
			Order("posts.id").
			Offset(filter.Offset).
			Limit(filter.Limit).
			Find(&posts).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, errs.NewDatabaseError("list", "Post", err)
	}

	if posts == nil {
		posts = []models.Post{}
	}
	return posts, total, nil
}

// SlugExists checks the primary so a slug written moments ago is seen.
func (r *PostRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Model(&models.Post{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, errs.NewDatabaseError("check", "slug", err)
	}
	return count > 0, nil
}

func (r *PostRepo) filtered(ctx context.Context, f PostFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Post{})

	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		q = q.Where(
			`(posts.title ILIKE ? ESCAPE '\' OR posts.excerpt ILIKE ? ESCAPE '\' OR posts.content ILIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}
	if f.Status != "" {
		q = q.Where("posts.status = ?", f.Status)
	}
	if f.AuthorID != nil {
		q = q.Where("posts.author_id = ?", *f.AuthorID)
	}
	if f.CategoryID != nil {
		q = q.Where("posts.id IN (?)",
			r.db.Table(postCategoriesTable).Select("post_id").Where("category_id = ?", *f.CategoryID))
	}
	if f.TagID != nil {
		q = q.Where("posts.id IN (?)",
			r.db.Table(postTagsTable).Select("post_id").Where("tag_id = ?", *f.TagID))
	}
	return q
}

func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author", selectAuthor).
		Preload("Categories").
		Preload("Tags")
}

func withCounts(db *gorm.DB) *gorm.DB {
	return db.Select(`posts.*,
		(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count,
		(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id) AS like_count`)
}

func selectAuthor(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "image")
}

func sortColumn(key string) string {
	if col, ok := sortColumns[key]; ok {
		return col
	}
	return sortColumns["updatedAt"]
}

// escapeLike makes s match literally inside an ILIKE pattern using '\' as the escape.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

func insertLinks(tx *gorm.DB, table, column string, postID uuid.UUID, ids []uuid.UUID) error {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	rows := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, map[string]any{"post_id": postID, column: id})
	}
	return tx.Table(table).Create(&rows).Error
}

func replaceLinks(tx *gorm.DB, table, column string, postID uuid.UUID, ids []uuid.UUID) error {
	if err := tx.Exec("DELETE FROM "+table+" WHERE post_id = ?", postID).Error; err != nil {
		return err
	}
	return insertLinks(tx, table, column, postID, ids)
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
