// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/observability"

	"gorm.io/gorm"
)

// ListOptions narrows and orders a published-post listing. Filters combine
// with logical AND; Author matches the author's username exactly.
type ListOptions struct {
	Category string
	Author   string
	Ordering string
	Limit    int
	Offset   int
}

// PostRepository defines the interface for post data operations. Every read
// except ListByAuthorID is restricted to published rows; ListByAuthorID
// backs the owner's self-scoped listing and is the single exception.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetPublishedByID(ctx context.Context, id uint, actorID uint) (*models.Post, error)
	List(ctx context.Context, opts ListOptions) ([]*models.Post, int64, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error)
	ListByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) (bool, error)
	Categories(ctx context.Context) ([]string, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) GetPublishedByID(ctx context.Context, id uint, actorID uint) (*models.Post, error) {
	defer observability.TrackQuery("read", "posts")()

	var post models.Post
	fetch := func() error {
		return r.db.WithContext(ctx).
			Preload("Author").
			Where("published = ?", true).
			First(&post, id).Error
	}

	var err error
	if actorID == 0 {
		// Anonymous reads are served cache-aside; authenticated reads go
		// straight to the store so an owner never sees a stale row right
		// after writing.
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, opts ListOptions) ([]*models.Post, int64, error) {
	defer observability.TrackQuery("list", "posts")()

	base := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("published = ?", true)

	if opts.Category != "" {
		base = base.Where("category = ?", opts.Category)
	}
	if opts.Author != "" {
		base = base.
			Joins("JOIN users ON users.id = posts.author_id").
			Where("users.username = ?", opts.Author)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := base.Session(&gorm.Session{}).
		Preload("Author").
		Order(orderClause(opts.Ordering)).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	defer observability.TrackQuery("search", "posts")()

	// LOWER + LIKE keeps the substring match case-insensitive on both
	// Postgres and the SQLite test driver.
	like := "%" + strings.ToLower(query) + "%"
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("published = ?", true).
		Where(
			"(LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(excerpt) LIKE ? OR LOWER(category) LIKE ?)",
			like, like, like, like,
		).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	defer observability.TrackQuery("list", "posts")()

	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("update", "posts")()

	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// Delete removes the row permanently. The boolean reports whether a row was
// actually deleted, so a second delete of the same ID maps to NotFound.
func (r *postRepository) Delete(ctx context.Context, id uint) (bool, error) {
	defer observability.TrackQuery("delete", "posts")()

	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	cache.InvalidatePost(ctx, id)
	return result.RowsAffected > 0, nil
}

func (r *postRepository) Categories(ctx context.Context) ([]string, error) {
	defer observability.TrackQuery("aggregate", "posts")()

	categories := []string{}
	err := cache.Aside(ctx, cache.CategoriesKey(), &categories, cache.CategoriesTTL, func() error {
		return r.db.WithContext(ctx).
			Model(&models.Post{}).
			Where("published = ?", true).
			Distinct().
			Pluck("category", &categories).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

// orderClause maps a client ordering selector onto a SQL clause. Columns are
// table-qualified because the author filter joins users, which has its own
// created_at. Unknown selectors fall back to the default newest-first
// ordering.
func orderClause(ordering string) string {
	switch ordering {
	case "created_at":
		return "posts.created_at ASC"
	case "-created_at":
		return "posts.created_at DESC"
	case "title":
		return "posts.title ASC"
	case "-title":
		return "posts.title DESC"
	default:
		return "posts.created_at DESC"
	}
}
