package repository

import (
	"context"
	"errors"

	"buddyboost/internal/cache"
	"buddyboost/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]models.Post, error)
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
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Select("posts.*, "+
			"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id) as reactions_count, "+
			"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count").
		Preload("User").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// List returns posts newest-first with per-post reaction and comment counts
// computed in a single query.
func (r *postRepository) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	fetch := func() error {
		return r.db.WithContext(ctx).
			Select("posts.*, " +
				"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id) as reactions_count, " +
				"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count").
			Preload("User").
			Order("posts.created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&posts).Error
	}

	var err error
	if offset == 0 {
		// Only the first page is hot enough to be worth caching.
		err = cache.Aside(ctx, cache.PostsListKey, &posts, cache.PostsListTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}
