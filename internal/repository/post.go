package repository

import (
	"context"

	"community/internal/cache"
	"community/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ExistsActive(ctx context.Context, id uint) (bool, error)
	ListFirstPage(ctx context.Context, limit int) ([]*models.Post, error)
	ListAfter(ctx context.Context, lastPostID uint, limit int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	Purge(ctx context.Context, id uint) error
	WithTx(tx *gorm.DB) PostRepository
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) WithTx(tx *gorm.DB) PostRepository {
	return &postRepository{db: tx}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.Invalidate(ctx, cache.FeedFirstPageKey)
	}
	return err
}

// GetByID serves from the cache when possible. The cached copy carries the
// preloaded author, minus fields excluded from the JSON such as the password
// hash and the soft-delete timestamp.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.CacheAside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).Preload("User").First(&post, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ExistsActive reports whether the post is visible, i.e. not soft-deleted.
// Every write path that touches a post's counters or children checks this
// first so deleted posts behave exactly like posts that never existed.
func (r *postRepository) ExistsActive(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) ListFirstPage(ctx context.Context, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// ListAfter pages by id while ordering by created_at. The cursor predicate
// and the sort column are intentionally different: when ids and creation
// times disagree (backdated imports, manual inserts) a page can skip or
// repeat rows. Callers page with the last returned id.
func (r *postRepository) ListAfter(ctx context.Context, lastPostID uint, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id < ?", lastPostID).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// Purge removes the post row for good. Dependent rows (comments, likes,
// stats, image links) are removed by the service inside the same transaction.
func (r *postRepository) Purge(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Unscoped().Delete(&models.Post{}, id).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	return nil
}
