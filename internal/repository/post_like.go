package repository

import (
	"context"
	"time"

	"community/internal/models"

	"gorm.io/gorm"
)

// PostLikeRepository manages like rows. A like row is created once per
// (user, post) pair and then flips between active and soft-deleted as the
// user toggles; it is never removed by the toggle paths.
type PostLikeRepository interface {
	// FindAny returns the row for the pair regardless of soft-delete state.
	FindAny(ctx context.Context, userID, postID uint) (*models.PostLike, error)
	Create(ctx context.Context, like *models.PostLike) error
	// Reactivate clears deleted_at on a soft-deleted row and reports whether
	// a row was updated. Zero rows means another request got there first.
	Reactivate(ctx context.Context, userID, postID uint) (bool, error)
	// Deactivate sets deleted_at on an active row and reports whether a row
	// was updated.
	Deactivate(ctx context.Context, userID, postID uint) (bool, error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error)
	CountActiveByPost(ctx context.Context, postID uint) (int64, error)
	PurgeByPostID(ctx context.Context, postID uint) error
	WithTx(tx *gorm.DB) PostLikeRepository
}

type postLikeRepository struct {
	db *gorm.DB
}

// NewPostLikeRepository creates a new post like repository
func NewPostLikeRepository(db *gorm.DB) PostLikeRepository {
	return &postLikeRepository{db: db}
}

func (r *postLikeRepository) WithTx(tx *gorm.DB) PostLikeRepository {
	return &postLikeRepository{db: tx}
}

func (r *postLikeRepository) FindAny(ctx context.Context, userID, postID uint) (*models.PostLike, error) {
	var like models.PostLike
	err := r.db.WithContext(ctx).
		Unscoped().
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// Create inserts a fresh like row. The unique index on (user_id, post_id)
// rejects a concurrent duplicate with gorm.ErrDuplicatedKey.
func (r *postLikeRepository) Create(ctx context.Context, like *models.PostLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *postLikeRepository) Reactivate(ctx context.Context, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Unscoped().
		Model(&models.PostLike{}).
		Where("user_id = ? AND post_id = ? AND deleted_at IS NOT NULL", userID, postID).
		Update("deleted_at", nil)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *postLikeRepository) Deactivate(ctx context.Context, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Update("deleted_at", time.Now())
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *postLikeRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postLikeRepository) GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var likedPostIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &likedPostIDs).Error
	return likedPostIDs, err
}

// CountActiveByPost recounts live likes from the source table. Display
// paths read the stat counter instead; this is the ground truth to compare
// against when the counter drifts.
func (r *postLikeRepository) CountActiveByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *postLikeRepository) PurgeByPostID(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("post_id = ?", postID).
		Delete(&models.PostLike{}).Error
}
