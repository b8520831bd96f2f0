package repository

import (
	"context"

	"community/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	// DeleteWithReplies removes the comment and, if it is top-level, all of
	// its replies in one statement. Returns the number of rows removed.
	DeleteWithReplies(ctx context.Context, id uint) (int64, error)
	CountByPost(ctx context.Context, postID uint) (int64, error)
	CountReplies(ctx context.Context, parentID uint) (int64, error)
	PurgeByPostID(ctx context.Context, postID uint) error
	WithTx(tx *gorm.DB) CommentRepository
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{db: tx}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost returns all comments for the post oldest-first; the service
// assembles the two-level thread from the flat slice.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at asc").
		Find(&comments).Error
	return comments, err
}

// ListByUser returns the user's comments newest-first.
func (r *commentRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) DeleteWithReplies(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? OR parent_id = ?", id, id).
		Delete(&models.Comment{})
	return result.RowsAffected, result.Error
}

func (r *commentRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) CountReplies(ctx context.Context, parentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("parent_id = ?", parentID).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) PurgeByPostID(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&models.Comment{}).Error
}
