package repository

import (
	"context"
	"errors"
	"fmt"

	"community/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostStatRepository manages the denormalized per-post counters.
//
// Counter rows are created lazily: EnsureInitialized is called before any
// increment so the first like, comment or view on a post materializes the
// row. Reads never create rows; a missing row reads as all zeros.
type PostStatRepository interface {
	EnsureInitialized(ctx context.Context, postID uint) error
	Increment(ctx context.Context, postID uint, field models.StatField) error
	// Decrement lowers the counter and reports whether a row was updated.
	// A missing row is not an error, the decrement is simply skipped.
	Decrement(ctx context.Context, postID uint, field models.StatField) (bool, error)
	Get(ctx context.Context, postID uint) (*models.PostStat, error)
	GetMany(ctx context.Context, postIDs []uint) (map[uint]*models.PostStat, error)
	DeleteByPostID(ctx context.Context, postID uint) error
	WithTx(tx *gorm.DB) PostStatRepository
}

type postStatRepository struct {
	db *gorm.DB
}

// NewPostStatRepository creates a new post stat repository
func NewPostStatRepository(db *gorm.DB) PostStatRepository {
	return &postStatRepository{db: db}
}

func (r *postStatRepository) WithTx(tx *gorm.DB) PostStatRepository {
	return &postStatRepository{db: tx}
}

// EnsureInitialized inserts a zeroed row for the post if none exists yet.
// ON CONFLICT DO NOTHING makes concurrent first-writers converge on a single
// row without erroring.
func (r *postStatRepository) EnsureInitialized(ctx context.Context, postID uint) error {
	stat := models.PostStat{PostID: postID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}},
			DoNothing: true,
		}).
		Create(&stat).Error
}

// Increment bumps the counter in a single UPDATE so concurrent writers
// cannot lose updates to a read-modify-write race.
func (r *postStatRepository) Increment(ctx context.Context, postID uint, field models.StatField) error {
	col := field.Column()
	if col == "" {
		return fmt.Errorf("unknown stat field %q", field)
	}
	return r.db.WithContext(ctx).
		Model(&models.PostStat{}).
		Where("post_id = ?", postID).
		Update(col, gorm.Expr(col+" + 1")).Error
}

func (r *postStatRepository) Decrement(ctx context.Context, postID uint, field models.StatField) (bool, error) {
	col := field.Column()
	if col == "" {
		return false, fmt.Errorf("unknown stat field %q", field)
	}
	result := r.db.WithContext(ctx).
		Model(&models.PostStat{}).
		Where("post_id = ?", postID).
		Update(col, gorm.Expr(col+" - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Get returns the stat row, or a zero-valued PostStat when the post has no
// row yet. Reading never materializes a row.
func (r *postStatRepository) Get(ctx context.Context, postID uint) (*models.PostStat, error) {
	var stat models.PostStat
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).First(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.PostStat{PostID: postID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (r *postStatRepository) GetMany(ctx context.Context, postIDs []uint) (map[uint]*models.PostStat, error) {
	out := make(map[uint]*models.PostStat, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	var stats []models.PostStat
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Find(&stats).Error; err != nil {
		return nil, err
	}
	for i := range stats {
		out[stats[i].PostID] = &stats[i]
	}

	// Posts without a row still get an entry so callers can render zeros.
	for _, id := range postIDs {
		if _, ok := out[id]; !ok {
			out[id] = &models.PostStat{PostID: id}
		}
	}
	return out, nil
}

func (r *postStatRepository) DeleteByPostID(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&models.PostStat{}).Error
}
