package service

import (
	"context"

	"community/internal/cache"
	"community/internal/middleware"
	"community/internal/models"
	"community/internal/repository"

	"gorm.io/gorm"
)

// StatService owns the denormalized post counters. Every mutation goes
// through EnsureInitialized first so the row exists before the atomic
// column update; reads never create rows.
type StatService struct {
	statRepo repository.PostStatRepository
	postRepo repository.PostRepository
}

func NewStatService(
	statRepo repository.PostStatRepository,
	postRepo repository.PostRepository,
) *StatService {
	return &StatService{
		statRepo: statRepo,
		postRepo: postRepo,
	}
}

// GetStats returns the counters for a post. A post with no stat row reads
// as all zeros without creating the row.
func (s *StatService) GetStats(ctx context.Context, postID uint) (*models.PostStat, error) {
	var stat models.PostStat
	err := cache.CacheAside(ctx, cache.PostStatKey(postID), &stat, cache.PostStatTTL, func() error {
		got, err := s.statRepo.Get(ctx, postID)
		if err != nil {
			return err
		}
		stat = *got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

// RecordView bumps the view counter for a visible post. Views on a deleted
// or missing post are silently dropped.
func (s *StatService) RecordView(ctx context.Context, postID uint) error {
	exists, err := s.postRepo.ExistsActive(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	if err := s.increment(ctx, s.statRepo, postID, models.StatView); err != nil {
		return err
	}
	cache.InvalidatePostStats(ctx, postID)
	return nil
}

// increment initializes the row if needed then applies the atomic bump.
// Both statements run against the given repo so callers can pass a
// transaction-bound one.
func (s *StatService) increment(ctx context.Context, repo repository.PostStatRepository, postID uint, field models.StatField) error {
	if err := repo.EnsureInitialized(ctx, postID); err != nil {
		return err
	}
	return repo.Increment(ctx, postID, field)
}

// decrement applies the atomic drop. If no stat row exists the decrement is
// skipped, not treated as an error.
func (s *StatService) decrement(ctx context.Context, repo repository.PostStatRepository, postID uint, field models.StatField) error {
	applied, err := repo.Decrement(ctx, postID, field)
	if err != nil {
		return err
	}
	if !applied {
		middleware.StatAdjustSkips.Inc()
	}
	return nil
}

// IncrementInTx bumps a counter inside an existing transaction.
func (s *StatService) IncrementInTx(ctx context.Context, tx *gorm.DB, postID uint, field models.StatField) error {
	return s.increment(ctx, s.statRepo.WithTx(tx), postID, field)
}

// DecrementInTx drops a counter inside an existing transaction.
func (s *StatService) DecrementInTx(ctx context.Context, tx *gorm.DB, postID uint, field models.StatField) error {
	return s.decrement(ctx, s.statRepo.WithTx(tx), postID, field)
}
