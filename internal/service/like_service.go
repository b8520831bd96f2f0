package service

import (
	"context"
	"errors"

	"community/internal/cache"
	"community/internal/middleware"
	"community/internal/models"
	"community/internal/observability"
	"community/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// LikeService implements the like toggle. The like table is the source of
// truth; the stat counter moves in the same transaction so readers of the
// counter never see a half-applied toggle.
type LikeService struct {
	db       *gorm.DB
	likeRepo repository.PostLikeRepository
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	statSvc  *StatService
}

type LikeInput struct {
	UserID uint
	PostID uint
}

func NewLikeService(
	db *gorm.DB,
	likeRepo repository.PostLikeRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	statSvc *StatService,
) *LikeService {
	return &LikeService{
		db:       db,
		likeRepo: likeRepo,
		postRepo: postRepo,
		userRepo: userRepo,
		statSvc:  statSvc,
	}
}

// requireActiveUser rejects mutations from accounts that are soft-deleted or
// never existed. The JWT layer only proves the token was valid when issued,
// so every write re-checks the account here.
func requireActiveUser(ctx context.Context, users repository.UserRepository, userID uint) error {
	active, err := users.ExistsActive(ctx, userID)
	if err != nil {
		return err
	}
	if !active {
		return models.NewNotFoundError("User", userID)
	}
	return nil
}

// Like turns the like on for (user, post). Outcomes:
//   - fresh pair: a new row is inserted
//   - previously unliked: the existing row is reactivated, keeping its identity
//   - already liked: ALREADY_LIKED
//   - lost a concurrent race for the first like: LIKE_CONFLICT
func (s *LikeService) Like(ctx context.Context, in LikeInput) error {
	span, ctx := observability.NewSpan(ctx, "like.on")
	defer span.End()
	span.AddAttributes(attribute.Int("post.id", int(in.PostID)))

	if err := requireActiveUser(ctx, s.userRepo, in.UserID); err != nil {
		return err
	}
	exists, err := s.postRepo.ExistsActive(ctx, in.PostID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Post", in.PostID)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		likeRepo := s.likeRepo.WithTx(tx)

		existing, err := likeRepo.FindAny(ctx, in.UserID, in.PostID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := &models.PostLike{UserID: in.UserID, PostID: in.PostID}
			if err := likeRepo.Create(ctx, like); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// Someone inserted the row between our read and write.
					return models.NewLikeConflictError(err)
				}
				return err
			}
		case err != nil:
			return err
		case existing.Active():
			return models.NewAlreadyLikedError()
		default:
			// Soft-deleted row: flip it back on. Zero rows updated means a
			// concurrent request reactivated it first.
			reactivated, err := likeRepo.Reactivate(ctx, in.UserID, in.PostID)
			if err != nil {
				return err
			}
			if !reactivated {
				return models.NewAlreadyLikedError()
			}
		}

		return s.statSvc.IncrementInTx(ctx, tx, in.PostID, models.StatLike)
	})
	if err != nil {
		s.countOutcome(err)
		span.SetError(err)
		return err
	}

	middleware.LikeToggles.WithLabelValues("liked").Inc()
	cache.InvalidatePostStats(ctx, in.PostID)
	return nil
}

// Unlike turns the like off by soft-deleting the row. NOT_LIKED when there
// was no active like to remove.
func (s *LikeService) Unlike(ctx context.Context, in LikeInput) error {
	span, ctx := observability.NewSpan(ctx, "like.off")
	defer span.End()
	span.AddAttributes(attribute.Int("post.id", int(in.PostID)))

	if err := requireActiveUser(ctx, s.userRepo, in.UserID); err != nil {
		return err
	}
	exists, err := s.postRepo.ExistsActive(ctx, in.PostID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Post", in.PostID)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		likeRepo := s.likeRepo.WithTx(tx)

		deactivated, err := likeRepo.Deactivate(ctx, in.UserID, in.PostID)
		if err != nil {
			return err
		}
		if !deactivated {
			return models.NewNotLikedError()
		}

		return s.statSvc.DecrementInTx(ctx, tx, in.PostID, models.StatLike)
	})
	if err != nil {
		s.countOutcome(err)
		span.SetError(err)
		return err
	}

	middleware.LikeToggles.WithLabelValues("unliked").Inc()
	cache.InvalidatePostStats(ctx, in.PostID)
	return nil
}

func (s *LikeService) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.likeRepo.IsLiked(ctx, userID, postID)
}

func (s *LikeService) countOutcome(err error) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "ALREADY_LIKED", "NOT_LIKED", "LIKE_CONFLICT":
			middleware.LikeToggles.WithLabelValues(appErr.Code).Inc()
		}
	}
}
