package service

import (
	"context"
	"errors"
	"strings"

	"community/internal/cache"
	"community/internal/models"
	"community/internal/repository"

	"gorm.io/gorm"
)

// CommentService manages the two-level comment threads under posts.
type CommentService struct {
	db          *gorm.DB
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	statSvc     *StatService
}

type CreateCommentInput struct {
	UserID   uint
	PostID   uint
	ParentID *uint
	Content  string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

// CommentThread is the assembled listing for a post: top-level comments with
// their replies nested, plus the display total from the post counters.
type CommentThread struct {
	Comments   []*models.Comment `json:"comments"`
	TotalCount int64             `json:"total_count"`
}

// CommentStats is a recount from the comment table, unlike the display
// counter which lives in post_stats.
type CommentStats struct {
	CommentID  uint  `json:"comment_id"`
	TotalCount int64 `json:"total_count"`
	ReplyCount int64 `json:"reply_count"`
}

func NewCommentService(
	db *gorm.DB,
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	statSvc *StatService,
) *CommentService {
	return &CommentService{
		db:          db,
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		statSvc:     statSvc,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len([]rune(in.Content)) > models.MaxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 500 characters)")
	}

	if err := requireActiveUser(ctx, s.userRepo, in.UserID); err != nil {
		return nil, err
	}
	exists, err := s.postRepo.ExistsActive(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Comment", *in.ParentID)
			}
			return nil, err
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("Parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		UserID:   in.UserID,
		ParentID: in.ParentID,
		Content:  in.Content,
		Depth:    models.DepthFor(in.ParentID),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.commentRepo.WithTx(tx).Create(ctx, comment); err != nil {
			return err
		}
		return s.statSvc.IncrementInTx(ctx, tx, in.PostID, models.StatComment)
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidatePostStats(ctx, in.PostID)
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns the assembled thread for a post. Top-level comments
// and their replies are both oldest-first. The total comes from the post
// counter, not a recount, so it reflects whatever the write paths have
// accumulated there.
func (s *CommentService) ListComments(ctx context.Context, postID uint) (*CommentThread, error) {
	exists, err := s.postRepo.ExistsActive(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", postID)
	}

	flat, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	stat, err := s.statSvc.GetStats(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &CommentThread{
		Comments:   assembleThread(flat),
		TotalCount: stat.CommentCount,
	}, nil
}

// assembleThread nests replies under their top-level parents. A reply whose
// parent is gone (orphaned by a partial cascade) is dropped from the listing.
func assembleThread(flat []*models.Comment) []*models.Comment {
	top := make([]*models.Comment, 0, len(flat))
	byID := make(map[uint]*models.Comment, len(flat))

	for _, c := range flat {
		if c.ParentID == nil {
			c.Replies = []*models.Comment{}
			top = append(top, c)
			byID[c.ID] = c
		}
	}
	for _, c := range flat {
		if c.ParentID == nil {
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
	}
	return top
}

// ListUserComments returns the user's comments newest-first, including ones
// on posts that have since been soft-deleted.
func (s *CommentService) ListUserComments(ctx context.Context, userID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListByUser(ctx, userID)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", in.CommentID)
		}
		return nil, err
	}

	if comment.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own comments")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len([]rune(in.Content)) > models.MaxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 500 characters)")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// DeleteComment removes the comment, and when it is top-level, its replies
// in the same statement. The post's comment counter drops by exactly one
// per delete call regardless of how many rows the cascade removed; replies
// that die with their parent were never individually deleted, so their
// counts remain in the denormalized total until a recount.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", in.CommentID)
		}
		return nil, err
	}

	if comment.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only delete your own comments")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.commentRepo.WithTx(tx).DeleteWithReplies(ctx, in.CommentID); err != nil {
			return err
		}
		return s.statSvc.DecrementInTx(ctx, tx, comment.PostID, models.StatComment)
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidatePostStats(ctx, comment.PostID)
	return comment, nil
}

// GetCommentStats recounts from the comment table. Both counts key off the
// same id: total rows on the post and direct replies under the comment.
func (s *CommentService) GetCommentStats(ctx context.Context, commentID uint) (*CommentStats, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", commentID)
		}
		return nil, err
	}

	total, err := s.commentRepo.CountByPost(ctx, comment.PostID)
	if err != nil {
		return nil, err
	}
	replies, err := s.commentRepo.CountReplies(ctx, commentID)
	if err != nil {
		return nil, err
	}

	return &CommentStats{
		CommentID:  commentID,
		TotalCount: total,
		ReplyCount: replies,
	}, nil
}
