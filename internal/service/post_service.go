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

// PostService manages post CRUD and the cursor feed.
type PostService struct {
	db          *gorm.DB
	postRepo    repository.PostRepository
	statRepo    repository.PostStatRepository
	likeRepo    repository.PostLikeRepository
	commentRepo repository.CommentRepository
	imageRepo   repository.ImageRepository
	statSvc     *StatService
}

type CreatePostInput struct {
	UserID   uint
	Title    string
	Content  string
	ImageIDs []uint
}

type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Title    string
	Content  string
	ImageIDs []uint
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

// PostDetail is a post enriched with its counters and the viewer's like state.
type PostDetail struct {
	*models.Post
	Stats  *models.PostStat    `json:"stats"`
	Liked  bool                `json:"liked"`
	Images []*models.PostImage `json:"images,omitempty"`
}

// DefaultFeedPageSize matches the FEED_PAGE_SIZE config default.
const DefaultFeedPageSize = 10

// FeedPage is one page of the feed. LastPostID is the cursor for the next
// request; zero when the page is empty.
type FeedPage struct {
	Items      []*PostDetail `json:"items"`
	LastPostID uint          `json:"last_post_id"`
	HasMore    bool          `json:"has_more"`
}

func NewPostService(
	db *gorm.DB,
	postRepo repository.PostRepository,
	statRepo repository.PostStatRepository,
	likeRepo repository.PostLikeRepository,
	commentRepo repository.CommentRepository,
	imageRepo repository.ImageRepository,
	statSvc *StatService,
) *PostService {
	return &PostService{
		db:          db,
		postRepo:    postRepo,
		statRepo:    statRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		imageRepo:   imageRepo,
		statSvc:     statSvc,
	}
}

func validatePostFields(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len([]rune(title)) > models.MaxPostTitleLen {
		return models.NewValidationError("Title too long (max 50 characters)")
	}
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	if len([]rune(content)) > models.MaxPostContentLen {
		return models.NewValidationError("Content too long (max 10000 characters)")
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validatePostFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:  in.UserID,
		Title:   in.Title,
		Content: in.Content,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.postRepo.WithTx(tx).Create(ctx, post); err != nil {
			return err
		}
		if len(in.ImageIDs) > 0 {
			return s.imageRepo.WithTx(tx).ReplacePostImages(ctx, post.ID, in.ImageIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns the post with its counters and, for a logged-in viewer,
// whether they like it. Each fetch counts as a view.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, err
	}

	if err := s.statSvc.RecordView(ctx, postID); err != nil {
		return nil, err
	}

	stat, err := s.statSvc.GetStats(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked := false
	if viewerID != 0 {
		liked, err = s.likeRepo.IsLiked(ctx, viewerID, postID)
		if err != nil {
			return nil, err
		}
	}

	images, err := s.imageRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &PostDetail{
		Post:   post,
		Stats:  stat,
		Liked:  liked,
		Images: images,
	}, nil
}

// GetFeed returns one page of the feed. A zero lastPostID requests the first
// page; subsequent pages pass the LastPostID from the previous response.
// Rows are fetched by the id cursor but ordered by creation time, so feeds
// over rows where the two disagree can skip or repeat posts between pages.
func (s *PostService) GetFeed(ctx context.Context, lastPostID uint, limit int, viewerID uint) (*FeedPage, error) {
	if limit <= 0 {
		return nil, models.NewValidationError("Page size must be positive")
	}

	// Only the anonymous default-sized first page is cached; the key carries
	// no parameters, and logged-in viewers get per-viewer like state.
	if lastPostID == 0 && viewerID == 0 && limit == DefaultFeedPageSize {
		page := &FeedPage{}
		err := cache.CacheAside(ctx, cache.FeedFirstPageKey, page, cache.FeedTTL, func() error {
			fresh, err := s.buildFeedPage(ctx, lastPostID, limit, viewerID)
			if err != nil {
				return err
			}
			*page = *fresh
			return nil
		})
		if err != nil {
			return nil, err
		}
		return page, nil
	}

	return s.buildFeedPage(ctx, lastPostID, limit, viewerID)
}

func (s *PostService) buildFeedPage(ctx context.Context, lastPostID uint, limit int, viewerID uint) (*FeedPage, error) {
	var posts []*models.Post
	var err error
	if lastPostID == 0 {
		posts, err = s.postRepo.ListFirstPage(ctx, limit)
	} else {
		posts, err = s.postRepo.ListAfter(ctx, lastPostID, limit)
	}
	if err != nil {
		return nil, err
	}

	page := &FeedPage{Items: make([]*PostDetail, 0, len(posts))}
	if len(posts) == 0 {
		return page, nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	stats, err := s.statRepo.GetMany(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	likedSet := map[uint]struct{}{}
	if viewerID != 0 {
		likedIDs, err := s.likeRepo.GetLikedPostIDs(ctx, viewerID, postIDs)
		if err != nil {
			return nil, err
		}
		for _, id := range likedIDs {
			likedSet[id] = struct{}{}
		}
	}

	for _, p := range posts {
		_, liked := likedSet[p.ID]
		page.Items = append(page.Items, &PostDetail{
			Post:  p,
			Stats: stats[p.ID],
			Liked: liked,
		})
	}

	// The cursor is the smallest id on the page, which is the last row only
	// when ids and creation times agree.
	last := posts[0].ID
	for _, p := range posts {
		if p.ID < last {
			last = p.ID
		}
	}
	page.LastPostID = last
	page.HasMore = len(posts) == limit

	return page, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.PostID)
		}
		return nil, err
	}

	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}
	if err := validatePostFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Content = in.Content
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.postRepo.WithTx(tx).Update(ctx, post); err != nil {
			return err
		}
		if in.ImageIDs != nil {
			return s.imageRepo.WithTx(tx).ReplacePostImages(ctx, post.ID, in.ImageIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost soft-deletes the post. Comments, likes and counters stay in
// place; the soft-deleted post hides them all because every read path checks
// the post first.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", in.PostID)
		}
		return err
	}

	if post.UserID != in.UserID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

// PurgePost permanently removes a post and every dependent row: comments,
// likes, image links and the stat counters, all in one transaction.
func (s *PostService) PurgePost(ctx context.Context, postID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.commentRepo.WithTx(tx).PurgeByPostID(ctx, postID); err != nil {
			return err
		}
		if err := s.likeRepo.WithTx(tx).PurgeByPostID(ctx, postID); err != nil {
			return err
		}
		if err := s.imageRepo.WithTx(tx).PurgeByPostID(ctx, postID); err != nil {
			return err
		}
		if err := s.statRepo.WithTx(tx).DeleteByPostID(ctx, postID); err != nil {
			return err
		}
		return s.postRepo.WithTx(tx).Purge(ctx, postID)
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}
