package server

import (
	"community/internal/models"
	"community/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost creates a new post (protected)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		ImageIDs []uint `json:"image_ids"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		ImageIDs: req.ImageIDs,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetFeed returns a page of the post feed (public).
// Pass last_post_id from the previous page to continue; omit it for page one.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	ctx := c.UserContext()
	viewerID, _ := s.optionalUserID(c)

	lastPostID := uint(c.QueryInt("last_post_id", 0))
	limit := c.QueryInt("limit", s.config.FeedPageSize)
	if limit > 100 {
		limit = 100
	}

	page, err := s.postService.GetFeed(ctx, lastPostID, limit, viewerID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(page)
}

// GetPost returns a single post with counters (public). Counts a view.
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	viewerID, _ := s.optionalUserID(c)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.postService.GetPost(ctx, postID, viewerID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(detail)
}

// GetPostStats returns just the counters for a post (public).
func (s *Server) GetPostStats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	stat, err := s.statService.GetStats(ctx, postID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(stat)
}

// UpdatePost updates a post (owner only)
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		ImageIDs []uint `json:"image_ids"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		UserID:   userID,
		PostID:   postID,
		Title:    req.Title,
		Content:  req.Content,
		ImageIDs: req.ImageIDs,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(post)
}

// DeletePost soft-deletes a post (owner only)
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(ctx, service.DeletePostInput{
		UserID: userID,
		PostID: postID,
	}); err != nil {
		return respondAppError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

// PurgePost permanently removes a post and its dependents (admin only)
func (s *Server) PurgePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.PurgePost(ctx, postID); err != nil {
		return respondAppError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
