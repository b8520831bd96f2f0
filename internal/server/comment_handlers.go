package server

import (
	"community/internal/models"
	"community/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment creates a comment or reply on a post (protected)
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content  string `json:"content"`
		ParentID *uint  `json:"parent_id"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	created, err := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		UserID:   userID,
		PostID:   postID,
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetComments returns the comment thread for a post (public)
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	thread, err := s.commentService.ListComments(ctx, postID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(thread)
}

// GetCommentStats returns a recount for one comment (public)
func (s *Server) GetCommentStats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	stats, err := s.commentService.GetCommentStats(ctx, commentID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(stats)
}

// GetMyComments returns the authenticated user's comments (protected)
func (s *Server) GetMyComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	comments, err := s.commentService.ListUserComments(ctx, userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(comments)
}

// UpdateComment updates a comment (owner only)
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	updated, err := s.commentService.UpdateComment(ctx, service.UpdateCommentInput{
		UserID:    userID,
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(updated)
}

// DeleteComment deletes a comment and its replies (owner only)
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.commentService.DeleteComment(ctx, service.DeleteCommentInput{
		UserID:    userID,
		CommentID: commentID,
	}); err != nil {
		return respondAppError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
