package server

import (
	"community/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LikePost turns on the caller's like for a post (protected)
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.likeService.Like(ctx, service.LikeInput{
		UserID: userID,
		PostID: postID,
	}); err != nil {
		return respondAppError(c, err)
	}

	stat, err := s.statService.GetStats(ctx, postID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"liked":      true,
		"like_count": stat.LikeCount,
	})
}

// GetLikeStatus returns whether the caller likes the post and the current
// count (protected). is_liked comes from the like table, like_count from the
// denormalized counter.
func (s *Server) GetLikeStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.likeService.IsLiked(ctx, userID, postID)
	if err != nil {
		return respondAppError(c, err)
	}

	stat, err := s.statService.GetStats(ctx, postID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"liked":      liked,
		"like_count": stat.LikeCount,
	})
}

// UnlikePost turns off the caller's like for a post (protected)
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.likeService.Unlike(ctx, service.LikeInput{
		UserID: userID,
		PostID: postID,
	}); err != nil {
		return respondAppError(c, err)
	}

	stat, err := s.statService.GetStats(ctx, postID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"liked":      false,
		"like_count": stat.LikeCount,
	})
}
