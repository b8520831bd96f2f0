package server

import (
	"community/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile returns the authenticated user's profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile updates nickname or profile image for the caller
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Nickname string `json:"nickname"`
		ImageID  *uint  `json:"profile_image_id"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return respondAppError(c, parseErr)
	}

	user, err := s.userService.UpdateProfile(ctx, service.UpdateProfileInput{
		UserID:   userID,
		Nickname: req.Nickname,
		ImageID:  req.ImageID,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyPassword changes the caller's password
func (s *Server) UpdateMyPassword(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return respondAppError(c, parseErr)
	}

	if err := s.userService.ChangePassword(ctx, service.ChangePasswordInput{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}); err != nil {
		return respondAppError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

// DeleteMyAccount soft-deletes the caller's account
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	if err := s.userService.DeleteAccount(ctx, userID); err != nil {
		return respondAppError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

// GetUserProfile returns another user's public profile
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(user)
}
