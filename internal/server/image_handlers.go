package server

import (
	"community/internal/models"
	"community/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RegisterImage records metadata for an uploaded image (protected)
func (s *Server) RegisterImage(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		OriginalName string `json:"original_name"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	image, err := s.imageService.RegisterImage(ctx, service.RegisterImageInput{
		UserID:       userID,
		OriginalName: req.OriginalName,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(image)
}

// DeleteImage removes an image's metadata (owner only)
func (s *Server) DeleteImage(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	imageID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.imageService.DeleteImage(ctx, userID, imageID); err != nil {
		return respondAppError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
