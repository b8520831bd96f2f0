package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"community/internal/models"
	"community/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImageService tracks uploaded image metadata. Byte storage is out of scope
// here; the service issues stored names and records ownership.
type ImageService struct {
	imageRepo repository.ImageRepository
}

type RegisterImageInput struct {
	UserID       uint
	OriginalName string
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

func NewImageService(imageRepo repository.ImageRepository) *ImageService {
	return &ImageService{imageRepo: imageRepo}
}

// RegisterImage validates the extension, assigns a collision-free stored
// name and records the metadata row.
func (s *ImageService) RegisterImage(ctx context.Context, in RegisterImageInput) (*models.Image, error) {
	ext := strings.ToLower(path.Ext(in.OriginalName))
	if !allowedImageExts[ext] {
		return nil, models.NewValidationError("Unsupported image type")
	}

	storedName := uuid.New().String() + ext
	image := &models.Image{
		UserID:     in.UserID,
		StoredName: storedName,
		URL:        fmt.Sprintf("/media/%s", storedName),
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *ImageService) GetImage(ctx context.Context, id uint) (*models.Image, error) {
	image, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Image", id)
		}
		return nil, err
	}
	return image, nil
}

// DeleteImage removes the metadata row. Only the owner may delete.
func (s *ImageService) DeleteImage(ctx context.Context, userID, imageID uint) error {
	image, err := s.GetImage(ctx, imageID)
	if err != nil {
		return err
	}
	if image.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own images")
	}
	return s.imageRepo.Delete(ctx, imageID)
}
