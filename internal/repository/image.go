package repository

import (
	"context"

	"community/internal/models"

	"gorm.io/gorm"
)

// ImageRepository defines interface for image metadata operations
type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, id uint) (*models.Image, error)
	Delete(ctx context.Context, id uint) error
	// ReplacePostImages swaps the post's attachments for the given image IDs,
	// preserving slice order as display order.
	ReplacePostImages(ctx context.Context, postID uint, imageIDs []uint) error
	ListByPost(ctx context.Context, postID uint) ([]*models.PostImage, error)
	PurgeByPostID(ctx context.Context, postID uint) error
	WithTx(tx *gorm.DB) ImageRepository
}

type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository creates a new ImageRepository
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) WithTx(tx *gorm.DB) ImageRepository {
	return &imageRepository{db: tx}
}

func (r *imageRepository) Create(ctx context.Context, image *models.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *imageRepository) GetByID(ctx context.Context, id uint) (*models.Image, error) {
	var image models.Image
	if err := r.db.WithContext(ctx).First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Image{}, id).Error
}

func (r *imageRepository) ReplacePostImages(ctx context.Context, postID uint, imageIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostImage{}).Error; err != nil {
			return err
		}
		for i, imageID := range imageIDs {
			link := models.PostImage{
				PostID:     postID,
				ImageID:    imageID,
				ImageOrder: i,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *imageRepository) ListByPost(ctx context.Context, postID uint) ([]*models.PostImage, error) {
	var links []*models.PostImage
	err := r.db.WithContext(ctx).
		Preload("Image").
		Where("post_id = ?", postID).
		Order("image_order asc").
		Find(&links).Error
	return links, err
}

func (r *imageRepository) PurgeByPostID(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&models.PostImage{}).Error
}
