package gallery

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "showcase/internal/model/gallery"
	"showcase/internal/repository"
)

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// Create inserts the image inside its own transaction.
func (r *ImageRepository) Create(ctx context.Context, image *model.Image) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(image).Error
	})
	if err != nil {
		return fmt.Errorf("create image failed: %w", err)
	}
	return nil
}

func (r *ImageRepository) GetByID(ctx context.Context, id uint) (*model.Image, error) {
	var image model.Image
	if err := r.db.WithContext(ctx).First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query image by id failed: %w", err)
	}
	return &image, nil
}

// Random returns up to limit images drawn uniformly at random.
func (r *ImageRepository) Random(ctx context.Context, limit int) ([]model.Image, error) {
	var images []model.Image
	db := r.db.WithContext(ctx)
	if err := db.Order(repository.RandomOrder(db)).Limit(limit).Find(&images).Error; err != nil {
		return nil, fmt.Errorf("query random images failed: %w", err)
	}
	return images, nil
}

// ListAll returns every image in insertion order.
func (r *ImageRepository) ListAll(ctx context.Context) ([]model.Image, error) {
	var images []model.Image
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("list images failed: %w", err)
	}
	return images, nil
}

// SaveForUser pairs the image with the user. Saving the same pair twice is a
// no-op.
func (r *ImageRepository) SaveForUser(ctx context.Context, userID, imageID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		link := model.UserImage{UserID: userID, ImageID: imageID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	})
	if err != nil {
		return fmt.Errorf("save image for user failed: %w", err)
	}
	return nil
}

func (r *ImageRepository) ListByUserID(ctx context.Context, userID uint) ([]model.Image, error) {
	var links []model.UserImage
	if err := r.db.WithContext(ctx).Preload("Image").Where("user_id = ?", userID).Order("id ASC").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list images by user failed: %w", err)
	}

	images := make([]model.Image, 0, len(links))
	for _, link := range links {
		if link.Image != nil {
			images = append(images, *link.Image)
		}
	}
	return images, nil
}
