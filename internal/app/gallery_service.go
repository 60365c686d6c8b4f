package app

import (
	"context"
	"strconv"

	"showcase/internal/model"
	gallerymodel "showcase/internal/model/gallery"
	"showcase/internal/repository"
	galleryrepo "showcase/internal/repository/gallery"
)

const maxRandomBatch = 20

type GalleryService struct {
	images   *galleryrepo.ImageRepository
	users    *galleryrepo.UserRepository
	activity *ActivityRecorder
}

func NewGalleryService(images *galleryrepo.ImageRepository, users *galleryrepo.UserRepository, activity *ActivityRecorder) *GalleryService {
	return &GalleryService{
		images:   images,
		users:    users,
		activity: activity,
	}
}

// Browse returns one image chosen uniformly at random, or nil when the
// gallery is empty.
func (s *GalleryService) Browse(ctx context.Context) (*gallerymodel.Image, error) {
	images, err := s.images.Random(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, nil
	}
	return &images[0], nil
}

func (s *GalleryService) RandomBatch(ctx context.Context, limit int) ([]gallerymodel.Image, error) {
	return s.images.Random(ctx, repository.ClampLimit(limit, maxRandomBatch))
}

func (s *GalleryService) ListAll(ctx context.Context) ([]gallerymodel.Image, error) {
	return s.images.ListAll(ctx)
}

func (s *GalleryService) ListUsers(ctx context.Context) ([]gallerymodel.User, error) {
	return s.users.List(ctx)
}

func (s *GalleryService) Create(ctx context.Context, accountID uint, form ImageForm) (*gallerymodel.Image, error) {
	form.normalize()
	if verr := form.Validate(); verr != nil {
		return nil, verr
	}

	image := &gallerymodel.Image{
		Title:    form.Title,
		ImageURL: form.ImageURL,
	}
	if form.Description != "" {
		description := form.Description
		image.Description = &description
	}
	if err := s.images.Create(ctx, image); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, model.ActivityContentCreated, accountID, "image:"+strconv.FormatUint(uint64(image.ID), 10))
	return image, nil
}

// SaveToProfile pairs an existing image with the user.
func (s *GalleryService) SaveToProfile(ctx context.Context, userID, imageID uint) error {
	image, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if image == nil {
		return ErrContentNotFound
	}
	if err := s.images.SaveForUser(ctx, userID, imageID); err != nil {
		return err
	}
	s.activity.Record(ctx, model.ActivityProfileSaved, userID, "image:"+strconv.FormatUint(uint64(imageID), 10))
	return nil
}

func (s *GalleryService) ProfileImages(ctx context.Context, userID uint) ([]gallerymodel.Image, error) {
	return s.images.ListByUserID(ctx, userID)
}
