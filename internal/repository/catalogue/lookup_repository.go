package catalogue

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	model "showcase/internal/model/catalogue"
)

// LookupRepository manages the genre, developer and platform tables.
type LookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

func (r *LookupRepository) EnsureGenres(ctx context.Context, names []string) ([]model.Genre, error) {
	genres := make([]model.Genre, 0, len(names))
	for _, name := range names {
		genre := model.Genre{}
		if err := r.db.WithContext(ctx).Where(model.Genre{Name: name}).FirstOrCreate(&genre).Error; err != nil {
			return nil, fmt.Errorf("ensure genre %q failed: %w", name, err)
		}
		genres = append(genres, genre)
	}
	return genres, nil
}

func (r *LookupRepository) EnsureDevelopers(ctx context.Context, names []string) ([]model.Developer, error) {
	developers := make([]model.Developer, 0, len(names))
	for _, name := range names {
		developer := model.Developer{}
		if err := r.db.WithContext(ctx).Where(model.Developer{Name: name}).FirstOrCreate(&developer).Error; err != nil {
			return nil, fmt.Errorf("ensure developer %q failed: %w", name, err)
		}
		developers = append(developers, developer)
	}
	return developers, nil
}

func (r *LookupRepository) EnsurePlatforms(ctx context.Context, names []string) ([]model.Platform, error) {
	platforms := make([]model.Platform, 0, len(names))
	for _, name := range names {
		platform := model.Platform{}
		if err := r.db.WithContext(ctx).Where(model.Platform{Name: name}).FirstOrCreate(&platform).Error; err != nil {
			return nil, fmt.Errorf("ensure platform %q failed: %w", name, err)
		}
		platforms = append(platforms, platform)
	}
	return platforms, nil
}

func (r *LookupRepository) ListGenres(ctx context.Context) ([]model.Genre, error) {
	var genres []model.Genre
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("list genres failed: %w", err)
	}
	return genres, nil
}

func (r *LookupRepository) ListDevelopers(ctx context.Context) ([]model.Developer, error) {
	var developers []model.Developer
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&developers).Error; err != nil {
		return nil, fmt.Errorf("list developers failed: %w", err)
	}
	return developers, nil
}

func (r *LookupRepository) ListPlatforms(ctx context.Context) ([]model.Platform, error) {
	var platforms []model.Platform
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&platforms).Error; err != nil {
		return nil, fmt.Errorf("list platforms failed: %w", err)
	}
	return platforms, nil
}
