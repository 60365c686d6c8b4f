package catalogue

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	model "showcase/internal/model/catalogue"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	if err := r.db.WithContext(ctx).Omit("Games").Create(profile).Error; err != nil {
		return fmt.Errorf("create profile failed: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uint) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).
		Preload("Games", func(db *gorm.DB) *gorm.DB { return db.Order("games.id ASC") }).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query profile by user id failed: %w", err)
	}
	return &profile, nil
}

// AddGame links the game to the profile. Linking twice is a no-op.
func (r *ProfileRepository) AddGame(ctx context.Context, profile *model.Profile, game *model.Game) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(profile).Association("Games").Append(game)
	})
	if err != nil {
		return fmt.Errorf("add game to profile failed: %w", err)
	}
	return nil
}
