package catalogue

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	model "showcase/internal/model/catalogue"
	"showcase/internal/repository"
)

type GameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

// GameDraft is a game plus the names of its genres, developers and platforms.
type GameDraft struct {
	Game       model.Game
	Genres     []string
	Developers []string
	Platforms  []string
}

// Create stores the game and links its lookups in one transaction, creating
// any genre, developer or platform that does not exist yet.
func (r *GameRepository) Create(ctx context.Context, draft GameDraft) (*model.Game, error) {
	game := draft.Game
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lookups := NewLookupRepository(tx)

		genres, err := lookups.EnsureGenres(ctx, draft.Genres)
		if err != nil {
			return err
		}
		developers, err := lookups.EnsureDevelopers(ctx, draft.Developers)
		if err != nil {
			return err
		}
		platforms, err := lookups.EnsurePlatforms(ctx, draft.Platforms)
		if err != nil {
			return err
		}

		game.Genres = genres
		game.Developers = developers
		game.Platforms = platforms
		return tx.Omit("Genres.*", "Developers.*", "Platforms.*").Create(&game).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create game failed: %w", err)
	}
	return &game, nil
}

func (r *GameRepository) GetByID(ctx context.Context, id uint) (*model.Game, error) {
	var game model.Game
	if err := r.withLookups(ctx).First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query game by id failed: %w", err)
	}
	return &game, nil
}

// Random returns up to limit games drawn uniformly at random.
func (r *GameRepository) Random(ctx context.Context, limit int) ([]model.Game, error) {
	var games []model.Game
	if err := r.withLookups(ctx).Order(repository.RandomOrder(r.db)).Limit(limit).Find(&games).Error; err != nil {
		return nil, fmt.Errorf("query random games failed: %w", err)
	}
	return games, nil
}

// ListAll returns every game in insertion order.
func (r *GameRepository) ListAll(ctx context.Context) ([]model.Game, error) {
	var games []model.Game
	if err := r.withLookups(ctx).Order("games.id ASC").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("list games failed: %w", err)
	}
	return games, nil
}

// ListByGenre pages through the games tagged with genre, oldest first. An
// empty genre pages through every game.
func (r *GameRepository) ListByGenre(ctx context.Context, genre string, offset, limit int) ([]model.Game, error) {
	q := r.withLookups(ctx)
	if genre != "" {
		q = q.Where("games.id IN (?)",
			r.db.Table("game_genres").
				Select("game_genres.game_id").
				Joins("JOIN genres ON genres.id = game_genres.genre_id").
				Where("genres.name = ?", genre),
		)
	}

	var games []model.Game
	if err := q.Order("games.id ASC").Offset(offset).Limit(limit).Find(&games).Error; err != nil {
		return nil, fmt.Errorf("list games by genre failed: %w", err)
	}
	return games, nil
}

func (r *GameRepository) withLookups(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Genres").Preload("Developers").Preload("Platforms")
}
