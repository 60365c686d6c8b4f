package app

import (
	"context"
	"strconv"

	"showcase/internal/model"
	cataloguemodel "showcase/internal/model/catalogue"
	"showcase/internal/repository"
	cataloguerepo "showcase/internal/repository/catalogue"
)

const genrePageSize = 6

type CatalogueService struct {
	games    *cataloguerepo.GameRepository
	users    *cataloguerepo.UserRepository
	profiles *cataloguerepo.ProfileRepository
	lookups  *cataloguerepo.LookupRepository
	activity *ActivityRecorder
}

// Lookups holds every genre, developer and platform, sorted by name.
type Lookups struct {
	Genres     []cataloguemodel.Genre
	Developers []cataloguemodel.Developer
	Platforms  []cataloguemodel.Platform
}

func NewCatalogueService(
	games *cataloguerepo.GameRepository,
	users *cataloguerepo.UserRepository,
	profiles *cataloguerepo.ProfileRepository,
	lookups *cataloguerepo.LookupRepository,
	activity *ActivityRecorder,
) *CatalogueService {
	return &CatalogueService{
		games:    games,
		users:    users,
		profiles: profiles,
		lookups:  lookups,
		activity: activity,
	}
}

// Browse returns one game chosen uniformly at random, or nil when the
// catalogue is empty.
func (s *CatalogueService) Browse(ctx context.Context) (*cataloguemodel.Game, error) {
	games, err := s.games.Random(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, nil
	}
	return &games[0], nil
}

func (s *CatalogueService) RandomBatch(ctx context.Context, limit int) ([]cataloguemodel.Game, error) {
	return s.games.Random(ctx, repository.ClampLimit(limit, maxRandomBatch))
}

func (s *CatalogueService) ListAll(ctx context.Context) ([]cataloguemodel.Game, error) {
	return s.games.ListAll(ctx)
}

func (s *CatalogueService) ListUsers(ctx context.Context) ([]cataloguemodel.User, error) {
	return s.users.List(ctx)
}

// ByGenre returns one page (1-based) of the games tagged with genre.
func (s *CatalogueService) ByGenre(ctx context.Context, genre string, page int) ([]cataloguemodel.Game, error) {
	if page < 1 {
		page = 1
	}
	return s.games.ListByGenre(ctx, genre, (page-1)*genrePageSize, genrePageSize)
}

func (s *CatalogueService) Lookups(ctx context.Context) (*Lookups, error) {
	genres, err := s.lookups.ListGenres(ctx)
	if err != nil {
		return nil, err
	}
	developers, err := s.lookups.ListDevelopers(ctx)
	if err != nil {
		return nil, err
	}
	platforms, err := s.lookups.ListPlatforms(ctx)
	if err != nil {
		return nil, err
	}
	return &Lookups{Genres: genres, Developers: developers, Platforms: platforms}, nil
}

func (s *CatalogueService) Create(ctx context.Context, accountID uint, form GameForm) (*cataloguemodel.Game, error) {
	form.normalize()
	if verr := form.Validate(); verr != nil {
		return nil, verr
	}

	game, err := s.games.Create(ctx, cataloguerepo.GameDraft{
		Game: cataloguemodel.Game{
			Title:       form.Title,
			Description: form.Description,
			ReleaseYear: form.Year(),
		},
		Genres:     splitNames(form.Genres),
		Developers: splitNames(form.Developers),
		Platforms:  splitNames(form.Platforms),
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, model.ActivityContentCreated, accountID, "game:"+strconv.FormatUint(uint64(game.ID), 10))
	return game, nil
}

// Profile returns the user's profile with its saved games.
func (s *CatalogueService) Profile(ctx context.Context, userID uint) (*cataloguemodel.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *CatalogueService) AddToProfile(ctx context.Context, userID, gameID uint) error {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrContentNotFound
	}
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return err
	}
	if game == nil {
		return ErrContentNotFound
	}

	if err := s.profiles.AddGame(ctx, profile, game); err != nil {
		return err
	}
	s.activity.Record(ctx, model.ActivityProfileSaved, userID, "game:"+strconv.FormatUint(uint64(gameID), 10))
	return nil
}
