package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"showcase/internal/model"
	cataloguemodel "showcase/internal/model/catalogue"
	gallerymodel "showcase/internal/model/gallery"
	"showcase/internal/repository"
	cataloguerepo "showcase/internal/repository/catalogue"
	galleryrepo "showcase/internal/repository/gallery"
)

type galleryFixture struct {
	service   *GalleryService
	accounts  *galleryrepo.AccountStore
	publisher *recordingPublisher
}

func newGalleryFixture(t *testing.T) galleryFixture {
	t.Helper()
	db := openTestDB(t, gallerymodel.Models()...)
	publisher := &recordingPublisher{}
	service := NewGalleryService(
		galleryrepo.NewImageRepository(db),
		galleryrepo.NewUserRepository(db),
		NewActivityRecorder(publisher, zap.NewNop()),
	)
	return galleryFixture{service: service, accounts: galleryrepo.NewAccountStore(db), publisher: publisher}
}

func TestGalleryBrowseEmpty(t *testing.T) {
	f := newGalleryFixture(t)

	image, err := f.service.Browse(context.Background())
	require.NoError(t, err)
	assert.Nil(t, image)
}

func TestGalleryCreateAndBrowse(t *testing.T) {
	ctx := context.Background()
	f := newGalleryFixture(t)

	created, err := f.service.Create(ctx, 1, ImageForm{Title: " Dunes ", ImageURL: "https://img.example/dunes.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "Dunes", created.Title)
	assert.Nil(t, created.Description)

	image, err := f.service.Browse(ctx)
	require.NoError(t, err)
	require.NotNil(t, image)
	assert.Equal(t, created.ID, image.ID)

	assert.Equal(t, []string{model.ActivityContentCreated}, f.publisher.kinds())
}

func TestGalleryCreateRejectsInvalidForm(t *testing.T) {
	ctx := context.Background()
	f := newGalleryFixture(t)

	_, err := f.service.Create(ctx, 1, ImageForm{Description: "no title"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))

	images, err := f.service.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, images)
	assert.Empty(t, f.publisher.kinds())
}

func TestGalleryRandomBatchClampsLimit(t *testing.T) {
	ctx := context.Background()
	f := newGalleryFixture(t)
	for i := 0; i < 25; i++ {
		_, err := f.service.Create(ctx, 1, ImageForm{Title: fmt.Sprintf("img-%d", i), ImageURL: "https://img.example/x.jpg"})
		require.NoError(t, err)
	}

	images, err := f.service.RandomBatch(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, images, 1)

	images, err = f.service.RandomBatch(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, images, 20)
}

func TestGallerySaveToProfile(t *testing.T) {
	ctx := context.Background()
	f := newGalleryFixture(t)

	account, err := f.accounts.CreateAccount(ctx, model.AccountDraft{Username: "alice", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	image, err := f.service.Create(ctx, account.AccountID(), ImageForm{Title: "Dunes", ImageURL: "https://img.example/dunes.jpg"})
	require.NoError(t, err)

	require.NoError(t, f.service.SaveToProfile(ctx, account.AccountID(), image.ID))
	require.NoError(t, f.service.SaveToProfile(ctx, account.AccountID(), image.ID))

	saved, err := f.service.ProfileImages(ctx, account.AccountID())
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, image.ID, saved[0].ID)

	err = f.service.SaveToProfile(ctx, account.AccountID(), image.ID+100)
	assert.True(t, errors.Is(err, ErrContentNotFound))
}

type catalogueFixture struct {
	service  *CatalogueService
	accounts *cataloguerepo.AccountStore
}

func newCatalogueFixture(t *testing.T) catalogueFixture {
	t.Helper()
	db := openTestDB(t, cataloguemodel.Models()...)
	service := NewCatalogueService(
		cataloguerepo.NewGameRepository(db),
		cataloguerepo.NewUserRepository(db),
		cataloguerepo.NewProfileRepository(db),
		cataloguerepo.NewLookupRepository(db),
		nil,
	)
	return catalogueFixture{service: service, accounts: cataloguerepo.NewAccountStore(db)}
}

func TestCatalogueCreateGameWithLookups(t *testing.T) {
	ctx := context.Background()
	f := newCatalogueFixture(t)

	game, err := f.service.Create(ctx, 1, GameForm{
		Title:       "Myst",
		ReleaseYear: "1993",
		Genres:      "Adventure, Puzzle",
		Developers:  "Cyan",
		Platforms:   "Mac, PC",
	})
	require.NoError(t, err)
	assert.Equal(t, 1993, game.ReleaseYear)
	assert.Len(t, game.Genres, 2)

	lookups, err := f.service.Lookups(ctx)
	require.NoError(t, err)
	assert.Len(t, lookups.Genres, 2)
	assert.Len(t, lookups.Developers, 1)
	assert.Len(t, lookups.Platforms, 2)

	browsed, err := f.service.Browse(ctx)
	require.NoError(t, err)
	require.NotNil(t, browsed)
	assert.Equal(t, "Myst", browsed.Title)
	assert.Len(t, browsed.Platforms, 2)
}

func TestCatalogueCreateRejectsBadYear(t *testing.T) {
	ctx := context.Background()
	f := newCatalogueFixture(t)

	_, err := f.service.Create(ctx, 1, GameForm{Title: "Pong", ReleaseYear: "1850"})
	require.Error(t, err)
	fields, ok := FieldErrorsOf(err)
	require.True(t, ok)
	assert.Contains(t, fields, "release_year")

	games, err := f.service.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestCatalogueByGenrePagesOfSix(t *testing.T) {
	ctx := context.Background()
	f := newCatalogueFixture(t)
	for i := 0; i < 8; i++ {
		_, err := f.service.Create(ctx, 1, GameForm{Title: fmt.Sprintf("rpg-%d", i), Genres: "RPG"})
		require.NoError(t, err)
	}

	first, err := f.service.ByGenre(ctx, "RPG", 1)
	require.NoError(t, err)
	assert.Len(t, first, 6)

	second, err := f.service.ByGenre(ctx, "RPG", 2)
	require.NoError(t, err)
	assert.Len(t, second, 2)

	clamped, err := f.service.ByGenre(ctx, "RPG", 0)
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, clamped[0].ID)
}

func TestCatalogueAddToProfile(t *testing.T) {
	ctx := context.Background()
	f := newCatalogueFixture(t)

	account, err := f.accounts.CreateAccount(ctx, model.AccountDraft{Username: "alice", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	game, err := f.service.Create(ctx, account.AccountID(), GameForm{Title: "Myst"})
	require.NoError(t, err)

	require.NoError(t, f.service.AddToProfile(ctx, account.AccountID(), game.ID))

	profile, err := f.service.Profile(ctx, account.AccountID())
	require.NoError(t, err)
	require.Len(t, profile.Games, 1)
	assert.Equal(t, "Myst", profile.Games[0].Title)

	assert.True(t, errors.Is(f.service.AddToProfile(ctx, account.AccountID(), 999), ErrContentNotFound))
	assert.True(t, errors.Is(f.service.AddToProfile(ctx, 999, game.ID), ErrContentNotFound))
}

func TestAdminServiceDescribesVariantTables(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t, append(gallerymodel.Models(), &model.ActivityEvent{})...)
	admin := NewAdminService(repository.NewSchemaInspector(db), repository.NewActivityRepository(db))

	tables, err := admin.DescribeSchema(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(tables))
	for _, table := range tables {
		names = append(names, table.Name)
	}
	assert.Equal(t, []string{"activity_events", "images", "user", "user_images"}, names)

	activity, err := admin.RecentActivity(ctx)
	require.NoError(t, err)
	assert.Empty(t, activity)
}
