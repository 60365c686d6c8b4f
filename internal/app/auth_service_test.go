package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"showcase/internal/model"
	cataloguemodel "showcase/internal/model/catalogue"
	gallerymodel "showcase/internal/model/gallery"
	"showcase/internal/platform/database"
	"showcase/internal/repository"
	cataloguerepo "showcase/internal/repository/catalogue"
	galleryrepo "showcase/internal/repository/gallery"
	"showcase/internal/session"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.ActivityEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event model.ActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]string, 0, len(p.events))
	for _, e := range p.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func openTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()
	db, err := database.Open(context.Background(), "sqlite", ":memory:?_foreign_keys=on", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db, models...))
	return db
}

func newSessions() *session.Manager {
	return session.NewManager(session.NewMemoryStore(), "test-secret", time.Hour)
}

func newGalleryAuth(t *testing.T) (*AuthService, *recordingPublisher) {
	t.Helper()
	db := openTestDB(t, gallerymodel.Models()...)
	publisher := &recordingPublisher{}
	activity := NewActivityRecorder(publisher, zap.NewNop())
	return NewAuthService(galleryrepo.NewAccountStore(db), newSessions(), activity), publisher
}

func validRegistration(username, email string) RegisterForm {
	return RegisterForm{
		Username:     username,
		Email:        email,
		Password:     "s3cret",
		Confirmation: "s3cret",
	}
}

func TestRegisterStartsSession(t *testing.T) {
	ctx := context.Background()
	auth, publisher := newGalleryAuth(t)

	result, err := auth.Register(ctx, validRegistration("alice", "a@x.com"))
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Equal(t, "alice", result.Account.AccountUsername())
	assert.True(t, result.Account.CheckPassword("s3cret"))

	sess, account, err := auth.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Session.ID, sess.ID)
	assert.Equal(t, result.Account.AccountID(), account.AccountID())

	assert.Equal(t, []string{model.ActivityRegistered}, publisher.kinds())
}

func TestRegisterStoresHashNotPlaintext(t *testing.T) {
	auth, _ := newGalleryAuth(t)

	result, err := auth.Register(context.Background(), validRegistration("alice", "a@x.com"))
	require.NoError(t, err)

	user, ok := result.Account.(*gallerymodel.User)
	require.True(t, ok)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestRegisterReportsBothDuplicates(t *testing.T) {
	ctx := context.Background()
	auth, _ := newGalleryAuth(t)

	_, err := auth.Register(ctx, validRegistration("alice", "a@x.com"))
	require.NoError(t, err)

	_, err = auth.Register(ctx, validRegistration("alice", "A@X.com"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUsernameExists))
	assert.True(t, errors.Is(err, ErrEmailExists))

	fields, ok := FieldErrorsOf(err)
	require.True(t, ok)
	assert.Equal(t, "Username already exists", fields["username"])
	assert.Equal(t, "Email already exists", fields["email"])
}

func TestRegisterSkipsUniquenessWhenFieldsMissing(t *testing.T) {
	ctx := context.Background()
	auth, _ := newGalleryAuth(t)

	_, err := auth.Register(ctx, validRegistration("alice", "a@x.com"))
	require.NoError(t, err)

	form := validRegistration("alice", "")
	_, err = auth.Register(ctx, form)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.False(t, errors.Is(err, ErrUsernameExists))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	auth, _ := newGalleryAuth(t)
	_, err := auth.Register(ctx, validRegistration("alice", "a@x.com"))
	require.NoError(t, err)

	_, unknownErr := auth.Login(ctx, LoginForm{Username: "mallory", Password: "s3cret"})
	_, wrongErr := auth.Login(ctx, LoginForm{Username: "alice", Password: "nope"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.True(t, errors.Is(unknownErr, ErrInvalidCredential))
	assert.True(t, errors.Is(wrongErr, ErrInvalidCredential))

	unknownFields, _ := FieldErrorsOf(unknownErr)
	wrongFields, _ := FieldErrorsOf(wrongErr)
	assert.Equal(t, unknownFields, wrongFields)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLoginMissingFields(t *testing.T) {
	auth, _ := newGalleryAuth(t)

	_, err := auth.Login(context.Background(), LoginForm{})
	require.Error(t, err)
	fields, ok := FieldErrorsOf(err)
	require.True(t, ok)
	assert.Len(t, fields, 2)
	assert.True(t, errors.Is(err, ErrMissingField))
}

func TestLogoutRevokesOnlyThatSession(t *testing.T) {
	ctx := context.Background()
	auth, publisher := newGalleryAuth(t)

	registered, err := auth.Register(ctx, validRegistration("alice", "a@x.com"))
	require.NoError(t, err)
	other, err := auth.Login(ctx, LoginForm{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, registered.Session))

	_, _, err = auth.Authenticate(ctx, registered.Token)
	assert.True(t, errors.Is(err, ErrUnauthenticated))
	_, account, err := auth.Authenticate(ctx, other.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", account.AccountUsername())

	assert.Equal(t, []string{
		model.ActivityRegistered,
		model.ActivityLoggedIn,
		model.ActivityLoggedOut,
	}, publisher.kinds())

	assert.True(t, errors.Is(auth.Logout(ctx, nil), ErrUnauthenticated))
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	auth, _ := newGalleryAuth(t)

	_, _, err := auth.Authenticate(context.Background(), "")
	assert.True(t, errors.Is(err, ErrUnauthenticated))
	_, _, err = auth.Authenticate(context.Background(), "not-a-token")
	assert.True(t, errors.Is(err, ErrUnauthenticated))
}

func TestPublishFailureDoesNotFailRegistration(t *testing.T) {
	db := openTestDB(t, gallerymodel.Models()...)
	publisher := &recordingPublisher{err: errors.New("broker down")}
	auth := NewAuthService(galleryrepo.NewAccountStore(db), newSessions(), NewActivityRecorder(publisher, zap.NewNop()))

	_, err := auth.Register(context.Background(), validRegistration("alice", "a@x.com"))
	assert.NoError(t, err)
}

func TestCatalogueRegisterCreatesProfile(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t, cataloguemodel.Models()...)
	auth := NewAuthService(cataloguerepo.NewAccountStore(db), newSessions(), nil)

	result, err := auth.Register(ctx, validRegistration("alice", "a@x.com"))
	require.NoError(t, err)

	profile, err := cataloguerepo.NewProfileRepository(db).GetByUserID(ctx, result.Account.AccountID())
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "alice", profile.Username)

	holder, ok := result.Account.(model.RoleHolder)
	require.True(t, ok)
	assert.True(t, holder.HasRole(model.RoleUser))
	assert.False(t, holder.HasRole(model.RoleAdmin))
}

func TestEnsureAccountSeedsOnce(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t, cataloguemodel.Models()...)
	auth := NewAuthService(cataloguerepo.NewAccountStore(db), newSessions(), nil)

	created, err := auth.EnsureAccount(ctx, "root", "root@x.com", "pw", model.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = auth.EnsureAccount(ctx, "root", "root@x.com", "pw", model.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, created)

	result, err := auth.Login(ctx, LoginForm{Username: "root", Password: "pw"})
	require.NoError(t, err)
	holder := result.Account.(model.RoleHolder)
	assert.True(t, holder.HasRole(model.RoleAdmin))
}

// racingStore reports names as free on the first check, then fails the insert
// with a unique violation as if another registration won.
type racingStore struct {
	AccountStore
	checks        int
	usernameClash bool
	emailClash    bool
}

func (s *racingStore) UsernameTaken(context.Context, string) (bool, error) {
	s.checks++
	return s.checks > 1 && s.usernameClash, nil
}

func (s *racingStore) EmailTaken(context.Context, string) (bool, error) {
	return s.checks > 1 && s.emailClash, nil
}

func (s *racingStore) CreateAccount(context.Context, model.AccountDraft) (model.Authenticatable, error) {
	return nil, fmt.Errorf("create user failed: %w", repository.ErrDuplicate)
}

func TestRegisterMapsLostInsertRaceToFieldError(t *testing.T) {
	store := &racingStore{usernameClash: true}
	auth := NewAuthService(store, newSessions(), nil)

	_, err := auth.Register(context.Background(), validRegistration("alice", "a@x.com"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUsernameExists))
	assert.False(t, errors.Is(err, ErrStorageConstraint))

	fields, ok := FieldErrorsOf(err)
	require.True(t, ok)
	assert.Equal(t, "Username already exists", fields["username"])
	assert.Equal(t, 2, store.checks)
}

func TestRegisterReportsUnattributedConstraint(t *testing.T) {
	auth := NewAuthService(&racingStore{}, newSessions(), nil)

	_, err := auth.Register(context.Background(), validRegistration("alice", "a@x.com"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorageConstraint))
	assert.False(t, errors.Is(err, ErrUsernameExists))

	fields, ok := FieldErrorsOf(err)
	require.True(t, ok)
	assert.Equal(t, "Username or email already exists", fields["general"])
}

func TestRegisterMismatchedConfirmationCreatesNoUser(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t, gallerymodel.Models()...)
	auth := NewAuthService(galleryrepo.NewAccountStore(db), newSessions(), nil)

	form := validRegistration("alice", "a@x.com")
	form.Confirmation = "different"
	_, err := auth.Register(ctx, form)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPasswordMismatch))

	var users int64
	require.NoError(t, db.Model(&gallerymodel.User{}).Count(&users).Error)
	assert.Zero(t, users)
}
