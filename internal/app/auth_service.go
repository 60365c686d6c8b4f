package app

import (
	"context"
	"errors"
	"fmt"

	"showcase/internal/model"
	"showcase/internal/pkg/password"
	"showcase/internal/repository"
	"showcase/internal/session"
)

// AccountStore is the persistence a variant provides for its accounts.
// Lookups return nil, nil when nothing matches.
type AccountStore interface {
	FindByUsername(ctx context.Context, username string) (model.Authenticatable, error)
	FindByID(ctx context.Context, id uint) (model.Authenticatable, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	CreateAccount(ctx context.Context, draft model.AccountDraft) (model.Authenticatable, error)
}

type AuthService struct {
	accounts AccountStore
	sessions *session.Manager
	activity *ActivityRecorder
}

type AuthResult struct {
	Token   string
	Session *session.Session
	Account model.Authenticatable
}

func NewAuthService(accounts AccountStore, sessions *session.Manager, activity *ActivityRecorder) *AuthService {
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
		activity: activity,
	}
}

func (s *AuthService) Register(ctx context.Context, form RegisterForm) (*AuthResult, error) {
	form.normalize()
	if verr := form.Validate(); verr != nil {
		return nil, verr
	}

	if err := s.checkAvailable(ctx, form.Username, form.Email); err != nil {
		return nil, err
	}

	hash, err := password.Hash(form.Password)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.CreateAccount(ctx, model.AccountDraft{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, s.duplicateError(ctx, form.Username, form.Email)
		}
		return nil, err
	}

	result, err := s.startSession(ctx, account)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, model.ActivityRegistered, account.AccountID(), account.AccountUsername())
	return result, nil
}

// Login answers an unknown username and a wrong password with the same
// error, field and message.
func (s *AuthService) Login(ctx context.Context, form LoginForm) (*AuthResult, error) {
	form.normalize()
	if verr := form.Validate(); verr != nil {
		return nil, verr
	}

	account, err := s.accounts.FindByUsername(ctx, form.Username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		password.Burn(form.Password)
		return nil, invalidCredentials()
	}
	if !account.CheckPassword(form.Password) {
		return nil, invalidCredentials()
	}

	result, err := s.startSession(ctx, account)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, model.ActivityLoggedIn, account.AccountID(), account.AccountUsername())
	return result, nil
}

// Logout revokes only the given session.
func (s *AuthService) Logout(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return ErrUnauthenticated
	}
	if err := s.sessions.Revoke(ctx, sess.ID); err != nil {
		return err
	}
	s.activity.Record(ctx, model.ActivityLoggedOut, sess.AccountID, sess.Username)
	return nil
}

// Authenticate resolves a session token to its live session and account.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*session.Session, model.Authenticatable, error) {
	if token == "" {
		return nil, nil, ErrUnauthenticated
	}

	sess, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, nil, ErrUnauthenticated
		}
		return nil, nil, err
	}

	account, err := s.CurrentAccount(ctx, sess)
	if err != nil {
		return nil, nil, err
	}
	if account == nil {
		_ = s.sessions.Revoke(ctx, sess.ID)
		return nil, nil, ErrUnauthenticated
	}
	return sess, account, nil
}

// CurrentAccount returns nil when sess is nil or its account is gone.
func (s *AuthService) CurrentAccount(ctx context.Context, sess *session.Session) (model.Authenticatable, error) {
	if sess == nil || sess.AccountID == 0 {
		return nil, nil
	}
	return s.accounts.FindByID(ctx, sess.AccountID)
}

// EnsureAccount creates the account unless the username is already taken.
// It is used to seed the configured administrator.
func (s *AuthService) EnsureAccount(ctx context.Context, username, email, plainPassword, role string) (bool, error) {
	taken, err := s.accounts.UsernameTaken(ctx, username)
	if err != nil {
		return false, err
	}
	if taken {
		return false, nil
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return false, err
	}
	if _, err := s.accounts.CreateAccount(ctx, model.AccountDraft{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}); err != nil {
		return false, fmt.Errorf("seed account %s failed: %w", username, err)
	}
	return true, nil
}

func (s *AuthService) startSession(ctx context.Context, account model.Authenticatable) (*AuthResult, error) {
	token, sess, err := s.sessions.Issue(ctx, account)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Session: sess, Account: account}, nil
}

// checkAvailable reports username and email clashes together.
func (s *AuthService) checkAvailable(ctx context.Context, username, email string) error {
	verr := newValidationError()

	taken, err := s.accounts.UsernameTaken(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		verr.add("username", "Username already exists", ErrUsernameExists)
	}

	taken, err = s.accounts.EmailTaken(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		verr.add("email", "Email already exists", ErrEmailExists)
	}
	return verr.orNil()
}

// duplicateError turns a unique-constraint failure into the matching field
// error. The insert lost a race with a concurrent registration, so the clash
// is visible now.
func (s *AuthService) duplicateError(ctx context.Context, username, email string) error {
	if err := s.checkAvailable(ctx, username, email); err != nil {
		return err
	}
	verr := newValidationError()
	verr.add("general", "Username or email already exists", ErrStorageConstraint)
	return verr
}

func invalidCredentials() error {
	verr := newValidationError()
	verr.add("invalid", "Invalid login", ErrInvalidCredential)
	return verr
}
