package catalogue

import (
	"context"

	"gorm.io/gorm"

	"showcase/internal/model"
	cataloguemodel "showcase/internal/model/catalogue"
)

// AccountStore exposes catalogue users as authenticatable accounts. Every
// account owns exactly one profile.
type AccountStore struct {
	db    *gorm.DB
	users *UserRepository
}

func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db, users: NewUserRepository(db)}
}

func (s *AccountStore) FindByUsername(ctx context.Context, username string) (model.Authenticatable, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountStore) FindByID(ctx context.Context, id uint) (model.Authenticatable, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	user, err := s.users.GetByUsername(ctx, username)
	return user != nil, err
}

func (s *AccountStore) EmailTaken(ctx context.Context, email string) (bool, error) {
	user, err := s.users.GetByEmail(ctx, email)
	return user != nil, err
}

// CreateAccount inserts the user and its profile in one transaction; if the
// profile insert fails the user row is rolled back with it.
func (s *AccountStore) CreateAccount(ctx context.Context, draft model.AccountDraft) (model.Authenticatable, error) {
	role := draft.Role
	if role == "" {
		role = model.RoleUser
	}
	user := &cataloguemodel.User{
		Username:     draft.Username,
		Email:        draft.Email,
		PasswordHash: draft.PasswordHash,
		Role:         role,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewUserRepository(tx).Create(ctx, user); err != nil {
			return err
		}
		profile := &cataloguemodel.Profile{UserID: user.ID, Username: user.Username}
		if err := NewProfileRepository(tx).Create(ctx, profile); err != nil {
			return err
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
