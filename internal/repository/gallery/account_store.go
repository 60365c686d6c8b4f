package gallery

import (
	"context"

	"gorm.io/gorm"

	"showcase/internal/model"
	gallerymodel "showcase/internal/model/gallery"
)

// AccountStore exposes gallery users as authenticatable accounts.
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

// CreateAccount inserts the user in a single transaction. The gallery schema
// has no role column so draft.Role is ignored.
func (s *AccountStore) CreateAccount(ctx context.Context, draft model.AccountDraft) (model.Authenticatable, error) {
	user := &gallerymodel.User{
		Username:     draft.Username,
		Email:        draft.Email,
		PasswordHash: draft.PasswordHash,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return NewUserRepository(tx).Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
