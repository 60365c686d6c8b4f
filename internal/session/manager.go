package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"showcase/internal/model"
	"showcase/internal/pkg/jwtutil"
)

// Manager issues signed session tokens and checks them against the store, so
// a token stops working as soon as its session is revoked.
type Manager struct {
	store  Store
	secret string
	ttl    time.Duration
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{store: store, secret: secret, ttl: ttl}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) Issue(ctx context.Context, account model.Authenticatable) (string, *Session, error) {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		AccountID: account.AccountID(),
		Username:  account.AccountUsername(),
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return "", nil, fmt.Errorf("save session failed: %w", err)
	}

	token, err := jwtutil.GenerateToken(m.secret, m.ttl, s.ID, s.AccountID, s.Username)
	if err != nil {
		_ = m.store.Delete(ctx, s.ID)
		return "", nil, err
	}
	return token, s, nil
}

// Resolve returns ErrSessionNotFound for bad, expired or revoked tokens.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := jwtutil.ParseToken(m.secret, token)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	s, err := m.store.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if s == nil || s.AccountID != claims.UserID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *Manager) Revoke(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("revoke session failed: %w", err)
	}
	return nil
}
