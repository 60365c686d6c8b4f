package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccount struct {
	id       uint
	username string
}

func (a fakeAccount) AccountID() uint                 { return a.id }
func (a fakeAccount) AccountUsername() string         { return a.username }
func (a fakeAccount) AccountEmail() string            { return a.username + "@x.com" }
func (a fakeAccount) CheckPassword(plain string) bool { return plain == "pw" }

func TestIssueAndResolve(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), "secret", time.Hour)

	token, issued, err := m.Issue(ctx, fakeAccount{id: 3, username: "alice"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, got.ID)
	assert.Equal(t, uint(3), got.AccountID)
	assert.Equal(t, "alice", got.Username)
}

func TestRevokeOnlyInvalidatesThatSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), "secret", time.Hour)
	account := fakeAccount{id: 3, username: "alice"}

	first, firstSession, err := m.Issue(ctx, account)
	require.NoError(t, err)
	second, _, err := m.Issue(ctx, account)
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, firstSession.ID))

	_, err = m.Resolve(ctx, first)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Resolve(ctx, second)
	assert.NoError(t, err)
}

func TestResolveRejectsForeignToken(t *testing.T) {
	ctx := context.Background()
	issuer := NewManager(NewMemoryStore(), "secret", time.Hour)
	other := NewManager(NewMemoryStore(), "secret", time.Hour)

	token, _, err := issuer.Issue(ctx, fakeAccount{id: 1, username: "bob"})
	require.NoError(t, err)

	_, err = other.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = issuer.Resolve(ctx, "garbage")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &Session{ID: "a", AccountID: 1, ExpiresAt: now.Add(time.Minute)}))
	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	got, err = store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}
