package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T) (*SessionManager, *time.Time) {
	t.Helper()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mgr := NewSessionManager(NewMemorySessionStore(), 24*time.Hour, zap.NewNop()).
		WithClock(func() time.Time { return now })
	return mgr, &now
}

func TestSessionManager_CreateAndValidate(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	token, err := mgr.Create(ctx, AdminUserID)
	require.NoError(t, err)
	assert.Len(t, token, tokenBytes*2, "token is hex of 32 random bytes")
	assert.True(t, mgr.Validate(ctx, token))
}

func TestSessionManager_ValidateUnknownToken(t *testing.T) {
	mgr, _ := newTestManager(t)

	assert.False(t, mgr.Validate(context.Background(), "not-a-token"))
	assert.False(t, mgr.Validate(context.Background(), ""))
}

func TestSessionManager_ExpiryIsLazy(t *testing.T) {
	mgr, now := newTestManager(t)
	ctx := context.Background()

	token, err := mgr.Create(ctx, AdminUserID)
	require.NoError(t, err)

	*now = now.Add(24*time.Hour - time.Second)
	assert.True(t, mgr.Validate(ctx, token), "still inside the window")

	*now = now.Add(2 * time.Second)
	assert.False(t, mgr.Validate(ctx, token), "past the window")

	// The expired entry was removed on first failed validation.
	*now = now.Add(-time.Hour)
	assert.False(t, mgr.Validate(ctx, token))
}

func TestSessionManager_Destroy(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	token, err := mgr.Create(ctx, AdminUserID)
	require.NoError(t, err)

	mgr.Destroy(ctx, token)
	assert.False(t, mgr.Validate(ctx, token))

	// no-op on a token that is already gone
	mgr.Destroy(ctx, token)
}

func TestSessionManager_CreateSweepsExpired(t *testing.T) {
	store := NewMemorySessionStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mgr := NewSessionManager(store, 24*time.Hour, zap.NewNop()).
		WithClock(func() time.Time { return now })
	ctx := context.Background()

	stale, err := mgr.Create(ctx, AdminUserID)
	require.NoError(t, err)

	now = now.Add(25 * time.Hour)
	_, err = mgr.Create(ctx, AdminUserID)
	require.NoError(t, err)

	_, ok, err := store.Get(ctx, stale)
	require.NoError(t, err)
	assert.False(t, ok, "expired session swept on create, not just hidden")
}

func TestSessionManager_TokensAreUnique(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 64; i++ {
		token, err := mgr.Create(ctx, AdminUserID)
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup)
		seen[token] = struct{}{}
	}
}

func TestMemorySessionStore_ConcurrentAccess(t *testing.T) {
	mgr := NewSessionManager(NewMemorySessionStore(), time.Hour, zap.NewNop())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				token, err := mgr.Create(ctx, AdminUserID)
				assert.NoError(t, err)
				assert.True(t, mgr.Validate(ctx, token))
				mgr.Destroy(ctx, token)
				assert.False(t, mgr.Validate(ctx, token))
			}
		}()
	}
	wg.Wait()
}
