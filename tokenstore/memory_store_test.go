package tokenstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	require.NoError(t, store.SetAccessToken(ctx, "at-1"))
	require.NoError(t, store.SetRefreshToken(ctx, "rt-1"))
	require.NoError(t, store.SetUserID(ctx, "user-1"))

	at, err := store.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "at-1", at)

	rt, err := store.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rt-1", rt)

	id, err := store.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestMemoryStoreClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	require.NoError(t, store.SetAccessToken(ctx, "at-1"))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	at, err := store.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, at)
}

func TestMemoryStoreClosed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Close())

	_, err := store.UserID(ctx)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, store.SetUserID(ctx, "u"), ErrClosed)
}
