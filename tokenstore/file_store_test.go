package tokenstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestFileStore(t)

	require.NoError(t, store.SetRefreshToken(ctx, "rt-1"))
	require.NoError(t, store.SetUserID(ctx, "user-1"))
	require.NoError(t, store.SetAccessToken(ctx, "at-1"))

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

func TestFileStoreAbsentKeysReadEmpty(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestFileStore(t)

	for _, read := range []func(context.Context) (string, error){
		store.AccessToken, store.RefreshToken, store.UserID,
	} {
		val, err := read(ctx)
		require.NoError(t, err)
		assert.Empty(t, val)
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	store, path := newTestFileStore(t)

	require.NoError(t, store.SetAccessToken(ctx, "at-persist"))
	require.NoError(t, store.Close())

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	at, err := reopened.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "at-persist", at)
}

func TestFileStoreClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestFileStore(t)

	require.NoError(t, store.SetAccessToken(ctx, "at-1"))
	require.NoError(t, store.SetRefreshToken(ctx, "rt-1"))

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx), "second clear must be a no-op")

	at, err := store.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, at)
	rt, err := store.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, rt)
}

func TestFileStoreCorruptFileReadsEmpty(t *testing.T) {
	ctx := context.Background()
	store, path := newTestFileStore(t)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	at, err := store.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, at)
}

func TestFileStoreClosed(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestFileStore(t)
	require.NoError(t, store.Close())

	_, err := store.AccessToken(ctx)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, store.SetAccessToken(ctx, "x"), ErrClosed)
	assert.ErrorIs(t, store.Clear(ctx), ErrClosed)
}
