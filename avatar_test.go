package sessionkit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wavely-app/sessionkit/domain"
	"github.com/wavely-app/sessionkit/tokenstore"
)

func TestResolveAvatarURLPassesDirectRefsThrough(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	for _, ref := range []string{
		"https://cdn.example.com/a.png",
		"http://cdn.example.com/a.png",
		"/images/profile/custom.png",
	} {
		got := f.mgr.resolveAvatarURL(ctx, "token", ref)
		assert.Equal(t, ref, got)
	}
	f.backend.AssertNotCalled(t, "AvatarPresignedURL", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveAvatarURLEmptyRefUsesDefault(t *testing.T) {
	f := newManagerFixture(t)

	got := f.mgr.resolveAvatarURL(context.Background(), "token", "")
	assert.Equal(t, "/images/profile/default-avatar.png", got)
}

func TestResolveAvatarURLResolvesAndCachesStorageKeys(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	f.backend.On("AvatarPresignedURL", mock.Anything, "avatars/user-1.png", "token").
		Return("https://storage.example.com/avatars/user-1.png?sig=abc", nil)

	first := f.mgr.resolveAvatarURL(ctx, "token", "avatars/user-1.png")
	second := f.mgr.resolveAvatarURL(ctx, "token", "avatars/user-1.png")

	assert.Equal(t, "https://storage.example.com/avatars/user-1.png?sig=abc", first)
	assert.Equal(t, first, second)
	f.backend.AssertNumberOfCalls(t, "AvatarPresignedURL", 1)
}

func TestResolveAvatarURLFallsBackOnError(t *testing.T) {
	f := newManagerFixture(t)

	f.backend.On("AvatarPresignedURL", mock.Anything, "avatars/user-1.png", "token").
		Return("", assert.AnError)

	got := f.mgr.resolveAvatarURL(context.Background(), "token", "avatars/user-1.png")
	assert.Equal(t, "/images/profile/default-avatar.png", got)
}

func TestResolveAvatarURLFailureIsNotCached(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	f.backend.On("AvatarPresignedURL", mock.Anything, "avatars/user-1.png", "token").
		Return("", assert.AnError).Once()
	f.backend.On("AvatarPresignedURL", mock.Anything, "avatars/user-1.png", "token").
		Return("https://storage.example.com/avatars/user-1.png?sig=abc", nil).Once()

	assert.Equal(t, "/images/profile/default-avatar.png",
		f.mgr.resolveAvatarURL(ctx, "token", "avatars/user-1.png"))
	assert.Equal(t, "https://storage.example.com/avatars/user-1.png?sig=abc",
		f.mgr.resolveAvatarURL(ctx, "token", "avatars/user-1.png"))
}

// avatarBlockingBackend holds the presign call open until its context
// gives up, exercising the resolve timeout.
type avatarBlockingBackend struct {
	*MockBackend
}

func (b *avatarBlockingBackend) AvatarPresignedURL(ctx context.Context, key, accessToken string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestResolveAvatarURLTimesOut(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	backend := &avatarBlockingBackend{MockBackend: new(MockBackend)}
	mgr := NewManager(store, backend, nil, nil, Options{
		AvatarResolveTimeout: 50 * time.Millisecond,
		WatchdogInterval:     time.Hour,
	})
	t.Cleanup(func() { _ = mgr.Close() })

	start := time.Now()
	got := mgr.resolveAvatarURL(context.Background(), "token", "avatars/user-1.png")
	assert.Equal(t, "/images/profile/default-avatar.png", got)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestLoginResolvesAvatarFromProfile(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()
	token := signTestToken(t, time.Hour)

	user := testUser()
	user.AvatarURL = "avatars/user-1.png"

	f.backend.On("Login", mock.Anything, mock.Anything).
		Return(&domain.AuthPayload{User: user, AccessToken: token, RefreshToken: "refresh-1"}, nil)
	f.backend.On("AvatarPresignedURL", mock.Anything, "avatars/user-1.png", token).
		Return("https://storage.example.com/avatars/user-1.png?sig=abc", nil)

	require.True(t, f.mgr.Login(ctx, domain.LoginCredentials{Email: "a@example.com", Password: "pw"}).Success)
	assert.Equal(t, "https://storage.example.com/avatars/user-1.png?sig=abc", f.mgr.Snapshot().AvatarURL)
}
