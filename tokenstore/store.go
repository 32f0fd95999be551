// Package tokenstore persists the client's credential triple (access
// token, refresh token, user id) and provides unverified inspection of
// JWT payloads.
//
// Writes to the three keys carry no transactional guarantee. Callers that
// install a fresh credential set should write the access token last: its
// absence alone forces a clean re-authentication, so a partial failure
// leaves the store in a state that is safe to retry.
package tokenstore

import (
	"context"
	"errors"
	"io"
)

// Storage keys shared by every backend. They match the web client's
// localStorage keys so persisted state is portable across tools.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUserID       = "userId"
)

// ErrClosed is returned by operations on a store that has been closed.
var ErrClosed = errors.New("tokenstore: store is closed")

// Store is durable key/value storage for the session credentials.
// An absent key yields an empty string and a nil error. Implementations
// must be safe for concurrent use.
type Store interface {
	io.Closer

	AccessToken(ctx context.Context) (string, error)
	SetAccessToken(ctx context.Context, token string) error

	RefreshToken(ctx context.Context) (string, error)
	SetRefreshToken(ctx context.Context, token string) error

	UserID(ctx context.Context) (string, error)
	SetUserID(ctx context.Context, id string) error

	// Clear removes all three keys. It is idempotent and safe to call on
	// an already-empty store.
	Clear(ctx context.Context) error
}
