package sessionkit

import (
	"context"
	"errors"

	"github.com/wavely-app/sessionkit/domain"
)

// Backend is the slice of the remote API the session manager consumes.
// *apiclient.Client satisfies it; tests substitute their own.
type Backend interface {
	Login(ctx context.Context, creds domain.LoginCredentials) (*domain.AuthPayload, error)
	Register(ctx context.Context, creds domain.RegisterCredentials) (*domain.AuthPayload, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context) error
	UserByID(ctx context.Context, id, accessToken string) (*domain.User, error)
	AvatarPresignedURL(ctx context.Context, key, accessToken string) (string, error)
}

// userMessenger is implemented by backend errors that carry display text.
type userMessenger interface {
	UserMessage() string
}

// userMessage extracts display text from a backend error, falling back to
// a generic string for raw transport failures.
func userMessage(err error, fallback string) string {
	var um userMessenger
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}
	return fallback
}
