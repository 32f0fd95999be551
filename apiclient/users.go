package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/wavely-app/sessionkit/domain"
	"github.com/wavely-app/sessionkit/dto"
)

// UserByID fetches a profile with the given access token.
func (c *Client) UserByID(ctx context.Context, id, accessToken string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), accessToken, nil, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, &Error{Message: genericFailure}
	}
	return &user, nil
}

// AvatarPresignedURL exchanges an opaque avatar storage key for a
// time-limited signed URL.
func (c *Client) AvatarPresignedURL(ctx context.Context, key, accessToken string) (string, error) {
	path := "/users/avatar/presigned-url/?key=" + url.QueryEscape(key)
	var data dto.PresignedURLData
	if err := c.do(ctx, http.MethodGet, path, accessToken, nil, &data); err != nil {
		return "", err
	}
	if data.URL == "" {
		return "", &Error{Message: genericFailure}
	}
	return data.URL, nil
}
