package apiclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/wavely-app/sessionkit/domain"
	"github.com/wavely-app/sessionkit/dto"
	"github.com/wavely-app/sessionkit/log"
)

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, creds domain.LoginCredentials) (*domain.AuthPayload, error) {
	return c.authenticate(ctx, "/auth/login", creds)
}

// Register creates an account and signs it in, same contract as Login.
func (c *Client) Register(ctx context.Context, creds domain.RegisterCredentials) (*domain.AuthPayload, error) {
	return c.authenticate(ctx, "/auth/register", creds)
}

func (c *Client) authenticate(ctx context.Context, path string, creds any) (*domain.AuthPayload, error) {
	var data dto.AuthResponseData
	if err := c.do(ctx, http.MethodPost, path, "", creds, &data); err != nil {
		return nil, err
	}
	if data.User == nil || data.AccessToken == "" {
		// success:true with a hollow payload is still a failure.
		return nil, &Error{Message: genericFailure}
	}
	return &domain.AuthPayload{
		User:         data.User,
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
	}, nil
}

// Refresh exchanges the refresh token for a new access token. An empty
// refreshToken sends no body, for deployments that keep the refresh token
// in an HttpOnly cookie.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var body any
	if refreshToken != "" {
		body = dto.RefreshRequest{RefreshToken: refreshToken}
	}
	var data dto.RefreshResponseData
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", "", body, &data); err != nil {
		return "", err
	}
	if data.AccessToken == "" {
		return "", &Error{Message: genericFailure}
	}
	return data.AccessToken, nil
}

// Logout tells the backend to drop the session. Only the status matters;
// the response body is ignored entirely per the API contract.
func (c *Client) Logout(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/logout", "", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: POST /auth/logout: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn(ctx, "remote logout returned a non-2xx status",
			log.Fields{"status": resp.StatusCode})
		return &Error{Status: resp.StatusCode, Message: genericFailure}
	}
	return nil
}
