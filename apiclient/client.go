// Package apiclient is the typed HTTP client for the social-app backend.
//
// Every endpoint answers with the same envelope:
//
//	{"success": bool, "data": ..., "message": "..."}
//
// Any success:false or non-2xx status maps to an *Error carrying the
// server's message verbatim when one exists, else a generic fallback, so
// the text is always safe to put in front of a user.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wavely-app/sessionkit/dto"
	"github.com/wavely-app/sessionkit/log"
)

const defaultTimeout = 30 * time.Second

// genericFailure is shown when the backend provides no message of its own.
const genericFailure = "Request failed. Please try again."

// Error is a failed backend call. Message is display-safe.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("apiclient: backend rejected request (status %d): %s", e.Status, e.Message)
	}
	return "apiclient: " + e.Message
}

// UserMessage returns the text to surface inline to the user.
func (e *Error) UserMessage() string { return e.Message }

// Client talks to the backend API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     log.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport, e.g. for tests or custom TLS.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(logger log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client for the given base URL, e.g.
// "https://api.example.com/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     log.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newRequest builds a request with the shared headers. Every call carries
// a request id so client and server logs line up.
func (c *Client) newRequest(ctx context.Context, method, path, bearer string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return req, nil
}

// do sends one request and decodes the envelope into dst. A nil dst skips
// payload decoding. A nil body sends no request body.
func (c *Client) do(ctx context.Context, method, path, bearer string, body, dst any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, bearer, reqBody)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var envelope dto.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		// Non-JSON body, e.g. a proxy error page. Treat it like any other
		// transient transport failure.
		c.logger.Warn(ctx, "backend returned a non-JSON body",
			log.Fields{"path": path, "status": resp.StatusCode})
		return &Error{Status: resp.StatusCode, Message: genericFailure}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !envelope.Success {
		msg := envelope.Message
		if msg == "" {
			msg = genericFailure
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if dst != nil {
		if err := json.Unmarshal(envelope.Data, dst); err != nil {
			return fmt.Errorf("apiclient: decode %s payload: %w", path, err)
		}
	}
	return nil
}
