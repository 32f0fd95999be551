package tokenstore

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signToken builds a real HS256 token. Claims are read unverified, so the
// signing key is irrelevant beyond producing a well-formed token.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestDecodeUserID(t *testing.T) {
	testCases := []struct {
		name  string
		token string
		want  string
	}{
		{
			name:  "userId claim present",
			token: signToken(t, jwt.MapClaims{"userId": "user-42"}),
			want:  "user-42",
		},
		{
			name:  "no userId claim",
			token: signToken(t, jwt.MapClaims{"sub": "user-42"}),
			want:  "",
		},
		{
			name:  "userId is not a string",
			token: signToken(t, jwt.MapClaims{"userId": 42}),
			want:  "",
		},
		{
			name:  "not a token at all",
			token: "not-a-token",
			want:  "",
		},
		{
			name:  "empty string",
			token: "",
			want:  "",
		},
		{
			name:  "garbage payload segment",
			token: "aaa.!!!.ccc",
			want:  "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DecodeUserID(tc.token))
		})
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	token := signToken(t, jwt.MapClaims{"exp": exp.Unix()})

	got, ok := TokenExpiry(token)
	require.True(t, ok)
	assert.WithinDuration(t, exp, got, time.Second)

	_, ok = TokenExpiry(signToken(t, jwt.MapClaims{"userId": "u1"}))
	assert.False(t, ok, "token without exp must report no expiry")

	_, ok = TokenExpiry("not-a-token")
	assert.False(t, ok)
}

func TestIsTokenExpired(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name    string
		token   string
		buffer  time.Duration
		expired bool
	}{
		{
			name:    "inside the safety buffer",
			token:   signToken(t, jwt.MapClaims{"exp": now.Add(30 * time.Second).Unix()}),
			buffer:  60 * time.Second,
			expired: true,
		},
		{
			name:    "comfortably ahead of the buffer",
			token:   signToken(t, jwt.MapClaims{"exp": now.Add(120 * time.Second).Unix()}),
			buffer:  60 * time.Second,
			expired: false,
		},
		{
			name:    "long past expiry",
			token:   signToken(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()}),
			buffer:  DefaultExpiryBuffer,
			expired: true,
		},
		{
			name:    "no exp claim never expires",
			token:   signToken(t, jwt.MapClaims{"userId": "u1"}),
			buffer:  DefaultExpiryBuffer,
			expired: false,
		},
		{
			name:    "malformed token never expires",
			token:   "not-a-token",
			buffer:  DefaultExpiryBuffer,
			expired: false,
		},
		{
			name:    "zero buffer uses exp directly",
			token:   signToken(t, jwt.MapClaims{"exp": now.Add(30 * time.Second).Unix()}),
			buffer:  0,
			expired: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expired, IsTokenExpired(tc.token, tc.buffer))
		})
	}
}

func TestDecodeNeverPanics(t *testing.T) {
	inputs := []string{"", ".", "..", "a.b", "a.b.c.d", "ey.ey.ey", "\x00\x01"}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			_ = DecodeUserID(in)
			_, _ = TokenExpiry(in)
			_ = IsTokenExpired(in, DefaultExpiryBuffer)
		})
	}
}
