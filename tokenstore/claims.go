package tokenstore

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiryBuffer tolerates clock skew and in-flight request latency
// when deciding whether an access token is still usable.
const DefaultExpiryBuffer = 60 * time.Second

// parser decodes payloads without checking signatures. This is NOT a trust
// boundary: the backend alone verifies signatures, the client only reads
// claims it was handed.
var parser = jwt.NewParser()

func decodeClaims(token string) (jwt.MapClaims, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}

// DecodeUserID extracts the userId claim from a token payload. Malformed
// tokens and missing claims yield the empty string, never an error.
func DecodeUserID(token string) string {
	claims, ok := decodeClaims(token)
	if !ok {
		return ""
	}
	id, _ := claims["userId"].(string)
	return id
}

// TokenExpiry reports the exp claim of a token. ok is false when the token
// is malformed or carries no exp claim at all.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	claims, decoded := decodeClaims(token)
	if !decoded {
		return time.Time{}, false
	}
	numeric, err := claims.GetExpirationTime()
	if err != nil || numeric == nil {
		return time.Time{}, false
	}
	return numeric.Time, true
}

// IsTokenExpired reports whether the token expires within buffer from now
// (now >= exp - buffer). Tokens without an exp claim never expire; neither
// do tokens that cannot be decoded, since their expiry is unknowable here.
func IsTokenExpired(token string, buffer time.Duration) bool {
	exp, ok := TokenExpiry(token)
	if !ok {
		return false
	}
	return !time.Now().Before(exp.Add(-buffer))
}
