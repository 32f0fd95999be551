// Package dto holds the wire shapes of the backend API. Domain types live
// in the domain package; these structs only describe JSON framing.
package dto

import (
	"encoding/json"

	"github.com/wavely-app/sessionkit/domain"
)

// Envelope is the uniform response wrapper every endpoint uses:
//
//	{"success": bool, "data": ..., "message": "..."}
//
// Data stays raw so each caller can decode it into the right payload type.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// AuthResponseData is the data payload of /auth/login and /auth/register.
type AuthResponseData struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// RefreshRequest is the optional body of /auth/refresh. Deployments that
// keep the refresh token in an HttpOnly cookie send no body at all.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponseData is the data payload of /auth/refresh.
type RefreshResponseData struct {
	AccessToken string `json:"accessToken"`
}

// PresignedURLData is the data payload of the avatar presigned-url endpoint.
type PresignedURLData struct {
	URL string `json:"url"`
}
