package domain

import "time"

// User is the profile the backend returns for an account. AvatarURL may be
// a direct image URL or an opaque storage key that still needs to be
// exchanged for a presigned URL before display.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Username       string    `json:"username,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	AvatarURL      string    `json:"avatarUrl,omitempty"`
	Gender         string    `json:"gender,omitempty"`
	Country        string    `json:"country,omitempty"`
	Contact        string    `json:"contact,omitempty"`
	Birthday       string    `json:"birthday,omitempty"`
	IsPrivate      bool      `json:"isPrivate"`
	FollowerCount  int       `json:"followerCount,omitempty"`
	FollowingCount int       `json:"followingCount,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// DisplayName returns the name shown in headers and greetings.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}
