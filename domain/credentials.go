package domain

// LoginCredentials is the payload for POST /auth/login.
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterCredentials is the payload for POST /auth/register.
type RegisterCredentials struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
	Country   string `json:"country"`
	Contact   string `json:"contact"`
}

// AuthPayload is what a successful login or registration yields: the
// profile plus the credential pair to persist.
type AuthPayload struct {
	User         *User
	AccessToken  string
	RefreshToken string
}
