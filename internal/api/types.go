package api

import (
	"encoding/json"
	"strings"
)

// Credentials are the username and password typed into the login form.
// They are never persisted.
type Credentials struct {
	Username string
	Password string
}

// SignupRequest is the payload of the signup form. Field tags use the
// client's camelCase naming; Signup converts them to the server's
// snake_case before sending.
type SignupRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// TokenPair is returned by a successful password login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

// AccessToken is returned by a successful refresh. The refresh token itself
// is not rotated.
type AccessToken struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

// User is the record returned by GET /users/me.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// Raw is the response body as received.
	Raw json.RawMessage `json:"-"`
}

// DisplayName returns "First Last" when known, else the username.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
