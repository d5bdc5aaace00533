package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// RequestToken exchanges a username and password for a token pair.
// POST {base}/token with a form-url-encoded body.
func (c *Client) RequestToken(ctx context.Context, creds Credentials) Result[TokenPair] {
	if creds.Username == "" || creds.Password == "" {
		return Fail[TokenPair](invalidInput("username and password are required"))
	}

	form := url.Values{
		"username": {creds.Username},
		"password": {creds.Password},
	}
	req, apiErr := c.newRequest(ctx, http.MethodPost, c.endpoint("/token"), strings.NewReader(form.Encode()))
	if apiErr != nil {
		return Fail[TokenPair](apiErr)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var pair TokenPair
	if apiErr := c.do(req, &pair); apiErr != nil {
		return Fail[TokenPair](apiErr)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return Fail[TokenPair](&Error{Kind: KindDecode, Status: http.StatusOK, Detail: "token response is missing a token"})
	}
	return Ok(pair)
}

// RefreshToken exchanges a refresh token for a new access token.
// POST {base}/token/refresh?refreshToken=...
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) Result[AccessToken] {
	if refreshToken == "" {
		return Fail[AccessToken](invalidInput("refresh token is required"))
	}

	q := url.Values{"refreshToken": {refreshToken}}
	req, apiErr := c.newRequest(ctx, http.MethodPost, c.endpoint("/token/refresh")+"?"+q.Encode(), nil)
	if apiErr != nil {
		return Fail[AccessToken](apiErr)
	}

	var tok AccessToken
	if apiErr := c.do(req, &tok); apiErr != nil {
		return Fail[AccessToken](apiErr)
	}
	if tok.AccessToken == "" {
		return Fail[AccessToken](&Error{Kind: KindDecode, Status: http.StatusOK, Detail: "refresh response is missing the access token"})
	}
	return Ok(tok)
}

// Signup registers a new user. The body is sent as JSON with snake_case
// keys and the server's response is returned untouched.
func (c *Client) Signup(ctx context.Context, user SignupRequest) Result[json.RawMessage] {
	if user.Username == "" || user.Password == "" {
		return Fail[json.RawMessage](invalidInput("username and password are required"))
	}

	tree, err := DecamelizeKeys(user)
	if err != nil {
		return Fail[json.RawMessage](&Error{Kind: KindInvalidInput, Detail: "encoding signup payload", Err: err})
	}
	body, err := json.Marshal(tree)
	if err != nil {
		return Fail[json.RawMessage](&Error{Kind: KindInvalidInput, Detail: "encoding signup payload", Err: err})
	}

	req, apiErr := c.newRequest(ctx, http.MethodPost, c.endpoint("/signup"), bytes.NewReader(body))
	if apiErr != nil {
		return Fail[json.RawMessage](apiErr)
	}
	req.Header.Set("Content-Type", "application/json")

	var raw json.RawMessage
	if apiErr := c.do(req, &raw); apiErr != nil {
		return Fail[json.RawMessage](apiErr)
	}
	return Ok(raw)
}

// GetCurrentUser fetches the user the access token belongs to.
// GET {base}/users/me with a bearer Authorization header.
func (c *Client) GetCurrentUser(ctx context.Context, accessToken string) Result[*User] {
	if accessToken == "" {
		return Fail[*User](invalidInput("access token is required"))
	}

	req, apiErr := c.newRequest(ctx, http.MethodGet, c.endpoint("/users/me"), nil)
	if apiErr != nil {
		return Fail[*User](apiErr)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var raw json.RawMessage
	if apiErr := c.do(req, &raw); apiErr != nil {
		return Fail[*User](apiErr)
	}

	var user User
	if err := decodeCamelized(raw, &user); err != nil {
		return Fail[*User](&Error{Kind: KindDecode, Status: http.StatusOK, Detail: "decoding user", Err: err})
	}
	user.Raw = raw
	return Ok(&user)
}
