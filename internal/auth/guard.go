package auth

import (
	"path"
	"strings"
)

// TokenSource exposes the stored access token.
type TokenSource interface {
	AccessToken() string
}

// Decision is the guard's verdict on a navigation.
type Decision struct {
	Allow    bool
	Redirect string // set when Allow is false
}

// Guard decides whether a navigation may proceed. It only checks that an
// access token is stored; the token is validated lazily by the first
// authenticated request.
type Guard struct {
	tokens TokenSource
}

// NewGuard creates a guard reading tokens from ts.
func NewGuard(ts TokenSource) *Guard {
	return &Guard{tokens: ts}
}

// IsPublic reports whether dest is reachable without a token.
func IsPublic(dest string) bool {
	p := normalize(dest)
	return p == PathLogin || p == PathSignup
}

// Check returns the decision for a navigation to dest.
func (g *Guard) Check(dest string) Decision {
	if IsPublic(dest) {
		return Decision{Allow: true}
	}
	if g.tokens.AccessToken() != "" {
		return Decision{Allow: true}
	}
	return Decision{Redirect: PathLogin}
}

func normalize(dest string) string {
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		dest = dest[:i]
	}
	if dest == "" {
		return "/"
	}
	return path.Clean("/" + dest)
}
