package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type staticTokens string

func (s staticTokens) AccessToken() string { return string(s) }

func TestGuard_Check(t *testing.T) {
	tests := []struct {
		name  string
		dest  string
		token string
		want  Decision
	}{
		{"login without token", "/auth/login", "", Decision{Allow: true}},
		{"signup without token", "/auth/signup", "", Decision{Allow: true}},
		{"login with token", "/auth/login", "a1", Decision{Allow: true}},
		{"signup with token", "/auth/signup", "a1", Decision{Allow: true}},
		{"login with query", "/auth/login?next=/adr", "", Decision{Allow: true}},
		{"login trailing slash", "/auth/login/", "", Decision{Allow: true}},
		{"adr without token", "/adr", "", Decision{Redirect: PathLogin}},
		{"adr with token", "/adr", "a1", Decision{Allow: true}},
		{"nested without token", "/adr/42", "", Decision{Redirect: PathLogin}},
		{"root without token", "/", "", Decision{Redirect: PathLogin}},
		{"dot segments cannot escape", "/auth/login/../../adr", "", Decision{Redirect: PathLogin}},
		{"lookalike prefix", "/auth/loginx", "", Decision{Redirect: PathLogin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGuard(staticTokens(tt.token))
			assert.Equal(t, tt.want, g.Check(tt.dest))
		})
	}
}

func TestGuard_ReadsTokenAtCheckTime(t *testing.T) {
	s := &Store{}
	g := NewGuard(s)

	assert.False(t, g.Check(PathHome).Allow)

	s.accessToken = "a1"
	assert.True(t, g.Check(PathHome).Allow)
}
