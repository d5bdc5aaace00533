package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraigochieng/4th-year-project/internal/api"
	"github.com/kraigochieng/4th-year-project/internal/auth"
	"github.com/kraigochieng/4th-year-project/internal/storage"
)

type tokens struct{ access string }

func (t *tokens) AccessToken() string { return t.access }

func TestNavigate_GuardRedirects(t *testing.T) {
	tok := &tokens{}
	r := New(auth.NewGuard(tok))

	assert.Equal(t, auth.PathLogin, r.Navigate("/adr"))
	assert.Equal(t, auth.PathLogin, r.Current())

	assert.Equal(t, auth.PathSignup, r.Navigate(auth.PathSignup))

	tok.access = "a1"
	assert.Equal(t, "/adr", r.Navigate("/adr"))
	assert.Equal(t, "/adr", r.Current())
}

func TestNavigate_NotifiesListeners(t *testing.T) {
	r := New(auth.NewGuard(&tokens{}))
	var got [][2]string
	r.OnChange(func(from, to string) { got = append(got, [2]string{from, to}) })

	r.NavigateTo(auth.PathSignup)
	r.NavigateTo("/adr")

	assert.Equal(t, [][2]string{
		{"", auth.PathSignup},
		{auth.PathSignup, auth.PathLogin},
	}, got)
}

func TestBack(t *testing.T) {
	tok := &tokens{access: "a1"}
	r := New(auth.NewGuard(tok))

	r.NavigateTo(auth.PathLogin)
	r.NavigateTo("/adr")
	r.NavigateTo("/adr/42")

	assert.Equal(t, "/adr", r.Back())
	assert.Equal(t, auth.PathLogin, r.Back())
	assert.Equal(t, auth.PathLogin, r.Back(), "empty history stays put")
}

func TestBack_RechecksGuard(t *testing.T) {
	tok := &tokens{access: "a1"}
	r := New(auth.NewGuard(tok))
	r.NavigateTo("/adr")
	r.NavigateTo(auth.PathSignup)

	tok.access = ""
	assert.Equal(t, auth.PathLogin, r.Back())
}

func TestLoginLogoutFlow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("password") != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Incorrect password"}`)
			return
		}
		_, _ = io.WriteString(w, `{"access_token":"a1","refresh_token":"r1","token_type":"bearer"}`)
	}))
	defer server.Close()

	ctx := context.Background()
	store, err := auth.NewStore(ctx, api.NewClient(server.URL, 0), storage.NewMemory())
	require.NoError(t, err)
	r := New(auth.NewGuard(store))
	store.SetNavigator(r)

	assert.Equal(t, auth.PathLogin, r.Navigate("/adr"))

	err = store.Login(ctx, api.Credentials{Username: "alice", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, auth.PathLogin, r.Current())

	require.NoError(t, store.Login(ctx, api.Credentials{Username: "alice", Password: "correct"}))
	assert.Equal(t, "/adr", r.Current())

	store.Logout(ctx)
	assert.Equal(t, auth.PathLogin, r.Current())
	assert.Equal(t, auth.PathLogin, r.Navigate("/adr"))
}
