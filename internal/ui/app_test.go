package ui

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraigochieng/4th-year-project/internal/api"
	"github.com/kraigochieng/4th-year-project/internal/auth"
	"github.com/kraigochieng/4th-year-project/internal/router"
	"github.com/kraigochieng/4th-year-project/internal/storage"
	"github.com/kraigochieng/4th-year-project/internal/ui/messages"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("password") != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Incorrect username or password"}`)
			return
		}
		_, _ = io.WriteString(w, `{"access_token":"a1","refresh_token":"r1","token_type":"bearer"}`)
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer a1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Could not validate credentials"}`)
			return
		}
		_, _ = io.WriteString(w, `{"id":"u1","username":"alice","first_name":"Alice","last_name":"Wanjiru"}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestApp(t *testing.T, st storage.Storage) (*App, *auth.Store) {
	t.Helper()
	server := newServer(t)

	store, err := auth.NewStore(context.Background(), api.NewClient(server.URL, 0), st)
	require.NoError(t, err)
	rt := router.New(auth.NewGuard(store))
	store.SetNavigator(rt)

	app := NewApp(store, rt, nil, "")
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return app, store
}

func loggedInStorage(t *testing.T) storage.Storage {
	t.Helper()
	st := storage.NewMemory()
	require.NoError(t, st.Set(context.Background(), storage.KeyRefreshToken, "r1"))
	require.NoError(t, st.Set(context.Background(), storage.KeyAccessToken, "a1"))
	return st
}

func typeText(app *App, s string) {
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestNewApp_LoggedOutStartsAtLogin(t *testing.T) {
	app, _ := newTestApp(t, storage.NewMemory())

	assert.Equal(t, auth.PathLogin, app.Route())
	assert.Equal(t, ViewLogin, app.ActiveView())
	assert.Contains(t, app.View(), "Log in to ADR reporting")
}

func TestNewApp_LoggedInStartsAtLanding(t *testing.T) {
	app, _ := newTestApp(t, loggedInStorage(t))

	assert.Equal(t, auth.PathHome, app.Route())
	assert.Equal(t, ViewLanding, app.ActiveView())

	cmd := app.Init()
	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.UserLoadedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)

	app.Update(msg)
	assert.Contains(t, app.View(), "Welcome, Alice Wanjiru")
}

func TestLogin_Success(t *testing.T) {
	app, store := newTestApp(t, storage.NewMemory())

	typeText(app, "alice")
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(app, "correct")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.LoginResultMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, "alice", msg.Username)

	_, cmd = app.Update(msg)
	assert.True(t, store.LoggedIn())
	assert.Equal(t, auth.PathHome, app.Route())
	assert.Equal(t, ViewLanding, app.ActiveView())

	require.NotNil(t, cmd, "landing should load the user")
	loaded, ok := cmd().(messages.UserLoadedMsg)
	require.True(t, ok)
	app.Update(loaded)
	assert.Equal(t, "alice", store.User().Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	app, store := newTestApp(t, storage.NewMemory())

	typeText(app, "alice")
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(app, "wrong")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd().(messages.LoginResultMsg)
	require.Error(t, msg.Err)

	app.Update(msg)
	assert.False(t, store.LoggedIn())
	assert.Equal(t, auth.PathLogin, app.Route())
	assert.Contains(t, app.loginForm.Err(), "Incorrect username or password")
}

func TestLogin_EmptyFields(t *testing.T) {
	app, _ := newTestApp(t, storage.NewMemory())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "Username and password required", app.loginForm.Err())
}

func TestSignupNavigation(t *testing.T) {
	app, _ := newTestApp(t, storage.NewMemory())

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, auth.PathSignup, app.Route())
	assert.Equal(t, ViewSignup, app.ActiveView())

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, auth.PathLogin, app.Route())

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	app.Update(messages.SignupResultMsg{Username: "bob"})
	assert.Equal(t, auth.PathLogin, app.Route(), "successful signup returns to login")
	assert.Contains(t, app.View(), "Account bob created")
}

func TestNavigate_GuardedWhenLoggedOut(t *testing.T) {
	app, _ := newTestApp(t, storage.NewMemory())

	app.Update(messages.NavigateMsg{Path: "/adr/new"})
	assert.Equal(t, auth.PathLogin, app.Route())
}

func TestLogoutFromLanding(t *testing.T) {
	app, store := newTestApp(t, loggedInStorage(t))
	require.Equal(t, ViewLanding, app.ActiveView())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("L")})
	require.NotNil(t, cmd)
	msg := cmd()

	assert.False(t, store.LoggedIn())
	app.Update(msg)
	assert.Equal(t, auth.PathLogin, app.Route())
	assert.Equal(t, ViewLogin, app.ActiveView())
}

func TestKeepalive_FollowsLogout(t *testing.T) {
	app, store := newTestApp(t, loggedInStorage(t))

	store.Logout(context.Background())
	app.Update(messages.KeepaliveMsg{LoggedIn: false})

	assert.Equal(t, auth.PathLogin, app.Route())
}

func TestKeepalive_Offline(t *testing.T) {
	app, _ := newTestApp(t, loggedInStorage(t))

	app.Update(messages.KeepaliveMsg{LoggedIn: true, Err: &api.Error{Kind: api.KindTransport, Detail: "cannot connect"}})
	assert.Contains(t, app.View(), "OFFLINE")

	app.Update(messages.KeepaliveMsg{LoggedIn: true})
	assert.NotContains(t, app.View(), "OFFLINE")
}

func TestQuit(t *testing.T) {
	app, _ := newTestApp(t, loggedInStorage(t))

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
