// Package auth owns the client-side session: the token pair, the current
// user, and the route guard that reads them.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kraigochieng/4th-year-project/internal/api"
	"github.com/kraigochieng/4th-year-project/internal/logger"
	"github.com/kraigochieng/4th-year-project/internal/storage"
)

// Destinations the store navigates to.
const (
	PathLogin  = "/auth/login"
	PathSignup = "/auth/signup"
	PathHome   = "/adr"
)

const defaultRefreshSkew = 30 * time.Second

// ErrNotLoggedIn is returned by operations that need a token when there is
// none.
var ErrNotLoggedIn = errors.New("not logged in")

// State is the login state of a Store.
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged_in"
	}
	return "logged_out"
}

// Gateway is the subset of the API client the store needs.
type Gateway interface {
	RequestToken(ctx context.Context, creds api.Credentials) api.Result[api.TokenPair]
	RefreshToken(ctx context.Context, refreshToken string) api.Result[api.AccessToken]
	Signup(ctx context.Context, user api.SignupRequest) api.Result[json.RawMessage]
	GetCurrentUser(ctx context.Context, accessToken string) api.Result[*api.User]
}

// Navigator moves the presentation layer to another destination.
type Navigator interface {
	NavigateTo(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) NavigateTo(path string) { f(path) }

// Store is the single source of truth for whether the user is logged in.
// Tokens are written through to storage on every change, and the store is
// rehydrated from storage when it is created.
type Store struct {
	gateway     Gateway
	storage     storage.Storage
	refreshSkew time.Duration
	now         func() time.Time

	mu           sync.RWMutex
	nav          Navigator
	accessToken  string
	refreshToken string
	tokenType    string
	user         *api.User

	refreshGroup singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithNavigator sets the navigator used after login and logout.
func WithNavigator(nav Navigator) Option {
	return func(s *Store) { s.nav = nav }
}

// WithRefreshSkew sets how long before expiry EnsureFresh refreshes.
func WithRefreshSkew(d time.Duration) Option {
	return func(s *Store) { s.refreshSkew = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store and rehydrates it from st.
func NewStore(ctx context.Context, gw Gateway, st storage.Storage, opts ...Option) (*Store, error) {
	s := &Store{
		gateway:     gw,
		storage:     st,
		refreshSkew: defaultRefreshSkew,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.rehydrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// SetNavigator sets the navigator after construction. The router needs the
// store for its guard, so the two are usually wired in this order.
func (s *Store) SetNavigator(nav Navigator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav = nav
}

func (s *Store) rehydrate(ctx context.Context) error {
	access, err := s.storage.Get(ctx, storage.KeyAccessToken)
	if err != nil {
		return fmt.Errorf("loading access token: %w", err)
	}
	refresh, err := s.storage.Get(ctx, storage.KeyRefreshToken)
	if err != nil {
		return fmt.Errorf("loading refresh token: %w", err)
	}

	if (access == "") != (refresh == "") {
		logger.Warn("stored session has only one token, clearing it",
			zap.Bool("has_access", access != ""),
			zap.Bool("has_refresh", refresh != ""),
		)
		s.clearTokens(ctx)
		return nil
	}

	s.mu.Lock()
	s.accessToken = access
	s.refreshToken = refresh
	if access != "" {
		s.tokenType = "bearer"
	}
	s.mu.Unlock()
	return nil
}

// Login exchanges credentials for a token pair. On success both tokens are
// stored and the navigator is sent to the landing page. On failure both
// tokens are cleared and the API error is returned; the caller stays where
// it is.
func (s *Store) Login(ctx context.Context, creds api.Credentials) error {
	res := s.gateway.RequestToken(ctx, creds)
	if !res.IsOk() {
		s.clearTokens(ctx)
		logger.Info("login failed",
			zap.String("username", creds.Username),
			zap.Stringer("kind", res.Err().Kind),
			zap.Int("status", res.Err().Status),
		)
		return res.Err()
	}

	pair := res.Value()
	s.mu.Lock()
	s.accessToken = pair.AccessToken
	s.refreshToken = pair.RefreshToken
	s.tokenType = pair.TokenType
	s.user = nil
	s.mu.Unlock()

	// Refresh token first: an interrupted write never leaves an access
	// token without its refresh token.
	s.persist(ctx, storage.KeyRefreshToken, pair.RefreshToken)
	s.persist(ctx, storage.KeyAccessToken, pair.AccessToken)

	logger.Info("login succeeded", zap.String("username", creds.Username))
	s.navigate(PathHome)
	return nil
}

// Logout clears both tokens and the user, then sends the navigator to the
// login page. It never fails and is safe to call when already logged out.
func (s *Store) Logout(ctx context.Context) {
	s.clearTokens(ctx)
	logger.Info("logged out")
	s.navigate(PathLogin)
}

// Refresh replaces the access token using the refresh token. Concurrent
// calls share one request. If the server rejects the refresh token the
// session is logged out; a transport failure leaves the session as is.
func (s *Store) Refresh(ctx context.Context) error {
	_, err, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		return nil, s.refresh(ctx)
	})
	return err
}

func (s *Store) refresh(ctx context.Context) error {
	refreshToken := s.RefreshToken()
	if refreshToken == "" {
		return ErrNotLoggedIn
	}

	res := s.gateway.RefreshToken(ctx, refreshToken)
	if !res.IsOk() {
		apiErr := res.Err()
		switch {
		case apiErr.Kind == api.KindRejected && s.RefreshToken() != refreshToken:
			// Logged out or logged in again while the request was in flight.
			logger.Debug("ignoring rejection of a replaced refresh token")
		case apiErr.Kind == api.KindRejected:
			logger.Info("refresh token rejected, logging out", zap.String("detail", apiErr.Detail))
			s.Logout(ctx)
		default:
			logger.Warn("refresh failed", zap.Error(apiErr))
		}
		return apiErr
	}

	tok := res.Value()
	s.mu.Lock()
	if s.refreshToken != refreshToken {
		// Logged out or logged in again while the request was in flight.
		s.mu.Unlock()
		return nil
	}
	s.accessToken = tok.AccessToken
	if tok.TokenType != "" {
		s.tokenType = tok.TokenType
	}
	s.mu.Unlock()

	s.persist(ctx, storage.KeyAccessToken, tok.AccessToken)
	logger.Debug("access token refreshed")
	return nil
}

// EnsureFresh refreshes the access token when it is a JWT that expires
// within the refresh skew. Opaque tokens are left alone.
func (s *Store) EnsureFresh(ctx context.Context) error {
	token := s.AccessToken()
	if token == "" {
		return ErrNotLoggedIn
	}
	exp, ok := TokenExpiry(token)
	if !ok || s.now().Add(s.refreshSkew).Before(exp) {
		return nil
	}
	return s.Refresh(ctx)
}

// FetchUser loads the current user with the access token. A failure leaves
// the stored user untouched and does not log out.
func (s *Store) FetchUser(ctx context.Context) (*api.User, error) {
	token := s.AccessToken()
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	res := s.gateway.GetCurrentUser(ctx, token)
	if !res.IsOk() {
		return nil, res.Err()
	}

	user := res.Value()
	s.mu.Lock()
	if s.accessToken == token {
		s.user = user
	}
	s.mu.Unlock()
	return user, nil
}

// Signup registers a new account. The session is not changed.
func (s *Store) Signup(ctx context.Context, req api.SignupRequest) (json.RawMessage, error) {
	return s.gateway.Signup(ctx, req).Unwrap()
}

// AccessToken returns the current access token, or "".
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token, or "".
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// TokenType returns the token type reported at login, e.g. "bearer".
func (s *Store) TokenType() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokenType
}

// User returns the last fetched user, or nil.
func (s *Store) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// State reports whether both tokens are present.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.accessToken != "" && s.refreshToken != "" {
		return LoggedIn
	}
	return LoggedOut
}

// LoggedIn is shorthand for State() == LoggedIn.
func (s *Store) LoggedIn() bool {
	return s.State() == LoggedIn
}

// clearTokens blanks both tokens and the user in memory and in storage.
// The access token goes first so the guard never sees it without a
// refresh token.
func (s *Store) clearTokens(ctx context.Context) {
	s.mu.Lock()
	s.accessToken = ""
	s.refreshToken = ""
	s.tokenType = ""
	s.user = nil
	s.mu.Unlock()

	s.clear(ctx, storage.KeyAccessToken)
	s.clear(ctx, storage.KeyRefreshToken)
}

func (s *Store) persist(ctx context.Context, key, value string) {
	if err := s.storage.Set(ctx, key, value); err != nil {
		logger.Error("persisting token", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) clear(ctx context.Context, key string) {
	if err := s.storage.Clear(ctx, key); err != nil {
		logger.Error("clearing token", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) navigate(path string) {
	s.mu.RLock()
	nav := s.nav
	s.mu.RUnlock()
	if nav != nil {
		nav.NavigateTo(path)
	}
}
