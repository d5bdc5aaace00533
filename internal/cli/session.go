package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kraigochieng/4th-year-project/internal/api"
	"github.com/kraigochieng/4th-year-project/internal/auth"
	"github.com/kraigochieng/4th-year-project/internal/config"
	"github.com/kraigochieng/4th-year-project/internal/logger"
	"github.com/kraigochieng/4th-year-project/internal/router"
	"github.com/kraigochieng/4th-year-project/internal/storage"
)

// session bundles everything one command needs.
type session struct {
	cfg    *config.Config
	client *api.Client
	store  *auth.Store
	router *router.Router
	close  func() error
}

func openSession(ctx context.Context, cfg *config.Config) (*session, error) {
	st, closeFn, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	store, err := auth.NewStore(ctx, client, st, auth.WithRefreshSkew(cfg.Session.RefreshSkew))
	if err != nil {
		closeFn()
		return nil, err
	}
	rt := router.New(auth.NewGuard(store))
	store.SetNavigator(rt)

	logger.Debug("session opened",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("api", client.BaseURL()),
		zap.Stringer("state", store.State()),
	)

	return &session{
		cfg:    cfg,
		client: client,
		store:  store,
		router: rt,
		close:  closeFn,
	}, nil
}

func (s *session) Close() {
	if err := s.close(); err != nil {
		logger.Warn("closing storage", zap.Error(err))
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return storage.NewMemory(), noop, nil
	case config.BackendSQLite:
		db, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening token database: %w", err)
		}
		return db, db.Close, nil
	case config.BackendRedis:
		r, err := storage.OpenRedis(ctx, storage.RedisOptions{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			DB:       cfg.Storage.RedisDB,
			Prefix:   cfg.Storage.RedisPrefix,
			Timeout:  cfg.API.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	default:
		jar, err := storage.OpenCookieFile(cfg.CookiePath, cfg.API.BaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("opening cookie file: %w", err)
		}
		return jar, noop, nil
	}
}
