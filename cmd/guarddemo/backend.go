package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/sessionguard/pkg/config"
	"github.com/dmitrymomot/sessionguard/pkg/httpserver"
	"github.com/dmitrymomot/sessionguard/pkg/logger"
	"github.com/dmitrymomot/sessionguard/pkg/mongo"
	"github.com/dmitrymomot/sessionguard/pkg/pg"
	"github.com/dmitrymomot/sessionguard/pkg/redis"
	"github.com/dmitrymomot/sessionguard/pkg/session"
)

// Session backends selectable through SESSION_BACKEND.
const (
	backendMemory   = "memory"
	backendRedis    = "redis"
	backendPostgres = "postgres"
	backendMongo    = "mongo"
)

var errUnknownBackend = errors.New("guarddemo.unknown_backend")

type backendConfig struct {
	Backend string `env:"SESSION_BACKEND" envDefault:"memory"`
}

// backend is an opened session store together with its readiness checks.
type backend struct {
	store  session.Store
	checks map[string]httpserver.Check
	close  func()
}

func openBackend(ctx context.Context, name string, sessCfg session.Config, log *slog.Logger) (*backend, error) {
	switch strings.ToLower(name) {
	case "", backendMemory:
		return &backend{
			store:  session.NewMemoryStore(sessCfg.TTL),
			checks: map[string]httpserver.Check{},
			close:  func() {},
		}, nil

	case backendRedis:
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			store: session.NewRedisStore(client,
				session.WithRedisKeyPrefix(cfg.KeyPrefix),
				session.WithRedisTTL(sessCfg.TTL),
			),
			checks: map[string]httpserver.Check{"redis": redis.Healthcheck(client)},
			close:  func() { _ = client.Close() },
		}, nil

	case backendPostgres:
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, pool, session.Migrations, cfg, log.With(logger.Component("migrations"))); err != nil {
			pool.Close()
			return nil, err
		}
		return &backend{
			store:  session.NewPostgresStore(pool, sessCfg.TTL),
			checks: map[string]httpserver.Check{"postgres": pg.Healthcheck(pool)},
			close:  pool.Close,
		}, nil

	case backendMongo:
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		db, err := mongo.NewWithDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store := session.NewMongoStore(db, session.WithMongoTTL(sessCfg.TTL))
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = db.Client().Disconnect(context.Background())
			return nil, err
		}
		return &backend{
			store:  store,
			checks: map[string]httpserver.Check{"mongo": mongo.Healthcheck(db.Client())},
			close:  func() { _ = db.Client().Disconnect(context.Background()) },
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", errUnknownBackend, name)
}
