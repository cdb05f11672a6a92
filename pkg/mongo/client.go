package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

var (
	ErrEmptyURL      = errors.New("mongo.empty_url")
	ErrConnectFailed = errors.New("mongo.connect_failed")
	ErrUnhealthy     = errors.New("mongo.unhealthy")
)

// probeTimeout bounds a single Healthcheck ping.
const probeTimeout = 2 * time.Second

// New connects to MongoDB and pings the primary, retrying up to
// cfg.RetryAttempts times.
func New(ctx context.Context, cfg Config) (*mongo.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyURL
	}

	opts := options.Client().
		ApplyURI(cfg.ConnectionURL).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetRetryWrites(cfg.RetryWrites).
		SetRetryReads(cfg.RetryReads)

	var err error
	for attempt := range max(cfg.RetryAttempts, 1) {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, errors.Join(ErrConnectFailed, ctx.Err())
			case <-time.After(cfg.RetryInterval):
			}
		}

		var client *mongo.Client
		if client, err = mongo.Connect(opts); err != nil {
			continue
		}
		if err = client.Ping(ctx, readpref.Primary()); err == nil {
			return client, nil
		}
		_ = client.Disconnect(context.WithoutCancel(ctx))
	}

	return nil, errors.Join(ErrConnectFailed, err)
}

// NewWithDatabase connects and returns the database named by cfg.Database.
func NewWithDatabase(ctx context.Context, cfg Config) (*mongo.Database, error) {
	client, err := New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return client.Database(cfg.Database), nil
}

// Healthcheck returns a readiness probe that pings the primary.
func Healthcheck(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()

		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return errors.Join(ErrUnhealthy, err)
		}
		return nil
	}
}
