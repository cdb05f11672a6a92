package pg_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionguard/pkg/pg"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestConnect(t *testing.T) {
	_, err := pg.Connect(context.Background(), pg.Config{})
	require.ErrorIs(t, err, pg.ErrEmptyConnectionString)

	_, err = pg.Connect(context.Background(), pg.Config{ConnectionString: "postgres://%zz"})
	require.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
}

func TestHealthcheck(t *testing.T) {
	healthy := pg.Healthcheck(pingerFunc(func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	}))
	assert.NoError(t, healthy(context.Background()))

	down := errors.New("connection refused")
	err := pg.Healthcheck(pingerFunc(func(context.Context) error { return down }))(context.Background())
	assert.ErrorIs(t, err, pg.ErrHealthcheckFailed)
	assert.ErrorIs(t, err, down)
}

func TestMigrate(t *testing.T) {
	err := pg.Migrate(context.Background(), nil, nil, pg.Config{MigrationsPath: "migrations"}, nil)
	require.ErrorIs(t, err, pg.ErrMigrationPathNotProvided)
}
