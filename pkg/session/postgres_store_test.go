package session_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionguard/pkg/logger"
	"github.com/dmitrymomot/sessionguard/pkg/pg"
	"github.com/dmitrymomot/sessionguard/pkg/session"
)

func TestPostgresStore(t *testing.T) {
	connURL := os.Getenv("PG_CONN_URL")
	if connURL == "" {
		t.Skip("PG_CONN_URL not set")
	}
	ctx := context.Background()

	cfg := pg.Config{
		ConnectionString: connURL,
		MaxOpenConns:     4,
		RetryAttempts:    1,
		MigrationsPath:   session.MigrationsDir,
		MigrationsTable:  "sessionguard_test_migrations",
	}

	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pg.Migrate(ctx, pool, session.Migrations, cfg, logger.Discard()))

	testStore(t, func(t *testing.T) session.Store {
		return session.NewPostgresStore(pool, time.Minute)
	})

	t.Run("delete expired", func(t *testing.T) {
		store := session.NewPostgresStore(pool, time.Millisecond)
		id, err := store.StartNew(ctx)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
		require.NoError(t, store.DeleteExpired(ctx))

		var n int
		require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM sessions WHERE id = $1`, id).Scan(&n))
		assert.Zero(t, n)
	})

	t.Run("fields cascade on destroy", func(t *testing.T) {
		store := session.NewPostgresStore(pool, time.Minute)
		id, err := store.StartNew(ctx)
		require.NoError(t, err)
		require.NoError(t, store.SetField(ctx, id, "k", []byte("v")))
		require.NoError(t, store.Destroy(ctx, id))

		var n int
		require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM session_fields WHERE session_id = $1`, id).Scan(&n))
		assert.Zero(t, n)
	})
}
