package session_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionguard/pkg/redis"
	"github.com/dmitrymomot/sessionguard/pkg/session"
)

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	client, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  url,
		RetryAttempts:  1,
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	newStore := func(t *testing.T) session.Store {
		prefix := "sessiontest:" + uuid.NewString() + ":"
		t.Cleanup(func() {
			ctx := context.Background()
			keys, _ := client.Keys(ctx, prefix+"*").Result()
			if len(keys) > 0 {
				_ = client.Del(ctx, keys...).Err()
			}
		})
		return session.NewRedisStore(client, session.WithRedisKeyPrefix(prefix), session.WithRedisTTL(time.Minute))
	}

	testStore(t, newStore)

	t.Run("ttl is applied and extended", func(t *testing.T) {
		ctx := context.Background()
		prefix := "sessiontest:" + uuid.NewString() + ":"
		store := session.NewRedisStore(client, session.WithRedisKeyPrefix(prefix), session.WithRedisTTL(time.Minute))

		id, err := store.StartNew(ctx)
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Destroy(context.Background(), id) })

		ttl, err := client.PTTL(ctx, prefix+id).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, 50*time.Second)

		require.NoError(t, client.PExpire(ctx, prefix+id, 10*time.Second).Err())
		require.NoError(t, store.SetField(ctx, id, "k", []byte("v")))

		ttl, err = client.PTTL(ctx, prefix+id).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, 50*time.Second)
	})

	t.Run("internal field is hidden", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		id, err := store.StartNew(ctx)
		require.NoError(t, err)

		_, err = store.GetField(ctx, id, "__created_at")
		assert.ErrorIs(t, err, session.ErrInvalidFieldKey)
	})
}
