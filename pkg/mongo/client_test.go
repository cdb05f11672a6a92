package mongo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionguard/pkg/mongo"
)

func TestNew(t *testing.T) {
	t.Run("empty url", func(t *testing.T) {
		_, err := mongo.New(context.Background(), mongo.Config{})
		require.ErrorIs(t, err, mongo.ErrEmptyURL)
	})

	t.Run("live server", func(t *testing.T) {
		url := os.Getenv("MONGODB_URL")
		if url == "" {
			t.Skip("MONGODB_URL not set")
		}

		db, err := mongo.NewWithDatabase(context.Background(), mongo.Config{
			ConnectionURL:  url,
			Database:       "sessionguard_test",
			ConnectTimeout: 5 * time.Second,
			MaxPoolSize:    2,
			RetryAttempts:  1,
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Client().Disconnect(context.Background()) })

		assert.Equal(t, "sessionguard_test", db.Name())
		assert.NoError(t, mongo.Healthcheck(db.Client())(context.Background()))
	})
}
