package session_test

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionguard/pkg/session"
)

// testStore runs the behaviour every Store implementation shares.
func testStore(t *testing.T, newStore func(t *testing.T) session.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("start new", func(t *testing.T) {
		store := newStore(t)

		a, err := store.StartNew(ctx)
		require.NoError(t, err)
		b, err := store.StartNew(ctx)
		require.NoError(t, err)

		assert.Len(t, a, 43)
		assert.NotEqual(t, a, b)

		exists, err := store.Exists(ctx, a)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("unknown session", func(t *testing.T) {
		store := newStore(t)
		const unknown = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

		exists, err := store.Exists(ctx, unknown)
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = store.GetField(ctx, unknown, "k")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
		assert.ErrorIs(t, store.SetField(ctx, unknown, "k", []byte("v")), session.ErrSessionNotFound)
		assert.ErrorIs(t, store.DeleteField(ctx, unknown, "k"), session.ErrSessionNotFound)

		_, err = store.RegenerateID(ctx, unknown)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)

		assert.NoError(t, store.Destroy(ctx, unknown))
	})

	t.Run("fields", func(t *testing.T) {
		store := newStore(t)
		id, err := store.StartNew(ctx)
		require.NoError(t, err)

		_, err = store.GetField(ctx, id, "fingerprint")
		assert.ErrorIs(t, err, session.ErrFieldNotFound)

		require.NoError(t, store.SetField(ctx, id, "fingerprint", []byte(`{"timestamp":1}`)))
		v, err := store.GetField(ctx, id, "fingerprint")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"timestamp":1}`), v)

		require.NoError(t, store.SetField(ctx, id, "fingerprint", []byte(`{"timestamp":2}`)))
		v, err = store.GetField(ctx, id, "fingerprint")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"timestamp":2}`), v)

		require.NoError(t, store.SetField(ctx, id, "empty", []byte{}))
		v, err = store.GetField(ctx, id, "empty")
		require.NoError(t, err)
		assert.Empty(t, v)

		require.NoError(t, store.DeleteField(ctx, id, "fingerprint"))
		_, err = store.GetField(ctx, id, "fingerprint")
		assert.ErrorIs(t, err, session.ErrFieldNotFound)

		assert.ErrorIs(t, store.SetField(ctx, id, "", []byte("v")), session.ErrInvalidFieldKey)
	})

	t.Run("regenerate id", func(t *testing.T) {
		store := newStore(t)
		id, err := store.StartNew(ctx)
		require.NoError(t, err)
		require.NoError(t, store.SetField(ctx, id, "user", []byte("42")))

		newID, err := store.RegenerateID(ctx, id)
		require.NoError(t, err)
		assert.NotEqual(t, id, newID)

		exists, err := store.Exists(ctx, id)
		require.NoError(t, err)
		assert.False(t, exists)

		v, err := store.GetField(ctx, newID, "user")
		require.NoError(t, err)
		assert.Equal(t, []byte("42"), v)
	})

	t.Run("destroy", func(t *testing.T) {
		store := newStore(t)
		id, err := store.StartNew(ctx)
		require.NoError(t, err)
		require.NoError(t, store.SetField(ctx, id, "user", []byte("42")))

		require.NoError(t, store.Destroy(ctx, id))
		require.NoError(t, store.Destroy(ctx, id))

		exists, err := store.Exists(ctx, id)
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = store.GetField(ctx, id, "user")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("concurrent access to one session", func(t *testing.T) {
		store := newStore(t)
		id, err := store.StartNew(ctx)
		require.NoError(t, err)
		require.NoError(t, store.SetField(ctx, id, "fingerprint", []byte("0")))

		const (
			workers    = 4
			iterations = 500
		)

		var wg sync.WaitGroup
		for w := range workers {
			wg.Add(3)
			go func() {
				defer wg.Done()
				for i := range iterations {
					if err := store.SetField(ctx, id, "fingerprint", []byte(strconv.Itoa(w*iterations+i))); err != nil {
						assert.NoError(t, err)
						return
					}
				}
			}()
			go func() {
				defer wg.Done()
				for range iterations {
					if _, err := store.GetField(ctx, id, "fingerprint"); err != nil {
						assert.NoError(t, err)
						return
					}
				}
			}()
			go func() {
				defer wg.Done()
				for range iterations {
					exists, err := store.Exists(ctx, id)
					if err != nil || !exists {
						assert.NoError(t, err)
						assert.True(t, exists)
						return
					}
				}
			}()
		}
		wg.Wait()

		v, err := store.GetField(ctx, id, "fingerprint")
		require.NoError(t, err)
		assert.NotEmpty(t, v)
	})
}
