package logger_test

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionguard/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestSessionID(t *testing.T) {
	t.Run("logs digest prefix", func(t *testing.T) {
		id := "c2Vzc2lvbi1pZGVudGlmaWVyLWZvci10ZXN0aW5nLW9ubHk"
		sum := sha256.Sum256([]byte(id))

		attr := logger.SessionID(id)
		require.Equal(t, "session_id", attr.Key)
		assert.Equal(t, hex.EncodeToString(sum[:])[:12], attr.Value.String())
		assert.NotContains(t, attr.Value.String(), id[:12])
	})

	t.Run("empty id", func(t *testing.T) {
		assert.True(t, logger.SessionID("").Equal(slog.Attr{}))
	})
}

func TestScalarAttrs(t *testing.T) {
	assert.Equal(t, "abc", logger.RequestID("abc").Value.String())
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.Equal(t, "10.0.0.1", logger.ClientIP("10.0.0.1").Value.String())
	assert.Equal(t, "fingerprint", logger.Component("fingerprint").Value.String())
	assert.Equal(t, "session.hijacked", logger.Event("session.hijacked").Value.String())
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())
}
