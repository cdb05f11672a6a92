package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionguard/pkg/session"
)

func TestSession(t *testing.T) {
	t.Parallel()

	s := session.NewSession("id", time.Hour)
	assert.False(t, s.IsExpired())

	s.SetField("k", []byte("v"))
	v, ok := s.Field("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	c := s.Clone()
	c.SetField("k", []byte("changed"))
	v, _ = s.Field("k")
	assert.Equal(t, []byte("v"), v)

	s.DeleteField("k")
	_, ok = s.Field("k")
	assert.False(t, ok)

	expired := session.NewSession("old", -time.Second)
	assert.True(t, expired.IsExpired())
	expired.Touch(time.Hour)
	assert.False(t, expired.IsExpired())
}

func TestContextID(t *testing.T) {
	t.Parallel()

	_, ok := session.IDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = session.IDFromContext(session.WithID(context.Background(), ""))
	assert.False(t, ok)

	id, ok := session.IDFromContext(session.WithID(context.Background(), "abc"))
	require.True(t, ok)
	assert.Equal(t, "abc", id)
}
