package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionguard/pkg/cookie"
)

const (
	secretA = "a-very-long-secret-key-for-tests-0001"
	secretB = "another-long-secret-key-for-tests-0002"
)

// roundTrip copies cookies written to rec into a new request.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a secret", func(t *testing.T) {
		_, err := cookie.New([]string{"", ""})
		require.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("rejects short secrets", func(t *testing.T) {
		_, err := cookie.New([]string{"short"})
		require.ErrorIs(t, err, cookie.ErrSecretTooShort)
	})
}

func TestPlain(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA}, cookie.WithPath("/app"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Set(rec, "theme", "dark", cookie.WithMaxAge(60)))

	c := rec.Result().Cookies()[0]
	assert.Equal(t, "/app", c.Path)
	assert.Equal(t, 60, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	value, err := m.Get(roundTrip(rec), "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", value)

	_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "theme")
	require.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestSigned(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(rec, "sid", "value|with|pipes"))

		value, err := m.GetSigned(roundTrip(rec), "sid")
		require.NoError(t, err)
		assert.Equal(t, "value|with|pipes", value)
	})

	t.Run("tampered value", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(rec, "sid", "alice"))
		raw := rec.Result().Cookies()[0].Value
		_, sig, _ := strings.Cut(raw, "|")

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "Ym9i|" + sig})

		_, err := m.GetSigned(req, "sid")
		require.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("malformed value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "no-separator"})

		_, err := m.GetSigned(req, "sid")
		require.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})
}

func TestEncrypted(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(rec, "sid", "secret-session-id"))
	assert.NotContains(t, rec.Result().Cookies()[0].Value, "secret-session-id")

	value, err := m.GetEncrypted(roundTrip(rec), "sid")
	require.NoError(t, err)
	assert.Equal(t, "secret-session-id", value)

	other, err := cookie.New([]string{secretB})
	require.NoError(t, err)
	_, err = other.GetEncrypted(roundTrip(rec), "sid")
	require.ErrorIs(t, err, cookie.ErrDecryptionFailed)
}

func TestSecretRotation(t *testing.T) {
	t.Parallel()

	old, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	rotated, err := cookie.New([]string{secretB, secretA})
	require.NoError(t, err)

	signed := httptest.NewRecorder()
	require.NoError(t, old.SetSigned(signed, "s", "v1"))
	encrypted := httptest.NewRecorder()
	require.NoError(t, old.SetEncrypted(encrypted, "e", "v2"))

	v, err := rotated.GetSigned(roundTrip(signed), "s")
	require.NoError(t, err)
	assert.Equal(t, "v1", v)

	v, err = rotated.GetEncrypted(roundTrip(encrypted), "e")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Delete(rec, "sid")

	c := rec.Result().Cookies()[0]
	assert.Equal(t, "sid", c.Name)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := cookie.DefaultConfig()
	cfg.Secrets = " " + secretB + " , " + secretA
	cfg.Secure = true

	m, err := cookie.NewFromConfig(cfg)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(rec, "s", "v"))
	assert.True(t, rec.Result().Cookies()[0].Secure)

	_, err = cookie.NewFromConfig(cookie.DefaultConfig())
	require.ErrorIs(t, err, cookie.ErrNoSecret)
}

func TestSetLimits(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	t.Run("value too long", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := m.Set(rec, "big", strings.Repeat("a", 5000))
		require.ErrorIs(t, err, cookie.ErrValueTooLong)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("max age sets expires", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, m.Set(rec, "short", "v", cookie.WithMaxAge(60)))

		c := rec.Result().Cookies()[0]
		assert.False(t, c.Expires.IsZero())
	})
}
