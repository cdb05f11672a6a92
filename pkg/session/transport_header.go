package session

import (
	"net/http"
	"strings"
	"time"
)

// DefaultHeaderName is used by NewHeaderTransport when name is empty.
const DefaultHeaderName = "X-Session-ID"

// HeaderTransport carries the session ID in a request header for clients
// that do not keep cookies. Responses echo the ID in the same header and
// its expiry, RFC 3339 formatted, in "<name>-Expires".
type HeaderTransport struct {
	name   string
	prefix string
}

// HeaderOption configures a HeaderTransport.
type HeaderOption func(*HeaderTransport)

// WithHeaderPrefix sets the scheme written before the ID (default "Bearer ").
// An empty prefix sends the bare ID.
func WithHeaderPrefix(prefix string) HeaderOption {
	return func(t *HeaderTransport) { t.prefix = prefix }
}

func NewHeaderTransport(name string, opts ...HeaderOption) *HeaderTransport {
	if name == "" {
		name = DefaultHeaderName
	}
	t := &HeaderTransport{name: name, prefix: "Bearer "}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// GetToken accepts the ID with or without the prefix; the prefix match
// ignores case.
func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	value := cutScheme(strings.TrimSpace(r.Header.Get(t.name)), strings.TrimSpace(t.prefix))
	if value == "" {
		return "", ErrSessionNotFound
	}
	return value, nil
}

func (t *HeaderTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	h := w.Header()
	h.Set(t.name, t.prefix+token)
	if ttl > 0 {
		h.Set(t.expiresHeader(), time.Now().Add(ttl).UTC().Format(time.RFC3339))
	}
	return nil
}

func (t *HeaderTransport) ClearToken(w http.ResponseWriter) error {
	w.Header().Del(t.name)
	w.Header().Del(t.expiresHeader())
	return nil
}

func (t *HeaderTransport) expiresHeader() string {
	return t.name + "-Expires"
}

// cutScheme strips a leading auth scheme followed by a space or nothing.
func cutScheme(value, scheme string) string {
	n := len(scheme)
	if n == 0 || len(value) < n || !strings.EqualFold(value[:n], scheme) {
		return value
	}
	if len(value) > n && value[n] != ' ' {
		return value
	}
	return strings.TrimSpace(value[n:])
}
