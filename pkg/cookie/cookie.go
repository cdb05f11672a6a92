package cookie

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
)

const (
	minSecretLength = 32

	// maxCookieSize is the smallest per-cookie limit among major browsers,
	// counted over name, value and attributes.
	maxCookieSize = 4096
)

// Manager reads and writes cookies with shared default attributes.
// The first secret protects new values. All secrets are tried on read, so a
// new secret can be prepended without invalidating cookies already issued.
type Manager struct {
	secrets  []string
	defaults attributes
}

// New creates a cookie manager. Empty secrets are skipped; the rest must be
// at least 32 characters long.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret #%d is %d chars, want >= %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
	}

	return &Manager{
		secrets:  secrets,
		defaults: defaultAttributes().with(opts),
	}, nil
}

// Set writes value as is. Per-call opts override the manager defaults.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	c := m.defaults.with(opts).cookie(name, value)
	if len(c.String()) > maxCookieSize {
		return fmt.Errorf("%w: %q", ErrValueTooLong, name)
	}
	http.SetCookie(w, c)
	return nil
}

// Get returns the raw value of the named cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	switch {
	case errors.Is(err, http.ErrNoCookie):
		return "", ErrCookieNotFound
	case err != nil:
		return "", err
	}
	return c.Value, nil
}

// Delete tells the client to drop the cookie. Path and domain come from the
// manager defaults and must match the ones used on Set.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.defaults.with([]Option{WithMaxAge(-1)}).cookie(name, ""))
}
