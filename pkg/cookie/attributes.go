package cookie

import (
	"net/http"
	"time"
)

// attributes are written alongside every cookie value.
type attributes struct {
	path     string
	domain   string
	maxAge   int
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// Option overrides one cookie attribute, either as a Manager default or for
// a single write.
type Option func(*attributes)

// WithPath sets the Path attribute (default "/").
func WithPath(path string) Option {
	return func(a *attributes) { a.path = path }
}

func WithDomain(domain string) Option {
	return func(a *attributes) { a.domain = domain }
}

// WithMaxAge sets the lifetime in seconds. Zero makes a browser-session
// cookie, a negative value deletes the cookie.
func WithMaxAge(seconds int) Option {
	return func(a *attributes) { a.maxAge = seconds }
}

func WithSecure(secure bool) Option {
	return func(a *attributes) { a.secure = secure }
}

// WithHTTPOnly hides the cookie from scripts (default true).
func WithHTTPOnly(httpOnly bool) Option {
	return func(a *attributes) { a.httpOnly = httpOnly }
}

// WithSameSite sets the SameSite attribute (default Lax).
func WithSameSite(sameSite http.SameSite) Option {
	return func(a *attributes) { a.sameSite = sameSite }
}

func defaultAttributes() attributes {
	return attributes{
		path:     "/",
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
}

// with returns a copy of a with opts applied.
func (a attributes) with(opts []Option) attributes {
	for _, opt := range opts {
		if opt != nil {
			opt(&a)
		}
	}
	return a
}

func (a attributes) cookie(name, value string) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     a.path,
		Domain:   a.domain,
		MaxAge:   a.maxAge,
		Secure:   a.secure,
		HttpOnly: a.httpOnly,
		SameSite: a.sameSite,
	}
	switch {
	case a.maxAge > 0:
		c.Expires = time.Now().Add(time.Duration(a.maxAge) * time.Second)
	case a.maxAge < 0:
		c.Expires = time.Unix(0, 0)
	}
	return c
}
