package session

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/sessionguard/pkg/cookie"
)

// CookieTransport keeps the session ID in a cookie written through a
// cookie.Manager. The ID is encrypted unless WithSignedCookie is used, in
// which case it is readable by the client but tamper-proof.
type CookieTransport struct {
	cookies *cookie.Manager
	name    string
	signed  bool
	attrs   []cookie.Option
}

// CookieOption configures a CookieTransport.
type CookieOption func(*CookieTransport)

// WithSignedCookie stores the session ID HMAC-signed instead of encrypted.
func WithSignedCookie() CookieOption {
	return func(t *CookieTransport) { t.signed = true }
}

// WithSecureCookie sets the Secure attribute on the session cookie.
func WithSecureCookie(secure bool) CookieOption {
	return func(t *CookieTransport) {
		if secure {
			t.attrs = append(t.attrs, cookie.WithSecure(true))
		}
	}
}

// WithCookieAttributes applies extra cookie options on every write.
// They take precedence over the transport defaults.
func WithCookieAttributes(opts ...cookie.Option) CookieOption {
	return func(t *CookieTransport) { t.attrs = append(t.attrs, opts...) }
}

// NewCookieTransport creates a cookie transport. The cookie is HttpOnly,
// SameSite=Lax and scoped to "/" unless overridden by WithCookieAttributes.
func NewCookieTransport(cookies *cookie.Manager, name string, opts ...CookieOption) *CookieTransport {
	t := &CookieTransport{cookies: cookies, name: name}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	read := t.cookies.GetEncrypted
	if t.signed {
		read = t.cookies.GetSigned
	}

	token, err := read(r, t.name)
	if err != nil || token == "" {
		return "", ErrSessionNotFound
	}
	return token, nil
}

// SetToken writes the cookie with a Max-Age matching ttl.
func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	opts := append([]cookie.Option{
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithMaxAge(int(ttl / time.Second)),
	}, t.attrs...)

	if t.signed {
		return t.cookies.SetSigned(w, t.name, token, opts...)
	}
	return t.cookies.SetEncrypted(w, t.name, token, opts...)
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	t.cookies.Delete(w, t.name)
	return nil
}
