package session

import (
	"errors"
	"net/http"
	"time"
)

// Transport carries the session ID between client and server.
// GetToken reports ErrSessionNotFound when the request has no usable token;
// a forged or unreadable token counts as no token.
type Transport interface {
	GetToken(r *http.Request) (string, error)
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error
	ClearToken(w http.ResponseWriter) error
}

var (
	_ Transport = (*CookieTransport)(nil)
	_ Transport = (*HeaderTransport)(nil)
	_ Transport = (*CompositeTransport)(nil)
)

// CompositeTransport lets browsers and API clients share handlers.
// The token is read from the first transport that has one and written
// through every transport.
type CompositeTransport struct {
	transports []Transport
}

// NewCompositeTransport combines transports in lookup order.
func NewCompositeTransport(transports ...Transport) *CompositeTransport {
	return &CompositeTransport{transports: transports}
}

func (c *CompositeTransport) GetToken(r *http.Request) (string, error) {
	for _, t := range c.transports {
		if token, err := t.GetToken(r); err == nil && token != "" {
			return token, nil
		}
	}
	return "", ErrSessionNotFound
}

func (c *CompositeTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	return c.each(func(t Transport) error { return t.SetToken(w, token, ttl) })
}

func (c *CompositeTransport) ClearToken(w http.ResponseWriter) error {
	return c.each(func(t Transport) error { return t.ClearToken(w) })
}

// each runs fn on every transport and joins the failures.
func (c *CompositeTransport) each(fn func(Transport) error) error {
	errs := make([]error, 0, len(c.transports))
	for _, t := range c.transports {
		errs = append(errs, fn(t))
	}
	return errors.Join(errs...)
}
