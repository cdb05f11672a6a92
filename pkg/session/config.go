package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/sessionguard/pkg/cookie"
)

// Config holds session settings read from SESSION_* variables.
type Config struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// TTL is the idle lifetime; every field write extends it.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// CleanupInterval drives the expired-session sweep for stores that
	// implement ExpiredCleaner. Zero disables it.
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`

	// SignedCookies stores the ID signed instead of encrypted.
	SignedCookies bool `env:"SESSION_SIGNED_COOKIES" envDefault:"false"`
}

// DefaultConfig mirrors the envDefault values.
func DefaultConfig() Config {
	return Config{
		CookieName:      "sid",
		TTL:             24 * time.Hour,
		CleanupInterval: 5 * time.Minute,
	}
}

// NewFromConfig creates a Manager from cfg; opts are applied after it.
// Without WithTransport a cookie manager is required.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore sets the session store (default MemoryStore).
func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

// WithTransport replaces the default cookie transport.
func WithTransport(transport Transport) Option {
	return func(m *Manager) { m.transport = transport }
}

func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.config = cfg }
}

func WithCookieName(name string) Option {
	return func(m *Manager) { m.config.CookieName = name }
}

func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.config.TTL = ttl }
}

func WithCleanupInterval(interval time.Duration) Option {
	return func(m *Manager) { m.config.CleanupInterval = interval }
}

// WithCookieManager sets the cookie manager behind the default transport.
// opts are applied to every session cookie write.
func WithCookieManager(cookies *cookie.Manager, opts ...cookie.Option) Option {
	return func(m *Manager) {
		m.cookieManager = cookies
		m.cookieOptions = opts
	}
}

// WithLogger sets the logger for background work such as the cleanup sweep.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}
