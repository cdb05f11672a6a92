package fingerprint

import "net/http"

// Config holds fingerprint guard configuration
type Config struct {
	// FieldKey is the session field holding the fingerprint record
	FieldKey string `env:"FINGERPRINT_FIELD" envDefault:"fingerprint"`

	// Algorithm is the digest name: sha256, sha1 or blake2b-256
	Algorithm string `env:"FINGERPRINT_ALGORITHM" envDefault:"sha256"`
}

// DefaultConfig returns default fingerprint configuration
func DefaultConfig() Config {
	return Config{
		FieldKey:  DefaultFieldKey,
		Algorithm: string(SHA256),
	}
}

// Options converts the config into guard options.
func (c Config) Options() []Option {
	return []Option{
		WithFieldKey(c.FieldKey),
		WithAlgorithm(ParseAlgorithm(c.Algorithm)),
	}
}

// MiddlewareFromConfig creates the fingerprint middleware from the provided Config.
// Explicit opts are applied after the config values.
func MiddlewareFromConfig(cfg Config, mgr SessionManager, opts ...Option) func(http.Handler) http.Handler {
	return Middleware(mgr, append(cfg.Options(), opts...)...)
}
