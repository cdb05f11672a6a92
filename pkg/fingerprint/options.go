package fingerprint

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/sessionguard/pkg/logger"
)

// DefaultFieldKey is the session field the fingerprint record lives under.
const DefaultFieldKey = "fingerprint"

// Option configures the Guard and the HTTP middleware.
type Option func(*options)

type options struct {
	fieldKey      string
	algorithm     Algorithm
	now           func() time.Time
	logger        *slog.Logger
	hijackHandler http.Handler
	errorHandler  func(w http.ResponseWriter, r *http.Request, err error)
}

func defaultOptions() *options {
	return &options{
		fieldKey:     DefaultFieldKey,
		algorithm:    SHA256,
		now:          time.Now,
		logger:       logger.Discard(),
		errorHandler: defaultErrorHandler,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithFieldKey sets the session field used to store the fingerprint record.
// Empty keys are ignored.
func WithFieldKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.fieldKey = key
		}
	}
}

// WithAlgorithm sets the digest. Unsupported values are ignored.
func WithAlgorithm(alg Algorithm) Option {
	return func(o *options) {
		if alg.Valid() {
			o.algorithm = alg
		}
	}
}

// WithClock overrides the wall clock used when seeding.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger. A nil logger keeps the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHijackHandler makes the middleware respond with h instead of calling
// the next handler when a hijack is detected.
func WithHijackHandler(h http.Handler) Option {
	return func(o *options) {
		o.hijackHandler = h
	}
}

// WithErrorHandler sets the middleware response for store failures.
func WithErrorHandler(fn func(w http.ResponseWriter, r *http.Request, err error)) Option {
	return func(o *options) {
		if fn != nil {
			o.errorHandler = fn
		}
	}
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, _ error) {
	http.Error(w, "Session error", http.StatusInternalServerError)
}
