package fingerprint

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrymomot/sessionguard/pkg/logger"
	"github.com/dmitrymomot/sessionguard/pkg/session"
)

// SessionManager is what the middleware needs from the session layer.
// *session.Manager satisfies it.
type SessionManager interface {
	Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, error)
	SetToken(w http.ResponseWriter, sessionID string) error
	Store() session.Store
	Lock(sessionID string) (unlock func())
}

// Middleware evaluates the session fingerprint once per request.
//
// The evaluation runs while holding the manager's per-session lock. When the
// guard replaces a hijacked session, the new session token is sent to the
// client before the next handler runs. The Result is available downstream
// through ResultFromContext and IsHijacked.
func Middleware(mgr SessionManager, opts ...Option) func(http.Handler) http.Handler {
	o := applyOptions(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sessionID, guard, err := evaluate(ctx, mgr, w, r, opts)
			if err != nil {
				o.logger.ErrorContext(ctx, "fingerprint evaluation failed",
					logger.Component("fingerprint"),
					logger.SessionID(sessionID),
					logger.Error(err),
				)
				o.errorHandler(w, r, err)
				return
			}

			if guard.SessionID() != sessionID {
				if err := mgr.SetToken(w, guard.SessionID()); err != nil {
					o.logger.ErrorContext(ctx, "failed to send rotated session token",
						logger.Component("fingerprint"),
						logger.SessionID(guard.SessionID()),
						logger.Error(err),
					)
					o.errorHandler(w, r, err)
					return
				}
			}

			ctx = session.WithID(ctx, guard.SessionID())
			ctx = WithResult(ctx, guard.Result())
			r = r.WithContext(ctx)

			if guard.IsHijacked() && o.hijackHandler != nil {
				o.hijackHandler.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// evaluate ensures a session and runs the guard under the session lock.
// A session removed between Ensure and Lock, for instance by a concurrent
// hijack reset, is replaced once through Ensure instead of failing.
func evaluate(ctx context.Context, mgr SessionManager, w http.ResponseWriter, r *http.Request, opts []Option) (string, *Guard, error) {
	headers := HeadersFromRequest(r)

	for attempt := 0; ; attempt++ {
		sessionID, err := mgr.Ensure(ctx, w, r)
		if err != nil {
			return "", nil, err
		}

		unlock := mgr.Lock(sessionID)
		guard, err := New(ctx, mgr.Store(), sessionID, headers, opts...)
		unlock()

		if err != nil && attempt == 0 && errors.Is(err, session.ErrSessionNotFound) {
			continue
		}
		return sessionID, guard, err
	}
}

// RequireIntact rejects requests that were flagged as hijacked or that did
// not pass through Middleware.
func RequireIntact(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, ok := ResultFromContext(r.Context())
		if !ok || res.Hijacked {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
