// Package fingerprint detects session hijacking by binding a server-side
// session to a rotating fingerprint derived from request headers.
//
// On the first request of a session the guard seeds a Record: it splits the
// User-Agent header on spaces and the Accept header on commas, uses the
// current Unix time to pick one token from each, and hashes both tokens
// together with the timestamp. Only the digest and the timestamp are stored.
//
// On every later request the guard recomputes the digest from the stored
// timestamp and the current headers. A match means the same client context
// is still talking to us, and the record is immediately reseeded with the
// current time so a captured value goes stale after one request. A mismatch
// means the session token is being replayed from a different context: the
// session ID is rotated, the session is destroyed and an empty session is
// started. The guard reports the event through IsHijacked; it is a result,
// not an error.
//
// # Architecture
//
//	┌──────────┐ User-Agent, Accept ┌────────────┐ get/set field ┌───────┐
//	│ Request  │ ─────────────────► │   Guard    │ ────────────► │ Store │
//	└──────────┘                    └────────────┘  regenerate,  └───────┘
//	                                       │        destroy, start
//	                                       ▼
//	                                 Result{Hijacked, SessionID}
//
// The guard never touches global session state. Everything goes through the
// Store interface, which every session.Store implementation satisfies.
//
// # Usage
//
// Evaluating a session directly:
//
//	g, err := fingerprint.New(ctx, store, sessionID, fingerprint.HeadersFromRequest(r))
//	if err != nil {
//	    return err // store failure
//	}
//	if g.IsHijacked() {
//	    // g.SessionID() is the replacement session; force re-authentication
//	}
//
// As HTTP middleware on top of session.Manager:
//
//	r := chi.NewRouter()
//	r.Use(fingerprint.Middleware(manager, fingerprint.WithLogger(log)))
//	r.With(fingerprint.RequireIntact).Get("/account", accountHandler)
//
// # Concurrency
//
// The guard reads and then writes the fingerprint field, so concurrent
// requests for the same session must be serialized. Middleware holds
// SessionManager.Lock around the evaluation; callers using New directly are
// responsible for this themselves.
//
// # Digest
//
// SHA256 is the default. SHA1 reproduces fingerprints from legacy
// deployments and BLAKE2b256 is available through golang.org/x/crypto. The
// digest only mixes the inputs; it is not a defence against an attacker who
// can observe the request headers.
package fingerprint
