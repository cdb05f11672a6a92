// Package session provides the server-side session layer the fingerprint
// guard runs on: pluggable stores that keep a session as an ID plus opaque
// byte fields, transports that carry the session ID between client and
// server, and a Manager that ties the two together.
//
// # Architecture
//
// A Manager resolves the session ID from the request through a Transport and
// checks it against a Store. Ensure starts a new session when the request has
// none. Lock serializes work on a single session inside the process, which
// read-then-write protocols such as fingerprint rotation depend on.
//
//	┌────────┐    ID     ┌────────────┐
//	│ Client │ ────────► │  Transport │ (cookie, header, composite)
//	└────────┘           └────────────┘
//	       ▲                   │
//	       │                   ▼
//	┌─────────────────────────────────┐
//	│            Manager              │
//	└─────────────────────────────────┘
//	       │   fields / regenerate / destroy
//	       ▼
//	┌────────┐
//	│ Store  │ (memory, redis, postgres, mongo)
//	└────────┘
//
// # Stores
//
//   - MemoryStore – process-local map, copy-on-read, sliding TTL
//   - RedisStore – one hash per session, native key expiry
//   - PostgresStore – sessions and session_fields tables, see Migrations
//   - MongoStore – one document per session with a TTL index
//
// Every write through SetField extends the session lifetime by the store TTL.
// RegenerateID moves all fields to a fresh ID and removes the old one.
//
// # Usage
//
//	cookieMgr, _ := cookie.New([]string{"secret-key-of-at-least-32-characters"})
//	manager := session.New(
//	    session.WithCookieManager(cookieMgr),
//	    session.WithStore(session.NewRedisStore(redisClient)),
//	)
//	defer manager.Close()
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    id, err := manager.Ensure(r.Context(), w, r)
//	    ...
//	    _ = manager.Store().SetField(r.Context(), id, "theme", []byte("dark"))
//	}
//
// # Configuration
//
// Config is populated from SESSION_* environment variables through the
// config package and passed to NewFromConfig.
//
// # Error Handling
//
//   - ErrSessionNotFound  – unknown or expired session
//   - ErrFieldNotFound    – live session without the requested field
//   - ErrInvalidSessionID – token that could not have been issued by a store
//   - ErrStore            – wraps backend failures returned by Manager
package session
