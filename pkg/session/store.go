package session

import "context"

// Store defines the interface for session persistence.
//
// A session is an ID plus a set of opaque byte fields. Implementations must
// return ErrSessionNotFound for unknown or expired sessions and
// ErrFieldNotFound for missing fields of a live session.
type Store interface {
	// StartNew creates an empty session and returns its ID
	StartNew(ctx context.Context) (string, error)

	// Exists reports whether a live session exists
	Exists(ctx context.Context, sessionID string) (bool, error)

	// GetField returns a single field of the session
	GetField(ctx context.Context, sessionID, key string) ([]byte, error)

	// SetField stores a single field and extends the session lifetime
	SetField(ctx context.Context, sessionID, key string, value []byte) error

	// DeleteField removes a single field
	DeleteField(ctx context.Context, sessionID, key string) error

	// RegenerateID moves the session and its fields to a new ID
	RegenerateID(ctx context.Context, sessionID string) (string, error)

	// Destroy removes the session and all its fields
	Destroy(ctx context.Context, sessionID string) error
}

// ExpiredCleaner is an optional interface for stores that need periodic
// removal of expired sessions. Manager runs it on CleanupInterval.
type ExpiredCleaner interface {
	DeleteExpired(ctx context.Context) error
}
