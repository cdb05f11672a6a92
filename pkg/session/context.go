package session

import "context"

type sessionIDContextKey struct{}

// WithID adds the current session ID to the context
func WithID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDContextKey{}, sessionID)
}

// IDFromContext retrieves the current session ID from the context
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDContextKey{}).(string)
	return id, ok && id != ""
}
