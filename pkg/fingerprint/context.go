package fingerprint

import "context"

// Result is the per-request outcome of a fingerprint evaluation.
type Result struct {
	// Hijacked is true only for the request that detected the mismatch.
	Hijacked bool
	// SessionID is the session ID that is current after evaluation.
	SessionID string
}

// Err returns ErrHijacked for a hijacked request and nil otherwise.
func (r Result) Err() error {
	if r.Hijacked {
		return ErrHijacked
	}
	return nil
}

type resultContextKey struct{}

// WithResult stores the evaluation result in the context.
func WithResult(ctx context.Context, res Result) context.Context {
	return context.WithValue(ctx, resultContextKey{}, res)
}

// ResultFromContext retrieves the evaluation result from the context.
func ResultFromContext(ctx context.Context) (Result, bool) {
	res, ok := ctx.Value(resultContextKey{}).(Result)
	return res, ok
}

// IsHijacked reports whether the request in ctx was flagged as hijacked.
func IsHijacked(ctx context.Context) bool {
	res, _ := ResultFromContext(ctx)
	return res.Hijacked
}
