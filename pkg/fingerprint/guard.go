package fingerprint

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/sessionguard/pkg/logger"
	"github.com/dmitrymomot/sessionguard/pkg/session"
)

// Store is the subset of session.Store the guard depends on.
type Store interface {
	GetField(ctx context.Context, sessionID, key string) ([]byte, error)
	SetField(ctx context.Context, sessionID, key string, value []byte) error
	RegenerateID(ctx context.Context, sessionID string) (string, error)
	Destroy(ctx context.Context, sessionID string) error
	StartNew(ctx context.Context) (string, error)
}

// Guard binds one request to the fingerprint stored in its session.
// The whole evaluation happens in New; a Guard is a read-only result
// afterwards.
type Guard struct {
	store     Store
	headers   Headers
	opts      *options
	sessionID string
	record    Record
	written   bool
	hijacked  bool
}

// New evaluates the fingerprint for sessionID.
//
// A session without a fingerprint is seeded. An existing fingerprint is
// recomputed from its stored timestamp and the current headers: on a match
// the record is rotated to the current time, on a mismatch the session is
// moved to a new ID, destroyed and replaced by an empty one.
//
// The returned error reports store failures only; a detected hijack is
// reported through IsHijacked.
func New(ctx context.Context, store Store, sessionID string, headers Headers, opts ...Option) (*Guard, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if sessionID == "" {
		return nil, ErrNoSession
	}

	g := &Guard{
		store:     store,
		headers:   headers,
		opts:      applyOptions(opts),
		sessionID: sessionID,
	}

	if err := g.evaluate(ctx); err != nil {
		return nil, err
	}

	return g, nil
}

// IsHijacked reports whether this evaluation detected a fingerprint mismatch.
func (g *Guard) IsHijacked() bool {
	return g != nil && g.hijacked
}

// SessionID returns the session ID that is current after evaluation.
func (g *Guard) SessionID() string {
	if g == nil {
		return ""
	}
	return g.sessionID
}

// Record returns the fingerprint record written during evaluation.
// It reports false after a hijack, when nothing is written.
func (g *Guard) Record() (Record, bool) {
	if g == nil || !g.written {
		return Record{}, false
	}
	return g.record, true
}

// Result summarises the evaluation for request-scoped consumers.
func (g *Guard) Result() Result {
	return Result{
		Hijacked:  g.IsHijacked(),
		SessionID: g.SessionID(),
	}
}

func (g *Guard) evaluate(ctx context.Context) error {
	stored, ok, err := g.load(ctx)
	if err != nil {
		return err
	}

	if !ok || stored.IsEmpty() {
		return g.seed(ctx, 0)
	}

	return g.verify(ctx, stored)
}

func (g *Guard) load(ctx context.Context) (Record, bool, error) {
	raw, err := g.store.GetField(ctx, g.sessionID, g.opts.fieldKey)
	if err != nil {
		if errors.Is(err, session.ErrFieldNotFound) {
			return Record{}, false, nil
		}
		return Record{}, false, errors.Join(ErrStoreFailure, err)
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		// Unreadable records are treated like absent ones and reseeded.
		g.opts.logger.WarnContext(ctx, "discarding unreadable fingerprint record",
			logger.Component("fingerprint"),
			logger.SessionID(g.sessionID),
			logger.Error(err),
		)
		return Record{}, false, nil
	}

	return rec, true, nil
}

// seed computes a fresh record for timestamp (0 means now) and stores it.
func (g *Guard) seed(ctx context.Context, timestamp int64) error {
	if timestamp == 0 {
		timestamp = g.opts.now().Unix()
	}

	rec := Record{
		Fingerprint: Compute(g.headers, timestamp, g.opts.algorithm),
		Timestamp:   timestamp,
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	if err := g.store.SetField(ctx, g.sessionID, g.opts.fieldKey, raw); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	g.record = rec
	g.written = true

	g.opts.logger.DebugContext(ctx, "fingerprint seeded",
		logger.Component("fingerprint"),
		logger.SessionID(g.sessionID),
		slog.Int64("timestamp", timestamp),
	)

	return nil
}

func (g *Guard) verify(ctx context.Context, stored Record) error {
	expected := Compute(g.headers, stored.Timestamp, g.opts.algorithm)

	if subtle.ConstantTimeCompare([]byte(expected), []byte(stored.Fingerprint)) == 1 {
		// Rotate to shrink the window in which a captured value stays usable.
		return g.seed(ctx, 0)
	}

	return g.reset(ctx)
}

// reset rotates the session ID, destroys the session and starts an empty one.
// The new session receives its fingerprint on the next request.
func (g *Guard) reset(ctx context.Context) error {
	previous := g.sessionID

	rotated, err := g.store.RegenerateID(ctx, previous)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	if err := g.store.Destroy(ctx, rotated); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	fresh, err := g.store.StartNew(ctx)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	g.sessionID = fresh
	g.hijacked = true

	g.opts.logger.WarnContext(ctx, "session hijack detected",
		logger.Component("fingerprint"),
		logger.Event("session.hijacked"),
		logger.SessionID(previous),
		slog.Group("replacement", logger.SessionID(fresh)),
	)

	return nil
}
