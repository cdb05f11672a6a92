package session

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/sessionguard/pkg/pg"
)

// PgxPool is the subset of *pgxpool.Pool used by PostgresStore
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

const (
	pgInsertSession = `INSERT INTO sessions (id, expires_at) VALUES ($1, $2)`

	pgSessionExists = `SELECT EXISTS (SELECT 1 FROM sessions WHERE id = $1 AND expires_at > now())`

	pgGetField = `
SELECT f.value, f.key IS NOT NULL
FROM sessions s
LEFT JOIN session_fields f ON f.session_id = s.id AND f.key = $2
WHERE s.id = $1 AND s.expires_at > now()`

	pgTouchSession = `UPDATE sessions SET expires_at = $2 WHERE id = $1 AND expires_at > now()`

	pgUpsertField = `
INSERT INTO session_fields (session_id, key, value) VALUES ($1, $2, $3)
ON CONFLICT (session_id, key) DO UPDATE SET value = EXCLUDED.value`

	pgDeleteField = `DELETE FROM session_fields WHERE session_id = $1 AND key = $2`

	pgRenameSession = `UPDATE sessions SET id = $2 WHERE id = $1 AND expires_at > now()`

	pgDeleteSession = `DELETE FROM sessions WHERE id = $1`

	pgDeleteExpired = `DELETE FROM sessions WHERE expires_at <= now()`
)

// PostgresStore implements Store on top of the sessions and session_fields
// tables created by Migrations. Fields follow their session on rename and
// delete through the foreign key cascade.
type PostgresStore struct {
	pool PgxPool
	ttl  time.Duration
}

// NewPostgresStore creates a Postgres backed session store
func NewPostgresStore(pool PgxPool, ttl time.Duration) *PostgresStore {
	if ttl <= 0 {
		ttl = DefaultConfig().TTL
	}
	return &PostgresStore{pool: pool, ttl: ttl}
}

// StartNew creates an empty session
func (s *PostgresStore) StartNew(ctx context.Context) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", err
	}

	if _, err := s.pool.Exec(ctx, pgInsertSession, id, time.Now().Add(s.ttl)); err != nil {
		return "", errors.Join(ErrStore, err)
	}

	return id, nil
}

// Exists reports whether a live session exists
func (s *PostgresStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx, pgSessionExists, sessionID).Scan(&exists); err != nil {
		return false, errors.Join(ErrStore, err)
	}
	return exists, nil
}

// GetField returns a session field
func (s *PostgresStore) GetField(ctx context.Context, sessionID, key string) ([]byte, error) {
	var (
		value []byte
		found bool
	)
	if err := s.pool.QueryRow(ctx, pgGetField, sessionID, key).Scan(&value, &found); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Join(ErrStore, err)
	}

	if !found {
		return nil, ErrFieldNotFound
	}
	return value, nil
}

// SetField stores a field and extends the session lifetime
func (s *PostgresStore) SetField(ctx context.Context, sessionID, key string, value []byte) error {
	if key == "" {
		return ErrInvalidFieldKey
	}
	if value == nil {
		value = []byte{}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, pgTouchSession, sessionID, time.Now().Add(s.ttl))
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	if _, err := tx.Exec(ctx, pgUpsertField, sessionID, key, value); err != nil {
		return errors.Join(ErrStore, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

// DeleteField removes a session field
func (s *PostgresStore) DeleteField(ctx context.Context, sessionID, key string) error {
	exists, err := s.Exists(ctx, sessionID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSessionNotFound
	}

	if _, err := s.pool.Exec(ctx, pgDeleteField, sessionID, key); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

// RegenerateID changes the session primary key; fields move by cascade
func (s *PostgresStore) RegenerateID(ctx context.Context, sessionID string) (string, error) {
	newID, err := generateID()
	if err != nil {
		return "", err
	}

	tag, err := s.pool.Exec(ctx, pgRenameSession, sessionID, newID)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return "", errors.Join(ErrStore, errIDCollision, err)
		}
		return "", errors.Join(ErrStore, err)
	}
	if tag.RowsAffected() == 0 {
		return "", ErrSessionNotFound
	}

	return newID, nil
}

// Destroy removes a session and its fields. Unknown IDs are ignored.
func (s *PostgresStore) Destroy(ctx context.Context, sessionID string) error {
	if _, err := s.pool.Exec(ctx, pgDeleteSession, sessionID); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

// DeleteExpired removes all expired sessions
func (s *PostgresStore) DeleteExpired(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, pgDeleteExpired); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}
