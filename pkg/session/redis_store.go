package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// createdField is written when a session starts so the hash exists before
// any user field is set.
const createdField = "__created_at"

var (
	setFieldScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

	regenerateScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
if redis.call('EXISTS', KEYS[2]) == 1 then
	return -1
end
redis.call('RENAME', KEYS[1], KEYS[2])
return 1
`)
)

// errIDCollision is returned when a regenerated ID is already taken
var errIDCollision = errors.New("session.id_collision")

// RedisStore implements Store with one Redis hash per session.
// Scripts touch two keys during RegenerateID, so Redis Cluster deployments
// need a single-shard setup for the session keyspace.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisStoreOption is a functional option for RedisStore
type RedisStoreOption func(*RedisStore)

// WithRedisKeyPrefix sets the key prefix (default "session:")
func WithRedisKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// WithRedisTTL sets the session lifetime (default 24h)
func WithRedisTTL(ttl time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewRedisStore creates a Redis backed session store
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: "session:",
		ttl:    DefaultConfig().TTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartNew creates an empty session
func (s *RedisStore) StartNew(ctx context.Context) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", err
	}

	ok, err := s.client.HSetNX(ctx, s.key(id), createdField, strconv.FormatInt(time.Now().Unix(), 10)).Result()
	if err != nil {
		return "", errors.Join(ErrStore, err)
	}
	if !ok {
		return "", errors.Join(ErrStore, errIDCollision)
	}

	if err := s.client.Expire(ctx, s.key(id), s.ttl).Err(); err != nil {
		return "", errors.Join(ErrStore, err)
	}

	return id, nil
}

// Exists reports whether a live session exists
func (s *RedisStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(sessionID)).Result()
	if err != nil {
		return false, errors.Join(ErrStore, err)
	}
	return n > 0, nil
}

// GetField returns a session field
func (s *RedisStore) GetField(ctx context.Context, sessionID, key string) ([]byte, error) {
	if key == createdField {
		return nil, ErrInvalidFieldKey
	}

	value, err := s.client.HGet(ctx, s.key(sessionID), key).Bytes()
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, errors.Join(ErrStore, err)
	}

	exists, err := s.Exists(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSessionNotFound
	}
	return nil, ErrFieldNotFound
}

// SetField stores a field and extends the session lifetime
func (s *RedisStore) SetField(ctx context.Context, sessionID, key string, value []byte) error {
	if key == "" || key == createdField {
		return ErrInvalidFieldKey
	}

	res, err := setFieldScript.Run(ctx, s.client, []string{s.key(sessionID)},
		key, value, s.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	if res == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteField removes a session field
func (s *RedisStore) DeleteField(ctx context.Context, sessionID, key string) error {
	if key == createdField {
		return ErrInvalidFieldKey
	}

	exists, err := s.Exists(ctx, sessionID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSessionNotFound
	}

	if err := s.client.HDel(ctx, s.key(sessionID), key).Err(); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

// RegenerateID renames the session hash to a fresh ID, keeping its TTL
func (s *RedisStore) RegenerateID(ctx context.Context, sessionID string) (string, error) {
	newID, err := generateID()
	if err != nil {
		return "", err
	}

	res, err := regenerateScript.Run(ctx, s.client, []string{s.key(sessionID), s.key(newID)}).Int()
	if err != nil {
		return "", errors.Join(ErrStore, err)
	}

	switch res {
	case 0:
		return "", ErrSessionNotFound
	case -1:
		return "", errors.Join(ErrStore, errIDCollision)
	}

	return newID, nil
}

// Destroy removes a session. Unknown IDs are ignored.
func (s *RedisStore) Destroy(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}
