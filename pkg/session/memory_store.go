package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store interface using in-memory storage
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewMemoryStore creates a new in-memory session store.
// Sessions expire ttl after their last write.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultConfig().TTL
	}
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// StartNew creates an empty session
func (m *MemoryStore) StartNew(ctx context.Context) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[id] = NewSession(id, m.ttl)
	return id, nil
}

// Exists reports whether a live session exists
func (m *MemoryStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	return m.live(sessionID), nil
}

// GetField returns a copy of a session field
func (m *MemoryStore) GetField(ctx context.Context, sessionID, key string) ([]byte, error) {
	m.mu.RLock()
	session, exists := m.sessions[sessionID]
	expired := exists && session.IsExpired()
	var (
		value []byte
		found bool
	)
	if exists && !expired {
		value, found = session.Field(key)
	}
	m.mu.RUnlock()

	switch {
	case !exists:
		return nil, ErrSessionNotFound
	case expired:
		m.evict(sessionID)
		return nil, ErrSessionNotFound
	case !found:
		return nil, ErrFieldNotFound
	}
	return value, nil
}

// SetField stores a copy of value and extends the session lifetime
func (m *MemoryStore) SetField(ctx context.Context, sessionID, key string, value []byte) error {
	if key == "" {
		return ErrInvalidFieldKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[sessionID]
	if !exists || session.IsExpired() {
		return ErrSessionNotFound
	}

	session.SetField(key, value)
	session.Touch(m.ttl)
	return nil
}

// DeleteField removes a session field
func (m *MemoryStore) DeleteField(ctx context.Context, sessionID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[sessionID]
	if !exists || session.IsExpired() {
		return ErrSessionNotFound
	}

	session.DeleteField(key)
	return nil
}

// RegenerateID moves the session to a freshly generated ID
func (m *MemoryStore) RegenerateID(ctx context.Context, sessionID string) (string, error) {
	newID, err := generateID()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[sessionID]
	if !exists || session.IsExpired() {
		return "", ErrSessionNotFound
	}

	moved := session.Clone()
	moved.ID = newID
	m.sessions[newID] = moved
	delete(m.sessions, sessionID)

	return newID, nil
}

// Destroy removes a session. Unknown IDs are ignored.
func (m *MemoryStore) Destroy(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	return nil
}

// DeleteExpired removes all expired sessions
func (m *MemoryStore) DeleteExpired(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, session := range m.sessions {
		if session.IsExpired() {
			delete(m.sessions, id)
		}
	}

	return nil
}

// Len returns the number of stored sessions, including expired ones not yet
// cleaned up
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// live reports whether the session exists and has not expired, evicting it
// when expired. Expiry is read under the lock since SetField moves it.
func (m *MemoryStore) live(sessionID string) bool {
	m.mu.RLock()
	session, exists := m.sessions[sessionID]
	expired := exists && session.IsExpired()
	m.mu.RUnlock()

	if expired {
		m.evict(sessionID)
	}
	return exists && !expired
}

// evict removes sessionID if it is still expired once the write lock is held.
func (m *MemoryStore) evict(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[sessionID]; ok && session.IsExpired() {
		delete(m.sessions, sessionID)
	}
}
