package session

import "time"

// Session is the in-memory representation of a session record
type Session struct {
	ID        string            `json:"id" bson:"_id"`
	Fields    map[string][]byte `json:"fields,omitempty" bson:"fields"`
	ExpiresAt time.Time         `json:"expires_at" bson:"expires_at"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
}

// NewSession creates an empty session that expires after ttl
func NewSession(id string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		Fields:    make(map[string][]byte),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// IsExpired returns true if the session has expired
func (s *Session) IsExpired() bool {
	return s != nil && !time.Now().Before(s.ExpiresAt)
}

// Field returns a copy of the named field
func (s *Session) Field(key string) ([]byte, bool) {
	if s == nil || s.Fields == nil {
		return nil, false
	}
	v, ok := s.Fields[key]
	if !ok {
		return nil, false
	}
	return clone(v), true
}

// SetField stores a copy of value under key
func (s *Session) SetField(key string, value []byte) {
	if s == nil {
		return
	}
	if s.Fields == nil {
		s.Fields = make(map[string][]byte)
	}
	s.Fields[key] = clone(value)
}

// DeleteField removes the named field
func (s *Session) DeleteField(key string) {
	if s == nil || s.Fields == nil {
		return
	}
	delete(s.Fields, key)
}

// Touch extends the session expiry to ttl from now
func (s *Session) Touch(ttl time.Duration) {
	if s == nil {
		return
	}
	s.ExpiresAt = time.Now().Add(ttl)
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Fields = make(map[string][]byte, len(s.Fields))
	for k, v := range s.Fields {
		c.Fields[k] = clone(v)
	}
	return &c
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
