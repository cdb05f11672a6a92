package session

import "errors"

var (
	// ErrSessionNotFound indicates no live session exists for the ID
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrFieldNotFound indicates the session exists but has no such field
	ErrFieldNotFound = errors.New("session.field_not_found")

	// ErrInvalidSessionID indicates an empty or malformed session ID
	ErrInvalidSessionID = errors.New("session.invalid_id")

	// ErrInvalidFieldKey indicates a field key the store cannot hold
	ErrInvalidFieldKey = errors.New("session.invalid_field_key")

	// ErrIDGeneration indicates session ID generation failed
	ErrIDGeneration = errors.New("session.id_generation_failed")

	// ErrStore wraps failures reported by a store backend
	ErrStore = errors.New("session.store_failure")
)
