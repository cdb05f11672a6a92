package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

const idBytes = 32

// generateID creates a cryptographically secure session ID
func generateID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrIDGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// validID rejects IDs that could not have been produced by generateID.
func validID(id string) bool {
	if len(id) != base64.RawURLEncoding.EncodedLen(idBytes) {
		return false
	}
	_, err := base64.RawURLEncoding.DecodeString(id)
	return err == nil
}
