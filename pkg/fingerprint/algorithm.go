package fingerprint

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Algorithm selects the one-way digest used to produce fingerprints.
type Algorithm string

const (
	// SHA256 is the default digest.
	SHA256 Algorithm = "sha256"
	// SHA1 matches fingerprints produced by legacy deployments.
	SHA1 Algorithm = "sha1"
	// BLAKE2b256 uses the 256-bit BLAKE2b digest.
	BLAKE2b256 Algorithm = "blake2b-256"
)

// ParseAlgorithm converts a configuration value into an Algorithm.
// Unknown or empty names resolve to SHA256.
func ParseAlgorithm(name string) Algorithm {
	switch Algorithm(strings.ToLower(strings.TrimSpace(name))) {
	case SHA1:
		return SHA1
	case BLAKE2b256, "blake2b":
		return BLAKE2b256
	default:
		return SHA256
	}
}

// Valid reports whether a is one of the supported digests.
func (a Algorithm) Valid() bool {
	switch a {
	case SHA256, SHA1, BLAKE2b256:
		return true
	}
	return false
}

// Sum hashes input and returns the lowercase hex digest.
func (a Algorithm) Sum(input string) string {
	switch a {
	case SHA1:
		sum := sha1.Sum([]byte(input))
		return hex.EncodeToString(sum[:])
	case BLAKE2b256:
		sum := blake2b.Sum256([]byte(input))
		return hex.EncodeToString(sum[:])
	default:
		sum := sha256.Sum256([]byte(input))
		return hex.EncodeToString(sum[:])
	}
}

func (a Algorithm) String() string {
	return string(a)
}
