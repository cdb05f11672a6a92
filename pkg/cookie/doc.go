// Package cookie reads and writes HTTP cookies with shared defaults, optional
// HMAC-SHA256 signatures and AES-256-GCM encryption. The session package uses
// it to carry session IDs.
//
// A Manager holds one or more secrets of at least 32 characters. The first
// secret writes; all of them are tried when reading, so secrets can be rotated
// by prepending a new one. Encryption keys are derived from each secret with
// HKDF (golang.org/x/crypto/hkdf), separate from the signing key.
//
//	man, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	if err != nil {
//	    return err
//	}
//	_ = man.SetEncrypted(w, "sid", id, cookie.WithSecure(true))
//	id, err := man.GetEncrypted(r, "sid")
//
// Config reads COOKIE_* environment variables for NewFromConfig.
//
// Set refuses values that would push the cookie past 4096 bytes with
// ErrValueTooLong. Reads fail with ErrCookieNotFound, ErrInvalidFormat,
// ErrInvalidSignature or ErrDecryptionFailed.
package cookie
