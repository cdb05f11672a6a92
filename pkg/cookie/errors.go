package cookie

import "errors"

var (
	// ErrNoSecret is returned by New when no non-empty secret is given.
	ErrNoSecret = errors.New("cookie.no_secret")
	// ErrSecretTooShort is returned by New for secrets under 32 characters.
	ErrSecretTooShort = errors.New("cookie.secret_too_short")

	ErrCookieNotFound = errors.New("cookie.not_found")
	// ErrValueTooLong means the encoded cookie would not fit the 4096 byte
	// limit browsers enforce.
	ErrValueTooLong = errors.New("cookie.value_too_long")

	ErrInvalidFormat    = errors.New("cookie.invalid_format")
	ErrInvalidSignature = errors.New("cookie.invalid_signature")
	ErrDecryptionFailed = errors.New("cookie.decryption_failed")
)
