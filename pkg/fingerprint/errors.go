package fingerprint

import "errors"

var (
	// ErrHijacked indicates the request failed fingerprint verification.
	ErrHijacked = errors.New("fingerprint.hijacked")

	// ErrStoreFailure wraps errors returned by the session store.
	ErrStoreFailure = errors.New("fingerprint.store_failure")

	// ErrNoSession indicates the guard was given an empty session ID.
	ErrNoSession = errors.New("fingerprint.no_session")

	// ErrNilStore indicates the guard was constructed without a store.
	ErrNilStore = errors.New("fingerprint.nil_store")
)
