package seedbundle

import "errors"

var (
	// ErrUnsupportedCipher is returned for empty bundles, empty cipher lists
	// and cipher tags this package cannot unlock.
	ErrUnsupportedCipher = errors.New("seed bundle: unsupported cipher")
	// ErrPasswordRequired is returned before any cryptographic work when a
	// password-hash cipher is unlocked without a passphrase.
	ErrPasswordRequired = errors.New("seed bundle: password required")
	// ErrAuthenticationFailed is returned for a wrong passphrase and for a
	// tampered bundle alike.
	ErrAuthenticationFailed = errors.New("seed bundle: authentication failed")
	// ErrMalformed is returned when the bundle is not a well-formed container.
	ErrMalformed = errors.New("seed bundle: malformed")
)
