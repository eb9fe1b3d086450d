package aucpace

import "errors"

// Sentinel errors for every abstract error kind in spec §7. A flat
// var block of errors.New values, matching both the teacher package's
// own error style (errors.New("no pending registration"), etc.) and
// the related bytemare/opaque example's exported Err* sentinels.
var (
	// ErrRng indicates the supplied CSPRNG failed to produce bytes.
	ErrRng = errors.New("aucpace: rng failure")

	// ErrHashEmpty indicates the password-hashing function yielded no
	// bytes.
	ErrHashEmpty = errors.New("aucpace: password hash is empty")

	// ErrHashSizeInvalid indicates the password-hashing function's
	// output length is neither 32 nor 64 bytes.
	ErrHashSizeInvalid = errors.New("aucpace: password hash length must be 32 or 64 bytes")

	// ErrIllegalPoint indicates a received group element is the
	// identity, or is not a valid canonical point encoding.
	ErrIllegalPoint = errors.New("aucpace: illegal point")

	// ErrInsufficientSsidLength indicates a pre-established SSID
	// candidate was shorter than MinSSIDLen.
	ErrInsufficientSsidLength = errors.New("aucpace: insufficient ssid length")

	// ErrAuthenticationFailed indicates an authenticator tag mismatch.
	// This is the only error ever surfaced for bad credentials; there
	// is deliberately no distinct "user not found" error, which would
	// enable user enumeration.
	ErrAuthenticationFailed = errors.New("aucpace: authentication failed")

	// ErrOutOfSequence indicates a transition method was called on a
	// role-state value that does not support it, including a state
	// that has already been consumed by a prior transition.
	ErrOutOfSequence = errors.New("aucpace: operation out of sequence")

	// ErrPasswordHashing indicates the caller-supplied KDF returned an
	// error.
	ErrPasswordHashing = errors.New("aucpace: password hashing failed")
)
