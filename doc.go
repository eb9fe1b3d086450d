// Package aucpace implements the cryptographic core of augmented
// CPace (AuCPace), a password-authenticated key exchange (PAKE) that
// lets a client and server mutually authenticate and derive a shared
// session key from a low-entropy password without ever transmitting
// the password and without the server storing anything that directly
// reveals it.
//
// The design calls for the following parameters:
//
//	A 512-bit-output hash function H (SHA-512 by default), a
//	prime-order group G with a defined unique string representation of
//	its elements (Ristretto255), and a hash-to-group function mapping
//	arbitrary strings into G.
//
// aucpace makes the following choices:
//
//	H:     SHA-512 (crypto/sha512), pluggable via HashFunc
//	Group: Ristretto255, via the group subpackage
//	H':    Elligator2 (group.HashToGroup)
//
// The server stores a password verifier - a group element bound to a
// salt and KDF parameters - rather than the password itself; an
// attacker who steals the database still faces an offline dictionary
// attack bounded by the cost of the caller-supplied password-hashing
// function (see the kdf subpackage for a reference Argon2id adapter).
//
// A "strong" augmentation variant additionally runs an OPRF-blinded
// salt exchange so that an attacker who steals the database cannot
// precompute salts for a dictionary attack without interacting with
// the server once per guess.
//
// Every role-state value (ServerStart, ClientAwaitingServerAuth, ...)
// is single-use: advancing a state consumes it and returns the next
// one. Calling a transition method on an already-consumed state
// returns ErrOutOfSequence.
package aucpace

// Protocol-wide configuration constants (spec §6).
const (
	// MinSSIDLen is the minimum accepted length, in bytes, of an
	// externally pre-established SSID.
	MinSSIDLen = 16

	// NonceLen is the length, in bytes, of the server and client
	// nonces used to derive a freshly-established SSID.
	NonceLen = 16

	// HashOutputLen is the output size, in bytes, of the default hash
	// primitive (SHA-512).
	HashOutputLen = 64

	// ScalarLen is the canonical encoding length, in bytes, of a
	// Ristretto255 scalar.
	ScalarLen = 32

	// PointLen is the canonical encoding length, in bytes, of a
	// Ristretto255 group element.
	PointLen = 32

	// GroupName is the wire-level literal identifying the group in
	// use; it is always "ristretto255" for this implementation.
	GroupName = "ristretto255"
)
